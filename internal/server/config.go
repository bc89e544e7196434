package server

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
)

// ServerConfig represents the complete server configuration
type ServerConfig struct {
	Server ServerSettings `hcl:"server,block"`
	Game   GameSettings   `hcl:"game,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// GameSettings contains the room/game tunables
type GameSettings struct {
	MinBet             int `hcl:"min_bet,optional"`
	MaxBet             int `hcl:"max_bet,optional"` // 0 means no table maximum
	StartingBalance    int `hcl:"starting_balance,optional"`
	BettingSeconds     int `hcl:"betting_seconds,optional"`
	DealDelayMs        int `hcl:"deal_delay_ms,optional"`
	TurnTimeoutSeconds int `hcl:"turn_timeout_seconds,optional"`
	MinPlayers         int `hcl:"min_players,optional"`
	MaxPlayers         int `hcl:"max_players,optional"`
	NumDecks           int `hcl:"num_decks,optional"`
}

// BettingDuration is the betting phase countdown
func (g GameSettings) BettingDuration() time.Duration {
	return time.Duration(g.BettingSeconds) * time.Second
}

// DealDelay is the pause between bets locking and the deal, so clients
// can render the transition
func (g GameSettings) DealDelay() time.Duration {
	return time.Duration(g.DealDelayMs) * time.Millisecond
}

// TurnTimeout is how long a player has to act before a forced stand
func (g GameSettings) TurnTimeout() time.Duration {
	return time.Duration(g.TurnTimeoutSeconds) * time.Second
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Game: GameSettings{
			MinBet:             10,
			MaxBet:             0,
			StartingBalance:    1000,
			BettingSeconds:     30,
			DealDelayMs:        1500,
			TurnTimeoutSeconds: 25,
			MinPlayers:         1,
			MaxPlayers:         7,
			NumDecks:           4,
		},
	}
}

// LoadServerConfig loads server configuration from an HCL file, then
// applies environment overrides. A missing file yields the defaults.
func LoadServerConfig(filename string) (*ServerConfig, error) {
	config := DefaultServerConfig()

	if _, err := os.Stat(filename); err == nil {
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCLFile(filename)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
		}

		var parsed ServerConfig
		diags = gohcl.DecodeBody(file.Body, nil, &parsed)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
		}
		mergeConfig(config, &parsed)
	}

	applyEnvOverrides(config)
	return config, nil
}

// mergeConfig overlays non-zero parsed values onto the defaults
func mergeConfig(dst, src *ServerConfig) {
	if src.Server.Address != "" {
		dst.Server.Address = src.Server.Address
	}
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.LogLevel != "" {
		dst.Server.LogLevel = src.Server.LogLevel
	}
	if src.Game.MinBet != 0 {
		dst.Game.MinBet = src.Game.MinBet
	}
	if src.Game.MaxBet != 0 {
		dst.Game.MaxBet = src.Game.MaxBet
	}
	if src.Game.StartingBalance != 0 {
		dst.Game.StartingBalance = src.Game.StartingBalance
	}
	if src.Game.BettingSeconds != 0 {
		dst.Game.BettingSeconds = src.Game.BettingSeconds
	}
	if src.Game.DealDelayMs != 0 {
		dst.Game.DealDelayMs = src.Game.DealDelayMs
	}
	if src.Game.TurnTimeoutSeconds != 0 {
		dst.Game.TurnTimeoutSeconds = src.Game.TurnTimeoutSeconds
	}
	if src.Game.MinPlayers != 0 {
		dst.Game.MinPlayers = src.Game.MinPlayers
	}
	if src.Game.MaxPlayers != 0 {
		dst.Game.MaxPlayers = src.Game.MaxPlayers
	}
	if src.Game.NumDecks != 0 {
		dst.Game.NumDecks = src.Game.NumDecks
	}
}

// applyEnvOverrides reads overrides from the environment. A .env file in
// the working directory is loaded first, if present.
func applyEnvOverrides(config *ServerConfig) {
	_ = godotenv.Load() // No .env file is fine

	if v := os.Getenv("BLACKJACK_ADDRESS"); v != "" {
		config.Server.Address = v
	}
	if v := os.Getenv("BLACKJACK_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("BLACKJACK_LOG_LEVEL"); v != "" {
		config.Server.LogLevel = v
	}
	if v := os.Getenv("BLACKJACK_MIN_BET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Game.MinBet = n
		}
	}
	if v := os.Getenv("BLACKJACK_STARTING_BALANCE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Game.StartingBalance = n
		}
	}
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Game.MinBet <= 0 {
		return fmt.Errorf("min bet must be positive, got %d", c.Game.MinBet)
	}
	if c.Game.MaxBet != 0 && c.Game.MaxBet < c.Game.MinBet {
		return fmt.Errorf("max bet %d is below min bet %d", c.Game.MaxBet, c.Game.MinBet)
	}
	if c.Game.StartingBalance < c.Game.MinBet {
		return fmt.Errorf("starting balance %d cannot cover the min bet %d", c.Game.StartingBalance, c.Game.MinBet)
	}
	if c.Game.BettingSeconds <= 0 {
		return fmt.Errorf("betting duration must be positive, got %ds", c.Game.BettingSeconds)
	}
	if c.Game.TurnTimeoutSeconds <= 0 {
		return fmt.Errorf("turn timeout must be positive, got %ds", c.Game.TurnTimeoutSeconds)
	}
	if c.Game.MinPlayers < 1 {
		return fmt.Errorf("min players must be at least 1, got %d", c.Game.MinPlayers)
	}
	if c.Game.MaxPlayers < c.Game.MinPlayers {
		return fmt.Errorf("max players %d is below min players %d", c.Game.MaxPlayers, c.Game.MinPlayers)
	}
	if c.Game.NumDecks < 1 || c.Game.NumDecks > 8 {
		return fmt.Errorf("num decks must be between 1 and 8, got %d", c.Game.NumDecks)
	}
	return nil
}

// GetServerAddress returns the full server address
func (c *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
