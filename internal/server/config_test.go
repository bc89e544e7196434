package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultServerConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultServerConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "localhost:8080", cfg.GetServerAddress())
	assert.Equal(t, 10, cfg.Game.MinBet)
	assert.Equal(t, 1000, cfg.Game.StartingBalance)
	assert.Equal(t, 7, cfg.Game.MaxPlayers)
	assert.Equal(t, 4, cfg.Game.NumDecks)
}

func TestLoadServerConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultServerConfig().Game, cfg.Game)
}

func TestLoadServerConfigFromHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.hcl")
	content := `
server {
  address = "0.0.0.0"
  port    = 9000
}

game {
  min_bet          = 25
  max_bet          = 500
  starting_balance = 2000
  betting_seconds  = 15
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:9000", cfg.GetServerAddress())
	assert.Equal(t, 25, cfg.Game.MinBet)
	assert.Equal(t, 500, cfg.Game.MaxBet)
	assert.Equal(t, 2000, cfg.Game.StartingBalance)
	assert.Equal(t, 15, cfg.Game.BettingSeconds)

	// Unset keys keep their defaults
	assert.Equal(t, 25, cfg.Game.TurnTimeoutSeconds)
	assert.Equal(t, 7, cfg.Game.MaxPlayers)
}

func TestLoadServerConfigRejectsBadHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte("server {"), 0o644))

	_, err := LoadServerConfig(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BLACKJACK_PORT", "7777")
	t.Setenv("BLACKJACK_MIN_BET", "50")

	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, 50, cfg.Game.MinBet)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*ServerConfig)
	}{
		{"zero port", func(c *ServerConfig) { c.Server.Port = 0 }},
		{"zero min bet", func(c *ServerConfig) { c.Game.MinBet = 0 }},
		{"max bet below min", func(c *ServerConfig) { c.Game.MaxBet = 5 }},
		{"balance below min bet", func(c *ServerConfig) { c.Game.StartingBalance = 5 }},
		{"zero betting seconds", func(c *ServerConfig) { c.Game.BettingSeconds = 0 }},
		{"zero turn timeout", func(c *ServerConfig) { c.Game.TurnTimeoutSeconds = 0 }},
		{"zero min players", func(c *ServerConfig) { c.Game.MinPlayers = 0 }},
		{"max players below min", func(c *ServerConfig) { c.Game.MinPlayers = 5; c.Game.MaxPlayers = 2 }},
		{"too many decks", func(c *ServerConfig) { c.Game.NumDecks = 9 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultServerConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
