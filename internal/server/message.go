package server

import (
	"encoding/json"
	"time"

	"github.com/Jcazt21/BLPG-sub002/internal/game"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type AuthData struct {
	PlayerName string `json:"playerName"`
}

type CreateRoomData struct {
	PlayerName string `json:"playerName,omitempty"`
}

type JoinRoomData struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName,omitempty"`
}

type RoomActionData struct {
	RoomCode string `json:"roomCode"`
}

// BetData carries a raw wire amount. It stays float64 until validated so
// NaN/Inf/fractional inputs are rejected rather than silently truncated.
type BetData struct {
	RoomCode string  `json:"roomCode"`
	Amount   float64 `json:"amount"`
}

// Server → Client Messages

type AuthResponseData struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId,omitempty"`
	Error     string `json:"error,omitempty"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RoomCreatedData struct {
	RoomCode string         `json:"roomCode"`
	Snapshot *StateSnapshot `json:"snapshot,omitempty"`
}

type RoomJoinedData struct {
	RoomCode string         `json:"roomCode"`
	Players  []PlayerView   `json:"players"`
	Snapshot *StateSnapshot `json:"snapshot,omitempty"`
}

type RoomInfo struct {
	RoomCode string `json:"roomCode"`
	Players  int    `json:"players"`
	Phase    string `json:"phase"`
}

type RoomListData struct {
	Rooms []RoomInfo `json:"rooms"`
}

type TurnTimerStartedData struct {
	RoomCode       string `json:"roomCode"`
	PlayerID       string `json:"playerId"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

type BettingPhaseEndedData struct {
	RoomCode  string   `json:"roomCode"`
	ForcedIDs []string `json:"forcedPlayerIds,omitempty"`
}

type RoundResultData struct {
	RoomCode string                       `json:"roomCode"`
	RoundID  string                       `json:"roundId"`
	Results  map[string]game.PlayerResult `json:"results"`
}

// Views

// HiddenCard is the placeholder broadcast in place of the dealer's hole
// card until the reveal.
const HiddenCard = "??"

// PlayerView is the broadcastable projection of a player
type PlayerView struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Seat         int               `json:"seat"`
	Hand         []string          `json:"hand"`
	Total        int               `json:"total"`
	Status       game.Status       `json:"status"`
	IsBust       bool              `json:"isBust"`
	IsStand      bool              `json:"isStand"`
	IsBlackjack  bool              `json:"isBlackjack"`
	Balance      int               `json:"balance"`
	CurrentBet   int               `json:"currentBet"`
	HasPlacedBet bool              `json:"hasPlacedBet"`
	Stats        game.SessionStats `json:"stats"`
}

// DealerView hides the hole card until the dealer phase
type DealerView struct {
	Hand         []string `json:"hand"`
	Total        int      `json:"total"`
	IsBust       bool     `json:"isBust"`
	IsBlackjack  bool     `json:"isBlackjack"`
	HoleRevealed bool     `json:"holeRevealed"`
}

// StateSnapshot is the full game state broadcast after every mutation
type StateSnapshot struct {
	RoomCode        string                       `json:"roomCode"`
	RoundID         string                       `json:"roundId,omitempty"`
	Phase           game.Phase                   `json:"phase"`
	Players         []PlayerView                 `json:"players"`
	Dealer          *DealerView                  `json:"dealer,omitempty"`
	CurrentPlayerID string                       `json:"currentPlayerId,omitempty"`
	Countdown       int                          `json:"countdown"`
	MinBet          int                          `json:"minBet"`
	MaxBet          int                          `json:"maxBet"`
	Pot             int                          `json:"pot"`
	Results         map[string]game.PlayerResult `json:"results,omitempty"`
}

// PlayerViewFromGame builds the wire projection of a player
func PlayerViewFromGame(p *game.Player) PlayerView {
	hand := make([]string, len(p.Hand))
	for i, c := range p.Hand {
		hand[i] = c.String()
	}
	return PlayerView{
		ID:           p.ID,
		Name:         p.Name,
		Seat:         p.Seat,
		Hand:         hand,
		Total:        p.Total,
		Status:       p.Status,
		IsBust:       p.IsBust,
		IsStand:      p.IsStand,
		IsBlackjack:  p.IsBlackjack,
		Balance:      p.Balance,
		CurrentBet:   p.CurrentBet,
		HasPlacedBet: p.HasPlacedBet,
		Stats:        p.Stats,
	}
}

// DealerViewFromGame builds the dealer projection, masking the hole card
// and its contribution to the total until the reveal
func DealerViewFromGame(d *game.Dealer) *DealerView {
	if d == nil {
		return nil
	}
	view := &DealerView{HoleRevealed: d.HoleRevealed}
	if d.HoleRevealed {
		view.Hand = make([]string, len(d.Hand))
		for i, c := range d.Hand {
			view.Hand[i] = c.String()
		}
		view.Total = d.Total
		view.IsBust = d.IsBust
		view.IsBlackjack = d.IsBlackjack
		return view
	}

	for i, c := range d.Hand {
		if i == 1 {
			view.Hand = append(view.Hand, HiddenCard)
			continue
		}
		view.Hand = append(view.Hand, c.String())
	}
	view.Total = d.UpCardTotal()
	return view
}
