package game

import (
	"github.com/Jcazt21/BLPG-sub002/internal/deck"
)

// Status describes where a player stands within the current round
type Status string

const (
	StatusPlaying   Status = "playing"
	StatusStand     Status = "stand"
	StatusBust      Status = "bust"
	StatusBlackjack Status = "blackjack"
)

// SessionStats accumulate across rounds for as long as the player stays
// seated. Round transitions never touch them; only settlement does.
type SessionStats struct {
	GamesWon       int `json:"gamesWon"`
	GamesBlackjack int `json:"gamesBlackjack"`
	GamesLost      int `json:"gamesLost"`
	GamesDraw      int `json:"gamesDraw"`
	GamesBust      int `json:"gamesBust"`
	TotalWinnings  int `json:"totalWinnings"`
	TotalLosses    int `json:"totalLosses"`
}

// Player represents a seated player in a room
type Player struct {
	ID   string
	Name string
	Seat int

	// Per-round state, reset when a new round begins
	Hand         []deck.Card
	Total        int
	IsBust       bool
	IsStand      bool
	IsBlackjack  bool
	Status       Status
	CurrentBet   int
	HasPlacedBet bool

	// Session state, survives round transitions
	Balance int
	Stats   SessionStats
}

// NewPlayer seats a player with the configured starting balance
func NewPlayer(id, name string, seat, startingBalance int) *Player {
	p := &Player{
		ID:      id,
		Name:    name,
		Seat:    seat,
		Balance: startingBalance,
	}
	p.ResetForNewRound()
	return p
}

// ResetForNewRound clears per-round state while preserving balance and
// cumulative session stats
func (p *Player) ResetForNewRound() {
	p.Hand = p.Hand[:0]
	p.Total = 0
	p.IsBust = false
	p.IsStand = false
	p.IsBlackjack = false
	p.Status = StatusPlaying
	p.CurrentBet = 0
	p.HasPlacedBet = false
}

// AvailableChips is the most a player can wager this round: their balance
// plus anything already escrowed in the current bet
func (p *Player) AvailableChips() int {
	return p.Balance + p.CurrentBet
}

// InRound reports whether the player still has actions to take
func (p *Player) InRound() bool {
	return p.Status == StatusPlaying
}

// AddCard appends a card and re-evaluates the hand
func (p *Player) AddCard(card deck.Card) {
	p.Hand = append(p.Hand, card)
	p.reevaluate()
}

func (p *Player) reevaluate() {
	p.Total, _ = HandTotal(p.Hand)
	switch {
	case IsBlackjack(p.Hand):
		p.IsBlackjack = true
		p.Status = StatusBlackjack
	case p.Total > 21:
		p.IsBust = true
		p.Status = StatusBust
	}
}

// Stand marks the player as standing
func (p *Player) MarkStand() {
	p.IsStand = true
	if p.Status == StatusPlaying {
		p.Status = StatusStand
	}
}

// Dealer represents the house hand. The second card is the hole card and
// stays hidden until HoleRevealed is set.
type Dealer struct {
	Hand         []deck.Card
	Total        int
	IsBust       bool
	IsBlackjack  bool
	HoleRevealed bool
}

// AddCard appends a card and re-evaluates the dealer hand
func (d *Dealer) AddCard(card deck.Card) {
	d.Hand = append(d.Hand, card)
	d.Total, _ = HandTotal(d.Hand)
	d.IsBust = d.Total > 21
	d.IsBlackjack = IsBlackjack(d.Hand)
}

// UpCardTotal is the visible total while the hole card is hidden
func (d *Dealer) UpCardTotal() int {
	if len(d.Hand) == 0 {
		return 0
	}
	total, _ := HandTotal(d.Hand[:1])
	return total
}
