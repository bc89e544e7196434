package game

import (
	"github.com/Jcazt21/BLPG-sub002/internal/deck"
	"github.com/google/uuid"
)

// Phase is the lifecycle stage of a round
type Phase string

const (
	PhaseWaiting Phase = "waiting"
	PhaseBetting Phase = "betting"
	PhaseDealing Phase = "dealing"
	PhasePlaying Phase = "playing"
	PhaseDealer  Phase = "dealer"
	PhaseResult  Phase = "result"
)

// DeckSource is the dealing capability a round consumes
type DeckSource interface {
	Draw() deck.Card
	Reshuffle()
}

// Round holds the state of a single round of play. It is pure game logic:
// no locks, no timers, no transport. The owning room serializes access and
// drives time-based transitions.
type Round struct {
	ID        string
	Phase     Phase
	Players   []*Player // seat order; dealing and turn order follow this
	Dealer    *Dealer
	Turn      int // index into Players, -1 when nobody is to act
	Countdown int // betting seconds remaining, maintained by the room
	MinBet    int
	MaxBet    int
	Results   map[string]PlayerResult // populated during the result phase

	shoe DeckSource
}

// NewRound starts a fresh betting phase. Per-round player state is reset;
// balances and session stats carry over untouched.
func NewRound(players []*Player, shoe DeckSource, minBet, maxBet, countdown int) *Round {
	for _, p := range players {
		p.ResetForNewRound()
	}
	return &Round{
		ID:        uuid.NewString(),
		Phase:     PhaseBetting,
		Players:   players,
		Dealer:    &Dealer{},
		Turn:      -1,
		Countdown: countdown,
		MinBet:    minBet,
		MaxBet:    maxBet,
		shoe:      shoe,
	}
}

func (r *Round) playerByID(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Pot is the informational sum of all escrowed bets
func (r *Round) Pot() int {
	pot := 0
	for _, p := range r.Players {
		pot += p.CurrentBet
	}
	return pot
}

// PlaceBet validates and places (or replaces) a player's bet
func (r *Round) PlaceBet(playerID string, amount int) error {
	p := r.playerByID(playerID)
	if p == nil {
		return ErrPlayerNotFound
	}
	if err := ValidateBet(p, amount, r.MinBet, r.MaxBet, r.Phase); err != nil {
		return err
	}
	PlaceBet(p, amount)
	return nil
}

// ClearBet returns a player's escrowed bet to their balance
func (r *Round) ClearBet(playerID string) error {
	if r.Phase != PhaseBetting {
		return ErrBettingClosed
	}
	p := r.playerByID(playerID)
	if p == nil {
		return ErrPlayerNotFound
	}
	ClearBet(p)
	return nil
}

// AllIn bets the player's entire available chips, capped at the table
// maximum when one is configured
func (r *Round) AllIn(playerID string) error {
	p := r.playerByID(playerID)
	if p == nil {
		return ErrPlayerNotFound
	}
	amount := AllInAmount(p)
	if r.MaxBet > 0 && amount > r.MaxBet {
		amount = r.MaxBet
	}
	if err := ValidateBet(p, amount, r.MinBet, r.MaxBet, r.Phase); err != nil {
		return err
	}
	PlaceBet(p, amount)
	return nil
}

// RemovePlayer drops a player from the round. Only meaningful before any
// cards are dealt; once play starts the seat order is fixed and leavers
// are handled as forced stands instead.
func (r *Round) RemovePlayer(playerID string) {
	if r.Phase != PhaseBetting && r.Phase != PhaseDealing {
		return
	}
	for i, p := range r.Players {
		if p.ID == playerID {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return
		}
	}
}

// AllBetsPlaced reports whether every player who can afford the minimum
// bet has placed one. Players who cannot cover the minimum are ignored;
// they sit the round out.
func (r *Round) AllBetsPlaced() bool {
	for _, p := range r.Players {
		if !p.HasPlacedBet && p.AvailableChips() >= r.MinBet {
			return false
		}
	}
	return true
}

// ForceMinimumBets assigns the minimum bet to every player who has not
// bet, through the same validated path as a client bet so the
// conservation invariant holds. Returns the IDs of players auto-betted.
// Players who cannot cover the minimum are left to sit out.
func (r *Round) ForceMinimumBets() []string {
	var forced []string
	for _, p := range r.Players {
		if p.HasPlacedBet {
			continue
		}
		if err := ValidateBet(p, r.MinBet, r.MinBet, r.MaxBet, r.Phase); err != nil {
			continue
		}
		PlaceBet(p, r.MinBet)
		forced = append(forced, p.ID)
	}
	return forced
}

// DealInitial deals the opening cards in casino order: one face-up card to
// each betting player in seat order, one face-up card to the dealer, a
// second card to each player, then the dealer's face-down hole card.
// Players without a bet sit out: marked standing, empty hand. Ends in the
// playing phase with the turn on the first player still able to act.
func (r *Round) DealInitial() error {
	if r.Phase != PhaseBetting && r.Phase != PhaseDealing {
		return ErrWrongPhase
	}
	r.Phase = PhaseDealing

	betting := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if p.HasPlacedBet {
			betting = append(betting, p)
		} else {
			p.MarkStand()
		}
	}

	for _, p := range betting {
		p.AddCard(r.shoe.Draw())
	}
	r.Dealer.AddCard(r.shoe.Draw())
	for _, p := range betting {
		p.AddCard(r.shoe.Draw())
	}
	r.Dealer.AddCard(r.shoe.Draw()) // hole card, hidden until reveal

	r.Phase = PhasePlaying
	r.Turn = r.nextActive(-1)
	if r.Turn == -1 {
		// Everyone sat out or was dealt a natural; straight to the dealer
		r.Phase = PhaseDealer
	}
	return nil
}

// CurrentPlayer returns the player whose turn it is, or nil
func (r *Round) CurrentPlayer() *Player {
	if r.Phase != PhasePlaying || r.Turn < 0 || r.Turn >= len(r.Players) {
		return nil
	}
	return r.Players[r.Turn]
}

// Hit draws one card for the acting player. Busting or reaching 21 ends
// the player's turn and advances to the next.
func (r *Round) Hit(playerID string) (deck.Card, error) {
	if r.Phase != PhasePlaying {
		return deck.Card{}, ErrWrongPhase
	}
	current := r.CurrentPlayer()
	if current == nil || current.ID != playerID {
		return deck.Card{}, ErrNotPlayerTurn
	}

	card := r.shoe.Draw()
	current.AddCard(card)
	if current.Total >= 21 {
		current.MarkStand()
		r.advanceTurn()
	}
	return card, nil
}

// Stand ends the acting player's turn
func (r *Round) Stand(playerID string) error {
	if r.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	current := r.CurrentPlayer()
	if current == nil || current.ID != playerID {
		return ErrNotPlayerTurn
	}

	current.MarkStand()
	r.advanceTurn()
	return nil
}

// advanceTurn moves the turn pointer forward, wrapping past the end, and
// enters the dealer phase once no player can act
func (r *Round) advanceTurn() {
	r.Turn = r.nextActive(r.Turn)
	if r.Turn == -1 {
		r.Phase = PhaseDealer
	}
}

// nextActive finds the next player after index from who can still act
func (r *Round) nextActive(from int) int {
	n := len(r.Players)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if r.Players[idx].InRound() {
			return idx
		}
	}
	return -1
}

// AllPlayersDone reports whether every player is standing, bust or holds a
// natural
func (r *Round) AllPlayersDone() bool {
	for _, p := range r.Players {
		if p.InRound() {
			return false
		}
	}
	return true
}

// PlayDealer reveals the hole card and draws by the fixed house rule:
// draw while the total is under 17, stand otherwise. Busting ends the
// loop immediately because further draws only increase the total.
func (r *Round) PlayDealer() error {
	if r.Phase != PhaseDealer {
		return ErrWrongPhase
	}
	r.Dealer.HoleRevealed = true
	for r.Dealer.Total < 17 {
		r.Dealer.AddCard(r.shoe.Draw())
	}
	return nil
}

// Settle classifies every betting player against the dealer, applies
// payouts, and enters the result phase. Bets remain readable on the
// players until the next round resets them.
func (r *Round) Settle() (map[string]PlayerResult, error) {
	if r.Phase != PhaseDealer {
		return nil, ErrWrongPhase
	}

	results := make(map[string]PlayerResult, len(r.Players))
	for _, p := range r.Players {
		if !p.HasPlacedBet {
			continue // sat out, nothing staked
		}
		outcome := ClassifyOutcome(p, r.Dealer)
		results[p.ID] = ApplyPayout(p, outcome)
	}

	r.Results = results
	r.Phase = PhaseResult
	return results, nil
}
