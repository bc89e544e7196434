package game

import "math"

// Betting operations on a single player. The caller (the room) holds the
// room lock; nothing here is safe for concurrent use on its own.
//
// Invariant: Balance + CurrentBet is conserved by every operation in this
// file. Only settlement (ApplyPayout) changes the sum.

// ValidateBetAmount rejects raw wire amounts before integer conversion.
// JSON numbers arrive as float64, so NaN, infinities and fractional chip
// counts are all possible inputs.
func ValidateBetAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ErrInvalidAmount
	}
	if amount != math.Trunc(amount) {
		return ErrInvalidAmount
	}
	if amount <= 0 || amount > math.MaxInt32 {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateBet checks a bet against the player's chips and the table
// bounds. maxBet <= 0 means no upper bound.
func ValidateBet(p *Player, amount, minBet, maxBet int, phase Phase) error {
	if phase != PhaseBetting {
		return ErrBettingClosed
	}
	if amount <= 0 || amount < minBet {
		return ErrInvalidAmount
	}
	if maxBet > 0 && amount > maxBet {
		return ErrInvalidAmount
	}
	if amount > p.AvailableChips() {
		return ErrInsufficientBalance
	}
	return nil
}

// PlaceBet moves amount from balance into the bet escrow. Calling it again
// before the phase ends replaces the previous bet: the old amount is
// refunded first, so chips never stack or vanish. Validation is the
// caller's job.
func PlaceBet(p *Player, amount int) {
	p.Balance += p.CurrentBet
	p.Balance -= amount
	p.CurrentBet = amount
	p.HasPlacedBet = true
}

// ClearBet returns the escrowed bet to the player's balance
func ClearBet(p *Player) {
	p.Balance += p.CurrentBet
	p.CurrentBet = 0
	p.HasPlacedBet = false
}

// AllInAmount is the bet that commits every chip the player has
func AllInAmount(p *Player) int {
	return p.AvailableChips()
}
