package game

import (
	"github.com/Jcazt21/BLPG-sub002/internal/deck"
)

// HandTotal computes the best blackjack total for a hand. Aces start at 11
// and are demoted to 1 one at a time while the hand would otherwise bust.
// soft reports whether an ace is still counted as 11.
func HandTotal(cards []deck.Card) (total int, soft bool) {
	aces := 0
	for _, c := range cards {
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total, aces > 0
}

// IsBlackjack reports a natural: exactly two cards totalling 21
func IsBlackjack(cards []deck.Card) bool {
	if len(cards) != 2 {
		return false
	}
	total, _ := HandTotal(cards)
	return total == 21
}

// IsBust reports whether the hand total exceeds 21
func IsBust(cards []deck.Card) bool {
	total, _ := HandTotal(cards)
	return total > 21
}

// Outcome classifies a settled player hand against the dealer
type Outcome string

const (
	OutcomeBlackjack Outcome = "blackjack"
	OutcomeWin       Outcome = "win"
	OutcomeLose      Outcome = "lose"
	OutcomeBust      Outcome = "bust"
	OutcomePush      Outcome = "push"
)

// ClassifyOutcome determines a player's result against the dealer. Bust
// loses regardless of the dealer; a natural only pays as blackjack when
// the dealer does not also hold one.
func ClassifyOutcome(p *Player, d *Dealer) Outcome {
	if p.IsBust {
		return OutcomeBust
	}
	if p.IsBlackjack {
		if d.IsBlackjack {
			return OutcomePush
		}
		return OutcomeBlackjack
	}
	if d.IsBlackjack {
		return OutcomeLose
	}
	if d.IsBust {
		return OutcomeWin
	}
	switch {
	case p.Total > d.Total:
		return OutcomeWin
	case p.Total < d.Total:
		return OutcomeLose
	default:
		return OutcomePush
	}
}
