package game

import (
	"testing"

	"github.com/Jcazt21/BLPG-sub002/internal/deck"
)

func cards(specs ...deck.Rank) []deck.Card {
	hand := make([]deck.Card, 0, len(specs))
	suits := []deck.Suit{deck.Spades, deck.Hearts, deck.Diamonds, deck.Clubs}
	for i, rank := range specs {
		hand = append(hand, deck.NewCard(suits[i%len(suits)], rank))
	}
	return hand
}

func TestHandTotal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		hand  []deck.Card
		total int
		soft  bool
	}{
		{"simple", cards(deck.Five, deck.Nine), 14, false},
		{"face cards", cards(deck.King, deck.Queen), 20, false},
		{"soft ace", cards(deck.Ace, deck.Six), 17, true},
		{"natural", cards(deck.Ace, deck.King), 21, true},
		{"ace demoted", cards(deck.Ace, deck.Nine, deck.Five), 15, false},
		{"two aces", cards(deck.Ace, deck.Ace), 12, true},
		{"two aces plus nine", cards(deck.Ace, deck.Ace, deck.Nine), 21, true},
		{"bust", cards(deck.King, deck.Queen, deck.Five), 25, false},
		{"ace saves bust", cards(deck.Ace, deck.King, deck.Queen), 21, false},
		{"empty", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			total, soft := HandTotal(tt.hand)
			if total != tt.total {
				t.Errorf("total = %d, want %d", total, tt.total)
			}
			if soft != tt.soft {
				t.Errorf("soft = %v, want %v", soft, tt.soft)
			}
		})
	}
}

func TestIsBlackjack(t *testing.T) {
	t.Parallel()

	if !IsBlackjack(cards(deck.Ace, deck.King)) {
		t.Error("A+K should be blackjack")
	}
	if IsBlackjack(cards(deck.Seven, deck.Seven, deck.Seven)) {
		t.Error("three-card 21 is not a natural")
	}
	if IsBlackjack(cards(deck.Ten, deck.Nine)) {
		t.Error("19 is not blackjack")
	}
}

func TestClassifyOutcome(t *testing.T) {
	t.Parallel()

	player := func(hand []deck.Card) *Player {
		p := NewPlayer("p", "p", 0, 1000)
		for _, c := range hand {
			p.AddCard(c)
		}
		return p
	}
	dealer := func(hand []deck.Card) *Dealer {
		d := &Dealer{}
		for _, c := range hand {
			d.AddCard(c)
		}
		return d
	}

	tests := []struct {
		name    string
		player  []deck.Card
		dealer  []deck.Card
		outcome Outcome
	}{
		{"player bust loses even against dealer bust", cards(deck.King, deck.Queen, deck.Five), cards(deck.King, deck.Queen, deck.Five), OutcomeBust},
		{"natural beats dealer 20", cards(deck.Ace, deck.King), cards(deck.King, deck.Queen), OutcomeBlackjack},
		{"natural pushes dealer natural", cards(deck.Ace, deck.King), cards(deck.Ace, deck.Queen), OutcomePush},
		{"twenty-one loses to dealer natural", cards(deck.Seven, deck.Seven, deck.Seven), cards(deck.Ace, deck.Queen), OutcomeLose},
		{"dealer bust pays standing player", cards(deck.Ten, deck.Two), cards(deck.King, deck.Queen, deck.Five), OutcomeWin},
		{"higher total wins", cards(deck.King, deck.Queen), cards(deck.King, deck.Nine), OutcomeWin},
		{"lower total loses", cards(deck.King, deck.Seven), cards(deck.King, deck.Nine), OutcomeLose},
		{"equal totals push", cards(deck.King, deck.Nine), cards(deck.Queen, deck.Nine), OutcomePush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ClassifyOutcome(player(tt.player), dealer(tt.dealer))
			if got != tt.outcome {
				t.Errorf("outcome = %s, want %s", got, tt.outcome)
			}
		})
	}
}
