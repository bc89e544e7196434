package deck

import (
	"testing"

	"github.com/Jcazt21/BLPG-sub002/internal/randutil"
)

func TestShoeSize(t *testing.T) {
	t.Parallel()

	shoe := NewShoeWithRNG(4, randutil.New(42))
	if shoe.CardsRemaining() != 208 {
		t.Errorf("4-deck shoe should hold 208 cards, got %d", shoe.CardsRemaining())
	}
}

func TestDrawReducesShoe(t *testing.T) {
	t.Parallel()

	shoe := NewShoeWithRNG(1, randutil.New(42))
	seen := make(map[Card]int)
	for i := 0; i < 52; i++ {
		seen[shoe.Draw()]++
	}

	if shoe.CardsRemaining() != 0 {
		t.Errorf("Expected empty shoe, got %d cards", shoe.CardsRemaining())
	}
	if len(seen) != 52 {
		t.Errorf("Expected 52 distinct cards, got %d", len(seen))
	}
	for card, n := range seen {
		if n != 1 {
			t.Errorf("Card %s dealt %d times from a single deck", card, n)
		}
	}
}

func TestDrawFromExhaustedShoeReshuffles(t *testing.T) {
	t.Parallel()

	shoe := NewShoeWithRNG(1, randutil.New(1))
	for i := 0; i < 52; i++ {
		shoe.Draw()
	}

	// Next draw must not panic or return a zero card
	card := shoe.Draw()
	if card.Rank < Two || card.Rank > Ace {
		t.Errorf("Draw after exhaustion returned invalid card %v", card)
	}
	if shoe.CardsRemaining() != 51 {
		t.Errorf("Expected 51 cards after reshuffle+draw, got %d", shoe.CardsRemaining())
	}
}

func TestStackDealsInOrder(t *testing.T) {
	t.Parallel()

	want := []Card{
		NewCard(Spades, Ace),
		NewCard(Hearts, King),
		NewCard(Clubs, Five),
	}
	shoe := Stack(want...)

	for i, expected := range want {
		if got := shoe.Draw(); got != expected {
			t.Errorf("Draw %d: expected %s, got %s", i, expected, got)
		}
	}
}

func TestCardValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		card  Card
		value int
	}{
		{NewCard(Spades, Two), 2},
		{NewCard(Hearts, Nine), 9},
		{NewCard(Diamonds, Ten), 10},
		{NewCard(Clubs, Jack), 10},
		{NewCard(Spades, Queen), 10},
		{NewCard(Hearts, King), 10},
		{NewCard(Diamonds, Ace), 11},
	}

	for _, tt := range tests {
		if got := tt.card.Value(); got != tt.value {
			t.Errorf("%s: expected value %d, got %d", tt.card, tt.value, got)
		}
	}
}
