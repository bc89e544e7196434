package deck

import (
	rand "math/rand/v2"
	"time"

	"github.com/Jcazt21/BLPG-sub002/internal/randutil"
)

// DefaultNumDecks is the number of 52-card packs in a fresh shoe.
const DefaultNumDecks = 4

// Shoe represents a multi-deck dealing shoe
type Shoe struct {
	cards    []Card
	numDecks int
	rng      *rand.Rand
}

// NewShoe creates a shuffled shoe of numDecks standard 52-card decks
func NewShoe(numDecks int) *Shoe {
	return NewShoeWithRNG(numDecks, randutil.New(time.Now().UnixNano()))
}

// NewShoeWithRNG creates a shuffled shoe using the provided RNG, for
// deterministic dealing in tests
func NewShoeWithRNG(numDecks int, rng *rand.Rand) *Shoe {
	if numDecks < 1 {
		numDecks = 1
	}
	s := &Shoe{
		cards:    make([]Card, 0, numDecks*52),
		numDecks: numDecks,
		rng:      rng,
	}
	s.Reshuffle()
	return s
}

// Draw removes and returns the top card. If the shoe is exhausted it is
// reshuffled first, so Draw always yields a card.
func (s *Shoe) Draw() Card {
	if len(s.cards) == 0 {
		s.Reshuffle()
	}
	card := s.cards[0]
	s.cards = s.cards[1:]
	return card
}

// Reshuffle restores the shoe to its full size and shuffles it
func (s *Shoe) Reshuffle() {
	s.cards = s.cards[:0]
	for d := 0; d < s.numDecks; d++ {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
	s.shuffle()
}

// CardsRemaining returns the number of cards left in the shoe
func (s *Shoe) CardsRemaining() int {
	return len(s.cards)
}

func (s *Shoe) shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Stack returns a shoe that deals the given cards in order without
// shuffling. Used by tests that need exact deals.
func Stack(cards ...Card) *Shoe {
	return &Shoe{
		cards:    cards,
		numDecks: 1,
		rng:      randutil.New(0),
	}
}
