package game

import (
	"errors"
	"math"
	"testing"
)

func TestValidateBetAmount(t *testing.T) {
	t.Parallel()

	bad := []float64{math.NaN(), math.Inf(1), math.Inf(-1), -5, 0, 10.5, 1e12}
	for _, amount := range bad {
		if err := ValidateBetAmount(amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("ValidateBetAmount(%v) = %v, want ErrInvalidAmount", amount, err)
		}
	}
	if err := ValidateBetAmount(100); err != nil {
		t.Errorf("ValidateBetAmount(100) = %v, want nil", err)
	}
}

func TestValidateBet(t *testing.T) {
	t.Parallel()

	p := NewPlayer("p", "p", 0, 500)

	tests := []struct {
		name   string
		amount int
		phase  Phase
		want   error
	}{
		{"ok", 100, PhaseBetting, nil},
		{"below minimum", 5, PhaseBetting, ErrInvalidAmount},
		{"zero", 0, PhaseBetting, ErrInvalidAmount},
		{"over available", 501, PhaseBetting, ErrInsufficientBalance},
		{"exact balance ok", 500, PhaseBetting, nil},
		{"wrong phase", 100, PhasePlaying, ErrBettingClosed},
		{"result phase", 100, PhaseResult, ErrBettingClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateBet(p, tt.amount, 10, 0, tt.phase)
			if !errors.Is(err, tt.want) {
				t.Errorf("ValidateBet = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBetConservation(t *testing.T) {
	t.Parallel()

	p := NewPlayer("p", "p", 0, 1000)
	before := p.Balance + p.CurrentBet

	// Arbitrary sequence of place/update/clear operations
	PlaceBet(p, 100)
	PlaceBet(p, 300) // replace, not stack
	if p.CurrentBet != 300 || p.Balance != 700 {
		t.Fatalf("update should replace: bet=%d balance=%d", p.CurrentBet, p.Balance)
	}
	PlaceBet(p, 50)
	ClearBet(p)
	PlaceBet(p, 999)
	PlaceBet(p, 1)

	if got := p.Balance + p.CurrentBet; got != before {
		t.Errorf("balance+bet = %d, want %d (conservation)", got, before)
	}
}

func TestAllInThenRaiseRejected(t *testing.T) {
	t.Parallel()

	// Player with 800 goes all-in: bet 800, balance 0. A later
	// updateBet(1000) must be rejected with state unchanged.
	p := NewPlayer("p", "p", 0, 800)

	amount := AllInAmount(p)
	if amount != 800 {
		t.Fatalf("all-in amount = %d, want 800", amount)
	}
	if err := ValidateBet(p, amount, 10, 0, PhaseBetting); err != nil {
		t.Fatalf("all-in should validate: %v", err)
	}
	PlaceBet(p, amount)
	if p.CurrentBet != 800 || p.Balance != 0 {
		t.Fatalf("after all-in: bet=%d balance=%d", p.CurrentBet, p.Balance)
	}

	err := ValidateBet(p, 1000, 10, 0, PhaseBetting)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Errorf("updateBet(1000) = %v, want ErrInsufficientBalance", err)
	}
	if p.CurrentBet != 800 || p.Balance != 0 {
		t.Errorf("rejected bet must not mutate state: bet=%d balance=%d", p.CurrentBet, p.Balance)
	}

	// Replacing the all-in with the same total is still legal
	if err := ValidateBet(p, 800, 10, 0, PhaseBetting); err != nil {
		t.Errorf("re-betting available chips should validate: %v", err)
	}
}

func TestClearBetRefunds(t *testing.T) {
	t.Parallel()

	p := NewPlayer("p", "p", 0, 400)
	PlaceBet(p, 250)
	ClearBet(p)

	if p.Balance != 400 || p.CurrentBet != 0 || p.HasPlacedBet {
		t.Errorf("clear: balance=%d bet=%d placed=%v", p.Balance, p.CurrentBet, p.HasPlacedBet)
	}
}
