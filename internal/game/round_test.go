package game

import (
	"errors"
	"testing"

	"github.com/Jcazt21/BLPG-sub002/internal/deck"
)

func card(suit deck.Suit, rank deck.Rank) deck.Card {
	return deck.NewCard(suit, rank)
}

func newTestRound(t *testing.T, shoe DeckSource, balances ...int) *Round {
	t.Helper()
	players := make([]*Player, len(balances))
	ids := []string{"p1", "p2", "p3", "p4"}
	for i, b := range balances {
		players[i] = NewPlayer(ids[i], ids[i], i, b)
	}
	return NewRound(players, shoe, 10, 0, 30)
}

func TestRoundStartsInBetting(t *testing.T) {
	t.Parallel()

	r := newTestRound(t, deck.NewShoe(1), 1000, 1000)
	if r.Phase != PhaseBetting {
		t.Errorf("phase = %s, want betting", r.Phase)
	}
	if r.ID == "" {
		t.Error("round must carry an ID")
	}
	if r.Turn != -1 {
		t.Errorf("turn = %d, want -1 before dealing", r.Turn)
	}
}

func TestDealOrderFollowsCasinoProcedure(t *testing.T) {
	t.Parallel()

	// Stack the shoe: p1 and p2 first-pass cards, dealer up card, p1 and
	// p2 second-pass cards, dealer hole card.
	shoe := deck.Stack(
		card(deck.Spades, deck.Two),    // p1 first
		card(deck.Hearts, deck.Three),  // p2 first
		card(deck.Clubs, deck.King),    // dealer up
		card(deck.Diamonds, deck.Four), // p1 second
		card(deck.Spades, deck.Five),   // p2 second
		card(deck.Hearts, deck.Nine),   // dealer hole
	)
	r := newTestRound(t, shoe, 1000, 1000)
	if err := r.PlaceBet("p1", 100); err != nil {
		t.Fatal(err)
	}
	if err := r.PlaceBet("p2", 100); err != nil {
		t.Fatal(err)
	}
	if err := r.DealInitial(); err != nil {
		t.Fatal(err)
	}

	p1, p2 := r.Players[0], r.Players[1]
	if p1.Hand[0] != card(deck.Spades, deck.Two) || p1.Hand[1] != card(deck.Diamonds, deck.Four) {
		t.Errorf("p1 hand out of order: %v", p1.Hand)
	}
	if p2.Hand[0] != card(deck.Hearts, deck.Three) || p2.Hand[1] != card(deck.Spades, deck.Five) {
		t.Errorf("p2 hand out of order: %v", p2.Hand)
	}
	if r.Dealer.Hand[0] != card(deck.Clubs, deck.King) || r.Dealer.Hand[1] != card(deck.Hearts, deck.Nine) {
		t.Errorf("dealer hand out of order: %v", r.Dealer.Hand)
	}
	if r.Dealer.HoleRevealed {
		t.Error("hole card must stay hidden after the deal")
	}
	if r.Phase != PhasePlaying {
		t.Errorf("phase = %s, want playing", r.Phase)
	}
	if r.Turn != 0 {
		t.Errorf("turn = %d, want 0", r.Turn)
	}
}

func TestPlayerWithoutBetSitsOut(t *testing.T) {
	t.Parallel()

	r := newTestRound(t, deck.NewShoe(1), 1000, 5) // p2 cannot cover min bet 10
	if err := r.PlaceBet("p1", 50); err != nil {
		t.Fatal(err)
	}
	if !r.AllBetsPlaced() {
		t.Error("unfunded player must not block betting completion")
	}
	if err := r.DealInitial(); err != nil {
		t.Fatal(err)
	}

	p2 := r.Players[1]
	if len(p2.Hand) != 0 {
		t.Errorf("sat-out player dealt cards: %v", p2.Hand)
	}
	if !p2.IsStand {
		t.Error("sat-out player must be marked standing")
	}
}

func TestForceMinimumBets(t *testing.T) {
	t.Parallel()

	r := newTestRound(t, deck.NewShoe(1), 1000, 1000, 5)
	if err := r.PlaceBet("p1", 200); err != nil {
		t.Fatal(err)
	}

	forced := r.ForceMinimumBets()
	if len(forced) != 1 || forced[0] != "p2" {
		t.Fatalf("forced = %v, want [p2]", forced)
	}

	p2 := r.Players[1]
	if p2.CurrentBet != 10 || p2.Balance != 990 || !p2.HasPlacedBet {
		t.Errorf("forced bet state: bet=%d balance=%d", p2.CurrentBet, p2.Balance)
	}
	// p3 cannot afford the minimum: untouched
	p3 := r.Players[2]
	if p3.HasPlacedBet || p3.Balance != 5 {
		t.Errorf("unfunded player must be left out: %+v", p3)
	}
}

func TestTurnAdvancesForwardAndWraps(t *testing.T) {
	t.Parallel()

	// Low cards so nobody naturals or busts during the deal.
	shoe := deck.Stack(
		card(deck.Spades, deck.Two), card(deck.Hearts, deck.Two), card(deck.Clubs, deck.Two),
		card(deck.Diamonds, deck.Six), // dealer up
		card(deck.Spades, deck.Three), card(deck.Hearts, deck.Three), card(deck.Clubs, deck.Three),
		card(deck.Diamonds, deck.Ten), // dealer hole
		card(deck.Spades, deck.Seven), // dealer draw
	)
	r := newTestRound(t, shoe, 1000, 1000, 1000)
	for _, id := range []string{"p1", "p2", "p3"} {
		if err := r.PlaceBet(id, 10); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.DealInitial(); err != nil {
		t.Fatal(err)
	}

	// Each player gets exactly one turn; n stands end the phase.
	order := []string{}
	for i := 0; i < 3; i++ {
		current := r.CurrentPlayer()
		if current == nil {
			t.Fatalf("no current player at step %d", i)
		}
		order = append(order, current.ID)
		if err := r.Stand(current.ID); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{"p1", "p2", "p3"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("turn order = %v, want %v", order, want)
		}
	}
	if r.Phase != PhaseDealer {
		t.Errorf("phase after all stands = %s, want dealer", r.Phase)
	}
}

func TestOutOfTurnActionsRejected(t *testing.T) {
	t.Parallel()

	shoe := deck.Stack(
		card(deck.Spades, deck.Two), card(deck.Hearts, deck.Two),
		card(deck.Diamonds, deck.Six),
		card(deck.Spades, deck.Three), card(deck.Hearts, deck.Three),
		card(deck.Diamonds, deck.Ten),
	)
	r := newTestRound(t, shoe, 1000, 1000)
	_ = r.PlaceBet("p1", 10)
	_ = r.PlaceBet("p2", 10)
	if err := r.DealInitial(); err != nil {
		t.Fatal(err)
	}

	if err := r.Stand("p2"); !errors.Is(err, ErrNotPlayerTurn) {
		t.Errorf("out-of-turn stand = %v, want ErrNotPlayerTurn", err)
	}
	if _, err := r.Hit("p2"); !errors.Is(err, ErrNotPlayerTurn) {
		t.Errorf("out-of-turn hit = %v, want ErrNotPlayerTurn", err)
	}
	// State unchanged: still p1's turn
	if current := r.CurrentPlayer(); current == nil || current.ID != "p1" {
		t.Error("rejected action must not advance turn")
	}
}

func TestHitBustAdvancesTurn(t *testing.T) {
	t.Parallel()

	shoe := deck.Stack(
		card(deck.Spades, deck.King), card(deck.Hearts, deck.Two),
		card(deck.Diamonds, deck.Six),
		card(deck.Spades, deck.Queen), card(deck.Hearts, deck.Three),
		card(deck.Diamonds, deck.Ten),
		card(deck.Clubs, deck.Five), // p1 hit: 20 + 5 busts
	)
	r := newTestRound(t, shoe, 1000, 1000)
	_ = r.PlaceBet("p1", 10)
	_ = r.PlaceBet("p2", 10)
	if err := r.DealInitial(); err != nil {
		t.Fatal(err)
	}

	if _, err := r.Hit("p1"); err != nil {
		t.Fatal(err)
	}
	p1 := r.Players[0]
	if !p1.IsBust || p1.Status != StatusBust {
		t.Errorf("p1 should be bust: total=%d status=%s", p1.Total, p1.Status)
	}
	if current := r.CurrentPlayer(); current == nil || current.ID != "p2" {
		t.Error("bust must advance the turn")
	}
}

func TestDealerDrawsToSeventeen(t *testing.T) {
	t.Parallel()

	shoe := deck.Stack(
		card(deck.Spades, deck.Ten), card(deck.Diamonds, deck.Two), // dealer up
		card(deck.Hearts, deck.Nine),
		card(deck.Diamonds, deck.Four), // dealer hole: 6
		card(deck.Clubs, deck.Five),    // draw: 11
		card(deck.Clubs, deck.Six),     // draw: 17, stop
		card(deck.Clubs, deck.King),    // must not be drawn
	)
	r := newTestRound(t, shoe, 1000)
	_ = r.PlaceBet("p1", 10)
	if err := r.DealInitial(); err != nil {
		t.Fatal(err)
	}
	if err := r.Stand("p1"); err != nil {
		t.Fatal(err)
	}

	if err := r.PlayDealer(); err != nil {
		t.Fatal(err)
	}
	if !r.Dealer.HoleRevealed {
		t.Error("dealer play must reveal the hole card")
	}
	if r.Dealer.Total != 17 {
		t.Errorf("dealer total = %d, want 17", r.Dealer.Total)
	}
	if len(r.Dealer.Hand) != 4 {
		t.Errorf("dealer drew %d cards, want 4", len(r.Dealer.Hand))
	}
}

func TestSettlePopulatesResults(t *testing.T) {
	t.Parallel()

	// p1 gets a natural, dealer stands on 19: payout 250 on a 100 bet.
	shoe := deck.Stack(
		card(deck.Spades, deck.Ace), card(deck.Diamonds, deck.Ten),
		card(deck.Hearts, deck.King),
		card(deck.Diamonds, deck.Nine),
	)
	r := newTestRound(t, shoe, 2000)
	if err := r.PlaceBet("p1", 100); err != nil {
		t.Fatal(err)
	}
	if err := r.DealInitial(); err != nil {
		t.Fatal(err)
	}

	// Natural skips the player turn entirely
	if r.Phase != PhaseDealer {
		t.Fatalf("phase = %s, want dealer after a lone natural", r.Phase)
	}
	if err := r.PlayDealer(); err != nil {
		t.Fatal(err)
	}
	results, err := r.Settle()
	if err != nil {
		t.Fatal(err)
	}

	res, ok := results["p1"]
	if !ok {
		t.Fatal("missing result for p1")
	}
	if res.Status != OutcomeBlackjack || res.Payout != 250 || res.FinalBalance != 2150 {
		t.Errorf("result = %+v", res)
	}
	if r.Phase != PhaseResult {
		t.Errorf("phase = %s, want result", r.Phase)
	}
	if r.Players[0].CurrentBet != 100 {
		t.Error("settlement must not reset the bet")
	}
}

func TestSettleRejectedOutsideDealerPhase(t *testing.T) {
	t.Parallel()

	r := newTestRound(t, deck.NewShoe(1), 1000)
	if _, err := r.Settle(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("settle in betting = %v, want ErrWrongPhase", err)
	}
}

func TestNewRoundPreservesBalancesAndStats(t *testing.T) {
	t.Parallel()

	shoe := deck.NewShoe(1)
	p := NewPlayer("p1", "p1", 0, 1000)
	r := NewRound([]*Player{p}, shoe, 10, 0, 30)
	if err := r.PlaceBet("p1", 100); err != nil {
		t.Fatal(err)
	}
	_ = r.DealInitial()
	if r.Phase == PhasePlaying {
		_ = r.Stand("p1")
	}
	_ = r.PlayDealer()
	if _, err := r.Settle(); err != nil {
		t.Fatal(err)
	}

	balance := p.Balance
	stats := p.Stats

	next := NewRound([]*Player{p}, shoe, 10, 0, 30)
	if p.Balance != balance {
		t.Errorf("restart changed balance: %d -> %d", balance, p.Balance)
	}
	if p.Stats != stats {
		t.Errorf("restart changed stats: %+v -> %+v", stats, p.Stats)
	}
	if len(p.Hand) != 0 || p.CurrentBet != 0 || p.HasPlacedBet || p.Status != StatusPlaying {
		t.Errorf("per-round fields not reset: %+v", p)
	}
	if next.ID == r.ID {
		t.Error("new round must carry a fresh ID")
	}
}
