package server

import (
	"sync"

	"github.com/Jcazt21/BLPG-sub002/internal/deck"
	"github.com/Jcazt21/BLPG-sub002/internal/game"
	"github.com/coder/quartz"
)

// Room is the aggregate for one table: seated players, the current round,
// and the timers that drive it. All mutation happens under mu, so an
// inbound action and a firing timer can never interleave; whichever takes
// the lock first wins and the loser sees the updated phase/round and
// backs off.
type Room struct {
	Code    string
	Creator string

	mu       sync.Mutex
	players  map[string]*game.Player
	order    []string // join order; defines seating and turn order
	nextSeat int      // monotonic, so a leave-then-join never reuses a seat
	round    *game.Round
	shoe     *deck.Shoe

	// Timer handles, always cancelled/replaced on phase transitions.
	// timerRoundID records which round a timer was armed for so a stale
	// callback that lost the lock race becomes a no-op.
	countdownTimer *quartz.Timer
	dealTimer      *quartz.Timer
	turnTimer      *quartz.Timer
	timerRoundID   string

	destroyed bool
}

// NewRoom creates an empty room with a fresh shoe
func NewRoom(code, creator string, numDecks int) *Room {
	return &Room{
		Code:    code,
		Creator: creator,
		players: make(map[string]*game.Player),
		shoe:    deck.NewShoe(numDecks),
	}
}

// addPlayer seats a player at the next free position. Caller holds mu.
func (r *Room) addPlayer(p *game.Player) {
	r.players[p.ID] = p
	r.order = append(r.order, p.ID)
}

// claimSeat hands out the next seat number. Caller holds mu.
func (r *Room) claimSeat() int {
	seat := r.nextSeat
	r.nextSeat++
	return seat
}

// removePlayer unseats a player. Caller holds mu.
func (r *Room) removePlayer(playerID string) {
	delete(r.players, playerID)
	for i, id := range r.order {
		if id == playerID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// playersInOrder returns the seated players in join order. Caller holds mu.
func (r *Room) playersInOrder() []*game.Player {
	players := make([]*game.Player, 0, len(r.order))
	for _, id := range r.order {
		if p, ok := r.players[id]; ok {
			players = append(players, p)
		}
	}
	return players
}

// stopTimers cancels every outstanding timer. Caller holds mu.
func (r *Room) stopTimers() {
	if r.countdownTimer != nil {
		r.countdownTimer.Stop()
		r.countdownTimer = nil
	}
	if r.dealTimer != nil {
		r.dealTimer.Stop()
		r.dealTimer = nil
	}
	if r.turnTimer != nil {
		r.turnTimer.Stop()
		r.turnTimer = nil
	}
}

// stopTurnTimer cancels only the per-turn timer. Caller holds mu.
func (r *Room) stopTurnTimer() {
	if r.turnTimer != nil {
		r.turnTimer.Stop()
		r.turnTimer = nil
	}
}

// snapshot builds the broadcastable view of the room. Caller holds mu.
func (r *Room) snapshot() *StateSnapshot {
	snap := &StateSnapshot{
		RoomCode: r.Code,
		Phase:    game.PhaseWaiting,
	}

	for _, p := range r.playersInOrder() {
		snap.Players = append(snap.Players, PlayerViewFromGame(p))
	}

	if r.round != nil {
		snap.RoundID = r.round.ID
		snap.Phase = r.round.Phase
		snap.Dealer = DealerViewFromGame(r.round.Dealer)
		snap.Countdown = r.round.Countdown
		snap.MinBet = r.round.MinBet
		snap.MaxBet = r.round.MaxBet
		snap.Pot = r.round.Pot()
		snap.Results = r.round.Results
		if current := r.round.CurrentPlayer(); current != nil {
			snap.CurrentPlayerID = current.ID
		}
	}

	return snap
}
