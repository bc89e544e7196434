package server

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/Jcazt21/BLPG-sub002/internal/game"
)

// reshuffleThreshold is the minimum number of cards left in the shoe at
// round start; below it the shoe is reshuffled before dealing.
const reshuffleThreshold = 52

// Broadcaster publishes outbound events. The websocket server implements
// it; tests substitute a recorder.
type Broadcaster interface {
	BroadcastToRoom(roomCode string, msg *Message)
}

// GameService is the action surface of the blackjack rooms. Every public
// method validates, mutates inside the target room's critical section,
// and broadcasts the resulting state. Timer callbacks go through the same
// lock, so actions within one room are strictly serialized while separate
// rooms proceed in parallel.
type GameService struct {
	registry  *RoomRegistry
	broadcast Broadcaster
	logger    *log.Logger
	clock     quartz.Clock
	cfg       GameSettings
}

// NewGameService creates a game service
func NewGameService(registry *RoomRegistry, broadcast Broadcaster, logger *log.Logger, clock quartz.Clock, cfg GameSettings) *GameService {
	return &GameService{
		registry:  registry,
		broadcast: broadcast,
		logger:    logger.WithPrefix("game"),
		clock:     clock,
		cfg:       cfg,
	}
}

// CreateRoom allocates a room and seats the creator
func (gs *GameService) CreateRoom(sessionID, name string) (string, error) {
	room := gs.registry.Create(sessionID, gs.cfg.NumDecks)

	room.mu.Lock()
	defer room.mu.Unlock()

	player := game.NewPlayer(sessionID, name, room.claimSeat(), gs.cfg.StartingBalance)
	room.addPlayer(player)

	gs.logger.Info("Room created", "room", room.Code, "player", name)
	gs.broadcastSnapshot(room)
	return room.Code, nil
}

// JoinRoom seats a player. Joining mid-round is allowed; the player sits
// out until the next round starts.
func (gs *GameService) JoinRoom(roomCode, sessionID, name string) error {
	room, err := gs.registry.Get(roomCode)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.destroyed {
		return game.ErrRoomNotFound
	}
	if _, seated := room.players[sessionID]; seated {
		gs.broadcastSnapshot(room)
		return nil
	}
	if len(room.players) >= gs.cfg.MaxPlayers {
		return game.ErrRoomFull
	}

	player := game.NewPlayer(sessionID, name, room.claimSeat(), gs.cfg.StartingBalance)
	room.addPlayer(player)

	gs.logger.Info("Player joined", "room", roomCode, "player", name)
	gs.broadcastSnapshot(room)
	return nil
}

// LeaveRoom unseats a player. A player leaving mid-round forfeits their
// turn (treated as a stand); their bet stays escrowed until settlement.
// The last player leaving destroys the room.
func (gs *GameService) LeaveRoom(roomCode, sessionID string) error {
	room, err := gs.registry.Get(roomCode)
	if err != nil {
		return err
	}

	room.mu.Lock()

	player, seated := room.players[sessionID]
	if !seated {
		room.mu.Unlock()
		return game.ErrPlayerNotFound
	}

	if room.round != nil {
		switch room.round.Phase {
		case game.PhaseBetting, game.PhaseDealing:
			// No cards out yet: drop them from the round entirely so the
			// remaining players' betting completion is not held hostage
			room.round.RemovePlayer(sessionID)
			if room.round.Phase == game.PhaseBetting && len(room.round.Players) > 0 && room.round.AllBetsPlaced() {
				gs.endBetting(room)
			}
		case game.PhasePlaying:
			if current := room.round.CurrentPlayer(); current != nil && current.ID == sessionID {
				_ = room.round.Stand(sessionID) // Current turn: advance before unseating
				gs.afterPlayerAction(room)
			} else {
				player.MarkStand()
				if room.round.AllPlayersDone() {
					room.round.Phase = game.PhaseDealer
					gs.finishWithDealer(room)
				}
			}
		}
	}

	room.removePlayer(sessionID)
	empty := len(room.players) == 0

	gs.logger.Info("Player left", "room", roomCode, "player", player.Name)
	if !empty {
		gs.broadcastSnapshot(room)
	}
	room.mu.Unlock()

	if empty {
		gs.registry.Destroy(roomCode)
	}
	return nil
}

// ListRooms returns metadata for the lobby
func (gs *GameService) ListRooms() []RoomInfo {
	return gs.registry.List()
}

// Snapshot returns the room's current state. Used to seed a client that
// was not yet addressable when the last broadcast went out, such as a
// player joining mid-round.
func (gs *GameService) Snapshot(roomCode string) (*StateSnapshot, error) {
	room, err := gs.registry.Get(roomCode)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.destroyed {
		return nil, game.ErrRoomNotFound
	}
	return room.snapshot(), nil
}

// StartGame moves the room from waiting into the betting phase. Only the
// creator can start, and the roster must be within the configured bounds.
func (gs *GameService) StartGame(roomCode, sessionID string) error {
	room, err := gs.registry.Get(roomCode)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if sessionID != room.Creator {
		return game.ErrNotCreator
	}
	if room.round != nil && room.round.Phase != game.PhaseResult {
		return game.ErrWrongPhase
	}
	if len(room.players) < gs.cfg.MinPlayers || len(room.players) > gs.cfg.MaxPlayers {
		return game.ErrGameNotStarted
	}

	gs.startRound(room)
	return nil
}

// RestartRound begins the next round after results are shown. Any seated
// player can trigger it.
func (gs *GameService) RestartRound(roomCode, sessionID string) error {
	room, err := gs.registry.Get(roomCode)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if _, seated := room.players[sessionID]; !seated {
		return game.ErrPlayerNotFound
	}
	if room.round == nil {
		return game.ErrGameNotStarted
	}
	if room.round.Phase != game.PhaseResult {
		return game.ErrWrongPhase
	}

	gs.startRound(room)
	return nil
}

// PlaceBet places or replaces a bet. UpdateBet is the same operation: the
// new amount replaces the old, with the previous bet refunded first.
func (gs *GameService) PlaceBet(roomCode, sessionID string, amount float64) error {
	room, err := gs.registry.Get(roomCode)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.round == nil {
		return game.ErrGameNotStarted
	}
	if err := game.ValidateBetAmount(amount); err != nil {
		return err
	}
	if err := room.round.PlaceBet(sessionID, int(amount)); err != nil {
		return err
	}

	gs.broadcastSnapshot(room)
	if room.round.AllBetsPlaced() {
		gs.endBetting(room)
	}
	return nil
}

// UpdateBet replaces the current bet with a new amount
func (gs *GameService) UpdateBet(roomCode, sessionID string, amount float64) error {
	return gs.PlaceBet(roomCode, sessionID, amount)
}

// ClearBet returns an escrowed bet to the player's balance
func (gs *GameService) ClearBet(roomCode, sessionID string) error {
	room, err := gs.registry.Get(roomCode)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.round == nil {
		return game.ErrGameNotStarted
	}
	if err := room.round.ClearBet(sessionID); err != nil {
		return err
	}

	gs.broadcastSnapshot(room)
	return nil
}

// AllIn bets the player's entire available chips
func (gs *GameService) AllIn(roomCode, sessionID string) error {
	room, err := gs.registry.Get(roomCode)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.round == nil {
		return game.ErrGameNotStarted
	}
	if err := room.round.AllIn(sessionID); err != nil {
		return err
	}

	gs.broadcastSnapshot(room)
	if room.round.AllBetsPlaced() {
		gs.endBetting(room)
	}
	return nil
}

// Hit draws a card for the acting player
func (gs *GameService) Hit(roomCode, sessionID string) error {
	room, err := gs.registry.Get(roomCode)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.round == nil {
		return game.ErrGameNotStarted
	}
	if _, err := room.round.Hit(sessionID); err != nil {
		return err
	}

	gs.afterPlayerAction(room)
	return nil
}

// Stand ends the acting player's turn
func (gs *GameService) Stand(roomCode, sessionID string) error {
	room, err := gs.registry.Get(roomCode)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.round == nil {
		return game.ErrGameNotStarted
	}
	if err := room.round.Stand(sessionID); err != nil {
		return err
	}

	gs.afterPlayerAction(room)
	return nil
}

// --- internal transitions; all callers hold room.mu ---

// startRound creates a fresh round and arms the betting countdown
func (gs *GameService) startRound(room *Room) {
	room.stopTimers()

	if room.shoe.CardsRemaining() < reshuffleThreshold {
		room.shoe.Reshuffle()
	}

	room.round = game.NewRound(room.playersInOrder(), room.shoe, gs.cfg.MinBet, gs.cfg.MaxBet, gs.cfg.BettingSeconds)
	room.timerRoundID = room.round.ID

	gs.logger.Info("Round started", "room", room.Code, "round", room.round.ID, "players", len(room.round.Players))
	gs.broadcastSnapshot(room)
	gs.armCountdownTick(room)
}

// armCountdownTick schedules the next one-second betting countdown tick
func (gs *GameService) armCountdownTick(room *Room) {
	roundID := room.round.ID
	if room.countdownTimer != nil {
		room.countdownTimer.Stop()
	}
	room.countdownTimer = gs.clock.AfterFunc(time.Second, func() {
		room.mu.Lock()
		defer room.mu.Unlock()

		// Stale tick: the round moved on while this was in flight
		if room.destroyed || room.round == nil || room.round.ID != roundID || room.round.Phase != game.PhaseBetting {
			return
		}

		room.round.Countdown--
		if room.round.Countdown <= 0 {
			room.round.Countdown = 0
			gs.endBetting(room)
			return
		}
		gs.broadcastSnapshot(room)
		gs.armCountdownTick(room)
	})
}

// endBetting closes the betting phase: the countdown stops, unplaced bets
// are forced to the minimum through the normal validated path, and after
// a short lock-in delay the deal begins. Safe to reach from both the
// countdown and the all-bets-placed trigger; the phase guard makes the
// second arrival a no-op.
func (gs *GameService) endBetting(room *Room) {
	if room.round == nil || room.round.Phase != game.PhaseBetting {
		return
	}

	forced := room.round.ForceMinimumBets()
	room.round.Phase = game.PhaseDealing // No further bet mutations accepted
	room.round.Countdown = 0

	if room.countdownTimer != nil {
		room.countdownTimer.Stop()
		room.countdownTimer = nil
	}

	gs.logger.Info("Betting ended", "room", room.Code, "round", room.round.ID, "forced", len(forced))
	gs.broadcastEvent(room, MessageTypeBettingPhaseEnded, BettingPhaseEndedData{
		RoomCode:  room.Code,
		ForcedIDs: forced,
	})
	gs.broadcastSnapshot(room)

	roundID := room.round.ID
	room.dealTimer = gs.clock.AfterFunc(gs.cfg.DealDelay(), func() {
		room.mu.Lock()
		defer room.mu.Unlock()

		if room.destroyed || room.round == nil || room.round.ID != roundID || room.round.Phase != game.PhaseDealing {
			return
		}
		gs.deal(room)
	})
}

// deal runs the opening deal and starts the turn loop
func (gs *GameService) deal(room *Room) {
	if err := room.round.DealInitial(); err != nil {
		gs.logger.Error("Deal failed", "room", room.Code, "error", err)
		return
	}

	gs.broadcastSnapshot(room)
	if room.round.Phase == game.PhaseDealer {
		gs.finishWithDealer(room)
		return
	}
	gs.armTurnTimer(room)
}

// armTurnTimer starts the per-turn timeout for the current player. The
// callback re-checks round, phase and player under the lock, so a stand
// racing the timeout resolves to exactly one of the two.
func (gs *GameService) armTurnTimer(room *Room) {
	room.stopTurnTimer()

	current := room.round.CurrentPlayer()
	if current == nil {
		return
	}

	roundID := room.round.ID
	playerID := current.ID
	room.turnTimer = gs.clock.AfterFunc(gs.cfg.TurnTimeout(), func() {
		room.mu.Lock()
		defer room.mu.Unlock()

		if room.destroyed || room.round == nil || room.round.ID != roundID || room.round.Phase != game.PhasePlaying {
			return
		}
		acting := room.round.CurrentPlayer()
		if acting == nil || acting.ID != playerID {
			return
		}

		gs.logger.Info("Turn timeout, forcing stand", "room", room.Code, "player", playerID)
		if err := room.round.Stand(playerID); err != nil {
			return
		}
		gs.afterPlayerAction(room)
	})

	gs.broadcastEvent(room, MessageTypeTurnTimerStarted, TurnTimerStartedData{
		RoomCode:       room.Code,
		PlayerID:       playerID,
		TimeoutSeconds: gs.cfg.TurnTimeoutSeconds,
	})
}

// afterPlayerAction handles the common post-action flow: either the
// playing phase continues with a fresh turn timer, or everyone is done
// and the dealer plays out
func (gs *GameService) afterPlayerAction(room *Room) {
	gs.broadcastSnapshot(room)
	if room.round.Phase == game.PhaseDealer {
		gs.finishWithDealer(room)
		return
	}
	gs.armTurnTimer(room)
}

// finishWithDealer reveals the hole card, plays the house hand, settles
// payouts and broadcasts the round result
func (gs *GameService) finishWithDealer(room *Room) {
	room.stopTurnTimer()

	if err := room.round.PlayDealer(); err != nil {
		gs.logger.Error("Dealer play failed", "room", room.Code, "error", err)
		return
	}
	results, err := room.round.Settle()
	if err != nil {
		gs.logger.Error("Settlement failed", "room", room.Code, "error", err)
		return
	}

	gs.logger.Info("Round settled", "room", room.Code, "round", room.round.ID, "results", len(results))
	gs.broadcastSnapshot(room)
	gs.broadcastEvent(room, MessageTypeRoundResult, RoundResultData{
		RoomCode: room.Code,
		RoundID:  room.round.ID,
		Results:  results,
	})
}

// broadcastSnapshot publishes the room's full state
func (gs *GameService) broadcastSnapshot(room *Room) {
	msg, err := NewMessage(MessageTypeGameState, room.snapshot())
	if err != nil {
		gs.logger.Error("Failed to build snapshot message", "error", err)
		return
	}
	gs.broadcast.BroadcastToRoom(room.Code, msg)
}

// broadcastEvent publishes a phase-transition marker
func (gs *GameService) broadcastEvent(room *Room, msgType MessageType, data interface{}) {
	msg, err := NewMessage(msgType, data)
	if err != nil {
		gs.logger.Error("Failed to build event message", "error", err, "type", msgType)
		return
	}
	gs.broadcast.BroadcastToRoom(room.Code, msg)
}
