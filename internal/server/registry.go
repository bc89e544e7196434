package server

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Jcazt21/BLPG-sub002/internal/game"
	"github.com/Jcazt21/BLPG-sub002/internal/roomid"
)

// RoomRegistry tracks the live rooms by code. It is an explicit object
// passed to the game service rather than process-global state, with
// explicit create/destroy so room lifetime is visible at the call sites.
type RoomRegistry struct {
	logger *log.Logger
	mu     sync.RWMutex
	rooms  map[string]*Room
	codes  *roomid.Generator
}

// NewRoomRegistry constructs an empty registry
func NewRoomRegistry(logger *log.Logger) *RoomRegistry {
	return &RoomRegistry{
		logger: logger.WithPrefix("registry"),
		rooms:  make(map[string]*Room),
		codes:  roomid.NewGenerator(nil),
	}
}

// Create allocates a room with a fresh, unused code
func (rr *RoomRegistry) Create(creator string, numDecks int) *Room {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	code := rr.codes.Generate()
	for {
		if _, taken := rr.rooms[code]; !taken {
			break
		}
		code = rr.codes.Generate()
	}

	room := NewRoom(code, creator, numDecks)
	rr.rooms[code] = room
	rr.logger.Info("Room created", "code", code, "creator", creator)
	return room
}

// Get retrieves a room by code
func (rr *RoomRegistry) Get(code string) (*Room, error) {
	rr.mu.RLock()
	defer rr.mu.RUnlock()

	room, ok := rr.rooms[code]
	if !ok {
		return nil, game.ErrRoomNotFound
	}
	return room, nil
}

// Destroy removes a room and cancels its outstanding timers so no stale
// callback can mutate a freed room
func (rr *RoomRegistry) Destroy(code string) {
	rr.mu.Lock()
	room, ok := rr.rooms[code]
	delete(rr.rooms, code)
	rr.mu.Unlock()

	if !ok {
		return
	}

	room.mu.Lock()
	room.destroyed = true
	room.stopTimers()
	room.mu.Unlock()

	rr.logger.Info("Room destroyed", "code", code)
}

// List returns lightweight metadata for every live room
func (rr *RoomRegistry) List() []RoomInfo {
	rr.mu.RLock()
	rooms := make([]*Room, 0, len(rr.rooms))
	for _, room := range rr.rooms {
		rooms = append(rooms, room)
	}
	rr.mu.RUnlock()

	infos := make([]RoomInfo, 0, len(rooms))
	for _, room := range rooms {
		room.mu.Lock()
		phase := game.PhaseWaiting
		if room.round != nil {
			phase = room.round.Phase
		}
		infos = append(infos, RoomInfo{
			RoomCode: room.Code,
			Players:  len(room.players),
			Phase:    string(phase),
		})
		room.mu.Unlock()
	}
	return infos
}
