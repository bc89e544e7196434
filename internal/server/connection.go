package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Jcazt21/BLPG-sub002/internal/game"
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	conn        *websocket.Conn
	send        chan *Message
	sessionID   string
	playerName  string
	roomCode    string
	logger      *log.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	mu          sync.RWMutex
	closeOnce   sync.Once
	gameService *GameService
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, gameService *GameService) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:        conn,
		send:        make(chan *Message, 256),
		logger:      logger.WithPrefix("conn"),
		ctx:         ctx,
		cancel:      cancel,
		gameService: gameService,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, expected during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close() // Ignore close errors
		return ErrConnectionClosed
	}
}

// SetSession associates this connection with an authenticated session
func (c *Connection) SetSession(sessionID, playerName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = sessionID
	c.playerName = playerName
}

// GetSession returns the associated session ID
func (c *Connection) GetSession() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

// GetPlayerName returns the authenticated display name
func (c *Connection) GetPlayerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerName
}

// SetRoom associates this connection with a room
func (c *Connection) SetRoom(roomCode string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomCode = roomCode
}

// GetRoom returns the associated room code
func (c *Connection) GetRoom() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomCode
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var (
	ErrConnectionClosed = websocket.ErrCloseSent
)

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "session", c.GetSession())

	switch msg.Type {
	case MessageTypeAuth:
		var data AuthData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse auth data")
			return
		}
		c.handleAuth(data)

	case MessageTypeCreateRoom:
		c.handleCreateRoom()

	case MessageTypeJoinRoom:
		var data JoinRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse join room data")
			return
		}
		c.handleJoinRoom(data)

	case MessageTypeLeaveRoom:
		c.handleLeaveRoom()

	case MessageTypeListRooms:
		c.handleListRooms()

	case MessageTypeStartGame:
		c.handleSimpleAction(msg.Type, c.gameService.StartGame)

	case MessageTypePlaceBet, MessageTypeUpdateBet:
		var data BetData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse bet data")
			return
		}
		c.handleBet(msg.Type, data)

	case MessageTypeClearBet:
		c.handleSimpleAction(msg.Type, c.gameService.ClearBet)

	case MessageTypeAllIn:
		c.handleSimpleAction(msg.Type, c.gameService.AllIn)

	case MessageTypeHit:
		c.handleSimpleAction(msg.Type, c.gameService.Hit)

	case MessageTypeStand:
		c.handleSimpleAction(msg.Type, c.gameService.Stand)

	case MessageTypeRestartRound:
		c.handleSimpleAction(msg.Type, c.gameService.RestartRound)

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg) // Ignore send errors during error handling
}

// sendActionError reports a rejected action with its typed error kind.
// Betting rejections go out as betting_error, everything else as
// action_error, so clients can route them to the right surface.
func (c *Connection) sendActionError(msgType MessageType, actionErr error) {
	kind := MessageTypeActionError
	switch msgType {
	case MessageTypePlaceBet, MessageTypeUpdateBet, MessageTypeClearBet, MessageTypeAllIn:
		kind = MessageTypeBettingError
	}

	msg, err := NewMessage(kind, ErrorData{
		Code:    game.ErrorCode(actionErr),
		Message: actionErr.Error(),
	})
	if err != nil {
		c.logger.Error("Failed to create action error message", "error", err)
		return
	}
	_ = c.SendMessage(msg) // Ignore send errors during error handling
}

func (c *Connection) handleAuth(data AuthData) {
	if data.PlayerName == "" {
		c.sendError("invalid_auth", "Player name required")
		return
	}

	sessionID := uuid.NewString()
	c.SetSession(sessionID, data.PlayerName)
	c.logger.Info("Session authenticated", "player", data.PlayerName, "session", sessionID)

	response, _ := NewMessage(MessageTypeAuthResponse, AuthResponseData{
		Success:   true,
		SessionID: sessionID,
	})
	_ = c.SendMessage(response) // Ignore send errors
}

// requireSession returns the session ID or sends an error and returns ""
func (c *Connection) requireSession() string {
	sessionID := c.GetSession()
	if sessionID == "" {
		c.sendError("not_authenticated", "Must authenticate first")
	}
	return sessionID
}

func (c *Connection) handleCreateRoom() {
	sessionID := c.requireSession()
	if sessionID == "" {
		return
	}

	code, err := c.gameService.CreateRoom(sessionID, c.GetPlayerName())
	if err != nil {
		c.sendActionError(MessageTypeCreateRoom, err)
		return
	}
	c.SetRoom(code)

	snap, _ := c.gameService.Snapshot(code)
	response, _ := NewMessage(MessageTypeRoomCreated, RoomCreatedData{
		RoomCode: code,
		Snapshot: snap,
	})
	_ = c.SendMessage(response) // Ignore send errors
}

func (c *Connection) handleJoinRoom(data JoinRoomData) {
	sessionID := c.requireSession()
	if sessionID == "" {
		return
	}

	if err := c.gameService.JoinRoom(data.RoomCode, sessionID, c.GetPlayerName()); err != nil {
		c.sendActionError(MessageTypeJoinRoom, err)
		return
	}
	c.SetRoom(data.RoomCode)

	// The join broadcast went out before this connection was addressable
	// by room code, so hand the joiner the current table state directly
	joined := RoomJoinedData{RoomCode: data.RoomCode}
	if snap, err := c.gameService.Snapshot(data.RoomCode); err == nil {
		joined.Players = snap.Players
		joined.Snapshot = snap
	}

	response, _ := NewMessage(MessageTypeRoomJoined, joined)
	_ = c.SendMessage(response) // Ignore send errors
}

func (c *Connection) handleLeaveRoom() {
	sessionID := c.requireSession()
	if sessionID == "" {
		return
	}
	roomCode := c.GetRoom()
	if roomCode == "" {
		return
	}

	if err := c.gameService.LeaveRoom(roomCode, sessionID); err != nil && !errors.Is(err, game.ErrRoomNotFound) {
		c.sendActionError(MessageTypeLeaveRoom, err)
		return
	}
	c.SetRoom("")

	response, _ := NewMessage(MessageTypeRoomLeft, RoomActionData{RoomCode: roomCode})
	_ = c.SendMessage(response) // Ignore send errors
}

func (c *Connection) handleListRooms() {
	response, _ := NewMessage(MessageTypeRoomList, RoomListData{
		Rooms: c.gameService.ListRooms(),
	})
	_ = c.SendMessage(response) // Ignore send errors
}

// handleSimpleAction runs an action that needs only the room and session
func (c *Connection) handleSimpleAction(msgType MessageType, action func(roomCode, sessionID string) error) {
	sessionID := c.requireSession()
	if sessionID == "" {
		return
	}
	roomCode := c.GetRoom()
	if roomCode == "" {
		c.sendActionError(msgType, game.ErrRoomNotFound)
		return
	}

	if err := action(roomCode, sessionID); err != nil {
		c.sendActionError(msgType, err)
	}
}

func (c *Connection) handleBet(msgType MessageType, data BetData) {
	sessionID := c.requireSession()
	if sessionID == "" {
		return
	}
	roomCode := data.RoomCode
	if roomCode == "" {
		roomCode = c.GetRoom()
	}
	if roomCode == "" {
		c.sendActionError(msgType, game.ErrRoomNotFound)
		return
	}

	if err := c.gameService.PlaceBet(roomCode, sessionID, data.Amount); err != nil {
		c.sendActionError(msgType, err)
	}
}
