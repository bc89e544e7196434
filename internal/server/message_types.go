package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
const (
	// Client to server messages
	MessageTypeAuth         MessageType = "auth"
	MessageTypeCreateRoom   MessageType = "create_room"
	MessageTypeJoinRoom     MessageType = "join_room"
	MessageTypeLeaveRoom    MessageType = "leave_room"
	MessageTypeListRooms    MessageType = "list_rooms"
	MessageTypeStartGame    MessageType = "start_game"
	MessageTypePlaceBet     MessageType = "place_bet"
	MessageTypeUpdateBet    MessageType = "update_bet"
	MessageTypeClearBet     MessageType = "clear_bet"
	MessageTypeAllIn        MessageType = "all_in"
	MessageTypeHit          MessageType = "hit"
	MessageTypeStand        MessageType = "stand"
	MessageTypeRestartRound MessageType = "restart_round"

	// Server to client messages
	MessageTypeAuthResponse      MessageType = "auth_response"
	MessageTypeRoomCreated       MessageType = "room_created"
	MessageTypeRoomJoined        MessageType = "room_joined"
	MessageTypeRoomLeft          MessageType = "room_left"
	MessageTypeRoomList          MessageType = "room_list"
	MessageTypeGameState         MessageType = "game_state"
	MessageTypeBettingError      MessageType = "betting_error"
	MessageTypeActionError       MessageType = "action_error"
	MessageTypeTurnTimerStarted  MessageType = "turn_timer_started"
	MessageTypeBettingPhaseEnded MessageType = "betting_phase_ended"
	MessageTypeRoundResult       MessageType = "round_result"
	MessageTypeError             MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
