package game

// Error is a typed validation failure. The Code is stable and goes out on
// the wire; callers match with errors.Is against the sentinel values below.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrInvalidAmount       = &Error{Code: "invalid_amount", Message: "bet amount is invalid"}
	ErrInsufficientBalance = &Error{Code: "insufficient_balance", Message: "not enough chips for this bet"}
	ErrBettingClosed       = &Error{Code: "betting_closed", Message: "bets can only be placed during the betting phase"}
	ErrRoomNotFound        = &Error{Code: "room_not_found", Message: "room does not exist"}
	ErrRoomFull            = &Error{Code: "room_full", Message: "room is full"}
	ErrNotPlayerTurn       = &Error{Code: "not_player_turn", Message: "it is not your turn"}

	// Reserved wire codes for card-targeted actions (split, surrender of
	// a specific hand). No current intent carries a card, so nothing
	// returns them yet; clients should still handle the codes.
	ErrCardNotInHand  = &Error{Code: "card_not_in_hand", Message: "card is not in your hand"}
	ErrInvalidCard    = &Error{Code: "invalid_card", Message: "card is not valid"}
	ErrGameNotStarted = &Error{Code: "game_not_started", Message: "game has not started"}
	ErrWrongPhase     = &Error{Code: "wrong_phase", Message: "action not allowed in the current phase"}
	ErrPlayerNotFound = &Error{Code: "player_not_found", Message: "player is not in this room"}
	ErrNotCreator     = &Error{Code: "not_creator", Message: "only the room creator can do that"}
)

// ErrorCode extracts the wire code from an error, falling back to a
// generic code for unexpected failures.
func ErrorCode(err error) string {
	if gErr, ok := err.(*Error); ok {
		return gErr.Code
	}
	return "internal_error"
}
