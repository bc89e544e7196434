package game

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		code string
	}{
		{ErrInvalidAmount, "invalid_amount"},
		{ErrInsufficientBalance, "insufficient_balance"},
		{ErrBettingClosed, "betting_closed"},
		{ErrRoomNotFound, "room_not_found"},
		{ErrRoomFull, "room_full"},
		{ErrNotPlayerTurn, "not_player_turn"},
		{ErrCardNotInHand, "card_not_in_hand"},
		{ErrInvalidCard, "invalid_card"},
		{ErrGameNotStarted, "game_not_started"},
		{ErrWrongPhase, "wrong_phase"},
		{ErrPlayerNotFound, "player_not_found"},
		{ErrNotCreator, "not_creator"},
	}
	for _, tt := range tests {
		if got := ErrorCode(tt.err); got != tt.code {
			t.Errorf("ErrorCode(%v) = %q, want %q", tt.err, got, tt.code)
		}
	}

	if got := ErrorCode(fmt.Errorf("boom")); got != "internal_error" {
		t.Errorf("ErrorCode(plain error) = %q, want internal_error", got)
	}
}

func TestSentinelIdentity(t *testing.T) {
	t.Parallel()

	if !errors.Is(ErrBettingClosed, ErrBettingClosed) {
		t.Error("sentinel should match itself")
	}
	if errors.Is(ErrBettingClosed, ErrWrongPhase) {
		t.Error("distinct sentinels should not match")
	}
	wrapped := fmt.Errorf("placing bet: %w", ErrInsufficientBalance)
	if !errors.Is(wrapped, ErrInsufficientBalance) {
		t.Error("wrapped sentinel should still match")
	}
}
