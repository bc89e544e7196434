package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Jcazt21/BLPG-sub002/internal/client"
	"github.com/Jcazt21/BLPG-sub002/internal/game"
	"github.com/Jcazt21/BLPG-sub002/internal/server"
)

// SetupNetworkHandlers wires incoming server events into the TUI
func SetupNetworkHandlers(c *client.Client, m *Model) {
	c.AddEventHandler(server.MessageTypeAuthResponse, func(msg *server.Message) {
		var data server.AuthResponseData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return
		}
		if data.Success {
			m.AddLogEntry(SuccessStyle.Render("Authenticated as " + c.GetPlayerName()))
		} else {
			m.AddLogEntry(ErrorStyle.Render("Auth failed: " + data.Error))
		}
	})

	c.AddEventHandler(server.MessageTypeRoomCreated, func(msg *server.Message) {
		var data server.RoomCreatedData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return
		}
		c.SetRoomCode(data.RoomCode)
		if data.Snapshot != nil {
			m.SetSnapshot(data.Snapshot)
		}
		m.AddLogEntry(SuccessStyle.Render("Room created: " + data.RoomCode))
		m.AddLogEntry("Share the code, then /start when everyone is in")
	})

	c.AddEventHandler(server.MessageTypeRoomJoined, func(msg *server.Message) {
		var data server.RoomJoinedData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return
		}
		c.SetRoomCode(data.RoomCode)
		m.AddLogEntry(SuccessStyle.Render("Joined room " + data.RoomCode))
		if data.Snapshot != nil {
			m.SetSnapshot(data.Snapshot)
		}
	})

	c.AddEventHandler(server.MessageTypeRoomLeft, func(msg *server.Message) {
		c.SetRoomCode("")
		m.SetSnapshot(nil)
		m.AddLogEntry("Left the room")
	})

	c.AddEventHandler(server.MessageTypeRoomList, func(msg *server.Message) {
		var data server.RoomListData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return
		}
		if len(data.Rooms) == 0 {
			m.AddLogEntry("No open rooms")
			return
		}
		m.AddLogEntry(HandInfoStyle.Render("Open rooms:"))
		for _, room := range data.Rooms {
			m.AddLogEntry(fmt.Sprintf("  %s  %d players  (%s)", room.RoomCode, room.Players, room.Phase))
		}
	})

	c.AddEventHandler(server.MessageTypeGameState, func(msg *server.Message) {
		var snap server.StateSnapshot
		if err := json.Unmarshal(msg.Data, &snap); err != nil {
			return
		}
		m.SetSnapshot(&snap)
		logPhaseTransitions(m, &snap)
	})

	c.AddEventHandler(server.MessageTypeBettingPhaseEnded, func(msg *server.Message) {
		var data server.BettingPhaseEndedData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return
		}
		m.AddLogEntry(WarningStyle.Render("Bets are locked, dealing..."))
		if len(data.ForcedIDs) > 0 {
			m.AddLogEntry(InfoStyle.Render(fmt.Sprintf("%d player(s) were assigned the minimum bet", len(data.ForcedIDs))))
		}
	})

	c.AddEventHandler(server.MessageTypeTurnTimerStarted, func(msg *server.Message) {
		var data server.TurnTimerStartedData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return
		}
		m.AddLogEntry(InfoStyle.Render(fmt.Sprintf("Turn timer: %ds to act", data.TimeoutSeconds)))
	})

	c.AddEventHandler(server.MessageTypeRoundResult, func(msg *server.Message) {
		var data server.RoundResultData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return
		}
		m.AddLogEntry(HandInfoStyle.Render("=== Round over ==="))
		for playerID, result := range data.Results {
			name := playerID
			if snap := currentSnapshot(m); snap != nil {
				for _, p := range snap.Players {
					if p.ID == playerID {
						name = p.Name
					}
				}
			}
			line := fmt.Sprintf("%s: %s", name, formatOutcome(result.Status))
			if result.Payout > 0 {
				line += fmt.Sprintf("  +$%d", result.Payout)
			}
			line += fmt.Sprintf("  (balance $%d)", result.FinalBalance)
			m.AddLogEntry(line)
		}
		m.AddLogEntry("/next to play again")
	})

	c.AddEventHandler(server.MessageTypeBettingError, func(msg *server.Message) {
		logWireError(m, msg, "Bet rejected")
	})
	c.AddEventHandler(server.MessageTypeActionError, func(msg *server.Message) {
		logWireError(m, msg, "Action rejected")
	})
	c.AddEventHandler(server.MessageTypeError, func(msg *server.Message) {
		logWireError(m, msg, "Error")
	})
}

func currentSnapshot(m *Model) *server.StateSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

// logPhaseTransitions emits a log line when the visible phase changes
func logPhaseTransitions(m *Model, snap *server.StateSnapshot) {
	switch snap.Phase {
	case game.PhaseBetting:
		if snap.Countdown > 0 && snap.Countdown%10 == 0 {
			m.AddLogEntry(InfoStyle.Render(fmt.Sprintf("Betting: %ds left", snap.Countdown)))
		}
	case game.PhasePlaying:
		for _, p := range snap.Players {
			if p.ID == snap.CurrentPlayerID && p.Name == m.playerName {
				m.AddLogEntry(WarningStyle.Render("Your turn: /hit or /stand"))
			}
		}
	}
}

func logWireError(m *Model, msg *server.Message, prefix string) {
	var data server.ErrorData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		return
	}
	m.AddLogEntry(ErrorStyle.Render(fmt.Sprintf("%s: %s (%s)", prefix, data.Message, data.Code)))
}

func formatOutcome(status game.Outcome) string {
	return strings.ToUpper(string(status))
}
