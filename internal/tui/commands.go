package tui

import (
	"strconv"
	"strings"

	"github.com/Jcazt21/BLPG-sub002/internal/client"
	"github.com/Jcazt21/BLPG-sub002/internal/roomid"
)

// StartCommandHandler runs the user-command loop in a goroutine,
// translating TUI commands into client calls
func StartCommandHandler(c *client.Client, m *Model, defaultBet int) {
	go func() {
		for {
			result := m.NextAction()
			if result.Action == "quit" || !result.Continue {
				m.Quit()
				return
			}
			handleCommand(c, m, result, defaultBet)
		}
	}()
}

func handleCommand(c *client.Client, m *Model, result ActionResult, defaultBet int) {
	var err error

	switch result.Action {
	case "help":
		printHelp(m)

	case "create":
		err = c.CreateRoom()

	case "join":
		if len(result.Args) != 1 {
			m.AddLogEntry(ErrorStyle.Render("Usage: /join <code>"))
			return
		}
		code := strings.ToUpper(result.Args[0])
		if vErr := roomid.Validate(code); vErr != nil {
			m.AddLogEntry(ErrorStyle.Render("Invalid room code: " + code))
			return
		}
		err = c.JoinRoom(code)

	case "leave":
		err = c.LeaveRoom()

	case "list":
		err = c.ListRooms()

	case "start":
		err = c.StartGame()

	case "bet":
		amount := defaultBet
		if len(result.Args) > 0 {
			amount, err = strconv.Atoi(result.Args[0])
			if err != nil {
				m.AddLogEntry(ErrorStyle.Render("Usage: /bet <amount>"))
				return
			}
		}
		err = c.PlaceBet(amount)

	case "clear":
		err = c.ClearBet()

	case "allin":
		err = c.AllIn()

	case "hit":
		err = c.Hit()

	case "stand":
		err = c.Stand()

	case "next":
		err = c.RestartRound()

	default:
		m.AddLogEntry(ErrorStyle.Render("Unknown command: /" + result.Action))
		return
	}

	if err != nil {
		m.AddLogEntry(ErrorStyle.Render("Failed to send: " + err.Error()))
	}
}

func printHelp(m *Model) {
	for _, line := range []string{
		"Commands:",
		"  /create          - create a room",
		"  /join <code>     - join a room by code",
		"  /leave           - leave the current room",
		"  /list            - list open rooms",
		"  /start           - start the game (creator only)",
		"  /bet <amount>    - place or change your bet",
		"  /clear           - take your bet back",
		"  /allin           - bet everything",
		"  /hit             - draw a card",
		"  /stand           - end your turn",
		"  /next            - next round after results",
		"  /quit            - exit",
	} {
		m.AddLogEntry(line)
	}
}
