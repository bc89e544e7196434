package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Jcazt21/BLPG-sub002/internal/game"
	"github.com/Jcazt21/BLPG-sub002/internal/server"
)

// Model is the Bubble Tea model for the blackjack client. All game state
// shown in the sidebar comes from server snapshots; the model never
// computes blackjack rules locally.
type Model struct {
	logger *log.Logger

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	mu           sync.Mutex
	gameLog      []string
	snapshot     *server.StateSnapshot
	playerName   string
	actionResult chan ActionResult
	quitSignal   chan bool
	quitting     bool
	focusedPane  int // 0 = log, 1 = input

	// Dimensions
	width       int
	height      int
	initialized bool
}

// ActionResult represents a parsed user command
type ActionResult struct {
	Action   string
	Args     []string
	Continue bool
}

// QuitMsg is a custom message to signal quit
type QuitMsg struct{}

// NewModel creates a new TUI model
func NewModel(playerName string, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Enter a command (/bet 100, /hit, /stand, ...)"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &Model{
		logger:       logger.WithPrefix("tui"),
		logViewport:  vp,
		actionInput:  ti,
		playerName:   playerName,
		gameLog:      []string{},
		actionResult: make(chan ActionResult, 1),
		quitSignal:   make(chan bool, 1),
		focusedPane:  1,
	}
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listenForQuit())
}

func (m *Model) listenForQuit() tea.Cmd {
	return func() tea.Msg {
		<-m.quitSignal
		return QuitMsg{}
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case QuitMsg:
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.sendAction(ActionResult{Action: "quit"})
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				input := strings.TrimSpace(m.actionInput.Value())
				if input != "" {
					m.processInput(input)
				}
				m.actionInput.SetValue("")
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// processInput parses a slash command into an action
func (m *Model) processInput(input string) {
	if !strings.HasPrefix(input, "/") {
		m.AddLogEntry(ErrorStyle.Render("Commands start with / (try /help)"))
		return
	}
	fields := strings.Fields(strings.TrimPrefix(input, "/"))
	if len(fields) == 0 {
		return
	}
	m.sendAction(ActionResult{Action: fields[0], Args: fields[1:], Continue: true})
}

func (m *Model) sendAction(result ActionResult) {
	select {
	case m.actionResult <- result:
	default:
		m.AddLogEntry(WarningStyle.Render("Previous command still pending"))
	}
}

// NextAction blocks until the user issues a command
func (m *Model) NextAction() ActionResult {
	return <-m.actionResult
}

// Quit signals the TUI to exit
func (m *Model) Quit() {
	select {
	case m.quitSignal <- true:
	default:
	}
}

// AddLogEntry appends a line to the game log
func (m *Model) AddLogEntry(entry string) {
	m.mu.Lock()
	m.gameLog = append(m.gameLog, entry)
	m.mu.Unlock()
	m.logViewport.GotoBottom()
}

// SetSnapshot replaces the sidebar game state
func (m *Model) SetSnapshot(snap *server.StateSnapshot) {
	m.mu.Lock()
	m.snapshot = snap
	m.mu.Unlock()
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)

	actionWidth := max(m.width-2, 1)
	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(actionWidth)
	actionPane := actionStyle.Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 28)
	sidebarHeight := max(m.height-actionHeight-6, 1)

	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(sidebarHeight)
	sidebarPane := sidebarStyle.Render(sidebarContent)

	m.mu.Lock()
	logContent := strings.Join(m.gameLog, "\n")
	m.mu.Unlock()
	m.logViewport.SetContent(logContent)

	logWidth := max(m.width-sidebarWidth-6, 1)
	logHeight := sidebarHeight
	m.logViewport.Width = logWidth
	m.logViewport.Height = logHeight

	if !m.initialized && logWidth > 1 && logHeight > 1 {
		m.logViewport.GotoTop()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(logHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *Model) renderActionPane() string {
	return m.actionInput.View()
}

// renderSidebarPane shows the current table from the latest snapshot
func (m *Model) renderSidebarPane() string {
	m.mu.Lock()
	snap := m.snapshot
	m.mu.Unlock()

	var content strings.Builder
	if snap == nil {
		content.WriteString(InfoStyle.Render("Not in a room"))
		content.WriteString("\n\n")
		content.WriteString(InfoStyle.Render("/create or /join <code>"))
		return content.String()
	}

	content.WriteString(HeaderStyle.Render(fmt.Sprintf(" Room %s ", snap.RoomCode)))
	content.WriteString("\n")
	content.WriteString(HandInfoStyle.Render(fmt.Sprintf("Phase: %s", snap.Phase)))
	if snap.Phase == game.PhaseBetting && snap.Countdown > 0 {
		content.WriteString(WarningStyle.Render(fmt.Sprintf("  %ds", snap.Countdown)))
	}
	content.WriteString("\n")
	if snap.Pot > 0 {
		content.WriteString(WarningStyle.Render(fmt.Sprintf("Pot: $%d", snap.Pot)))
		content.WriteString("\n")
	}
	content.WriteString("\n")

	if snap.Dealer != nil && len(snap.Dealer.Hand) > 0 {
		content.WriteString("Dealer: ")
		content.WriteString(strings.Join(snap.Dealer.Hand, " "))
		if snap.Dealer.HoleRevealed {
			content.WriteString(fmt.Sprintf(" (%d)", snap.Dealer.Total))
		} else {
			content.WriteString(fmt.Sprintf(" (%d + ?)", snap.Dealer.Total))
		}
		content.WriteString("\n\n")
	}

	for _, p := range snap.Players {
		marker := "  "
		if p.ID == snap.CurrentPlayerID {
			marker = "> "
		}
		line := fmt.Sprintf("%s%s  $%d", marker, p.Name, p.Balance)
		if p.CurrentBet > 0 {
			line += fmt.Sprintf("  bet $%d", p.CurrentBet)
		}
		if len(p.Hand) > 0 {
			line += fmt.Sprintf("\n    %s (%d)", strings.Join(p.Hand, " "), p.Total)
		}
		switch {
		case p.IsBlackjack:
			line += "  " + SuccessStyle.Render("blackjack!")
		case p.IsBust:
			line += "  " + ErrorStyle.Render("bust")
		case p.IsStand:
			line += "  " + InfoStyle.Render("stand")
		}
		content.WriteString(line)
		content.WriteString("\n")
	}

	return content.String()
}
