package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/desoft-apps/fiscalito/internal/conversation"
)

// Chatter is the engine-facing subset the chat view needs.
type Chatter interface {
	Handle(ctx context.Context, threadID, displayName, userText string) (string, []conversation.Turn, error)
}

var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type replyMsg struct {
	history []conversation.Turn
	err     error
}

// Model is the Bubble Tea model for the interactive chat client.
type Model struct {
	engine   Chatter
	threadID string
	userName string

	input    textinput.Model
	viewport viewport.Model
	history  []conversation.Turn
	status   string
	waiting  bool
	ready    bool
}

// New creates a chat model bound to one conversation thread.
func New(engine Chatter, threadID, userName string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Pregunta sobre la ONAT y presiona Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		engine:   engine,
		threadID: threadID,
		userName: userName,
		input:    ti,
		viewport: vp,
		status:   "Conectado. Escribe tu pregunta.",
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ih := inputBoxStyle.GetFrameSize()
		m.viewport.Width = msg.Width
		m.viewport.Height = maxInt(3, msg.Height-ih-4)
		m.viewport.SetContent(m.renderHistory())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.waiting {
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				return m, nil
			}
			m.input.SetValue("")
			m.waiting = true
			m.status = "Fiscalito está pensando..."
			return m, m.send(q)
		}

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = errorStyle.Render("Error: " + msg.err.Error())
		} else {
			m.history = msg.history
			m.status = "Escribe tu pregunta."
		}
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout
func (m Model) View() string {
	if !m.ready {
		return "Cargando..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Fiscalito — asistente tributario de la ONAT")
	return header + "\n" +
		m.viewport.View() + "\n" +
		inputBoxStyle.Render(m.input.View()) + "\n" +
		m.status
}

func (m Model) send(query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		_, history, err := m.engine.Handle(ctx, m.threadID, m.userName, query)
		return replyMsg{history: history, err: err}
	}
}

func (m Model) renderHistory() string {
	if len(m.history) == 0 {
		return "Sin mensajes todavía."
	}
	var lines []string
	for _, turn := range m.history {
		switch turn.Role {
		case conversation.RoleUser:
			lines = append(lines, userStyle.Render(fmt.Sprintf("%s: ", m.userName))+turn.Content)
		default:
			lines = append(lines, assistantStyle.Render("Fiscalito: ")+turn.Content)
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
