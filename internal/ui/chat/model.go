// Package chat is the terminal chat client. It renders the inbox as a
// scrolling transcript with a stage indicator and an input box.
package chat

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/syntra-ai/syntra/internal/inbox"
)

// Frame is one server frame from the chat stream: a snapshot, an inbox
// event or an error.
type Frame struct {
	Type     string          `json:"type"`
	Stage    inbox.Stage     `json:"stage,omitempty"`
	Message  *inbox.Message  `json:"message,omitempty"`
	Messages []inbox.Message `json:"messages,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// Transport carries the conversation to and from the server.
type Transport interface {
	Send(text string) error
	NewChat() error
	// Frames is closed when the connection ends.
	Frames() <-chan Frame
}

// FrameMsg delivers a server frame to the model.
type FrameMsg Frame

// ClosedMsg reports that the transport has shut down.
type ClosedMsg struct{}

type sendErrMsg struct{ err error }

var (
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"})
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"})
	stageStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#93C5FD"})
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"})
	hintStyle      = lipgloss.NewStyle().Faint(true)
	titleStyle     = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

// Model is the Bubble Tea model for the chat client.
type Model struct {
	transport Transport
	input     textarea.Model
	viewport  viewport.Model
	messages  []inbox.Message
	stage     inbox.Stage
	err       string
	closed    bool
	width     int
	height    int
}

// New creates a chat model sized for width x height.
func New(t Transport, width, height int) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask Syntra anything..."
	ta.Prompt = "> "
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.CharLimit = 2000
	ta.Focus()

	m := Model{
		transport: t,
		input:     ta,
		viewport:  viewport.New(width, 1),
		stage:     inbox.StageIdle,
	}
	m.resize(width, height)
	return m
}

// Init starts listening for frames.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, waitForFrame(m.transport.Frames()))
}

// Update handles key presses, window resizes and server frames.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refresh()
		return m, nil

	case FrameMsg:
		m.apply(Frame(msg))
		m.refresh()
		return m, waitForFrame(m.transport.Frames())

	case ClosedMsg:
		m.closed = true
		m.refresh()
		return m, nil

	case sendErrMsg:
		m.err = msg.err.Error()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+n":
			m.err = ""
			return m, m.newChat()
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.closed {
				return m, nil
			}
			m.input.Reset()
			m.err = ""
			return m, m.send(text)
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// apply folds a frame into the local view of the inbox.
func (m *Model) apply(f Frame) {
	switch f.Type {
	case "snapshot":
		m.messages = append([]inbox.Message(nil), f.Messages...)
		m.stage = f.Stage
	case string(inbox.EventStage):
		m.stage = f.Stage
	case string(inbox.EventReset):
		m.messages = nil
	case string(inbox.EventMessage):
		// A message can arrive both in the snapshot and as an event.
		if f.Message != nil && !slices.ContainsFunc(m.messages, func(x inbox.Message) bool { return x.ID == f.Message.ID }) {
			m.messages = append(m.messages, *f.Message)
		}
	case "error":
		m.err = f.Error
	}
}

func (m Model) send(text string) tea.Cmd {
	t := m.transport
	return func() tea.Msg {
		if err := t.Send(text); err != nil {
			return sendErrMsg{err}
		}
		return nil
	}
}

func (m Model) newChat() tea.Cmd {
	t := m.transport
	return func() tea.Msg {
		if err := t.NewChat(); err != nil {
			return sendErrMsg{err}
		}
		return nil
	}
}

func waitForFrame(ch <-chan Frame) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-ch
		if !ok {
			return ClosedMsg{}
		}
		return FrameMsg(f)
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.input.SetWidth(max(width-2, 10))
	m.viewport.Width = max(width-2, 10)
	// title, stage line, separator, input, hint
	m.viewport.Height = max(height-9, 3)
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// StageLabel is the indicator text for s, or "" when idle.
func StageLabel(s inbox.Stage) string {
	if s == inbox.StageIdle || s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:]) + "..."
}

func (m Model) renderTranscript() string {
	wrap := lipgloss.NewStyle().Width(max(m.viewport.Width-2, 10))
	var b strings.Builder
	for _, msg := range m.messages {
		label := assistantStyle.Render("Syntra")
		if msg.Role == inbox.RoleUser {
			label = userStyle.Render("You")
		}
		fmt.Fprintf(&b, "%s %s\n%s\n\n", label, hintStyle.Render(msg.CreatedAt.Local().Format("3:04 PM")), wrap.Render(msg.Content))
	}
	return b.String()
}

// View renders the chat screen.
func (m Model) View() string {
	status := stageStyle.Render(StageLabel(m.stage))
	switch {
	case m.closed:
		status = errorStyle.Render("disconnected")
	case m.err != "":
		status = errorStyle.Render(m.err)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Syntra.ai"),
		m.viewport.View(),
		status,
		hintStyle.Render(strings.Repeat("─", max(m.width-2, 10))),
		m.input.View(),
		hintStyle.Render("enter send · ctrl+n new chat · esc quit"),
	)
}
