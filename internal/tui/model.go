// Package tui hosts the chat widget in a terminal with Bubble Tea.
package tui

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"bizchat/internal/widget"
)

const (
	inputHeight   = 3
	defaultWidth  = 80
	defaultHeight = 24
	footerHint    = "Enter Send | Esc Quit"
)

type line struct {
	text   string
	sender widget.Sender
}

// Model is the Bubble Tea state for the chat window.
type Model struct {
	chat    *widget.Chat
	events  chan tea.Msg
	botName string

	input    textarea.Model
	messages []line
	typing   bool
	busy     bool

	width  int
	height int
}

// New builds a model and the chat core that renders into it.
func New(session *widget.Session, relay widget.Relay, botName string, opts widget.Options) Model {
	view := newChanView(16)

	input := textarea.New()
	input.Placeholder = "Type your message..."
	input.ShowLineNumbers = false
	input.SetHeight(inputHeight)
	input.SetWidth(defaultWidth - 2)
	input.Focus()

	return Model{
		chat:    widget.NewChat(session, relay, view, opts),
		events:  view.events,
		botName: botName,
		input:   input,
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(max(msg.Width-2, 10))
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m.submit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case chatMessageMsg:
		m.messages = append(m.messages, line{text: msg.Text, sender: msg.Sender})
		return m, waitForEvent(m.events)

	case typingMsg:
		m.typing = msg.Visible
		return m, waitForEvent(m.events)

	case submitDoneMsg:
		m.busy = false
		return m, nil
	}

	return m, nil
}

// submit hands the input to the chat core off the UI goroutine.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.busy {
		return m, nil
	}
	m.input.Reset()
	m.busy = true

	chat := m.chat
	return m, func() tea.Msg {
		reply, err := chat.Submit(context.Background(), text)
		return submitDoneMsg{Reply: reply, Err: err}
	}
}

func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	header := headerStyle.Render(m.botName)
	input := inputBoxStyle.Render(m.input.View())
	footer := footerStyle.Render(footerHint)

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(input) - lipgloss.Height(footer)
	body := m.renderMessages(max(m.width, 10), max(bodyHeight, 1))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, input, footer)
}

// renderMessages wraps the transcript and keeps the newest lines in view.
func (m Model) renderMessages(width, height int) string {
	var rows []string
	for _, l := range m.messages {
		label := botLabelStyle.Render(m.botName + ":")
		if l.sender == widget.SenderUser {
			label = userLabelStyle.Render("You:")
		}
		wrapped := messageStyle.Width(width).Render(label + " " + l.text)
		rows = append(rows, strings.Split(wrapped, "\n")...)
	}
	if m.typing {
		rows = append(rows, typingStyle.Render(m.botName+" is typing..."))
	}

	if len(rows) > height {
		rows = rows[len(rows)-height:]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}
