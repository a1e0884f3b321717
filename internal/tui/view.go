package tui

import (
	tea "charm.land/bubbletea/v2"

	"bizchat/internal/widget"
)

// Messages pushed from the chat core to the Bubble Tea loop.
type (
	chatMessageMsg struct {
		Text   string
		Sender widget.Sender
	}
	typingMsg struct {
		Visible bool
	}
	submitDoneMsg struct {
		Reply widget.Reply
		Err   error
	}
)

// chanView implements widget.View by forwarding every call onto a channel the
// program listens to. Submit runs inside a tea.Cmd goroutine, so the view must
// never touch the model directly.
type chanView struct {
	events chan tea.Msg
}

func newChanView(buffer int) *chanView {
	return &chanView{events: make(chan tea.Msg, buffer)}
}

func (v *chanView) AddMessage(text string, sender widget.Sender) {
	v.events <- chatMessageMsg{Text: text, Sender: sender}
}

func (v *chanView) ShowTyping() {
	v.events <- typingMsg{Visible: true}
}

func (v *chanView) HideTyping() {
	v.events <- typingMsg{Visible: false}
}

// waitForEvent blocks until the chat core emits the next view event.
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}
