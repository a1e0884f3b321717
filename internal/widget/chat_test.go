package widget

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bizchat/internal/models"
)

type stubRelay struct {
	resp  *models.RelayResponse
	err   error
	panic bool
	calls []models.RelayRequest
}

func (s *stubRelay) Send(ctx context.Context, req models.RelayRequest) (*models.RelayResponse, error) {
	s.calls = append(s.calls, req)
	if s.panic {
		panic("relay exploded")
	}
	return s.resp, s.err
}

type message struct {
	text   string
	sender Sender
}

type recordingView struct {
	messages []message
	typing   bool
	shown    int
	hidden   int
}

func (v *recordingView) AddMessage(text string, sender Sender) {
	v.messages = append(v.messages, message{text, sender})
}

func (v *recordingView) ShowTyping() {
	v.typing = true
	v.shown++
}

func (v *recordingView) HideTyping() {
	v.typing = false
	v.hidden++
}

func (v *recordingView) last() message {
	return v.messages[len(v.messages)-1]
}

func newTestChat(relay Relay) (*Chat, *recordingView) {
	view := &recordingView{}
	chat := NewChat(NewSession(), relay, view, Options{BusinessID: "dental", Phone: "97171 55497"})
	return chat, view
}

func TestSubmit_LocalMatchSkipsRelay(t *testing.T) {
	relay := &stubRelay{}
	chat, view := newTestChat(relay)

	reply, err := chat.Submit(context.Background(), "What are your timings?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply.Source != SourceLocal || reply.Text != AnswerTimings {
		t.Errorf("unexpected reply %+v", reply)
	}
	if len(relay.calls) != 0 {
		t.Errorf("expected zero relay calls, got %d", len(relay.calls))
	}
	if view.shown != 0 {
		t.Error("typing indicator must not show for local answers")
	}
	if len(view.messages) != 2 || view.messages[0].sender != SenderUser || view.last() != (message{AnswerTimings, SenderBot}) {
		t.Errorf("unexpected rendered messages %+v", view.messages)
	}
	if turns := chat.Session().Turns(); len(turns) != 2 || turns[1].Role != models.RoleModel {
		t.Errorf("expected user and model turns recorded, got %+v", turns)
	}
}

func TestSubmit_BookServiceResolvesToBooking(t *testing.T) {
	chat, _ := newTestChat(&stubRelay{})

	reply, _ := chat.Submit(context.Background(), "Can I book a service?")
	if reply.Text != AnswerBooking {
		t.Errorf("expected booking answer, got %q", reply.Text)
	}
}

func TestSubmit_RelayReply(t *testing.T) {
	relay := &stubRelay{resp: &models.RelayResponse{Success: true, Reply: "We focus on dental and skin care \U0001F9B7."}}
	chat, view := newTestChat(relay)

	reply, err := chat.Submit(context.Background(), "tell me about knee surgery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(relay.calls) != 1 {
		t.Fatalf("expected one relay call, got %d", len(relay.calls))
	}
	req := relay.calls[0]
	if req.Message != "tell me about knee surgery" || req.Business != "dental" {
		t.Errorf("unexpected request %+v", req)
	}
	if len(req.History) != 0 {
		t.Errorf("expected no prior history on first message, got %+v", req.History)
	}
	if reply.Source != SourceRelay || reply.Text != "We focus on dental and skin care ." {
		t.Errorf("expected emoji-stripped relay reply, got %+v", reply)
	}
	if view.typing || view.shown != 1 || view.hidden != 1 {
		t.Errorf("expected typing shown then hidden once, got shown=%d hidden=%d", view.shown, view.hidden)
	}
	if view.last() != (message{reply.Text, SenderBot}) {
		t.Errorf("unexpected last message %+v", view.last())
	}
}

func TestSubmit_ModelReplyFeedsNextHistory(t *testing.T) {
	relay := &stubRelay{resp: &models.RelayResponse{Success: true, Reply: "first answer"}}
	chat, _ := newTestChat(relay)

	chat.Submit(context.Background(), "do you do veneers")
	relay.resp = &models.RelayResponse{Success: true, Reply: "second answer"}
	chat.Submit(context.Background(), "and crowns")

	if len(relay.calls) != 2 {
		t.Fatalf("expected two relay calls, got %d", len(relay.calls))
	}
	history := relay.calls[1].History
	want := []models.ConversationTurn{
		{Role: models.RoleUser, Text: "do you do veneers"},
		{Role: models.RoleModel, Text: "first answer"},
	}
	if len(history) != len(want) {
		t.Fatalf("expected history %+v, got %+v", want, history)
	}
	for i := range want {
		if history[i] != want[i] {
			t.Errorf("history[%d] = %+v, want %+v", i, history[i], want[i])
		}
	}
}

func TestSubmit_HistoryCappedAtTen(t *testing.T) {
	relay := &stubRelay{resp: &models.RelayResponse{Success: true, Reply: "ok"}}
	chat, _ := newTestChat(relay)

	for i := 0; i < 8; i++ {
		chat.Submit(context.Background(), "tell me about veneers")
	}

	for i, call := range relay.calls {
		if len(call.History) > 10 {
			t.Errorf("call %d sent %d history turns", i, len(call.History))
		}
	}
	if n := len(relay.calls[len(relay.calls)-1].History); n != 10 {
		t.Errorf("expected a full 10-turn history on the last call, got %d", n)
	}
	if chat.Session().Len() != 10 {
		t.Errorf("expected session capped at 10, got %d", chat.Session().Len())
	}
}

func TestSubmit_ResponseAliasAndDefaultReply(t *testing.T) {
	tests := []struct {
		name string
		resp models.RelayResponse
		want string
	}{
		{"response alias", models.RelayResponse{Success: true, Response: "from response"}, "from response"},
		{"empty reply", models.RelayResponse{Success: true}, DefaultReply},
		{"emoji only", models.RelayResponse{Success: true, Reply: "\U0001F600\U0001F44D"}, DefaultReply},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := tc.resp
			chat, _ := newTestChat(&stubRelay{resp: &resp})

			reply, _ := chat.Submit(context.Background(), "tell me about veneers")
			if reply.Text != tc.want {
				t.Errorf("got %q, want %q", reply.Text, tc.want)
			}
		})
	}
}

func TestSubmit_RelayFailures(t *testing.T) {
	tests := []struct {
		name       string
		relay      *stubRelay
		wantSource Source
		wantPrefix string
	}{
		{
			"success false",
			&stubRelay{resp: &models.RelayResponse{Success: false, Error: "Rate limit exceeded. Please try again in a moment.", Retry: true}},
			SourceFailed,
			"I'm having a bit of trouble connecting to my brain.",
		},
		{
			"unreachable",
			&stubRelay{err: errors.New("connection refused")},
			SourceOffline,
			"I'm sorry, I'm offline right now.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chat, view := newTestChat(tc.relay)

			reply, err := chat.Submit(context.Background(), "tell me about veneers")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if reply.Source != tc.wantSource {
				t.Errorf("source = %v, want %v", reply.Source, tc.wantSource)
			}
			if !strings.HasPrefix(reply.Text, tc.wantPrefix) || !strings.HasSuffix(reply.Text, "97171 55497") {
				t.Errorf("unexpected failure text %q", reply.Text)
			}
			if view.typing || view.hidden != 1 {
				t.Errorf("expected typing hidden once, got hidden=%d", view.hidden)
			}
			if view.last() != (message{reply.Text, SenderBot}) {
				t.Errorf("expected failure text rendered as bot message, got %+v", view.last())
			}
			turns := chat.Session().Turns()
			if len(turns) != 1 || turns[0].Role != models.RoleUser {
				t.Errorf("expected only the user turn recorded, got %+v", turns)
			}
		})
	}
}

func TestSubmit_PanicStillHidesTyping(t *testing.T) {
	chat, view := newTestChat(&stubRelay{panic: true})

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic to propagate")
			}
		}()
		chat.Submit(context.Background(), "tell me about veneers")
	}()

	if view.typing || view.hidden != 1 {
		t.Errorf("expected typing hidden after panic, got typing=%v hidden=%d", view.typing, view.hidden)
	}
}

func TestSubmit_EmptyInput(t *testing.T) {
	relay := &stubRelay{}
	chat, view := newTestChat(relay)

	for _, input := range []string{"", "   ", "\n\t"} {
		if _, err := chat.Submit(context.Background(), input); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Submit(%q) error = %v, want ErrEmptyMessage", input, err)
		}
	}
	if len(view.messages) != 0 || len(relay.calls) != 0 || chat.Session().Len() != 0 {
		t.Error("empty input must not render, send or record anything")
	}
}
