// Package widget is the UI-independent core of the chat widget: the rolling
// session, the local keyword responder and the relay fallback.
package widget

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"bizchat/internal/models"
)

// Sender tags who a rendered message belongs to.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Source tells where a reply came from.
type Source int

const (
	SourceLocal   Source = iota // canned answer, no network
	SourceRelay                 // model reply from the relay
	SourceFailed                // relay answered success=false
	SourceOffline               // relay unreachable or unparseable
)

// DefaultReply is shown when a successful relay envelope carries no text.
const DefaultReply = "I'm sorry, I couldn't process that."

var ErrEmptyMessage = errors.New("message is empty")

// View is implemented by the hosting UI.
type View interface {
	AddMessage(text string, sender Sender)
	ShowTyping()
	HideTyping()
}

// Relay sends a chat request to the backend relay.
type Relay interface {
	Send(ctx context.Context, req models.RelayRequest) (*models.RelayResponse, error)
}

type Options struct {
	BusinessID string
	Phone      string
	Rules      Rules
}

// Reply is the bot message produced for one submission.
type Reply struct {
	Text   string
	Source Source
}

// Chat routes user input to the local rules or the relay and keeps the session in step.
type Chat struct {
	session *Session
	relay   Relay
	view    View
	opts    Options
}

func NewChat(session *Session, relay Relay, view View, opts Options) *Chat {
	if opts.Rules == nil {
		opts.Rules = DefaultRules()
	}
	return &Chat{session: session, relay: relay, view: view, opts: opts}
}

func (c *Chat) Session() *Session {
	return c.session
}

// Submit handles one user message end to end.
func (c *Chat) Submit(ctx context.Context, text string) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, ErrEmptyMessage
	}

	prior := c.session.Turns()
	c.view.AddMessage(text, SenderUser)
	c.session.Append(models.RoleUser, text)

	return c.respond(ctx, text, prior), nil
}

func (c *Chat) respond(ctx context.Context, text string, prior []models.ConversationTurn) Reply {
	if rule, ok := c.opts.Rules.Match(text); ok {
		slog.Debug("widget_local_match", "rule", rule.Name)
		c.view.AddMessage(rule.Answer, SenderBot)
		c.session.Append(models.RoleModel, rule.Answer)
		return Reply{Text: rule.Answer, Source: SourceLocal}
	}
	return c.askRelay(ctx, text, prior)
}

func (c *Chat) askRelay(ctx context.Context, text string, prior []models.ConversationTurn) Reply {
	c.view.ShowTyping()
	var once sync.Once
	hideTyping := func() { once.Do(c.view.HideTyping) }
	defer hideTyping()

	resp, err := c.relay.Send(ctx, models.RelayRequest{
		Message:  text,
		Business: c.opts.BusinessID,
		History:  prior,
	})
	hideTyping()

	if err != nil {
		slog.Error("widget_relay_unreachable", "error", err)
		msg := "I'm sorry, I'm offline right now. You can reach us at " + c.opts.Phone
		c.view.AddMessage(msg, SenderBot)
		return Reply{Text: msg, Source: SourceOffline}
	}

	if !resp.Success {
		slog.Error("widget_relay_error", "error", resp.Error, "retry", resp.Retry)
		msg := "I'm having a bit of trouble connecting to my brain. Please try again or call us at " + c.opts.Phone
		c.view.AddMessage(msg, SenderBot)
		return Reply{Text: msg, Source: SourceFailed}
	}

	reply := resp.Reply
	if reply == "" {
		reply = resp.Response
	}
	reply = StripEmoji(reply)
	if strings.TrimSpace(reply) == "" {
		reply = DefaultReply
	}

	c.view.AddMessage(reply, SenderBot)
	c.session.Append(models.RoleModel, reply)
	return Reply{Text: reply, Source: SourceRelay}
}
