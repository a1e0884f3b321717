package widget

import (
	"sync"

	"github.com/google/uuid"

	"bizchat/internal/models"
)

// Session holds the rolling conversation for one widget instance.
// Every append evicts the oldest turns beyond the limit.
type Session struct {
	ID string

	mu    sync.Mutex
	turns []models.ConversationTurn
	limit int
}

func NewSession() *Session {
	return NewSessionWithLimit(models.MaxHistoryTurns)
}

func NewSessionWithLimit(limit int) *Session {
	if limit <= 0 {
		limit = models.MaxHistoryTurns
	}
	return &Session{ID: uuid.NewString(), limit: limit}
}

// Append adds a turn and truncates the history to the most recent limit turns.
func (s *Session) Append(role, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = append(s.turns, models.ConversationTurn{Role: role, Text: text})
	if len(s.turns) > s.limit {
		kept := make([]models.ConversationTurn, s.limit)
		copy(kept, s.turns[len(s.turns)-s.limit:])
		s.turns = kept
	}
}

// Turns returns a copy of the retained history, oldest first.
func (s *Session) Turns() []models.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ConversationTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}
