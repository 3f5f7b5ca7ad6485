package sessionrepository

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Amund211/slumber/internal/domain"
)

type sessionKey struct {
	start int64
	end   int64
}

func keyOf(session domain.SleepSession) sessionKey {
	// The database stores microseconds
	return sessionKey{
		start: session.Start.UnixMicro(),
		end:   session.End.UnixMicro(),
	}
}

// InMemory keeps sessions in process. Used for local development and tests.
type InMemory struct {
	mu       sync.Mutex
	sessions map[string]map[sessionKey]domain.SleepSession
}

func NewInMemory() *InMemory {
	return &InMemory{
		sessions: make(map[string]map[sessionKey]domain.SleepSession),
	}
}

func (m *InMemory) StoreSessions(ctx context.Context, userID string, sessions []domain.SleepSession) error {
	if userID == "" {
		return fmt.Errorf("userID is empty")
	}

	for i, session := range sessions {
		if !session.End.After(session.Start) {
			return &domain.InvalidSessionError{Index: i, Start: session.Start, End: session.End}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	userSessions, ok := m.sessions[userID]
	if !ok {
		userSessions = make(map[sessionKey]domain.SleepSession, len(sessions))
		m.sessions[userID] = userSessions
	}

	for _, session := range sessions {
		userSessions[keyOf(session)] = session
	}

	return nil
}

func (m *InMemory) GetSessions(ctx context.Context, userID string, start, end time.Time) ([]domain.SleepSession, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sessions := []domain.SleepSession{}
	for _, session := range m.sessions[userID] {
		if session.Start.Before(start) || !session.Start.Before(end) {
			continue
		}
		sessions = append(sessions, session)
	}

	slices.SortFunc(sessions, func(a, b domain.SleepSession) int {
		return cmp.Or(a.Start.Compare(b.Start), a.End.Compare(b.End))
	})

	return sessions, nil
}
