package sessionrepository

import (
	"context"
	"time"

	"github.com/Amund211/slumber/internal/domain"
)

// StubSessionRepository stores nothing. Embed it in mocks to only override what a test needs.
type StubSessionRepository struct{}

func (s *StubSessionRepository) StoreSessions(ctx context.Context, userID string, sessions []domain.SleepSession) error {
	return nil
}

func (s *StubSessionRepository) GetSessions(ctx context.Context, userID string, start, end time.Time) ([]domain.SleepSession, error) {
	return []domain.SleepSession{}, nil
}
