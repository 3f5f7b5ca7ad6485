package sessionrepository

import (
	"context"
	"time"

	"github.com/Amund211/slumber/internal/domain"
)

type SessionRepository interface {
	// StoreSessions upserts the sessions for the user, keyed on (start, end)
	StoreSessions(ctx context.Context, userID string, sessions []domain.SleepSession) error

	// GetSessions returns the user's sessions starting in [start, end), ordered by start
	GetSessions(ctx context.Context, userID string, start, end time.Time) ([]domain.SleepSession, error)
}
