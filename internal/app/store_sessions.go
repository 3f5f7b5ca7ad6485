package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Amund211/slumber/internal/adapters/sessionrepository"
	"github.com/Amund211/slumber/internal/domain"
	"github.com/Amund211/slumber/internal/logging"
)

type StoreSessions = func(ctx context.Context, userID string, sessions []domain.SleepSession) error

func BuildStoreSessions(repo sessionrepository.SessionRepository) StoreSessions {
	return func(ctx context.Context, userID string, sessions []domain.SleepSession) error {
		for i, session := range sessions {
			if !session.End.After(session.Start) {
				return &domain.InvalidSessionError{Index: i, Start: session.Start, End: session.End}
			}
		}

		err := repo.StoreSessions(ctx, userID, sessions)
		if err != nil {
			// NOTE: SessionRepository implementations handle their own error reporting
			return fmt.Errorf("failed to store sessions: %w", err)
		}

		logging.FromContext(ctx).InfoContext(ctx, "Stored sessions", "sessionCount", strconv.Itoa(len(sessions)))

		return nil
	}
}
