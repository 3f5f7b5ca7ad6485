package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Amund211/slumber/internal/adapters/sessionrepository"
	"github.com/Amund211/slumber/internal/dayvector"
	"github.com/Amund211/slumber/internal/domain"
	"github.com/Amund211/slumber/internal/reporting"
)

type GetDayVectors = func(
	ctx context.Context,
	userID string,
	start, end time.Time,
	useUTC bool,
) (dayvector.Map, error)

func BuildGetDayVectors(repo sessionrepository.SessionRepository) GetDayVectors {
	return func(
		ctx context.Context,
		userID string,
		start, end time.Time,
		useUTC bool,
	) (dayvector.Map, error) {
		if !start.Before(end) {
			return dayvector.Map{}, fmt.Errorf("%w: start must be before end", domain.ErrInvalidWindow)
		}

		sessions, err := repo.GetSessions(ctx, userID, start, end)
		if err != nil {
			// NOTE: SessionRepository implementations handle their own error reporting
			return dayvector.Map{}, fmt.Errorf("failed to get sessions: %w", err)
		}

		days, err := dayvector.BuildFromSessions(sessions, useUTC)
		if err != nil {
			reporting.Report(ctx, err, map[string]string{
				"sessionCount": fmt.Sprint(len(sessions)),
			})
			return dayvector.Map{}, fmt.Errorf("failed to build day vectors: %w", err)
		}

		return days, nil
	}
}
