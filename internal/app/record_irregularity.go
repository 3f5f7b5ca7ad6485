package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Amund211/slumber/internal/adapters/sessionrepository"
	"github.com/Amund211/slumber/internal/domain"
	"github.com/Amund211/slumber/internal/irregularity"
	"github.com/Amund211/slumber/internal/reporting"
)

type GetRecordIrregularity = func(
	ctx context.Context,
	userID string,
	start, end time.Time,
	record domain.SleepSession,
) (domain.Score, error)

// BuildGetRecordIrregularity scores a candidate session against the user's sessions in the window
func BuildGetRecordIrregularity(repo sessionrepository.SessionRepository) GetRecordIrregularity {
	return func(
		ctx context.Context,
		userID string,
		start, end time.Time,
		record domain.SleepSession,
	) (domain.Score, error) {
		if !start.Before(end) {
			return domain.Score{}, fmt.Errorf("%w: start must be before end", domain.ErrInvalidWindow)
		}
		if !record.End.After(record.Start) {
			return domain.Score{}, &domain.InvalidSessionError{Start: record.Start, End: record.End}
		}

		reference, err := repo.GetSessions(ctx, userID, start, end)
		if err != nil {
			// NOTE: SessionRepository implementations handle their own error reporting
			return domain.Score{}, fmt.Errorf("failed to get sessions: %w", err)
		}

		value, err := irregularity.RecordIrregularity(reference, record)
		if errors.Is(err, domain.ErrEmptyInput) {
			return domain.NoScore("no reference sessions"), nil
		} else if err != nil {
			reporting.Report(ctx, err)
			return domain.Score{}, fmt.Errorf("failed to compute record irregularity: %w", err)
		}

		return domain.NewScore(value), nil
	}
}
