package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Amund211/slumber/internal/adapters/cache"
	"github.com/Amund211/slumber/internal/adapters/sessionrepository"
	"github.com/Amund211/slumber/internal/domain"
	"github.com/Amund211/slumber/internal/irregularity"
	"github.com/Amund211/slumber/internal/logging"
	"github.com/Amund211/slumber/internal/reporting"
)

type GetRegularityReport = func(
	ctx context.Context,
	userID string,
	start, end time.Time,
	useUTC bool,
) (domain.RegularityReport, error)

type ReportCache = cache.Cache[domain.RegularityReport]

func reportCacheKey(userID string, start, end time.Time, useUTC bool) string {
	return fmt.Sprintf("%s|%d|%d|%t", userID, start.UnixMicro(), end.UnixMicro(), useUTC)
}

func BuildGetRegularityReport(
	repo sessionrepository.SessionRepository,
	reportCache ReportCache,
	weights irregularity.Weights,
) GetRegularityReport {
	return func(
		ctx context.Context,
		userID string,
		start, end time.Time,
		useUTC bool,
	) (domain.RegularityReport, error) {
		if !start.Before(end) {
			return domain.RegularityReport{}, fmt.Errorf("%w: start must be before end", domain.ErrInvalidWindow)
		}

		report, _, err := cache.GetOrCreate(ctx, reportCache, reportCacheKey(userID, start, end, useUTC), func() (domain.RegularityReport, error) {
			sessions, err := repo.GetSessions(ctx, userID, start, end)
			if err != nil {
				// NOTE: SessionRepository implementations handle their own error reporting
				return domain.RegularityReport{}, fmt.Errorf("failed to get sessions: %w", err)
			}

			report, err := irregularity.Analyze(sessions, useUTC, weights)
			if err != nil {
				reporting.Report(ctx, err, map[string]string{
					"sessionCount": fmt.Sprint(len(sessions)),
				})
				return domain.RegularityReport{}, fmt.Errorf("failed to analyze sessions: %w", err)
			}

			logging.FromContext(ctx).InfoContext(
				ctx,
				"Computed regularity report",
				"sessionCount", report.SessionCount,
				"dayCount", report.DayCount,
				"hasIrregularity", report.Irregularity.Valid(),
			)

			return report, nil
		})
		if err != nil {
			return domain.RegularityReport{}, err
		}

		return report, nil
	}
}
