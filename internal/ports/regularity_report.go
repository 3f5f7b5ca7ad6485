package ports

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Amund211/slumber/internal/app"
	"github.com/Amund211/slumber/internal/domain"
	"github.com/Amund211/slumber/internal/logging"
)

type windowRequest struct {
	UserID string    `json:"userId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	UseUTC *bool     `json:"useUtc,omitempty"`
}

func (req windowRequest) useUTC(defaultUseUTC bool) bool {
	if req.UseUTC == nil {
		return defaultUseUTC
	}
	return *req.UseUTC
}

func MakeGetRegularityReportHandler(
	getRegularityReport app.GetRegularityReport,
	defaultUseUTC bool,
	limits RateLimits,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildEndpointMiddleware("regularity", limits, allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		var request windowRequest
		if !decodeRequest(w, r, &request) {
			return
		}

		userID, r, ok := normalizeUserID(w, r, request.UserID)
		if !ok {
			return
		}

		r, ok = validateWindow(w, r, request.Start, request.End)
		if !ok {
			return
		}
		ctx := r.Context()

		useUTC := request.useUTC(defaultUseUTC)

		report, err := getRegularityReport(ctx, userID, request.Start, request.End, useUTC)
		if errors.Is(err, domain.ErrInvalidWindow) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		} else if errors.Is(err, domain.ErrInvalidSession) {
			// Stored sessions are validated on write
			http.Error(w, "Stored sessions are invalid", http.StatusInternalServerError)
			return
		} else if err != nil {
			// NOTE: GetRegularityReport implementations handle their own error reporting
			http.Error(w, "Failed to get regularity report", http.StatusInternalServerError)
			return
		}

		logging.FromContext(ctx).InfoContext(ctx, "Returning regularity report", "useUtc", useUTC, "sessionCount", report.SessionCount)

		writeJSON(w, r, RegularityReportToResponse(report))
	}

	return middleware(handler)
}
