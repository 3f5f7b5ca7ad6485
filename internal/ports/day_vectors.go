package ports

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Amund211/slumber/internal/app"
	"github.com/Amund211/slumber/internal/domain"
	"github.com/Amund211/slumber/internal/logging"
)

func MakeGetDayVectorsHandler(
	getDayVectors app.GetDayVectors,
	defaultUseUTC bool,
	limits RateLimits,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildEndpointMiddleware("dayvectors", limits, allowedOrigins, rootLogger, sentryMiddleware)

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

		days, err := getDayVectors(ctx, userID, request.Start, request.End, useUTC)
		if errors.Is(err, domain.ErrInvalidWindow) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		} else if err != nil {
			// NOTE: GetDayVectors implementations handle their own error reporting
			http.Error(w, "Failed to get day vectors", http.StatusInternalServerError)
			return
		}

		logging.FromContext(ctx).InfoContext(ctx, "Returning day vectors", "useUtc", useUTC, "dayCount", days.Len())

		writeJSON(w, r, DayVectorsToResponse(days, useUTC))
	}

	return middleware(handler)
}
