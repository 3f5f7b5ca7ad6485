package ports

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Amund211/slumber/internal/app"
	"github.com/Amund211/slumber/internal/domain"
	"github.com/Amund211/slumber/internal/logging"
)

func MakeGetRecordIrregularityHandler(
	getRecordIrregularity app.GetRecordIrregularity,
	limits RateLimits,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildEndpointMiddleware("record", limits, allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		request := struct {
			UserID string         `json:"userId"`
			Start  time.Time      `json:"start"`
			End    time.Time      `json:"end"`
			Record sessionRequest `json:"record"`
		}{}
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

		record, err := request.Record.toDomain()
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid record: %s", err.Error()), http.StatusBadRequest)
			return
		}

		score, err := getRecordIrregularity(ctx, userID, request.Start, request.End, record)
		if errors.Is(err, domain.ErrInvalidWindow) || errors.Is(err, domain.ErrInvalidSession) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		} else if err != nil {
			// NOTE: GetRecordIrregularity implementations handle their own error reporting
			http.Error(w, "Failed to get record irregularity", http.StatusInternalServerError)
			return
		}

		logging.FromContext(ctx).InfoContext(ctx, "Returning record irregularity", "valid", score.Valid())

		writeJSON(w, r, struct {
			Irregularity domain.Score `json:"irregularity"`
		}{
			Irregularity: score,
		})
	}

	return middleware(handler)
}
