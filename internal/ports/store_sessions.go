package ports

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Amund211/slumber/internal/app"
	"github.com/Amund211/slumber/internal/domain"
	"github.com/Amund211/slumber/internal/logging"
)

const maxSessionsPerRequest = 1000

func MakeStoreSessionsHandler(
	storeSessions app.StoreSessions,
	limits RateLimits,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildEndpointMiddleware("sessions", limits, allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		request := struct {
			UserID   string           `json:"userId"`
			Sessions []sessionRequest `json:"sessions"`
		}{}
		if !decodeRequest(w, r, &request) {
			return
		}

		userID, r, ok := normalizeUserID(w, r, request.UserID)
		if !ok {
			return
		}
		ctx := r.Context()

		if len(request.Sessions) > maxSessionsPerRequest {
			http.Error(w, fmt.Sprintf("Too many sessions, at most %d per request", maxSessionsPerRequest), http.StatusBadRequest)
			return
		}

		sessions, err := sessionRequestsToDomain(request.Sessions)
		if err != nil {
			logging.FromContext(ctx).InfoContext(ctx, "Invalid sessions", "error", err.Error())
			http.Error(w, fmt.Sprintf("Invalid sessions: %s", err.Error()), http.StatusBadRequest)
			return
		}

		err = storeSessions(ctx, userID, sessions)
		if errors.Is(err, domain.ErrInvalidSession) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		} else if err != nil {
			// NOTE: StoreSessions implementations handle their own error reporting
			http.Error(w, "Failed to store sessions", http.StatusInternalServerError)
			return
		}

		logging.FromContext(ctx).InfoContext(ctx, "Stored sessions", "sessionCount", len(sessions))

		writeJSON(w, r, struct {
			Stored int `json:"stored"`
		}{
			Stored: len(sessions),
		})
	}

	return middleware(handler)
}
