package ports

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Amund211/slumber/internal/logging"
	"github.com/Amund211/slumber/internal/ratelimiting"
	"github.com/Amund211/slumber/internal/reporting"
	"github.com/Amund211/slumber/internal/strutils"
)

const maxRequestBodyBytes = 1 << 20

const maxWindowLength = 400 * 24 * time.Hour

type RateLimits struct {
	IPRefillPerSecond     ratelimiting.RefillPerSecond
	IPBurstSize           ratelimiting.BurstSize
	UserIDRefillPerSecond ratelimiting.RefillPerSecond
	UserIDBurstSize       ratelimiting.BurstSize
}

var DefaultRateLimits = RateLimits{
	IPRefillPerSecond:     4,
	IPBurstSize:           80,
	UserIDRefillPerSecond: 1,
	UserIDBurstSize:       20,
}

// buildEndpointMiddleware wraps a handler with the middleware every endpoint shares
func buildEndpointMiddleware(
	port string,
	limits RateLimits,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) func(http.HandlerFunc) http.HandlerFunc {
	ipLimiter, _ := ratelimiting.NewTokenBucketRateLimiter(limits.IPRefillPerSecond, limits.IPBurstSize)
	ipRateLimiter := ratelimiting.NewRequestBasedRateLimiter(ipLimiter, ratelimiting.IPKeyFunc)

	userIDLimiter, _ := ratelimiting.NewTokenBucketRateLimiter(limits.UserIDRefillPerSecond, limits.UserIDBurstSize)
	userIDRateLimiter := ratelimiting.NewRequestBasedRateLimiter(
		// NOTE: Rate limiting based on user controlled value
		userIDLimiter,
		ratelimiting.UserIDKeyFunc,
	)

	makeOnLimitExceeded := func(rateLimiter ratelimiting.RequestRateLimiter) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			statusCode := http.StatusTooManyRequests

			logging.FromContext(ctx).InfoContext(ctx, "Rate limit exceeded", "statusCode", statusCode, "reason", "ratelimit exceeded", "key", rateLimiter.KeyFor(r))

			http.Error(w, "Rate limit exceeded", statusCode)
		}
	}

	return ComposeMiddlewares(
		buildMetricsMiddleware(port),
		logging.NewRequestLoggerMiddleware(rootLogger),
		sentryMiddleware,
		reporting.NewAddMetaMiddleware(port),
		BuildCORSMiddleware(allowedOrigins),
		requireMethodMiddleware(http.MethodPost),
		NewRateLimitMiddleware(ipRateLimiter, makeOnLimitExceeded(ipRateLimiter)),
		NewRateLimitMiddleware(userIDRateLimiter, makeOnLimitExceeded(userIDRateLimiter)),
	)
}

func requireMethodMiddleware(method string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Method != method {
				w.Header().Set("Allow", method)
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
				return
			}
			next(w, r)
		}
	}
}

// decodeRequest reads a JSON body into dst, writing a 400 response on failure
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	ctx := r.Context()

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		logging.FromContext(ctx).InfoContext(ctx, "Failed to parse request body", "error", err.Error())
		http.Error(w, "Failed to parse request body", http.StatusBadRequest)
		return false
	}
	return true
}

// normalizeUserID validates the user id and adds it to the request context.
// Writes a 400 response when invalid.
func normalizeUserID(w http.ResponseWriter, r *http.Request, rawUserID string) (string, *http.Request, bool) {
	ctx := r.Context()

	userID, err := strutils.NormalizeUserID(rawUserID)
	if err != nil {
		logging.FromContext(ctx).InfoContext(ctx, "Invalid user id", "error", err.Error())
		http.Error(w, "invalid userId", http.StatusBadRequest)
		return "", r, false
	}

	ctx = reporting.SetUserIDInContext(ctx, userID)
	ctx = logging.AddMetaToContext(ctx, slog.String("subjectUserId", userID))

	return userID, r.WithContext(ctx), true
}

// validateWindow checks the requested time window and adds it to the request context.
// Writes a 400 response when invalid.
func validateWindow(w http.ResponseWriter, r *http.Request, start, end time.Time) (*http.Request, bool) {
	ctx := r.Context()

	ctx = reporting.AddExtrasToContext(ctx, map[string]string{
		"start": start.Format(time.RFC3339),
		"end":   end.Format(time.RFC3339),
	})
	ctx = logging.AddMetaToContext(ctx,
		slog.String("start", start.Format(time.RFC3339)),
		slog.String("end", end.Format(time.RFC3339)),
	)
	r = r.WithContext(ctx)

	if !start.Before(end) {
		http.Error(w, "Start time must be before end time", http.StatusBadRequest)
		return r, false
	}

	if end.Sub(start) >= maxWindowLength {
		http.Error(w, "Time interval is too long", http.StatusBadRequest)
		return r, false
	}

	return r, true
}

func writeJSON(w http.ResponseWriter, r *http.Request, response any) {
	marshalled, err := json.Marshal(response)
	if err != nil {
		reporting.Report(r.Context(), fmt.Errorf("failed to marshal response: %w", err))
		http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(marshalled)
}
