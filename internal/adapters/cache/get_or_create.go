package cache

import (
	"context"
	"fmt"

	"github.com/Amund211/slumber/internal/logging"
)

// GetOrCreate returns the cached value for key, calling create on a miss.
// Returns data, created, error
func GetOrCreate[T any](ctx context.Context, cache Cache[T], key string, create func() (T, error)) (T, bool, error) {
	// Release the claim if create fails so other callers can try again
	claimed := false
	set := false
	defer func() {
		if claimed && !set {
			cache.delete(key)
		}
	}()

	logger := logging.FromContext(ctx)

	for {
		result := cache.getOrClaim(key)

		if result.claimed {
			claimed = true

			logger.InfoContext(ctx, "Getting cached value", "cache", "miss")

			data, err := create()
			if err != nil {
				var empty T
				return empty, false, fmt.Errorf("failed to create cache entry: %w", err)
			}

			cache.set(key, data)
			set = true

			return data, true, nil
		}

		if result.valid {
			logger.InfoContext(ctx, "Getting cached value", "cache", "hit")
			return result.data, false, nil
		}

		if err := ctx.Err(); err != nil {
			var empty T
			return empty, false, fmt.Errorf("gave up waiting for cache: %w", err)
		}

		logger.InfoContext(ctx, "Waiting for cache")
		cache.wait()
	}
}
