package domaintest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// NewUserID returns a fresh user id in canonical form
func NewUserID(t *testing.T) string {
	t.Helper()

	id, err := uuid.NewV7()
	require.NoError(t, err)
	return id.String()
}
