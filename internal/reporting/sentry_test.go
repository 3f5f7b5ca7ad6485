package reporting

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeError(t *testing.T) {
	t.Parallel()

	t.Run("connection reset by peer", func(t *testing.T) {
		t.Parallel()

		err := `failed to get sessions: read tcp [dead:beef:feb1:d745::c001]:64079->[dead:beef::6811:112a]:5432: read: connection reset by peer`
		want := `failed to get sessions: read tcp <host>-><host>: read: connection reset by peer`
		require.Equal(t, want, sanitizeError(err))
	})

	t.Run("user id", func(t *testing.T) {
		t.Parallel()

		err := `failed to get sessions for user 0123456789abcdef0123456789abcdef: context deadline exceeded`
		want := `failed to get sessions for user <uuid>: context deadline exceeded`
		require.Equal(t, want, sanitizeError(err))
	})

	t.Run("invalid session", func(t *testing.T) {
		t.Parallel()

		err := `failed to build day vectors: invalid session: session 12 ends at 2018-11-11T01:30:10Z which is not after its start 2018-11-11T10:00:10+02:00`
		want := `failed to build day vectors: invalid session: session <index> ends at <timestamp> which is not after its start <timestamp>`
		require.Equal(t, want, sanitizeError(err))
	})

	t.Run("misc ipv6", func(t *testing.T) {
		t.Parallel()

		ips := []string{
			`1:2:3:4:5:6:7:8`,
			`1::`,
			`1:2:3:4:5:6:7::`,
			`1::8`,
			`1:2:3:4:5:6::8`,
			`1::7:8`,
			`1:2:3:4:5::7:8`,
			`1::6:7:8`,
			`1:2:3:4::6:7:8`,
			`1::5:6:7:8`,
			`1:2:3::5:6:7:8`,
			`1::4:5:6:7:8`,
			`1:2::4:5:6:7:8`,
			`1::3:4:5:6:7:8`,
			`::2:3:4:5:6:7:8`,
			`::8`,
			`::`,
		}
		for _, ip := range ips {
			t.Run(ip, func(t *testing.T) {
				t.Parallel()

				require.Equal(t, "<host>", sanitizeError(fmt.Sprintf("[%s]:1234", ip)))
			})
		}
	})
}

func TestReportWithoutHub(t *testing.T) {
	t.Parallel()

	// Must not panic when sentry is not set up
	Report(t.Context(), errors.New("some error"), map[string]string{"key": "value"})
	Report(t.Context(), nil)
}

func TestAddMetaMiddleware(t *testing.T) {
	t.Parallel()

	var meta ReportingMeta
	handler := NewAddMetaMiddleware("regularity")(addMetaMiddleware(func(w http.ResponseWriter, r *http.Request) {
		meta = MetaFromContext(r.Context())
	}))

	request := httptest.NewRequest(http.MethodPost, "/v1/regularity", nil)
	request.Header.Set("User-Agent", "test-agent/1.0")
	handler(httptest.NewRecorder(), request)

	require.Equal(t, map[string]string{
		"port":       "regularity",
		"userAgent":  "test-agent/1.0",
		"methodPath": "POST /v1/regularity",
	}, meta.tags)
	require.False(t, meta.startedAt.IsZero())
}
