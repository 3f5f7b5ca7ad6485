package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/Amund211/slumber/internal/adapters/sessionrepository"
	"github.com/Amund211/slumber/internal/domain"
	"github.com/Amund211/slumber/internal/domaintest"
	"github.com/stretchr/testify/require"
)

type mockSessionRepository struct {
	sessionrepository.StubSessionRepository

	t        *testing.T
	userID   string
	start    time.Time
	end      time.Time
	sessions []domain.SleepSession
	err      error

	getCalls int
}

func (m *mockSessionRepository) GetSessions(ctx context.Context, userID string, start, end time.Time) ([]domain.SleepSession, error) {
	m.t.Helper()
	m.getCalls++

	require.Equal(m.t, m.userID, userID)
	require.True(m.t, m.start.Equal(start))
	require.True(m.t, m.end.Equal(end))

	return m.sessions, m.err
}

func newMockSessionRepository(t *testing.T, userID string, start, end time.Time, sessions []domain.SleepSession, err error) *mockSessionRepository {
	if err == nil {
		require.NotNil(t, sessions)
	} else {
		require.Nil(t, sessions)
	}

	return &mockSessionRepository{
		t:        t,
		userID:   userID,
		start:    start,
		end:      end,
		sessions: sessions,
		err:      err,
	}
}

var windowStart = time.Date(2018, 11, 1, 0, 0, 0, 0, time.UTC)
var windowEnd = time.Date(2018, 12, 1, 0, 0, 0, 0, time.UTC)

// Two nights a day apart, 23:00 to 06:00 and 23:30 to 06:30 UTC
func twoNights() []domain.SleepSession {
	first := time.Date(2018, 11, 1, 23, 0, 0, 0, time.UTC)
	second := time.Date(2018, 11, 2, 23, 30, 0, 0, time.UTC)
	return []domain.SleepSession{
		domaintest.NewSessionBuilder(first, first.Add(7*time.Hour)).Build(),
		domaintest.NewSessionBuilder(second, second.Add(7*time.Hour)).Build(),
	}
}
