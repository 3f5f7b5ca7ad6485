package ports

import (
	"testing"
	"time"

	"github.com/Amund211/slumber/internal/dayvector"
	"github.com/Amund211/slumber/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestSessionRequestToDomain(t *testing.T) {
	t.Parallel()

	start := time.Date(2018, 11, 1, 22, 15, 0, 0, time.UTC)
	end := time.Date(2018, 11, 2, 6, 15, 0, 0, time.UTC)

	t.Run("derived features", func(t *testing.T) {
		t.Parallel()

		session, err := sessionRequest{Start: start, End: end}.toDomain()
		require.NoError(t, err)
		require.InDelta(t, 2.25, session.MidSleep, 1e-9)
		require.InDelta(t, 8, session.TrackLength, 1e-9)
		require.InDelta(t, 8, session.SleepLength, 1e-9)
		require.Equal(t, time.UTC, session.Location())
	})

	t.Run("supplied track length is the default sleep length", func(t *testing.T) {
		t.Parallel()

		trackLength := 7.5
		session, err := sessionRequest{Start: start, End: end, TrackLength: &trackLength}.toDomain()
		require.NoError(t, err)
		require.InDelta(t, 7.5, session.TrackLength, 1e-9)
		require.InDelta(t, 7.5, session.SleepLength, 1e-9)
	})

	t.Run("timezone moves the wall clock", func(t *testing.T) {
		t.Parallel()

		session, err := sessionRequest{Start: start, End: end, Timezone: "America/New_York"}.toDomain()
		require.NoError(t, err)
		require.Equal(t, "America/New_York", session.Location().String())
		require.True(t, start.Equal(session.Start))
		// 02:15 UTC is 22:15 EDT
		require.InDelta(t, 22.25, session.MidSleep, 1e-9)
	})

	t.Run("unknown timezone", func(t *testing.T) {
		t.Parallel()

		_, err := sessionRequest{Start: start, End: end, Timezone: "Nowhere/Special"}.toDomain()
		require.ErrorContains(t, err, "unknown timezone")
	})

	t.Run("index in error", func(t *testing.T) {
		t.Parallel()

		midSleep := 25.0
		_, err := sessionRequestsToDomain([]sessionRequest{
			{Start: start, End: end},
			{Start: start, End: end, MidSleep: &midSleep},
		})
		require.ErrorContains(t, err, "session 1: midSleep must be in [0, 24)")
	})
}

func TestDayVectorsToResponse(t *testing.T) {
	t.Parallel()

	days := dayvector.NewMap(map[domain.Date]dayvector.DayVector{
		{Year: 2018, Month: time.November, Day: 2}: dayvector.NewDayVectorAsleep(dayvector.MinuteRange{From: 0, To: 10}, dayvector.MinuteRange{From: 20, To: 30}),
		{Year: 2018, Month: time.November, Day: 1}: dayvector.NewDayVector(),
		{Year: 2018, Month: time.November, Day: 3}: dayvector.AbsentDayVector(),
	})

	require.Equal(t, dayVectorsResponse{
		UseUTC: true,
		Days: []dayVectorResponse{
			{Date: "2018-11-01", State: "populated", MinutesAsleep: 0, Asleep: [][2]int{}},
			{Date: "2018-11-02", State: "populated", MinutesAsleep: 20, Asleep: [][2]int{{0, 10}, {20, 30}}},
			{Date: "2018-11-03", State: "absent", MinutesAsleep: 0, Asleep: [][2]int{}},
		},
	}, DayVectorsToResponse(days, true))
}

func TestParseSessions(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		sessions, err := ParseSessions([]byte(`[
			{"start": "2018-11-01T22:00:00Z", "end": "2018-11-02T06:00:00Z"},
			{"start": "2018-11-02T23:00:00+01:00", "end": "2018-11-03T07:00:00+01:00", "sleepLength": 7.5}
		]`))
		require.NoError(t, err)
		require.Len(t, sessions, 2)
		require.InDelta(t, 2.0, sessions[0].MidSleep, 1e-9)
		require.InDelta(t, 8.0, sessions[1].TrackLength, 1e-9)
		require.InDelta(t, 7.5, sessions[1].SleepLength, 1e-9)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()

		_, err := ParseSessions([]byte(`{"start":`))
		require.ErrorContains(t, err, "failed to parse sessions")
	})

	t.Run("invalid midSleep", func(t *testing.T) {
		t.Parallel()

		_, err := ParseSessions([]byte(`[{"start": "2018-11-01T22:00:00Z", "end": "2018-11-02T06:00:00Z", "midSleep": 25}]`))
		require.ErrorContains(t, err, "session 0:")
	})
}
