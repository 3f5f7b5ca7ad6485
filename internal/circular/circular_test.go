package circular_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/Amund211/slumber/internal/circular"
	"github.com/Amund211/slumber/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestCyclicMean(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		values   []float64
		period   float64
		expected float64
	}{
		{
			name:     "single value",
			values:   []float64{3.5},
			period:   24,
			expected: 3.5,
		},
		{
			name:     "close values",
			values:   []float64{1, 2, 3},
			period:   24,
			expected: 2,
		},
		{
			name:     "wraps around midnight",
			values:   []float64{23, 1},
			period:   24,
			expected: 0,
		},
		{
			name:     "wraps around midnight uneven",
			values:   []float64{22, 23, 3},
			period:   24,
			expected: 0,
		},
		{
			name:     "late evening",
			values:   []float64{22.5, 23.5},
			period:   24,
			expected: 23,
		},
		{
			name:     "other period",
			values:   []float64{350, 20},
			period:   360,
			expected: 5,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			mean, err := circular.CyclicMean(c.values, c.period)
			require.NoError(t, err)
			require.InDelta(t, 0, circular.CyclicDistance(c.expected, mean, c.period), 1e-9)
		})
	}

	t.Run("invariant under shifting by the period", func(t *testing.T) {
		t.Parallel()

		values := []float64{21.5, 23.25, 0.75, 2}
		expected, err := circular.CyclicMean(values, 24)
		require.NoError(t, err)

		for i := range values {
			for _, shift := range []float64{-48, -24, 24, 72} {
				shifted := make([]float64, len(values))
				copy(shifted, values)
				shifted[i] += shift

				t.Run(fmt.Sprintf("%d by %.0f", i, shift), func(t *testing.T) {
					mean, err := circular.CyclicMean(shifted, 24)
					require.NoError(t, err)
					require.InDelta(t, 0, circular.CyclicDistance(expected, mean, 24), 1e-9)
				})
			}
		}
	})

	t.Run("opposite values give either branch", func(t *testing.T) {
		t.Parallel()

		mean, err := circular.CyclicMean([]float64{0, 12}, 24)
		require.NoError(t, err)
		// Both 6 and 18 are equally distant to the inputs
		require.InDelta(t, 6, circular.CyclicDistance(mean, 0, 24), 1e-9)
		require.InDelta(t, 6, circular.CyclicDistance(mean, 12, 24), 1e-9)
	})

	t.Run("result is in range", func(t *testing.T) {
		t.Parallel()

		mean, err := circular.CyclicMean([]float64{23.9, 23.95}, 24)
		require.NoError(t, err)
		require.GreaterOrEqual(t, mean, 0.0)
		require.Less(t, mean, 24.0)
		require.InDelta(t, 23.925, mean, 1e-9)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		_, err := circular.CyclicMean([]float64{}, 24)
		require.ErrorIs(t, err, domain.ErrEmptyInput)
	})

	t.Run("invalid period", func(t *testing.T) {
		t.Parallel()

		_, err := circular.CyclicMean([]float64{1}, 0)
		require.Error(t, err)
	})

	t.Run("midsleep fixture", func(t *testing.T) {
		t.Parallel()

		// Sessions recorded in UTC, analyzed on a UTC+1 wall clock
		cet := time.FixedZone("CET", 3600)
		sessions := [][2]string{
			{"2018-11-11T01:30:10Z", "2018-11-11T10:00:10Z"},
			{"2018-11-12T01:00:10Z", "2018-11-12T10:00:10Z"},
			{"2018-11-13T02:00:10Z", "2018-11-13T10:00:10Z"},
			{"2018-11-24T01:00:10Z", "2018-11-24T10:00:10Z"},
			{"2018-11-25T02:00:10Z", "2018-11-25T10:00:10Z"},
			{"2018-11-26T01:00:10Z", "2018-11-26T09:00:10Z"},
		}

		midSleeps := make([]float64, len(sessions))
		for i, session := range sessions {
			start, err := time.Parse(time.RFC3339, session[0])
			require.NoError(t, err)
			end, err := time.Parse(time.RFC3339, session[1])
			require.NoError(t, err)
			midSleeps[i] = domain.MidSleepHour(start.In(cet), end.In(cet))
		}
		require.Equal(t, []float64{6.75, 6.5, 7, 6.5, 7, 6}, midSleeps)

		mean, err := circular.CyclicMean(midSleeps, circular.HoursPerDay)
		require.NoError(t, err)
		require.InDelta(t, 6.625, mean, 1e-9)
	})
}

func TestCyclicDistance(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b     float64
		period   float64
		expected float64
	}{
		{a: 1, b: 3, period: 24, expected: 2},
		{a: 3, b: 1, period: 24, expected: 2},
		{a: 23, b: 1, period: 24, expected: 2},
		{a: 1, b: 23, period: 24, expected: 2},
		{a: 0, b: 12, period: 24, expected: 12},
		{a: 6, b: 6, period: 24, expected: 0},
		{a: 6.625, b: 3.5, period: 24, expected: 3.125},
		{a: 49, b: -1, period: 24, expected: 2},
		{a: 10, b: 350, period: 360, expected: 20},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%v-%v/%v", c.a, c.b, c.period), func(t *testing.T) {
			t.Parallel()

			distance := circular.CyclicDistance(c.a, c.b, c.period)
			require.InDelta(t, c.expected, distance, 1e-9)
			require.GreaterOrEqual(t, distance, 0.0)
			require.LessOrEqual(t, distance, c.period/2)
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 1.0, circular.Normalize(25, 24), 1e-12)
	require.InDelta(t, 23.0, circular.Normalize(-1, 24), 1e-12)
	require.InDelta(t, 0.0, circular.Normalize(48, 24), 1e-12)
	require.InDelta(t, 0.0, circular.Normalize(-1e-18, 24), 1e-12)
}
