package sessionrepository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRestoreTime(t *testing.T) {
	t.Parallel()

	oslo, err := time.LoadLocation("Europe/Oslo")
	require.NoError(t, err)

	instant := time.Date(2018, 7, 1, 22, 30, 0, 0, time.UTC)

	cases := []struct {
		name   string
		stored time.Time
	}{
		{name: "utc", stored: instant},
		{name: "iana zone", stored: instant.In(oslo)},
		{name: "named fixed zone", stored: instant.In(time.FixedZone("UTC+2", 2*60*60))},
		{name: "fixed zone named like an iana zone", stored: instant.In(time.FixedZone("CET", 60*60))},
		{name: "unnamed fixed zone", stored: instant.In(time.FixedZone("", -(3*60*60 + 30*60)))},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			_, offset := c.stored.Zone()
			restored := restoreTime(c.stored.UTC(), zoneName(c.stored.Location()), offset)

			require.True(t, c.stored.Equal(restored))
			_, restoredOffset := restored.Zone()
			require.Equal(t, offset, restoredOffset)
			require.Equal(t, c.stored.Hour(), restored.Hour())
			require.Equal(t, c.stored.Minute(), restored.Minute())
		})
	}

	t.Run("iana zone is kept", func(t *testing.T) {
		t.Parallel()

		restored := restoreTime(instant, "Europe/Oslo", 2*60*60)
		require.Equal(t, "Europe/Oslo", restored.Location().String())
	})

	t.Run("unnamed offset gets a readable name", func(t *testing.T) {
		t.Parallel()

		restored := restoreTime(instant, "", -(3*60*60 + 30*60))
		require.Equal(t, "UTC-03:30", restored.Location().String())
	})
}
