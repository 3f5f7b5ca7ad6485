package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	t.Parallel()

	t.Run("two identical nights", func(t *testing.T) {
		t.Parallel()

		input := `[
			{"start": "2018-11-01T22:00:00Z", "end": "2018-11-02T06:00:00Z"},
			{"start": "2018-11-02T22:00:00Z", "end": "2018-11-03T06:00:00Z"}
		]`

		var output bytes.Buffer
		err := analyze(strings.NewReader(input), &output, true)
		require.NoError(t, err)

		var report map[string]any
		require.NoError(t, json.Unmarshal(output.Bytes(), &report))
		require.Equal(t, true, report["useUtc"])
		require.InDelta(t, 2.0, report["sessionCount"], 1e-9)
		require.InDelta(t, 2.0, report["midSleepCenter"], 1e-9)
		require.InDelta(t, 0.0, report["timingDispersion"], 1e-9)
		require.InDelta(t, 0.0, report["durationDispersion"], 1e-9)
	})

	t.Run("no sessions", func(t *testing.T) {
		t.Parallel()

		var output bytes.Buffer
		err := analyze(strings.NewReader(`[]`), &output, false)
		require.NoError(t, err)

		var report map[string]any
		require.NoError(t, json.Unmarshal(output.Bytes(), &report))
		require.InDelta(t, -1.0, report["irregularity"], 1e-9)
		require.InDelta(t, -1.0, report["averageSri"], 1e-9)
	})

	t.Run("invalid input", func(t *testing.T) {
		t.Parallel()

		var output bytes.Buffer
		err := analyze(strings.NewReader(`not json`), &output, false)
		require.Error(t, err)
		require.Empty(t, output.String())
	})

	t.Run("end before start", func(t *testing.T) {
		t.Parallel()

		input := `[{"start": "2018-11-02T06:00:00Z", "end": "2018-11-01T22:00:00Z"}]`

		var output bytes.Buffer
		err := analyze(strings.NewReader(input), &output, false)
		require.Error(t, err)
	})
}
