// Package irregularity scores how irregular sleep sessions are, combining the
// spread of sleep timing, the spread of sleep duration, and day to day
// sleep/wake consistency.
package irregularity

import (
	"errors"
	"fmt"
	"math"

	"github.com/Amund211/slumber/internal/circular"
	"github.com/Amund211/slumber/internal/dayvector"
	"github.com/Amund211/slumber/internal/domain"
	"github.com/Amund211/slumber/internal/sri"
	"gonum.org/v1/gonum/stat"
)

var ErrInvalidWeights = errors.New("invalid weights")

// Weights of the components of the set irregularity. All components are in hours.
type Weights struct {
	// Mean circular deviation of midsleep
	Timing float64
	// Mean absolute deviation of track length
	Duration float64
	// (1 - average SRI) * 24: hours per day where the sleep/wake state differs from the previous recorded day
	Regularity float64
}

var DefaultWeights = Weights{
	Timing:     1,
	Duration:   1,
	Regularity: 1,
}

func (w Weights) validate() error {
	if w.Timing < 0 || w.Duration < 0 || w.Regularity < 0 {
		return fmt.Errorf("%w: weights must be non-negative, got %+v", ErrInvalidWeights, w)
	}
	if w.Timing+w.Duration == 0 {
		return fmt.Errorf("%w: timing and duration weights can't both be zero", ErrInvalidWeights)
	}
	return nil
}

// RecordIrregularity is the average of the record's distance from the cyclic
// mean midsleep of the reference sessions and the record's distance from
// their mean track length, in hours.
func RecordIrregularity(reference []domain.SleepSession, record domain.SleepSession) (float64, error) {
	if len(reference) == 0 {
		return 0, fmt.Errorf("%w: no reference sessions", domain.ErrEmptyInput)
	}

	midSleeps := make([]float64, len(reference))
	trackLengths := make([]float64, len(reference))
	for i, session := range reference {
		midSleeps[i] = session.MidSleep
		trackLengths[i] = session.TrackLength
	}

	center, err := circular.CyclicMean(midSleeps, circular.HoursPerDay)
	if err != nil {
		return 0, fmt.Errorf("failed to compute midsleep center: %w", err)
	}

	timing := circular.CyclicDistance(record.MidSleep, center, circular.HoursPerDay)
	duration := math.Abs(record.TrackLength - stat.Mean(trackLengths, nil))

	return (timing + duration) / 2, nil
}

// SetIrregularity scores the irregularity of the whole set with DefaultWeights
func SetIrregularity(sessions []domain.SleepSession, useUTC bool) (domain.Score, error) {
	report, err := Analyze(sessions, useUTC, DefaultWeights)
	if err != nil {
		return domain.Score{}, err
	}
	return report.Irregularity, nil
}

// Analyze computes the regularity report of the sessions under the timezone policy.
//
// The irregularity is the weighted mean of the timing, duration and regularity
// components. The regularity component is left out when there are too few
// recorded days for an average SRI.
func Analyze(sessions []domain.SleepSession, useUTC bool, weights Weights) (domain.RegularityReport, error) {
	if err := weights.validate(); err != nil {
		return domain.RegularityReport{}, err
	}

	days, err := dayvector.BuildFromSessions(sessions, useUTC)
	if err != nil {
		return domain.RegularityReport{}, fmt.Errorf("failed to build day vectors: %w", err)
	}

	report := domain.RegularityReport{
		UseUTC:         useUTC,
		SessionCount:   len(sessions),
		DayCount:       days.Len(),
		AverageSRI:     sri.CalculateAverageSRI(days),
		MidSleepCenter: domain.NoScore("no sessions"),
		Irregularity:   domain.NoScore("no sessions"),
	}

	if len(sessions) == 0 {
		return report, nil
	}

	midSleeps := make([]float64, len(sessions))
	trackLengths := make([]float64, len(sessions))
	sleepLengths := make([]float64, len(sessions))
	for i, session := range sessions {
		midSleeps[i] = MidSleepUnderPolicy(session, useUTC)
		trackLengths[i] = session.TrackLength
		sleepLengths[i] = session.SleepLength
	}

	center, err := circular.CyclicMean(midSleeps, circular.HoursPerDay)
	if err != nil {
		return domain.RegularityReport{}, fmt.Errorf("failed to compute midsleep center: %w", err)
	}

	timingDeviations := make([]float64, len(midSleeps))
	for i, midSleep := range midSleeps {
		timingDeviations[i] = circular.CyclicDistance(midSleep, center, circular.HoursPerDay)
	}

	meanTrackLength := stat.Mean(trackLengths, nil)
	durationDeviations := make([]float64, len(trackLengths))
	for i, trackLength := range trackLengths {
		durationDeviations[i] = math.Abs(trackLength - meanTrackLength)
	}

	report.MidSleepCenter = domain.NewScore(center)
	report.TimingDispersion = stat.Mean(timingDeviations, nil)
	report.DurationDispersion = stat.Mean(durationDeviations, nil)
	report.SleepLengthStdDev = math.Sqrt(stat.PopVariance(sleepLengths, nil))

	weighted := weights.Timing*report.TimingDispersion + weights.Duration*report.DurationDispersion
	totalWeight := weights.Timing + weights.Duration
	if averageSRI, ok := report.AverageSRI.Value(); ok {
		weighted += weights.Regularity * (1 - averageSRI) * circular.HoursPerDay
		totalWeight += weights.Regularity
	}
	report.Irregularity = domain.NewScore(weighted / totalWeight)

	return report, nil
}

// MidSleepUnderPolicy returns the session's midsleep hour in the timezone
// selected by the policy. MidSleep is recorded in the session's own timezone,
// so under useUTC it is shifted by the session's UTC offset at its midpoint.
func MidSleepUnderPolicy(session domain.SleepSession, useUTC bool) float64 {
	if !useUTC {
		return session.MidSleep
	}
	_, offsetSeconds := session.Midpoint().In(session.Location()).Zone()
	return circular.Normalize(session.MidSleep-float64(offsetSeconds)/3600, circular.HoursPerDay)
}
