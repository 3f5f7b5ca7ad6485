package domain

import (
	"time"
)

// SleepSession is one recorded sleep event.
//
// Start and End carry the session's own recorded timezone (time.Time.Location).
// MidSleep, TrackLength and SleepLength are pre-computed features and are
// trusted as given, even when they disagree with End.Sub(Start).
type SleepSession struct {
	Start time.Time
	End   time.Time

	// Hour of day in [0, 24) in the session's local time
	MidSleep float64
	// Hours
	TrackLength float64
	// Hours
	SleepLength float64
}

// Location returns the session's recorded timezone
func (s SleepSession) Location() *time.Location {
	return s.Start.Location()
}

// Midpoint returns the instant halfway between Start and End
func (s SleepSession) Midpoint() time.Time {
	return s.Start.Add(s.End.Sub(s.Start) / 2)
}

// Interval is an absolute time range [Start, End) resolved to a timezone
type Interval struct {
	Start time.Time
	End   time.Time
}

// MidSleepHour computes the hour of day of the midpoint between start and end,
// in the wall clock of start's location, at minute resolution.
func MidSleepHour(start, end time.Time) float64 {
	mid := start.Add(end.Sub(start) / 2).In(start.Location())
	return float64(mid.Hour()) + float64(mid.Minute())/60
}

// TrackLengthHours is the wall duration of the session in hours
func TrackLengthHours(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}
