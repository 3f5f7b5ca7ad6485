package dayvector

import (
	"time"

	"github.com/Amund211/slumber/internal/domain"
	"github.com/bits-and-blooms/bitset"
)

// SessionsToIntervals resolves each session to an absolute interval in the
// timezone selected by the policy: UTC for every session when useUTC is set,
// otherwise the session's own recorded timezone.
//
// Sessions that do not end after they start are rejected with an
// *domain.InvalidSessionError.
func SessionsToIntervals(sessions []domain.SleepSession, useUTC bool) ([]domain.Interval, error) {
	intervals := make([]domain.Interval, 0, len(sessions))
	for i, session := range sessions {
		if !session.End.After(session.Start) {
			return nil, &domain.InvalidSessionError{
				Index: i,
				Start: session.Start,
				End:   session.End,
			}
		}

		loc := session.Location()
		if useUTC {
			loc = time.UTC
		}

		intervals = append(intervals, domain.Interval{
			Start: session.Start.In(loc),
			End:   session.End.In(loc),
		})
	}
	return intervals, nil
}

// BuildDayVectorMap splits every interval at the midnights it crosses (in the
// interval's timezone) and unions the asleep minutes of each fragment into the
// vector of its calendar date.
//
// Intervals of zero or negative length contribute nothing.
func BuildDayVectorMap(intervals []domain.Interval) Map {
	accumulator := map[domain.Date]*bitset.BitSet{}

	for _, interval := range intervals {
		loc := interval.Start.Location()
		end := interval.End.In(loc)

		cursor := interval.Start
		for cursor.Before(end) {
			date := domain.DateOf(cursor)
			nextMidnight := date.Next().Midnight(loc)

			fragmentEnd := end
			endMinute := minuteOfDay(end)
			if !end.Before(nextMidnight) {
				fragmentEnd = nextMidnight
				endMinute = MinutesPerDay
			}

			bits, ok := accumulator[date]
			if !ok {
				bits = bitset.New(MinutesPerDay)
				accumulator[date] = bits
			}
			setAsleep(bits, minuteOfDay(cursor), endMinute)

			// nextMidnight is on a later date than cursor, so this always advances
			cursor = fragmentEnd
		}
	}

	days := make(map[domain.Date]DayVector, len(accumulator))
	for date, bits := range accumulator {
		days[date] = DayVector{state: Populated, bits: bits}
	}
	return NewMap(days)
}

// BuildFromSessions resolves the sessions under the timezone policy and builds their day vectors
func BuildFromSessions(sessions []domain.SleepSession, useUTC bool) (Map, error) {
	intervals, err := SessionsToIntervals(sessions, useUTC)
	if err != nil {
		return Map{}, err
	}
	return BuildDayVectorMap(intervals), nil
}

// minuteOfDay is the wall clock minute of t in its own location
func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
