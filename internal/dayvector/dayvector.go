// Package dayvector converts sleep sessions into minute resolution sleep/wake
// state per calendar day.
package dayvector

import (
	"github.com/bits-and-blooms/bitset"
)

const MinutesPerDay = 1440

// State tells whether a DayVector carries comparable data
type State int

const (
	// Absent is the zero state: the day has no recorded sleep/wake data
	Absent State = iota
	// Populated means all MinutesPerDay minutes carry a sleep/wake state
	Populated
)

func (s State) String() string {
	switch s {
	case Populated:
		return "populated"
	default:
		return "absent"
	}
}

// DayVector is the sleep/wake state of each minute of one calendar day.
//
// The zero value is Absent. DayVector values are immutable.
type DayVector struct {
	state State
	bits  *bitset.BitSet
}

// MinuteRange is a range of minutes of a day [From, To)
type MinuteRange struct {
	From int
	To   int
}

// NewDayVector returns a populated vector where every minute is awake
func NewDayVector() DayVector {
	return DayVector{
		state: Populated,
		bits:  bitset.New(MinutesPerDay),
	}
}

// AbsentDayVector returns a vector carrying no data
func AbsentDayVector() DayVector {
	return DayVector{state: Absent}
}

// NewDayVectorAsleep returns a populated vector asleep during the given ranges
func NewDayVectorAsleep(ranges ...MinuteRange) DayVector {
	vector := NewDayVector()
	for _, r := range ranges {
		setAsleep(vector.bits, r.From, r.To)
	}
	return vector
}

func (v DayVector) State() State {
	return v.state
}

func (v DayVector) IsPopulated() bool {
	return v.state == Populated && v.bits != nil
}

// WithAsleep returns a copy of the vector with minutes [from, to) set asleep.
// An absent vector becomes populated.
func (v DayVector) WithAsleep(from, to int) DayVector {
	var bits *bitset.BitSet
	if v.IsPopulated() {
		bits = v.bits.Clone()
	} else {
		bits = bitset.New(MinutesPerDay)
	}
	setAsleep(bits, from, to)
	return DayVector{state: Populated, bits: bits}
}

// Asleep reports whether the given minute of the day is asleep.
// Absent vectors are never asleep.
func (v DayVector) Asleep(minute int) bool {
	if !v.IsPopulated() || minute < 0 || minute >= MinutesPerDay {
		return false
	}
	return v.bits.Test(uint(minute))
}

func (v DayVector) MinutesAsleep() int {
	if !v.IsPopulated() {
		return 0
	}
	return int(v.bits.Count())
}

// Disagreement counts the minutes where the two vectors differ.
// ok is false when either vector is not populated.
func (v DayVector) Disagreement(other DayVector) (disagree int, ok bool) {
	if !v.IsPopulated() || !other.IsPopulated() {
		return 0, false
	}
	return int(v.bits.SymmetricDifferenceCardinality(other.bits)), true
}

// AsleepRanges returns the maximal asleep ranges of the day in ascending order
func (v DayVector) AsleepRanges() []MinuteRange {
	ranges := []MinuteRange{}
	if !v.IsPopulated() {
		return ranges
	}

	start, ok := v.bits.NextSet(0)
	for ok && start < MinutesPerDay {
		end, found := v.bits.NextClear(start)
		if !found || end > MinutesPerDay {
			end = MinutesPerDay
		}
		ranges = append(ranges, MinuteRange{From: int(start), To: int(end)})

		start, ok = v.bits.NextSet(end)
	}
	return ranges
}

func setAsleep(bits *bitset.BitSet, from, to int) {
	from = max(from, 0)
	to = min(to, MinutesPerDay)
	for minute := from; minute < to; minute++ {
		bits.Set(uint(minute))
	}
}
