package domain

import (
	"cmp"
	"fmt"
	"time"
)

// Date identifies a calendar day, independent of timezone
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmp.Compare(d.Year, other.Year)
	case d.Month != other.Month:
		return cmp.Compare(d.Month, other.Month)
	default:
		return cmp.Compare(d.Day, other.Day)
	}
}

// Midnight returns the first instant of the date in loc.
// When a zone transition skips 00:00 this is the instant of the transition.
func (d Date) Midnight(loc *time.Location) time.Time {
	midnight := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
	if DateOf(midnight).Compare(d) >= 0 {
		return midnight
	}

	// Resolved to the previous date using the offset in effect before the gap
	_, zoneEnd := midnight.ZoneBounds()
	if zoneEnd.IsZero() {
		return midnight
	}
	return zoneEnd.In(loc)
}

// Next returns the following calendar date
func (d Date) Next() Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+1, 0, 0, 0, 0, time.UTC))
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return DateOf(t), nil
}
