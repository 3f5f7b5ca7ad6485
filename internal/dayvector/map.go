package dayvector

import (
	"iter"
	"maps"
	"slices"

	"github.com/Amund211/slumber/internal/domain"
)

// Map maps calendar dates to day vectors and iterates in ascending date order.
//
// Only dates touched by at least one session have an entry.
type Map struct {
	dates []domain.Date
	days  map[domain.Date]DayVector
}

// NewMap creates a Map from the given day vectors
func NewMap(days map[domain.Date]DayVector) Map {
	owned := maps.Clone(days)
	if owned == nil {
		owned = map[domain.Date]DayVector{}
	}
	dates := slices.SortedFunc(maps.Keys(owned), domain.Date.Compare)
	return Map{dates: dates, days: owned}
}

func (m Map) Len() int {
	return len(m.dates)
}

// Dates returns the dates with an entry in ascending order
func (m Map) Dates() []domain.Date {
	return slices.Clone(m.dates)
}

func (m Map) Get(date domain.Date) (DayVector, bool) {
	vector, ok := m.days[date]
	return vector, ok
}

// All iterates the entries in ascending date order
func (m Map) All() iter.Seq2[domain.Date, DayVector] {
	return func(yield func(domain.Date, DayVector) bool) {
		for _, date := range m.dates {
			if !yield(date, m.days[date]) {
				return
			}
		}
	}
}
