// Package sri computes the Sleep Regularity Index: the probability that the
// sleep/wake state is the same at any two time points one recorded day apart.
package sri

import (
	"github.com/Amund211/slumber/internal/dayvector"
	"github.com/Amund211/slumber/internal/domain"
)

// CalculateSRI is the fraction of minutes of the day where the two vectors agree.
//
// If either vector is not populated it carries no comparable data, and the
// comparison is maximal agreement (1).
func CalculateSRI(dayA, dayB dayvector.DayVector) float64 {
	disagree, ok := dayA.Disagreement(dayB)
	if !ok {
		return 1
	}
	return 1 - float64(disagree)/dayvector.MinutesPerDay
}

// CalculateAverageSRI averages CalculateSRI over every pair of consecutive
// entries of the map. Dates without an entry are skipped, so the pairs need
// not be calendar adjacent.
//
// Fewer than two days gives no score.
func CalculateAverageSRI(days dayvector.Map) domain.Score {
	if days.Len() < 2 {
		return domain.NoScore("need sleep recorded on at least two days")
	}

	var (
		total    float64
		pairs    int
		previous dayvector.DayVector
		first    = true
	)
	for _, vector := range days.All() {
		if !first {
			total += CalculateSRI(previous, vector)
			pairs++
		}
		previous = vector
		first = false
	}

	return domain.NewScore(total / float64(pairs))
}
