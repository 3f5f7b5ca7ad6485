// Package circular implements statistics over periodic domains, such as hour
// of day on a 24 hour clock.
package circular

import (
	"fmt"
	"math"

	"github.com/Amund211/slumber/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// HoursPerDay is the period of hour-of-day values
const HoursPerDay = 24.0

// CyclicMean computes the mean of values on a circular domain with the given period.
//
// The result is in [0, period) and does not change when any input is shifted
// by a multiple of period. The branch is picked by the mean direction of the
// values, and the result is the arithmetic mean of the values unwrapped around
// that direction. For inputs whose directions cancel out (e.g. two values
// exactly period/2 apart) the mean is ambiguous and either branch may be returned.
func CyclicMean(values []float64, period float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: cyclic mean of no values", domain.ErrEmptyInput)
	}
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %f", period)
	}

	angles := make([]float64, len(values))
	for i, value := range values {
		angles[i] = value / period * 2 * math.Pi
	}
	direction := stat.CircularMean(angles, nil) / (2 * math.Pi) * period

	offsets := make([]float64, len(values))
	for i, value := range values {
		offsets[i] = signedDistance(value, direction, period)
	}

	return Normalize(direction+stat.Mean(offsets, nil), period), nil
}

// CyclicDistance is the shortest distance between a and b on a circular domain,
// in [0, period/2]. period must be positive.
func CyclicDistance(a, b, period float64) float64 {
	return math.Abs(signedDistance(a, b, period))
}

// Normalize maps value into [0, period)
func Normalize(value, period float64) float64 {
	normalized := math.Mod(value, period)
	if normalized < 0 {
		normalized += period
	}
	if normalized >= period {
		// -tiny + period can round up to period
		normalized = 0
	}
	return normalized
}

// signedDistance is value - reference wrapped into [-period/2, period/2)
func signedDistance(value, reference, period float64) float64 {
	half := period / 2
	distance := math.Mod(value-reference, period)
	if distance < -half {
		distance += period
	} else if distance >= half {
		distance -= period
	}
	return distance
}
