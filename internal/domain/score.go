package domain

import (
	"encoding/json"
)

// InsufficientDataSentinel is the serialized value of a Score without a value
const InsufficientDataSentinel = -1.0

// Score is an optional numeric result.
//
// A Score without a value carries the reason it could not be computed.
type Score struct {
	value  float64
	valid  bool
	reason string
}

func NewScore(value float64) Score {
	return Score{value: value, valid: true}
}

func NoScore(reason string) Score {
	return Score{reason: reason}
}

func (s Score) Value() (float64, bool) {
	return s.value, s.valid
}

func (s Score) Valid() bool {
	return s.valid
}

// Reason is empty for a valid score
func (s Score) Reason() string {
	return s.reason
}

// OrSentinel returns the value, or InsufficientDataSentinel when there is none
func (s Score) OrSentinel() float64 {
	if !s.valid {
		return InsufficientDataSentinel
	}
	return s.value
}

func (s Score) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.OrSentinel())
}

func (s *Score) UnmarshalJSON(data []byte) error {
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	if value == InsufficientDataSentinel {
		*s = NoScore("insufficient data")
		return nil
	}
	*s = NewScore(value)
	return nil
}
