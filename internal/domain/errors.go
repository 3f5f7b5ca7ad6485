package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrInvalidWindow  = errors.New("invalid window")
	ErrEmptyInput     = errors.New("empty input")
)

// InvalidSessionError is returned when a session does not end after it starts
type InvalidSessionError struct {
	Index int
	Start time.Time
	End   time.Time
}

func (e *InvalidSessionError) Error() string {
	return fmt.Sprintf(
		"%s: session %d ends at %s which is not after its start %s",
		ErrInvalidSession.Error(),
		e.Index,
		e.End.Format(time.RFC3339),
		e.Start.Format(time.RFC3339),
	)
}

func (e *InvalidSessionError) Is(target error) bool {
	return target == ErrInvalidSession
}
