package domaintest

import (
	"time"

	"github.com/Amund211/slumber/internal/domain"
)

type sessionBuilder struct {
	session *domain.SleepSession
}

func (sb *sessionBuilder) WithMidSleep(midSleep float64) *sessionBuilder {
	sb.session.MidSleep = midSleep
	return sb
}

func (sb *sessionBuilder) WithTrackLength(trackLength float64) *sessionBuilder {
	sb.session.TrackLength = trackLength
	return sb
}

func (sb *sessionBuilder) WithSleepLength(sleepLength float64) *sessionBuilder {
	sb.session.SleepLength = sleepLength
	return sb
}

// InLocation moves the session to a different recorded timezone without
// recomputing its features
func (sb *sessionBuilder) InLocation(loc *time.Location) *sessionBuilder {
	sb.session.Start = sb.session.Start.In(loc)
	sb.session.End = sb.session.End.In(loc)
	return sb
}

func (sb *sessionBuilder) Build() domain.SleepSession {
	return *sb.session
}

// NewSessionBuilder creates a session with features derived from start and end
func NewSessionBuilder(start, end time.Time) *sessionBuilder {
	trackLength := domain.TrackLengthHours(start, end)
	session := &domain.SleepSession{
		Start:       start,
		End:         end,
		MidSleep:    domain.MidSleepHour(start, end),
		TrackLength: trackLength,
		SleepLength: trackLength,
	}
	return &sessionBuilder{
		session: session,
	}
}
