package ports

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Amund211/slumber/internal/dayvector"
	"github.com/Amund211/slumber/internal/domain"
)

type sessionRequest struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// IANA zone the session was recorded in. Defaults to the offset of start.
	Timezone string `json:"timezone,omitempty"`

	MidSleep    *float64 `json:"midSleep,omitempty"`
	TrackLength *float64 `json:"trackLength,omitempty"`
	SleepLength *float64 `json:"sleepLength,omitempty"`
}

// toDomain resolves the session's zone and fills in features that were not supplied
func (s sessionRequest) toDomain() (domain.SleepSession, error) {
	start, end := s.Start, s.End
	if s.Timezone != "" {
		loc, err := time.LoadLocation(s.Timezone)
		if err != nil {
			return domain.SleepSession{}, fmt.Errorf("unknown timezone '%.50s': %w", s.Timezone, err)
		}
		start, end = start.In(loc), end.In(loc)
	}

	session := domain.SleepSession{
		Start:       start,
		End:         end,
		MidSleep:    domain.MidSleepHour(start, end),
		TrackLength: domain.TrackLengthHours(start, end),
	}
	if s.MidSleep != nil {
		if *s.MidSleep < 0 || *s.MidSleep >= 24 {
			return domain.SleepSession{}, fmt.Errorf("midSleep must be in [0, 24), got %v", *s.MidSleep)
		}
		session.MidSleep = *s.MidSleep
	}
	if s.TrackLength != nil {
		session.TrackLength = *s.TrackLength
	}
	session.SleepLength = session.TrackLength
	if s.SleepLength != nil {
		session.SleepLength = *s.SleepLength
	}

	return session, nil
}

func sessionRequestsToDomain(requests []sessionRequest) ([]domain.SleepSession, error) {
	sessions := make([]domain.SleepSession, 0, len(requests))
	for i, request := range requests {
		session, err := request.toDomain()
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", i, err)
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

type regularityReportResponse struct {
	UseUTC             bool         `json:"useUtc"`
	SessionCount       int          `json:"sessionCount"`
	DayCount           int          `json:"dayCount"`
	TimingDispersion   float64      `json:"timingDispersion"`
	DurationDispersion float64      `json:"durationDispersion"`
	SleepLengthStdDev  float64      `json:"sleepLengthStdDev"`
	MidSleepCenter     domain.Score `json:"midSleepCenter"`
	AverageSRI         domain.Score `json:"averageSri"`
	Irregularity       domain.Score `json:"irregularity"`
}

func RegularityReportToResponse(report domain.RegularityReport) regularityReportResponse {
	return regularityReportResponse{
		UseUTC:             report.UseUTC,
		SessionCount:       report.SessionCount,
		DayCount:           report.DayCount,
		TimingDispersion:   report.TimingDispersion,
		DurationDispersion: report.DurationDispersion,
		SleepLengthStdDev:  report.SleepLengthStdDev,
		MidSleepCenter:     report.MidSleepCenter,
		AverageSRI:         report.AverageSRI,
		Irregularity:       report.Irregularity,
	}
}

type dayVectorResponse struct {
	Date          string   `json:"date"`
	State         string   `json:"state"`
	MinutesAsleep int      `json:"minutesAsleep"`
	Asleep        [][2]int `json:"asleep"`
}

type dayVectorsResponse struct {
	UseUTC bool                `json:"useUtc"`
	Days   []dayVectorResponse `json:"days"`
}

func DayVectorsToResponse(days dayvector.Map, useUTC bool) dayVectorsResponse {
	response := dayVectorsResponse{
		UseUTC: useUTC,
		Days:   make([]dayVectorResponse, 0, days.Len()),
	}
	for date, vector := range days.All() {
		ranges := vector.AsleepRanges()
		asleep := make([][2]int, 0, len(ranges))
		for _, r := range ranges {
			asleep = append(asleep, [2]int{r.From, r.To})
		}
		response.Days = append(response.Days, dayVectorResponse{
			Date:          date.String(),
			State:         vector.State().String(),
			MinutesAsleep: vector.MinutesAsleep(),
			Asleep:        asleep,
		})
	}
	return response
}

// ParseSessions decodes a JSON array of sessions in the request format
func ParseSessions(data []byte) ([]domain.SleepSession, error) {
	var requests []sessionRequest
	if err := json.Unmarshal(data, &requests); err != nil {
		return nil, fmt.Errorf("failed to parse sessions: %w", err)
	}
	return sessionRequestsToDomain(requests)
}
