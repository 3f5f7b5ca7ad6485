package sessionrepository

import (
	"fmt"
	"time"
)

// zoneName returns a name for the location that survives a round trip through the database
func zoneName(loc *time.Location) string {
	name := loc.String()
	if name == "Local" {
		return ""
	}
	return name
}

// restoreTime puts instant back into the zone it was stored with.
// Named zones are loaded from the tz database as long as they agree with the
// stored offset at that instant, otherwise a fixed offset zone is used.
func restoreTime(instant time.Time, name string, offsetSeconds int) time.Time {
	if name != "" {
		loc, err := time.LoadLocation(name)
		if err == nil {
			restored := instant.In(loc)
			if _, offset := restored.Zone(); offset == offsetSeconds {
				return restored
			}
		}
	}

	if name == "" {
		if offsetSeconds == 0 {
			return instant.UTC()
		}
		name = fixedZoneName(offsetSeconds)
	}
	return instant.In(time.FixedZone(name, offsetSeconds))
}

func fixedZoneName(offsetSeconds int) string {
	sign := "+"
	if offsetSeconds < 0 {
		sign = "-"
		offsetSeconds = -offsetSeconds
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, offsetSeconds/3600, (offsetSeconds%3600)/60)
}
