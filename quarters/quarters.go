package quarters

import (
	"fmt"
	"time"
)

// SlotMinutes is the grid resolution of the upstream price feed.
const SlotMinutes = 15

var displayLocation *time.Location = time.UTC

// SetDisplayTimezone sets the timezone used when rendering times for humans.
// Price math stays in UTC regardless.
func SetDisplayTimezone(timezone string) error {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone %s: %v", timezone, err)
	}
	displayLocation = loc
	return nil
}

func InDisplay(t time.Time) time.Time {
	return t.In(displayLocation)
}

// Floor truncates t down to the start of its quarter-hour slot.
func Floor(t time.Time) time.Time {
	return t.Truncate(SlotMinutes * time.Minute)
}

// SlotCount converts a requested duration to whole slots, always rounding up:
// a 20 minute request needs 2 slots (30 minutes of coverage).
func SlotCount(minutes int) int {
	if minutes <= 0 {
		return 0
	}
	return (minutes + SlotMinutes - 1) / SlotMinutes
}
