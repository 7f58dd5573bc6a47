package countdown

import (
	"fmt"
	"strings"
	"time"
)

// TargetLayout is the wall-clock layout campaign end dates are written in
const TargetLayout = "2006-01-02T15:04:05"

// TimeLeft is a remaining duration split into display units
type TimeLeft struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Remaining returns the whole time units from now until target, or all zeros once target has passed
func Remaining(target, now time.Time) TimeLeft {
	diff := target.Sub(now)
	if diff <= 0 {
		return TimeLeft{}
	}

	total := int64(diff / time.Second)
	return TimeLeft{
		Days:    int(total / 86400),
		Hours:   int(total % 86400 / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}
}

// ParseTarget reads a campaign end date. Values without an offset are taken in loc.
func ParseTarget(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if loc == nil {
		loc = time.UTC
	}

	if t, err := time.ParseInLocation(TargetLayout, value, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid target date %q: expected %s or RFC 3339", value, TargetLayout)
	}
	return t, nil
}

// Done reports whether the countdown has reached zero
func (t TimeLeft) Done() bool {
	return t == TimeLeft{}
}

// String renders DD:HH:MM:SS
func (t TimeLeft) String() string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d", t.Days, t.Hours, t.Minutes, t.Seconds)
}
