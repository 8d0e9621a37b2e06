// Package uptime computes per-store uptime/downtime minutes within business
// hours for trailing windows, from sparse status observations. It is pure:
// all input arrives as an immutable Snapshot and nothing here touches the
// database, the clock, or the filesystem.
package uptime

import (
	"fmt"
	"time"
)

// Status is the observed operational state of a store at poll time.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// DefaultTimezone is applied to stores that have no timezone row.
const DefaultTimezone = "America/Chicago"

// SecondsPerDay is the length of a nominal local day; an HoursRule EndSec of
// SecondsPerDay means "until midnight at the end of the day".
const SecondsPerDay = 24 * 60 * 60

// Observation is a single timestamped status poll for one store. Timestamps
// are UTC instants.
type Observation struct {
	StoreID   string
	Timestamp time.Time
	Status    Status
}

// HoursRule is one business-hours row for a store: the day of week
// (0=Monday .. 6=Sunday) and the local open/close times as seconds from
// local midnight. StartSec must be strictly less than EndSec; overnight
// spans (close before open) are not supported.
type HoursRule struct {
	Day      int
	StartSec int
	EndSec   int
}

// Snapshot is the immutable input to a report run: every observation across
// all stores, each store's weekly schedule (absent key = always open), each
// store's IANA timezone (absent key = DefaultTimezone applies), and the
// default timezone to use for stores without one.
type Snapshot struct {
	Observations    []Observation
	Hours           map[string][]HoursRule
	Timezones       map[string]string
	DefaultTimezone string
}

// DayOfWeek maps a local time to the schedule day convention (0=Monday).
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ParseTimeOfDay converts an "HH:MM:SS" local time-of-day into seconds from
// midnight. "24:00:00" is accepted as end-of-day.
func ParseTimeOfDay(s string) (int, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %v", s, err)
	}
	if h == 24 && m == 0 && sec == 0 {
		return SecondsPerDay, nil
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return h*3600 + m*60 + sec, nil
}
