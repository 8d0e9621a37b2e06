package uptime

import (
	"errors"
	"time"
)

// ErrNoObservations is returned when the data set holds no observations at
// all, so no reference instant exists and no report can be produced.
var ErrNoObservations = errors.New("no observations: cannot determine reference instant")

// Window is a trailing interval [Start, End) ending at the reference instant.
type Window struct {
	Label string
	Start time.Time
	End   time.Time
}

// ReferenceInstant returns the maximum timestamp across all observations of
// all stores. It stands in for "now" when evaluating against historical data.
func ReferenceInstant(obs []Observation) (time.Time, error) {
	if len(obs) == 0 {
		return time.Time{}, ErrNoObservations
	}
	ref := obs[0].Timestamp
	for _, o := range obs[1:] {
		if o.Timestamp.After(ref) {
			ref = o.Timestamp
		}
	}
	return ref, nil
}

// TrailingWindows derives the three trailing windows ending at ref. These
// are absolute-instant arithmetic: a day is exactly 24 hours and a week
// exactly 168, regardless of DST transitions inside the window.
func TrailingWindows(ref time.Time) [3]Window {
	return [3]Window{
		{Label: "1h", Start: ref.Add(-time.Hour), End: ref},
		{Label: "1d", Start: ref.Add(-24 * time.Hour), End: ref},
		{Label: "1w", Start: ref.Add(-7 * 24 * time.Hour), End: ref},
	}
}
