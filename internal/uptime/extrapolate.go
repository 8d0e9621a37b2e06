package uptime

import (
	"sort"
	"time"
)

// StatusInterval is a maximal span [Start, End) during which a store's
// status is taken to be constant.
type StatusInterval struct {
	Start  time.Time
	End    time.Time
	Status Status
}

// Extrapolate turns a store's point observations into a partition of the
// observed timespan: each observation's status holds from its timestamp
// until the next observation's timestamp (forward-fill). Status before the
// first and after the last observation is unknown and yields no interval,
// so a store with fewer than two observations has no countable time.
//
// Input order does not matter; a stable sort is applied, so observations
// sharing a timestamp resolve last-write-wins by input order (the earlier
// ones collapse into zero-length intervals).
func Extrapolate(obs []Observation) []StatusInterval {
	if len(obs) < 2 {
		return nil
	}

	sorted := make([]Observation, len(obs))
	copy(sorted, obs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	intervals := make([]StatusInterval, 0, len(sorted)-1)
	for i := 0; i < len(sorted)-1; i++ {
		intervals = append(intervals, StatusInterval{
			Start:  sorted[i].Timestamp,
			End:    sorted[i+1].Timestamp,
			Status: sorted[i].Status,
		})
	}
	return intervals
}
