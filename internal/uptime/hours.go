package uptime

import "time"

// HoursResolver answers, for one store, which local business-hours intervals
// apply on a given local calendar date.
//
// A store with no schedule rows at all is open 24/7. A store that has rows
// but none for a particular day of week is closed that day. The two cases
// must not be conflated: the first counts every hour, the second none.
type HoursResolver struct {
	byDay    map[int][]HoursRule
	open24x7 bool
}

// NewHoursResolver builds a resolver from a store's schedule rules. Callers
// are expected to have rejected invalid rules (start >= end) already.
func NewHoursResolver(rules []HoursRule) *HoursResolver {
	r := &HoursResolver{byDay: make(map[int][]HoursRule)}
	for _, rule := range rules {
		r.byDay[rule.Day] = append(r.byDay[rule.Day], rule)
	}
	r.open24x7 = len(r.byDay) == 0
	return r
}

// HoursFor returns the business-hours rules applying to the local calendar
// date of t. An empty result means the store is closed that day.
func (r *HoursResolver) HoursFor(t time.Time) []HoursRule {
	day := DayOfWeek(t)
	if r.open24x7 {
		return []HoursRule{{Day: day, StartSec: 0, EndSec: SecondsPerDay}}
	}
	return r.byDay[day]
}
