package uptime

import (
	"context"
	"time"
)

// Totals accumulates countable time by status bucket for one window.
type Totals struct {
	Uptime   time.Duration
	Downtime time.Duration
}

// Aggregate intersects a store's status intervals with its business hours
// and the trailing window, summing the overlap per status bucket.
//
// It walks every local calendar date the window touches, converts that
// date's business hours back to absolute instants via time.Date in the
// store's location (so wall-clock times survive DST transitions), clips
// them to the window, and then clips every status interval against the
// result. Unknown spans and closed time land in neither bucket, so the
// countable total may be less than the window's nominal duration.
//
// Cancellation is cooperative and checked only at date boundaries, never
// mid-interval.
func Aggregate(ctx context.Context, intervals []StatusInterval, w Window, loc *time.Location, hours *HoursResolver) (Totals, error) {
	var totals Totals

	localStart := w.Start.In(loc)
	year, month, day := localStart.Date()

	for offset := 0; ; offset++ {
		midnight := time.Date(year, month, day+offset, 0, 0, 0, 0, loc)
		if !midnight.Before(w.End) {
			break
		}

		select {
		case <-ctx.Done():
			return Totals{}, ctx.Err()
		default:
		}

		for _, rule := range hours.HoursFor(midnight) {
			opens := time.Date(year, month, day+offset, 0, 0, rule.StartSec, 0, loc)
			closes := time.Date(year, month, day+offset, 0, 0, rule.EndSec, 0, loc)

			countStart := laterOf(opens, w.Start)
			countEnd := earlierOf(closes, w.End)
			if !countStart.Before(countEnd) {
				continue
			}

			for _, iv := range intervals {
				start := laterOf(iv.Start, countStart)
				end := earlierOf(iv.End, countEnd)
				if !start.Before(end) {
					continue
				}
				switch iv.Status {
				case StatusActive:
					totals.Uptime += end.Sub(start)
				case StatusInactive:
					totals.Downtime += end.Sub(start)
				}
			}
		}
	}

	return totals, nil
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
