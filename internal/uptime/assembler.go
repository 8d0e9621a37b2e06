package uptime

import (
	"context"
	"fmt"
	"math"
	"time"
)

// ReportRow is one finished output row: six minute values, rounded to two
// decimals with the same rule for every window.
type ReportRow struct {
	StoreID          string
	UptimeLastHour   float64
	UptimeLastDay    float64
	UptimeLastWeek   float64
	DowntimeLastHour float64
	DowntimeLastDay  float64
	DowntimeLastWeek float64
}

// StoreIssue records a per-store data-quality signal raised while assembling
// the report. Issues do not stop the run; they let the caller audit coverage.
type StoreIssue struct {
	StoreID string
	Reason  string
}

// Report is the result of one assembly run over one snapshot.
type Report struct {
	ReferenceInstant time.Time
	Rows             []ReportRow
	Issues           []StoreIssue
}

// BuildReport runs the full computation over an immutable snapshot: one row
// per store carrying uptime/downtime minutes within business hours for the
// trailing 1h/1d/1w windows ending at the reference instant.
//
// Rows keep the order in which stores first appear in the observation input,
// so repeated runs over the same snapshot produce identical output. A store
// without a timezone row falls back to the snapshot's default and is
// recorded as an issue; an unresolvable IANA identifier fails the whole run.
// Stores with fewer than two observations yield a zero row plus an issue.
func BuildReport(ctx context.Context, snap *Snapshot) (*Report, error) {
	ref, err := ReferenceInstant(snap.Observations)
	if err != nil {
		return nil, err
	}
	windows := TrailingWindows(ref)

	byStore := make(map[string][]Observation)
	var order []string
	for _, o := range snap.Observations {
		if _, seen := byStore[o.StoreID]; !seen {
			order = append(order, o.StoreID)
		}
		byStore[o.StoreID] = append(byStore[o.StoreID], o)
	}

	defaultTZ := snap.DefaultTimezone
	if defaultTZ == "" {
		defaultTZ = DefaultTimezone
	}

	report := &Report{ReferenceInstant: ref}
	for _, storeID := range order {
		tzName := snap.Timezones[storeID]
		if tzName == "" {
			tzName = defaultTZ
			report.Issues = append(report.Issues, StoreIssue{
				StoreID: storeID,
				Reason:  fmt.Sprintf("no timezone on record, using default %s", tzName),
			})
		}
		loc, err := time.LoadLocation(tzName)
		if err != nil {
			return nil, fmt.Errorf("store %s: unresolvable timezone %q: %v", storeID, tzName, err)
		}

		intervals := Extrapolate(byStore[storeID])
		if len(intervals) == 0 {
			report.Issues = append(report.Issues, StoreIssue{
				StoreID: storeID,
				Reason:  "fewer than two observations, no countable time",
			})
		}
		hours := NewHoursResolver(snap.Hours[storeID])

		var totals [3]Totals
		for i, w := range windows {
			totals[i], err = Aggregate(ctx, intervals, w, loc, hours)
			if err != nil {
				return nil, err
			}
		}

		report.Rows = append(report.Rows, ReportRow{
			StoreID:          storeID,
			UptimeLastHour:   roundMinutes(totals[0].Uptime),
			UptimeLastDay:    roundMinutes(totals[1].Uptime),
			UptimeLastWeek:   roundMinutes(totals[2].Uptime),
			DowntimeLastHour: roundMinutes(totals[0].Downtime),
			DowntimeLastDay:  roundMinutes(totals[1].Downtime),
			DowntimeLastWeek: roundMinutes(totals[2].Downtime),
		})
	}

	return report, nil
}

// roundMinutes converts a duration to minutes at the last possible moment,
// rounding to two decimals. Accumulation happens in time.Duration upstream
// so rounding error never compounds across intervals.
func roundMinutes(d time.Duration) float64 {
	return math.Round(d.Minutes()*100) / 100
}
