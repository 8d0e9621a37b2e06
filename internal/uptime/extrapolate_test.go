package uptime

import (
	"testing"
	"time"
)

func TestExtrapolate(t *testing.T) {
	base := time.Date(2023, 1, 25, 9, 0, 0, 0, time.UTC)
	at := func(m int) time.Time { return base.Add(time.Duration(m) * time.Minute) }

	tests := []struct {
		name string
		obs  []Observation
		want []StatusInterval
	}{
		{
			name: "no observations",
			obs:  nil,
			want: nil,
		},
		{
			name: "single observation yields no known interval",
			obs: []Observation{
				{StoreID: "a", Timestamp: at(0), Status: StatusActive},
			},
			want: nil,
		},
		{
			name: "forward fill between consecutive observations",
			obs: []Observation{
				{StoreID: "a", Timestamp: at(0), Status: StatusActive},
				{StoreID: "a", Timestamp: at(60), Status: StatusInactive},
				{StoreID: "a", Timestamp: at(120), Status: StatusActive},
			},
			want: []StatusInterval{
				{Start: at(0), End: at(60), Status: StatusActive},
				{Start: at(60), End: at(120), Status: StatusInactive},
			},
		},
		{
			name: "unsorted input is sorted defensively",
			obs: []Observation{
				{StoreID: "a", Timestamp: at(120), Status: StatusActive},
				{StoreID: "a", Timestamp: at(0), Status: StatusActive},
				{StoreID: "a", Timestamp: at(60), Status: StatusInactive},
			},
			want: []StatusInterval{
				{Start: at(0), End: at(60), Status: StatusActive},
				{Start: at(60), End: at(120), Status: StatusInactive},
			},
		},
		{
			name: "duplicate timestamps resolve last-write-wins by input order",
			obs: []Observation{
				{StoreID: "a", Timestamp: at(0), Status: StatusActive},
				{StoreID: "a", Timestamp: at(60), Status: StatusInactive},
				{StoreID: "a", Timestamp: at(60), Status: StatusActive},
				{StoreID: "a", Timestamp: at(120), Status: StatusActive},
			},
			want: []StatusInterval{
				{Start: at(0), End: at(60), Status: StatusActive},
				{Start: at(60), End: at(60), Status: StatusInactive},
				{Start: at(60), End: at(120), Status: StatusActive},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extrapolate(tt.obs)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d intervals, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if !got[i].Start.Equal(tt.want[i].Start) || !got[i].End.Equal(tt.want[i].End) || got[i].Status != tt.want[i].Status {
					t.Errorf("interval %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// The interval partition must tile the observed span exactly: the first
// interval starts at the earliest observation, the last ends at the latest,
// and each interval's end is the next interval's start.
func TestExtrapolatePartitionCoverage(t *testing.T) {
	base := time.Date(2023, 1, 20, 0, 0, 0, 0, time.UTC)
	var obs []Observation
	offsets := []int{300, 0, 17, 120, 45, 45, 260} // minutes, deliberately unsorted with a duplicate
	statuses := []Status{StatusActive, StatusInactive, StatusActive, StatusInactive, StatusActive, StatusInactive, StatusActive}
	for i, m := range offsets {
		obs = append(obs, Observation{StoreID: "a", Timestamp: base.Add(time.Duration(m) * time.Minute), Status: statuses[i]})
	}

	intervals := Extrapolate(obs)
	if len(intervals) != len(obs)-1 {
		t.Fatalf("got %d intervals, want %d", len(intervals), len(obs)-1)
	}
	if !intervals[0].Start.Equal(base) {
		t.Errorf("first interval starts at %v, want %v", intervals[0].Start, base)
	}
	last := base.Add(300 * time.Minute)
	if !intervals[len(intervals)-1].End.Equal(last) {
		t.Errorf("last interval ends at %v, want %v", intervals[len(intervals)-1].End, last)
	}
	for i := 0; i < len(intervals)-1; i++ {
		if !intervals[i].End.Equal(intervals[i+1].Start) {
			t.Errorf("gap or overlap between interval %d and %d: %v != %v", i, i+1, intervals[i].End, intervals[i+1].Start)
		}
		if intervals[i].End.Before(intervals[i].Start) {
			t.Errorf("interval %d has negative length: %+v", i, intervals[i])
		}
	}
}
