package uptime

import (
	"testing"
	"time"
)

func TestDayOfWeek(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"monday", time.Date(2023, 1, 23, 10, 0, 0, 0, time.UTC), 0},
		{"wednesday", time.Date(2023, 1, 25, 10, 0, 0, 0, time.UTC), 2},
		{"sunday", time.Date(2023, 1, 29, 10, 0, 0, 0, time.UTC), 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayOfWeek(tt.date); got != tt.want {
				t.Errorf("DayOfWeek(%v) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestHoursResolver(t *testing.T) {
	monday := time.Date(2023, 1, 23, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	nineToFive := HoursRule{Day: 0, StartSec: 9 * 3600, EndSec: 17 * 3600}
	eveningShift := HoursRule{Day: 0, StartSec: 19 * 3600, EndSec: 22 * 3600}

	tests := []struct {
		name  string
		rules []HoursRule
		date  time.Time
		want  []HoursRule
	}{
		{
			name:  "no schedule at all means open 24/7",
			rules: nil,
			date:  monday,
			want:  []HoursRule{{Day: 0, StartSec: 0, EndSec: SecondsPerDay}},
		},
		{
			name:  "rule applies on its day",
			rules: []HoursRule{nineToFive},
			date:  monday,
			want:  []HoursRule{nineToFive},
		},
		{
			name:  "schedule exists but excludes this day means closed",
			rules: []HoursRule{nineToFive},
			date:  tuesday,
			want:  nil,
		},
		{
			name:  "multiple rules on one day",
			rules: []HoursRule{nineToFive, eveningShift},
			date:  monday,
			want:  []HoursRule{nineToFive, eveningShift},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewHoursResolver(tt.rules).HoursFor(tt.date)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d rules, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("rule %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00:00", want: 0},
		{in: "09:30:15", want: 9*3600 + 30*60 + 15},
		{in: "23:59:59", want: SecondsPerDay - 1},
		{in: "24:00:00", want: SecondsPerDay},
		{in: "24:00:01", wantErr: true},
		{in: "25:00:00", wantErr: true},
		{in: "12:60:00", wantErr: true},
		{in: "garbage", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTimeOfDay(%q): expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimeOfDay(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
