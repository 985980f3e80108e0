package app

import (
	"testing"
	"time"

	"github.com/hperssn/mapty/internal/domain"
)

func TestNewListEntry(t *testing.T) {
	at := time.Date(2024, time.July, 14, 6, 0, 0, 0, time.UTC)
	run, _ := domain.NewRunning(at, domain.Coords{}, 7, 40, 172)
	ride, _ := domain.NewCycling(at, domain.Coords{}, 27, 70, -12)

	tests := []struct {
		name string
		w    *domain.Workout
		want []Stat
	}{
		{
			name: "running shows pace to one decimal",
			w:    run,
			want: []Stat{
				{Icon: "🏃‍♂️", Value: "7", Unit: "km"},
				{Icon: "⏱", Value: "40", Unit: "min"},
				{Icon: "⚡️", Value: "5.7", Unit: "min/km"},
				{Icon: "🦶🏼", Value: "172", Unit: "spm"},
			},
		},
		{
			name: "cycling shows speed to two decimals",
			w:    ride,
			want: []Stat{
				{Icon: "🚴‍♀️", Value: "27", Unit: "km"},
				{Icon: "⏱", Value: "70", Unit: "min"},
				{Icon: "⚡️", Value: "23.14", Unit: "km/h"},
				{Icon: "⛰", Value: "-12", Unit: "m"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := NewListEntry(tt.w)
			if entry.ID != tt.w.ID || entry.Kind != tt.w.Kind || entry.Description != tt.w.Description {
				t.Fatalf("entry header mismatch: %+v", entry)
			}
			if len(entry.Stats) != len(tt.want) {
				t.Fatalf("got %d stats, want %d", len(entry.Stats), len(tt.want))
			}
			for i := range tt.want {
				if entry.Stats[i] != tt.want[i] {
					t.Errorf("stat %d = %+v, want %+v", i, entry.Stats[i], tt.want[i])
				}
			}
		})
	}
}

func TestMarkerPopup(t *testing.T) {
	at := time.Date(2024, time.July, 14, 6, 0, 0, 0, time.UTC)
	ride, _ := domain.NewCycling(at, domain.Coords{}, 27, 70, 0)

	if got := MarkerPopup(ride); got != "🚴‍♀️ Cycling on July 14" {
		t.Fatalf("MarkerPopup = %q", got)
	}

	opts := markerPopupOptions(domain.KindCycling)
	if opts.MaxWidth != 250 || opts.MinWidth != 100 || opts.AutoClose || opts.CloseOnClick {
		t.Fatalf("unexpected popup options %+v", opts)
	}
	if opts.ClassName != "cycling-popup" {
		t.Fatalf("className = %q", opts.ClassName)
	}
}
