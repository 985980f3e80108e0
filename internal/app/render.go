package app

import (
	"strconv"

	"github.com/hperssn/mapty/internal/domain"
)

// Stat is one labelled value in a list entry.
type Stat struct {
	Icon  string `json:"icon"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// ListEntry is the rendered form of a workout in the sidebar list.
type ListEntry struct {
	ID          string      `json:"id"`
	Kind        domain.Kind `json:"kind"`
	Description string      `json:"description"`
	Stats       []Stat      `json:"stats"`
}

func kindIcon(kind domain.Kind) string {
	switch kind {
	case domain.KindRunning:
		return "🏃‍♂️"
	case domain.KindCycling:
		return "🚴‍♀️"
	default:
		return ""
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MarkerPopup is the popup text shown on a workout's marker.
func MarkerPopup(w *domain.Workout) string {
	return kindIcon(w.Kind) + " " + w.Description
}

func markerPopupOptions(kind domain.Kind) PopupOptions {
	return PopupOptions{
		MaxWidth:     250,
		MinWidth:     100,
		AutoClose:    false,
		CloseOnClick: false,
		ClassName:    string(kind) + "-popup",
	}
}

// NewListEntry formats a workout for the list. Pace is shown with one
// decimal, speed with two.
func NewListEntry(w *domain.Workout) ListEntry {
	entry := ListEntry{
		ID:          w.ID,
		Kind:        w.Kind,
		Description: w.Description,
		Stats: []Stat{
			{Icon: kindIcon(w.Kind), Value: formatNumber(w.DistanceKm), Unit: "km"},
			{Icon: "⏱", Value: formatNumber(w.DurationMin), Unit: "min"},
		},
	}

	switch w.Kind {
	case domain.KindRunning:
		entry.Stats = append(entry.Stats,
			Stat{Icon: "⚡️", Value: strconv.FormatFloat(w.Running.PaceMinPerKm, 'f', 1, 64), Unit: "min/km"},
			Stat{Icon: "🦶🏼", Value: formatNumber(w.Running.CadenceSpm), Unit: "spm"},
		)
	case domain.KindCycling:
		entry.Stats = append(entry.Stats,
			Stat{Icon: "⚡️", Value: strconv.FormatFloat(w.Cycling.SpeedKmPerH, 'f', 2, 64), Unit: "km/h"},
			Stat{Icon: "⛰", Value: formatNumber(w.Cycling.ElevationGainM), Unit: "m"},
		)
	}

	return entry
}
