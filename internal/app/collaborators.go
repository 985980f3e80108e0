package app

import (
	"context"
	"time"

	"github.com/hperssn/mapty/internal/domain"
)

// Geolocator resolves the user's current position once per session.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (domain.Coords, error)
}

// MapRenderer creates the single map shown in a session.
type MapRenderer interface {
	CreateMap(containerID string, center domain.Coords, zoom int) (Map, error)
}

type Map interface {
	SetView(center domain.Coords, zoom int, opts ViewOptions)
	AddMarker(at domain.Coords) Marker
	// OnClick registers the handler for clicks on the map surface.
	OnClick(handler func(domain.Coords))
}

// Marker is a placed map marker. Methods chain.
type Marker interface {
	BindPopup(opts PopupOptions) Marker
	SetPopupContent(text string) Marker
	OpenPopup() Marker
}

type ListRenderer interface {
	AppendEntry(entry ListEntry)
}

// FormView is the workout input form.
type FormView interface {
	// Show reveals the form and focuses the named input.
	Show(focus string)
	// Hide collapses the form, clears its inputs and keeps it non-interactive
	// for the given delay.
	Hide(suppressFor time.Duration)
	// SetFields switches between the cadence and elevation inputs.
	SetFields(kind domain.Kind)
}

type Alerter interface {
	Alert(message string)
}

// Reloader restarts the page side of a session.
type Reloader interface {
	Reload()
}

type ViewOptions struct {
	Animate     bool          `json:"animate"`
	PanDuration time.Duration `json:"-"`
}

type PopupOptions struct {
	MaxWidth     int    `json:"maxWidth"`
	MinWidth     int    `json:"minWidth"`
	AutoClose    bool   `json:"autoClose"`
	CloseOnClick bool   `json:"closeOnClick"`
	ClassName    string `json:"className"`
}
