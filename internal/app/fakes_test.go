package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hperssn/mapty/internal/domain"
)

type fakeGeo struct {
	coords domain.Coords
	err    error
}

func (g fakeGeo) CurrentPosition(context.Context) (domain.Coords, error) {
	return g.coords, g.err
}

type viewCall struct {
	center domain.Coords
	zoom   int
	opts   ViewOptions
}

type fakeMarker struct {
	at      domain.Coords
	popup   PopupOptions
	content string
	open    bool
}

func (m *fakeMarker) BindPopup(opts PopupOptions) Marker   { m.popup = opts; return m }
func (m *fakeMarker) SetPopupContent(text string) Marker { m.content = text; return m }
func (m *fakeMarker) OpenPopup() Marker                  { m.open = true; return m }

type fakeMap struct {
	containerID string
	center      domain.Coords
	zoom        int
	views       []viewCall
	markers     []*fakeMarker
	onClick     func(domain.Coords)
}

func (m *fakeMap) SetView(center domain.Coords, zoom int, opts ViewOptions) {
	m.views = append(m.views, viewCall{center: center, zoom: zoom, opts: opts})
}

func (m *fakeMap) AddMarker(at domain.Coords) Marker {
	mk := &fakeMarker{at: at}
	m.markers = append(m.markers, mk)
	return mk
}

func (m *fakeMap) OnClick(handler func(domain.Coords)) {
	m.onClick = handler
}

type fakeMaps struct {
	created []*fakeMap
	err     error
}

func (f *fakeMaps) CreateMap(containerID string, center domain.Coords, zoom int) (Map, error) {
	if f.err != nil {
		return nil, f.err
	}
	m := &fakeMap{containerID: containerID, center: center, zoom: zoom}
	f.created = append(f.created, m)
	return m, nil
}

func (f *fakeMaps) current() *fakeMap {
	if len(f.created) == 0 {
		return nil
	}
	return f.created[len(f.created)-1]
}

// fakePage records list, form, alert and reload calls.
type fakePage struct {
	mu      sync.Mutex
	entries []ListEntry
	alerts  []string
	shown   []string
	hidden  []time.Duration
	fields  []domain.Kind
	reloads int
}

func (p *fakePage) AppendEntry(entry ListEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, entry)
}

func (p *fakePage) Alert(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, message)
}

func (p *fakePage) Show(focus string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shown = append(p.shown, focus)
}

func (p *fakePage) Hide(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hidden = append(p.hidden, d)
}

func (p *fakePage) SetFields(kind domain.Kind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fields = append(p.fields, kind)
}

func (p *fakePage) Reload() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reloads++
}

// failingSlot fails every write.
type failingSlot struct{}

var errDiskFull = errors.New("disk full")

func (failingSlot) GetItem(context.Context, string) (string, bool, error) { return "", false, nil }
func (failingSlot) SetItem(context.Context, string, string) error      { return errDiskFull }
func (failingSlot) RemoveItem(context.Context, string) error           { return errDiskFull }
func (failingSlot) Close() error                                       { return nil }
