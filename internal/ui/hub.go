// Package ui turns controller render calls into events for the browser page
// and routes page clicks back to the handlers the controller registered.
package ui

import (
	"sync"
	"time"

	"github.com/hperssn/mapty/internal/app"
	"github.com/hperssn/mapty/internal/domain"
)

const (
	EventMapCreated    = "map.created"
	EventMapView       = "map.view"
	EventMarkerAdded   = "marker.added"
	EventMarkerPopup   = "marker.popup"
	EventMarkerContent = "marker.content"
	EventMarkerOpen    = "marker.open"
	EventListAppended  = "list.appended"
	EventFormShown     = "form.shown"
	EventFormHidden    = "form.hidden"
	EventFormFields    = "form.fields"
	EventAlert         = "alert"
	EventReload        = "reload"
)

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Hub fans events out to subscribers. Events that build up the page (map,
// markers, list entries) are kept so a late subscriber can catch up; the
// rest are delivered live only. A subscriber that cannot keep up is
// disconnected and catches up again on its next Subscribe.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan Event]struct{}
	// mapEvent stays outside the bounded history; nothing replays without it.
	mapEvent   *Event
	history    []Event
	maxHistory int
	buffer     int

	onClick    func(domain.Coords)
	nextMarker int
}

func NewHub(maxHistory int) *Hub {
	return &Hub{
		subscribers: make(map[chan Event]struct{}),
		maxHistory:  maxHistory,
		buffer:      256,
	}
}

// Subscribe returns a channel that first replays the kept events. Call the
// returned func to unsubscribe.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	size := len(h.history) + h.buffer
	if h.mapEvent != nil {
		size++
	}
	ch := make(chan Event, size)
	if h.mapEvent != nil {
		ch <- *h.mapEvent
	}
	for _, e := range h.history {
		ch <- e
	}
	h.subscribers[ch] = struct{}{}

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.dropLocked(ch)
	}
}

func (h *Hub) dropLocked(ch chan Event) {
	if _, ok := h.subscribers[ch]; !ok {
		return
	}
	delete(h.subscribers, ch)
	close(ch)
}

func (h *Hub) publish(e Event, keep bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.publishLocked(e, keep)
}

func (h *Hub) publishLocked(e Event, keep bool) {
	switch {
	case keep && e.Type == EventMapCreated:
		h.mapEvent = &e
	case keep:
		h.history = append(h.history, e)
		h.trimLocked()
	}

	for ch := range h.subscribers {
		select {
		case ch <- e:
		default:
			h.dropLocked(ch)
		}
	}
}

// trimLocked drops the oldest events, always cutting at the start of a
// marker or list entry so no replayed event refers to a missing marker.
func (h *Hub) trimLocked() {
	if h.maxHistory <= 0 || len(h.history) <= h.maxHistory {
		return
	}
	cut := len(h.history) - h.maxHistory
	for cut < len(h.history) && !startsGroup(h.history[cut].Type) {
		cut++
	}
	h.history = h.history[cut:]
}

func startsGroup(eventType string) bool {
	return eventType == EventMarkerAdded || eventType == EventListAppended
}

// Click delivers a map click to the registered handler. It reports false when
// no map is listening yet.
func (h *Hub) Click(at domain.Coords) bool {
	h.mu.Lock()
	handler := h.onClick
	h.mu.Unlock()

	if handler == nil {
		return false
	}
	handler(at)
	return true
}

func (h *Hub) CreateMap(containerID string, center domain.Coords, zoom int) (app.Map, error) {
	h.publish(Event{Type: EventMapCreated, Data: map[string]any{
		"container":         containerID,
		"center":            center,
		"zoom":              zoom,
		"closePopupOnClick": false,
	}}, true)
	return &webMap{hub: h}, nil
}

func (h *Hub) AppendEntry(entry app.ListEntry) {
	h.publish(Event{Type: EventListAppended, Data: entry}, true)
}

func (h *Hub) Show(focus string) {
	h.publish(Event{Type: EventFormShown, Data: map[string]string{"focus": focus}}, false)
}

func (h *Hub) Hide(suppressFor time.Duration) {
	h.publish(Event{Type: EventFormHidden, Data: map[string]int64{"suppressMs": suppressFor.Milliseconds()}}, false)
}

func (h *Hub) SetFields(kind domain.Kind) {
	h.publish(Event{Type: EventFormFields, Data: map[string]string{"kind": string(kind)}}, false)
}

func (h *Hub) Alert(message string) {
	h.publish(Event{Type: EventAlert, Data: map[string]string{"message": message}}, false)
}

// Reload forgets the page state and tells connected pages to start over.
func (h *Hub) Reload() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.mapEvent = nil
	h.history = nil
	h.onClick = nil
	h.publishLocked(Event{Type: EventReload}, false)
}

type webMap struct {
	hub *Hub
}

func (m *webMap) SetView(center domain.Coords, zoom int, opts app.ViewOptions) {
	m.hub.publish(Event{Type: EventMapView, Data: map[string]any{
		"center":  center,
		"zoom":    zoom,
		"animate": opts.Animate,
		"pan":     map[string]float64{"duration": opts.PanDuration.Seconds()},
	}}, false)
}

func (m *webMap) AddMarker(at domain.Coords) app.Marker {
	m.hub.mu.Lock()
	m.hub.nextMarker++
	mk := &webMarker{hub: m.hub, id: m.hub.nextMarker}
	m.hub.publishLocked(Event{Type: EventMarkerAdded, Data: map[string]any{"id": mk.id, "coords": at}}, true)
	m.hub.mu.Unlock()
	return mk
}

func (m *webMap) OnClick(handler func(domain.Coords)) {
	m.hub.mu.Lock()
	defer m.hub.mu.Unlock()
	m.hub.onClick = handler
}

type webMarker struct {
	hub *Hub
	id  int
}

func (mk *webMarker) BindPopup(opts app.PopupOptions) app.Marker {
	mk.hub.publish(Event{Type: EventMarkerPopup, Data: map[string]any{"id": mk.id, "options": opts}}, true)
	return mk
}

func (mk *webMarker) SetPopupContent(text string) app.Marker {
	mk.hub.publish(Event{Type: EventMarkerContent, Data: map[string]any{"id": mk.id, "content": text}}, true)
	return mk
}

func (mk *webMarker) OpenPopup() app.Marker {
	mk.hub.publish(Event{Type: EventMarkerOpen, Data: map[string]any{"id": mk.id}}, true)
	return mk
}
