// Package app drives a workout logging session: it reacts to location, map,
// form and list events and keeps the store, the map and the list in step.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/hperssn/mapty/internal/domain"
	"github.com/hperssn/mapty/internal/observability"
	"github.com/hperssn/mapty/internal/storage"
	"github.com/hperssn/mapty/internal/store"
)

const (
	MapContainerID = "map"
	DefaultZoom    = 13

	DefaultCollapseDelay = time.Second

	MsgPositionUnavailable = "Could not get your position"
	MsgInvalidInput        = "Inputs have to be positive numbers!"
)

var (
	ErrGeolocationDenied = errors.New("could not get position")
	ErrNoPendingLocation = errors.New("no map location selected")
	ErrAlreadyStarted    = errors.New("session already started")
	ErrSessionReset      = errors.New("session was reset")
)

type State string

const (
	StateAwaitingLocation State = "awaiting_location"
	StateLocating         State = "locating"
	StateMapReady         State = "map_ready"
	StateLocationFailed   State = "location_failed"
)

// Deps are the collaborators a Controller talks to.
type Deps struct {
	Geolocator Geolocator
	Maps       MapRenderer
	List       ListRenderer
	Form       FormView
	Alerts     Alerter
	Reloader   Reloader
	Slot       storage.Slot
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithZoom(zoom int) Option {
	return func(c *Controller) { c.zoom = zoom }
}

func WithCollapseDelay(d time.Duration) Option {
	return func(c *Controller) { c.collapseDelay = d }
}

// Controller owns the workout store for one session. Every exported method
// runs under the controller lock, so each event is handled atomically.
type Controller struct {
	mu sync.Mutex

	deps  Deps
	store *store.Store

	state      State
	generation int
	// stopLocate cancels the position lookup of the current generation.
	stopLocate context.CancelFunc
	m          Map

	pending       *domain.Coords
	formVisible   bool
	formKind      domain.Kind
	collapseUntil time.Time

	now           func() time.Time
	zoom          int
	collapseDelay time.Duration
}

// New loads persisted workouts and renders them into the list. Markers follow
// once the map exists.
func New(ctx context.Context, deps Deps, opts ...Option) (*Controller, error) {
	c := &Controller{
		deps:          deps,
		store:         store.New(),
		state:         StateAwaitingLocation,
		formKind:      domain.KindRunning,
		now:           time.Now,
		zoom:          DefaultZoom,
		collapseDelay: DefaultCollapseDelay,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.store.Load(ctx, deps.Slot); err != nil {
		return nil, err
	}
	observability.SetStoredWorkouts(c.store.Len())

	for _, w := range c.store.All() {
		deps.List.AppendEntry(NewListEntry(w))
	}

	log.Printf("session loaded with %d workouts", c.store.Len())
	return c, nil
}

// Start acquires the user's position and creates the map around it. A failed
// lookup is final for the session.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateAwaitingLocation {
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("%w (state %s)", ErrAlreadyStarted, state)
	}
	c.state = StateLocating
	gen := c.generation
	locateCtx, stop := context.WithCancel(ctx)
	defer stop()
	c.stopLocate = stop
	c.mu.Unlock()

	coords, geoErr := c.deps.Geolocator.CurrentPosition(locateCtx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return ErrSessionReset
	}
	c.stopLocate = nil

	if geoErr != nil {
		c.state = StateLocationFailed
		c.deps.Alerts.Alert(MsgPositionUnavailable)
		log.Printf("geolocation failed: %v", geoErr)
		return fmt.Errorf("%w: %v", ErrGeolocationDenied, geoErr)
	}

	m, err := c.deps.Maps.CreateMap(MapContainerID, coords, c.zoom)
	if err != nil {
		c.state = StateLocationFailed
		return fmt.Errorf("create map: %w", err)
	}

	c.m = m
	c.state = StateMapReady
	m.OnClick(c.HandleMapClick)

	for _, w := range c.store.All() {
		c.renderMarker(w)
	}

	log.Printf("map ready at %s", coords)
	return nil
}

// HandleMapClick records the clicked point and opens the form.
func (c *Controller) HandleMapClick(at domain.Coords) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateMapReady {
		return
	}

	c.pending = &at
	c.formVisible = true
	c.deps.Form.Show("distance")
}

// SelectType flips the kind-specific form field.
func (c *Controller) SelectType(raw string) error {
	kind, ok := domain.ParseKind(raw)
	if !ok {
		return &InvalidInputError{Fields: []string{"type"}}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.formKind = kind
	c.deps.Form.SetFields(kind)
	return nil
}

// Submit validates the form and, on success, records a workout at the
// pending location. Invalid input alerts the user and leaves everything
// else untouched.
func (c *Controller) Submit(ctx context.Context, in FormInput) (*domain.Workout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateMapReady || c.pending == nil {
		return nil, ErrNoPendingLocation
	}

	parsed, err := in.validate()
	if err != nil {
		c.deps.Alerts.Alert(MsgInvalidInput)
		observability.RecordSubmissionRejected()
		return nil, err
	}

	w, err := c.newWorkout(parsed, *c.pending)
	if err != nil {
		c.deps.Alerts.Alert(MsgInvalidInput)
		observability.RecordSubmissionRejected()
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	c.store.Add(w)
	c.renderMarker(w)
	c.deps.List.AppendEntry(NewListEntry(w))
	c.hideForm()

	observability.RecordWorkoutCreated(string(w.Kind))
	observability.SetStoredWorkouts(c.store.Len())

	// The snapshot is a local cache; a failed write loses nothing in memory.
	if err := c.store.SaveTo(ctx, c.deps.Slot); err != nil {
		observability.RecordPersistFailure()
		log.Printf("failed to persist workouts: %v", err)
	}

	return w, nil
}

func (c *Controller) newWorkout(in workoutInput, at domain.Coords) (*domain.Workout, error) {
	switch in.kind {
	case domain.KindRunning:
		return domain.NewRunning(c.now(), at, in.distance, in.duration, in.cadence)
	case domain.KindCycling:
		return domain.NewCycling(c.now(), at, in.distance, in.duration, in.elevation)
	default:
		return nil, fmt.Errorf("unsupported kind %q", in.kind)
	}
}

// Cancel closes the form without creating a workout.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.formVisible {
		return
	}
	c.hideForm()
}

func (c *Controller) hideForm() {
	c.pending = nil
	c.formVisible = false
	c.collapseUntil = c.now().Add(c.collapseDelay)
	c.deps.Form.Hide(c.collapseDelay)
}

// HandleListClick pans the map to the workout with the given id. Unknown ids
// come from stale list entries and are ignored.
func (c *Controller) HandleListClick(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id == "" || c.m == nil {
		return
	}

	w, err := c.store.FindByID(id)
	if err != nil {
		return
	}

	c.m.SetView(w.Coords, c.zoom, ViewOptions{Animate: true, PanDuration: time.Second})
}

// Reset drops every workout, including the persisted copy, and sends the
// session back to waiting for a location. A lookup still in flight is
// abandoned so the next Start receives the new position.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Clear(ctx, c.deps.Slot); err != nil {
		observability.RecordPersistFailure()
		return err
	}
	observability.SetStoredWorkouts(0)

	if c.stopLocate != nil {
		c.stopLocate()
		c.stopLocate = nil
	}
	c.generation++
	c.state = StateAwaitingLocation
	c.m = nil
	c.pending = nil
	c.formVisible = false
	c.formKind = domain.KindRunning
	c.collapseUntil = time.Time{}

	c.deps.Reloader.Reload()
	log.Printf("session reset")
	return nil
}

func (c *Controller) renderMarker(w *domain.Workout) {
	c.m.AddMarker(w.Coords).
		BindPopup(markerPopupOptions(w.Kind)).
		SetPopupContent(MarkerPopup(w)).
		OpenPopup()
}

// Snapshot is a read-only view of the session.
type Snapshot struct {
	State       State
	FormVisible bool
	FormKind    domain.Kind
	Collapsing  bool
	Pending     *domain.Coords
	Workouts    []*domain.Workout
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:       c.state,
		FormVisible: c.formVisible,
		FormKind:    c.formKind,
		Collapsing:  c.now().Before(c.collapseUntil),
		Workouts:    c.store.All(),
	}
	if c.pending != nil {
		p := *c.pending
		snap.Pending = &p
	}
	return snap
}
