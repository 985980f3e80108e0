package domain

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidMetric = errors.New("invalid workout metric")

// InvalidMetricError names the metric that made construction fail.
type InvalidMetricError struct {
	Field string
	Value float64
}

func (e *InvalidMetricError) Error() string {
	if !finite(e.Value) {
		return fmt.Sprintf("%s must be finite, got %v", e.Field, e.Value)
	}
	return fmt.Sprintf("%s must be positive, got %v", e.Field, e.Value)
}

func (e *InvalidMetricError) Unwrap() error {
	return ErrInvalidMetric
}

type Kind string

const (
	KindRunning Kind = "running"
	KindCycling Kind = "cycling"
)

func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindRunning, KindCycling:
		return Kind(s), true
	default:
		return "", false
	}
}

// Title returns the capitalized kind name used in descriptions.
func (k Kind) Title() string {
	switch k {
	case KindRunning:
		return "Running"
	case KindCycling:
		return "Cycling"
	default:
		return string(k)
	}
}

var months = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

type RunningStats struct {
	CadenceSpm   float64
	PaceMinPerKm float64
}

type CyclingStats struct {
	ElevationGainM float64
	SpeedKmPerH    float64
}

// Workout is a single recorded session. Exactly one of Running or Cycling is
// set, matching Kind. Everything except Clicks is fixed at construction.
type Workout struct {
	ID          string
	CreatedAt   time.Time
	Coords      Coords
	DistanceKm  float64
	DurationMin float64
	Clicks      int
	Kind        Kind
	Description string

	Running *RunningStats
	Cycling *CyclingStats
}

func describe(kind Kind, at time.Time) string {
	return fmt.Sprintf("%s on %s %d", kind.Title(), months[int(at.Month())-1], at.Day())
}

func newWorkout(kind Kind, createdAt time.Time, coords Coords, distanceKm, durationMin float64) *Workout {
	return &Workout{
		ID:          uuid.NewString(),
		CreatedAt:   createdAt,
		Coords:      coords,
		DistanceKm:  distanceKm,
		DurationMin: durationMin,
		Kind:        kind,
		Description: describe(kind, createdAt),
	}
}

func NewRunning(createdAt time.Time, coords Coords, distanceKm, durationMin, cadenceSpm float64) (*Workout, error) {
	if distanceKm <= 0 {
		return nil, &InvalidMetricError{Field: "distance", Value: distanceKm}
	}

	pace := durationMin / distanceKm
	if !finite(pace) {
		return nil, &InvalidMetricError{Field: "pace", Value: pace}
	}

	w := newWorkout(KindRunning, createdAt, coords, distanceKm, durationMin)
	w.Running = &RunningStats{
		CadenceSpm:   cadenceSpm,
		PaceMinPerKm: pace,
	}
	return w, nil
}

func NewCycling(createdAt time.Time, coords Coords, distanceKm, durationMin, elevationGainM float64) (*Workout, error) {
	if distanceKm <= 0 {
		return nil, &InvalidMetricError{Field: "distance", Value: distanceKm}
	}
	if durationMin <= 0 {
		return nil, &InvalidMetricError{Field: "duration", Value: durationMin}
	}

	speed := distanceKm / (durationMin / 60)
	if !finite(speed) {
		return nil, &InvalidMetricError{Field: "speed", Value: speed}
	}

	w := newWorkout(KindCycling, createdAt, coords, distanceKm, durationMin)
	w.Cycling = &CyclingStats{
		ElevationGainM: elevationGainM,
		SpeedKmPerH:    speed,
	}
	return w, nil
}

// Derived metrics must survive JSON encoding.
func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Click counts an interaction with the workout. Nothing calls it yet.
func (w *Workout) Click() {
	w.Clicks++
}

// Validate reports whether the kind-specific half of the union matches Kind.
func (w *Workout) Validate() error {
	if w.ID == "" {
		return errors.New("workout has no id")
	}
	switch w.Kind {
	case KindRunning:
		if w.Running == nil || w.Cycling != nil {
			return fmt.Errorf("workout %s: running stats missing", w.ID)
		}
	case KindCycling:
		if w.Cycling == nil || w.Running != nil {
			return fmt.Errorf("workout %s: cycling stats missing", w.ID)
		}
	default:
		return fmt.Errorf("workout %s: unknown kind %q", w.ID, w.Kind)
	}
	return nil
}
