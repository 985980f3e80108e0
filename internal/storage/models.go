package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hperssn/mapty/internal/domain"
)

// WorkoutRecord is the flat persisted form of a workout. Derived fields are
// stored so that decoding never reruns domain logic.
type WorkoutRecord struct {
	ID          string     `json:"id"`
	Date        time.Time  `json:"date"`
	Coords      [2]float64 `json:"coords"`
	Distance    float64    `json:"distance"`
	Duration    float64    `json:"duration"`
	Clicks      int        `json:"clicks"`
	Type        string     `json:"type"`
	Description string     `json:"description"`

	Cadence       *float64 `json:"cadence,omitempty"`
	Pace          *float64 `json:"pace,omitempty"`
	ElevationGain *float64 `json:"elevationGain,omitempty"`
	Speed         *float64 `json:"speed,omitempty"`
}

// FromDomainWorkout converts a domain.Workout to a WorkoutRecord
func FromDomainWorkout(w *domain.Workout) WorkoutRecord {
	rec := WorkoutRecord{
		ID:          w.ID,
		Date:        w.CreatedAt,
		Coords:      [2]float64{w.Coords.Lat, w.Coords.Lng},
		Distance:    w.DistanceKm,
		Duration:    w.DurationMin,
		Clicks:      w.Clicks,
		Type:        string(w.Kind),
		Description: w.Description,
	}

	switch w.Kind {
	case domain.KindRunning:
		if w.Running != nil {
			cadence, pace := w.Running.CadenceSpm, w.Running.PaceMinPerKm
			rec.Cadence, rec.Pace = &cadence, &pace
		}
	case domain.KindCycling:
		if w.Cycling != nil {
			elevation, speed := w.Cycling.ElevationGainM, w.Cycling.SpeedKmPerH
			rec.ElevationGain, rec.Speed = &elevation, &speed
		}
	}

	return rec
}

// ToDomain copies the record back into a workout.
func (r WorkoutRecord) ToDomain() (*domain.Workout, error) {
	kind, ok := domain.ParseKind(r.Type)
	if !ok {
		return nil, fmt.Errorf("record %s: unknown type %q", r.ID, r.Type)
	}

	w := &domain.Workout{
		ID:          r.ID,
		CreatedAt:   r.Date,
		Coords:      domain.Coords{Lat: r.Coords[0], Lng: r.Coords[1]},
		DistanceKm:  r.Distance,
		DurationMin: r.Duration,
		Clicks:      r.Clicks,
		Kind:        kind,
		Description: r.Description,
	}

	switch kind {
	case domain.KindRunning:
		if r.Cadence == nil || r.Pace == nil {
			return nil, fmt.Errorf("record %s: running record missing cadence or pace", r.ID)
		}
		w.Running = &domain.RunningStats{CadenceSpm: *r.Cadence, PaceMinPerKm: *r.Pace}
	case domain.KindCycling:
		if r.ElevationGain == nil || r.Speed == nil {
			return nil, fmt.Errorf("record %s: cycling record missing elevation or speed", r.ID)
		}
		w.Cycling = &domain.CyclingStats{ElevationGainM: *r.ElevationGain, SpeedKmPerH: *r.Speed}
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// EncodeWorkouts serializes workouts as a JSON array in the given order.
func EncodeWorkouts(workouts []*domain.Workout) (string, error) {
	records := make([]WorkoutRecord, len(workouts))
	for i, w := range workouts {
		records[i] = FromDomainWorkout(w)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeWorkouts parses a snapshot produced by EncodeWorkouts. Any bad record
// fails the whole snapshot.
func DecodeWorkouts(serialized string) ([]*domain.Workout, error) {
	var records []WorkoutRecord
	if err := json.Unmarshal([]byte(serialized), &records); err != nil {
		return nil, err
	}

	workouts := make([]*domain.Workout, 0, len(records))
	for _, rec := range records {
		w, err := rec.ToDomain()
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, nil
}
