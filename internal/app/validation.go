package app

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hperssn/mapty/internal/domain"
)

var ErrInvalidInput = errors.New("invalid workout input")

// InvalidInputError lists the form fields that failed validation.
type InvalidInputError struct {
	Fields []string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", strings.Join(e.Fields, ", "))
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// FormInput carries the raw values of the workout form.
type FormInput struct {
	Type      string `json:"type"`
	Distance  string `json:"distance"`
	Duration  string `json:"duration"`
	Cadence   string `json:"cadence"`
	Elevation string `json:"elevation"`
}

type workoutInput struct {
	kind      domain.Kind
	distance  float64
	duration  float64
	cadence   float64
	elevation float64
}

// toNumber coerces a form value the way a numeric input does: blank is zero,
// anything unparsable is NaN.
func toNumber(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// validate checks the form. All of distance, duration and cadence must be
// finite and positive for running. Cycling elevation only has to be finite.
func (in FormInput) validate() (workoutInput, error) {
	kind, ok := domain.ParseKind(in.Type)
	if !ok {
		return workoutInput{}, &InvalidInputError{Fields: []string{"type"}}
	}

	parsed := workoutInput{
		kind:     kind,
		distance: toNumber(in.Distance),
		duration: toNumber(in.Duration),
	}

	var bad []string
	positive := func(name string, v float64) {
		if !finite(v) || v <= 0 {
			bad = append(bad, name)
		}
	}

	positive("distance", parsed.distance)
	positive("duration", parsed.duration)

	switch kind {
	case domain.KindRunning:
		parsed.cadence = toNumber(in.Cadence)
		positive("cadence", parsed.cadence)
	case domain.KindCycling:
		parsed.elevation = toNumber(in.Elevation)
		if !finite(parsed.elevation) {
			bad = append(bad, "elevation")
		}
	}

	if len(bad) > 0 {
		return workoutInput{}, &InvalidInputError{Fields: bad}
	}
	return parsed, nil
}
