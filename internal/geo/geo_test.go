package geo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hperssn/mapty/internal/domain"
)

func TestReported_DeliversPosition(t *testing.T) {
	r := NewReported(time.Second)
	want := domain.Coords{Lat: 48.85, Lng: 2.35}

	go r.Report(want)

	got, err := r.CurrentPosition(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestReported_KeepsLatestReport(t *testing.T) {
	r := NewReported(time.Second)
	r.Report(domain.Coords{Lat: 1})
	r.Report(domain.Coords{Lat: 2})

	got, err := r.CurrentPosition(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Lat != 2 {
		t.Fatalf("expected latest report, got %v", got)
	}
}

func TestReported_Failure(t *testing.T) {
	r := NewReported(time.Second)
	r.Fail("User denied Geolocation")

	_, err := r.CurrentPosition(context.Background())
	if !errors.Is(err, ErrDenied) {
		t.Fatalf("expected ErrDenied, got %v", err)
	}
}

func TestReported_Timeout(t *testing.T) {
	r := NewReported(10 * time.Millisecond)

	_, err := r.CurrentPosition(context.Background())
	if !errors.Is(err, ErrDenied) {
		t.Fatalf("expected ErrDenied on timeout, got %v", err)
	}
}

func TestStatic(t *testing.T) {
	s := Static{Coords: domain.Coords{Lat: -33.86, Lng: 151.2}}
	got, err := s.CurrentPosition(context.Background())
	if err != nil || got != s.Coords {
		t.Fatalf("got %v, %v", got, err)
	}
}
