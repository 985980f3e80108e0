// Package geo provides the sources of the user's starting position.
package geo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hperssn/mapty/internal/domain"
)

var ErrDenied = errors.New("position unavailable")

type report struct {
	coords domain.Coords
	err    error
}

// Reported waits for the browser to post its position.
type Reported struct {
	reports chan report
	timeout time.Duration
}

func NewReported(timeout time.Duration) *Reported {
	return &Reported{
		reports: make(chan report, 1),
		timeout: timeout,
	}
}

// Report hands over a position. Only the most recent unread report is kept.
func (r *Reported) Report(c domain.Coords) {
	r.push(report{coords: c})
}

// Fail records that the browser could not or would not give a position.
func (r *Reported) Fail(reason string) {
	r.push(report{err: fmt.Errorf("%w: %s", ErrDenied, reason)})
}

func (r *Reported) push(rep report) {
	for {
		select {
		case r.reports <- rep:
			return
		default:
		}
		select {
		case <-r.reports:
		default:
		}
	}
}

func (r *Reported) CurrentPosition(ctx context.Context) (domain.Coords, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	select {
	case rep := <-r.reports:
		return rep.coords, rep.err
	case <-ctx.Done():
		return domain.Coords{}, fmt.Errorf("%w: %v", ErrDenied, ctx.Err())
	}
}

// Static always answers with a fixed position.
type Static struct {
	Coords domain.Coords
}

func (s Static) CurrentPosition(context.Context) (domain.Coords, error) {
	return s.Coords, nil
}
