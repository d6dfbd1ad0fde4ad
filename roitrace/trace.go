// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package roitrace captures region-of-interest polyline traces on a flatmap
// mesh and merges an ordered set of them into a per-vertex integer label
// array. Trace capture is modeled as an explicit state machine advanced by
// discrete events (one per UI click), so it stays host-toolkit-agnostic.
package roitrace

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/noahbenson/s2surface/s2flatmap"
)

// ErrTraceFinalized reports a mutation attempted on a finalized trace. The
// caller must start a new trace; the finalized one is immutable.
var ErrTraceFinalized = errors.New("roitrace: trace already finalized")

// State is the capture state of a Trace.
type State int

const (
	// Empty is the initial state: no points captured yet.
	Empty State = iota
	// Open is the mutable capture state: points may be appended or the last
	// point removed.
	Open
	// Finalized is terminal: the point sequence is locked.
	Finalized
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Open:
		return "open"
	case Finalized:
		return "finalized"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Trace is an ordered sequence of 2D points captured against a flatmap,
// insertion order being click order. It starts Empty, moves to Open on the
// first point, and locks on Finalize. A trace is not safe for concurrent
// mutation; each capture event must complete before the next is applied.
type Trace struct {
	points []r2.Point
	closed bool
	state  State
}

// NewTrace returns an empty trace.
func NewTrace() *Trace {
	return &Trace{state: Empty}
}

// State returns the capture state.
func (t *Trace) State() State {
	return t.state
}

// Len returns the number of captured points.
func (t *Trace) Len() int {
	return len(t.points)
}

// Closed reports whether the trace was finalized as a closed polyline.
func (t *Trace) Closed() bool {
	return t.closed
}

// Points returns a copy of the point sequence.
func (t *Trace) Points() []r2.Point {
	points := make([]r2.Point, len(t.points))
	copy(points, t.points)
	return points
}

// AddPoint appends a point: Empty moves to Open, Open stays Open. Adding to
// a finalized trace fails with ErrTraceFinalized.
func (t *Trace) AddPoint(p r2.Point) error {
	if t.state == Finalized {
		return fmt.Errorf("%w: cannot add a point", ErrTraceFinalized)
	}
	t.points = append(t.points, p)
	t.state = Open
	return nil
}

// UndoPoint removes and returns the most recently added point. Undoing the
// only point returns the trace to Empty. Undoing an empty or finalized trace
// is an error.
func (t *Trace) UndoPoint() (r2.Point, error) {
	switch t.state {
	case Finalized:
		return r2.Point{}, fmt.Errorf("%w: cannot undo a point", ErrTraceFinalized)
	case Empty:
		return r2.Point{}, errors.New("roitrace: no points to undo")
	}
	last := t.points[len(t.points)-1]
	t.points = t.points[:len(t.points)-1]
	if len(t.points) == 0 {
		t.state = Empty
	}
	return last, nil
}

// Finalize locks the point sequence. When closed is true a terminating copy
// of the first point is appended first, so the stored polyline explicitly
// returns to its start. Finalizing an empty trace is an error; finalizing
// twice fails with ErrTraceFinalized.
func (t *Trace) Finalize(closed bool) error {
	switch t.state {
	case Finalized:
		return fmt.Errorf("%w: cannot finalize again", ErrTraceFinalized)
	case Empty:
		return errors.New("roitrace: cannot finalize an empty trace")
	}
	if closed {
		t.points = append(t.points, t.points[0])
	}
	t.closed = closed
	t.state = Finalized
	return nil
}

// Record is the serializable form of a finalized trace together with the
// parameters of the flatmap projection it was captured against, so the trace
// can be rebuilt and replotted on the same flatmap later.
type Record struct {
	Points     [][2]float64     `json:"points"`
	Closed     bool             `json:"closed"`
	Projection s2flatmap.Params `json:"projection"`
}

// Record returns the serializable record of a finalized trace. Recording a
// trace that is still being captured is an error.
func (t *Trace) Record(projection s2flatmap.Params) (Record, error) {
	if t.state != Finalized {
		return Record{}, fmt.Errorf("roitrace: cannot record a trace in state %s", t.state)
	}
	points := make([][2]float64, len(t.points))
	for i, p := range t.points {
		points[i] = [2]float64{p.X, p.Y}
	}
	return Record{Points: points, Closed: t.closed, Projection: projection}, nil
}

// FromRecord rebuilds the finalized trace described by a record.
func FromRecord(rec Record) (*Trace, error) {
	if len(rec.Points) == 0 {
		return nil, errors.New("roitrace: record has no points")
	}
	points := make([]r2.Point, len(rec.Points))
	for i, p := range rec.Points {
		points[i] = r2.Point{X: p[0], Y: p[1]}
	}
	return &Trace{points: points, closed: rec.Closed, state: Finalized}, nil
}
