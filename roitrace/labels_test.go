// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package roitrace

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"

	"github.com/noahbenson/s2surface"
)

// stripMesh builds a 2D triangle strip over six nearly collinear vertices at
// x = 0..5, the odd ones nudged upward.
func stripMesh(t *testing.T) *s2surface.Mesh {
	t.Helper()
	faces := [][3]int{{0, 1, 2}, {1, 3, 2}, {2, 3, 4}, {3, 5, 4}}
	coords := []r2.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0.2}, {X: 2, Y: 0},
		{X: 3, Y: 0.2}, {X: 4, Y: 0}, {X: 5, Y: 0.2},
	}
	tess, err := s2surface.NewTessellation(faces)
	if err != nil {
		t.Fatalf("NewTessellation(...) error = %v, want nil", err)
	}
	m, err := s2surface.NewMesh2D(tess, coords)
	if err != nil {
		t.Fatalf("NewMesh2D(...) error = %v, want nil", err)
	}
	return m
}

// closedRect traces and finalizes an axis-aligned rectangle.
func closedRect(t *testing.T, x0, y0, x1, y1 float64) *Trace {
	t.Helper()
	tr := NewTrace()
	for _, p := range []r2.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}} {
		if err := tr.AddPoint(p); err != nil {
			t.Fatalf("tr.AddPoint(%v) error = %v, want nil", p, err)
		}
	}
	if err := tr.Finalize(true); err != nil {
		t.Fatalf("tr.Finalize(true) error = %v, want nil", err)
	}
	return tr
}

func TestPathsToLabels_FirstWriterWins(t *testing.T) {
	m := stripMesh(t)

	// A covers vertices 1 2 3, B covers 3 4 5; their overlap holds vertex 3.
	a := closedRect(t, 0.5, -1, 3.5, 1)
	b := closedRect(t, 2.5, -1, 5.5, 1)

	labels, err := PathsToLabels(m, []ROI{{Key: "A", Trace: a}, {Key: "B", Trace: b}})
	if err != nil {
		t.Fatalf("PathsToLabels(...) error = %v, want nil", err)
	}
	if diff := cmp.Diff([]int{0, 1, 1, 1, 2, 2}, labels); diff != "" {
		t.Errorf("PathsToLabels([A B]) mismatch (-want +got):\n%v", diff)
	}

	// Reversing the order flips the overlap vertex to the other ROI.
	labels, err = PathsToLabels(m, []ROI{{Key: "B", Trace: b}, {Key: "A", Trace: a}})
	if err != nil {
		t.Fatalf("PathsToLabels(...) error = %v, want nil", err)
	}
	if diff := cmp.Diff([]int{0, 2, 2, 1, 1, 1}, labels); diff != "" {
		t.Errorf("PathsToLabels([B A]) mismatch (-want +got):\n%v", diff)
	}
}

func TestPathsToLabels_BoundaryVertexIncluded(t *testing.T) {
	m := stripMesh(t)

	// The rectangle's top edge passes exactly through vertex 2 at (2 0).
	tr := closedRect(t, 1.5, -1, 2.5, 0)
	labels, err := PathsToLabels(m, []ROI{{Key: "edge", Trace: tr}})
	if err != nil {
		t.Fatalf("PathsToLabels(...) error = %v, want nil", err)
	}
	if diff := cmp.Diff([]int{0, 0, 1, 0, 0, 0}, labels); diff != "" {
		t.Errorf("PathsToLabels(...) mismatch (-want +got):\n%v", diff)
	}
}

func TestPathsToLabels_SkipsUnusableTraces(t *testing.T) {
	m := stripMesh(t)

	open := NewTrace()
	if err := open.AddPoint(r2.Point{X: 0.5, Y: -1}); err != nil {
		t.Fatalf("open.AddPoint(...) error = %v, want nil", err)
	}

	polyline := NewTrace()
	for _, p := range []r2.Point{{X: 0, Y: -1}, {X: 5, Y: -1}, {X: 5, Y: 1}} {
		if err := polyline.AddPoint(p); err != nil {
			t.Fatalf("polyline.AddPoint(...) error = %v, want nil", err)
		}
	}
	if err := polyline.Finalize(false); err != nil {
		t.Fatalf("polyline.Finalize(false) error = %v, want nil", err)
	}

	b := closedRect(t, 2.5, -1, 5.5, 1)
	rois := []ROI{
		{Key: "still-capturing", Trace: open},
		{Key: "not-closed", Trace: polyline},
		{Key: "nil-trace", Trace: nil},
		{Key: "B", Trace: b},
	}
	labels, err := PathsToLabels(m, rois)
	if err != nil {
		t.Fatalf("PathsToLabels(...) error = %v, want nil", err)
	}
	// Skipped entries still consume their ordinals: B labels with 4.
	if diff := cmp.Diff([]int{0, 0, 0, 4, 4, 4}, labels); diff != "" {
		t.Errorf("PathsToLabels(...) mismatch (-want +got):\n%v", diff)
	}
}

func TestPathsToLabels_NoROIs(t *testing.T) {
	m := stripMesh(t)
	labels, err := PathsToLabels(m, nil)
	if err != nil {
		t.Fatalf("PathsToLabels(...) error = %v, want nil", err)
	}
	if diff := cmp.Diff(make([]int, 6), labels); diff != "" {
		t.Errorf("PathsToLabels(...) mismatch (-want +got):\n%v", diff)
	}
}

func TestPathsToLabels_Needs2DMesh(t *testing.T) {
	tess, err := s2surface.NewTessellation([][3]int{{0, 1, 2}})
	if err != nil {
		t.Fatalf("NewTessellation(...) error = %v, want nil", err)
	}
	m, err := s2surface.NewMesh(tess, []r3.Vector{{X: 1}, {Y: 1}, {Z: 1}})
	if err != nil {
		t.Fatalf("NewMesh(...) error = %v, want nil", err)
	}
	if _, err := PathsToLabels(m, nil); err == nil {
		t.Errorf("PathsToLabels(3D mesh) error = nil, want non-nil")
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []r2.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	tests := []struct {
		name string
		p    r2.Point
		want bool
	}{
		{"interior", r2.Point{X: 1, Y: 1}, true},
		{"outside", r2.Point{X: 3, Y: 1}, false},
		{"on edge", r2.Point{X: 2, Y: 1}, true},
		{"on corner", r2.Point{X: 0, Y: 0}, true},
		{"outside above", r2.Point{X: 1, Y: 2.1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pointInPolygon(tt.p, square); got != tt.want {
				t.Errorf("pointInPolygon(%v, square) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}
