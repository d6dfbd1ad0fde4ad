// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package roitrace

import (
	"errors"
	"math"

	"github.com/golang/geo/r2"

	"github.com/noahbenson/s2surface"
)

// ROI pairs an identifying key with a captured trace. The key is carried for
// the caller's bookkeeping; label ordinals come from slice order, not from
// the key.
type ROI struct {
	Key   string
	Trace *Trace
}

// PathsToLabels merges an ordered set of ROI traces into one integer label
// per vertex of a 2D mesh. ROIs are processed in slice order with 1-based
// ordinals; a vertex keeps the label of the first ROI whose polygon contains
// it, and later ROIs never overwrite it. Vertices exactly on a polygon
// boundary count as contained, so a vertex on two boundaries at once takes
// the earlier ROI's ordinal. Entries whose trace is not finalized and closed,
// or has fewer than three distinct points, are skipped; skipped entries still
// consume their ordinal so labels remain stable under editing.
//
// The result has one entry per vertex with values in [0, len(rois)];
// 0 means unassigned.
func PathsToLabels(mesh *s2surface.Mesh, rois []ROI) ([]int, error) {
	coords, err := mesh.Coordinates2()
	if err != nil {
		return nil, errors.New("roitrace: label merge needs a 2D flatmap mesh")
	}

	labels := make([]int, len(coords))
	for i, roi := range rois {
		poly := roiPolygon(roi.Trace)
		if poly == nil {
			continue
		}
		ordinal := i + 1
		for v, p := range coords {
			if labels[v] == 0 && pointInPolygon(p, poly) {
				labels[v] = ordinal
			}
		}
	}
	return labels, nil
}

// roiPolygon extracts the polygon vertices of a finalized closed trace,
// dropping the terminating duplicate of the first point. It returns nil for
// traces that cannot participate in a merge.
func roiPolygon(t *Trace) []r2.Point {
	if t == nil || t.State() != Finalized || !t.Closed() {
		return nil
	}
	poly := t.Points()
	if len(poly) > 1 && poly[len(poly)-1] == poly[0] {
		poly = poly[:len(poly)-1]
	}
	if len(poly) < 3 {
		return nil
	}
	return poly
}

// pointInPolygon tests containment by even-odd ray casting, with points
// exactly on a polygon edge counting as inside.
func pointInPolygon(p r2.Point, poly []r2.Point) bool {
	n := len(poly)
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[j], poly[i]
		if onSegment(p, a, b) {
			return true
		}
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// onSegment reports whether p lies exactly on the segment a-b.
func onSegment(p, a, b r2.Point) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if cross != 0 {
		return false
	}
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}
