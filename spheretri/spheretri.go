// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package spheretri triangulates point clouds on the unit sphere. The convex
// hull of points on a sphere is their Delaunay triangulation, so the face
// lists produced here are well-formed closed surface topologies, suitable as
// input to s2surface.NewTessellation.
package spheretri

import (
	"errors"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/markus-wa/quickhull-go/v2"
)

const defaultEps = 1e-12

// Options holds triangulation options.
type Options struct {
	Eps float64
}

// Option configures Triangulate.
type Option func(*Options) error

// WithEps sets the hull epsilon used for planarity decisions. It must be
// positive.
func WithEps(eps float64) Option {
	return func(o *Options) error {
		if eps <= 0 {
			return errors.New("spheretri: eps must be positive")
		}
		o.Eps = eps
		return nil
	}
}

// Triangulate computes the triangle faces of the convex hull of the given
// points, each face wound counter-clockwise when seen from outside the
// sphere. All points must lie on the sphere and at least 4 are required; the
// resulting face list references the input points by index and covers all of
// them.
func Triangulate(points s2.PointVector, setters ...Option) ([][3]int, error) {
	opts := Options{Eps: defaultEps}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	numVertices := len(points)
	if numVertices < 4 {
		return nil, errors.New("spheretri: insufficient points for triangulation (minimum 4 required)")
	}
	numTriangles := 2 * (numVertices - 2)

	r3vertices := make([]r3.Vector, numVertices)
	for i, p := range points {
		r3vertices[i] = p.Vector
	}
	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(r3vertices, true, true, opts.Eps)
	if len(ch.Indices) != numTriangles*3 {
		return nil, errors.New("spheretri: inconsistent number of indices returned from QuickHull")
	}

	faces := make([][3]int, numTriangles)
	for i := range numTriangles {
		base := i * 3
		faces[i] = [3]int{ch.Indices[base], ch.Indices[base+1], ch.Indices[base+2]}
		orientOutwardCCW(&faces[i], points)
	}
	return faces, nil
}

// orientOutwardCCW flips the face winding if its normal points into the
// sphere.
func orientOutwardCCW(f *[3]int, v s2.PointVector) {
	p0, p1, p2 := v[f[0]], v[f[1]], v[f[2]]
	norm := p1.Sub(p0.Vector).Cross(p2.Sub(p0.Vector))
	if norm.Dot(p0.Vector) < 0 {
		f[1], f[2] = f[2], f[1]
	}
}
