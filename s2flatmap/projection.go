// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package s2flatmap projects a neighborhood of a spherical surface mesh onto
// the plane, producing the 2D flatmap meshes used for ROI tracing. A
// projection is defined by a center point on the sphere, a reference
// direction fixing the 2D x-axis, a projection kind, and an angular radius
// bounding the projected neighborhood.
package s2flatmap

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/noahbenson/s2surface"
)

// ErrDegenerateProjection reports projection parameters or points for which
// the projection is undefined: a radius outside (0, π), a reference direction
// parallel to the center, a zero coordinate vector, the antipode of the
// center under an orthographic or mercator projection, or a mercator pole.
var ErrDegenerateProjection = errors.New("s2flatmap: degenerate projection")

const parallelEps = 1e-12

// Kind enumerates the supported 3D-sphere-to-2D-plane mapping formulas.
type Kind int

const (
	// Orthographic drops the axial component after rotating the center to
	// the viewing axis: the flatmap is the straight-on view of the sphere.
	Orthographic Kind = iota
	// Equirectangular maps longitude and latitude linearly to x and y.
	Equirectangular
	// Mercator is the standard conformal cylindrical mapping.
	Mercator
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Orthographic:
		return "orthographic"
	case Equirectangular:
		return "equirectangular"
	case Mercator:
		return "mercator"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindFromString parses a kind name as produced by String.
func KindFromString(s string) (Kind, error) {
	switch s {
	case "orthographic":
		return Orthographic, nil
	case "equirectangular":
		return Equirectangular, nil
	case "mercator":
		return Mercator, nil
	}
	return 0, fmt.Errorf("%w: unknown projection kind %q", ErrDegenerateProjection, s)
}

// Projection maps points within an angular radius of a center on the unit
// sphere to the plane. The center projects to the origin for the
// orthographic and equirectangular kinds, and the reference direction points
// along the positive 2D x-axis.
type Projection struct {
	kind   Kind
	radius s1.Angle

	// Orthonormal frame: ex is the center, ey the in-plane x direction,
	// ez = ex × ey the in-plane y direction.
	ex, ey, ez r3.Vector
}

// NewProjection validates the parameters and builds a projection. The center
// and reference direction must be non-parallel, and the radius must lie in
// (0, π).
func NewProjection(center, xaxis s2.Point, kind Kind, radius s1.Angle) (*Projection, error) {
	if kind < Orthographic || kind > Mercator {
		return nil, fmt.Errorf("%w: unknown projection kind %d", ErrDegenerateProjection, kind)
	}
	if radius <= 0 || radius.Radians() >= math.Pi {
		return nil, fmt.Errorf("%w: angular radius %v outside (0 π)",
			ErrDegenerateProjection, radius)
	}
	if center.Norm() == 0 {
		return nil, fmt.Errorf("%w: zero center vector", ErrDegenerateProjection)
	}
	ex := center.Normalize()

	// Gram-Schmidt: remove the component of xaxis along the center.
	ey := xaxis.Sub(ex.Mul(xaxis.Dot(ex)))
	if ey.Norm() <= parallelEps {
		return nil, fmt.Errorf("%w: reference direction parallel to center",
			ErrDegenerateProjection)
	}
	ey = ey.Normalize()

	return &Projection{
		kind:   kind,
		radius: radius,
		ex:     ex,
		ey:     ey,
		ez:     ex.Cross(ey),
	}, nil
}

// Center returns the projection center as a unit vector.
func (p *Projection) Center() s2.Point {
	return s2.Point{Vector: p.ex}
}

// XAxis returns the orthonormalized reference direction.
func (p *Projection) XAxis() s2.Point {
	return s2.Point{Vector: p.ey}
}

// Kind returns the projection kind.
func (p *Projection) Kind() Kind {
	return p.kind
}

// Radius returns the angular radius.
func (p *Projection) Radius() s1.Angle {
	return p.radius
}

// ProjectPoint maps a single point to the plane. The point need not lie
// within the angular radius, but the projection must be defined for it: the
// antipode of the center is rejected for the orthographic and mercator kinds,
// and the rotated poles are rejected for mercator.
func (p *Projection) ProjectPoint(pt s2.Point) (r2.Point, error) {
	if pt.Norm() == 0 {
		return r2.Point{}, fmt.Errorf("%w: zero coordinate vector", ErrDegenerateProjection)
	}
	return p.projectUnit(pt.Normalize())
}

// projectUnit maps a unit vector to the plane.
func (p *Projection) projectUnit(u r3.Vector) (r2.Point, error) {
	a := u.Dot(p.ex)
	b := u.Dot(p.ey)
	c := u.Dot(p.ez)

	if p.kind != Equirectangular && a <= -1+parallelEps {
		return r2.Point{}, fmt.Errorf("%w: point at the antipode of the center",
			ErrDegenerateProjection)
	}

	switch p.kind {
	case Orthographic:
		return r2.Point{X: b, Y: c}, nil
	case Equirectangular:
		lon := math.Atan2(b, a)
		lat := math.Asin(clamp1(c))
		return r2.Point{X: lon, Y: lat}, nil
	default: // Mercator
		lat := math.Asin(clamp1(c))
		if math.Pi/2-math.Abs(lat) <= parallelEps {
			return r2.Point{}, fmt.Errorf("%w: mercator projection undefined at the pole",
				ErrDegenerateProjection)
		}
		lon := math.Atan2(b, a)
		return r2.Point{X: lon, Y: math.Log(math.Tan(math.Pi/4 + lat/2))}, nil
	}
}

// Project builds the flatmap of a 3D mesh: it selects the vertices within
// the angular radius of the center (coordinates are normalized to the unit
// sphere first), restricts the tessellation to that subset, and attaches the
// projected 2D coordinates. All source properties are carried forward for
// the included vertices, and the restricted tessellation's labels identify
// each flatmap vertex in the source mesh.
func (p *Projection) Project(src *s2surface.Mesh) (*s2surface.Mesh, error) {
	coords, err := src.Coordinates3()
	if err != nil {
		return nil, fmt.Errorf("%w: flatmap projection needs a 3D source mesh",
			ErrDegenerateProjection)
	}

	var selected []int
	for v, vec := range coords {
		if vec.Norm() == 0 {
			return nil, fmt.Errorf("%w: vertex %d has a zero coordinate vector",
				ErrDegenerateProjection, v)
		}
		if p.ex.Angle(vec) <= p.radius {
			selected = append(selected, v)
		}
	}

	tess, err := src.Tessellation().Restrict(selected)
	if err != nil {
		return nil, err
	}

	flat := make([]r2.Point, len(selected))
	for i, v := range selected {
		pt, err := p.projectUnit(coords[v].Normalize())
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", v, err)
		}
		flat[i] = pt
	}

	dst, err := s2surface.NewMesh2D(tess, flat)
	if err != nil {
		return nil, err
	}
	for _, name := range src.PropertyNames() {
		values, err := src.Property(name)
		if err != nil {
			return nil, err
		}
		kept := make([]float64, len(selected))
		for i, v := range selected {
			kept[i] = values[v]
		}
		if err := dst.SetProperty(name, kept); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func clamp1(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
