// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package s2flatmap

import (
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Params is the JSON-serializable form of a Projection, recorded alongside
// ROI traces so a trace can be replotted against the same flatmap later.
type Params struct {
	Center [3]float64 `json:"center"`
	XAxis  [3]float64 `json:"xaxis"`
	Kind   string     `json:"kind"`
	Radius float64    `json:"radius"` // radians
}

// Params returns the serializable parameters of the projection. The center
// and reference direction are the orthonormalized frame vectors, so
// FromParams(p.Params()) reproduces the projection exactly.
func (p *Projection) Params() Params {
	return Params{
		Center: [3]float64{p.ex.X, p.ex.Y, p.ex.Z},
		XAxis:  [3]float64{p.ey.X, p.ey.Y, p.ey.Z},
		Kind:   p.kind.String(),
		Radius: p.radius.Radians(),
	}
}

// FromParams reconstructs a Projection from its serialized parameters.
func FromParams(ps Params) (*Projection, error) {
	kind, err := KindFromString(ps.Kind)
	if err != nil {
		return nil, err
	}
	center := s2.Point{Vector: r3.Vector{X: ps.Center[0], Y: ps.Center[1], Z: ps.Center[2]}}
	xaxis := s2.Point{Vector: r3.Vector{X: ps.XAxis[0], Y: ps.XAxis[1], Z: ps.XAxis[2]}}
	return NewProjection(center, xaxis, kind, s1.Angle(ps.Radius))
}
