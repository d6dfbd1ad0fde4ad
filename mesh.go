// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package s2surface

import (
	"fmt"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Mesh attaches a concrete coordinate embedding (2D or 3D) and named
// per-vertex properties to a shared Tessellation. The topology is referenced,
// never copied: several meshes of the same surface (white, pial, inflated,
// flatmap) share one Tessellation. Properties are mesh-local; setting one
// here is never visible on a sibling mesh.
type Mesh struct {
	tess    *Tessellation
	dim     int
	coords3 []r3.Vector
	coords2 []r2.Point
	props   map[string][]float64
}

// NewMesh attaches 3D coordinates to a tessellation. The coordinate count
// must equal the tessellation's vertex count.
func NewMesh(tess *Tessellation, coords []r3.Vector) (*Mesh, error) {
	if len(coords) != tess.NumVertices() {
		return nil, fmt.Errorf("%w: %d coordinates for %d vertices",
			ErrMalformedTopology, len(coords), tess.NumVertices())
	}
	return &Mesh{
		tess:    tess,
		dim:     3,
		coords3: coords,
		props:   make(map[string][]float64),
	}, nil
}

// NewMesh2D attaches 2D coordinates to a tessellation, as produced by a
// flatmap projection.
func NewMesh2D(tess *Tessellation, coords []r2.Point) (*Mesh, error) {
	if len(coords) != tess.NumVertices() {
		return nil, fmt.Errorf("%w: %d coordinates for %d vertices",
			ErrMalformedTopology, len(coords), tess.NumVertices())
	}
	return &Mesh{
		tess:    tess,
		dim:     2,
		coords2: coords,
		props:   make(map[string][]float64),
	}, nil
}

// Tessellation returns the shared topology.
func (m *Mesh) Tessellation() *Tessellation {
	return m.tess
}

// Dim returns the coordinate dimensionality, 2 or 3.
func (m *Mesh) Dim() int {
	return m.dim
}

// NumVertices returns the number of vertices.
func (m *Mesh) NumVertices() int {
	return m.tess.NumVertices()
}

// Coordinates3 returns the 3D coordinate array of a 3D mesh.
func (m *Mesh) Coordinates3() ([]r3.Vector, error) {
	if m.dim != 3 {
		return nil, fmt.Errorf("s2surface: Coordinates3 on a %dD mesh", m.dim)
	}
	return m.coords3, nil
}

// Coordinates2 returns the 2D coordinate array of a 2D mesh.
func (m *Mesh) Coordinates2() ([]r2.Point, error) {
	if m.dim != 2 {
		return nil, fmt.Errorf("s2surface: Coordinates2 on a %dD mesh", m.dim)
	}
	return m.coords2, nil
}

// X returns the x coordinate of vertex v.
func (m *Mesh) X(v int) float64 {
	if m.dim == 2 {
		return m.coords2[v].X
	}
	return m.coords3[v].X
}

// Y returns the y coordinate of vertex v.
func (m *Mesh) Y(v int) float64 {
	if m.dim == 2 {
		return m.coords2[v].Y
	}
	return m.coords3[v].Y
}

// Z returns the z coordinate of vertex v of a 3D mesh.
func (m *Mesh) Z(v int) (float64, error) {
	if m.dim != 3 {
		return 0, fmt.Errorf("s2surface: Z on a %dD mesh", m.dim)
	}
	return m.coords3[v].Z, nil
}

// SetProperty attaches a named per-vertex value array to this mesh. The array
// must have one value per vertex, aligned to local vertex order.
func (m *Mesh) SetProperty(name string, values []float64) error {
	if len(values) != m.tess.NumVertices() {
		return fmt.Errorf("%w: property %q has %d values for %d vertices",
			ErrMalformedTopology, name, len(values), m.tess.NumVertices())
	}
	m.props[name] = values
	return nil
}

// Property returns the named per-vertex value array, or ErrUnknownProperty if
// it has not been attached.
func (m *Mesh) Property(name string) ([]float64, error) {
	values, ok := m.props[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	return values, nil
}

// HasProperty reports whether the named property is attached.
func (m *Mesh) HasProperty(name string) bool {
	_, ok := m.props[name]
	return ok
}

// PropertyNames returns the attached property names in sorted order.
func (m *Mesh) PropertyNames() []string {
	names := make([]string, 0, len(m.props))
	for name := range m.props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RemoveProperty detaches the named property. Removing an absent property is
// a no-op.
func (m *Mesh) RemoveProperty(name string) {
	delete(m.props, name)
}

// Select evaluates a mask against this mesh and returns the ascending local
// indices of the selected vertices. A nil mask selects every vertex.
func (m *Mesh) Select(mask Mask) ([]int, error) {
	sel, err := evalMask(m, mask)
	if err != nil {
		return nil, err
	}
	indices := make([]int, 0, len(sel))
	for v, in := range sel {
		if in {
			indices = append(indices, v)
		}
	}
	return indices, nil
}

// Submesh restricts the mesh to the vertices selected by the mask: the
// tessellation is restricted per Tessellation.Restrict and the coordinates
// and all properties are carried forward for the included vertices.
func (m *Mesh) Submesh(mask Mask) (*Mesh, error) {
	indices, err := m.Select(mask)
	if err != nil {
		return nil, err
	}
	tess, err := m.tess.Restrict(indices)
	if err != nil {
		return nil, err
	}

	var sub *Mesh
	if m.dim == 3 {
		coords := make([]r3.Vector, len(indices))
		for i, v := range indices {
			coords[i] = m.coords3[v]
		}
		sub, err = NewMesh(tess, coords)
	} else {
		coords := make([]r2.Point, len(indices))
		for i, v := range indices {
			coords[i] = m.coords2[v]
		}
		sub, err = NewMesh2D(tess, coords)
	}
	if err != nil {
		return nil, err
	}

	for name, values := range m.props {
		kept := make([]float64, len(indices))
		for i, v := range indices {
			kept[i] = values[v]
		}
		sub.props[name] = kept
	}
	return sub, nil
}
