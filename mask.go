// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package s2surface

import (
	"fmt"
	"math"
)

// Mask selects a vertex subset of a mesh. It is a closed set of variants, one
// per supported selection form: explicit indices, a boolean array, a property
// (nonzero test), a property compared to a value, a half-open value range, a
// value set, and boolean combinations. A nil Mask selects every vertex.
//
// Property-based masks treat NaN values as unselected.
type Mask interface {
	eval(m *Mesh) ([]bool, error)
}

// Indices selects the vertices with the given local indices.
func Indices(indices ...int) Mask {
	return indexMask(indices)
}

// Bools selects vertices by a per-vertex boolean array, which must have one
// entry per vertex.
func Bools(selected []bool) Mask {
	return boolMask(selected)
}

// Prop selects the vertices whose named property value is nonzero.
func Prop(name string) Mask {
	return propMask(name)
}

// PropEq selects the vertices whose named property value equals value.
func PropEq(name string, value float64) Mask {
	return propEqMask{name: name, value: value}
}

// PropRange selects the vertices whose named property value lies in
// (min, max]: the lower bound is excluded, the upper bound included.
func PropRange(name string, min, max float64) Mask {
	return propRangeMask{name: name, min: min, max: max}
}

// PropIn selects the vertices whose named property value equals one of the
// given values.
func PropIn(name string, values ...float64) Mask {
	return propInMask{name: name, values: values}
}

// And selects the vertices selected by every given mask. And with no
// arguments selects every vertex.
func And(masks ...Mask) Mask {
	return andMask(masks)
}

// Or selects the vertices selected by at least one of the given masks. Or
// with no arguments selects no vertex.
func Or(masks ...Mask) Mask {
	return orMask(masks)
}

// evalMask is the single dispatch point for mask evaluation. A nil mask
// yields an all-true selection.
func evalMask(m *Mesh, mask Mask) ([]bool, error) {
	if mask == nil {
		sel := make([]bool, m.NumVertices())
		for v := range sel {
			sel[v] = true
		}
		return sel, nil
	}
	return mask.eval(m)
}

type indexMask []int

func (k indexMask) eval(m *Mesh) ([]bool, error) {
	sel := make([]bool, m.NumVertices())
	for _, v := range k {
		if v < 0 || v >= len(sel) {
			return nil, fmt.Errorf("%w: mask index %d out of range [0 %d)",
				ErrMalformedTopology, v, len(sel))
		}
		sel[v] = true
	}
	return sel, nil
}

type boolMask []bool

func (k boolMask) eval(m *Mesh) ([]bool, error) {
	if len(k) != m.NumVertices() {
		return nil, fmt.Errorf("%w: boolean mask has %d entries for %d vertices",
			ErrMalformedTopology, len(k), m.NumVertices())
	}
	sel := make([]bool, len(k))
	copy(sel, k)
	return sel, nil
}

type propMask string

func (k propMask) eval(m *Mesh) ([]bool, error) {
	return evalProp(m, string(k), func(x float64) bool {
		return x != 0
	})
}

type propEqMask struct {
	name  string
	value float64
}

func (k propEqMask) eval(m *Mesh) ([]bool, error) {
	return evalProp(m, k.name, func(x float64) bool {
		return x == k.value
	})
}

type propRangeMask struct {
	name     string
	min, max float64
}

func (k propRangeMask) eval(m *Mesh) ([]bool, error) {
	return evalProp(m, k.name, func(x float64) bool {
		return k.min < x && x <= k.max
	})
}

type propInMask struct {
	name   string
	values []float64
}

func (k propInMask) eval(m *Mesh) ([]bool, error) {
	return evalProp(m, k.name, func(x float64) bool {
		for _, v := range k.values {
			if x == v {
				return true
			}
		}
		return false
	})
}

type andMask []Mask

func (k andMask) eval(m *Mesh) ([]bool, error) {
	sel := make([]bool, m.NumVertices())
	for v := range sel {
		sel[v] = true
	}
	for _, sub := range k {
		s, err := evalMask(m, sub)
		if err != nil {
			return nil, err
		}
		for v := range sel {
			sel[v] = sel[v] && s[v]
		}
	}
	return sel, nil
}

type orMask []Mask

func (k orMask) eval(m *Mesh) ([]bool, error) {
	sel := make([]bool, m.NumVertices())
	for _, sub := range k {
		s, err := evalMask(m, sub)
		if err != nil {
			return nil, err
		}
		for v := range sel {
			sel[v] = sel[v] || s[v]
		}
	}
	return sel, nil
}

func evalProp(m *Mesh, name string, keep func(float64) bool) ([]bool, error) {
	values, err := m.Property(name)
	if err != nil {
		return nil, err
	}
	sel := make([]bool, len(values))
	for v, x := range values {
		sel[v] = !math.IsNaN(x) && keep(x)
	}
	return sel, nil
}
