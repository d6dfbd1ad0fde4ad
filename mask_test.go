// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package s2surface

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// maskTestMesh builds a tetrahedron mesh with two properties:
// value = [0, 1, 2, 3] and flag = [0, 1, 0, NaN].
func maskTestMesh(t *testing.T) *Mesh {
	t.Helper()
	m := mustNewMesh(t)
	if err := m.SetProperty("value", []float64{0, 1, 2, 3}); err != nil {
		t.Fatalf("m.SetProperty(...) error = %v, want nil", err)
	}
	if err := m.SetProperty("flag", []float64{0, 1, 0, math.NaN()}); err != nil {
		t.Fatalf("m.SetProperty(...) error = %v, want nil", err)
	}
	return m
}

func TestMask_Variants(t *testing.T) {
	tests := []struct {
		name string
		mask Mask
		want []int
	}{
		{"indices", Indices(2, 0), []int{0, 2}},
		{"indices empty", Indices(), []int{}},
		{"bools", Bools([]bool{true, false, false, true}), []int{0, 3}},
		{"prop nonzero", Prop("value"), []int{1, 2, 3}},
		{"prop nan excluded", Prop("flag"), []int{1}},
		{"prop eq", PropEq("value", 2), []int{2}},
		{"prop in", PropIn("value", 0, 3, 99), []int{0, 3}},
		{"prop in empty", PropIn("value"), []int{}},
		{"and", And(Prop("value"), Indices(1, 2)), []int{1, 2}},
		{"and empty selects all", And(), []int{0, 1, 2, 3}},
		{"or", Or(Indices(0), PropEq("value", 3)), []int{0, 3}},
		{"or empty selects none", Or(), []int{}},
		{"nested", Or(And(Prop("value"), Bools([]bool{true, true, false, false})), Indices(3)), []int{1, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := maskTestMesh(t)
			got, err := m.Select(tt.mask)
			if err != nil {
				t.Fatalf("m.Select(...) error = %v, want nil", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("m.Select(...) mismatch (-want +got):\n%v", diff)
			}
		})
	}
}

func TestMask_RangeBounds(t *testing.T) {
	// (min, max]: min excluded, max included.
	tests := []struct {
		name     string
		min, max float64
		want     []int
	}{
		{"interior", 0.5, 2.5, []int{1, 2}},
		{"min excluded", 1, 3, []int{2, 3}},
		{"max included", -1, 2, []int{0, 1, 2}},
		{"empty range", 2, 2, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := maskTestMesh(t)
			got, err := m.Select(PropRange("value", tt.min, tt.max))
			if err != nil {
				t.Fatalf("m.Select(...) error = %v, want nil", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("m.Select(PropRange(%v, %v)) mismatch (-want +got):\n%v",
					tt.min, tt.max, diff)
			}
		})
	}
}

func TestMask_Errors(t *testing.T) {
	tests := []struct {
		name string
		mask Mask
		want error
	}{
		{"index out of range", Indices(4), ErrMalformedTopology},
		{"negative index", Indices(-1), ErrMalformedTopology},
		{"bool length mismatch", Bools([]bool{true}), ErrMalformedTopology},
		{"unknown property", Prop("missing"), ErrUnknownProperty},
		{"unknown property in and", And(Prop("missing")), ErrUnknownProperty},
		{"unknown property in or", Or(Indices(0), PropEq("missing", 1)), ErrUnknownProperty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := maskTestMesh(t)
			if _, err := m.Select(tt.mask); !errors.Is(err, tt.want) {
				t.Errorf("m.Select(...) error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMask_SubmeshByRange(t *testing.T) {
	m := maskTestMesh(t)
	sub, err := m.Submesh(PropRange("value", 0, 2))
	if err != nil {
		t.Fatalf("m.Submesh(...) error = %v, want nil", err)
	}
	if diff := cmp.Diff([]int{1, 2}, sub.Tessellation().Labels()); diff != "" {
		t.Errorf("sub labels mismatch (-want +got):\n%v", diff)
	}
}
