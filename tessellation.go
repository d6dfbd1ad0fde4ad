// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package s2surface implements triangulated surface meshes: an immutable
// Tessellation (faces, edges, ordered vertex neighborhoods) shared by any
// number of Mesh instances, each attaching its own coordinate embedding and
// per-vertex properties.
package s2surface

import (
	"fmt"
	"sort"
)

// Tessellation is the topology of a triangulated surface: faces, the
// deduplicated edge set, and per-vertex neighbor fans ordered counter-clockwise
// when looking down the local outward normal. It is immutable after
// construction and is shared by reference across all Meshes that use it.
//
// A Tessellation obtained from Restrict is a sub-tessellation: its vertices
// carry labels referring back to the vertex indices of the tessellation the
// chain of restrictions started from, while the indexed representation
// renumbers them 0..n-1 for local array access.
type Tessellation struct {
	numVertices  int
	indexedFaces [][3]int
	faces        [][3]int
	indexedEdges [][2]int
	edges        [][2]int
	labels       []int
	lookup       map[int]int
	sub          bool

	// Per-vertex incidence in CSR layout, fan order.
	faceOffsets []int
	faceIndices []int
	nbrOffsets  []int
	nbrIndices  []int

	boundary  []bool
	unordered []bool

	opts TessellationOptions
}

// TessellationOptions holds construction options for a Tessellation.
type TessellationOptions struct {
	// UnorderedFallback degrades vertices with a non-manifold fan to an
	// unordered neighbor set instead of failing construction.
	UnorderedFallback bool
}

// TessellationOption configures Tessellation construction.
type TessellationOption func(*TessellationOptions) error

// WithUnorderedFallback makes non-manifold vertex fans non-fatal: affected
// vertices get an ascending unordered neighbor list and report false from
// IsOrderedVertex. The default is to fail with ErrNonManifold.
func WithUnorderedFallback() TessellationOption {
	return func(o *TessellationOptions) error {
		o.UnorderedFallback = true
		return nil
	}
}

// NewTessellation builds the topology of a triangulated surface from a raw
// triangle list. Face vertices must be given in a consistent winding
// (counter-clockwise seen from outside the surface); the per-vertex neighbor
// fans inherit that orientation. The vertex count is one more than the largest
// vertex label referenced.
func NewTessellation(faces [][3]int, setters ...TessellationOption) (*Tessellation, error) {
	var opts TessellationOptions
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	numVertices := 0
	for i, f := range faces {
		for _, v := range f {
			if v < 0 {
				return nil, fmt.Errorf("%w: face %d references negative vertex label %d",
					ErrMalformedTopology, i, v)
			}
			if v+1 > numVertices {
				numVertices = v + 1
			}
		}
	}

	return build(faces, numVertices, nil, nil, opts)
}

// build assembles a Tessellation over numVertices vertices. labels and lookup
// are nil for a root tessellation; for a sub-tessellation they map local
// indices to (and from) the originating tessellation's label space.
func build(faces [][3]int, numVertices int, labels []int, lookup map[int]int,
	opts TessellationOptions) (*Tessellation, error) {
	numFaces := len(faces)
	t := &Tessellation{
		numVertices:  numVertices,
		indexedFaces: make([][3]int, numFaces),
		labels:       labels,
		lookup:       lookup,
		sub:          labels != nil,
		faceOffsets:  make([]int, numVertices+1),
		boundary:     make([]bool, numVertices),
		unordered:    make([]bool, numVertices),
		opts:         opts,
	}
	copy(t.indexedFaces, faces)

	seen := make(map[[3]int]int, numFaces)
	edgeFaces := make(map[[2]int][]int, numFaces*3/2)
	for i, f := range t.indexedFaces {
		for j, v := range f {
			if v < 0 || v >= numVertices {
				return nil, fmt.Errorf("%w: face %d references unknown vertex label %d",
					ErrMalformedTopology, i, v)
			}
			if f[j] == f[(j+1)%3] {
				return nil, fmt.Errorf("%w: face %d repeats vertex %d",
					ErrMalformedTopology, i, v)
			}
		}
		key := f
		sortFaceKey(&key)
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: faces %d and %d triangulate the same vertices",
				ErrMalformedTopology, prev, i)
		}
		seen[key] = i

		for j := range 3 {
			e := edgeKey(f[j], f[(j+1)%3])
			edgeFaces[e] = append(edgeFaces[e], i)
		}
	}

	t.indexedEdges = make([][2]int, 0, len(edgeFaces))
	for e, incident := range edgeFaces {
		if len(incident) > 2 && !opts.UnorderedFallback {
			return nil, fmt.Errorf("%w: edge (%d %d) is shared by %d faces",
				ErrNonManifold, e[0], e[1], len(incident))
		}
		t.indexedEdges = append(t.indexedEdges, e)
	}
	sort.Slice(t.indexedEdges, func(i, j int) bool {
		if t.indexedEdges[i][0] != t.indexedEdges[j][0] {
			return t.indexedEdges[i][0] < t.indexedEdges[j][0]
		}
		return t.indexedEdges[i][1] < t.indexedEdges[j][1]
	})

	// CSR incident-face index, counting pass then fill.
	for _, f := range t.indexedFaces {
		for _, v := range f {
			t.faceOffsets[v+1]++
		}
	}
	for v := range numVertices {
		t.faceOffsets[v+1] += t.faceOffsets[v]
	}
	t.faceIndices = make([]int, numFaces*3)
	nxt := make([]int, numVertices)
	copy(nxt, t.faceOffsets[:numVertices])
	for i, f := range t.indexedFaces {
		for _, v := range f {
			t.faceIndices[nxt[v]] = i
			nxt[v]++
		}
	}

	t.nbrOffsets = make([]int, numVertices+1)
	t.nbrIndices = make([]int, 0, numFaces*3)
	for v := range numVertices {
		nbrs, open, err := t.orderFan(v)
		if err != nil {
			if !opts.UnorderedFallback {
				return nil, err
			}
			t.unordered[v] = true
			nbrs = t.unorderedNeighbors(v)
		}
		t.boundary[v] = open
		t.nbrIndices = append(t.nbrIndices, nbrs...)
		t.nbrOffsets[v+1] = len(t.nbrIndices)
	}

	if t.sub {
		t.faces = make([][3]int, numFaces)
		for i, f := range t.indexedFaces {
			t.faces[i] = [3]int{labels[f[0]], labels[f[1]], labels[f[2]]}
		}
		t.edges = make([][2]int, len(t.indexedEdges))
		for i, e := range t.indexedEdges {
			t.edges[i] = [2]int{labels[e[0]], labels[e[1]]}
		}
	} else {
		t.faces = t.indexedFaces
		t.edges = t.indexedEdges
	}

	return t, nil
}

// orderFan sorts vertex v's incident faces in place into counter-clockwise
// fan order and returns the matching neighbor sequence. open reports a
// boundary vertex (the fan does not close). A fan that cannot be walked as a
// single chain of shared edges fails with ErrNonManifold.
func (t *Tessellation) orderFan(v int) (nbrs []int, open bool, err error) {
	inc := t.faceIndices[t.faceOffsets[v]:t.faceOffsets[v+1]]
	n := len(inc)
	if n == 0 {
		return nil, false, nil
	}

	nextOf := make([]int, n)
	prevOf := make([]int, n)
	succ := make(map[int]int, n)
	for i, fIdx := range inc {
		nextOf[i] = nextVertex(t.indexedFaces[fIdx], v)
		prevOf[i] = prevVertex(t.indexedFaces[fIdx], v)
		if _, dup := succ[prevOf[i]]; dup {
			return nil, false, fmt.Errorf(
				"%w: vertex %d has two faces entering from vertex %d",
				ErrNonManifold, v, prevOf[i])
		}
		succ[prevOf[i]] = i
	}

	// A boundary fan starts at the face whose entering edge no other face
	// leaves from; a closed fan has no such face and may start anywhere.
	start := -1
	leaves := make(map[int]bool, n)
	for _, u := range nextOf {
		if leaves[u] {
			return nil, false, fmt.Errorf(
				"%w: vertex %d has two faces leaving toward a shared neighbor",
				ErrNonManifold, v)
		}
		leaves[u] = true
	}
	for i := range n {
		if !leaves[prevOf[i]] {
			if start >= 0 {
				return nil, false, fmt.Errorf("%w: vertex %d has a disconnected fan",
					ErrNonManifold, v)
			}
			start = i
		}
	}
	open = start >= 0
	if !open {
		start = 0
	}

	order := make([]int, 0, n)
	cur := start
	for range n {
		order = append(order, cur)
		next, ok := succ[nextOf[cur]]
		if !ok || next == start {
			break
		}
		cur = next
	}
	if len(order) != n {
		return nil, false, fmt.Errorf("%w: vertex %d has a disconnected fan",
			ErrNonManifold, v)
	}

	ordered := make([]int, n)
	for i, pos := range order {
		ordered[i] = inc[pos]
	}
	copy(inc, ordered)

	if open {
		nbrs = make([]int, 0, n+1)
		nbrs = append(nbrs, prevOf[order[0]])
	} else {
		nbrs = make([]int, 0, n)
	}
	for _, pos := range order {
		nbrs = append(nbrs, nextOf[pos])
	}
	return nbrs, open, nil
}

// unorderedNeighbors returns the ascending set of vertices adjacent to v.
func (t *Tessellation) unorderedNeighbors(v int) []int {
	set := make(map[int]bool)
	for _, fIdx := range t.faceIndices[t.faceOffsets[v]:t.faceOffsets[v+1]] {
		for _, u := range t.indexedFaces[fIdx] {
			if u != v {
				set[u] = true
			}
		}
	}
	nbrs := make([]int, 0, len(set))
	for u := range set {
		nbrs = append(nbrs, u)
	}
	sort.Ints(nbrs)
	return nbrs
}

// NumVertices returns the number of vertices in the tessellation.
func (t *Tessellation) NumVertices() int {
	return t.numVertices
}

// NumFaces returns the number of triangle faces.
func (t *Tessellation) NumFaces() int {
	return len(t.indexedFaces)
}

// NumEdges returns the number of distinct undirected edges.
func (t *Tessellation) NumEdges() int {
	return len(t.indexedEdges)
}

// Faces returns the triangle list in label space: for a sub-tessellation the
// entries are vertex labels of the originating tessellation, for a root
// tessellation labels and indices coincide.
func (t *Tessellation) Faces() [][3]int {
	return t.faces
}

// IndexedFaces returns the triangle list in local index space (0..n-1),
// suitable for indexing the coordinate and property arrays of a Mesh built on
// this tessellation.
func (t *Tessellation) IndexedFaces() [][3]int {
	return t.indexedFaces
}

// Edges returns the undirected edge list in label space, each pair appearing
// once with the smaller local index first, sorted.
func (t *Tessellation) Edges() [][2]int {
	return t.edges
}

// IndexedEdges returns the undirected edge list in local index space.
func (t *Tessellation) IndexedEdges() [][2]int {
	return t.indexedEdges
}

// IsSubTessellation reports whether this tessellation was produced by
// Restrict and therefore has a label space distinct from its index space.
func (t *Tessellation) IsSubTessellation() bool {
	return t.sub
}

// Labels returns the mapping from local vertex index to vertex label. For a
// root tessellation this is the identity.
func (t *Tessellation) Labels() []int {
	if !t.sub {
		labels := make([]int, t.numVertices)
		for i := range labels {
			labels[i] = i
		}
		return labels
	}
	return t.labels
}

// Label returns the vertex label of local vertex index v.
func (t *Tessellation) Label(v int) int {
	if !t.sub {
		return v
	}
	return t.labels[v]
}

// Lookup returns the local vertex index carrying the given label, if present.
func (t *Tessellation) Lookup(label int) (int, bool) {
	if !t.sub {
		if label < 0 || label >= t.numVertices {
			return 0, false
		}
		return label, true
	}
	v, ok := t.lookup[label]
	return v, ok
}

// VertexFaces returns the indices of the faces incident to vertex v, in
// counter-clockwise fan order (arbitrary order for an unordered vertex).
func (t *Tessellation) VertexFaces(v int) []int {
	return t.faceIndices[t.faceOffsets[v]:t.faceOffsets[v+1]]
}

// VertexNeighbors returns the local indices of the vertices adjacent to v in
// counter-clockwise fan order. An interior vertex's sequence is cyclic with
// one entry per incident face; a boundary vertex's sequence is open with one
// extra entry for the trailing boundary edge.
func (t *Tessellation) VertexNeighbors(v int) []int {
	return t.nbrIndices[t.nbrOffsets[v]:t.nbrOffsets[v+1]]
}

// VertexDegree returns the number of vertices adjacent to v.
func (t *Tessellation) VertexDegree(v int) int {
	return t.nbrOffsets[v+1] - t.nbrOffsets[v]
}

// IsBoundaryVertex reports whether v lies on a surface boundary (its incident
// face fan does not close).
func (t *Tessellation) IsBoundaryVertex(v int) bool {
	return t.boundary[v]
}

// IsOrderedVertex reports whether v's neighbor sequence is in fan order. It
// is false only for vertices degraded by WithUnorderedFallback.
func (t *Tessellation) IsOrderedVertex(v int) bool {
	return !t.unordered[v]
}

// Restrict builds the sub-tessellation over the given vertex subset, keeping
// exactly the faces whose three vertices are all selected. Subset vertices
// appear in the result in ascending order of their local index here; their
// labels refer to the label space of the tessellation the restriction chain
// started from. Selected vertices that lose all incident faces are kept as
// isolated vertices so coordinate arrays stay aligned with the subset.
func (t *Tessellation) Restrict(selected []int) (*Tessellation, error) {
	local := make([]int, len(selected))
	copy(local, selected)
	sort.Ints(local)

	localOf := make(map[int]int, len(local))
	for i, v := range local {
		if v < 0 || v >= t.numVertices {
			return nil, fmt.Errorf("%w: restriction selects unknown vertex %d",
				ErrMalformedTopology, v)
		}
		if i > 0 && local[i-1] == v {
			return nil, fmt.Errorf("%w: restriction selects vertex %d twice",
				ErrMalformedTopology, v)
		}
		localOf[v] = i
	}

	var faces [][3]int
	for _, f := range t.indexedFaces {
		a, aok := localOf[f[0]]
		b, bok := localOf[f[1]]
		c, cok := localOf[f[2]]
		if aok && bok && cok {
			faces = append(faces, [3]int{a, b, c})
		}
	}

	labels := make([]int, len(local))
	lookup := make(map[int]int, len(local))
	for i, v := range local {
		labels[i] = t.Label(v)
		lookup[labels[i]] = i
	}

	return build(faces, len(local), labels, lookup, t.opts)
}

// edgeKey returns the canonical (smaller first) form of an undirected edge.
func edgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func sortFaceKey(f *[3]int) {
	if f[0] > f[1] {
		f[0], f[1] = f[1], f[0]
	}
	if f[1] > f[2] {
		f[1], f[2] = f[2], f[1]
	}
	if f[0] > f[1] {
		f[0], f[1] = f[1], f[0]
	}
}

func nextVertex(f [3]int, v int) int {
	switch v {
	case f[0]:
		return f[1]
	case f[1]:
		return f[2]
	case f[2]:
		return f[0]
	}
	panic("nextVertex: vertex not in face")
}

func prevVertex(f [3]int, v int) int {
	switch v {
	case f[0]:
		return f[2]
	case f[1]:
		return f[0]
	case f[2]:
		return f[1]
	}
	panic("prevVertex: vertex not in face")
}
