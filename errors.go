// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package s2surface

import "errors"

// Sentinel errors for topology and property failures. Every error returned by
// this package wraps one of these, so callers can match with errors.Is.
var (
	// ErrMalformedTopology reports a face list that cannot describe a valid
	// triangulation: negative or repeated vertex labels, duplicate faces, or
	// coordinate/property arrays whose length disagrees with the vertex count.
	ErrMalformedTopology = errors.New("s2surface: malformed topology")

	// ErrNonManifold reports a vertex whose incident faces do not form a
	// single fan: an edge shared by more than two faces, or a disconnected or
	// inconsistently oriented set of incident faces.
	ErrNonManifold = errors.New("s2surface: non-manifold geometry")

	// ErrUnknownProperty reports a lookup of a per-vertex property that has
	// not been attached to the mesh.
	ErrUnknownProperty = errors.New("s2surface: unknown property")
)
