// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides utility functions for generating S2 points for
// surface tessellations.

package utils

import (
	"math"
	"math/rand"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// GenerateRandomPoints generates a vector of random points on the S2 sphere.
// The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, seed int64) s2.PointVector {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	sites := make(s2.PointVector, cnt)

	for i := range cnt {
		sites[i] = s2.PointFromLatLng(s2.LatLng{
			Lat: s1.Angle((random.Float64() - 0.5) * math.Pi),
			Lng: s1.Angle((random.Float64()*2 - 1) * math.Pi),
		})
	}

	return sites
}

// GenerateCapPoints generates random points uniformly distributed over the
// spherical cap of the given angular radius around center. The seed parameter
// ensures reproducibility.
func GenerateCapPoints(cnt int, center s2.Point, radius s1.Angle, seed int64) s2.PointVector {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make(s2.PointVector, cnt)

	// Orthonormal frame with ez at the cap center.
	ez := center.Normalize()
	ex := ez.Ortho().Normalize()
	ey := ez.Cross(ex)

	// Uniform area sampling: z uniform in [cos(radius), 1].
	zMin := math.Cos(radius.Radians())
	for i := range cnt {
		z := zMin + random.Float64()*(1-zMin)
		r := math.Sqrt(1 - z*z)
		phi := random.Float64() * 2 * math.Pi
		v := ex.Mul(r * math.Cos(phi)).
			Add(ey.Mul(r * math.Sin(phi))).
			Add(ez.Mul(z))
		points[i] = s2.Point{Vector: v.Normalize()}
	}

	return points
}
