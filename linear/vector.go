// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package linear implements the vector algebra the rasterizer needs:
// V4 carries clip-space positions through perspective divide and
// plane-intersection interpolation, V3 carries the window-space
// fragment coordinate built from the rasterizer's barycentric walk.
package linear

import (
	"math"
)

// V3 is a 3-component vector of float32. The rasterizer uses it to
// hold a fragment's (x, y, z) window-space coordinate (see
// pipeline's raster.go, which builds one per covered sample).
type V3 [3]float32

// Add sets v to contain l + r.
func (v *V3) Add(l, r *V3) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *V3) Sub(l, r *V3) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s ⋅ w.
func (v *V3) Scale(s float32, w *V3) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// Dot returns v ⋅ w.
func (v *V3) Dot(w *V3) (d float32) {
	for i := range v {
		d += v[i] * w[i]
	}
	return
}

// Len returns the length of v.
func (v *V3) Len() float32 { return float32(math.Sqrt(float64(v.Dot(v)))) }

// Norm sets v to contain w normalized.
func (v *V3) Norm(w *V3) { v.Scale(1/w.Len(), w) }

// Cross sets v to contain l × r.
func (v *V3) Cross(l, r *V3) {
	v[0] = l[1]*r[2] - l[2]*r[1]
	v[1] = l[2]*r[0] - l[0]*r[2]
	v[2] = l[0]*r[1] - l[1]*r[0]
	return
}

// V4 is a 4-component vector of float32. The rasterizer uses it to
// hold a vertex's clip-space position: pipeline's clip.go clips and
// interpolates triangles entirely in terms of V4 (see lerpV4, which
// drives Sub/Scale/Add below at each plane intersection).
type V4 [4]float32

// Add sets v to contain l + r. lerpV4 (pipeline/clip.go) uses this to
// recombine a clip-plane intersection point after scaling the delta
// between the two endpoints it interpolates.
func (v *V4) Add(l, r *V4) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r. lerpV4 (pipeline/clip.go) calls this
// first, to get the edge vector between a clipped triangle's two
// endpoints before scaling it by the plane-crossing fraction.
func (v *V4) Sub(l, r *V4) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s ⋅ w. lerpV4 (pipeline/clip.go) uses this
// to weight a clip-edge vector by the plane-crossing fraction before
// adding it back to the edge's start point.
func (v *V4) Scale(s float32, w *V4) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// Dot returns v ⋅ w.
func (v *V4) Dot(w *V4) (d float32) {
	for i := range v {
		d += v[i] * w[i]
	}
	return
}

// Len returns the length of v.
func (v *V4) Len() float32 { return float32(math.Sqrt(float64(v.Dot(v)))) }

// Norm sets v to contain w normalized.
func (v *V4) Norm(w *V4) { v.Scale(1/w.Len(), w) }
