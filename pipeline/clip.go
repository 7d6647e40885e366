// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package pipeline

import (
	"unsafe"

	"github.com/gviegas/raster/linear"
)

// clipPlane is a signed-distance function over a clip-space vertex:
// non-negative means the vertex is on the inside of the half-space.
// The six planes are the ones spec §4.6.1 names: near, far, left,
// right, bottom, top.
type clipPlane func(v linear.V4) float32

var clipPlanes = [6]clipPlane{
	func(v linear.V4) float32 { return v[2] },        // near:   z >= 0
	func(v linear.V4) float32 { return v[3] - v[2] }, // far:    z <= w
	func(v linear.V4) float32 { return v[3] + v[0] }, // left:   x >= -w
	func(v linear.V4) float32 { return v[3] - v[0] }, // right:  x <= w
	func(v linear.V4) float32 { return v[3] + v[1] }, // bottom: y >= -w
	func(v linear.V4) float32 { return v[3] - v[1] }, // top:    y <= w
}

// clipPoly is a polygon produced by clipping, carrying each vertex's
// clip-space position alongside the base address of its full
// vertex-output struct. base[i] may point into the interstage
// block's rolling triangle slots (unclipped vertices, carried
// through by reference) or into one of the pipeline's clip scratch
// buffers (vertices synthesized by plane intersection).
type clipPoly struct {
	n    int
	pos  [maxClipVerts]linear.V4
	base [maxClipVerts]unsafe.Pointer
}

func (poly *clipPoly) append(v linear.V4, base unsafe.Pointer) {
	if poly.n >= maxClipVerts {
		return
	}
	poly.pos[poly.n] = v
	poly.base[poly.n] = base
	poly.n++
}

// clipTriangle runs Sutherland-Hodgman clipping of the triangle
// (v0,v1,v2) against the six homogeneous half-spaces, per spec
// §4.6.1. It writes each plane's synthesized vertices into that
// plane's own scratch buffer, so no allocation happens here.
func (p *Pipeline) clipTriangle(v0, v1, v2 linear.V4, b0, b1, b2 unsafe.Pointer) clipPoly {
	var a, b clipPoly
	a.append(v0, b0)
	a.append(v1, b1)
	a.append(v2, b2)

	cur, next := &a, &b
	vsSize := uint32(1)
	if p.interstage.vsLayout.size > 0 {
		vsSize = p.interstage.vsLayout.size
	}

	for i, f := range clipPlanes {
		if cur.n == 0 {
			break
		}
		next.n = 0
		scratch := p.clipBufs[i]
		nextScratch := 0

		for k := 0; k < cur.n; k++ {
			prevI := (k - 1 + cur.n) % cur.n
			va, vb := cur.pos[prevI], cur.pos[k]
			fa, fb := f(va), f(vb)
			aIn, bIn := fa >= 0, fb >= 0

			switch {
			case aIn && bIn:
				next.append(vb, cur.base[k])
			case aIn && !bIn:
				w := fa / (fa - fb)
				nv := lerpV4(va, vb, w)
				nb := scratch.Ptr(nextScratch * int(vsSize))
				nextScratch++
				lerpStruct(cur.base[prevI], cur.base[k], nb, w, vsSize)
				next.append(nv, nb)
			case !aIn && bIn:
				w := fa / (fa - fb)
				nv := lerpV4(va, vb, w)
				nb := scratch.Ptr(nextScratch * int(vsSize))
				nextScratch++
				lerpStruct(cur.base[prevI], cur.base[k], nb, w, vsSize)
				next.append(nv, nb)
				next.append(vb, cur.base[k])
			}
		}
		cur, next = next, cur
	}
	return *cur
}

// lerpV4 returns a*(1-w) + b*w, per spec §4.6.1's intersection
// formula, expressed with V4's own vector algebra rather than a
// bespoke loop.
func lerpV4(a, b linear.V4, w float32) linear.V4 {
	var d, s, v linear.V4
	d.Sub(&b, &a)
	s.Scale(w, &d)
	v.Add(&a, &s)
	return v
}

// lerpStruct interpolates an entire vertex-output struct as a run of
// float32 words: dst = a*(1-w) + b*w. The ABI gives the engine no
// type information about a variable's fields beyond {size, align}
// (spec §9 "construction-time type-erasure"), and every declared
// variable in this engine's shader modules is float32-based, so this
// is equivalent to interpolating field-by-field without needing the
// per-location offset table the fragment-interpolation step uses.
func lerpStruct(a, b, dst unsafe.Pointer, w float32, size uint32) {
	n := size / 4
	for i := uint32(0); i < n; i++ {
		off := uintptr(i * 4)
		fa := *(*float32)(unsafe.Pointer(uintptr(a) + off))
		fb := *(*float32)(unsafe.Pointer(uintptr(b) + off))
		*(*float32)(unsafe.Pointer(uintptr(dst) + off)) = fa*(1-w) + fb*w
	}
	// Any trailing bytes (size not a multiple of 4) carry over from
	// b unchanged; no declared variable is expected to straddle a
	// word boundary like this in practice.
	for i := n * 4; i < size; i++ {
		*(*byte)(unsafe.Pointer(uintptr(dst) + uintptr(i))) = *(*byte)(unsafe.Pointer(uintptr(b) + uintptr(i)))
	}
}
