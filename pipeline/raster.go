// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package pipeline

import (
	"encoding/binary"
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/gviegas/raster/attachment"
	"github.com/gviegas/raster/linear"
	"github.com/gviegas/raster/shader"
)

// screenVertex is a clip-space vertex after perspective division and
// viewport transform (spec §4.6.2 step 1).
type screenVertex struct {
	x, y float32 // pixel-space coordinates, not yet floored
	z    float32 // clip.z / clip.w, in [0,1] after clipping
	iw   float32 // 1 / clip.w, kept separately for perspective-correct weights
}

func (p *Pipeline) toScreen(clip linear.V4) screenVertex {
	iw := 1 / clip[3]
	return screenVertex{
		x:  (clip[0]*iw + 1) / 2 * p.viewport.Width,
		y:  (clip[1]*iw + 1) / 2 * p.viewport.Height,
		z:  clip[2] * iw,
		iw: iw,
	}
}

// rasterizeTriangle implements spec §4.6.2 end to end for a single,
// already clipped and shaded triangle: culling, the bounding box,
// the edge-function scan, perspective-correct interpolation, the
// depth test, the fragment shader and the output blit.
func (p *Pipeline) rasterizeTriangle(fb attachment.FrameBuffer, sub attachment.Subpass, uniform *shader.PtrTable, clip [3]linear.V4, base [3]unsafe.Pointer) {
	v0, v1, v2 := p.toScreen(clip[0]), p.toScreen(clip[1]), p.toScreen(clip[2])

	abx, aby := v1.x-v0.x, v1.y-v0.y
	acx, acy := v2.x-v0.x, v2.y-v0.y
	m := abx*acy - aby*acx
	// Negative signed area is the front face (spec §4.6.2 step 2).
	// A zero area triangle is degenerate and never rasterized
	// regardless of cull mode.
	switch p.cullMode {
	case CullNone:
		if m == 0 {
			return
		}
	case CullBack:
		if m >= 0 {
			return
		}
	case CullFront:
		if m <= 0 {
			return
		}
	}

	width, height := fb.Width(), fb.Height()
	l := clampInt(floorMin3(v0.x, v1.x, v2.x), 0, width-1)
	r := clampInt(floorMax3(v0.x, v1.x, v2.x), 0, width-1)
	t := clampInt(floorMin3(v0.y, v1.y, v2.y), 0, height-1)
	b := clampInt(floorMax3(v0.y, v1.y, v2.y), 0, height-1)
	if l > r || t > b {
		return
	}

	var depthBuf []byte
	var depthID uint8
	if sub.Depth != nil {
		depthID = sub.Depth.ID
		depthBuf = fb.At(depthID)
	}

	for y := t; y <= b; y++ {
		py := float32(y) + 0.5
		for x := l; x <= r; x++ {
			px := float32(x) + 0.5

			apx, apy := px-v0.x, py-v0.y
			um := apx*acy - apy*acx
			vm := abx*apy - aby*apx
			u := um / m
			v := vm / m
			pw := 1 - u - v
			if u < 0 || v < 0 || u+v > 1 {
				continue
			}

			// clip.z/clip.w already varies linearly in screen space, so
			// the depth test needs no perspective correction (spec
			// §4.6.2 step 4).
			cz := pw*v0.z + u*v1.z + v*v2.z
			if depthBuf != nil {
				off := (y*width + x) * 4
				stored := math32.Float32frombits(binary.LittleEndian.Uint32(depthBuf[off:]))
				if cz >= stored {
					continue
				}
				binary.LittleEndian.PutUint32(depthBuf[off:], math32.Float32bits(cz))
			}

			// Fragment-input attributes are not affine in screen
			// space, so they need the true perspective-correct
			// weights: interpolate 1/w linearly, then normalize.
			k := pw*v0.iw + u*v1.iw + v*v2.iw
			kInv := 1 / k
			w := [3]float32{pw * v0.iw * kInv, u * v1.iw * kInv, v * v2.iw * kInv}

			for _, fi := range p.fragIn {
				src := [3]unsafe.Pointer{
					fieldPtr(base[0], p.interstage.vsLayout.offset[fi.location]),
					fieldPtr(base[1], p.interstage.vsLayout.offset[fi.location]),
					fieldPtr(base[2], p.interstage.vsLayout.offset[fi.location]),
				}
				fi.interp(src, w, p.interstage.fsIn[fi.location])
			}

			p.fsFragCoord = linear.V3{px, py, cz}
			p.fsBuiltin = unsafe.Pointer(&p.fsFragCoord)
			p.fs.Entry(uniform, &p.interstage.fsIn, &p.interstage.fsOut, &p.fsBuiltin)

			for loc, ob := range p.fragOut {
				if !ob.bound || ob.stride == 0 {
					continue
				}
				dst := fb.At(ob.attachmentID)
				off := (y*width + x) * ob.stride
				srcBytes := unsafe.Slice((*byte)(p.interstage.fsOut[loc]), ob.srcSize)
				ob.converter(srcBytes, dst[off:off+ob.stride])
			}
		}
	}
}

func floorMin3(a, b, c float32) int {
	return int(math32.Floor(min3(a, b, c)))
}

func floorMax3(a, b, c float32) int {
	return int(math32.Floor(max3(a, b, c)))
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
