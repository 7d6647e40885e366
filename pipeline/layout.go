// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package pipeline

import (
	"sort"
	"unsafe"

	"github.com/gviegas/raster/internal/alignbuf"
	"github.com/gviegas/raster/shader"
)

// structLayout is the result of planning the byte offsets of a set
// of shader variables within a single struct.
type structLayout struct {
	offset map[uint8]uint32
	size   uint32
	align  uint32
}

// planStruct sorts vars by Align ascending and sweeps once to
// compute aligned offsets, per spec §4.5 step 4. It never reorders
// by anything other than alignment (the original declaration order
// is otherwise irrelevant to the resulting layout).
func planStruct(vars []shader.Variable) structLayout {
	sorted := make([]shader.Variable, len(vars))
	copy(sorted, vars)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Align < sorted[j].Align })

	l := structLayout{offset: make(map[uint8]uint32, len(vars)), align: 1}
	var off uint32
	for _, v := range sorted {
		a := v.Align
		if a == 0 {
			a = 1
		}
		if a > l.align {
			l.align = a
		}
		off = alignUp(off, a)
		l.offset[v.Location] = off
		off += v.Size
	}
	l.size = alignUp(off, l.align)
	return l
}

func alignUp(n, a uint32) uint32 {
	if a <= 1 {
		return n
	}
	return (n + a - 1) / a * a
}

// interstage holds the planned layout and the single heap block
// backing every vertex-output/fragment-input/fragment-output slot
// of a Pipeline, per the "single heap-allocated interstage buffer"
// design in spec §3/§9.
//
// Layout within the block, in order:
//
//	[0, 3*Sv)        three copies of the vertex-output struct,
//	                 one per vertex of the currently rasterized
//	                 triangle.
//	[3*Sv, 4*Sv)     a fourth, aliasing copy used as the
//	                 interpolation destination for fragment
//	                 inputs (spec §4.5 step 4: "the fragment input
//	                 aliases a fourth slot"). This keeps
//	                 sizeof(block) >= 3*Sv+Sf (spec §8 invariant 1)
//	                 while giving interpolation a distinct
//	                 destination from any of the three triangle
//	                 vertices, so a still-in-flight vertex shader
//	                 invocation for the next primitive can never
//	                 race with the fragment shader reading the
//	                 previous primitive's interpolated inputs.
//	[4*Sv, 4*Sv+Sf)  the fragment-output struct.
type interstage struct {
	buf      *alignbuf.Buffer
	vsLayout structLayout // vertex-shader outputs == fragment-shader inputs, by location
	fsLayout structLayout // fragment-shader outputs

	vsOut [3]shader.PtrTable
	fsIn  shader.PtrTable
	fsOut shader.PtrTable
}

func planInterstage(vsOutputs, fsOutputs []shader.Variable) (*interstage, error) {
	vl := planStruct(vsOutputs)
	fl := planStruct(fsOutputs)

	align := vl.align
	if fl.align > align {
		align = fl.align
	}
	size := int(4*vl.size + fl.size)
	if size == 0 && (len(vsOutputs) > 0 || len(fsOutputs) > 0) {
		return nil, ErrOutOfMemory
	}
	if size == 0 {
		size = 1
	}

	buf, err := alignbuf.New(size, uintptr(align))
	if err != nil {
		return nil, ErrOutOfMemory
	}

	is := &interstage{buf: buf, vsLayout: vl, fsLayout: fl}
	for k := 0; k < 3; k++ {
		base := k * int(vl.size)
		for loc, off := range vl.offset {
			is.vsOut[k][loc] = buf.Ptr(base + int(off))
		}
	}
	fragInBase := 3 * int(vl.size)
	for loc, off := range vl.offset {
		is.fsIn[loc] = buf.Ptr(fragInBase + int(off))
	}
	fragOutBase := 4 * int(vl.size)
	for loc, off := range fl.offset {
		is.fsOut[loc] = buf.Ptr(fragOutBase + int(off))
	}
	return is, nil
}

// outputPtr returns the pointer table of the k'th rolling triangle
// slot (k in [0,3)).
func (is *interstage) outputPtr(k int) *shader.PtrTable { return &is.vsOut[k] }

// vsBase returns the base address of the k'th rolling triangle
// slot's vertex-output struct, for code that needs to treat the
// struct as a single block (clipping) rather than a per-location
// table.
func (is *interstage) vsBase(k int) unsafe.Pointer { return is.buf.Ptr(k * int(is.vsLayout.size)) }

// fieldPtr returns the address of the field at off within a
// vertex-output struct based at base.
func fieldPtr(base unsafe.Pointer, off uint32) unsafe.Pointer {
	return unsafe.Pointer(uintptr(base) + uintptr(off))
}
