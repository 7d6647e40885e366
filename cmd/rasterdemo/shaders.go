// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package main

import (
	"unsafe"

	"github.com/gviegas/raster/format"
	"github.com/gviegas/raster/linear"
	"github.com/gviegas/raster/shader"
)

// demoVertex is the per-vertex input layout the demo's vertex
// buffer binding 0 provides: a clip-space position and a flat RGB
// color, interleaved.
type demoVertex struct {
	pos   [2]float32
	color [3]float32
}

// colorVaryingLocation is the location both the vertex shader's
// output and the fragment shader's input use for the interpolated
// color, per the shared-location convention spec §4.5 relies on.
const colorVaryingLocation = 0

// newDemoVertexShader returns a shader.Module that forwards the
// per-vertex position unchanged into clip space (z=0.5, w=1) and
// passes the per-vertex color through as a varying.
func newDemoVertexShader() *shader.Module {
	return &shader.Module{
		Vars: shader.IO{
			Outputs: []shader.Variable{
				{Location: colorVaryingLocation, Format: format.RGB32F, Size: 12, Align: 4},
			},
		},
		Entry: func(uniform, input, output *shader.PtrTable, builtin *unsafe.Pointer) {
			pos := (*[2]float32)(input[0])
			color := (*[3]float32)(input[1])
			*(*[3]float32)(output[colorVaryingLocation]) = *color
			clip := (*linear.V4)(*builtin)
			*clip = linear.V4{pos[0], pos[1], 0.5, 1}
		},
	}
}

// newDemoFragmentShader returns a shader.Module that writes its
// interpolated color straight to output location 0 as RGBA32F, alpha
// forced to 1.
func newDemoFragmentShader() *shader.Module {
	return &shader.Module{
		Vars: shader.IO{
			Inputs: []shader.Variable{
				{
					Location: colorVaryingLocation,
					Format:   format.RGB32F,
					Size:     12,
					Align:    4,
					Interp:   shader.ArrayInterpolator(3, 4, shader.Lerp3),
				},
			},
			Outputs: []shader.Variable{
				{Location: 0, Format: format.RGBA32F, Size: 16, Align: 4},
			},
		},
		Entry: func(uniform, input, output *shader.PtrTable, builtin *unsafe.Pointer) {
			color := (*[3]float32)(input[colorVaryingLocation])
			out := (*[4]float32)(output[0])
			*out = [4]float32{color[0], color[1], color[2], 1}
		},
	}
}
