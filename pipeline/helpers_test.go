// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package pipeline

import (
	"unsafe"

	"github.com/gviegas/raster/attachment"
	"github.com/gviegas/raster/format"
	"github.com/gviegas/raster/linear"
	"github.com/gviegas/raster/shader"
)

// testVertex is the per-vertex layout fed through vertex buffer
// binding 0 in every pipeline test: a clip-space-ready 2D position
// (z and w are fixed by the shader below) and a flat varying value
// used to check interpolation.
type testVertex struct {
	pos   [2]float32
	value float32
}

const testVaryingLocation = 0

// testVertexShaderConstW forwards pos straight into clip space with
// w=1 and a fixed z, and passes value through unchanged.
func testVertexShaderConstW() *shader.Module {
	return &shader.Module{
		Vars: shader.IO{
			Outputs: []shader.Variable{
				{Location: testVaryingLocation, Format: format.R32F, Size: 4, Align: 4},
			},
		},
		Entry: func(uniform, input, output *shader.PtrTable, builtin *unsafe.Pointer) {
			pos := (*[2]float32)(input[0])
			value := (*float32)(input[1])
			*(*float32)(output[testVaryingLocation]) = *value
			clip := (*linear.V4)(*builtin)
			*clip = linear.V4{pos[0], pos[1], 0.5, 1}
		},
	}
}

// testVertexShaderVaryingW is like testVertexShaderConstW but reads
// w from a third per-vertex float, to exercise perspective-correct
// interpolation with non-uniform w across a triangle's vertices.
type testVertexW struct {
	pos   [2]float32
	value float32
	w     float32
}

func testVertexShaderVaryingW() *shader.Module {
	return &shader.Module{
		Vars: shader.IO{
			Outputs: []shader.Variable{
				{Location: testVaryingLocation, Format: format.R32F, Size: 4, Align: 4},
			},
		},
		Entry: func(uniform, input, output *shader.PtrTable, builtin *unsafe.Pointer) {
			pos := (*[2]float32)(input[0])
			value := (*float32)(input[1])
			w := (*float32)(input[2])
			*(*float32)(output[testVaryingLocation]) = *value
			clip := (*linear.V4)(*builtin)
			*clip = linear.V4{pos[0] * *w, pos[1] * *w, 0.5 * *w, *w}
		},
	}
}

// testFragmentShader writes its interpolated varying straight to a
// single-channel R32F output.
func testFragmentShader() *shader.Module {
	return &shader.Module{
		Vars: shader.IO{
			Inputs: []shader.Variable{
				{Location: testVaryingLocation, Format: format.R32F, Size: 4, Align: 4},
			},
			Outputs: []shader.Variable{
				{Location: 0, Format: format.R32F, Size: 4, Align: 4},
			},
		},
		Entry: func(uniform, input, output *shader.PtrTable, builtin *unsafe.Pointer) {
			v := (*float32)(input[testVaryingLocation])
			*(*float32)(output[0]) = *v
		},
	}
}

// newTestRenderPass builds a one-color-attachment, optionally one-
// depth-attachment render pass matching R32F, for tests that read
// fragment output back as plain float32 texels.
func newTestRenderPass(withDepth bool) (*attachment.RenderPass, error) {
	info := attachment.CreateInfo{
		Attachments: []attachment.Description{{LoadOp: attachment.LLoad, StoreOp: attachment.SStore}},
		Subpasses: []attachment.Subpass{
			{Color: []attachment.Ref{{ID: 0, Format: format.R32F}}},
		},
	}
	if withDepth {
		info.Attachments = append(info.Attachments, attachment.Description{LoadOp: attachment.LLoad, StoreOp: attachment.SStore})
		info.Subpasses[0].Depth = &attachment.Ref{ID: 1, Format: format.R32F}
	}
	return attachment.NewRenderPass(info)
}

func newTestFramebuffer(w, h int, withDepth bool) attachment.FrameBuffer {
	color := make([]byte, w*h*format.Size(format.R32F))
	atts := [][]byte{color}
	if withDepth {
		depth := make([]byte, w*h*format.Size(format.R32F))
		// Depth-clear to the far plane so the first fragment that
		// reaches a pixel always passes the less-than test.
		for i := 0; i < len(depth); i += 4 {
			depth[i], depth[i+1], depth[i+2], depth[i+3] = 0, 0, 0x80, 0x3f // 1.0f little-endian
		}
		atts = append(atts, depth)
	}
	return attachment.NewFrameBuffer(w, h, atts)
}

// fakeResources is a minimal Resources implementation for tests that
// drive Draw/DrawIndexed directly, bypassing state.State.
type fakeResources struct {
	vbufs [256][]byte
	descs shader.PtrTable
}

func (r *fakeResources) VertexBuffer(binding uint8) []byte { return r.vbufs[binding] }
func (r *fakeResources) DescriptorSet() *shader.PtrTable   { return &r.descs }
