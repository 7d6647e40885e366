// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package pipeline

import (
	"fmt"
	"log"
	"unsafe"

	"github.com/gviegas/raster/attachment"
	"github.com/gviegas/raster/internal/alignbuf"
	"github.com/gviegas/raster/linear"
	"github.com/gviegas/raster/shader"
)

// maxClipVerts bounds the polygon the Sutherland-Hodgman clipper can
// produce. Clipping a convex polygon against one plane adds at most
// one vertex, so a triangle clipped against six planes has at most 9.
const maxClipVerts = 9

// Pipeline is a fully planned graphics pipeline: a vertex/fragment
// shader pair, an input layout and the precomputed interstage
// buffer that every Draw call reuses without allocating.
//
// A Pipeline is only valid for use with the render pass and subpass
// it was created against (spec §3 "Lifecycle").
type Pipeline struct {
	vs, fs *shader.Module

	vertexInput vertexInputPlan
	interstage  *interstage
	fragIn      []fragInInterp
	fragOut     map[uint8]fragOutBinding

	topology    Topology
	viewport    Viewport
	cullMode    CullMode
	polygonMode PolygonMode

	pass    *attachment.RenderPass
	subpass int

	// clipBufs holds one scratch buffer per clip plane: the clipper
	// synthesizes new vertex-output structs into clipBufs[i] while
	// sweeping plane i. A pass-through (unclipped) vertex keeps its
	// original base pointer rather than being recopied, so reusing
	// a single pair of ping-pong buffers across all six planes could
	// let a later plane overwrite a struct an earlier-surviving
	// vertex still references; one buffer per plane rules that out.
	// They use the same layout (size, alignment) as the interstage
	// block's per-vertex slots, so a clip-synthesized vertex and a
	// shaded triangle vertex are interchangeable to the rest of the
	// draw path.
	clipBufs [6]*alignbuf.Buffer

	// vsInput is the per-draw scratch input table passed to the
	// vertex shader; it is overwritten in place by refreshPerVertex/
	// refreshPerInstance rather than allocated per call.
	vsInput shader.PtrTable
	// vsClip and vsBuiltin back the vertex shader's builtin
	// argument; fsFragCoord and fsBuiltin back the fragment
	// shader's.
	vsClip      linear.V4
	vsBuiltin   unsafe.Pointer
	fsFragCoord linear.V3
	fsBuiltin   unsafe.Pointer

	// Logger is set to log.Default(). New writes its warnings for a
	// declared-but-unimplemented mode through it before returning, so
	// those always go to log.Default(); Draw/DrawIndexed write their
	// degenerate-count warning through it, so overriding it captures
	// or silences those. It is never written to from the per-fragment
	// rasterization loop.
	Logger *log.Logger
}

// New plans and constructs a Pipeline from info. All of the work
// described in spec §4.5 happens here; Draw/DrawIndexed never
// allocate.
func New(info CreateInfo) (*Pipeline, error) {
	vip, err := planVertexInput(info.Bindings, info.Attributes)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	is, err := planInterstage(info.VertexShader.Vars.Outputs, info.FragmentShader.Vars.Outputs)
	if err != nil {
		return nil, fmt.Errorf("pipeline: planning interstage layout: %w", err)
	}

	sub := info.Pass.Subpass(info.Subpass)
	fragOut, err := planFragmentOutputs(info.FragmentShader.Vars.Outputs, sub, info.Pass)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	fragIn := planFragmentInputs(info.FragmentShader.Vars.Inputs)

	var clipBufs [6]*alignbuf.Buffer
	vsSize := int(is.vsLayout.size)
	if vsSize == 0 {
		vsSize = 1
	}
	clipSize := vsSize * maxClipVerts
	for i := range clipBufs {
		buf, err := alignbuf.New(clipSize, uintptr(is.vsLayout.align))
		if err != nil {
			return nil, fmt.Errorf("pipeline: allocating clip scratch: %w", ErrOutOfMemory)
		}
		clipBufs[i] = buf
	}

	p := &Pipeline{
		vs:          info.VertexShader,
		fs:          info.FragmentShader,
		vertexInput: vip,
		interstage:  is,
		fragIn:      fragIn,
		fragOut:     fragOut,
		topology:    info.Topology,
		viewport:    info.Viewport,
		cullMode:    info.CullMode,
		polygonMode: info.PolygonMode,
		pass:        info.Pass,
		subpass:     info.Subpass,
		clipBufs:    clipBufs,
		Logger:      log.Default(),
	}

	if info.Topology == TLineStrip {
		p.Logger.Printf("pipeline: topology line_strip is declared but not implemented; Draw/DrawIndexed will fail with ErrUnsupportedTopology")
	}
	if info.PolygonMode == PolygonLine {
		p.Logger.Printf("pipeline: polygon_mode line is not implemented; rasterizing as fill")
	}

	return p, nil
}

// Destroy releases the pipeline's interstage heap block. A
// destroyed pipeline must not be used again.
func (p *Pipeline) Destroy() {
	if p == nil {
		return
	}
	*p = Pipeline{}
}
