// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package pipeline implements the graphics-pipeline execution
// engine: the object built from a CreateInfo that owns precomputed
// vertex-input/shader-I/O layout metadata and a single heap-
// allocated interstage buffer, and exposes Draw/DrawIndexed.
//
// Construction (New) performs all planning: partitioning vertex
// attributes by input rate, laying out the interstage block, and
// binding fragment outputs to their target attachments. Between
// draws the engine never allocates.
package pipeline

import (
	"github.com/gviegas/raster/attachment"
	"github.com/gviegas/raster/format"
	"github.com/gviegas/raster/shader"
)

// Topology selects how vertex data is assembled into primitives.
type Topology int

// Supported topologies. TLineStrip is accepted by CreateInfo but
// fails at draw time with ErrUnsupportedTopology (spec §4.6, open
// question OQ-3): it is declared, not implemented.
const (
	TTriangleList Topology = iota
	TTriangleStrip
	TLineStrip
)

// CullMode selects which triangle facing direction, if any, is
// discarded before rasterization.
type CullMode int

// Cull modes. Front face is defined as negative screen-space signed
// area (spec §4.6.2 step 2); this is not configurable per pipeline,
// only whether culling happens at all and which side is removed.
const (
	CullNone CullMode = iota
	CullBack
	CullFront
)

// PolygonMode selects the fill style of rasterized triangles.
// Only PolygonFill is implemented; PolygonLine is carried for
// forward-compatibility with a wireframe mode but is currently
// treated the same as PolygonFill.
type PolygonMode int

const (
	PolygonFill PolygonMode = iota
	PolygonLine
)

// InputRate determines whether a vertex binding advances once per
// vertex or once per instance.
type InputRate int

const (
	PerVertex InputRate = iota
	PerInstance
)

// Viewport defines the pixel-space transform applied to clip-space
// coordinates after perspective division. X and Y are accepted for
// parity with the create-info this engine's ancestor took but are
// not applied by spec §4.6.2 step 1's viewport formula, which maps
// directly into [0,Width)x[0,Height); only Width and Height affect
// rasterization.
type Viewport struct {
	X, Y, Width, Height float32
}

// VertexBinding describes one vertex-buffer binding slot: its
// stride (bytes between consecutive elements) and whether it
// advances per vertex or per instance.
type VertexBinding struct {
	Binding   uint8
	Stride    uint32
	InputRate InputRate
}

// VertexAttribute describes a single vertex-shader input: which
// binding it is fetched from, at what byte offset within that
// binding's stride, and what format the data is stored in.
type VertexAttribute struct {
	Location uint8
	Binding  uint8
	Format   format.Format
	Offset   uint32
}

// CreateInfo holds everything needed to construct a Pipeline.
type CreateInfo struct {
	VertexShader   *shader.Module
	FragmentShader *shader.Module
	Bindings       []VertexBinding
	Attributes     []VertexAttribute
	Topology       Topology
	Viewport       Viewport
	CullMode       CullMode
	PolygonMode    PolygonMode
	Pass           *attachment.RenderPass
	Subpass        int
}
