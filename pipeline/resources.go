// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package pipeline

import "github.com/gviegas/raster/shader"

// Resources supplies the vertex buffers and descriptor set a Draw or
// DrawIndexed call reads from over the course of a single invocation.
//
// state.State is the only implementation; the interface exists so
// this package never imports state (state holds a *Pipeline and must
// therefore import pipeline, not the other way around).
type Resources interface {
	// VertexBuffer returns the raw bytes bound to binding. The
	// pipeline indexes into it at vertex/instance granularity per
	// its planned strides and offsets; it never bounds-checks the
	// result (spec §4.6.4: out-of-bounds indices are undefined
	// behavior).
	VertexBuffer(binding uint8) []byte
	// DescriptorSet returns the currently bound descriptor set's
	// location-indexed pointer table, passed to shaders as the
	// "uniform" ABI argument unchanged.
	DescriptorSet() *shader.PtrTable
}
