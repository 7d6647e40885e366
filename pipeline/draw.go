// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package pipeline

import "github.com/gviegas/raster/attachment"

// Draw assembles vertex_count non-indexed vertices starting at
// first_vertex, across instance_count instances starting at
// first_instance, and rasterizes the resulting primitives into fb
// (spec §4.6). res supplies the bound vertex buffers and descriptor
// set; attachment load/clear is the caller's responsibility (see
// state.Begin/state.NextSubpass), not this call's.
func (p *Pipeline) Draw(res Resources, fb attachment.FrameBuffer, vertexCount, instanceCount, firstVertex, firstInstance int) error {
	if fb.Width() == 0 || fb.Height() == 0 {
		return nil
	}
	uniform := res.DescriptorSet()
	sub := p.pass.Subpass(p.subpass)
	switch p.topology {
	case TTriangleList:
		p.drawTriangleList(res, fb, sub, uniform, vertexCount, instanceCount, firstVertex, firstInstance)
	case TTriangleStrip:
		p.drawTriangleStrip(res, fb, sub, uniform, vertexCount, instanceCount, firstVertex, firstInstance)
	default:
		return ErrUnsupportedTopology
	}
	return nil
}

// DrawIndexed is symmetric with Draw, except the sequence of vertex
// indices used is indices[firstIndex:firstIndex+indexCount], each
// offset by vertexOffset, rather than the literal range
// [firstVertex, firstVertex+vertexCount) (spec §4.4 "draw_indexed").
func (p *Pipeline) DrawIndexed(res Resources, fb attachment.FrameBuffer, indices []uint32, indexCount, instanceCount, firstIndex, vertexOffset, firstInstance int) error {
	if fb.Width() == 0 || fb.Height() == 0 {
		return nil
	}
	uniform := res.DescriptorSet()
	sub := p.pass.Subpass(p.subpass)
	idx := &indexedVertices{indices: indices, firstIndex: firstIndex, vertexOffset: vertexOffset}
	switch p.topology {
	case TTriangleList:
		p.drawTriangleListIndexed(res, fb, sub, uniform, idx, indexCount, instanceCount, firstInstance)
	case TTriangleStrip:
		p.drawTriangleStripIndexed(res, fb, sub, uniform, idx, indexCount, instanceCount, firstInstance)
	default:
		return ErrUnsupportedTopology
	}
	return nil
}

// indexedVertices maps a draw-local vertex ordinal to the actual
// vertex index fetched from the bound vertex buffers.
type indexedVertices struct {
	indices      []uint32
	firstIndex   int
	vertexOffset int
}

func (iv *indexedVertices) at(ordinal int) int {
	return int(iv.indices[iv.firstIndex+ordinal]) + iv.vertexOffset
}
