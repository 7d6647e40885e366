// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package pipeline

import (
	"unsafe"

	"github.com/gviegas/raster/attachment"
	"github.com/gviegas/raster/linear"
	"github.com/gviegas/raster/shader"
)

// refreshPerInstance updates the vertex-shader input pointers for
// every attribute fetched at per-instance rate (spec §4.6.1 step 1).
func (p *Pipeline) refreshPerInstance(res Resources, instance int) {
	for _, a := range p.vertexInput.perInstance {
		buf := res.VertexBuffer(a.binding)
		off := instance*int(a.stride) + int(a.offset)
		p.vsInput[a.location] = unsafe.Pointer(&buf[off])
	}
}

// refreshPerVertex updates the vertex-shader input pointers for
// every attribute fetched at per-vertex rate.
func (p *Pipeline) refreshPerVertex(res Resources, vertex int) {
	for _, a := range p.vertexInput.perVertex {
		buf := res.VertexBuffer(a.binding)
		off := vertex*int(a.stride) + int(a.offset)
		p.vsInput[a.location] = unsafe.Pointer(&buf[off])
	}
}

// invokeVertex runs the vertex shader, writing its outputs into the
// rolling triangle slot k and returning the clip-space position it
// wrote to the builtin argument.
func (p *Pipeline) invokeVertex(uniform *shader.PtrTable, k int) linear.V4 {
	p.vsBuiltin = unsafe.Pointer(&p.vsClip)
	p.vs.Entry(uniform, &p.vsInput, p.interstage.outputPtr(k), &p.vsBuiltin)
	return p.vsClip
}

// clipAndRasterize runs the shared tail of both triangle topologies:
// clip the triangle named by clip/base, fan-triangulate the result,
// and rasterize each resulting subtriangle (spec §4.6.1 steps 3b-3c).
func (p *Pipeline) clipAndRasterize(fb attachment.FrameBuffer, sub attachment.Subpass, uniform *shader.PtrTable, clip [3]linear.V4, base [3]unsafe.Pointer) {
	poly := p.clipTriangle(clip[0], clip[1], clip[2], base[0], base[1], base[2])
	for i := 1; i+1 < poly.n; i++ {
		c := [3]linear.V4{poly.pos[0], poly.pos[i], poly.pos[i+1]}
		b := [3]unsafe.Pointer{poly.base[0], poly.base[i], poly.base[i+1]}
		p.rasterizeTriangle(fb, sub, uniform, c, b)
	}
}

// drawTriangleList implements spec §4.6.1 for TTriangleList: every
// consecutive run of three vertices is an independent triangle.
func (p *Pipeline) drawTriangleList(res Resources, fb attachment.FrameBuffer, sub attachment.Subpass, uniform *shader.PtrTable, vertexCount, instanceCount, firstVertex, firstInstance int) {
	if vertexCount < 3 {
		p.Logger.Printf("pipeline: degenerate draw: vertex_count %d < 3, nothing rasterized", vertexCount)
		return
	}
	base := [3]unsafe.Pointer{p.interstage.vsBase(0), p.interstage.vsBase(1), p.interstage.vsBase(2)}
	for inst := firstInstance; inst < firstInstance+instanceCount; inst++ {
		p.refreshPerInstance(res, inst)
		for t := 0; t+3 <= vertexCount; t += 3 {
			var clip [3]linear.V4
			for k := 0; k < 3; k++ {
				p.refreshPerVertex(res, firstVertex+t+k)
				clip[k] = p.invokeVertex(uniform, k)
			}
			p.clipAndRasterize(fb, sub, uniform, clip, base)
		}
	}
}

// drawTriangleStrip implements spec §4.6.1/§4.6.3's rolling-triangle
// reuse for TTriangleStrip: the three output slots are fixed
// physical positions; each new vertex overwrites the slot written
// three vertices earlier, and every triangle is rasterized by
// reading the slots in their current physical order (0,1,2),
// whatever logical vertices currently occupy them. This matches the
// reference draw loop's role-counter ("ping_pong") approach: winding
// alternates naturally because the physical slot meaning rotates,
// not because the engine tracks and reorders by logical vertex index.
func (p *Pipeline) drawTriangleStrip(res Resources, fb attachment.FrameBuffer, sub attachment.Subpass, uniform *shader.PtrTable, vertexCount, instanceCount, firstVertex, firstInstance int) {
	if vertexCount < 3 {
		p.Logger.Printf("pipeline: degenerate draw: vertex_count %d < 3, nothing rasterized", vertexCount)
		return
	}
	for inst := firstInstance; inst < firstInstance+instanceCount; inst++ {
		p.refreshPerInstance(res, inst)

		var clip [3]linear.V4
		for k := 0; k < 3; k++ {
			p.refreshPerVertex(res, firstVertex+k)
			clip[k] = p.invokeVertex(uniform, k)
		}
		base := [3]unsafe.Pointer{p.interstage.vsBase(0), p.interstage.vsBase(1), p.interstage.vsBase(2)}
		p.clipAndRasterize(fb, sub, uniform, clip, base)

		role := 0
		for i := 3; i < vertexCount; i++ {
			p.refreshPerVertex(res, firstVertex+i)
			clip[role] = p.invokeVertex(uniform, role)
			p.clipAndRasterize(fb, sub, uniform, clip, base)
			role = (role + 1) % 3
		}
	}
}

// drawTriangleListIndexed is drawTriangleList, fetching vertex
// ordinals through idx rather than a literal contiguous range.
func (p *Pipeline) drawTriangleListIndexed(res Resources, fb attachment.FrameBuffer, sub attachment.Subpass, uniform *shader.PtrTable, idx *indexedVertices, indexCount, instanceCount, firstInstance int) {
	if indexCount < 3 {
		p.Logger.Printf("pipeline: degenerate draw: index_count %d < 3, nothing rasterized", indexCount)
		return
	}
	base := [3]unsafe.Pointer{p.interstage.vsBase(0), p.interstage.vsBase(1), p.interstage.vsBase(2)}
	for inst := firstInstance; inst < firstInstance+instanceCount; inst++ {
		p.refreshPerInstance(res, inst)
		for t := 0; t+3 <= indexCount; t += 3 {
			var clip [3]linear.V4
			for k := 0; k < 3; k++ {
				p.refreshPerVertex(res, idx.at(t+k))
				clip[k] = p.invokeVertex(uniform, k)
			}
			p.clipAndRasterize(fb, sub, uniform, clip, base)
		}
	}
}

// drawTriangleStripIndexed is drawTriangleStrip, fetching vertex
// ordinals through idx rather than a literal contiguous range.
func (p *Pipeline) drawTriangleStripIndexed(res Resources, fb attachment.FrameBuffer, sub attachment.Subpass, uniform *shader.PtrTable, idx *indexedVertices, indexCount, instanceCount, firstInstance int) {
	if indexCount < 3 {
		p.Logger.Printf("pipeline: degenerate draw: index_count %d < 3, nothing rasterized", indexCount)
		return
	}
	for inst := firstInstance; inst < firstInstance+instanceCount; inst++ {
		p.refreshPerInstance(res, inst)

		var clip [3]linear.V4
		for k := 0; k < 3; k++ {
			p.refreshPerVertex(res, idx.at(k))
			clip[k] = p.invokeVertex(uniform, k)
		}
		base := [3]unsafe.Pointer{p.interstage.vsBase(0), p.interstage.vsBase(1), p.interstage.vsBase(2)}
		p.clipAndRasterize(fb, sub, uniform, clip, base)

		role := 0
		for i := 3; i < indexCount; i++ {
			p.refreshPerVertex(res, idx.at(i))
			clip[role] = p.invokeVertex(uniform, role)
			p.clipAndRasterize(fb, sub, uniform, clip, base)
			role = (role + 1) % 3
		}
	}
}
