// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package state implements render-pass state: the thin bookkeeping
// layer that coordinates begin/next-subpass/end transitions, binds
// vertex buffers and descriptor sets, and delegates actual drawing
// to a pipeline.Pipeline. It owns no rasterization logic of its own
// (spec §4.4: "the state is pure value/coordinate bookkeeping").
package state

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"sync"
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/gviegas/raster/attachment"
	"github.com/gviegas/raster/format"
	"github.com/gviegas/raster/internal/bitvec"
	"github.com/gviegas/raster/pipeline"
	"github.com/gviegas/raster/shader"
)

// ErrRenderPassInProgress is returned by Begin while another State is
// live anywhere in the process (spec §5 "exclusive-session
// semantics").
var ErrRenderPassInProgress = errors.New("state: render pass in progress")

// session is the process-wide exclusion flag: only one State may be
// open at a time, mirroring the single-threaded, cooperative model
// spec §5 describes.
var session struct {
	mu   sync.Mutex
	open bool
}

// State is a render-pass session: a render pass and frame buffer
// pair, a current subpass cursor, and the 256-slot vertex-buffer and
// descriptor-set binding tables every draw call reads through.
type State struct {
	pass *attachment.RenderPass
	fb   attachment.FrameBuffer

	subpass int

	vertexBufs [256][]byte
	descSet    shader.PtrTable

	vbufBound bitvec.V[uint64]
	descBound bitvec.V[uint64]

	clearValues []attachment.ClearValue

	closed bool

	// Logger is set to log.Default(). Its only warning (fewer clear
	// values than attachments) is written inside Begin, before the
	// State is returned, so it always goes to log.Default().
	Logger *log.Logger
}

// Begin opens a new render-pass session over pass/fb, failing with
// ErrRenderPassInProgress if another session is already open
// anywhere in the process. clearValues is indexed by attachment id,
// matching pass's attachment array (spec §6 "render-pass begin-info").
//
// Begin applies every LClear/load-clear attachment of subpass 0
// immediately: spec §4.6 step 2 describes attachment load/clear as
// part of draw's pseudocode, but running it on every Draw call would
// erase prior draws within the same subpass, so this engine runs it
// once per subpass instead, here and in NextSubpass.
func Begin(pass *attachment.RenderPass, fb attachment.FrameBuffer, clearValues []attachment.ClearValue) (*State, error) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.open {
		return nil, ErrRenderPassInProgress
	}
	session.open = true

	s := &State{
		pass:        pass,
		fb:          fb,
		clearValues: clearValues,
		vbufBound:   bitvec.NewSlots[uint64](256),
		descBound:   bitvec.NewSlots[uint64](256),
		Logger:      log.Default(),
	}
	if pass != nil && len(clearValues) < pass.AttachmentCount() {
		s.Logger.Printf("state: clear_values has %d entries, fewer than the render pass's %d attachments; missing entries default to zero", len(clearValues), pass.AttachmentCount())
	}
	s.loadSubpass()
	return s, nil
}

// End closes the session, releasing the process-wide exclusion flag.
// A State must not be used again after End.
func (s *State) End() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	session.mu.Lock()
	session.open = false
	session.mu.Unlock()
}

// NextSubpass advances the current subpass and applies its
// attachment loads/clears.
func (s *State) NextSubpass() {
	s.subpass++
	s.loadSubpass()
}

// loadSubpass runs the attachment load step (spec §4.6 step 2) for
// the current subpass: LClear attachments are filled with their
// clear value, converted from the clear's float32 representation to
// the attachment's on-disk format.
func (s *State) loadSubpass() {
	if s.pass == nil || s.subpass >= s.pass.SubpassCount() {
		return
	}
	sub := s.pass.Subpass(s.subpass)
	w, h := s.fb.Width(), s.fb.Height()

	for _, ref := range sub.Color {
		desc := s.pass.Attachment(ref.ID)
		if desc.LoadOp != attachment.LClear {
			continue
		}
		cv := s.clearValue(ref.ID)
		srcFmt, src := clearSource(cv, ref.Format)
		conv := format.MatchConverter(srcFmt, ref.Format)
		attachment.Fill(s.fb.At(ref.ID), w, h, format.Size(ref.Format), conv, src)
	}
	if sub.Depth != nil {
		desc := s.pass.Attachment(sub.Depth.ID)
		// Per spec §9 open question OQ-2, StencilLoadOp is the field
		// that actually drives the depth attachment's clear.
		if desc.StencilLoadOp != attachment.LClear {
			return
		}
		cv := s.clearValue(sub.Depth.ID)
		conv := format.MatchConverter(format.R32F, sub.Depth.Format)
		attachment.Fill(s.fb.At(sub.Depth.ID), w, h, format.Size(sub.Depth.Format), conv, f32Bytes(cv.Depth))
	}
}

func (s *State) clearValue(id uint8) attachment.ClearValue {
	if int(id) < len(s.clearValues) {
		return s.clearValues[id]
	}
	return attachment.ClearValue{}
}

// clearSource returns the clear color as a 16-byte RGBA32 texel and
// the format to convert it from. RGBA32F is used whenever a
// converter from it to dst is registered (float formats, BGRA8U,
// RGBA8UN); otherwise the format's numeric class selects RGBA32U or
// RGBA32I, and the clear color's float32 bits are reinterpreted as
// uint32 or int32 channels rather than re-encoded.
func clearSource(cv attachment.ClearValue, dst format.Format) (format.Format, []byte) {
	srcFmt := format.RGBA32F
	if format.MatchConverter(srcFmt, dst) == nil {
		switch format.ClassOf(dst) {
		case format.ClassUint:
			srcFmt = format.RGBA32U
		case format.ClassSint:
			srcFmt = format.RGBA32I
		}
	}
	buf := make([]byte, 16)
	for i, c := range cv.Color {
		copy(buf[i*4:], f32Bytes(c))
	}
	return srcFmt, buf
}

func f32Bytes(f float32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math32.Float32bits(f))
	return b
}

// BindVertexBuffer records buf as the vertex buffer bound to binding
// (spec §4.4 "bind_vertex_buffer").
func (s *State) BindVertexBuffer(binding uint8, buf []byte) {
	s.vertexBufs[binding] = buf
	s.vbufBound.Set(int(binding))
}

// BindDescriptorSet records a pointer to the start of bytes as the
// descriptor bound to binding (spec §4.4 "bind_descriptor_set").
// bytes must outlive every Draw/DrawIndexed call made before the
// binding changes or the session ends.
func (s *State) BindDescriptorSet(binding uint8, bytes []byte) {
	var ptr unsafe.Pointer
	if len(bytes) > 0 {
		ptr = unsafe.Pointer(&bytes[0])
	}
	s.descSet[binding] = ptr
	s.descBound.Set(int(binding))
}

// IsVertexBufferBound reports whether a buffer has been bound to
// binding since the session began.
func (s *State) IsVertexBufferBound(binding uint8) bool { return s.vbufBound.IsSet(int(binding)) }

// IsDescriptorSetBound reports whether a descriptor has been bound to
// binding since the session began.
func (s *State) IsDescriptorSetBound(binding uint8) bool { return s.descBound.IsSet(int(binding)) }

// VertexBuffer implements pipeline.Resources.
func (s *State) VertexBuffer(binding uint8) []byte { return s.vertexBufs[binding] }

// DescriptorSet implements pipeline.Resources.
func (s *State) DescriptorSet() *shader.PtrTable { return &s.descSet }

// Draw delegates to p.Draw (spec §4.4 "draw").
func (s *State) Draw(p *pipeline.Pipeline, vertexCount, instanceCount, firstVertex, firstInstance int) error {
	if err := p.Draw(s, s.fb, vertexCount, instanceCount, firstVertex, firstInstance); err != nil {
		return fmt.Errorf("state: %w", err)
	}
	return nil
}

// DrawIndexed delegates to p.DrawIndexed (spec §4.4 "draw_indexed").
func (s *State) DrawIndexed(p *pipeline.Pipeline, indices []uint32, indexCount, instanceCount, firstIndex, vertexOffset, firstInstance int) error {
	if err := p.DrawIndexed(s, s.fb, indices, indexCount, instanceCount, firstIndex, vertexOffset, firstInstance); err != nil {
		return fmt.Errorf("state: %w", err)
	}
	return nil
}
