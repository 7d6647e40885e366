// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package attachment

// FrameBuffer is a non-owning array of attachment pointers sized to
// a given width and height. It owns the pointer array itself, never
// the pixel memory it points into.
//
// The zero value is a valid 0x0, 0-attachment frame buffer.
type FrameBuffer struct {
	width, height int
	attachments   [][]byte
}

// NewFrameBuffer returns a FrameBuffer of the given extent, backed
// by atts. Each atts[i] must point to at least
// width*height*format.Size(fmt) contiguous bytes, where fmt is the
// format of whichever attachment reference addresses slot i (the
// frame buffer itself carries no format information; that lives on
// the render pass' attachment descriptions and the pipeline's
// fragment-output bindings).
//
// atts is copied (the pointer slice, not the underlying pixel
// memory) so that the caller may reuse or discard its own slice
// afterwards; copying a FrameBuffer value duplicates this same
// pointer array, never the pixels.
func NewFrameBuffer(width, height int, atts [][]byte) FrameBuffer {
	cp := make([][]byte, len(atts))
	copy(cp, atts)
	return FrameBuffer{width: width, height: height, attachments: cp}
}

// Width returns the frame buffer's width in pixels.
func (fb FrameBuffer) Width() int { return fb.width }

// Height returns the frame buffer's height in pixels.
func (fb FrameBuffer) Height() int { return fb.height }

// AttachmentCount returns the number of attachment slots.
func (fb FrameBuffer) AttachmentCount() int { return len(fb.attachments) }

// At returns the backing bytes for attachment id.
func (fb FrameBuffer) At(id uint8) []byte { return fb.attachments[id] }
