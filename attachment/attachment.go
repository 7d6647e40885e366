// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package attachment implements the render pass and frame buffer
// layer: the description of which pixel attachments exist, how
// subpasses use them, and the non-owning pointers to their backing
// memory.
package attachment

import (
	"errors"
	"fmt"

	"github.com/gviegas/raster/format"
	"github.com/jinzhu/copier"
)

// LoadOp is the type of an attachment's load operation.
type LoadOp int

// Load operations.
const (
	LLoad LoadOp = iota
	LClear
	LDontCare
)

// StoreOp is the type of an attachment's store operation.
type StoreOp int

// Store operations.
const (
	SStore StoreOp = iota
	SDontCare
)

// Description describes the configuration of a single attachment,
// shared across every subpass that references it.
//
// StencilLoadOp/StencilStoreOp are named after the source spec's
// fields of the same name; per spec §9 (open question OQ-2) they in
// fact drive the depth clear/store of the depth/stencil attachment,
// not the stencil aspect, which this engine never evaluates (spec
// §1 Non-goals). The naming is kept as-is rather than "corrected" to
// DepthLoadOp/DepthStoreOp, since the spec explicitly declines to
// resolve which name is the typo.
type Description struct {
	LoadOp         LoadOp
	StoreOp        StoreOp
	StencilLoadOp  LoadOp
	StencilStoreOp StoreOp
}

// Ref is an attachment reference: a subpass names attachments by
// index into the frame buffer's/render pass' attachment array.
type Ref struct {
	ID     uint8
	Format format.Format
}

// Subpass describes one coherent step of a render pass, selecting a
// subset of the render pass' attachments for input, color output and
// an optional depth/stencil target.
type Subpass struct {
	Input []Ref
	Color []Ref
	Depth *Ref
}

// Dependency is accepted by CreateInfo but not yet evaluated: no
// cross-subpass barrier logic is implemented (spec §4.2).
type Dependency struct {
	Src, Dst int
}

// CreateInfo holds the parameters used to construct a RenderPass.
// The caller's slices may be ephemeral: RenderPass construction
// performs deep, independent copies of every referenced array.
type CreateInfo struct {
	Attachments  []Description
	Subpasses    []Subpass
	Dependencies []Dependency
}

// ErrInvalidAttachmentReference is returned by NewRenderPass when a
// subpass references an attachment ID >= len(Attachments).
var ErrInvalidAttachmentReference = errors.New("attachment: invalid attachment reference")

// RenderPass owns independent, deep copies of its attachment and
// subpass description arrays. It is immutable after construction.
type RenderPass struct {
	attachments  []Description
	subpasses    []Subpass
	dependencies []Dependency
}

// NewRenderPass constructs a RenderPass from info, deep-copying
// every array info references so that the caller's arrays may be
// reused or discarded immediately after this call returns.
//
// Deep-copying uses copier.CopyWithOption instead of a hand-rolled
// walk over info.Subpasses, since Subpass.Color/Input are themselves
// slices the shallow Go assignment `dst = src` would alias.
func NewRenderPass(info CreateInfo) (*RenderPass, error) {
	rp := &RenderPass{}
	if err := copier.CopyWithOption(&rp.attachments, info.Attachments, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("attachment: copying attachment descriptions: %w", err)
	}
	if err := copier.CopyWithOption(&rp.subpasses, info.Subpasses, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("attachment: copying subpass descriptions: %w", err)
	}
	if err := copier.CopyWithOption(&rp.dependencies, info.Dependencies, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("attachment: copying dependencies: %w", err)
	}

	n := len(rp.attachments)
	for i := range rp.subpasses {
		s := &rp.subpasses[i]
		for _, r := range s.Input {
			if int(r.ID) >= n {
				return nil, fmt.Errorf("%w: subpass %d input %d", ErrInvalidAttachmentReference, i, r.ID)
			}
		}
		for _, r := range s.Color {
			if int(r.ID) >= n {
				return nil, fmt.Errorf("%w: subpass %d color %d", ErrInvalidAttachmentReference, i, r.ID)
			}
		}
		if s.Depth != nil && int(s.Depth.ID) >= n {
			return nil, fmt.Errorf("%w: subpass %d depth %d", ErrInvalidAttachmentReference, i, s.Depth.ID)
		}
	}
	return rp, nil
}

// AttachmentCount returns the number of attachments the render pass
// was created with.
func (rp *RenderPass) AttachmentCount() int { return len(rp.attachments) }

// Attachment returns the description of the attachment at id.
func (rp *RenderPass) Attachment(id uint8) Description { return rp.attachments[id] }

// SubpassCount returns the number of subpasses.
func (rp *RenderPass) SubpassCount() int { return len(rp.subpasses) }

// Subpass returns the description of the subpass at index i.
func (rp *RenderPass) Subpass(i int) Subpass { return rp.subpasses[i] }
