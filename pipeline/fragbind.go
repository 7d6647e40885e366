// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package pipeline

import (
	"github.com/gviegas/raster/attachment"
	"github.com/gviegas/raster/format"
	"github.com/gviegas/raster/shader"
)

// fragOutBinding records, for one fragment-shader output location,
// which color attachment (if any) it feeds and the converter from
// the shader's declared format to the attachment's on-disk format.
//
// stride == 0 means "do not write": either the output has no
// corresponding color attachment in the subpass, or the attachment's
// StoreOp is SDontCare (spec §4.6.2 step 9).
type fragOutBinding struct {
	bound        bool
	attachmentID uint8
	srcSize      uint32
	stride       int
	converter    format.Converter
}

// planFragmentOutputs binds each fragment-shader output location to
// the subpass's color attachment of the same index (spec §4.5 step
// 6: fragment output location N addresses subpass.Color[N]).
func planFragmentOutputs(fsOutputs []shader.Variable, sub attachment.Subpass, rp *attachment.RenderPass) (map[uint8]fragOutBinding, error) {
	bindings := make(map[uint8]fragOutBinding, len(fsOutputs))
	for _, v := range fsOutputs {
		if int(v.Location) >= len(sub.Color) {
			bindings[v.Location] = fragOutBinding{}
			continue
		}
		ref := sub.Color[v.Location]
		desc := rp.Attachment(ref.ID)
		conv := format.MatchConverter(v.Format, ref.Format)
		if conv == nil {
			return nil, ErrUnsupportedFormatConversion
		}
		stride := 0
		if desc.StoreOp == attachment.SStore {
			stride = format.Size(ref.Format)
		}
		bindings[v.Location] = fragOutBinding{
			bound:        true,
			attachmentID: ref.ID,
			srcSize:      v.Size,
			stride:       stride,
			converter:    conv,
		}
	}
	return bindings, nil
}

// fragInInterp pairs a fragment-shader input location, in
// declaration order, with the Interpolator that blends its three
// per-vertex source values (spec §4.5 step 5).
type fragInInterp struct {
	location uint8
	interp   shader.Interpolator
}

func planFragmentInputs(fsInputs []shader.Variable) []fragInInterp {
	out := make([]fragInInterp, len(fsInputs))
	for i, v := range fsInputs {
		interp := v.Interp
		if interp == nil {
			interp = shader.Lerp3
		}
		out[i] = fragInInterp{location: v.Location, interp: interp}
	}
	return out
}
