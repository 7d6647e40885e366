// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package attachment

import "github.com/gviegas/raster/format"

// ClearValue carries the clear value for one attachment. Which
// union member is meaningful is dictated by the attachment's
// numeric class (format.ClassOf): Color for color attachments,
// Depth for the depth/stencil attachment.
type ClearValue struct {
	// Color holds float32 channels for every format that has an
	// RGBA32F converter (float formats, BGRA8U, RGBA8UN); for the
	// other ClassUint/ClassSint formats its bits are read as uint32
	// or int32 channels.
	Color [4]float32
	Depth float32
}

// Fill overwrites every texel of a width*height attachment (texSize
// bytes each) with the conv-converted clear value src.
func Fill(dst []byte, width, height, texSize int, conv format.Converter, src []byte) {
	if width == 0 || height == 0 || conv == nil {
		return
	}
	conv(src, dst[:texSize])
	texel := dst[:texSize]
	for off := texSize; off < width*height*texSize; off += texSize {
		copy(dst[off:off+texSize], texel)
	}
}
