// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package format

import (
	"encoding/binary"

	"github.com/chewxy/math32"
)

// Converter converts a single texel from one format to another.
// src and dst must each contain exactly Size(srcFmt)/Size(dstFmt)
// bytes for the pair of formats this Converter was matched for.
type Converter func(src, dst []byte)

// key identifies an (src, dst) format pair in the converter table.
type key struct{ src, dst Format }

var converters map[key]Converter

func init() {
	converters = map[key]Converter{
		{RGB32F, BGRA8U}:   convRGB32FtoBGRA8U,
		{RGBA32F, BGRA8U}:  convRGBA32FtoBGRA8U,
		{RGBA32U, BGRA8U}:  convRGBA32UtoBGRA8U,
		{RGBA32I, BGRA8U}:  convRGBA32ItoBGRA8U,
		{RGBA32F, RGBA8UN}: convRGBA32FtoRGBA8UN,
		{R32F, R32F}:       convIdentity(Size(R32F)),
	}
	// Identity conversion within the same format, for every known
	// format, unless a more specific converter was registered above.
	for f := range table {
		k := key{f, f}
		if _, ok := converters[k]; !ok {
			converters[k] = convIdentity(Size(f))
		}
	}
}

// MatchConverter returns the Converter for the (src, dst) format
// pair, or nil if no such conversion is supported.
func MatchConverter(src, dst Format) Converter {
	return converters[key{src, dst}]
}

func convIdentity(n int) Converter {
	return func(src, dst []byte) { copy(dst[:n], src[:n]) }
}

func clamp01x255(f float32) byte {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	default:
		return byte(math32.Round(f * 255))
	}
}

func readF32(b []byte, i int) float32 {
	return math32.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
}

func convRGB32FtoBGRA8U(src, dst []byte) {
	r := clamp01x255(readF32(src, 0))
	g := clamp01x255(readF32(src, 1))
	b := clamp01x255(readF32(src, 2))
	dst[0], dst[1], dst[2], dst[3] = b, g, r, 0
}

func convRGBA32FtoBGRA8U(src, dst []byte) {
	r := clamp01x255(readF32(src, 0))
	g := clamp01x255(readF32(src, 1))
	b := clamp01x255(readF32(src, 2))
	a := clamp01x255(readF32(src, 3))
	dst[0], dst[1], dst[2], dst[3] = b, g, r, a
}

func convRGBA32FtoRGBA8UN(src, dst []byte) {
	r := clamp01x255(readF32(src, 0))
	g := clamp01x255(readF32(src, 1))
	b := clamp01x255(readF32(src, 2))
	a := clamp01x255(readF32(src, 3))
	dst[0], dst[1], dst[2], dst[3] = r, g, b, a
}

func convRGBA32UtoBGRA8U(src, dst []byte) {
	r := byte(binary.LittleEndian.Uint32(src[0:4]))
	g := byte(binary.LittleEndian.Uint32(src[4:8]))
	b := byte(binary.LittleEndian.Uint32(src[8:12]))
	a := byte(binary.LittleEndian.Uint32(src[12:16]))
	dst[0], dst[1], dst[2], dst[3] = b, g, r, a
}

func convRGBA32ItoBGRA8U(src, dst []byte) {
	r := byte(int32(binary.LittleEndian.Uint32(src[0:4])))
	g := byte(int32(binary.LittleEndian.Uint32(src[4:8])))
	b := byte(int32(binary.LittleEndian.Uint32(src[8:12])))
	a := byte(int32(binary.LittleEndian.Uint32(src[12:16])))
	dst[0], dst[1], dst[2], dst[3] = b, g, r, a
}
