// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package attachment

import (
	"encoding/binary"
	"testing"

	"github.com/chewxy/math32"
	"github.com/gviegas/raster/format"
)

func TestFill(t *testing.T) {
	const w, h = 2, 3
	texSize := format.Size(format.BGRA8U)
	dst := make([]byte, w*h*texSize)

	src := make([]byte, format.Size(format.RGBA32F))
	for i, v := range [4]float32{1, 0, 0, 1} {
		binary.LittleEndian.PutUint32(src[i*4:], math32.Float32bits(v))
	}
	conv := format.MatchConverter(format.RGBA32F, format.BGRA8U)

	Fill(dst, w, h, texSize, conv, src)

	want := []byte{0, 0, 255, 255}
	for texel := 0; texel < w*h; texel++ {
		off := texel * texSize
		for i, b := range want {
			if dst[off+i] != b {
				t.Fatalf("Fill: texel %d byte %d:\nhave %d\nwant %d", texel, i, dst[off+i], b)
			}
		}
	}
}

func TestFillZeroExtent(t *testing.T) {
	dst := make([]byte, 16)
	orig := make([]byte, 16)
	copy(orig, dst)
	conv := format.MatchConverter(format.RGBA32F, format.BGRA8U)
	src := make([]byte, format.Size(format.RGBA32F))

	Fill(dst, 0, 4, 4, conv, src)
	Fill(dst, 4, 0, 4, conv, src)
	Fill(dst, 4, 4, 4, nil, src)

	for i := range dst {
		if dst[i] != orig[i] {
			t.Fatalf("Fill with zero extent/nil converter: byte %d mutated", i)
		}
	}
}
