// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package pipeline

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/gviegas/raster/format"
	"github.com/gviegas/raster/linear"
	"github.com/gviegas/raster/shader"
)

func TestMin3Max3(t *testing.T) {
	if v := min3(3, 1, 2); v != 1 {
		t.Fatalf("min3(3,1,2):\nhave %v\nwant 1", v)
	}
	if v := max3(3, 1, 2); v != 3 {
		t.Fatalf("max3(3,1,2):\nhave %v\nwant 3", v)
	}
}

func TestFloorMin3Max3(t *testing.T) {
	if v := floorMin3(1.9, 2.9, 0.5); v != 0 {
		t.Fatalf("floorMin3:\nhave %d\nwant 0", v)
	}
	if v := floorMax3(1.9, 2.9, 0.5); v != 2 {
		t.Fatalf("floorMax3:\nhave %d\nwant 2", v)
	}
}

func TestClampInt(t *testing.T) {
	cases := map[string]struct {
		v, lo, hi, want int
	}{
		"below": {-1, 0, 10, 0},
		"above": {11, 0, 10, 10},
		"in":    {5, 0, 10, 5},
	}
	for name, c := range cases {
		if v := clampInt(c.v, c.lo, c.hi); v != c.want {
			t.Errorf("%s: clampInt(%d,%d,%d):\nhave %d\nwant %d", name, c.v, c.lo, c.hi, v, c.want)
		}
	}
}

// testVertexShaderDepthFromValue writes value straight to clip.z, so
// a test can pick each triangle's depth by choosing its per-vertex
// value, and reads that same value back as the shaded color to tell
// which triangle's fragment actually won the depth test.
func testVertexShaderDepthFromValue() *shader.Module {
	return &shader.Module{
		Vars: shader.IO{
			Outputs: []shader.Variable{
				{Location: testVaryingLocation, Format: format.R32F, Size: 4, Align: 4},
			},
		},
		Entry: func(uniform, input, output *shader.PtrTable, builtin *unsafe.Pointer) {
			pos := (*[2]float32)(input[0])
			value := (*float32)(input[1])
			*(*float32)(output[testVaryingLocation]) = *value
			clip := (*linear.V4)(*builtin)
			*clip = linear.V4{pos[0], pos[1], *value, 1}
		},
	}
}

func depthTestCreateInfo(t *testing.T) CreateInfo {
	t.Helper()
	pass, err := newTestRenderPass(true)
	if err != nil {
		t.Fatalf("newTestRenderPass: %v", err)
	}
	return CreateInfo{
		VertexShader:   testVertexShaderDepthFromValue(),
		FragmentShader: testFragmentShader(),
		Bindings:       []VertexBinding{{Binding: 0, Stride: uint32(unsafe.Sizeof(testVertex{})), InputRate: PerVertex}},
		Attributes: []VertexAttribute{
			{Location: 0, Binding: 0, Format: format.RGB32F, Offset: 0},
			{Location: 1, Binding: 0, Format: format.R32F, Offset: 8},
		},
		Topology: TTriangleList,
		Viewport: Viewport{Width: 4, Height: 4},
		CullMode: CullNone,
		Pass:     pass,
		Subpass:  0,
	}
}

func triangleAtDepth(z float32) [3]testVertex {
	return [3]testVertex{
		{pos: [2]float32{-1, -1}, value: z},
		{pos: [2]float32{1, -1}, value: z},
		{pos: [2]float32{-1, 1}, value: z},
	}
}

func TestRasterizeTriangleDepthTest(t *testing.T) {
	p, err := New(depthTestCreateInfo(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	fb := newTestFramebuffer(4, 4, true)
	res := &fakeResources{}

	// Depth-cleared to the far plane (1.0): a triangle at z=0.2 must
	// pass and paint the covered pixel.
	res.vbufs[0] = vertexBufferBytes(triangleAtDepth(0.2)[:])
	if err := p.Draw(res, fb, 3, 1, 0, 0); err != nil {
		t.Fatalf("Draw (z=0.2): %v", err)
	}
	if v := readF32Texel(fb.At(0), 0); math.Abs(float64(v-0.2)) > 1e-6 {
		t.Fatalf("color after z=0.2 draw:\nhave %v\nwant 0.2", v)
	}

	// A farther triangle (z=0.8) drawn over it must fail the depth
	// test and leave the pixel untouched.
	res.vbufs[0] = vertexBufferBytes(triangleAtDepth(0.8)[:])
	if err := p.Draw(res, fb, 3, 1, 0, 0); err != nil {
		t.Fatalf("Draw (z=0.8): %v", err)
	}
	if v := readF32Texel(fb.At(0), 0); math.Abs(float64(v-0.2)) > 1e-6 {
		t.Fatalf("color after z=0.8 draw:\nhave %v\nwant 0.2 (farther triangle must be discarded)", v)
	}

	// A nearer triangle (z=0.05) must pass and overwrite both color
	// and stored depth.
	res.vbufs[0] = vertexBufferBytes(triangleAtDepth(0.05)[:])
	if err := p.Draw(res, fb, 3, 1, 0, 0); err != nil {
		t.Fatalf("Draw (z=0.05): %v", err)
	}
	if v := readF32Texel(fb.At(0), 0); math.Abs(float64(v-0.05)) > 1e-6 {
		t.Fatalf("color after z=0.05 draw:\nhave %v\nwant 0.05", v)
	}
}

type testVertexWBuf struct {
	pos   [2]float32
	value float32
	w     float32
}

func vertexWBufferBytes(vs []testVertexWBuf) []byte {
	buf := make([]byte, len(vs)*int(unsafe.Sizeof(testVertexWBuf{})))
	for i, v := range vs {
		off := i * int(unsafe.Sizeof(testVertexWBuf{}))
		binary.LittleEndian.PutUint32(buf[off:], math32.Float32bits(v.pos[0]))
		binary.LittleEndian.PutUint32(buf[off+4:], math32.Float32bits(v.pos[1]))
		binary.LittleEndian.PutUint32(buf[off+8:], math32.Float32bits(v.value))
		binary.LittleEndian.PutUint32(buf[off+12:], math32.Float32bits(v.w))
	}
	return buf
}

func perspectiveCreateInfo(t *testing.T) CreateInfo {
	t.Helper()
	pass, err := newTestRenderPass(false)
	if err != nil {
		t.Fatalf("newTestRenderPass: %v", err)
	}
	return CreateInfo{
		VertexShader:   testVertexShaderVaryingW(),
		FragmentShader: testFragmentShader(),
		Bindings:       []VertexBinding{{Binding: 0, Stride: uint32(unsafe.Sizeof(testVertexWBuf{})), InputRate: PerVertex}},
		Attributes: []VertexAttribute{
			{Location: 0, Binding: 0, Format: format.RGB32F, Offset: 0},
			{Location: 1, Binding: 0, Format: format.R32F, Offset: 8},
			{Location: 2, Binding: 0, Format: format.R32F, Offset: 12},
		},
		Topology: TTriangleList,
		Viewport: Viewport{Width: 4, Height: 4},
		CullMode: CullNone,
		Pass:     pass,
		Subpass:  0,
	}
}

// TestRasterizePerspectiveCorrectInterpolation exercises a triangle
// whose screen footprint is identical to lowerLeftTriangle's (pos.x,
// pos.y map to the same screen coordinates regardless of w, since
// testVertexShaderVaryingW scales clip.xyz by w and the perspective
// divide cancels it back out) but whose vertices carry different w,
// so naive affine interpolation of the varying would disagree with
// the perspective-correct result.
func TestRasterizePerspectiveCorrectInterpolation(t *testing.T) {
	p, err := New(perspectiveCreateInfo(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	fb := newTestFramebuffer(4, 4, false)
	res := &fakeResources{}
	res.vbufs[0] = vertexWBufferBytes([]testVertexWBuf{
		{pos: [2]float32{-1, -1}, value: 0, w: 1},
		{pos: [2]float32{1, -1}, value: 0, w: 1},
		{pos: [2]float32{-1, 1}, value: 10, w: 2},
	})

	if err := p.Draw(res, fb, 3, 1, 0, 0); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	// Pixel (0,0): u=v=0.125, pw=0.75 in screen space; with
	// iw=(1,1,0.5) the perspective-correct weight on v2 works out to
	// 1/15, giving value = 10/15 ≈ 0.6667. Naive affine interpolation
	// (weight v*10 = 1.25) would fail this check.
	got := readF32Texel(fb.At(0), 0)
	want := float32(10.0 / 15.0)
	if math.Abs(float64(got-want)) > 1e-3 {
		t.Fatalf("perspective-correct value at pixel (0,0):\nhave %v\nwant %v", got, want)
	}
}
