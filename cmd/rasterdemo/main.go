// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Command rasterdemo renders a YAML pipeline fixture through the
// rasterizing pipeline engine and writes the result as a PNG,
// exercising the full library end to end: config parsing, render
// pass/pipeline construction, a render-pass session and draw.
package main

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/chewxy/math32"
	"github.com/gviegas/raster/attachment"
	"github.com/gviegas/raster/config"
	"github.com/gviegas/raster/pipeline"
	"github.com/gviegas/raster/state"
	"github.com/spf13/cobra"
	"golang.org/x/image/draw"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var scale int
	cmd := &cobra.Command{
		Use:   "rasterdemo <fixture.yaml> <out.png>",
		Short: "Render a pipeline fixture and write the color attachment as a PNG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(args[0], args[1], scale)
		},
	}
	cmd.Flags().IntVar(&scale, "scale", 1, "nearest-neighbor upscale factor applied to the output image")
	return cmd
}

func render(fixturePath, outPath string, scale int) error {
	f, err := config.Load(fixturePath)
	if err != nil {
		return err
	}

	passInfo, err := f.RenderPassCreateInfo()
	if err != nil {
		return err
	}
	pass, err := attachment.NewRenderPass(passInfo)
	if err != nil {
		return fmt.Errorf("rasterdemo: building render pass: %w", err)
	}

	colorBuf := make([]byte, f.Width*f.Height*4)
	depthBuf := make([]byte, f.Width*f.Height*4)
	fb := attachment.NewFrameBuffer(f.Width, f.Height, [][]byte{colorBuf, depthBuf})

	vs, fs := newDemoVertexShader(), newDemoFragmentShader()
	pInfo, err := f.PipelineCreateInfo(pass, vs, fs)
	if err != nil {
		return err
	}
	p, err := pipeline.New(pInfo)
	if err != nil {
		return fmt.Errorf("rasterdemo: building pipeline: %w", err)
	}
	defer p.Destroy()

	s, err := state.Begin(pass, fb, f.ClearValueList())
	if err != nil {
		return fmt.Errorf("rasterdemo: beginning render pass: %w", err)
	}
	defer s.End()

	s.BindVertexBuffer(0, demoTriangle())
	if err := s.Draw(p, 3, 1, 0, 0); err != nil {
		return fmt.Errorf("rasterdemo: draw: %w", err)
	}

	img := bgra8uToImage(colorBuf, f.Width, f.Height)
	if scale > 1 {
		img = upscale(img, scale)
	}
	return writePNG(outPath, img)
}

// demoTriangle returns the encoded vertex buffer for a single
// white, fullscreen-clip-space triangle, matching spec §8 scenario
// S1.
func demoTriangle() []byte {
	verts := []demoVertex{
		{pos: [2]float32{-2, -2}, color: [3]float32{1, 1, 1}},
		{pos: [2]float32{2, -2}, color: [3]float32{1, 1, 1}},
		{pos: [2]float32{0, 2}, color: [3]float32{1, 1, 1}},
	}
	buf := make([]byte, len(verts)*20)
	for i, v := range verts {
		off := i * 20
		binary.LittleEndian.PutUint32(buf[off:], math32.Float32bits(v.pos[0]))
		binary.LittleEndian.PutUint32(buf[off+4:], math32.Float32bits(v.pos[1]))
		binary.LittleEndian.PutUint32(buf[off+8:], math32.Float32bits(v.color[0]))
		binary.LittleEndian.PutUint32(buf[off+12:], math32.Float32bits(v.color[1]))
		binary.LittleEndian.PutUint32(buf[off+16:], math32.Float32bits(v.color[2]))
	}
	return buf
}

func bgra8uToImage(buf []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := (y*w + x) * 4
			b, g, r, a := buf[off], buf[off+1], buf[off+2], buf[off+3]
			img.Set(x, y, color.NRGBA{R: r, G: g, B: b, A: a})
		}
	}
	return img
}

func upscale(src *image.NRGBA, scale int) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func writePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return png.Encode(out, img)
}
