// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package config

import (
	"fmt"
	"strings"

	"github.com/gviegas/raster/attachment"
	"github.com/gviegas/raster/format"
	"github.com/gviegas/raster/pipeline"
)

func parseFormat(s string) (format.Format, error) {
	switch strings.ToLower(s) {
	case "rgb32f":
		return format.RGB32F, nil
	case "rgba32f":
		return format.RGBA32F, nil
	case "rgba32u":
		return format.RGBA32U, nil
	case "rgba32i":
		return format.RGBA32I, nil
	case "rgba8un":
		return format.RGBA8UN, nil
	case "bgra8u":
		return format.BGRA8U, nil
	case "r32f":
		return format.R32F, nil
	default:
		return 0, fmt.Errorf("config: unknown format %q", s)
	}
}

func parseLoadOp(s string) attachment.LoadOp {
	switch strings.ToLower(s) {
	case "clear":
		return attachment.LClear
	case "dont_care":
		return attachment.LDontCare
	default:
		return attachment.LLoad
	}
}

func parseStoreOp(s string) attachment.StoreOp {
	if strings.ToLower(s) == "dont_care" {
		return attachment.SDontCare
	}
	return attachment.SStore
}

func parseTopology(s string) pipeline.Topology {
	switch strings.ToLower(s) {
	case "triangle_strip":
		return pipeline.TTriangleStrip
	case "line_strip":
		return pipeline.TLineStrip
	default:
		return pipeline.TTriangleList
	}
}

func parseCullMode(s string) pipeline.CullMode {
	switch strings.ToLower(s) {
	case "front":
		return pipeline.CullFront
	case "none":
		return pipeline.CullNone
	default:
		return pipeline.CullBack
	}
}

func parsePolygonMode(s string) pipeline.PolygonMode {
	if strings.ToLower(s) == "line" {
		return pipeline.PolygonLine
	}
	return pipeline.PolygonFill
}

func parseInputRate(s string) pipeline.InputRate {
	if strings.ToLower(s) == "instance" {
		return pipeline.PerInstance
	}
	return pipeline.PerVertex
}
