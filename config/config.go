// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package config loads render-pass and pipeline fixtures from YAML,
// for the demo command and for tests that want a declarative way to
// describe a scene rather than building attachment.CreateInfo and
// pipeline.CreateInfo by hand.
//
// Shader modules are not representable in YAML (they are Go
// closures), so a Fixture only describes the data side: attachment
// formats, subpass wiring, vertex layout and clear values. Callers
// pair it with a shader.Module of their own choosing.
package config

import (
	"fmt"
	"os"

	"github.com/gviegas/raster/attachment"
	"github.com/gviegas/raster/format"
	"github.com/gviegas/raster/pipeline"
	"github.com/gviegas/raster/shader"
	"gopkg.in/yaml.v3"
)

// Fixture is the top-level YAML document: one render pass, one
// frame buffer extent, one graphics pipeline and the clear values to
// apply at begin.
type Fixture struct {
	Width         int                `yaml:"width"`
	Height        int                `yaml:"height"`
	Attachments   []AttachmentConfig `yaml:"attachments"`
	Subpasses     []SubpassConfig    `yaml:"subpasses"`
	ClearValues   []ClearValueConfig `yaml:"clear_values"`
	Pipeline      PipelineConfig     `yaml:"pipeline"`
}

// AttachmentConfig mirrors attachment.Description plus the format
// the fixture expects this attachment to hold.
type AttachmentConfig struct {
	Format        string `yaml:"format"`
	LoadOp        string `yaml:"load_op"`
	StoreOp       string `yaml:"store_op"`
	StencilLoadOp string `yaml:"stencil_load_op"`
}

// RefConfig mirrors attachment.Ref.
type RefConfig struct {
	ID int `yaml:"id"`
}

// SubpassConfig mirrors attachment.Subpass.
type SubpassConfig struct {
	Input []RefConfig `yaml:"input"`
	Color []RefConfig `yaml:"color"`
	Depth *RefConfig  `yaml:"depth"`
}

// ClearValueConfig mirrors attachment.ClearValue.
type ClearValueConfig struct {
	Color [4]float32 `yaml:"color"`
	Depth float32    `yaml:"depth"`
}

// VertexBindingConfig mirrors pipeline.VertexBinding.
type VertexBindingConfig struct {
	Binding   uint8  `yaml:"binding"`
	Stride    uint32 `yaml:"stride"`
	InputRate string `yaml:"input_rate"`
}

// VertexAttributeConfig mirrors pipeline.VertexAttribute.
type VertexAttributeConfig struct {
	Location uint8  `yaml:"location"`
	Binding  uint8  `yaml:"binding"`
	Format   string `yaml:"format"`
	Offset   uint32 `yaml:"offset"`
}

// PipelineConfig mirrors the non-shader fields of pipeline.CreateInfo.
type PipelineConfig struct {
	Topology    string                  `yaml:"topology"`
	CullMode    string                  `yaml:"cull_mode"`
	PolygonMode string                  `yaml:"polygon_mode"`
	Viewport    [4]float32              `yaml:"viewport"`
	Subpass     int                     `yaml:"subpass"`
	Bindings    []VertexBindingConfig   `yaml:"bindings"`
	Attributes  []VertexAttributeConfig `yaml:"attributes"`
}

// Load reads and parses a Fixture from path.
func Load(path string) (*Fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var f Fixture
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &f, nil
}

// RenderPassCreateInfo builds an attachment.CreateInfo from the
// fixture's attachment and subpass configuration.
func (f *Fixture) RenderPassCreateInfo() (attachment.CreateInfo, error) {
	var info attachment.CreateInfo
	for _, a := range f.Attachments {
		if _, err := parseFormat(a.Format); err != nil {
			return info, err
		}
		info.Attachments = append(info.Attachments, attachment.Description{
			LoadOp:        parseLoadOp(a.LoadOp),
			StoreOp:       parseStoreOp(a.StoreOp),
			StencilLoadOp: parseLoadOp(a.StencilLoadOp),
		})
	}
	for _, s := range f.Subpasses {
		var sub attachment.Subpass
		for _, r := range s.Input {
			rf, err := f.refFormat(r.ID)
			if err != nil {
				return info, err
			}
			sub.Input = append(sub.Input, attachment.Ref{ID: uint8(r.ID), Format: rf})
		}
		for _, r := range s.Color {
			rf, err := f.refFormat(r.ID)
			if err != nil {
				return info, err
			}
			sub.Color = append(sub.Color, attachment.Ref{ID: uint8(r.ID), Format: rf})
		}
		if s.Depth != nil {
			rf, err := f.refFormat(s.Depth.ID)
			if err != nil {
				return info, err
			}
			sub.Depth = &attachment.Ref{ID: uint8(s.Depth.ID), Format: rf}
		}
		info.Subpasses = append(info.Subpasses, sub)
	}
	return info, nil
}

func (f *Fixture) refFormat(id int) (format.Format, error) {
	if id < 0 || id >= len(f.Attachments) {
		return 0, fmt.Errorf("config: attachment reference %d out of range", id)
	}
	return parseFormat(f.Attachments[id].Format)
}

// ClearValueList converts the fixture's clear-value configuration to
// attachment.ClearValue, indexed by attachment id.
func (f *Fixture) ClearValueList() []attachment.ClearValue {
	cv := make([]attachment.ClearValue, len(f.ClearValues))
	for i, c := range f.ClearValues {
		cv[i] = attachment.ClearValue{Color: c.Color, Depth: c.Depth}
	}
	return cv
}

// PipelineCreateInfo builds a pipeline.CreateInfo from the fixture,
// given the render pass it was created against and the shader
// modules the caller supplies.
func (f *Fixture) PipelineCreateInfo(pass *attachment.RenderPass, vs, fs *shader.Module) (pipeline.CreateInfo, error) {
	info := pipeline.CreateInfo{
		VertexShader:   vs,
		FragmentShader: fs,
		Pass:           pass,
		Subpass:        f.Pipeline.Subpass,
		Topology:       parseTopology(f.Pipeline.Topology),
		CullMode:       parseCullMode(f.Pipeline.CullMode),
		PolygonMode:    parsePolygonMode(f.Pipeline.PolygonMode),
		Viewport: pipeline.Viewport{
			X:      f.Pipeline.Viewport[0],
			Y:      f.Pipeline.Viewport[1],
			Width:  f.Pipeline.Viewport[2],
			Height: f.Pipeline.Viewport[3],
		},
	}
	for _, b := range f.Pipeline.Bindings {
		info.Bindings = append(info.Bindings, pipeline.VertexBinding{
			Binding:   b.Binding,
			Stride:    b.Stride,
			InputRate: parseInputRate(b.InputRate),
		})
	}
	for _, a := range f.Pipeline.Attributes {
		af, err := parseFormat(a.Format)
		if err != nil {
			return info, err
		}
		info.Attributes = append(info.Attributes, pipeline.VertexAttribute{
			Location: a.Location,
			Binding:  a.Binding,
			Format:   af,
			Offset:   a.Offset,
		})
	}
	return info, nil
}
