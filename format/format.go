// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package format defines the pixel formats understood by the
// rasterizing pipeline and the byte-level converters used at the
// fragment-output/attachment boundary.
package format

// Format describes the layout of a single texel.
type Format int

// Pixel formats.
//
// The set is deliberately small: it covers exactly the formats the
// pipeline's shader outputs, clear values and attachments are
// expected to use (see pipeline.CreateInfo and attachment.Description).
const (
	// RGB32F is three packed float32 channels (no alpha).
	RGB32F Format = iota
	// RGBA32F is four packed float32 channels.
	RGBA32F
	// RGBA32U is four packed uint32 channels.
	RGBA32U
	// RGBA32I is four packed int32 channels.
	RGBA32I
	// RGBA8UN is four packed, unsigned-normalized 8-bit channels.
	RGBA8UN
	// BGRA8U is four packed 8-bit channels in B,G,R,A order, the
	// conventional color-attachment-on-disk format.
	BGRA8U
	// R32F is a single float32 channel, the conventional
	// depth-attachment-on-disk format.
	R32F
)

// Class is the numeric class of a format's channels.
type Class int

// Numeric classes.
const (
	ClassFloat Class = iota
	ClassUint
	ClassSint
)

type info struct {
	size  int
	chans int
	class Class
}

var table = map[Format]info{
	RGB32F:  {12, 3, ClassFloat},
	RGBA32F: {16, 4, ClassFloat},
	RGBA32U: {16, 4, ClassUint},
	RGBA32I: {16, 4, ClassSint},
	RGBA8UN: {4, 4, ClassUint},
	BGRA8U:  {4, 4, ClassUint},
	R32F:    {4, 1, ClassFloat},
}

// Size returns the number of bytes a single texel of f occupies.
func Size(f Format) int { return table[f].size }

// Channels returns the number of channels in f.
func Channels(f Format) int { return table[f].chans }

// ClassOf returns the numeric class of f's channels.
func ClassOf(f Format) Class { return table[f].class }
