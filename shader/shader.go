// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package shader defines the language-neutral ABI that the
// pipeline engine uses to invoke compiled vertex/fragment shaders.
//
// A Module carries no type information beyond each variable's
// {location, size, align} and, for fragment inputs, an Interpolator.
// The engine never inspects the bytes it moves; it only computes
// offsets and invokes Entry with pointer tables indexed by location.
package shader

import (
	"unsafe"

	"github.com/gviegas/raster/format"
)

// MaxLocation is the width of the location-indexed pointer tables
// that Entry receives, per the fixed ABI in spec §6. Location values
// must satisfy 0 <= Location < MaxLocation.
const MaxLocation = 256

// Variable describes a single vertex-shader output, fragment-shader
// input or fragment-shader output.
type Variable struct {
	Location uint8
	Format   format.Format
	// Size and Align are given in bytes. They are the only type
	// information the engine has about this variable; it never
	// inspects or converts the bytes it copies through interpolation.
	Size, Align uint32
	// Interp is used for fragment-shader inputs and unused
	// otherwise. A nil Interp on a fragment input is replaced by
	// Lerp3, which interpolates only the first float32 of the
	// variable.
	Interp Interpolator
}

// IO is the input/output variable table of a shader module.
type IO struct {
	Inputs  []Variable
	Outputs []Variable
}

// PtrTable is a location-indexed pointer table, as consumed by
// EntryFunc. Only the first MaxLocation entries are ever
// addressed; callers allocate the full array so that the shader
// entry point can index it directly by location without bounds
// checks.
type PtrTable [MaxLocation]unsafe.Pointer

// EntryFunc is the fixed-signature entry point of a compiled shader,
// matching spec §6's ABI exactly:
//
//	uniform  - descriptor set, indexed by binding
//	input    - per-vertex or per-fragment input, indexed by location
//	output   - per-vertex or per-fragment output, indexed by location
//	builtin  - builtin[0] is *linear.V4 (clip position) in the vertex
//	           stage and *linear.V3 (fragment coordinate) in the
//	           fragment stage
type EntryFunc func(uniform, input, output *PtrTable, builtin *unsafe.Pointer)

// Module is a compiled shader: its I/O variable table plus its
// entry point.
type Module struct {
	Vars  IO
	Entry EntryFunc
}
