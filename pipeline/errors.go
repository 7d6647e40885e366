// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package pipeline

import "errors"

// ErrUnsupportedFormatConversion is returned by New when a
// fragment-shader output's format has no registered converter to
// its bound color attachment's format.
var ErrUnsupportedFormatConversion = errors.New("pipeline: unsupported format conversion")

// ErrOutOfMemory is returned by New when the interstage heap block
// cannot be allocated, including the degenerate case of a zero-size
// allocation when outputs were declared.
var ErrOutOfMemory = errors.New("pipeline: out of memory")

// ErrUnsupportedTopology is returned by Draw/DrawIndexed for
// topologies that are declared but not implemented (TLineStrip).
var ErrUnsupportedTopology = errors.New("pipeline: unsupported topology")

// ErrInvalidBinding is returned by New when an attribute refers to
// a binding that was not declared in CreateInfo.Bindings.
var ErrInvalidBinding = errors.New("pipeline: attribute refers to undeclared binding")
