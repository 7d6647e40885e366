// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package shader

import "unsafe"

// Interpolator blends a fragment-shader input's three per-vertex
// source values (the rolling triangle's output slots for that
// location) using the barycentric weights w and writes the result
// into dst. Each src[i] points to at least as many readable bytes as
// the variable's Size.
type Interpolator func(src [3]unsafe.Pointer, w [3]float32, dst unsafe.Pointer)

// Lerp3 is the default scalar float32 interpolator:
//
//	dst = src[0]*w[0] + src[1]*w[1] + src[2]*w[2]
func Lerp3(src [3]unsafe.Pointer, w [3]float32, dst unsafe.Pointer) {
	a := *(*float32)(src[0])
	b := *(*float32)(src[1])
	c := *(*float32)(src[2])
	*(*float32)(dst) = a*w[0] + b*w[1] + c*w[2]
}

// ArrayInterpolator builds an Interpolator over a fixed-size array
// of n elements, each interpolated by elem, recursing element-wise
// as spec §4.6.2 step 7 requires for array-typed fragment inputs.
// stride is the byte size of a single element.
func ArrayInterpolator(n int, stride uintptr, elem Interpolator) Interpolator {
	return func(src [3]unsafe.Pointer, w [3]float32, dst unsafe.Pointer) {
		for i := 0; i < n; i++ {
			off := uintptr(i) * stride
			elem(
				[3]unsafe.Pointer{
					addOff(src[0], off),
					addOff(src[1], off),
					addOff(src[2], off),
				},
				w,
				addOff(dst, off),
			)
		}
	}
}

func addOff(p unsafe.Pointer, off uintptr) unsafe.Pointer {
	if p == nil {
		return nil
	}
	return unsafe.Pointer(uintptr(p) + off)
}
