// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package shader

import (
	"testing"
	"unsafe"
)

func TestLerp3(t *testing.T) {
	a, b, c := float32(1), float32(2), float32(9)
	var dst float32
	Lerp3(
		[3]unsafe.Pointer{unsafe.Pointer(&a), unsafe.Pointer(&b), unsafe.Pointer(&c)},
		[3]float32{0.5, 0.25, 0.25},
		unsafe.Pointer(&dst),
	)
	want := a*0.5 + b*0.25 + c*0.25
	if dst != want {
		t.Errorf("Lerp3: got %v, want %v", dst, want)
	}
}

func TestArrayInterpolator(t *testing.T) {
	a := [3]float32{1, 2, 3}
	b := [3]float32{4, 5, 6}
	c := [3]float32{7, 8, 9}
	var dst [3]float32

	interp := ArrayInterpolator(3, 4, Lerp3)
	interp(
		[3]unsafe.Pointer{unsafe.Pointer(&a), unsafe.Pointer(&b), unsafe.Pointer(&c)},
		[3]float32{1, 0, 0},
		unsafe.Pointer(&dst),
	)
	if dst != a {
		t.Errorf("ArrayInterpolator with w=[1,0,0]: got %v, want %v", dst, a)
	}

	interp(
		[3]unsafe.Pointer{unsafe.Pointer(&a), unsafe.Pointer(&b), unsafe.Pointer(&c)},
		[3]float32{0, 0, 1},
		unsafe.Pointer(&dst),
	)
	if dst != c {
		t.Errorf("ArrayInterpolator with w=[0,0,1]: got %v, want %v", dst, c)
	}
}
