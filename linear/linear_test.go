// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"
	"testing"
)

func TestV3(t *testing.T) {
	v := V3{1, 2, 4}
	w := V3{0, -1, 2}

	var u V3
	u.Add(&v, &w)
	if u != (V3{1, 1, 6}) {
		t.Fatalf("V3.Add\nhave %v\nwant [1 1 6]", u)
	}
	u.Sub(&v, &w)
	if u != (V3{1, 3, 2}) {
		t.Fatalf("V3.Sub\nhave %v\nwant [1 3 2]", u)
	}
	u.Scale(-1, &v)
	if u != (V3{-1, -2, -4}) {
		t.Fatalf("V3.Scale\nhave %v\nwant [-1 -2 -4]", u)
	}
	u.Scale(2, &w)
	if u != (V3{0, -2, 4}) {
		t.Fatalf("V3.Scale\nhave %v\nwant [0 -2 4]", u)
	}
	if d := v.Dot(&w); d != 6 {
		t.Fatalf("V3.Dot\nhave %v\nwant 6\n", d)
	}
	if d := v.Dot(&v); d != 21 {
		t.Fatalf("V3.Dot\nhave %v\nwant 21\n", d)
	}
	if l := v.Len(); l != float32(math.Sqrt(21)) {
		t.Fatalf("V3.Len\nhave %v\nwant %v\n", l, math.Sqrt(21))
	}
	if l := w.Len(); l != float32(math.Sqrt(5)) {
		t.Fatalf("V3.Len\nhave %v\nwant %v\n", l, math.Sqrt(5))
	}

	v = V3{0, 0, -2}
	w = V3{0, 4, 0}

	var nv, nw V3
	nv.Norm(&v)
	if nv != (V3{0, 0, -1}) {
		t.Fatalf("V3.Norm\nhave %v\nwant [0 0 -1]", nv)
	}
	nw.Norm(&w)
	if nw != (V3{0, 1, 0}) {
		t.Fatalf("V3.Norm\nhave %v\nwant [0 1 0]", nw)
	}

	var c V3
	c.Cross(&nv, &nw)
	if c != (V3{1, 0, 0}) {
		t.Fatalf("V3.Cross\nhave %v\nwant [1 0 0]", c)
	}
	c.Cross(&nw, &nv)
	if c != (V3{-1, 0, 0}) {
		t.Fatalf("V3.Cross\nhave %v\nwant [-1 0 0]", c)
	}
}

// lerpV4 (pipeline/clip.go) is the real call site for V4.Sub/Scale/
// Add; this exercises the same sequence directly, independent of
// clipping.
func TestV4LerpSequence(t *testing.T) {
	a := V4{0, 0, 0, 1}
	b := V4{4, -2, 8, 1}

	var d, s, v V4
	d.Sub(&b, &a)
	if d != (V4{4, -2, 8, 0}) {
		t.Fatalf("V4.Sub\nhave %v\nwant [4 -2 8 0]", d)
	}
	s.Scale(0.25, &d)
	if s != (V4{1, -0.5, 2, 0}) {
		t.Fatalf("V4.Scale\nhave %v\nwant [1 -0.5 2 0]", s)
	}
	v.Add(&a, &s)
	if v != (V4{1, -0.5, 2, 1}) {
		t.Fatalf("V4.Add\nhave %v\nwant [1 -0.5 2 1]", v)
	}
}

func TestV4DotLenNorm(t *testing.T) {
	v := V4{1, 2, 2, 0}
	if d := v.Dot(&v); d != 9 {
		t.Fatalf("V4.Dot\nhave %v\nwant 9\n", d)
	}
	if l := v.Len(); l != 3 {
		t.Fatalf("V4.Len\nhave %v\nwant 3\n", l)
	}
	var n V4
	n.Norm(&v)
	want := V4{1.0 / 3, 2.0 / 3, 2.0 / 3, 0}
	if n != want {
		t.Fatalf("V4.Norm\nhave %v\nwant %v", n, want)
	}
}
