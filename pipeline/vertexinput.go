// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package pipeline

// fetchAttr is a planned vertex-input fetch: which binding to read
// from, the byte offset within that binding's stride, and the
// location to write the fetched bytes into.
type fetchAttr struct {
	location uint8
	binding  uint8
	stride   uint32
	offset   uint32
}

// vertexInputPlan splits a pipeline's vertex attributes into the
// per-vertex and per-instance groups spec §4.5 step 3 describes, so
// that the inner draw loop only updates the pointers that actually
// change between iterations.
type vertexInputPlan struct {
	perVertex   []fetchAttr
	perInstance []fetchAttr
}

func planVertexInput(bindings []VertexBinding, attrs []VertexAttribute) (vertexInputPlan, error) {
	strideOf := make(map[uint8]uint32, len(bindings))
	rateOf := make(map[uint8]InputRate, len(bindings))
	for _, b := range bindings {
		strideOf[b.Binding] = b.Stride
		rateOf[b.Binding] = b.InputRate
	}

	var plan vertexInputPlan
	for _, a := range attrs {
		stride, ok := strideOf[a.Binding]
		if !ok {
			return vertexInputPlan{}, ErrInvalidBinding
		}
		fa := fetchAttr{
			location: a.Location,
			binding:  a.Binding,
			stride:   stride,
			offset:   a.Offset,
		}
		if rateOf[a.Binding] == PerInstance {
			plan.perInstance = append(plan.perInstance, fa)
		} else {
			plan.perVertex = append(plan.perVertex, fa)
		}
	}
	return plan, nil
}
