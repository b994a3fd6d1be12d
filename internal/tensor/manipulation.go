package tensor

// Cat concatenates tensors along dim. All tensors must share dtype and every
// dimension except dim. The inputs are not modified.
//
// Example:
//
//	// image [1, 1, H, W] + heatmaps [1, k, H, W] -> [1, 1+k, H, W]
//	x, err := tensor.Cat([]*tensor.Tensor[float32, B]{image, heatmaps}, 1)
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) (*Tensor[T, B], error) {
	if len(tensors) == 0 {
		return nil, &ShapeError{Op: "cat", Details: "no tensors to concatenate"}
	}

	raws := make([]*RawTensor, len(tensors))
	shapes := make([]Shape, len(tensors))
	for i, t := range tensors {
		raws[i] = t.Raw()
		shapes[i] = t.Shape()
	}

	outShape, err := CatShape(shapes, dim)
	if err != nil {
		return nil, err
	}

	b := tensors[0].Backend()
	out := Zeros[T, B](outShape, b)
	if out.raw.IsMeta() {
		return out, nil
	}
	for _, r := range raws {
		if r.IsMeta() {
			return nil, shapeErrorf("cat", r.Shape(), "tensor on %s has no data", r.Device())
		}
	}

	// Treat each tensor as [outer, dimSize*inner] rows and interleave them.
	outer := 1
	for i := 0; i < dim; i++ {
		outer *= outShape[i]
	}
	inner := 1
	for i := dim + 1; i < len(outShape); i++ {
		inner *= outShape[i]
	}

	dst := out.Data()
	rowLen := outShape[dim] * inner
	for o := 0; o < outer; o++ {
		pos := o * rowLen
		for i, r := range raws {
			chunk := shapes[i][dim] * inner
			src := Data[T](r)[o*chunk : (o+1)*chunk]
			copy(dst[pos:pos+chunk], src)
			pos += chunk
		}
	}

	return out, nil
}
