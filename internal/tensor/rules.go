package tensor

// Shape rules for the backend primitives. Every backend validates its inputs
// through these functions, so a given mismatch produces the same error no
// matter which backend evaluates the graph.

// Conv2DShape returns the output shape of a 2D convolution.
//
// Input shape:  [N, C_in, H, W]
// Kernel shape: [C_out, C_in, K_h, K_w]
// Bias shape:   [C_out] or nil
// Output shape: [N, C_out, H_out, W_out]
//
// Where:
//
//	H_out = (H + 2*padding - K_h) / stride + 1
//	W_out = (W + 2*padding - K_w) / stride + 1
func Conv2DShape(input, kernel, bias Shape, stride, padding int) (Shape, error) {
	const op = "conv2d"
	if err := checkRank(op, "input", input); err != nil {
		return nil, err
	}
	if err := checkRank(op, "kernel", kernel); err != nil {
		return nil, err
	}
	if stride <= 0 {
		return nil, &ConfigError{Field: "stride", Value: stride, Details: "must be > 0"}
	}
	if padding < 0 {
		return nil, &ConfigError{Field: "padding", Value: padding, Details: "must be >= 0"}
	}

	n, cIn, h, w := input.NCHW()
	cOut, cInK, kh, kw := kernel.NCHW()

	if cIn != cInK {
		return nil, &ShapeError{
			Op:       op,
			Expected: Shape{n, cInK, h, w},
			Actual:   input.Clone(),
			Details:  "input channels do not match kernel input channels",
		}
	}
	if err := checkBias(op, bias, cOut); err != nil {
		return nil, err
	}
	if h+2*padding < kh || w+2*padding < kw {
		return nil, shapeErrorf(op, input, "kernel %dx%d larger than padded input %dx%d",
			kh, kw, h+2*padding, w+2*padding)
	}

	hOut := (h+2*padding-kh)/stride + 1
	wOut := (w+2*padding-kw)/stride + 1
	return Shape{n, cOut, hOut, wOut}, nil
}

// ConvTranspose2DShape returns the output shape of a transposed (fractionally
// strided) 2D convolution without padding.
//
// Input shape:  [N, C_in, H, W]
// Kernel shape: [C_in, C_out, K_h, K_w]
// Bias shape:   [C_out] or nil
// Output shape: [N, C_out, (H-1)*stride + K_h, (W-1)*stride + K_w]
func ConvTranspose2DShape(input, kernel, bias Shape, stride int) (Shape, error) {
	const op = "conv_transpose2d"
	if err := checkRank(op, "input", input); err != nil {
		return nil, err
	}
	if err := checkRank(op, "kernel", kernel); err != nil {
		return nil, err
	}
	if stride <= 0 {
		return nil, &ConfigError{Field: "stride", Value: stride, Details: "must be > 0"}
	}

	n, cIn, h, w := input.NCHW()
	cInK, cOut, kh, kw := kernel.NCHW()

	if cIn != cInK {
		return nil, &ShapeError{
			Op:       op,
			Expected: Shape{n, cInK, h, w},
			Actual:   input.Clone(),
			Details:  "input channels do not match kernel input channels",
		}
	}
	if err := checkBias(op, bias, cOut); err != nil {
		return nil, err
	}

	return Shape{n, cOut, (h-1)*stride + kh, (w-1)*stride + kw}, nil
}

// MaxPool2DShape returns the output shape of a square 2D max pooling window.
// Padding must not exceed half the kernel size.
func MaxPool2DShape(input Shape, kernelSize, stride, padding int) (Shape, error) {
	const op = "maxpool2d"
	if err := checkRank(op, "input", input); err != nil {
		return nil, err
	}
	if kernelSize <= 0 {
		return nil, &ConfigError{Field: "kernel size", Value: kernelSize, Details: "must be > 0"}
	}
	if stride <= 0 {
		return nil, &ConfigError{Field: "stride", Value: stride, Details: "must be > 0"}
	}
	if padding < 0 || padding > kernelSize/2 {
		return nil, &ConfigError{Field: "padding", Value: padding, Details: "must be in [0, kernel size/2]"}
	}

	n, c, h, w := input.NCHW()
	if h+2*padding < kernelSize || w+2*padding < kernelSize {
		return nil, shapeErrorf(op, input, "kernel size %d too large for padded input %dx%d",
			kernelSize, h+2*padding, w+2*padding)
	}

	hOut := (h+2*padding-kernelSize)/stride + 1
	wOut := (w+2*padding-kernelSize)/stride + 1
	return Shape{n, c, hOut, wOut}, nil
}

// AddShape returns the output shape of an element-wise sum.
// No broadcasting: both operands must have identical shapes.
func AddShape(a, b Shape) (Shape, error) {
	if !a.Equal(b) {
		return nil, &ShapeError{
			Op:       "add",
			Expected: a.Clone(),
			Actual:   b.Clone(),
			Details:  "operands must have identical shapes",
		}
	}
	return a.Clone(), nil
}

// CatShape returns the shape of tensors concatenated along dim.
// All other dimensions must agree.
func CatShape(shapes []Shape, dim int) (Shape, error) {
	const op = "cat"
	if len(shapes) == 0 {
		return nil, &ShapeError{Op: op, Details: "no tensors to concatenate"}
	}
	first := shapes[0]
	if dim < 0 || dim >= len(first) {
		return nil, shapeErrorf(op, first, "dimension %d out of range", dim)
	}

	out := first.Clone()
	for _, s := range shapes[1:] {
		if len(s) != len(first) {
			return nil, &ShapeError{Op: op, Expected: first.Clone(), Actual: s.Clone(), Details: "rank mismatch"}
		}
		for i := range s {
			if i != dim && s[i] != first[i] {
				return nil, &ShapeError{
					Op:       op,
					Expected: first.Clone(),
					Actual:   s.Clone(),
					Details:  "dimensions other than the concatenation axis must match",
				}
			}
		}
		out[dim] += s[dim]
	}
	return out, nil
}

func checkRank(op, what string, s Shape) error {
	if len(s) != 4 {
		return shapeErrorf(op, s, "%s must be 4D [N,C,H,W], got %dD", what, len(s))
	}
	return nil
}

func checkBias(op string, bias Shape, cOut int) error {
	if bias != nil && !bias.Equal(Shape{cOut}) {
		return &ShapeError{Op: op, Expected: Shape{cOut}, Actual: bias.Clone(), Details: "bias must match output channels"}
	}
	return nil
}
