package cpu

import (
	"fmt"

	"github.com/born-ml/posemachine/internal/parallel"
	"github.com/born-ml/posemachine/internal/tensor"
)

// Conv2D performs 2D convolution (cross-correlation) using the im2col algorithm.
//
// Input shape:  [batch, in_channels, height, width]
// Kernel shape: [out_channels, in_channels, kernel_h, kernel_w]
// Bias shape:   [out_channels] or nil
// Output shape: [batch, out_channels, out_h, out_w]
//
// Algorithm: Im2col, one batch item at a time
//  1. Transform input patches into rows: [H_out * W_out, C_in * K_h * K_w]
//  2. The kernel is already a [C_out, C_in * K_h * K_w] matrix (row-major)
//  3. Each output channel is a dot product of its kernel row with every patch row,
//     computed in parallel across output channels
//
// Reference: "High Performance Convolutional Neural Networks for Document Processing"
// (Chellapilla et al., 2006).
func (cpu *CPUBackend) Conv2D(input, kernel, bias *tensor.RawTensor, stride, padding int) (*tensor.RawTensor, error) {
	outShape, err := tensor.Conv2DShape(input.Shape(), kernel.Shape(), tensor.ShapeOf(bias), stride, padding)
	if err != nil {
		return nil, err
	}
	if err := checkOperands("conv2d", input, kernel, bias); err != nil {
		return nil, err
	}

	output, err := tensor.NewRaw(outShape, input.DType(), cpu.device)
	if err != nil {
		return nil, fmt.Errorf("conv2d: failed to create output tensor: %w", err)
	}

	g := convGeometry{
		input:   input.Shape(),
		kernel:  kernel.Shape(),
		output:  outShape,
		stride:  stride,
		padding: padding,
	}
	switch input.DType() {
	case tensor.Float32:
		conv2dTyped[float32](output, input, kernel, bias, g, cpu.par)
	case tensor.Float64:
		conv2dTyped[float64](output, input, kernel, bias, g, cpu.par)
	}
	return output, nil
}

// convGeometry bundles the validated shapes of one convolution call.
type convGeometry struct {
	input, kernel, output tensor.Shape
	stride, padding       int
}

func conv2dTyped[T tensor.DType](output, input, kernel, bias *tensor.RawTensor, g convGeometry, par parallel.Config) {
	inputData := tensor.Data[T](input)
	kernelData := tensor.Data[T](kernel)
	outputData := tensor.Data[T](output)
	var biasData []T
	if bias != nil {
		biasData = tensor.Data[T](bias)
	}

	N, CIn, H, W := g.input.NCHW()
	_, COut, HOut, WOut := g.output.NCHW()
	KH, KW := g.kernel[2], g.kernel[3]

	colWidth := CIn * KH * KW
	planeSize := HOut * WOut
	colBuf := make([]T, planeSize*colWidth)

	for n := 0; n < N; n++ {
		sample := inputData[n*CIn*H*W : (n+1)*CIn*H*W]
		im2col(colBuf, sample, CIn, H, W, KH, KW, HOut, WOut, g.stride, g.padding)

		parallel.For(COut, func(co int) {
			weights := kernelData[co*colWidth : (co+1)*colWidth]
			plane := outputData[(n*COut+co)*planeSize : (n*COut+co+1)*planeSize]

			var b T
			if biasData != nil {
				b = biasData[co]
			}

			for p := range plane {
				row := colBuf[p*colWidth : (p+1)*colWidth]
				var sum T
				for k, w := range weights {
					sum += w * row[k]
				}
				plane[p] = sum + b
			}
		}, par)
	}
}

// im2col transforms one input sample [C, H, W] into a patch matrix.
//
// Output: colBuf [H_out * W_out, C * K_h * K_w]
//
// Each row of colBuf corresponds to one output position and holds the
// flattened input patch under the kernel; positions in the padding are zero.
func im2col[T tensor.DType](colBuf, sample []T, C, H, W, KH, KW, HOut, WOut, stride, padding int) {
	bufIdx := 0

	for outH := 0; outH < HOut; outH++ {
		for outW := 0; outW < WOut; outW++ {
			// Top-left corner in input space
			hStart := outH*stride - padding
			wStart := outW*stride - padding

			for c := 0; c < C; c++ {
				channel := sample[c*H*W : (c+1)*H*W]
				for kh := 0; kh < KH; kh++ {
					h := hStart + kh
					for kw := 0; kw < KW; kw++ {
						w := wStart + kw
						if h >= 0 && h < H && w >= 0 && w < W {
							colBuf[bufIdx] = channel[h*W+w]
						} else {
							colBuf[bufIdx] = 0
						}
						bufIdx++
					}
				}
			}
		}
	}
}
