package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/posemachine/internal/parallel"
	"github.com/born-ml/posemachine/internal/tensor"
)

// MaxPool2D performs 2D max pooling.
//
// Max pooling reduces spatial dimensions by taking the maximum value
// in each pooling window, independently per channel.
//
// Input shape:  [batch, channels, height, width]
// Output shape: [batch, channels, out_height, out_width]
//
// Where:
//
//	out_height = (height + 2*padding - kernelSize) / stride + 1
//	out_width  = (width + 2*padding - kernelSize) / stride + 1
//
// Padded positions count as negative infinity and never win the max.
//
// Example (2x2 pool, stride=2):
//
//	Input: [[1,2,3,4],    Output: [[6,8],
//	        [5,6,7,8],             [14,16]]
//	        [9,10,11,12],
//	        [13,14,15,16]]
func (cpu *CPUBackend) MaxPool2D(input *tensor.RawTensor, kernelSize, stride, padding int) (*tensor.RawTensor, error) {
	outShape, err := tensor.MaxPool2DShape(input.Shape(), kernelSize, stride, padding)
	if err != nil {
		return nil, err
	}
	if err := checkOperands("maxpool2d", input); err != nil {
		return nil, err
	}

	output, err := tensor.NewRaw(outShape, input.DType(), cpu.device)
	if err != nil {
		return nil, fmt.Errorf("maxpool2d: failed to create output: %w", err)
	}

	switch input.DType() {
	case tensor.Float32:
		maxpool2dTyped[float32](output, input, kernelSize, stride, padding, cpu.par)
	case tensor.Float64:
		maxpool2dTyped[float64](output, input, kernelSize, stride, padding, cpu.par)
	}
	return output, nil
}

func maxpool2dTyped[T tensor.DType](output, input *tensor.RawTensor, kernelSize, stride, padding int, par parallel.Config) {
	inputData := tensor.Data[T](input)
	outputData := tensor.Data[T](output)

	N, C, H, W := input.Shape().NCHW()
	_, _, HOut, WOut := output.Shape().NCHW()
	negInf := T(math.Inf(-1))

	parallel.ForBatch(N, C, func(n, c int) {
		// Pre-slice channel planes: eliminates (n*C+c)*H*W bounds checks
		channelData := inputData[(n*C+c)*H*W : (n*C+c+1)*H*W]
		outPlane := outputData[(n*C+c)*HOut*WOut : (n*C+c+1)*HOut*WOut]

		for outH := 0; outH < HOut; outH++ {
			hStart := outH*stride - padding

			for outW := 0; outW < WOut; outW++ {
				wStart := outW*stride - padding

				maxVal := negInf
				for kh := 0; kh < kernelSize; kh++ {
					h := hStart + kh
					if h < 0 || h >= H {
						continue
					}
					rowData := channelData[h*W : (h+1)*W]

					for kw := 0; kw < kernelSize; kw++ {
						w := wStart + kw
						if w < 0 || w >= W {
							continue
						}
						if val := rowData[w]; val > maxVal || math.IsNaN(float64(val)) {
							maxVal = val
						}
					}
				}

				outPlane[outH*WOut+outW] = maxVal
			}
		}
	}, par)
}
