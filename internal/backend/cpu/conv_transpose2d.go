package cpu

import (
	"fmt"

	"github.com/born-ml/posemachine/internal/parallel"
	"github.com/born-ml/posemachine/internal/tensor"
)

// ConvTranspose2D performs a transposed (fractionally strided) 2D convolution
// without padding. It is the shape inverse of Conv2D with the same kernel and
// stride and is used for learned upsampling.
//
// Input shape:  [batch, in_channels, height, width]
// Kernel shape: [in_channels, out_channels, kernel_h, kernel_w]
// Bias shape:   [out_channels] or nil
// Output shape: [batch, out_channels, (height-1)*stride + kernel_h, (width-1)*stride + kernel_w]
//
// Each input element scatters a kernel-sized patch, scaled by its value, into
// the output at (h*stride, w*stride). With stride == kernel size the patches
// tile the output exactly.
func (cpu *CPUBackend) ConvTranspose2D(input, kernel, bias *tensor.RawTensor, stride int) (*tensor.RawTensor, error) {
	outShape, err := tensor.ConvTranspose2DShape(input.Shape(), kernel.Shape(), tensor.ShapeOf(bias), stride)
	if err != nil {
		return nil, err
	}
	if err := checkOperands("conv_transpose2d", input, kernel, bias); err != nil {
		return nil, err
	}

	output, err := tensor.NewRaw(outShape, input.DType(), cpu.device)
	if err != nil {
		return nil, fmt.Errorf("conv_transpose2d: failed to create output tensor: %w", err)
	}

	g := convGeometry{
		input:  input.Shape(),
		kernel: kernel.Shape(),
		output: outShape,
		stride: stride,
	}
	switch input.DType() {
	case tensor.Float32:
		convTranspose2dTyped[float32](output, input, kernel, bias, g, cpu.par)
	case tensor.Float64:
		convTranspose2dTyped[float64](output, input, kernel, bias, g, cpu.par)
	}
	return output, nil
}

func convTranspose2dTyped[T tensor.DType](output, input, kernel, bias *tensor.RawTensor, g convGeometry, par parallel.Config) {
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
	stride := g.stride

	// Each (n, co) output plane is owned by one worker.
	parallel.ForBatch(N, COut, func(n, co int) {
		plane := outputData[(n*COut+co)*HOut*WOut : (n*COut+co+1)*HOut*WOut]

		for ci := 0; ci < CIn; ci++ {
			channel := inputData[(n*CIn+ci)*H*W : (n*CIn+ci+1)*H*W]
			// Kernel slice for (ci, co): [K_h, K_w]
			kOffset := (ci*COut + co) * KH * KW
			k := kernelData[kOffset : kOffset+KH*KW]

			for h := 0; h < H; h++ {
				for w := 0; w < W; w++ {
					x := channel[h*W+w]
					for kh := 0; kh < KH; kh++ {
						row := plane[(h*stride+kh)*WOut+w*stride:]
						kRow := k[kh*KW : (kh+1)*KW]
						for kw, kv := range kRow {
							row[kw] += x * kv
						}
					}
				}
			}
		}

		if biasData != nil {
			b := biasData[co]
			for i := range plane {
				plane[i] += b
			}
		}
	}, par)
}
