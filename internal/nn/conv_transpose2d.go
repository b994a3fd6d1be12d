package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/posemachine/internal/tensor"
)

// ConvTranspose2D is a learned upsampling layer (transposed convolution,
// no padding).
//
// Input shape:  [batch, in_channels, height, width]
// Weight shape: [in_channels, out_channels, kernel_size, kernel_size]
// Bias shape:   [out_channels]
// Output shape: [batch, out_channels, (height-1)*stride + kernel_size, (width-1)*stride + kernel_size]
//
// With stride equal to kernel size the layer upsamples by exactly that factor.
type ConvTranspose2D[B tensor.Backend] struct {
	inChannels  int
	outChannels int
	kernelSize  int
	stride      int

	weight *Parameter[B] // [in_channels, out_channels, kernel_size, kernel_size]
	bias   *Parameter[B] // [out_channels]

	backend B
}

// NewConvTranspose2D creates a transposed convolution with Xavier weights and
// zero bias.
func NewConvTranspose2D[B tensor.Backend](
	inChannels, outChannels int,
	kernelSize, stride int,
	rng *rand.Rand,
	backend B,
) (*ConvTranspose2D[B], error) {
	for _, check := range []struct {
		field string
		value int
	}{
		{"in_channels", inChannels},
		{"out_channels", outChannels},
		{"kernel_size", kernelSize},
		{"stride", stride},
	} {
		if err := checkPositive(check.field, check.value); err != nil {
			return nil, fmt.Errorf("conv_transpose2d: %w", err)
		}
	}

	fanIn := outChannels * kernelSize * kernelSize
	fanOut := inChannels * kernelSize * kernelSize
	weight := Xavier(fanIn, fanOut, tensor.Shape{inChannels, outChannels, kernelSize, kernelSize}, rng, backend)

	return &ConvTranspose2D[B]{
		inChannels:  inChannels,
		outChannels: outChannels,
		kernelSize:  kernelSize,
		stride:      stride,
		weight:      NewParameter("weight", weight),
		bias:        NewParameter("bias", Zeros(tensor.Shape{outChannels}, backend)),
		backend:     backend,
	}, nil
}

// Forward performs the forward pass.
func (c *ConvTranspose2D[B]) Forward(input *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	outputRaw, err := c.backend.ConvTranspose2D(input.Raw(), c.weight.Tensor().Raw(), c.bias.Tensor().Raw(), c.stride)
	if err != nil {
		return nil, err
	}
	return tensor.New[float32, B](outputRaw, c.backend), nil
}

// Parameters returns the weight and bias.
func (c *ConvTranspose2D[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{c.weight, c.bias}
}

// Weight returns the weight parameter.
func (c *ConvTranspose2D[B]) Weight() *Parameter[B] {
	return c.weight
}

// Bias returns the bias parameter.
func (c *ConvTranspose2D[B]) Bias() *Parameter[B] {
	return c.bias
}

// String returns a string representation of the layer.
func (c *ConvTranspose2D[B]) String() string {
	return fmt.Sprintf("ConvTranspose2D(in_channels=%d, out_channels=%d, kernel_size=%d, stride=%d)",
		c.inChannels, c.outChannels, c.kernelSize, c.stride)
}
