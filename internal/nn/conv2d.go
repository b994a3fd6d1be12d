package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/posemachine/internal/tensor"
)

// Conv2D is a 2D convolutional layer.
//
// Performs convolution: output = Conv2D(input, weight) + bias
//
// Input shape:  [batch, in_channels, height, width]
// Weight shape: [out_channels, in_channels, kernel_h, kernel_w]
// Bias shape:   [out_channels]
// Output shape: [batch, out_channels, out_h, out_w]
//
// Where:
//
//	out_h = (height + 2*padding - kernel_h) / stride + 1
//	out_w = (width + 2*padding - kernel_w) / stride + 1
//
// Example:
//
//	// 3 channels -> 64 channels, 3x3 kernel, spatial size preserved
//	conv, err := nn.NewConv2D(3, 64, 3, 3, 1, 1, true, rng, backend)
//
//	input := tensor.Zeros[float32](tensor.Shape{1, 3, 32, 32}, backend)
//	output, err := conv.Forward(input) // [1, 64, 32, 32]
type Conv2D[B tensor.Backend] struct {
	inChannels  int
	outChannels int
	kernelSize  [2]int
	stride      int
	padding     int
	useBias     bool

	weight *Parameter[B] // [out_channels, in_channels, kernel_h, kernel_w]
	bias   *Parameter[B] // [out_channels] or nil

	backend B
}

// NewConv2D creates a new 2D convolutional layer with Xavier initialization.
//
// Parameters:
//   - inChannels: Number of input channels
//   - outChannels: Number of output channels (number of filters)
//   - kernelH, kernelW: Kernel dimensions
//   - stride: Stride for convolution (commonly 1 or 2)
//   - padding: Zero padding to apply to input (commonly 0, 1, 2)
//   - useBias: Whether to include bias term
//   - rng: Source for weight initialization (nil uses the global source)
//   - backend: Backend for computation
//
// Initialization:
//   - Weights: Xavier/Glorot uniform initialization
//   - Bias: Zeros
//
// Returns a *tensor.ConfigError for non-positive sizes or negative padding.
func NewConv2D[B tensor.Backend](
	inChannels, outChannels int,
	kernelH, kernelW int,
	stride, padding int,
	useBias bool,
	rng *rand.Rand,
	backend B,
) (*Conv2D[B], error) {
	for _, check := range []struct {
		field string
		value int
	}{
		{"in_channels", inChannels},
		{"out_channels", outChannels},
		{"kernel_h", kernelH},
		{"kernel_w", kernelW},
		{"stride", stride},
	} {
		if err := checkPositive(check.field, check.value); err != nil {
			return nil, fmt.Errorf("conv2d: %w", err)
		}
	}
	if padding < 0 {
		return nil, fmt.Errorf("conv2d: %w", &tensor.ConfigError{Field: "padding", Value: padding, Details: "must be >= 0"})
	}

	// For Conv2D:
	//   fan_in = in_channels * kernel_h * kernel_w
	//   fan_out = out_channels * kernel_h * kernel_w
	fanIn := inChannels * kernelH * kernelW
	fanOut := outChannels * kernelH * kernelW
	weight := Xavier(fanIn, fanOut, tensor.Shape{outChannels, inChannels, kernelH, kernelW}, rng, backend)

	var biasParam *Parameter[B]
	if useBias {
		biasParam = NewParameter("bias", Zeros(tensor.Shape{outChannels}, backend))
	}

	return &Conv2D[B]{
		inChannels:  inChannels,
		outChannels: outChannels,
		kernelSize:  [2]int{kernelH, kernelW},
		stride:      stride,
		padding:     padding,
		useBias:     useBias,
		weight:      NewParameter("weight", weight),
		bias:        biasParam,
		backend:     backend,
	}, nil
}

// Forward performs the forward pass.
//
// Input: [batch, in_channels, height, width]
// Output: [batch, out_channels, out_h, out_w].
func (c *Conv2D[B]) Forward(input *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	var bias *tensor.RawTensor
	if c.useBias {
		bias = c.bias.Tensor().Raw()
	}

	outputRaw, err := c.backend.Conv2D(input.Raw(), c.weight.Tensor().Raw(), bias, c.stride, c.padding)
	if err != nil {
		return nil, err
	}
	return tensor.New[float32, B](outputRaw, c.backend), nil
}

// Parameters returns the weight, followed by the bias when present.
func (c *Conv2D[B]) Parameters() []*Parameter[B] {
	if c.useBias {
		return []*Parameter[B]{c.weight, c.bias}
	}
	return []*Parameter[B]{c.weight}
}

// String returns a string representation of the layer.
func (c *Conv2D[B]) String() string {
	return fmt.Sprintf("Conv2D(in_channels=%d, out_channels=%d, kernel_size=(%d, %d), stride=%d, padding=%d, bias=%v)",
		c.inChannels, c.outChannels,
		c.kernelSize[0], c.kernelSize[1],
		c.stride, c.padding, c.useBias)
}

// OutChannels returns the number of output channels.
func (c *Conv2D[B]) OutChannels() int {
	return c.outChannels
}

// InChannels returns the number of input channels.
func (c *Conv2D[B]) InChannels() int {
	return c.inChannels
}

// KernelSize returns the kernel size [height, width].
func (c *Conv2D[B]) KernelSize() [2]int {
	return c.kernelSize
}

// Weight returns the weight parameter.
func (c *Conv2D[B]) Weight() *Parameter[B] {
	return c.weight
}

// Bias returns the bias parameter, or nil when the layer has none.
func (c *Conv2D[B]) Bias() *Parameter[B] {
	return c.bias
}

// ComputeOutputSize computes output spatial dimensions for given input size.
//
// Returns: [out_height, out_width].
func (c *Conv2D[B]) ComputeOutputSize(inputH, inputW int) [2]int {
	outH := (inputH+2*c.padding-c.kernelSize[0])/c.stride + 1
	outW := (inputW+2*c.padding-c.kernelSize[1])/c.stride + 1
	return [2]int{outH, outW}
}
