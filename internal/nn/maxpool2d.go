package nn

import (
	"fmt"

	"github.com/born-ml/posemachine/internal/tensor"
)

// MaxPool2D is a 2D max pooling layer.
//
// Max pooling reduces spatial dimensions by taking the maximum value
// in each window. Unlike Conv2D, MaxPool2D has no learnable parameters.
//
// Input shape:  [batch, channels, height, width]
// Output shape: [batch, channels, out_height, out_width]
//
// Where:
//
//	out_height = (height + 2*padding - kernelSize) / stride + 1
//	out_width = (width + 2*padding - kernelSize) / stride + 1
//
// Example:
//
//	// 2x2 max pooling with stride 2
//	pool, err := nn.NewMaxPool2D(2, 2, 0, backend)
//
//	input := tensor.Zeros[float32](tensor.Shape{1, 64, 32, 32}, backend)
//	output, err := pool.Forward(input) // [1, 64, 16, 16]
type MaxPool2D[B tensor.Backend] struct {
	kernelSize int
	stride     int
	padding    int
	backend    B
}

// NewMaxPool2D creates a new 2D max pooling layer.
//
// Padding may not exceed half the kernel size, so every window covers at
// least one real input element.
func NewMaxPool2D[B tensor.Backend](kernelSize, stride, padding int, backend B) (*MaxPool2D[B], error) {
	if err := checkPositive("kernel_size", kernelSize); err != nil {
		return nil, fmt.Errorf("maxpool2d: %w", err)
	}
	if err := checkPositive("stride", stride); err != nil {
		return nil, fmt.Errorf("maxpool2d: %w", err)
	}
	if padding < 0 || padding > kernelSize/2 {
		return nil, fmt.Errorf("maxpool2d: %w", &tensor.ConfigError{
			Field:   "padding",
			Value:   padding,
			Details: fmt.Sprintf("must be in [0, %d]", kernelSize/2),
		})
	}

	return &MaxPool2D[B]{
		kernelSize: kernelSize,
		stride:     stride,
		padding:    padding,
		backend:    backend,
	}, nil
}

// Forward performs the forward pass.
//
// Input: [batch, channels, height, width]
// Output: [batch, channels, out_height, out_width].
func (m *MaxPool2D[B]) Forward(input *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	outputRaw, err := m.backend.MaxPool2D(input.Raw(), m.kernelSize, m.stride, m.padding)
	if err != nil {
		return nil, err
	}
	return tensor.New[float32, B](outputRaw, m.backend), nil
}

// Parameters returns all trainable parameters (empty for MaxPool2D).
func (m *MaxPool2D[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// String returns a string representation of the layer.
func (m *MaxPool2D[B]) String() string {
	return fmt.Sprintf("MaxPool2D(kernel_size=%d, stride=%d, padding=%d)",
		m.kernelSize, m.stride, m.padding)
}

// ComputeOutputSize computes output spatial dimensions for given input size.
//
// Returns: [out_height, out_width].
func (m *MaxPool2D[B]) ComputeOutputSize(inputH, inputW int) [2]int {
	outH := (inputH+2*m.padding-m.kernelSize)/m.stride + 1
	outW := (inputW+2*m.padding-m.kernelSize)/m.stride + 1
	return [2]int{outH, outW}
}
