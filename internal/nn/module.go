// Package nn implements the neural network layers the pose machine is built from.
//
// This package provides:
//   - Module interface: Base interface for all NN components
//   - Parameter: Named weight and bias tensors
//   - Conv2D, ConvTranspose2D: Convolution and learned upsampling
//   - MaxPool2D, ReLU: Parameter-free layers
//
// Layers own their parameters and never mutate them during Forward, so one
// layer may serve concurrent Forward calls.
package nn

import (
	"github.com/born-ml/posemachine/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: Compute output from input, or report why the input is invalid
//   - Parameters: Return all parameters owned by the module
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	// On error the returned tensor is nil.
	Forward(input *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error)

	// Parameters returns all parameters of this module.
	// Returns an empty slice for modules without parameters
	// (e.g., activation functions).
	Parameters() []*Parameter[B]
}
