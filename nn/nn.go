// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/posemachine/internal/nn"
	"github.com/born-ml/posemachine/internal/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a named weight or bias tensor.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Layers

// Conv2D represents a 2D convolutional layer.
type Conv2D[B tensor.Backend] = nn.Conv2D[B]

// NewConv2D creates a new 2D convolutional layer with Xavier initialization.
//
// Example:
//
//	backend := cpu.New()
//	conv, err := nn.NewConv2D(1, 64, 3, 3, 1, 1, true, nil, backend)
func NewConv2D[B tensor.Backend](
	inChannels, outChannels int,
	kernelH, kernelW int,
	stride, padding int,
	useBias bool,
	rng *rand.Rand,
	backend B,
) (*Conv2D[B], error) {
	return nn.NewConv2D(inChannels, outChannels, kernelH, kernelW, stride, padding, useBias, rng, backend)
}

// ConvTranspose2D represents a learned upsampling layer.
type ConvTranspose2D[B tensor.Backend] = nn.ConvTranspose2D[B]

// NewConvTranspose2D creates a transposed convolution with Xavier weights.
//
// Example:
//
//	// Upsample 15 channels by 8
//	up, err := nn.NewConvTranspose2D(15, 15, 8, 8, nil, backend)
func NewConvTranspose2D[B tensor.Backend](inChannels, outChannels, kernelSize, stride int, rng *rand.Rand, backend B) (*ConvTranspose2D[B], error) {
	return nn.NewConvTranspose2D(inChannels, outChannels, kernelSize, stride, rng, backend)
}

// MaxPool2D represents a 2D max pooling layer.
type MaxPool2D[B tensor.Backend] = nn.MaxPool2D[B]

// NewMaxPool2D creates a new 2D max pooling layer.
func NewMaxPool2D[B tensor.Backend](kernelSize, stride, padding int, backend B) (*MaxPool2D[B], error) {
	return nn.NewMaxPool2D(kernelSize, stride, padding, backend)
}

// Activations

// ReLU represents the Rectified Linear Unit activation.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a new ReLU activation.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Containers

// Sequential represents a sequential container of modules.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a new sequential container.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// LoadStateDict copies values into named parameters. Keys must match
// exactly and sizes are checked before any parameter changes.
func LoadStateDict[B tensor.Backend](params map[string]*Parameter[B], values map[string][]float32) error {
	return nn.LoadStateDict(params, values)
}

// Initialization

// Xavier creates a tensor with Xavier/Glorot uniform initialization.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, rng, backend)
}

// Zeros creates a zero-filled tensor (bias initialization).
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Zeros(shape, backend)
}
