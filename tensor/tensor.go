// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/born-ml/posemachine/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor data types (float32, float64).
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Device represents where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU  Device = tensor.CPU
	Meta Device = tensor.Meta // Shape only, no data.
)

// Shape represents the dimensions of a tensor.
// Example: Shape{1, 3, 32, 32} is one 3-channel 32x32 image.
type Shape = tensor.Shape

// Tensor is a generic type-safe tensor.
//
// T is the data type (float32, float64).
// B is the backend implementation (CPU, meta).
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// Creation functions

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{1, 1, 32, 32}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T, B](shape, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Ones[T, B](shape, b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Full[float32](tensor.Shape{1, 1, 2, 2}, 0.5, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full[T, B](shape, value, b)
}

// Uniform creates a tensor with values drawn from U(low, high).
// A nil rng uses the global math/rand source.
func Uniform[T DType, B Backend](shape Shape, low, high float64, rng *rand.Rand, b B) *Tensor[T, B] {
	return tensor.Uniform[T, B](shape, low, high, rng, b)
}

// FromSlice creates a tensor from a Go slice. The data is copied.
//
// Example:
//
//	backend := cpu.New()
//	data := []float32{1, 2, 3, 4}
//	x, err := tensor.FromSlice(data, tensor.Shape{1, 1, 2, 2}, backend)
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice[T, B](data, shape, b)
}

// New creates a tensor from a raw tensor.
//
// This is a low-level function. Most users should use creation functions like
// Zeros or FromSlice instead.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return tensor.New[T, B](raw, b)
}

// NewRaw creates a new raw tensor with the given shape, dtype, and device.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// Manipulation functions

// Cat concatenates tensors along a dimension. All other dimensions must match.
//
// Example:
//
//	// image [1, 1, H, W] + heatmaps [1, 15, H, W] -> [1, 16, H, W]
//	input, err := tensor.Cat([]*tensor.Tensor[float32, B]{image, heatmaps}, 1)
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) (*Tensor[T, B], error) {
	return tensor.Cat(tensors, dim)
}
