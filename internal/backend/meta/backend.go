// Package meta implements a shape-only backend. It validates and propagates
// tensor shapes exactly as a computing backend would, but allocates no data,
// so whole networks can be checked at full resolution in microseconds.
package meta

import (
	"fmt"

	"github.com/born-ml/posemachine/internal/tensor"
)

// Verify that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// Backend propagates shapes through the primitive operations.
type Backend struct{}

// New creates a meta backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend name.
func (m *Backend) Name() string {
	return "meta"
}

// Device returns the Meta device.
func (m *Backend) Device() tensor.Device {
	return tensor.Meta
}

// Conv2D returns an empty tensor with the convolution's output shape.
func (m *Backend) Conv2D(input, kernel, bias *tensor.RawTensor, stride, padding int) (*tensor.RawTensor, error) {
	shape, err := tensor.Conv2DShape(input.Shape(), kernel.Shape(), tensor.ShapeOf(bias), stride, padding)
	if err != nil {
		return nil, err
	}
	return m.empty("conv2d", shape, input, kernel, bias)
}

// ConvTranspose2D returns an empty tensor with the transposed convolution's output shape.
func (m *Backend) ConvTranspose2D(input, kernel, bias *tensor.RawTensor, stride int) (*tensor.RawTensor, error) {
	shape, err := tensor.ConvTranspose2DShape(input.Shape(), kernel.Shape(), tensor.ShapeOf(bias), stride)
	if err != nil {
		return nil, err
	}
	return m.empty("conv_transpose2d", shape, input, kernel, bias)
}

// MaxPool2D returns an empty tensor with the pooled shape.
func (m *Backend) MaxPool2D(input *tensor.RawTensor, kernelSize, stride, padding int) (*tensor.RawTensor, error) {
	shape, err := tensor.MaxPool2DShape(input.Shape(), kernelSize, stride, padding)
	if err != nil {
		return nil, err
	}
	return m.empty("maxpool2d", shape, input)
}

// ReLU returns an empty tensor with x's shape.
func (m *Backend) ReLU(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return m.empty("relu", x.Shape(), x)
}

// Add returns an empty tensor after checking that a and b have identical shapes.
func (m *Backend) Add(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	shape, err := tensor.AddShape(a.Shape(), b.Shape())
	if err != nil {
		return nil, err
	}
	return m.empty("add", shape, a, b)
}

func (m *Backend) empty(op string, shape tensor.Shape, operands ...*tensor.RawTensor) (*tensor.RawTensor, error) {
	dtype := operands[0].DType()
	for _, t := range operands[1:] {
		if t != nil && t.DType() != dtype {
			return nil, fmt.Errorf("%s: mixed dtypes %s and %s", op, dtype, t.DType())
		}
	}

	out, err := tensor.NewRaw(shape, dtype, tensor.Meta)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
