// Package cpu implements the reference CPU backend in pure Go.
//
// Work is split across output planes ([batch, channel] pairs) with the
// parallel package; every output element is accumulated in a fixed order,
// so results do not depend on the number of workers.
package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/posemachine/internal/parallel"
	"github.com/born-ml/posemachine/internal/tensor"
)

// Verify that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a new CPU backend configured from the environment.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend with an explicit parallelism setting.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition of two tensors with identical shapes.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	outShape, err := tensor.AddShape(a.Shape(), b.Shape())
	if err != nil {
		return nil, err
	}
	if err := checkOperands("add", a, b); err != nil {
		return nil, err
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		return nil, fmt.Errorf("add: failed to create result tensor: %w", err)
	}

	switch a.DType() {
	case tensor.Float32:
		addTyped[float32](result, a, b)
	case tensor.Float64:
		addTyped[float64](result, a, b)
	}
	return result, nil
}

func addTyped[T tensor.DType](result, a, b *tensor.RawTensor) {
	dst := tensor.Data[T](result)
	x := tensor.Data[T](a)
	y := tensor.Data[T](b)
	for i := range dst {
		dst[i] = x[i] + y[i]
	}
}

// ReLU applies max(0, x) element-wise. The input is left untouched.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := checkOperands("relu", x); err != nil {
		return nil, err
	}

	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		return nil, fmt.Errorf("relu: failed to create result tensor: %w", err)
	}

	switch x.DType() {
	case tensor.Float32:
		reluTyped[float32](result, x)
	case tensor.Float64:
		reluTyped[float64](result, x)
	}
	return result, nil
}

func reluTyped[T tensor.DType](result, x *tensor.RawTensor) {
	dst := tensor.Data[T](result)
	for i, v := range tensor.Data[T](x) {
		if v > 0 || math.IsNaN(float64(v)) {
			dst[i] = v
		}
	}
}

// checkOperands verifies that all non-nil tensors hold data of one supported
// floating-point dtype.
func checkOperands(op string, ts ...*tensor.RawTensor) error {
	var dtype tensor.DataType
	first := true
	for _, t := range ts {
		if t == nil {
			continue
		}
		if t.IsMeta() {
			return fmt.Errorf("%s: tensor %v on %s has no data", op, t.Shape(), t.Device())
		}
		if first {
			dtype = t.DType()
			first = false
			continue
		}
		if t.DType() != dtype {
			return fmt.Errorf("%s: mixed dtypes %s and %s", op, dtype, t.DType())
		}
	}
	if !first && dtype != tensor.Float32 && dtype != tensor.Float64 {
		return fmt.Errorf("%s: unsupported dtype %s", op, dtype)
	}
	return nil
}
