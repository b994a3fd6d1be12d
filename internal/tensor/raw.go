package tensor

import (
	"fmt"
	"unsafe"
)

// Device represents the compute device for tensor operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	// Meta tensors carry a shape and dtype but no data. They let a graph be
	// shape-checked at full resolution without allocating activations.
	Meta
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case Meta:
		return "Meta"
	default:
		return "Unknown"
	}
}

// RawTensor is the low-level tensor representation: a contiguous row-major
// buffer plus shape, dtype and device. Meta tensors have no buffer.
type RawTensor struct {
	data   []byte // nil for Meta tensors
	shape  Shape
	stride []int
	dtype  DataType
	device Device
}

// NewRaw creates a new RawTensor with the given shape and type.
// Memory is zero-initialized, except on the Meta device where none is allocated.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	r := &RawTensor{
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}
	if device != Meta {
		r.data = make([]byte, shape.NumElements()*dtype.Size())
	}
	return r, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// IsMeta reports whether the tensor has no backing data.
func (r *RawTensor) IsMeta() bool {
	return r.data == nil
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.data
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32 or the tensor has no data.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	return dataAs[float32](r)
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64 or the tensor has no data.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	return dataAs[float64](r)
}

// Clone returns a deep copy of the tensor.
func (r *RawTensor) Clone() *RawTensor {
	c := &RawTensor{
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
	}
	if r.data != nil {
		c.data = append([]byte(nil), r.data...)
	}
	return c
}

// Data returns a typed view of r's elements. T must match r's dtype.
func Data[T DType](r *RawTensor) []T {
	var dummy T
	if dt := inferDataType(dummy); dt != r.dtype {
		panic(fmt.Sprintf("tensor dtype is %s, not %s", r.dtype, dt))
	}
	return dataAs[T](r)
}

func dataAs[T DType](r *RawTensor) []T {
	if r.data == nil {
		panic(fmt.Sprintf("tensor %v on %s has no data", r.shape, r.device))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, length bounded by NumElements()
	return unsafe.Slice((*T)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// ShapeOf returns r's shape, or nil when r is nil (e.g. an absent bias).
func ShapeOf(r *RawTensor) Shape {
	if r == nil {
		return nil
	}
	return r.shape
}
