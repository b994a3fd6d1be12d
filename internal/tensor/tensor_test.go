package tensor

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStub = errors.New("stub backend computes nothing")

// stubBackend only supplies a device for tensor creation.
type stubBackend struct{ device Device }

func (s stubBackend) Conv2D(_, _, _ *RawTensor, _, _ int) (*RawTensor, error) { return nil, errStub }
func (s stubBackend) ConvTranspose2D(_, _, _ *RawTensor, _ int) (*RawTensor, error) {
	return nil, errStub
}
func (s stubBackend) MaxPool2D(_ *RawTensor, _, _, _ int) (*RawTensor, error) { return nil, errStub }
func (s stubBackend) ReLU(_ *RawTensor) (*RawTensor, error)                   { return nil, errStub }
func (s stubBackend) Add(_, _ *RawTensor) (*RawTensor, error)                 { return nil, errStub }
func (s stubBackend) Name() string                                            { return "stub" }
func (s stubBackend) Device() Device                                          { return s.device }

func TestFromSlice(t *testing.T) {
	b := stubBackend{CPU}

	x, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{1, 1, 2, 3}, b)
	require.NoError(t, err)
	assert.Equal(t, Shape{1, 1, 2, 3}, x.Shape())
	assert.Equal(t, Float32, x.DType())
	assert.Equal(t, float32(6), x.At(0, 0, 1, 2))
	assert.Equal(t, float32(2), x.At(0, 0, 0, 1))

	_, err = FromSlice([]float32{1, 2, 3}, Shape{1, 1, 2, 3}, b)
	assert.Error(t, err)
}

func TestFromSlice_CopiesData(t *testing.T) {
	src := []float64{1, 2}
	x, err := FromSlice(src, Shape{2}, stubBackend{CPU})
	require.NoError(t, err)

	src[0] = 42
	assert.Equal(t, 1.0, x.Data()[0])
}

func TestSetAndClone(t *testing.T) {
	x := Zeros[float32](Shape{1, 2, 2, 2}, stubBackend{CPU})
	x.Set(7, 0, 1, 1, 0)
	assert.Equal(t, float32(7), x.Data()[6])

	c := x.Clone()
	c.Set(1, 0, 1, 1, 0)
	assert.Equal(t, float32(7), x.At(0, 1, 1, 0))
	assert.Equal(t, float32(1), c.At(0, 1, 1, 0))

	assert.Panics(t, func() { x.At(0, 2, 0, 0) })
	assert.Panics(t, func() { x.At(0, 0) })
}

func TestCreation(t *testing.T) {
	b := stubBackend{CPU}

	ones := Ones[float64](Shape{2, 3}, b)
	for _, v := range ones.Data() {
		assert.Equal(t, 1.0, v)
	}

	full := Full[float32](Shape{4}, 2.5, b)
	assert.Equal(t, []float32{2.5, 2.5, 2.5, 2.5}, full.Data())

	u1 := Uniform[float32](Shape{64}, -0.5, 0.5, rand.New(rand.NewSource(7)), b)
	u2 := Uniform[float32](Shape{64}, -0.5, 0.5, rand.New(rand.NewSource(7)), b)
	assert.Equal(t, u1.Data(), u2.Data())
	for _, v := range u1.Data() {
		assert.GreaterOrEqual(t, v, float32(-0.5))
		assert.Less(t, v, float32(0.5))
	}
}

func TestMetaTensor(t *testing.T) {
	b := stubBackend{Meta}

	x := Zeros[float32](Shape{1, 64, 384, 384}, b)
	assert.True(t, x.Raw().IsMeta())
	assert.Equal(t, Meta, x.Device())
	assert.Equal(t, 64*384*384, x.NumElements())
	assert.Nil(t, x.Raw().Data())
	assert.Panics(t, func() { x.Data() })

	// Initializers leave meta tensors empty instead of panicking.
	assert.NotPanics(t, func() {
		Ones[float32](Shape{2}, b)
		Uniform[float32](Shape{2}, 0, 1, nil, b)
	})

	_, err := FromSlice([]float32{1}, Shape{1}, b)
	assert.Error(t, err)
}

func TestRawTensor(t *testing.T) {
	r, err := NewRaw(Shape{2, 3, 4}, Float64, CPU)
	require.NoError(t, err)
	assert.Equal(t, []int{12, 4, 1}, r.Strides())
	assert.Equal(t, 24*8, r.ByteSize())
	assert.Len(t, r.AsFloat64(), 24)
	assert.Panics(t, func() { r.AsFloat32() })
	assert.Panics(t, func() { Data[float32](r) })

	_, err = NewRaw(Shape{2, 0}, Float32, CPU)
	assert.Error(t, err)

	assert.Nil(t, ShapeOf(nil))
	assert.Equal(t, Shape{2, 3, 4}, ShapeOf(r))
}

func TestCat(t *testing.T) {
	b := stubBackend{CPU}

	// image [1, 1, 2, 2] + heatmaps [1, 2, 2, 2] along channels
	image, err := FromSlice([]float32{1, 2, 3, 4}, Shape{1, 1, 2, 2}, b)
	require.NoError(t, err)
	heat, err := FromSlice([]float32{5, 6, 7, 8, 9, 10, 11, 12}, Shape{1, 2, 2, 2}, b)
	require.NoError(t, err)

	out, err := Cat([]*Tensor[float32, stubBackend]{image, heat}, 1)
	require.NoError(t, err)
	assert.Equal(t, Shape{1, 3, 2, 2}, out.Shape())
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, out.Data())
}

func TestCat_BatchInterleave(t *testing.T) {
	b := stubBackend{CPU}

	a, err := FromSlice([]float32{1, 2}, Shape{2, 1, 1, 1}, b)
	require.NoError(t, err)
	c, err := FromSlice([]float32{10, 20, 30, 40}, Shape{2, 2, 1, 1}, b)
	require.NoError(t, err)

	out, err := Cat([]*Tensor[float32, stubBackend]{a, c}, 1)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 10, 20, 2, 30, 40}, out.Data())
}

func TestCat_Mismatch(t *testing.T) {
	b := stubBackend{CPU}
	a := Zeros[float32](Shape{1, 1, 4, 4}, b)
	c := Zeros[float32](Shape{1, 1, 2, 2}, b)

	out, err := Cat([]*Tensor[float32, stubBackend]{a, c}, 1)
	assert.ErrorIs(t, err, ErrShape)
	assert.Nil(t, out)
}

func TestCat_Meta(t *testing.T) {
	b := stubBackend{Meta}
	a := Zeros[float32](Shape{1, 1, 384, 384}, b)
	c := Zeros[float32](Shape{1, 15, 384, 384}, b)

	out, err := Cat([]*Tensor[float32, stubBackend]{a, c}, 1)
	require.NoError(t, err)
	assert.Equal(t, Shape{1, 16, 384, 384}, out.Shape())
	assert.True(t, out.Raw().IsMeta())
}

func TestShapeErrorMessages(t *testing.T) {
	err := &ShapeError{Op: "add", Expected: Shape{1, 2}, Actual: Shape{1, 3}}
	assert.Equal(t, "add: expected shape [1 2], got [1 3]", err.Error())

	err = &ShapeError{Op: "maxpool2d", Actual: Shape{1, 1, 3, 4}, Details: "odd height"}
	assert.Equal(t, "maxpool2d: shape [1 1 3 4]: odd height", err.Error())
	assert.ErrorIs(t, err, ErrShape)
}

// TestTensorOps_Errors tests that backend failures surface with a nil result.
func TestTensorOps_Errors(t *testing.T) {
	b := stubBackend{CPU}
	x := Zeros[float32](Shape{1, 1, 2, 2}, b)

	sum, err := x.Add(x)
	assert.Nil(t, sum)
	assert.ErrorIs(t, err, errStub)

	relu, err := x.ReLU()
	assert.Nil(t, relu)
	assert.ErrorIs(t, err, errStub)
}
