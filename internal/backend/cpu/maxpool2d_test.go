package cpu

import (
	"testing"

	"github.com/born-ml/posemachine/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq16(t *testing.T) *tensor.RawTensor {
	values := make([]float32, 16)
	for i := range values {
		values[i] = float32(i + 1)
	}
	return raw32(t, tensor.Shape{1, 1, 4, 4}, values...)
}

// TestMaxPool2D_BasicForward tests basic max pooling correctness.
func TestMaxPool2D_BasicForward(t *testing.T) {
	backend := New()

	out, err := backend.MaxPool2D(seq16(t), 2, 2, 0)
	require.NoError(t, err)

	// [[1,2,3,4],      -> [[6,8],
	//  [5,6,7,8],         [14,16]]
	//  [9,10,11,12],
	//  [13,14,15,16]]
	assert.Equal(t, tensor.Shape{1, 1, 2, 2}, out.Shape())
	assert.Equal(t, []float32{6, 8, 14, 16}, out.AsFloat32())
}

// TestMaxPool2D_Padding tests that padded positions never win the max.
func TestMaxPool2D_Padding(t *testing.T) {
	backend := New()

	input := raw32(t, tensor.Shape{1, 1, 3, 3}, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	out, err := backend.MaxPool2D(input, 3, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 1, 2, 2}, out.Shape())
	assert.Equal(t, []float32{5, 6, 8, 9}, out.AsFloat32())

	negative := raw32(t, tensor.Shape{1, 1, 2, 2}, -5, -3, -4, -1)
	out, err = backend.MaxPool2D(negative, 2, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []float32{-5, -3, -4, -1}, out.AsFloat32())
}

func TestMaxPool2D_NegativeValues(t *testing.T) {
	backend := New()

	input := raw32(t, tensor.Shape{1, 1, 2, 2}, -5, -3, -4, -1)
	out, err := backend.MaxPool2D(input, 2, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []float32{-1}, out.AsFloat32())
}

// TestMaxPool2D_ChannelsIndependent tests that each channel is pooled separately.
func TestMaxPool2D_ChannelsIndependent(t *testing.T) {
	backend := NewWithConfig(parallelCfg)

	input := raw32(t, tensor.Shape{2, 2, 2, 2},
		1, 2, 3, 4,
		-1, -2, -3, -4,
		10, 0, 0, 0,
		0, 0, 0, 20,
	)
	out, err := backend.MaxPool2D(input, 2, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2, 1, 1}, out.Shape())
	assert.Equal(t, []float32{4, -1, 10, 20}, out.AsFloat32())
}

func TestMaxPool2D_Float64(t *testing.T) {
	backend := New()

	input := raw64(t, tensor.Shape{1, 1, 2, 2}, 0.25, 0.75, 0.5, 0.125)
	out, err := backend.MaxPool2D(input, 2, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.75}, out.AsFloat64())
}

func TestMaxPool2D_InvalidArguments(t *testing.T) {
	backend := New()

	_, err := backend.MaxPool2D(seq16(t), 0, 2, 0)
	assert.ErrorIs(t, err, tensor.ErrConfig)

	_, err = backend.MaxPool2D(seq16(t), 2, 2, 2)
	assert.ErrorIs(t, err, tensor.ErrConfig)

	_, err = backend.MaxPool2D(raw32(t, tensor.Shape{1, 4, 4}), 2, 2, 0)
	assert.ErrorIs(t, err, tensor.ErrShape)
}
