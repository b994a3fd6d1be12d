package meta

import (
	"testing"

	"github.com/born-ml/posemachine/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metaRaw(t *testing.T, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.NewRaw(shape, tensor.Float32, tensor.Meta)
	require.NoError(t, err)
	return r
}

func TestBackendMetadata(t *testing.T) {
	b := New()
	assert.Equal(t, "meta", b.Name())
	assert.Equal(t, tensor.Meta, b.Device())
}

func TestShapes(t *testing.T) {
	b := New()

	out, err := b.Conv2D(metaRaw(t, tensor.Shape{1, 1, 384, 384}), metaRaw(t, tensor.Shape{64, 1, 3, 3}), metaRaw(t, tensor.Shape{64}), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 64, 384, 384}, out.Shape())
	assert.True(t, out.IsMeta())

	out, err = b.MaxPool2D(out, 2, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 64, 192, 192}, out.Shape())

	out, err = b.ReLU(out)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 64, 192, 192}, out.Shape())

	up, err := b.ConvTranspose2D(metaRaw(t, tensor.Shape{1, 15, 12, 12}), metaRaw(t, tensor.Shape{15, 15, 4, 4}), nil, 4)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 15, 48, 48}, up.Shape())

	sum, err := b.Add(up, metaRaw(t, tensor.Shape{1, 15, 48, 48}))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 15, 48, 48}, sum.Shape())
}

func TestErrorsMatchShapeRules(t *testing.T) {
	b := New()

	_, err := b.Conv2D(metaRaw(t, tensor.Shape{1, 2, 8, 8}), metaRaw(t, tensor.Shape{4, 3, 3, 3}), nil, 1, 1)
	assert.ErrorIs(t, err, tensor.ErrShape)

	_, err = b.ConvTranspose2D(metaRaw(t, tensor.Shape{1, 2, 8, 8}), metaRaw(t, tensor.Shape{3, 3, 2, 2}), nil, 2)
	assert.ErrorIs(t, err, tensor.ErrShape)

	_, err = b.Add(metaRaw(t, tensor.Shape{1, 15, 46, 46}), metaRaw(t, tensor.Shape{1, 15, 44, 44}))
	assert.ErrorIs(t, err, tensor.ErrShape)

	_, err = b.MaxPool2D(metaRaw(t, tensor.Shape{1, 2, 8, 8}), 2, 0, 0)
	assert.ErrorIs(t, err, tensor.ErrConfig)
}

func TestAcceptsDataTensors(t *testing.T) {
	// Shapes are all that matter; real tensors propagate as meta tensors.
	in, err := tensor.NewRaw(tensor.Shape{1, 1, 4, 4}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)

	out, err := New().ReLU(in)
	require.NoError(t, err)
	assert.True(t, out.IsMeta())
}
