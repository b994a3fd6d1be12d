package cpm

import (
	"math"
	"testing"

	"github.com/born-ml/posemachine/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPeaks tests argmax location per batch item and keypoint.
func TestPeaks(t *testing.T) {
	nan := float32(math.NaN())
	heatmaps, err := tensor.FromSlice([]float32{
		// batch 0, keypoint 0
		0, 1, 0,
		0, 0, 9,
		// batch 0, keypoint 1: tie resolves to the first position
		5, 0, 0,
		0, 5, 0,
		// batch 1, keypoint 0: NaN never wins
		nan, -3, -1,
		-2, nan, -4,
		// batch 1, keypoint 1
		0, 0, 0,
		0, 0, 0.5,
	}, tensor.Shape{2, 2, 2, 3}, cpuBackend())
	require.NoError(t, err)

	peaks, err := Peaks(heatmaps)
	require.NoError(t, err)
	assert.Equal(t, []Peak{
		{Batch: 0, Keypoint: 0, Y: 1, X: 2, Value: 9},
		{Batch: 0, Keypoint: 1, Y: 0, X: 0, Value: 5},
		{Batch: 1, Keypoint: 0, Y: 0, X: 2, Value: -1},
		{Batch: 1, Keypoint: 1, Y: 1, X: 2, Value: 0.5},
	}, peaks)
}

// TestPeaks_Errors tests rank and data checks.
func TestPeaks_Errors(t *testing.T) {
	flat, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3}, cpuBackend())
	require.NoError(t, err)
	_, err = Peaks(flat)
	assert.ErrorIs(t, err, tensor.ErrShape)

	_, err = Peaks(metaInput(tensor.Shape{1, 15, 32, 32}))
	assert.ErrorContains(t, err, "no data")
}
