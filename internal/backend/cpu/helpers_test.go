package cpu

import (
	"math/rand"
	"testing"

	"github.com/born-ml/posemachine/internal/parallel"
	"github.com/born-ml/posemachine/internal/tensor"
	"github.com/stretchr/testify/require"
)

// sequential disables worker fan-out so results can be compared against parallel runs.
var sequential = parallel.Config{Enabled: false}

// parallelCfg forces fan-out even for tiny tensors.
var parallelCfg = parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}

func raw32(t *testing.T, shape tensor.Shape, values ...float32) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	if len(values) > 0 {
		require.Len(t, values, shape.NumElements())
		copy(r.AsFloat32(), values)
	}
	return r
}

func raw64(t *testing.T, shape tensor.Shape, values ...float64) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.NewRaw(shape, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	copy(r.AsFloat64(), values)
	return r
}

func randRaw(t *testing.T, rng *rand.Rand, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	r := raw32(t, shape)
	data := r.AsFloat32()
	for i := range data {
		data[i] = rng.Float32()*2 - 1
	}
	return r
}
