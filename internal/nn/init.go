package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/posemachine/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// A nil rng uses the global math/rand source; pass a seeded one for
// reproducible networks.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand, backend B) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return tensor.Uniform[float32](shape, -bound, bound, rng, backend)
}

// Zeros creates a tensor filled with zeros.
//
// This is used for bias initialization.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

func checkPositive(field string, value int) error {
	if value <= 0 {
		return &tensor.ConfigError{Field: field, Value: value, Details: "must be > 0"}
	}
	return nil
}
