package tensor

import "math/rand"

// Zeros creates a tensor filled with zeros.
// On the Meta device the tensor has a shape but no data.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float32](Shape{1, 1, 32, 32}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), b.Device())
	if err != nil {
		panic(err) // Shape validation should prevent this
	}
	return New[T, B](raw, b)
}

// Full creates a tensor filled with a specific value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	if t.raw.IsMeta() {
		return t
	}
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T, B](shape, 1, b)
}

// Uniform creates a tensor with values drawn from U(low, high).
// A nil rng uses the global math/rand source.
func Uniform[T DType, B Backend](shape Shape, low, high float64, rng *rand.Rand, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	if t.raw.IsMeta() {
		return t
	}

	float := rand.Float64
	if rng != nil {
		float = rng.Float64
	}

	data := t.Data()
	for i := range data {
		data[i] = T(low + float()*(high-low))
	}
	return t
}
