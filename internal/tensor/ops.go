package tensor

// Add performs element-wise addition. Shapes must be identical; there is no
// broadcasting.
//
// Example:
//
//	a := tensor.Ones[float32](Shape{1, 15, 48, 48}, backend)
//	b := tensor.Ones[float32](Shape{1, 15, 48, 48}, backend)
//	c, err := a.Add(b) // all 2
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) (*Tensor[T, B], error) {
	result, err := t.backend.Add(t.raw, other.raw)
	if err != nil {
		return nil, err
	}
	return New[T, B](result, t.backend), nil
}

// ReLU applies max(0, x) element-wise and returns a new tensor.
func (t *Tensor[T, B]) ReLU() (*Tensor[T, B], error) {
	result, err := t.backend.ReLU(t.raw)
	if err != nil {
		return nil, err
	}
	return New[T, B](result, t.backend), nil
}
