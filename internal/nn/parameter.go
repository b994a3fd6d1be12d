package nn

import (
	"fmt"

	"github.com/born-ml/posemachine/internal/tensor"
)

// Parameter is a named tensor owned by the layer that uses it, typically a
// weight or bias. Its shape is fixed at construction; its values are read
// during inference and may only be replaced through Load.
//
// Example:
//
//	weight := conv.Parameters()[0]
//	fmt.Println(weight.Name(), weight.Shape()) // weight [64 1 3 3]
//	err := weight.Load(pretrained)
type Parameter[B tensor.Backend] struct {
	name   string                     // Parameter name (e.g., "weight", "bias")
	tensor *tensor.Tensor[float32, B] // The parameter tensor
}

// NewParameter creates a new parameter.
//
// The parameter tensor should be initialized before creating the Parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// Shape returns the parameter's fixed shape.
func (p *Parameter[B]) Shape() tensor.Shape {
	return p.tensor.Shape()
}

// Load copies values into the parameter. The number of values must match
// the parameter's element count.
func (p *Parameter[B]) Load(values []float32) error {
	if err := p.checkLoad(values); err != nil {
		return err
	}
	copy(p.tensor.Data(), values)
	return nil
}

func (p *Parameter[B]) checkLoad(values []float32) error {
	if p.tensor.Raw().IsMeta() {
		return fmt.Errorf("load %s: parameter on %s has no data", p.name, p.tensor.Device())
	}
	if len(values) != p.tensor.NumElements() {
		return &tensor.ShapeError{
			Op:       "load " + p.name,
			Expected: p.Shape().Clone(),
			Actual:   tensor.Shape{len(values)},
			Details:  "element count mismatch",
		}
	}
	return nil
}
