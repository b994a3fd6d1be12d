package nn

import (
	"fmt"
	"slices"
	"strings"

	"github.com/born-ml/posemachine/internal/tensor"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input, creating a
// sequential pipeline of transformations.
//
// Example:
//
//	block := nn.NewSequential(
//	    conv1, nn.NewReLU[B](),
//	    conv2, nn.NewReLU[B](),
//	)
//
//	output, err := block.Forward(input)
//
// This is equivalent to:
//
//	h1, err := conv1.Forward(input)
//	h2, err := relu.Forward(h1)
//	...
type Sequential[B tensor.Backend] struct {
	modules []Module[B]
}

// NewSequential creates a new Sequential container.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return &Sequential[B]{
		modules: modules,
	}
}

// Forward applies all modules in sequence and stops at the first error.
func (s *Sequential[B]) Forward(input *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	output := input

	for _, module := range s.modules {
		var err error
		output, err = module.Forward(output)
		if err != nil {
			return nil, err
		}
	}

	return output, nil
}

// Parameters returns all trainable parameters from all modules, in order.
func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]

	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}

	return params
}

// Add appends a module to the sequence.
func (s *Sequential[B]) Add(module Module[B]) {
	s.modules = append(s.modules, module)
}

// Len returns the number of modules in the sequence.
func (s *Sequential[B]) Len() int {
	return len(s.modules)
}

// Module returns the module at the given index, or nil if index is out of
// bounds.
func (s *Sequential[B]) Module(index int) Module[B] {
	if index < 0 || index >= len(s.modules) {
		return nil
	}
	return s.modules[index]
}

// StateDict returns a map of parameter names to parameters.
//
// Parameters are prefixed with their module index (e.g., "0.weight", "0.bias", "2.weight", etc.)
// to avoid name collisions.
func (s *Sequential[B]) StateDict() map[string]*Parameter[B] {
	stateDict := make(map[string]*Parameter[B])

	for i, module := range s.modules {
		for _, p := range module.Parameters() {
			stateDict[fmt.Sprintf("%d.%s", i, p.Name())] = p
		}
	}

	return stateDict
}

// LoadStateDict loads parameter values from a state dictionary keyed like
// StateDict. Every parameter must be present; unknown keys are an error.
func (s *Sequential[B]) LoadStateDict(values map[string][]float32) error {
	return LoadStateDict(s.StateDict(), values)
}

// LoadStateDict copies values into the named parameters. The key sets must
// match exactly and every size is checked before any parameter changes.
func LoadStateDict[B tensor.Backend](params map[string]*Parameter[B], values map[string][]float32) error {
	for name := range values {
		if _, ok := params[name]; !ok {
			return fmt.Errorf("load state dict: unexpected key %q", name)
		}
	}
	var missing []string
	for name := range params {
		if _, ok := values[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("load state dict: missing keys %s", strings.Join(missing, ", "))
	}

	for name, p := range params {
		if err := p.checkLoad(values[name]); err != nil {
			return fmt.Errorf("load state dict: %w", err)
		}
	}
	for name, p := range params {
		copy(p.tensor.Data(), values[name])
	}
	return nil
}
