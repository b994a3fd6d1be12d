// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/born-ml/posemachine/backend/cpu"
	"github.com/born-ml/posemachine/nn"
	"github.com/born-ml/posemachine/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestModuleInterface verifies that concrete types implement Module interface.
func TestModuleInterface(t *testing.T) {
	backend := cpu.New()

	conv, err := nn.NewConv2D(3, 4, 3, 3, 1, 1, true, nil, backend)
	require.NoError(t, err)
	pool, err := nn.NewMaxPool2D(2, 2, 0, backend)
	require.NoError(t, err)
	up, err := nn.NewConvTranspose2D(4, 2, 2, 2, nil, backend)
	require.NoError(t, err)

	tests := []struct {
		name   string
		module nn.Module[*cpu.Backend]
		want   tensor.Shape
		params int
	}{
		{"Conv2D", conv, tensor.Shape{2, 4, 8, 8}, 2},
		{"Sequential", nn.NewSequential[*cpu.Backend](conv, nn.NewReLU[*cpu.Backend](), pool, up), tensor.Shape{2, 2, 8, 8}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tensor.Ones[float32](tensor.Shape{2, 3, 8, 8}, backend)
			output, err := tt.module.Forward(input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, output.Shape())
			assert.Len(t, tt.module.Parameters(), tt.params)
		})
	}
}

// TestLoadStateDict verifies loading through the public helper.
func TestLoadStateDict(t *testing.T) {
	backend := cpu.New()
	conv, err := nn.NewConv2D(1, 1, 1, 1, 1, 0, true, nil, backend)
	require.NoError(t, err)
	seq := nn.NewSequential[*cpu.Backend](conv)

	require.NoError(t, nn.LoadStateDict(seq.StateDict(), map[string][]float32{
		"0.weight": {3},
		"0.bias":   {-1},
	}))

	input, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{1, 1, 1, 2}, backend)
	require.NoError(t, err)
	output, err := seq.Forward(input)
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 5}, output.Data())
}
