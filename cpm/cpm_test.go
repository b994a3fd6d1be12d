// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpm_test

import (
	"testing"

	"github.com/born-ml/posemachine/backend/meta"
	"github.com/born-ml/posemachine/cpm"
	"github.com/born-ml/posemachine/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPublicAPI_EndToEnd runs both stages at full resolution through the public packages.
func TestPublicAPI_EndToEnd(t *testing.T) {
	backend := meta.New()
	net, err := cpm.New(cpm.DefaultConfig(15), backend)
	require.NoError(t, err)

	image := tensor.Zeros[float32](tensor.Shape{1, 1, 384, 384}, backend)
	results, err := cpm.RunStages(net, image, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, tensor.Shape{1, 15, 384, 384}, results[1].Shape())

	_, err = net.Forward(tensor.Zeros[float32](tensor.Shape{1, 1, 368, 368}, backend), cpm.StageInitial)
	assert.ErrorIs(t, err, tensor.ErrShape)

	_, err = cpm.New(cpm.Config{Keypoints: 0, Channels: 1}, backend)
	assert.ErrorIs(t, err, tensor.ErrConfig)
}

// TestPublicAPI_ConvBlock tests block construction through the facade.
func TestPublicAPI_ConvBlock(t *testing.T) {
	backend := meta.New()
	block, err := cpm.NewConvBlock(2, 1, 64, backend)
	require.NoError(t, err)

	out, err := block.Forward(tensor.Zeros[float32](tensor.Shape{1, 1, 368, 368}, backend))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 64, 184, 184}, out.Shape())
}
