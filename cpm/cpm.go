// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpm

import (
	"github.com/born-ml/posemachine/internal/cpm"
	"github.com/born-ml/posemachine/internal/tensor"
)

// Constants re-exported from the implementation.
const (
	InputMultiple  = cpm.InputMultiple  // Input height and width must be multiples of this.
	FusionChannels = cpm.FusionChannels // Channels of the fused predictions.
)

// Stage selects which first block processes the input.
type Stage = cpm.Stage

// Stage values.
const (
	StageInitial = cpm.StageInitial // Image only, through block1a.
	StageRefine  = cpm.StageRefine  // Image plus previous heatmaps, through block1b.
)

// Config describes a network.
type Config = cpm.Config

// DefaultConfig returns a single-channel configuration for k keypoints.
func DefaultConfig(keypoints int) Config {
	return cpm.DefaultConfig(keypoints)
}

// CPM is the pose machine network.
type CPM[B tensor.Backend] = cpm.CPM[B]

// New builds the network topology for cfg on backend.
//
// Example:
//
//	net, err := cpm.New(cpm.Config{Keypoints: 15, Channels: 1, Seed: 42}, cpu.New())
func New[B tensor.Backend](cfg Config, backend B) (*CPM[B], error) {
	return cpm.New(cfg, backend)
}

// Observer receives the name and shape of every intermediate tensor.
type Observer = cpm.Observer

// ConvBlock is the network's feature extraction unit.
type ConvBlock[B tensor.Backend] = cpm.ConvBlock[B]

// NewConvBlock builds nconvs 3x3 conv, relu pairs followed by a 2x2 max pool.
func NewConvBlock[B tensor.Backend](nconvs, inChannels, outChannels int, backend B) (*ConvBlock[B], error) {
	return cpm.NewConvBlock(nconvs, inChannels, outChannels, nil, backend)
}

// RunStages evaluates stage 1 and then stages-1 refinement stages,
// returning the heatmaps of every stage.
func RunStages[B tensor.Backend](net *CPM[B], image *tensor.Tensor[float32, B], stages int) ([]*tensor.Tensor[float32, B], error) {
	return cpm.RunStages(net, image, stages)
}

// Peak is the strongest response of one heatmap.
type Peak = cpm.Peak

// Peaks returns the argmax of every heatmap.
func Peaks[B tensor.Backend](heatmaps *tensor.Tensor[float32, B]) ([]Peak, error) {
	return cpm.Peaks(heatmaps)
}
