// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpm provides a Convolutional Pose Machine: a network that turns an
// image into one heatmap per keypoint.
//
// # Overview
//
// The network runs a stack of convolution blocks, projects the outputs of
// blocks 3, 4 and 5 to 15 fusion channels, upsamples them to a common
// resolution, sums them, and upsamples the sum to the input resolution
// before a final projection to k heatmaps.
//
// Stage 1 reads the image. Stage 2 reads the image concatenated with the
// previous heatmaps along the channel axis; RunStages performs that
// concatenation for any number of refinement stages.
//
// # Input Size
//
// Height and width must be multiples of InputMultiple (32). Other sizes are
// rejected with a *tensor.ShapeError before any computation.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/posemachine/backend/cpu"
//	    "github.com/born-ml/posemachine/cpm"
//	    "github.com/born-ml/posemachine/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    net, err := cpm.New(cpm.DefaultConfig(15), backend)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    image, err := tensor.FromSlice(pixels, tensor.Shape{1, 1, 384, 384}, backend)
//	    heatmaps, err := net.Forward(image, cpm.StageInitial) // [1, 15, 384, 384]
//	    peaks, err := cpm.Peaks(heatmaps)
//	}
//
// # Planning
//
// Running the same network on backend/meta checks every shape at full
// resolution without computing values; ForwardObserved reports each
// intermediate shape.
//
// # Thread Safety
//
// Forward never mutates the network, so one CPM may serve concurrent calls.
// LoadStateDict must not overlap with Forward.
package cpm
