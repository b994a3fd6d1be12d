// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the neural network layers the pose machine is built from.
//
// # Overview
//
// This package contains:
//   - Layers: Conv2D, ConvTranspose2D, MaxPool2D
//   - Activations: ReLU
//   - Utilities: Sequential, Module interface, Parameter, LoadStateDict
//   - Initialization: Xavier, Zeros
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/posemachine/backend/cpu"
//	    "github.com/born-ml/posemachine/nn"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    conv, err := nn.NewConv2D(1, 64, 3, 3, 1, 1, true, nil, backend)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    block := nn.NewSequential[*cpu.Backend](conv, nn.NewReLU[*cpu.Backend]())
//
//	    output, err := block.Forward(input)
//	}
//
// # Errors
//
// Constructors return a *tensor.ConfigError for invalid sizes. Forward
// returns the backend's *tensor.ShapeError when the input does not fit,
// and never a partial result.
package nn
