// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensors for the pose machine.
//
// # Overview
//
// Tensors are 4D float arrays laid out as [batch, channel, height, width].
// This package provides:
//   - Tensor[T, B]: Generic tensor bound to a compute backend
//   - RawTensor: Untyped storage used by backends
//   - Backend: The primitive operations a compute backend implements
//   - ShapeError, ConfigError: Typed errors matching ErrShape and ErrConfig
//
// # Backends
//
// Two backends ship with the module:
//   - backend/cpu: Computes values in pure Go
//   - backend/meta: Propagates shapes only and allocates no data
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/posemachine/backend/cpu"
//	    "github.com/born-ml/posemachine/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    image, err := tensor.FromSlice(pixels, tensor.Shape{1, 1, 32, 32}, backend)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Errors
//
// Every failing operation returns an error and a nil result. Use errors.Is
// with ErrShape or ErrConfig, or errors.As with *ShapeError to read the
// expected and actual shapes.
package tensor
