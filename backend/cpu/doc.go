// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for the pose machine primitives.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Im2col algorithm for convolutions
//   - Scatter-accumulate transposed convolutions
//   - Float32 and Float64 support
//   - Batch processing
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/posemachine/backend/cpu"
//	    "github.com/born-ml/posemachine/cpm"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    net, err := cpm.New(cpm.DefaultConfig(15), backend)
//	    ...
//	}
//
// # Determinism
//
// Work is split across output planes and every output element is summed in
// a fixed order, so results are bit-identical for any worker count.
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation
// is isolated and does not share mutable state.
package cpu
