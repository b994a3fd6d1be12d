// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/posemachine/internal/backend/cpu"
	"github.com/born-ml/posemachine/internal/parallel"
	"github.com/born-ml/posemachine/tensor"
)

// Backend represents the CPU backend implementation.
//
// CPU backend provides pure Go implementations of the pose machine
// primitives, parallel across output planes.
type Backend = internalcpu.CPUBackend

// Config controls how many workers a Backend fans out to.
type Config = parallel.Config

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend configured from CPM_NUM_THREADS and
// CPM_MIN_CHUNK.
//
// Example:
//
//	import (
//	    "github.com/born-ml/posemachine/backend/cpu"
//	    "github.com/born-ml/posemachine/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{1, 1, 32, 32}, backend)
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with an explicit worker configuration.
//
// Example:
//
//	backend := cpu.NewWithConfig(cpu.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1})
func NewWithConfig(cfg Config) *Backend {
	return internalcpu.NewWithConfig(cfg)
}

// DefaultConfig returns the worker configuration New uses.
func DefaultConfig() Config {
	return parallel.DefaultConfig()
}
