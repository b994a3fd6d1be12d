// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package meta provides a shape-only backend.
//
// Operations validate and propagate shapes exactly like the CPU backend but
// allocate no data, so a full-resolution network can be checked, or its
// intermediate shapes listed, without computing anything.
//
// Example:
//
//	backend := meta.New()
//	net, _ := cpm.New(cpm.DefaultConfig(15), backend)
//	image := tensor.Zeros[float32](tensor.Shape{1, 1, 384, 384}, backend)
//	heatmaps, err := net.Forward(image, cpm.StageInitial) // [1, 15, 384, 384], no data
package meta

import (
	internalmeta "github.com/born-ml/posemachine/internal/backend/meta"
	"github.com/born-ml/posemachine/tensor"
)

// Backend represents the meta backend implementation.
type Backend = internalmeta.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a meta backend.
func New() *Backend {
	return internalmeta.New()
}
