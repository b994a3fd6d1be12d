// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/posemachine/internal/tensor"
)

// Sentinel errors for errors.Is.
var (
	ErrShape  = tensor.ErrShape  // Tensor dimensions do not fit an operation.
	ErrConfig = tensor.ErrConfig // A size, count or selector is out of range.
)

// ShapeError describes a shape mismatch: the operation, the expected and
// actual shapes, and details. It matches ErrShape.
type ShapeError = tensor.ShapeError

// ConfigError describes an invalid configuration value. It matches ErrConfig.
type ConfigError = tensor.ConfigError
