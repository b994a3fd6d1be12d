// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/posemachine/internal/tensor"
)

// RawTensor is the low-level tensor representation.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device()
//   - Typed data access via AsFloat32(), AsFloat64()
//   - Deep copies via Clone()
//
// Tensors on the Meta device carry a shape and no data.
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{1, 1, 2, 3}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32()
type RawTensor = tensor.RawTensor
