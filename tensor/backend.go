// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/posemachine/internal/tensor"

// Backend defines the primitive operations the pose machine runs on.
// Every operation validates shapes, never mutates its inputs, and returns
// a nil tensor with a *ShapeError or *ConfigError when it cannot proceed.
//
// Kernel layouts:
//   - Conv2D:          [out_channels, in_channels, K, K]
//   - ConvTranspose2D: [in_channels, out_channels, K, K]
//
// Implementations:
//   - backend/cpu: Pure Go, parallel across output planes
//   - backend/meta: Shape propagation only
type Backend interface {
	// Convolutional operations.
	Conv2D(input, kernel, bias *RawTensor, stride, padding int) (*RawTensor, error)  // 2D convolution; bias may be nil.
	ConvTranspose2D(input, kernel, bias *RawTensor, stride int) (*RawTensor, error)  // Transposed convolution, no padding.
	MaxPool2D(input *RawTensor, kernelSize, stride, padding int) (*RawTensor, error) // 2D max pooling.

	// Element-wise operations.
	ReLU(x *RawTensor) (*RawTensor, error)   // max(0, x).
	Add(a, b *RawTensor) (*RawTensor, error) // a + b, shapes must be equal.

	// Metadata.
	Name() string   // Backend name (e.g., "CPU", "meta").
	Device() Device // Device type.
}

// Compile-time check that internal Backend implements public Backend.
var _ Backend = tensor.Backend(nil)
