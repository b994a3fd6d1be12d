package tensor

// Backend defines the primitives the pose machine consumes. Backends handle
// the actual computation; the network only wires them together.
//
// All tensors are 4D [batch, channels, height, width]. Every operation
// preserves the batch size, never mutates its inputs and returns a nil
// tensor together with the error on failure.
//
// Implementations:
//   - cpu: Pure Go, data-parallel across output planes
//   - meta: Shape-only propagation, no data
type Backend interface {
	// Conv2D computes a 2D cross-correlation.
	// Kernel: [C_out, C_in, K_h, K_w]. Bias: [C_out] or nil.
	Conv2D(input, kernel, bias *RawTensor, stride, padding int) (*RawTensor, error)

	// ConvTranspose2D computes a fractionally strided convolution (upsampling).
	// Kernel: [C_in, C_out, K_h, K_w]. Bias: [C_out] or nil.
	ConvTranspose2D(input, kernel, bias *RawTensor, stride int) (*RawTensor, error)

	// MaxPool2D takes the per-channel maximum over square windows.
	MaxPool2D(input *RawTensor, kernelSize, stride, padding int) (*RawTensor, error)

	// ReLU applies max(0, x) element-wise.
	ReLU(x *RawTensor) (*RawTensor, error)

	// Add sums two tensors of identical shape. No broadcasting.
	Add(a, b *RawTensor) (*RawTensor, error)

	// Metadata
	Name() string
	Device() Device
}
