package cpm

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/posemachine/internal/nn"
	"github.com/born-ml/posemachine/internal/tensor"
)

// ConvBlock is the feature extraction unit of the network: nconvs
// shape-preserving 3x3 convolutions, each followed by ReLU, then a 2x2
// max pool with stride 2.
//
// Input shape:  [batch, in_channels, height, width]
// Output shape: [batch, out_channels, height/2, width/2]
//
// Height and width must be even when they reach the pool.
type ConvBlock[B tensor.Backend] struct {
	inChannels  int
	outChannels int

	// layers holds conv, relu pairs; conv i sits at index 2*i, so parameter
	// keys read conv_block.0.weight, conv_block.2.weight, ...
	layers *nn.Sequential[B]
	pool   *nn.MaxPool2D[B]
}

// NewConvBlock builds a block of nconvs convolutions. The first consumes
// inChannels, every later one outChannels.
func NewConvBlock[B tensor.Backend](nconvs, inChannels, outChannels int, rng *rand.Rand, backend B) (*ConvBlock[B], error) {
	for _, check := range []struct {
		field string
		value int
	}{
		{"nconvs", nconvs},
		{"in_channels", inChannels},
		{"out_channels", outChannels},
	} {
		if check.value <= 0 {
			return nil, fmt.Errorf("conv block: %w", &tensor.ConfigError{Field: check.field, Value: check.value, Details: "must be > 0"})
		}
	}

	layers := nn.NewSequential[B]()
	relu := nn.NewReLU[B]()
	in := inChannels
	for range nconvs {
		conv, err := nn.NewConv2D(in, outChannels, 3, 3, 1, 1, true, rng, backend)
		if err != nil {
			return nil, fmt.Errorf("conv block: %w", err)
		}
		layers.Add(conv)
		layers.Add(relu)
		in = outChannels
	}

	pool, err := nn.NewMaxPool2D(2, 2, 0, backend)
	if err != nil {
		return nil, fmt.Errorf("conv block: %w", err)
	}

	return &ConvBlock[B]{
		inChannels:  inChannels,
		outChannels: outChannels,
		layers:      layers,
		pool:        pool,
	}, nil
}

// Forward runs every conv, relu pair and then pools.
//
// Errors name the failing layer, e.g. "conv_block.2: conv2d: expected shape ...".
func (b *ConvBlock[B]) Forward(input *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	x := input
	for i := range b.layers.Len() {
		var err error
		x, err = b.layers.Module(i).Forward(x)
		if err != nil {
			return nil, fmt.Errorf("conv_block.%d: %w", i, err)
		}
	}

	if _, _, h, w := x.Shape().NCHW(); h%2 != 0 || w%2 != 0 {
		return nil, &tensor.ShapeError{
			Op:      "maxpool2d",
			Actual:  x.Shape().Clone(),
			Details: "height and width must be even for 2x2 pooling",
		}
	}

	return b.pool.Forward(x)
}

// Parameters returns the convolution weights and biases in layer order.
func (b *ConvBlock[B]) Parameters() []*nn.Parameter[B] {
	return b.layers.Parameters()
}

// StateDict returns the block's parameters keyed by their layer path.
func (b *ConvBlock[B]) StateDict() map[string]*nn.Parameter[B] {
	stateDict := make(map[string]*nn.Parameter[B])
	for name, p := range b.layers.StateDict() {
		stateDict["conv_block."+name] = p
	}
	return stateDict
}

// NumConvs returns the number of convolutions in the block.
func (b *ConvBlock[B]) NumConvs() int {
	return b.layers.Len() / 2
}

// InChannels returns the expected input channel count.
func (b *ConvBlock[B]) InChannels() int {
	return b.inChannels
}

// OutChannels returns the output channel count.
func (b *ConvBlock[B]) OutChannels() int {
	return b.outChannels
}

// String returns a string representation of the block.
func (b *ConvBlock[B]) String() string {
	return fmt.Sprintf("ConvBlock(nconvs=%d, in_channels=%d, out_channels=%d)", b.NumConvs(), b.inChannels, b.outChannels)
}
