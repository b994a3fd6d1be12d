// Package cpm implements the forward pass of a Convolutional Pose Machine:
// a stack of convolution blocks whose outputs at three depths are projected
// to a fixed number of fusion channels, upsampled to a common resolution,
// summed, and upsampled again into one heatmap per keypoint.
//
// The network is generic over the tensor backend. Running it on the CPU
// backend computes heatmaps; running it on the meta backend checks every
// shape at full resolution without allocating data.
package cpm

import (
	"fmt"
	"log/slog"
	"math/rand"
	"slices"

	"github.com/born-ml/posemachine/internal/logutil"
	"github.com/born-ml/posemachine/internal/nn"
	"github.com/born-ml/posemachine/internal/tensor"
)

const (
	// InputMultiple is the factor input height and width must be a multiple
	// of. Five 2x2 pools need an even size at every step, and the fusion of
	// block3, block4 and block5 outputs needs H/8 == 2*(H/16) == 4*(H/32).
	InputMultiple = 32

	// FusionChannels is the channel count of the three fused predictions.
	FusionChannels = 15
)

// Config describes a network.
type Config struct {
	Keypoints int   // Number of heatmaps produced (k).
	Channels  int   // Image channels read by stage 1; stage 2 reads Channels + Keypoints.
	Seed      int64 // Seed for Xavier weight initialization.
}

// DefaultConfig returns a single-channel configuration for k keypoints.
func DefaultConfig(keypoints int) Config {
	return Config{
		Keypoints: keypoints,
		Channels:  1,
	}
}

// Observer receives the name and shape of every named intermediate tensor
// during a forward pass.
type Observer func(name string, shape tensor.Shape)

// CPM is the pose machine network. Parameters are fixed after construction
// except through LoadStateDict, so one CPM may run concurrent forward passes.
type CPM[B tensor.Backend] struct {
	cfg     Config
	backend B

	block1a, block1b               *ConvBlock[B]
	block2, block3, block4, block5 *ConvBlock[B]
	conv6, conv7, pool3, pool4     *nn.Conv2D[B]
	upPool4, upConv7, upFused      *nn.ConvTranspose2D[B]
	upFinal                        *nn.Conv2D[B]
	relu                           *nn.ReLU[B]

	names  []string // parameter names in construction order
	params map[string]*nn.Parameter[B]
}

// New builds the network topology for cfg with Xavier-initialized weights
// and zero biases.
//
// Returns a *tensor.ConfigError if the keypoint or channel count is not positive.
func New[B tensor.Backend](cfg Config, backend B) (*CPM[B], error) {
	if cfg.Keypoints <= 0 {
		return nil, &tensor.ConfigError{Field: "keypoints", Value: cfg.Keypoints, Details: "must be > 0"}
	}
	if cfg.Channels <= 0 {
		return nil, &tensor.ConfigError{Field: "channels", Value: cfg.Channels, Details: "must be > 0"}
	}

	b := &builder[B]{
		rng:     rand.New(rand.NewSource(cfg.Seed)), //nolint:gosec // deterministic seed for reproducible weights
		backend: backend,
		params:  make(map[string]*nn.Parameter[B]),
	}

	k := cfg.Keypoints
	c := &CPM[B]{
		cfg:     cfg,
		backend: backend,
		block1a: b.block("block1a", 2, cfg.Channels, 64),
		block1b: b.block("block1b", 2, cfg.Channels+k, 64),
		block2:  b.block("block2", 2, 64, 128),
		block3:  b.block("block3", 3, 128, 256),
		block4:  b.block("block4", 3, 256, 512),
		block5:  b.block("block5", 3, 512, 512),
		conv6:   b.conv("conv6", 512, 4096),
		conv7:   b.conv("conv7", 4096, FusionChannels),
		pool3:   b.conv("pool3", 256, FusionChannels),
		pool4:   b.conv("pool4", 512, FusionChannels),
		upPool4: b.upsample("up_pool4", 2),
		upConv7: b.upsample("up_conv7", 4),
		upFused: b.upsample("up_fused", 8),
		upFinal: b.conv("up_final", FusionChannels, k),
		relu:    nn.NewReLU[B](),
	}
	if b.err != nil {
		return nil, b.err
	}
	c.names = b.names
	c.params = b.params

	slog.Debug("cpm: network built",
		"backend", backend.Name(),
		"keypoints", k,
		"channels", cfg.Channels,
		"parameters", len(c.names),
		"values", c.NumValues())

	return c, nil
}

// builder constructs layers and records their parameters, stopping at the
// first error.
type builder[B tensor.Backend] struct {
	rng     *rand.Rand
	backend B
	err     error

	names  []string
	params map[string]*nn.Parameter[B]
}

func (b *builder[B]) block(name string, nconvs, in, out int) *ConvBlock[B] {
	if b.err != nil {
		return nil
	}
	blk, err := NewConvBlock(nconvs, in, out, b.rng, b.backend)
	if err != nil {
		b.err = fmt.Errorf("%s: %w", name, err)
		return nil
	}
	for i := range blk.layers.Len() {
		for _, p := range blk.layers.Module(i).Parameters() {
			b.add(fmt.Sprintf("%s.conv_block.%d.%s", name, i, p.Name()), p)
		}
	}
	return blk
}

func (b *builder[B]) conv(name string, in, out int) *nn.Conv2D[B] {
	if b.err != nil {
		return nil
	}
	conv, err := nn.NewConv2D(in, out, 1, 1, 1, 0, true, b.rng, b.backend)
	if err != nil {
		b.err = fmt.Errorf("%s: %w", name, err)
		return nil
	}
	b.addLayer(name, conv.Parameters())
	return conv
}

func (b *builder[B]) upsample(name string, factor int) *nn.ConvTranspose2D[B] {
	if b.err != nil {
		return nil
	}
	up, err := nn.NewConvTranspose2D(FusionChannels, FusionChannels, factor, factor, b.rng, b.backend)
	if err != nil {
		b.err = fmt.Errorf("%s: %w", name, err)
		return nil
	}
	b.addLayer(name, up.Parameters())
	return up
}

func (b *builder[B]) addLayer(name string, params []*nn.Parameter[B]) {
	for _, p := range params {
		b.add(name+"."+p.Name(), p)
	}
}

func (b *builder[B]) add(name string, p *nn.Parameter[B]) {
	b.names = append(b.names, name)
	b.params[name] = p
}

// Config returns the network configuration.
func (c *CPM[B]) Config() Config {
	return c.cfg
}

// Backend returns the backend the parameters live on.
func (c *CPM[B]) Backend() B {
	return c.backend
}

// InputChannels returns the channel count Forward expects for stage.
func (c *CPM[B]) InputChannels(stage Stage) int {
	if stage == StageRefine {
		return c.cfg.Channels + c.cfg.Keypoints
	}
	return c.cfg.Channels
}

// Forward computes heatmaps for input at the given stage.
//
// Input:  [batch, InputChannels(stage), H, W] with H and W multiples of InputMultiple
// Output: [batch, Keypoints, H, W]
//
// Stage 2 input must already hold the image concatenated with the previous
// stage's heatmaps; see RunStages. Forward returns a *tensor.ShapeError for
// any input that does not fit and a *tensor.ConfigError for an unknown stage.
func (c *CPM[B]) Forward(input *tensor.Tensor[float32, B], stage Stage) (*tensor.Tensor[float32, B], error) {
	return c.ForwardObserved(input, stage, nil)
}

// ForwardObserved is Forward, additionally reporting the shape of every
// named intermediate tensor to observe, in evaluation order.
func (c *CPM[B]) ForwardObserved(input *tensor.Tensor[float32, B], stage Stage, observe Observer) (*tensor.Tensor[float32, B], error) {
	if err := stage.Validate(); err != nil {
		return nil, err
	}
	first, firstName := c.block1a, "block1a"
	if stage == StageRefine {
		first, firstName = c.block1b, "block1b"
	}
	if err := c.checkInput(input.Shape(), stage); err != nil {
		return nil, err
	}

	p := &pass[B]{observe: observe}
	p.record("input", input)

	x := p.apply(firstName, input, first)
	x = p.apply("block2", x, c.block2)
	pool3Feat := p.apply("block3", x, c.block3)
	pool4Feat := p.apply("block4", pool3Feat, c.block4)
	out5 := p.apply("block5", pool4Feat, c.block5)

	deep := p.apply("conv6", out5, c.conv6, c.relu)
	deep = p.apply("conv7", deep, c.conv7, c.relu)

	side3 := p.apply("pool3", pool3Feat, c.pool3, c.relu)
	side4 := p.apply("pool4", pool4Feat, c.pool4, c.relu)

	up4 := p.apply("up_pool4", side4, c.upPool4, c.relu)
	up7 := p.apply("up_conv7", deep, c.upConv7, c.relu)
	if p.err != nil {
		return nil, p.err
	}

	if err := checkFusion(side3.Shape(), up4.Shape(), up7.Shape()); err != nil {
		return nil, err
	}
	fused := p.add("fused", p.add("fused", side3, up4), up7)

	heatmaps := p.apply("up_fused", fused, c.upFused, c.relu)
	result := p.apply("up_final", heatmaps, c.upFinal)
	if p.err != nil {
		return nil, p.err
	}
	return result, nil
}

func (c *CPM[B]) checkInput(shape tensor.Shape, stage Stage) error {
	const op = "cpm input"
	if len(shape) != 4 {
		return &tensor.ShapeError{Op: op, Actual: shape.Clone(), Details: "expected 4D input [N, C, H, W]"}
	}

	n, ch, h, w := shape.NCHW()
	if want := c.InputChannels(stage); ch != want {
		return &tensor.ShapeError{
			Op:       op,
			Expected: tensor.Shape{n, want, h, w},
			Actual:   shape.Clone(),
			Details:  fmt.Sprintf("stage %d reads %d channels", int(stage), want),
		}
	}
	if h%InputMultiple != 0 || w%InputMultiple != 0 {
		return &tensor.ShapeError{
			Op:      op,
			Actual:  shape.Clone(),
			Details: fmt.Sprintf("height and width must be multiples of %d", InputMultiple),
		}
	}
	return nil
}

// checkFusion verifies that the three predictions agree before they are summed.
func checkFusion(side3, up4, up7 tensor.Shape) error {
	if !up4.Equal(side3) {
		return &tensor.ShapeError{Op: "fusion", Expected: side3.Clone(), Actual: up4.Clone(), Details: "up_pool4 does not match pool3"}
	}
	if !up7.Equal(side3) {
		return &tensor.ShapeError{Op: "fusion", Expected: side3.Clone(), Actual: up7.Clone(), Details: "up_conv7 does not match pool3"}
	}
	return nil
}

// pass threads one forward evaluation, stopping at the first error.
type pass[B tensor.Backend] struct {
	observe Observer
	err     error
}

// apply runs modules in order on x and records the result under name.
func (p *pass[B]) apply(name string, x *tensor.Tensor[float32, B], modules ...nn.Module[B]) *tensor.Tensor[float32, B] {
	if p.err != nil {
		return nil
	}
	for _, m := range modules {
		var err error
		x, err = m.Forward(x)
		if err != nil {
			p.err = fmt.Errorf("%s: %w", name, err)
			return nil
		}
	}
	p.record(name, x)
	return x
}

func (p *pass[B]) add(name string, a, b *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if p.err != nil {
		return nil
	}
	sum, err := a.Add(b)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", name, err)
		return nil
	}
	p.record(name, sum)
	return sum
}

func (p *pass[B]) record(name string, x *tensor.Tensor[float32, B]) {
	logutil.Trace("cpm: forward", "tensor", name, "shape", x.Shape())
	if p.observe != nil {
		p.observe(name, x.Shape())
	}
}

// Parameters returns every parameter in construction order.
func (c *CPM[B]) Parameters() []*nn.Parameter[B] {
	params := make([]*nn.Parameter[B], len(c.names))
	for i, name := range c.names {
		params[i] = c.params[name]
	}
	return params
}

// ParameterNames returns the state-dict keys in construction order, e.g.
// "block1a.conv_block.0.weight" or "up_final.bias".
func (c *CPM[B]) ParameterNames() []string {
	return slices.Clone(c.names)
}

// NamedParameters returns the parameters keyed by their state-dict name.
func (c *CPM[B]) NamedParameters() map[string]*nn.Parameter[B] {
	named := make(map[string]*nn.Parameter[B], len(c.params))
	for name, p := range c.params {
		named[name] = p
	}
	return named
}

// LoadStateDict replaces every parameter's values. The keys must match
// ParameterNames exactly. It must not run concurrently with Forward.
func (c *CPM[B]) LoadStateDict(values map[string][]float32) error {
	return nn.LoadStateDict(c.params, values)
}

// NumValues returns the total number of scalar parameter values.
func (c *CPM[B]) NumValues() int {
	var n int
	for _, p := range c.params {
		n += p.Shape().NumElements()
	}
	return n
}
