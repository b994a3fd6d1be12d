package cpm

import (
	"fmt"

	"github.com/born-ml/posemachine/internal/tensor"
)

// RunStages evaluates the pose machine for the given number of stages and
// returns the heatmaps of every stage.
//
// Stage 1 reads image alone. Every later stage reads image concatenated with
// the previous stage's heatmaps along the channel axis, through block1b.
func RunStages[B tensor.Backend](net *CPM[B], image *tensor.Tensor[float32, B], stages int) ([]*tensor.Tensor[float32, B], error) {
	if stages <= 0 {
		return nil, &tensor.ConfigError{Field: "stages", Value: stages, Details: "must be > 0"}
	}

	heatmaps, err := net.Forward(image, StageInitial)
	if err != nil {
		return nil, fmt.Errorf("stage 1: %w", err)
	}
	results := []*tensor.Tensor[float32, B]{heatmaps}

	for s := 2; s <= stages; s++ {
		input, err := tensor.Cat([]*tensor.Tensor[float32, B]{image, heatmaps}, 1)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", s, err)
		}
		heatmaps, err = net.Forward(input, StageRefine)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", s, err)
		}
		results = append(results, heatmaps)
	}
	return results, nil
}
