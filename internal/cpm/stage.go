package cpm

import (
	"fmt"

	"github.com/born-ml/posemachine/internal/tensor"
)

// Stage selects which first block processes the input.
type Stage int

const (
	// StageInitial reads the raw image through block1a.
	StageInitial Stage = 1
	// StageRefine reads the image concatenated with the previous heatmaps
	// through block1b.
	StageRefine Stage = 2
)

func (s Stage) String() string {
	switch s {
	case StageInitial:
		return "initial"
	case StageRefine:
		return "refine"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Validate reports a ConfigError for any value other than 1 or 2.
func (s Stage) Validate() error {
	if s != StageInitial && s != StageRefine {
		return &tensor.ConfigError{Field: "stage", Value: int(s), Details: "must be 1 or 2"}
	}
	return nil
}
