package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/born-ml/posemachine/backend/meta"
	"github.com/born-ml/posemachine/cpm"
	"github.com/born-ml/posemachine/tensor"
)

func NewPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the shape of every intermediate tensor",
		Long:  "Run the network on the shape-only backend and list each intermediate tensor without computing values.",
		Args:  cobra.NoArgs,
		RunE:  planHandler,
	}

	cmd.Flags().Int("keypoints", 15, "Number of keypoint heatmaps")
	cmd.Flags().Int("channels", 1, "Image channels")
	cmd.Flags().Int("size", 384, "Input height and width (multiple of 32)")
	cmd.Flags().Int("batch", 1, "Batch size")
	cmd.Flags().Int("stage", 1, "Stage to plan (1 or 2)")

	return cmd
}

func planHandler(cmd *cobra.Command, args []string) error {
	keypoints, _ := cmd.Flags().GetInt("keypoints")
	channels, _ := cmd.Flags().GetInt("channels")
	size, _ := cmd.Flags().GetInt("size")
	batch, _ := cmd.Flags().GetInt("batch")
	stageFlag, _ := cmd.Flags().GetInt("stage")
	stage := cpm.Stage(stageFlag)

	backend := meta.New()
	net, err := cpm.New(cpm.Config{Keypoints: keypoints, Channels: channels}, backend)
	if err != nil {
		return err
	}
	if err := stage.Validate(); err != nil {
		return err
	}

	shape := tensor.Shape{batch, net.InputChannels(stage), size, size}
	if err := shape.Validate(); err != nil {
		return err
	}

	var data [][]string
	_, err = net.ForwardObserved(tensor.Zeros[float32](shape, backend), stage, func(name string, shape tensor.Shape) {
		data = append(data, []string{name, fmt.Sprint([]int(shape)), strconv.Itoa(shape.NumElements())})
	})
	if err != nil {
		return err
	}

	renderTable(cmd.OutOrStdout(), []string{"TENSOR", "SHAPE", "VALUES"}, data)
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d parameter tensors, %d values\n", len(net.ParameterNames()), net.NumValues())
	return nil
}
