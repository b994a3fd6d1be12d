package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/born-ml/posemachine/backend/cpu"
	"github.com/born-ml/posemachine/cpm"
	"github.com/born-ml/posemachine/tensor"
)

func NewInferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "infer IMAGE",
		Short: "Compute keypoint peaks for an image",
		Long: "Decode a PNG or JPEG image, resize it to the network resolution and report the peak of every keypoint heatmap.\n" +
			"Weights are Xavier-initialized from --seed.",
		Args: cobra.ExactArgs(1),
		RunE: inferHandler,
	}

	cmd.Flags().Int("keypoints", 15, "Number of keypoint heatmaps")
	cmd.Flags().Int("channels", 1, "Image channels (1 for grayscale, 3 for RGB)")
	cmd.Flags().Int("size", 384, "Network input height and width (multiple of 32)")
	cmd.Flags().Int("stages", 1, "Number of stages to run")
	cmd.Flags().Int64("seed", 0, "Seed for weight initialization")

	return cmd
}

func inferHandler(cmd *cobra.Command, args []string) error {
	keypoints, _ := cmd.Flags().GetInt("keypoints")
	channels, _ := cmd.Flags().GetInt("channels")
	size, _ := cmd.Flags().GetInt("size")
	stages, _ := cmd.Flags().GetInt("stages")
	seed, _ := cmd.Flags().GetInt64("seed")

	if size <= 0 || size%cpm.InputMultiple != 0 {
		return fmt.Errorf("size %d must be a positive multiple of %d", size, cpm.InputMultiple)
	}

	img, err := loadImage(args[0])
	if err != nil {
		return err
	}
	data, err := pixels(img, size, channels)
	if err != nil {
		return err
	}

	backend := cpu.New()
	input, err := tensor.FromSlice(data, tensor.Shape{1, channels, size, size}, backend)
	if err != nil {
		return err
	}

	net, err := cpm.New(cpm.Config{Keypoints: keypoints, Channels: channels, Seed: seed}, backend)
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := cpm.RunStages(net, input, stages)
	if err != nil {
		return err
	}
	slog.Debug("infer: forward complete", "stages", stages, "duration", time.Since(start))

	peaks, err := cpm.Peaks(results[len(results)-1])
	if err != nil {
		return err
	}

	bounds := img.Bounds()
	var rows [][]string
	for _, p := range peaks {
		// Map back from network resolution to the source image.
		x := p.X * bounds.Dx() / size
		y := p.Y * bounds.Dy() / size
		rows = append(rows, []string{
			strconv.Itoa(p.Keypoint),
			strconv.Itoa(x),
			strconv.Itoa(y),
			strconv.FormatFloat(float64(p.Value), 'f', 4, 32),
		})
	}

	renderTable(cmd.OutOrStdout(), []string{"KEYPOINT", "X", "Y", "SCORE"}, rows)
	return nil
}
