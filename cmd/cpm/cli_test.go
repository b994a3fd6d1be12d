package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/posemachine/tensor"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCLI()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "cpm "+version+"\n", out)
}

func TestEnv(t *testing.T) {
	t.Setenv("CPM_NUM_THREADS", "3")
	out, err := execute(t, "env")
	require.NoError(t, err)
	assert.Contains(t, out, "CPM_DEBUG")
	assert.Contains(t, out, "CPM_MIN_CHUNK")

	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "CPM_NUM_THREADS") {
			assert.Contains(t, line, "3")
		}
	}
}

func TestPlan(t *testing.T) {
	out, err := execute(t, "plan", "--size", "64", "--keypoints", "4")
	require.NoError(t, err)

	for _, want := range []string{"TENSOR", "block1a", "block5", "fused", "up_final", "[1 4 64 64]", "[1 512 2 2]", "46 parameter tensors"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "block1b")
}

func TestPlan_Refine(t *testing.T) {
	out, err := execute(t, "plan", "--stage", "2", "--keypoints", "15")
	require.NoError(t, err)
	assert.Contains(t, out, "[1 16 384 384]")
	assert.Contains(t, out, "block1b")
	assert.Contains(t, out, "[1 15 384 384]")
}

func TestPlan_Errors(t *testing.T) {
	_, err := execute(t, "plan", "--size", "368")
	assert.ErrorIs(t, err, tensor.ErrShape)

	_, err = execute(t, "plan", "--stage", "3")
	assert.ErrorIs(t, err, tensor.ErrConfig)

	_, err = execute(t, "plan", "--keypoints", "0")
	assert.ErrorIs(t, err, tensor.ErrConfig)

	_, err = execute(t, "plan", "--size", "0")
	assert.Error(t, err)
}

func TestPixels_Gray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 255
	}

	data, err := pixels(img, 4, 1)
	require.NoError(t, err)
	require.Len(t, data, 16)
	for _, v := range data {
		assert.InDelta(t, 1.0, v, 1e-3)
	}
}

func TestPixels_RGB(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{R: 255, G: 0, B: 255, A: 255})
		}
	}

	data, err := pixels(img, 2, 3)
	require.NoError(t, err)
	require.Len(t, data, 12)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 1.0, data[i], 1e-3)
		assert.InDelta(t, 0.0, data[4+i], 1e-3)
		assert.InDelta(t, 1.0, data[8+i], 1e-3)
	}

	_, err = pixels(img, 2, 2)
	assert.Error(t, err)
}

func TestInfer(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 40, 40))
	for i := range img.Pix {
		img.Pix[i] = uint8(i % 251)
	}
	path := filepath.Join(t.TempDir(), "person.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	out, err := execute(t, "infer", path, "--size", "32", "--keypoints", "2", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "KEYPOINT")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3)
}

func TestInfer_Errors(t *testing.T) {
	_, err := execute(t, "infer", filepath.Join(t.TempDir(), "missing.png"), "--size", "32")
	assert.Error(t, err)

	_, err = execute(t, "infer", "whatever.png", "--size", "30")
	assert.ErrorContains(t, err, "multiple of 32")

	_, err = execute(t, "infer")
	assert.Error(t, err)
}
