package cpm

import (
	"fmt"
	"math"

	"github.com/born-ml/posemachine/internal/tensor"
)

// Peak is the strongest response of one heatmap.
type Peak struct {
	Batch    int
	Keypoint int
	Y, X     int
	Value    float32
}

// Peaks returns the argmax of every heatmap in [batch, keypoints, H, W]
// order. Ties resolve to the first position in row-major order; NaN values
// never win unless the whole map is NaN.
func Peaks[B tensor.Backend](heatmaps *tensor.Tensor[float32, B]) ([]Peak, error) {
	shape := heatmaps.Shape()
	if len(shape) != 4 {
		return nil, &tensor.ShapeError{Op: "peaks", Actual: shape.Clone(), Details: "expected 4D heatmaps [N, K, H, W]"}
	}
	if heatmaps.Raw().IsMeta() {
		return nil, fmt.Errorf("peaks: heatmaps on %s have no data", heatmaps.Device())
	}

	n, k, h, w := shape.NCHW()
	data := heatmaps.Data()
	peaks := make([]Peak, 0, n*k)
	for b := range n {
		for kp := range k {
			plane := data[(b*k+kp)*h*w : (b*k+kp+1)*h*w]

			best, bestVal := 0, float32(math.Inf(-1))
			for i, v := range plane {
				if v > bestVal {
					best, bestVal = i, v
				}
			}

			peaks = append(peaks, Peak{
				Batch:    b,
				Keypoint: kp,
				Y:        best / w,
				X:        best % w,
				Value:    plane[best],
			})
		}
	}
	return peaks, nil
}
