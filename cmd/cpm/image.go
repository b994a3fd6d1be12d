package main

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	"github.com/nfnt/resize"
)

// loadImage decodes a PNG or JPEG file.
func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	bounds := img.Bounds()
	slog.Debug("infer: image decoded", "path", path, "format", format, "width", bounds.Dx(), "height", bounds.Dy())
	return img, nil
}

// pixels resizes img to size x size and returns it as [channels, size, size]
// planes scaled to [0, 1]. One channel is luminance; three are R, G, B.
func pixels(img image.Image, size, channels int) ([]float32, error) {
	if channels != 1 && channels != 3 {
		return nil, fmt.Errorf("unsupported channel count %d (use 1 or 3)", channels)
	}

	resized := resize.Resize(uint(size), uint(size), img, resize.Bilinear)
	bounds := resized.Bounds()
	plane := size * size
	data := make([]float32, channels*plane)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := resized.At(bounds.Min.X+x, bounds.Min.Y+y)
			i := y*size + x
			if channels == 1 {
				data[i] = float32(color.Gray16Model.Convert(c).(color.Gray16).Y) / 65535.0
				continue
			}
			r, g, b, _ := c.RGBA()
			data[i] = float32(r) / 65535.0
			data[plane+i] = float32(g) / 65535.0
			data[2*plane+i] = float32(b) / 65535.0
		}
	}
	return data, nil
}
