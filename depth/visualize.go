package depth

import (
	"image"
	"math"
)

// Visualize renders a full-resolution grayscale view of the frame for display only
// Brightness is depth/Max scaled to 0..255; saturated samples and samples below the band floor are zeroed
func Visualize(f *Frame, band Band) *image.Gray {
	w, h := f.Width(), f.Height()
	out := image.NewGray(image.Rect(0, 0, w, h))
	if band.Max <= 0 {
		return out
	}

	alpha := 255.0 / float64(band.Max)
	floor := 255.0 * float64(band.Min) / float64(band.Max)

	for y := 0; y < h; y++ {
		row := out.Pix[y*out.Stride : y*out.Stride+w]
		for x := 0; x < w; x++ {
			v := math.Round(float64(f.At(x, y)) * alpha)
			if v >= 255 || v < floor {
				continue
			}
			row[x] = uint8(v)
		}
	}
	return out
}

// Mask renders a binary view: 255 where the sample lies within the band inclusive, 0 elsewhere
func Mask(f *Frame, band Band) *image.Gray {
	w, h := f.Width(), f.Height()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := out.Pix[y*out.Stride : y*out.Stride+w]
		for x := 0; x < w; x++ {
			v := int(f.At(x, y))
			if v != 0 && v >= band.Min && v <= band.Max {
				row[x] = 255
			}
		}
	}
	return out
}
