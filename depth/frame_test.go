package depth

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameMirror(t *testing.T) {
	f := NewFrame(4, 2)
	f.Set(0, 0, 100)
	f.Set(3, 1, 200)

	m := f.Mirror()
	assert.Equal(t, uint16(100), m.At(3, 0))
	assert.Equal(t, uint16(200), m.At(0, 1))
	assert.Equal(t, uint16(0), m.At(0, 0))

	// Source untouched
	assert.Equal(t, uint16(100), f.At(0, 0))
}

func TestFrameMirrorMovesCells(t *testing.T) {
	f := NewFrame(testWidth, testHeight)
	f.FillRect(image.Rect(0, 0, 40, 40), 750)

	cells := NewMapper(testGranularity).Cells(f.Mirror(), defaultBand)
	assert.Equal(t, []Cell{{Row: 0, Col: 15}}, cells)
}

func TestFrameThreshold(t *testing.T) {
	f := NewFrame(3, 1)
	f.Set(0, 0, 150)
	f.Set(1, 0, 800)
	f.Set(2, 0, 16000)

	f.Threshold(200, 15000)
	assert.Equal(t, uint16(0), f.At(0, 0))
	assert.Equal(t, uint16(800), f.At(1, 0))
	assert.Equal(t, uint16(0), f.At(2, 0))
}

func TestFrameFromImage(t *testing.T) {
	t.Run("adopts gray16 at origin", func(t *testing.T) {
		img := image.NewGray16(image.Rect(0, 0, 2, 2))
		img.SetGray16(1, 1, color.Gray16{Y: 900})
		f, err := FrameFromImage(img)
		require.NoError(t, err)
		assert.Same(t, img, f.Image())
		assert.Equal(t, uint16(900), f.At(1, 1))
	})

	t.Run("rebases offset image", func(t *testing.T) {
		img := image.NewGray16(image.Rect(5, 5, 7, 7))
		img.SetGray16(6, 6, color.Gray16{Y: 900})
		f, err := FrameFromImage(img)
		require.NoError(t, err)
		require.Equal(t, 2, f.Width())
		require.Equal(t, 2, f.Height())
		assert.Equal(t, uint16(900), f.At(1, 1))
	})

	t.Run("rejects 8-bit gray", func(t *testing.T) {
		img := image.NewGray(image.Rect(0, 0, 2, 2))
		img.SetGray(0, 0, color.Gray{Y: 200})
		_, err := FrameFromImage(img)
		assert.Error(t, err)
	})
}

func TestVisualize(t *testing.T) {
	f := NewFrame(5, 1)
	f.Set(0, 0, 0)    // invalid
	f.Set(1, 0, 400)  // below band floor
	f.Set(2, 0, 750)  // inside
	f.Set(3, 0, 1000) // saturates
	f.Set(4, 0, 3000) // beyond max

	img := Visualize(f, defaultBand)
	assert.Equal(t, uint8(0), img.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(0), img.GrayAt(1, 0).Y)
	assert.Equal(t, uint8(191), img.GrayAt(2, 0).Y) // round(750*255/1000)
	assert.Equal(t, uint8(0), img.GrayAt(3, 0).Y)
	assert.Equal(t, uint8(0), img.GrayAt(4, 0).Y)
}

func TestMask(t *testing.T) {
	f := NewFrame(4, 1)
	f.Set(0, 0, 0)
	f.Set(1, 0, 500)
	f.Set(2, 0, 1000)
	f.Set(3, 0, 1001)

	img := Mask(f, defaultBand)
	assert.Equal(t, []uint8{0, 255, 255, 0}, img.Pix)
}

func TestBand(t *testing.T) {
	b := Band{Min: 500, Max: 1000}
	assert.True(t, b.Valid())
	assert.False(t, b.Contains(500))
	assert.True(t, b.Contains(501))
	assert.False(t, b.Contains(1000))
	assert.Equal(t, Band{Min: 250, Max: 750}, b.Shift(-250))
	assert.Equal(t, "500-1000mm", b.String())

	assert.False(t, Band{Min: 0, Max: 10}.Valid())
	assert.False(t, Band{Min: 10, Max: 10}.Valid())
}
