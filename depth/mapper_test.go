package depth

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/depthballs/vmath"
)

const (
	testWidth       = 640
	testHeight      = 400
	testGranularity = 40
)

var defaultBand = Band{Min: 500, Max: 1000}

func TestGridSize(t *testing.T) {
	tests := []struct {
		name       string
		w, h, f    int
		cols, rows int
	}{
		{"exact", 640, 400, 40, 16, 10},
		{"rounds down", 650, 410, 40, 16, 10},
		{"rounds up", 660, 420, 40, 17, 11},
		{"tiny frame keeps one cell", 10, 10, 40, 1, 1},
		{"zero granularity", 640, 400, 0, 0, 0},
		{"empty frame", 0, 0, 40, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows := GridSize(tt.w, tt.h, tt.f)
			assert.Equal(t, tt.cols, cols)
			assert.Equal(t, tt.rows, rows)
		})
	}
}

func TestCellsEmptyFrame(t *testing.T) {
	f := NewFrame(testWidth, testHeight)
	cells := NewMapper(testGranularity).Cells(f, defaultBand)
	assert.Empty(t, cells)
}

func TestCellsSingleCell(t *testing.T) {
	f := NewFrame(testWidth, testHeight)
	// Cell (row 2, col 3) covers x 120..159, y 80..119
	f.FillRect(image.Rect(120, 80, 160, 120), 750)

	cells := NewMapper(testGranularity).Cells(f, defaultBand)
	require.Len(t, cells, 1)
	assert.Equal(t, Cell{Row: 2, Col: 3}, cells[0])
}

func TestCellsBandIsExclusive(t *testing.T) {
	f := NewFrame(testWidth, testHeight)
	f.FillRect(image.Rect(0, 0, 40, 40), 500)     // equals Min
	f.FillRect(image.Rect(40, 0, 80, 40), 1000)   // equals Max
	f.FillRect(image.Rect(80, 0, 120, 40), 501)   // just inside
	f.FillRect(image.Rect(120, 0, 160, 40), 999)  // just inside
	f.FillRect(image.Rect(160, 0, 200, 40), 2000) // far

	cells := NewMapper(testGranularity).Cells(f, defaultBand)
	assert.ElementsMatch(t, []Cell{{Row: 0, Col: 2}, {Row: 0, Col: 3}}, cells)
}

func TestCellsNearestNeighbourNotAveraged(t *testing.T) {
	f := NewFrame(testWidth, testHeight)
	// Left half of cell (0,0) far, right half near; an average would be 1250,
	// the representative is the raw top-left value
	f.FillRect(image.Rect(0, 0, 20, 40), 1750)
	f.FillRect(image.Rect(20, 0, 40, 40), 750)

	grid := Downsample(f, testGranularity)
	v := grid.Gray16At(0, 0).Y
	assert.Equal(t, uint16(1750), v)
}

func TestCellsSamplesInsideBand(t *testing.T) {
	rng := vmath.NewFastRand(1234)
	bands := []Band{{500, 1000}, {250, 750}, {1750, 2250}, {2000, 2500}}

	for trial := 0; trial < 20; trial++ {
		f := NewFrame(testWidth, testHeight)
		for y := 0; y < testHeight; y++ {
			for x := 0; x < testWidth; x++ {
				f.Set(x, y, uint16(rng.Intn(3000)))
			}
		}
		for _, band := range bands {
			grid := Downsample(f, testGranularity)
			cells := CellsFromGrid(grid, band)

			inBand := 0
			b := grid.Bounds()
			for row := 0; row < b.Dy(); row++ {
				for col := 0; col < b.Dx(); col++ {
					if band.Contains(grid.Gray16At(col, row).Y) {
						inBand++
					}
				}
			}
			assert.Len(t, cells, inBand)
			for _, c := range cells {
				s := grid.Gray16At(c.Col, c.Row).Y
				assert.Greater(t, int(s), band.Min)
				assert.Less(t, int(s), band.Max)
			}
		}
	}
}

func TestCellsPure(t *testing.T) {
	f := NewFrame(testWidth, testHeight)
	f.FillRect(image.Rect(200, 200, 400, 320), 800)
	f.FillRect(image.Rect(0, 0, 80, 80), 600)
	m := NewMapper(testGranularity)

	first := m.Cells(f, defaultBand)
	second := m.Cells(f, defaultBand)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestCellsRepresentativeIsTopLeft(t *testing.T) {
	f := NewFrame(testWidth, testHeight)
	// Only the top-left pixel of cell (1,1) is inside the band
	f.Set(40, 40, 700)
	// Center of cell (2,2) alone does not qualify it
	f.Set(100, 100, 700)

	cells := NewMapper(testGranularity).Cells(f, defaultBand)
	assert.Equal(t, []Cell{{Row: 1, Col: 1}}, cells)
}

func TestCellsPartialCoverage(t *testing.T) {
	m := NewMapper(testGranularity)

	// Object over the top-left quarter of cell (2,3) qualifies the cell
	f := NewFrame(testWidth, testHeight)
	f.FillRect(image.Rect(120, 80, 140, 100), 750)
	assert.Equal(t, []Cell{{Row: 2, Col: 3}}, m.Cells(f, defaultBand))

	// Object over the bottom-right quarter only does not
	f = NewFrame(testWidth, testHeight)
	f.FillRect(image.Rect(140, 100, 160, 120), 750)
	assert.Empty(t, m.Cells(f, defaultBand))
}

func TestDownsampleRoundedGridStaysInFrame(t *testing.T) {
	// 660/40 rounds up to 17 columns; the last sample column is 640
	f := NewFrame(660, 40)
	f.Set(640, 0, 800)
	grid := Downsample(f, testGranularity)
	require.Equal(t, 17, grid.Bounds().Dx())
	assert.Equal(t, uint16(800), grid.Gray16At(16, 0).Y)
}
