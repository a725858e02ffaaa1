package depth

import (
	"image"
	"image/color"
	"math"
)

// Cell is a coordinate in the downsampled obstacle grid
type Cell struct {
	Row, Col int
}

// GridSize returns the downsampled dimensions for a frame of w×h and cell edge granularity
// Rounds like a fractional resize would; a non-empty frame always yields at least one cell per axis
func GridSize(w, h, granularity int) (cols, rows int) {
	if granularity <= 0 || w <= 0 || h <= 0 {
		return 0, 0
	}
	cols = int(math.Round(float64(w) / float64(granularity)))
	rows = int(math.Round(float64(h) / float64(granularity)))
	return max(cols, 1), max(rows, 1)
}

// Downsample picks one representative sample per cell, the top-left pixel at (col*F, row*F)
// That pixel is also where the obstacle for the cell is placed, so a collider sits on the depth that produced it
// Samples are never averaged, so obstacle edges stay sharp
func Downsample(f *Frame, granularity int) *image.Gray16 {
	cols, rows := GridSize(f.Width(), f.Height(), granularity)
	dst := image.NewGray16(image.Rect(0, 0, cols, rows))
	maxX, maxY := f.Width()-1, f.Height()-1
	for row := 0; row < rows; row++ {
		y := min(row*granularity, maxY)
		for col := 0; col < cols; col++ {
			x := min(col*granularity, maxX)
			dst.SetGray16(col, row, color.Gray16{Y: f.At(x, y)})
		}
	}
	return dst
}

// Mapper classifies downsampled cells against a band
// Stateless: identical inputs always yield identical cells
type Mapper struct {
	Granularity int
}

// NewMapper creates a mapper for the given cell edge length in pixels
func NewMapper(granularity int) Mapper {
	return Mapper{Granularity: granularity}
}

// Cells returns every grid cell whose representative sample lies strictly inside band
// Row-major order; a frame of invalid samples yields no cells
func (m Mapper) Cells(f *Frame, band Band) []Cell {
	return CellsFromGrid(Downsample(f, m.Granularity), band)
}

// CellsFromGrid classifies an already downsampled grid
func CellsFromGrid(grid *image.Gray16, band Band) []Cell {
	var cells []Cell
	b := grid.Bounds()
	for row := b.Min.Y; row < b.Max.Y; row++ {
		for col := b.Min.X; col < b.Max.X; col++ {
			if band.Contains(grid.Gray16At(col, row).Y) {
				cells = append(cells, Cell{Row: row - b.Min.Y, Col: col - b.Min.X})
			}
		}
	}
	return cells
}
