package render

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"github.com/lixenwraith/depthballs/physics"
)

// Surface is the off-screen drawing target, in world coordinates
// It is what gets presented to the terminal and what a capture writes to disk
type Surface struct {
	dc     *gg.Context
	width  int
	height int
	bg     *image.RGBA
}

// NewSurface creates a white surface of the given size
func NewSurface(width, height int) *Surface {
	s := &Surface{
		dc:     gg.NewContext(width, height),
		width:  width,
		height: height,
		bg:     image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	s.Clear()
	return s
}

func (s *Surface) Width() int {
	return s.width
}

func (s *Surface) Height() int {
	return s.height
}

// Clear fills the surface with white
func (s *Surface) Clear() {
	s.dc.SetColor(color.White)
	s.dc.Clear()
}

// DrawBackground stretches img over the whole surface
func (s *Surface) DrawBackground(img image.Image) {
	if img.Bounds().Size() == s.bg.Rect.Size() {
		draw.Draw(s.bg, s.bg.Rect, img, img.Bounds().Min, draw.Src)
	} else {
		draw.BiLinear.Scale(s.bg, s.bg.Rect, img, img.Bounds(), draw.Src, nil)
	}
	s.dc.DrawImage(s.bg, 0, 0)
}

// DrawObstacles draws every obstacle as a faint filled circle
func (s *Surface) DrawObstacles(obstacles []physics.Obstacle) {
	s.dc.SetColor(physics.ObstacleColor)
	for _, o := range obstacles {
		s.dc.DrawCircle(o.Position.X, o.Position.Y, o.Radius)
		s.dc.Fill()
	}
}

// DrawBalls draws every ball filled with its color, outlined, with a spoke showing rotation
func (s *Surface) DrawBalls(balls []*physics.Ball) {
	s.dc.SetLineWidth(1)
	for _, b := range balls {
		p := b.Position()
		s.dc.DrawCircle(p.X, p.Y, b.Radius)
		s.dc.SetColor(b.Color)
		s.dc.FillPreserve()
		s.dc.SetColor(outline(b.Color))
		s.dc.Stroke()

		a := b.Angle()
		s.dc.DrawLine(p.X, p.Y, p.X+b.Radius*math.Cos(a), p.Y+b.Radius*math.Sin(a))
		s.dc.Stroke()
	}
}

func outline(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: 255}
}

// Image returns the current surface pixels
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// Save writes the surface as a PNG
func (s *Surface) Save(path string) error {
	return errors.Wrapf(s.dc.SavePNG(path), "save surface to %s", path)
}
