package render

import (
	"image"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"
)

// halfBlock paints the upper pixel as foreground and the lower pixel as background
const halfBlock = '▀'

var hudStyle = tcell.StyleDefault.
	Foreground(tcell.NewRGBColor(230, 230, 230)).
	Background(tcell.NewRGBColor(30, 30, 30))

// TerminalPresenter shows a surface on a tcell screen, two image rows per text row
// The bottom text row is reserved for the HUD line
type TerminalPresenter struct {
	screen tcell.Screen
	scaled *image.RGBA
}

// NewTerminalPresenter binds a presenter to an initialised screen
func NewTerminalPresenter(screen tcell.Screen) *TerminalPresenter {
	return &TerminalPresenter{screen: screen}
}

// Present scales img to the terminal, draws it with half blocks, writes the HUD and flushes
func (p *TerminalPresenter) Present(img image.Image, hud string) {
	cols, rows := p.screen.Size()
	sceneRows := rows - 1
	if cols <= 0 || sceneRows <= 0 {
		return
	}

	dst := p.target(cols, sceneRows*2)
	draw.ApproxBiLinear.Scale(dst, dst.Rect, img, img.Bounds(), draw.Src, nil)

	for y := 0; y < sceneRows; y++ {
		for x := 0; x < cols; x++ {
			top := dst.RGBAAt(x, 2*y)
			bottom := dst.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			p.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}

	p.drawHUD(hud, cols, rows-1)
	p.screen.Show()
}

// Resize forces a full redraw after the terminal changed size
func (p *TerminalPresenter) Resize() {
	p.screen.Sync()
}

func (p *TerminalPresenter) target(w, h int) *image.RGBA {
	if p.scaled == nil || p.scaled.Rect.Dx() != w || p.scaled.Rect.Dy() != h {
		p.scaled = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	return p.scaled
}

func (p *TerminalPresenter) drawHUD(text string, cols, row int) {
	runes := []rune(text)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		p.screen.SetContent(x, row, r, nil, hudStyle)
	}
}
