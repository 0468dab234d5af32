// Package render draws the tile scene and its HUD onto a tcell screen.
package render

import (
	"fmt"
	"math"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/tilecast/entity"
	"github.com/lixenwraith/tilecast/layout"
)

// World-space tile size
const (
	TileWidth  = 120.0
	TileHeight = 160.0
)

// View is everything one frame needs
type View struct {
	Tiles   []*entity.Tile
	Layout  layout.Name
	Gen     uint64
	Loading bool
	Err     error
}

// Renderer projects tiles and draws them far to near
type Renderer struct {
	camera  *Camera
	palette Palette
	order   []drawItem
}

type drawItem struct {
	tile *entity.Tile
	proj projected
}

// NewRenderer creates a renderer for a screen of cols × rows cells
func NewRenderer(palette Palette, cols, rows int) *Renderer {
	return &Renderer{
		camera:  NewCamera(cols, max(rows-HUDRows, 1)),
		palette: palette,
	}
}

// Resize adapts the camera to new screen dimensions
func (r *Renderer) Resize(cols, rows int) {
	r.camera.Resize(cols, max(rows-HUDRows, 1))
}

// Camera exposes the projection for hit testing and tests
func (r *Renderer) Camera() *Camera {
	return r.camera
}

// Draw renders one full frame and shows it
func (r *Renderer) Draw(s tcell.Screen, v View) {
	w, h := s.Size()
	// Clear resets cells to StyleDefault; fill so the backdrop is in every cell
	s.SetStyle(r.palette.Backdrop)
	s.Fill(' ', r.palette.Backdrop)

	viewRows := max(h-HUDRows, 0)
	r.drawTiles(s, v.Tiles, w, viewRows)
	r.drawHUD(s, v, w, h)
	s.Show()
}

func (r *Renderer) drawTiles(s tcell.Screen, tiles []*entity.Tile, w, h int) {
	r.order = r.order[:0]
	for _, t := range tiles {
		p, ok := r.camera.Project(t.Position)
		if !ok {
			continue
		}
		r.order = append(r.order, drawItem{tile: t, proj: p})
	}
	// Painter's algorithm: far to near, ties keep entity order
	slices.SortStableFunc(r.order, func(a, b drawItem) int {
		switch {
		case a.proj.depth > b.proj.depth:
			return -1
		case a.proj.depth < b.proj.depth:
			return 1
		}
		return 0
	})
	for _, it := range r.order {
		r.drawTile(s, it, w, h)
	}
}

func (r *Renderer) drawTile(s tcell.Screen, it drawItem, w, h int) {
	sprite, ok := it.tile.Handle().(*Sprite)
	if !ok || sprite == nil {
		sprite = buildSprite(it.tile, r.palette)
	}

	bw := max(int(math.Round(TileWidth*it.proj.sx)), 1)
	bh := max(int(math.Round(TileHeight*it.proj.sy)), 1)
	x0 := int(math.Round(it.proj.cx - float64(bw)/2))
	y0 := int(math.Round(it.proj.cy - float64(bh)/2))

	fillRect(s, x0, y0, bw, bh, w, h, sprite.Style)

	mid := y0 + (bh-1)/2
	drawCentered(s, x0, mid, bw, w, h, sprite.Name, sprite.Style)
	if bh >= 3 {
		drawCentered(s, x0, mid+1, bw, w, h, sprite.Value, sprite.Style)
	}
}

func (r *Renderer) drawHUD(s tcell.Screen, v View, w, h int) {
	if h < HUDRows {
		return
	}
	for _, b := range Buttons(h) {
		style := r.palette.HUD
		if b.Action.Kind == ActionLayout && b.Action.Layout == v.Layout {
			style = r.palette.Active
		}
		x := b.X
		for _, ch := range b.Label {
			st := style
			if ch == b.Key-'a'+'A' && style == r.palette.HUD {
				st = r.palette.HUDKey
			}
			s.SetContent(x, b.Y, ch, nil, st)
			x++
		}
	}

	statusY := h - 1
	status := fmt.Sprintf("%s tiles  layout %s  gen %d", humanize.Comma(int64(len(v.Tiles))), v.Layout.Title(), v.Gen)
	if v.Loading {
		status += "  loading…"
	}
	x := writeStr(s, 1, statusY, w, status, r.palette.Status)
	if v.Err != nil {
		writeStr(s, x+2, statusY, w, "load failed: "+v.Err.Error(), r.palette.Error)
	}
}

// fillRect paints a clipped rectangle of blanks
func fillRect(s tcell.Screen, x0, y0, bw, bh, w, h int, style tcell.Style) {
	for y := max(y0, 0); y < min(y0+bh, h); y++ {
		for x := max(x0, 0); x < min(x0+bw, w); x++ {
			s.SetContent(x, y, ' ', nil, style)
		}
	}
}

// drawCentered writes text centered in [x0, x0+bw) on row y, truncated to fit
func drawCentered(s tcell.Screen, x0, y, bw, w, h int, text string, style tcell.Style) {
	if y < 0 || y >= h || bw <= 0 {
		return
	}
	text = runewidth.Truncate(text, bw, "…")
	tw := runewidth.StringWidth(text)
	x := x0 + (bw-tw)/2
	for _, ch := range text {
		cw := runewidth.RuneWidth(ch)
		if x >= 0 && x+cw <= w {
			s.SetContent(x, y, ch, nil, style)
		}
		x += cw
	}
}

// writeStr writes s left to right, clipped at w; returns the column after the text
func writeStr(s tcell.Screen, x, y, w int, text string, style tcell.Style) int {
	for _, ch := range text {
		cw := runewidth.RuneWidth(ch)
		if x+cw > w {
			break
		}
		s.SetContent(x, y, ch, nil, style)
		x += cw
	}
	return x
}
