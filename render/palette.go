package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tilecast/entity"
)

// Palette colors tiles by tier and styles the HUD
type Palette struct {
	Tier     [3]tcell.Color
	Label    tcell.Color
	HUD      tcell.Style
	HUDKey   tcell.Style
	Active   tcell.Style
	Status   tcell.Style
	Error    tcell.Style
	Backdrop tcell.Style
}

// DefaultPalette uses red/orange/green tiers on a black backdrop
func DefaultPalette() Palette {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	return Palette{
		Tier: [3]tcell.Color{
			entity.TierLow:  tcell.ColorRed,
			entity.TierMid:  tcell.ColorOrange,
			entity.TierHigh: tcell.ColorGreen,
		},
		Label:    tcell.ColorWhite,
		HUD:      base.Foreground(tcell.NewRGBColor(170, 170, 180)),
		HUDKey:   base.Foreground(tcell.ColorYellow).Bold(true),
		Active:   base.Foreground(tcell.ColorBlack).Background(tcell.ColorAqua),
		Status:   base.Foreground(tcell.NewRGBColor(100, 100, 110)),
		Error:    base.Foreground(tcell.ColorRed).Bold(true),
		Backdrop: base,
	}
}

// TileStyle returns the box style for a tier
func (p Palette) TileStyle(t entity.Tier) tcell.Style {
	c := tcell.ColorGray
	if int(t) < len(p.Tier) {
		c = p.Tier[t]
	}
	return tcell.StyleDefault.Background(c).Foreground(p.Label)
}
