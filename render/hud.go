package render

import (
	"github.com/lixenwraith/tilecast/layout"
)

// HUDRows is the number of rows reserved below the viewport
const HUDRows = 2

// ActionKind is what a key or button click asks for
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionLoad
	ActionLayout
	ActionQuit
)

// Action is a user request decoded from input
type Action struct {
	Kind   ActionKind
	Layout layout.Name
}

// Button is one clickable HUD entry occupying [X, X+Width) on its row
type Button struct {
	Label  string
	Key    rune
	X, Y   int
	Width  int
	Action Action
}

// buttonSpecs is the HUD bar in display order
var buttonSpecs = []struct {
	label  string
	key    rune
	action Action
}{
	{"[L]oad", 'l', Action{Kind: ActionLoad}},
	{"[T]able", 't', Action{Kind: ActionLayout, Layout: layout.Table}},
	{"[S]phere", 's', Action{Kind: ActionLayout, Layout: layout.Sphere}},
	{"[H]elix", 'h', Action{Kind: ActionLayout, Layout: layout.Helix}},
	{"[G]rid", 'g', Action{Kind: ActionLayout, Layout: layout.Grid}},
	{"[Q]uit", 'q', Action{Kind: ActionQuit}},
}

// Buttons lays the HUD bar out for a screen of the given height
func Buttons(height int) []Button {
	y := max(height-HUDRows, 0)
	out := make([]Button, 0, len(buttonSpecs))
	x := 1
	for _, bs := range buttonSpecs {
		w := len(bs.label)
		out = append(out, Button{
			Label:  bs.label,
			Key:    bs.key,
			X:      x,
			Y:      y,
			Width:  w,
			Action: bs.action,
		})
		x += w + 2
	}
	return out
}

// HitTest returns the action of the button under (x, y)
func HitTest(buttons []Button, x, y int) (Action, bool) {
	for _, b := range buttons {
		if y == b.Y && x >= b.X && x < b.X+b.Width {
			return b.Action, true
		}
	}
	return Action{}, false
}

// KeyAction maps a typed rune to an action; digits 1-4 select layouts in button order
func KeyAction(r rune) (Action, bool) {
	if r >= '1' && r <= '4' {
		return Action{Kind: ActionLayout, Layout: layout.Names[r-'1']}, true
	}
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	for _, bs := range buttonSpecs {
		if bs.key == r {
			return bs.action, true
		}
	}
	return Action{}, false
}
