package layout

import (
	"fmt"
	"strings"
)

// Name identifies one of the preset layouts
type Name string

const (
	Table  Name = "table"
	Sphere Name = "sphere"
	Helix  Name = "helix"
	Grid   Name = "grid"
)

// Names lists every layout in button order
var Names = [4]Name{Table, Sphere, Helix, Grid}

// Parse resolves a case-insensitive layout name
func Parse(s string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Names {
		if n == known {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLayout, s)
}

// Title returns the display label, e.g. "Sphere"
func (n Name) Title() string {
	if n == "" {
		return ""
	}
	return strings.ToUpper(string(n[:1])) + string(n[1:])
}
