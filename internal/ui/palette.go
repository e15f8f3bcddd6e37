package ui

import (
	"fmt"
	"strings"

	"github.com/nsf/termbox-go"
)

var colorNames = map[string]termbox.Attribute{
	"black":   termbox.ColorBlack,
	"red":     termbox.ColorRed,
	"green":   termbox.ColorGreen,
	"yellow":  termbox.ColorYellow,
	"blue":    termbox.ColorBlue,
	"magenta": termbox.ColorMagenta,
	"cyan":    termbox.ColorCyan,
	"white":   termbox.ColorWhite,
}

// DefaultPalette is cycled over the captured segments of a line
var DefaultPalette = []termbox.Attribute{termbox.ColorYellow, termbox.ColorBlue, termbox.ColorRed}

// ParsePalette turns color names into termbox colors. An empty list yields
// DefaultPalette.
func ParsePalette(names []string) ([]termbox.Attribute, error) {
	if len(names) == 0 {
		return DefaultPalette, nil
	}
	palette := make([]termbox.Attribute, 0, len(names))
	for _, name := range names {
		c, ok := colorNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown highlight color %q", name)
		}
		palette = append(palette, c)
	}
	return palette, nil
}
