package config

import (
	"regexp"
	"strings"
)

// DefaultStrokeColor is used for color names that cannot be resolved.
const DefaultStrokeColor = "#000000"

// Transparent is passed through unchanged.
const Transparent = "transparent"

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// namedColors maps color names to the light shades of the Excalidraw palette.
var namedColors = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"gray":   "#e9ecef",
	"grey":   "#e9ecef",
	"red":    "#ffc9c9",
	"pink":   "#fcc2d7",
	"grape":  "#eebefa",
	"violet": "#d0bfff",
	"indigo": "#bac8ff",
	"blue":   "#a5d8ff",
	"cyan":   "#99e9f2",
	"teal":   "#96f2d7",
	"green":  "#b2f2bb",
	"lime":   "#d8f5a2",
	"yellow": "#ffec99",
	"orange": "#ffd8a8",
}

// ResolveColor returns the hex code for a configured color. Hex codes and
// "transparent" pass through; unknown names yield [DefaultStrokeColor].
func ResolveColor(name string) string {
	name = strings.TrimSpace(name)
	if hexColor.MatchString(name) {
		return strings.ToLower(name)
	}
	lower := strings.ToLower(name)
	if lower == Transparent {
		return Transparent
	}
	if hex, ok := namedColors[lower]; ok {
		return hex
	}
	return DefaultStrokeColor
}
