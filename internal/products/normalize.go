package product

import (
	"encoding/json"
	"strings"
)

const unknownColorHex = "#000000"

var colorHex = map[string]string{
	"red":    "#FF0000",
	"blue":   "#0000FF",
	"green":  "#008000",
	"black":  "#000000",
	"white":  "#FFFFFF",
	"gray":   "#808080",
	"yellow": "#FFFF00",
	"orange": "#FFA500",
	"purple": "#800080",
	"pink":   "#FFC0CB",
	"brown":  "#A52A2A",
	"navy":   "#000080",
}

// ParseSizes turns "S, M, L" into sizes with zero stock, dropping blank entries.
func ParseSizes(raw string) []Size {
	sizes := []Size{}
	for _, label := range splitList(raw) {
		sizes = append(sizes, Size{Size: label, Stock: 0})
	}
	return sizes
}

// ParseColors turns "Red, Blue" into named colors. Unknown names map to black.
func ParseColors(raw string) []Color {
	colors := []Color{}
	for _, name := range splitList(raw) {
		colors = append(colors, Color{Name: name, HexCode: HexForColor(name)})
	}
	return colors
}

// HexForColor looks a color name up case-insensitively.
func HexForColor(name string) string {
	if hex, ok := colorHex[strings.ToLower(strings.TrimSpace(name))]; ok {
		return hex
	}
	return unknownColorHex
}

// ParseImageURLs decodes a JSON array of URLs. ok is false when raw is not a
// JSON array of strings; a JSON null counts as not provided.
func ParseImageURLs(raw string) (urls []string, ok bool) {
	if err := json.Unmarshal([]byte(raw), &urls); err != nil || urls == nil {
		return nil, false
	}
	return urls, true
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
