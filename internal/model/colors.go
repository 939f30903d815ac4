package model

import "strings"

// RGB is an 8-bit color used by raster and PDF renderers.
type RGB struct {
	R, G, B int
}

// namedColors maps the SVG color keywords used by the inventory to RGB.
var namedColors = map[string]RGB{
	"black":  {R: 0, G: 0, B: 0},
	"gray":   {R: 128, G: 128, B: 128},
	"grey":   {R: 128, G: 128, B: 128},
	"red":    {R: 255, G: 0, B: 0},
	"blue":   {R: 0, G: 0, B: 255},
	"green":  {R: 0, G: 128, B: 0},
	"orange": {R: 255, G: 165, B: 0},
	"white":  {R: 255, G: 255, B: 255},
}

// NamedRGB resolves a color keyword. Unknown names render as black.
func NamedRGB(name string) RGB {
	if c, ok := namedColors[strings.ToLower(name)]; ok {
		return c
	}
	return RGB{}
}
