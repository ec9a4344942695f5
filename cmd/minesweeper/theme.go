package main

import (
	"image/color"
	"strings"
)

// theme is a palette. Alert covers flags, crosses and the lit counter
// segments; Ink covers mines and plain text on cells.
type theme struct {
	Name      string
	Panel     color.Color
	Face      color.Color
	Light     color.Color
	Dark      color.Color
	Revealed  color.Color
	Grid      color.Color
	Ink       color.Color
	Text      color.Color
	Alert     color.Color
	Detonated color.Color
	Accent    color.Color
	Overlay   color.Color
	DigitOff  color.Color
	Numbers   [9]color.Color
}

var themes = []theme{
	{
		Name:      "Classic",
		Panel:     hex(0xc0c0c0),
		Face:      hex(0xc0c0c0),
		Light:     hex(0xffffff),
		Dark:      hex(0x808080),
		Revealed:  hex(0xd6d6d6),
		Grid:      hex(0x9b9b9b),
		Ink:       hex(0x0f0f0f),
		Text:      hex(0x0c0c0c),
		Alert:     hex(0xd22020),
		Detonated: hex(0xd22828),
		Accent:    hex(0x2080ff),
		Overlay:   color.RGBA{A: 120},
		DigitOff:  hex(0x3c1414),
		Numbers:   numbers(0x1919dc, 0x008200, 0xd21414, 0x000087, 0x820000, 0x008080, 0x000000, 0x6e6e6e),
	},
	{
		Name:      "Dark",
		Panel:     hex(0x30333c),
		Face:      hex(0x3e424e),
		Light:     hex(0x4e525d),
		Dark:      hex(0x12141a),
		Revealed:  hex(0x565a66),
		Grid:      hex(0x1e2129),
		Ink:       hex(0xf2f2f5),
		Text:      hex(0xf5f5f5),
		Alert:     hex(0xff5858),
		Detonated: hex(0xc81e1e),
		Accent:    hex(0x6bc7ff),
		Overlay:   color.RGBA{A: 140},
		DigitOff:  hex(0x32181c),
		Numbers:   numbers(0x78aaff, 0x5ac86e, 0xff6e6e, 0x968cff, 0xdc785a, 0x50d2d2, 0xebebeb, 0xaaaaaa),
	},
}

func themeIndex(name string) int {
	for i, th := range themes {
		if strings.EqualFold(th.Name, name) {
			return i
		}
	}
	return 0
}

func hex(v uint32) color.Color {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// numbers builds the colours for counts 1 to 8; index 0 is unused.
func numbers(vs ...uint32) [9]color.Color {
	var out [9]color.Color
	out[0] = color.RGBA{}
	for i, v := range vs {
		out[i+1] = hex(v)
	}
	return out
}
