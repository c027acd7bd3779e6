package raster

import (
	"fmt"
	"image/color"
)

// Color is an opaque 24-bit RGB value.
type Color struct {
	R uint8
	G uint8
	B uint8
}

var (
	White = Color{R: 0xFF, G: 0xFF, B: 0xFF}
	Black = Color{}
)

var ColorModel = color.ModelFunc(colorConvert)

func colorConvert(c color.Color) color.Color {
	if _, ok := c.(Color); ok {
		return c
	}

	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return Color{R: rgba.R, G: rgba.G, B: rgba.B}
}

func (c Color) RGBA() (uint32, uint32, uint32, uint32) {
	r := uint32(c.R)
	g := uint32(c.G)
	b := uint32(c.B)
	return r | r<<8, g | g<<8, b | b<<8, 0xFFFF
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
