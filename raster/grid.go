// Package raster holds RGB pixel grids.
//
// A Grid stores its pixels row-major: the pixel at (row, col) lives at
// Pix[row*width+col]. Rows are addressed first everywhere in this package
// except in the image.Image methods, which follow the standard (x, y)
// order where x is the column.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"iter"
)

// MaxPixels caps the size of a grid so that a hostile header cannot make
// the decoder allocate unbounded memory. At 3 bytes per pixel this is
// 1.2GB of color data.
const MaxPixels = 400_000_000

var (
	ErrInvalidDimension = errors.New("invalid grid dimension")
	ErrOutOfBounds      = errors.New("pixel out of bounds")
)

type Grid struct {
	pix    []Color
	width  int
	height int
}

// New allocates a width x height grid painted white.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	if width > MaxPixels/height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidDimension, width, height, MaxPixels)
	}

	g := &Grid{
		pix:    make([]Color, width*height),
		width:  width,
		height: height,
	}
	g.Fill(White)

	return g, nil
}

func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Height() int {
	return g.height
}

func (g *Grid) offset(row, col int) (int, error) {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return 0, fmt.Errorf("%w: row %d, col %d in %dx%d grid", ErrOutOfBounds, row, col, g.width, g.height)
	}
	return row*g.width + col, nil
}

func (g *Grid) Pixel(row, col int) (Color, error) {
	i, err := g.offset(row, col)
	if err != nil {
		return Color{}, err
	}
	return g.pix[i], nil
}

func (g *Grid) SetPixel(row, col int, c Color) error {
	i, err := g.offset(row, col)
	if err != nil {
		return err
	}
	g.pix[i] = c
	return nil
}

func (g *Grid) Fill(c Color) {
	for i := range g.pix {
		g.pix[i] = c
	}
}

// All yields every pixel row-major: row 0 left to right, then row 1.
func (g *Grid) All() iter.Seq[Color] {
	return func(yield func(Color) bool) {
		for _, c := range g.pix {
			if !yield(c) {
				return
			}
		}
	}
}

// BytesBGR walks the grid row-major and yields blue, green and red for
// every pixel. The sequence can be ranged over any number of times.
func (g *Grid) BytesBGR() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for c := range g.All() {
			if !yield(c.B) || !yield(c.G) || !yield(c.R) {
				return
			}
		}
	}
}

// AppendBGR appends the BytesBGR sequence to dst.
func (g *Grid) AppendBGR(dst []byte) []byte {
	if need := len(dst) + 3*len(g.pix); cap(dst) < need {
		dst = append(make([]byte, 0, need), dst...)
	}
	for _, c := range g.pix {
		dst = append(dst, c.B, c.G, c.R)
	}
	return dst
}

func (g *Grid) ColorModel() color.Model {
	return ColorModel
}

func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.width, g.height)
}

func (g *Grid) At(x, y int) color.Color {
	c, err := g.Pixel(y, x)
	if err != nil {
		return color.RGBA{}
	}
	return c
}

func (g *Grid) Set(x, y int, c color.Color) {
	// out of range writes are dropped, as with image.RGBA
	_ = g.SetPixel(y, x, ColorModel.Convert(c).(Color))
}

// Opaque reports that every pixel is fully opaque, which is always true.
func (g *Grid) Opaque() bool {
	return true
}
