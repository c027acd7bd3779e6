package raster

import (
	"image"

	"golang.org/x/image/draw"
)

var _ draw.Image = &Grid{}

// FromImage copies img into a new grid whose top-left pixel is the
// top-left corner of img's bounds. Transparency is flattened by the
// conversion to 8-bit RGB.
func FromImage(img image.Image) (*Grid, error) {
	if g, ok := img.(*Grid); ok {
		dup := &Grid{
			pix:    append([]Color(nil), g.pix...),
			width:  g.width,
			height: g.height,
		}
		return dup, nil
	}

	sr := img.Bounds()
	g, err := New(sr.Dx(), sr.Dy())
	if err != nil {
		return nil, err
	}

	draw.Draw(g, g.Bounds(), img, sr.Min, draw.Src)
	return g, nil
}
