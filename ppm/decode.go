// Package ppm reads and writes plain (P3) Portable Pixmap files.
//
// A P3 file is a header followed by decimal RGB samples:
//
//	P3
//	# comments run to the end of the line
//	<width> <height>
//	<max value>
//	r g b r g b ...
//
// Tokens may be spread across lines in any way. Samples are rescaled from
// [0, max value] to 8 bits on decode; Encode always writes a max value of
// 255, so a decode of an encode is lossless.
//
// Importing this package also registers the "ppm" format with the image
// package.
package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"ppmgrid/raster"
)

var (
	ErrBadMagicNumber  = errors.New("ppm: magic number should be 'p3'")
	ErrMalformedNumber = errors.New("ppm: malformed number")
	ErrBadMaxValue     = errors.New("ppm: max value must be positive")
	ErrTooManyPixels   = errors.New("ppm: more pixel data than the image holds")
	ErrTooFewPixels    = errors.New("ppm: not enough pixel data")
)

// NumberError reports a token that should have been a decimal number.
type NumberError struct {
	Field string
	Token string
	Err   error
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("ppm: expected number for %s, got %q", e.Field, e.Token)
}

func (e *NumberError) Unwrap() []error {
	return []error{ErrMalformedNumber, e.Err}
}

func init() {
	image.RegisterFormat("ppm", "P3", decodeImage, DecodeConfig)
	image.RegisterFormat("ppm", "p3", decodeImage, DecodeConfig)
}

// tokenizer splits its input into whitespace separated tokens with
// comments removed. It holds at most one line in memory.
type tokenizer struct {
	r      *bufio.Reader
	fields []string
	eof    bool
}

func newTokenizer(r io.Reader) *tokenizer {
	return &tokenizer{r: bufio.NewReader(r)}
}

// next returns io.EOF once the input is exhausted.
func (t *tokenizer) next() (string, error) {
	for len(t.fields) == 0 {
		if t.eof {
			return "", io.EOF
		}

		line, err := t.r.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				return "", fmt.Errorf("could not read input: %w", err)
			}
			t.eof = true
		}

		line, _, _ = strings.Cut(line, "#")
		t.fields = strings.Fields(line)
	}

	tok := t.fields[0]
	t.fields = t.fields[1:]
	return tok, nil
}

type header struct {
	width    int
	height   int
	maxValue int
}

func parseNumber(field, tok string) (int, error) {
	v, err := strconv.ParseUint(tok, 10, 31)
	if err != nil {
		return 0, &NumberError{Field: field, Token: tok, Err: err}
	}
	return int(v), nil
}

// decoder consumes tokens in a fixed order: magic, width, height, max
// value, then samples. The grid is allocated as soon as the height is
// known.
type decoder struct {
	tok  *tokenizer
	hdr  header
	grid *raster.Grid

	sample  [3]uint8
	nSample int
	nPixel  int
}

func (d *decoder) field(name string) (int, error) {
	tok, err := d.tok.next()
	if err == io.EOF {
		return 0, fmt.Errorf("%w: header ended before %s", ErrTooFewPixels, name)
	} else if err != nil {
		return 0, err
	}
	return parseNumber(name, tok)
}

func (d *decoder) readHeader(allocate bool) error {
	magic, err := d.tok.next()
	if err == io.EOF {
		return fmt.Errorf("%w: empty input", ErrTooFewPixels)
	} else if err != nil {
		return err
	}
	if !strings.EqualFold(magic, "p3") {
		return fmt.Errorf("%w, got %q", ErrBadMagicNumber, magic)
	}

	if d.hdr.width, err = d.field("width"); err != nil {
		return err
	}
	if d.hdr.height, err = d.field("height"); err != nil {
		return err
	}
	if allocate {
		if d.grid, err = raster.New(d.hdr.width, d.hdr.height); err != nil {
			return err
		}
	}

	if d.hdr.maxValue, err = d.field("max value"); err != nil {
		return err
	}
	if d.hdr.maxValue == 0 {
		return ErrBadMaxValue
	}

	return nil
}

// scale maps v from [0, maxValue] to [0, 255], truncating toward zero.
// Samples above maxValue saturate.
func scale(v, maxValue int) uint8 {
	f := 255.0 * float64(v) / float64(maxValue)
	if f >= 255 {
		return 255
	}
	return uint8(f)
}

func (d *decoder) readPixels() error {
	total := d.hdr.width * d.hdr.height
	for {
		tok, err := d.tok.next()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}

		v, err := parseNumber("sample", tok)
		if err != nil {
			return err
		}
		if d.nPixel >= total {
			return fmt.Errorf("%w: expected %d pixels", ErrTooManyPixels, total)
		}

		d.sample[d.nSample] = scale(v, d.hdr.maxValue)
		d.nSample++
		if d.nSample < 3 {
			continue
		}

		c := raster.Color{R: d.sample[0], G: d.sample[1], B: d.sample[2]}
		if err := d.grid.SetPixel(d.nPixel/d.hdr.width, d.nPixel%d.hdr.width, c); err != nil {
			return err
		}
		d.nSample = 0
		d.nPixel++
	}

	if d.nPixel < total {
		return fmt.Errorf("%w: got %d of %d pixels", ErrTooFewPixels, d.nPixel, total)
	}
	return nil
}

// Decode reads a P3 image from r.
func Decode(r io.Reader) (*raster.Grid, error) {
	d := &decoder{tok: newTokenizer(r)}
	if err := d.readHeader(true); err != nil {
		return nil, err
	}
	if err := d.readPixels(); err != nil {
		return nil, err
	}
	return d.grid, nil
}

func DecodeString(s string) (*raster.Grid, error) {
	return Decode(strings.NewReader(s))
}

// DecodeConfig returns the dimensions of a P3 image without reading its
// pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	d := &decoder{tok: newTokenizer(r)}
	if err := d.readHeader(false); err != nil {
		return image.Config{}, err
	}
	if d.hdr.width == 0 || d.hdr.height == 0 {
		return image.Config{}, fmt.Errorf("%w: %dx%d", raster.ErrInvalidDimension, d.hdr.width, d.hdr.height)
	}

	return image.Config{
		ColorModel: raster.ColorModel,
		Width:      d.hdr.width,
		Height:     d.hdr.height,
	}, nil
}

func decodeImage(r io.Reader) (image.Image, error) {
	g, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return g, nil
}
