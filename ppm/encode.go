package ppm

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"ppmgrid/raster"
)

const (
	maxValue    = 255
	maxLineSize = 70
)

// Encode writes g to w as P3 with a max value of 255. Pixel lines start
// with a space and are wrapped so that none exceeds 70 characters.
func Encode(w io.Writer, g *raster.Grid) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("P3\n")
	bw.WriteString(strconv.Itoa(g.Width()))
	bw.WriteByte(' ')
	bw.WriteString(strconv.Itoa(g.Height()))
	bw.WriteByte('\n')
	bw.WriteString(strconv.Itoa(maxValue))
	bw.WriteByte('\n')

	line := make([]byte, 0, maxLineSize)
	pixel := make([]byte, 0, len("255 255 255"))
	for c := range g.All() {
		pixel = strconv.AppendUint(pixel[:0], uint64(c.R), 10)
		pixel = append(pixel, ' ')
		pixel = strconv.AppendUint(pixel, uint64(c.G), 10)
		pixel = append(pixel, ' ')
		pixel = strconv.AppendUint(pixel, uint64(c.B), 10)

		if len(line) > 0 && len(line)+1+len(pixel) > maxLineSize {
			bw.Write(line)
			bw.WriteByte('\n')
			line = line[:0]
		}
		line = append(line, ' ')
		line = append(line, pixel...)
	}
	bw.Write(line)
	bw.WriteByte('\n')

	// bufio.Writer keeps the first write error and reports it here
	return bw.Flush()
}

func EncodeString(g *raster.Grid) string {
	var sb strings.Builder
	// strings.Builder never fails
	_ = Encode(&sb, g)
	return sb.String()
}
