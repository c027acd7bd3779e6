package canvas

import (
	"fmt"
	"log/slog"

	"ppmgrid/ppm"
	"ppmgrid/raster"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Width  int          `help:"Width in pixels" required:""`
	Height int          `help:"Height in pixels" required:""`
	Color  string       `help:"Fill color as #RGB or #RRGGBB" default:"#fff"`
	File   string       `arg:"" help:"Destination PPM file" type:"path"`
	Fill   raster.Color `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("invalid width: %d", c.Width)
	case c.Height <= 0:
		return fmt.Errorf("invalid height: %d", c.Height)
	}

	var err error
	if c.Fill, err = parseHexToColor(c.Color); err != nil {
		return err
	}
	return nil
}

func (c *CLICmd) Run() error {
	g, err := raster.New(c.Width, c.Height)
	if err != nil {
		return err
	}
	g.Fill(c.Fill)

	if err := ppm.Save(c.File, g); err != nil {
		return err
	}

	slog.Info("created", "file", c.File, "width", c.Width, "height", c.Height, "color", c.Fill)
	return nil
}

func parseHexToColor(s string) (raster.Color, error) {
	var c raster.Color
	switch len(s) {
	case 4:
		n, err := fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		if err != nil {
			return c, fmt.Errorf("could not read color: %w", err)
		} else if n < 3 {
			return c, fmt.Errorf("insufficient fill color fields: %d", n)
		}

		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
	case 7:
		n, err := fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B)
		if err != nil {
			return c, fmt.Errorf("could not read color: %w", err)
		} else if n < 3 {
			return c, fmt.Errorf("insufficient fill color fields: %d", n)
		}
	default:
		return c, fmt.Errorf("invalid fill color %q, should be #RGB or #RRGGBB", s)
	}

	return c, nil
}
