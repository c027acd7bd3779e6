package inspect

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"

	"ppmgrid/parallel"
	_ "ppmgrid/ppm"
	"ppmgrid/raster"

	"github.com/dustin/go-humanize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type CLICmd struct {
	Stats bool     `help:"Decode pixel data and report per-channel mean and standard deviation" default:"false"`
	Files []string `arg:"" help:"Images to inspect"`
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	for _, file := range c.Files {
		pool.Go(func() error {
			logger := slog.Default().With("file", file)
			if err := c.inspectFile(logger, file); err != nil {
				logger.Error("could not inspect image", "error", err)
				return err
			}
			return nil
		})
	}

	inspected, errors := pool.Wait()
	slog.Info("stats", "inspected", inspected, "errors", errors,
		"total", inspected+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func (c *CLICmd) inspectFile(logger *slog.Logger, name string) error {
	img, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("could not open image: %w", err)
	}
	defer func() {
		if err := img.Close(); err != nil {
			logger.Error("could not close image", "error", err)
		}
	}()

	info, err := img.Stat()
	if err != nil {
		return fmt.Errorf("could not stat image: %w", err)
	}

	imgConf, imgType, err := image.DecodeConfig(img)
	if err != nil {
		return fmt.Errorf("could not read image: %w", err)
	}

	logger.Info("image", "format", imgType, "width", imgConf.Width, "height", imgConf.Height,
		"size", humanize.Bytes(uint64(info.Size())),
		"bgr", humanize.Bytes(3*uint64(imgConf.Width)*uint64(imgConf.Height)))

	if !c.Stats {
		return nil
	}

	if _, err := img.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("could not rewind image: %w", err)
	}
	full, _, err := image.Decode(img)
	if err != nil {
		return fmt.Errorf("could not decode image: %w", err)
	}
	g, err := raster.FromImage(full)
	if err != nil {
		return err
	}

	s := Compute(g)
	logger.Info("channels",
		"red", s.R, "green", s.G, "blue", s.B)
	return nil
}
