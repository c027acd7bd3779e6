package convert

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"

	"ppmgrid/parallel"
	"ppmgrid/raster"

	"github.com/alecthomas/kong"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type CLICmd struct {
	Scan   string `help:"Source folder to scan" default:"."`
	Dest   string `help:"Destination folder for converted pictures. Relative to scan dir if not absolute." default:"converted"`
	Format string `help:"Output format. bgr writes raw 24-bit pixels, blue first, rows top to bottom" enum:"ppm,png,gif,jpeg,bmp,tiff,bgr" default:"ppm"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	return nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		fileName := file.Name()
		pool.Go(func() error {
			return c.convertFile(fileName)
		})
	}

	processed, errors := pool.Wait()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func (c *CLICmd) convertFile(fileName string) error {
	filePath := filepath.Join(c.Scan, fileName)
	logger := slog.Default().With("file", filePath)

	g, imgType, err := load(filePath)
	if err != nil {
		logger.Error("could not load image", "error", err)
		return err
	}
	logger.Debug("loaded", "format", imgType, "width", g.Width(), "height", g.Height())

	destName, err := save(g, c.Format, c.Dest, fileName)
	if err != nil {
		logger.Error("could not save image", "dir", c.Dest, "error", err)
		return err
	}

	logger.Info("converted", "to", destName)
	return nil
}

func load(filePath string) (*raster.Grid, string, error) {
	imgFile, err := os.Open(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("could not open image: %w", err)
	}
	defer func() {
		if closeErr := imgFile.Close(); closeErr != nil {
			slog.Error("could not close image", "file", filePath, "error", closeErr)
		}
	}()

	img, imgType, err := image.Decode(imgFile)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode image: %w", err)
	}

	if g, ok := img.(*raster.Grid); ok {
		return g, imgType, nil
	}

	g, err := raster.FromImage(img)
	if err != nil {
		return nil, imgType, fmt.Errorf("could not convert %s image: %w", imgType, err)
	}
	return g, imgType, nil
}
