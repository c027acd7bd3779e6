package ppm

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ppmgrid/raster"
)

// Load decodes the P3 file at path.
func Load(path string) (*raster.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "file", path, "error", closeErr)
		}
	}()

	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", path, err)
	}
	return g, nil
}

// Save writes g to path. The image is written to a temporary file in the
// same folder and renamed into place once complete, so path is either
// left untouched or holds the whole image.
func Save(path string, g *raster.Grid) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create temporary destination for %q: %w", path, err)
	}
	done := false
	defer func() {
		if !done {
			// may already be closed
			_ = tmp.Close()
			if rmErr := os.Remove(tmp.Name()); rmErr != nil {
				slog.Error("could not remove temporary file", "file", tmp.Name(), "error", rmErr)
			}
		}
	}()

	if err = Encode(tmp, g); err != nil {
		return fmt.Errorf("could not encode %q: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("could not flush %q: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("could not close %q: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("could not rename destination file %q: %w", path, err)
	}

	done = true
	return nil
}
