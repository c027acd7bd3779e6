package convert

import (
	"bufio"
	"errors"
	"fmt"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"ppmgrid/ppm"
	"ppmgrid/raster"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// save encodes g into destDir under srcName with its extension replaced by
// outType. Existing files are never overwritten.
func save(g *raster.Grid, outType, destDir, srcName string) (destName string, err error) {
	oldExt := filepath.Ext(srcName)
	destName = fmt.Sprintf("%s.%s", srcName[:len(srcName)-len(oldExt)], outType)
	destPath := filepath.Join(destDir, destName)

	if err := checkDest(destPath); err != nil {
		return destName, err
	}

	outFile, err := os.CreateTemp(destDir, destName+".*.tmp")
	if err != nil {
		return destName, fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), destPath); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
			}
		}
		if err != nil {
			os.Remove(outFile.Name())
		}
	}()

	if err = encode(outFile, g, outType); err != nil {
		return destName, fmt.Errorf("could not encode %q: %w", destName, err)
	}

	canRename = true
	return destName, nil
}

func encode(w io.Writer, g *raster.Grid, outType string) error {
	switch outType {
	case "ppm":
		return ppm.Encode(w, g)
	case "bgr":
		return writeBGR(w, g)
	case "gif":
		return gif.Encode(w, g, nil)
	case "jpeg":
		return jpeg.Encode(w, g, &jpeg.Options{Quality: 100})
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		return enc.Encode(w, g)
	case "bmp":
		return bmp.Encode(w, g)
	case "tiff":
		return tiff.Encode(w, g, nil)
	default:
		return fmt.Errorf("unsupported output format: %s", outType)
	}
}

func writeBGR(w io.Writer, g *raster.Grid) error {
	bw := bufio.NewWriter(w)
	for b := range g.BytesBGR() {
		if err := bw.WriteByte(b); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func checkDest(dest string) error {
	destFileInfo, err := os.Stat(dest)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat destination file %q: %w", dest, err)
		}
	} else {
		return fmt.Errorf("destination file already exists: %q", destFileInfo.Name())
	}

	return nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
