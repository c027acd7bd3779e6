package raster

import (
	"image"
	"image/color"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g, err := New(3, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())
	for row := range 2 {
		for col := range 3 {
			c, err := g.Pixel(row, col)
			require.NoError(t, err)
			assert.Equal(t, White, c, "pixel (%d,%d)", row, col)
		}
	}
}

func TestNew_InvalidDimension(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {0, 0}, {-1, 5}, {MaxPixels, 2}} {
		g, err := New(dims[0], dims[1])
		assert.ErrorIs(t, err, ErrInvalidDimension, "dims %v", dims)
		assert.Nil(t, g)
	}
}

func TestGrid_SetPixel(t *testing.T) {
	g, err := New(2, 3)
	require.NoError(t, err)

	red := Color{R: 255}
	require.NoError(t, g.SetPixel(2, 1, red))

	c, err := g.Pixel(2, 1)
	require.NoError(t, err)
	assert.Equal(t, red, c)

	// neighbours untouched
	c, err = g.Pixel(2, 0)
	require.NoError(t, err)
	assert.Equal(t, White, c)
	c, err = g.Pixel(1, 1)
	require.NoError(t, err)
	assert.Equal(t, White, c)
}

func TestGrid_OutOfBounds(t *testing.T) {
	g, err := New(2, 3)
	require.NoError(t, err)

	for _, pos := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 2}, {3, 2}} {
		_, err := g.Pixel(pos[0], pos[1])
		assert.ErrorIs(t, err, ErrOutOfBounds, "get %v", pos)
		assert.ErrorIs(t, g.SetPixel(pos[0], pos[1], Black), ErrOutOfBounds, "set %v", pos)
	}
}

func TestGrid_Fill(t *testing.T) {
	g, err := New(4, 4)
	require.NoError(t, err)

	teal := Color{G: 128, B: 128}
	g.Fill(teal)
	require.NoError(t, g.SetPixel(0, 0, Black))

	c, err := g.Pixel(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Black, c)

	for i := 1; i < 16; i++ {
		c, err := g.Pixel(i/4, i%4)
		require.NoError(t, err)
		assert.Equal(t, teal, c, "pixel %d aliased the first cell", i)
	}
}

func TestGrid_BytesBGR(t *testing.T) {
	g, err := New(2, 2)
	require.NoError(t, err)
	require.NoError(t, g.SetPixel(0, 0, Color{R: 1, G: 2, B: 3}))
	require.NoError(t, g.SetPixel(0, 1, Color{R: 4, G: 5, B: 6}))
	require.NoError(t, g.SetPixel(1, 0, Color{R: 7, G: 8, B: 9}))
	require.NoError(t, g.SetPixel(1, 1, Color{R: 10, G: 11, B: 12}))

	want := []byte{3, 2, 1, 6, 5, 4, 9, 8, 7, 12, 11, 10}

	got := slices.Collect(g.BytesBGR())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BytesBGR mismatch (-want +got):\n%s", diff)
	}

	// restartable
	again := slices.Collect(g.BytesBGR())
	assert.Equal(t, got, again)

	assert.Equal(t, want, g.AppendBGR(nil))
	assert.Equal(t, append([]byte{0xAA}, want...), g.AppendBGR([]byte{0xAA}))
}

func TestGrid_BytesBGR_EarlyStop(t *testing.T) {
	g, err := New(10, 10)
	require.NoError(t, err)

	n := 0
	for range g.BytesBGR() {
		n++
		if n == 4 {
			break
		}
	}
	assert.Equal(t, 4, n)
}

func TestGrid_Image(t *testing.T) {
	g, err := New(3, 2)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 3, 2), g.Bounds())
	assert.True(t, g.Opaque())

	g.Set(2, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	c, err := g.Pixel(1, 2)
	require.NoError(t, err)
	assert.Equal(t, Color{R: 10, G: 20, B: 30}, c)
	assert.Equal(t, c, g.At(2, 1))

	assert.Equal(t, color.RGBA{}, g.At(3, 0))
	g.Set(-1, 0, color.Black)

	r, gg, b, a := White.RGBA()
	assert.Equal(t, [4]uint32{0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF}, [4]uint32{r, gg, b, a})
}

func TestFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.SetRGBA(5, 5, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	src.SetRGBA(6, 5, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	g, err := FromImage(src)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Width())
	assert.Equal(t, 1, g.Height())

	c, err := g.Pixel(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Color{R: 200, G: 100, B: 50}, c)
	c, err = g.Pixel(0, 1)
	require.NoError(t, err)
	assert.Equal(t, Color{R: 1, G: 2, B: 3}, c)
}

func TestFromImage_Grid(t *testing.T) {
	g, err := New(1, 1)
	require.NoError(t, err)

	dup, err := FromImage(g)
	require.NoError(t, err)
	require.NoError(t, dup.SetPixel(0, 0, Black))

	c, err := g.Pixel(0, 0)
	require.NoError(t, err)
	assert.Equal(t, White, c)
}

func TestFromImage_Empty(t *testing.T) {
	_, err := FromImage(image.NewRGBA(image.Rectangle{}))
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "#0a14ff", Color{R: 10, G: 20, B: 255}.String())
}
