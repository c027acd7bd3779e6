package inspect

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"ppmgrid/parallel"
	"ppmgrid/ppm"
	"ppmgrid/raster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_Uniform(t *testing.T) {
	g, err := raster.New(4, 3)
	require.NoError(t, err)
	g.Fill(raster.Color{R: 10, G: 20, B: 30})

	s := Compute(g)
	assert.Equal(t, ChannelStats{Mean: 10}, s.R)
	assert.Equal(t, ChannelStats{Mean: 20}, s.G)
	assert.Equal(t, ChannelStats{Mean: 30}, s.B)
}

func TestCompute(t *testing.T) {
	g, err := ppm.DecodeString("P3 2 1 255 0 100 255 255 100 255")
	require.NoError(t, err)

	s := Compute(g)
	assert.InDelta(t, 127.5, s.R.Mean, 1e-9)
	assert.InDelta(t, 127.5, s.R.StdDev, 1e-9)
	assert.Equal(t, ChannelStats{Mean: 100}, s.G)
	assert.Equal(t, ChannelStats{Mean: 255}, s.B)

	single, err := raster.New(1, 1)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(Compute(single).R.StdDev))
}

func TestChannelStatsString(t *testing.T) {
	assert.Equal(t, "12.50±0.25", ChannelStats{Mean: 12.5, StdDev: 0.25}.String())
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.ppm")
	bad := filepath.Join(dir, "bad.ppm")

	g, err := raster.New(5, 4)
	require.NoError(t, err)
	require.NoError(t, ppm.Save(good, g))
	require.NoError(t, os.WriteFile(bad, []byte("P6 1 1 255"), 0o644))

	cmd := &CLICmd{Stats: true, Files: []string{good}}
	assert.NoError(t, cmd.Run(parallel.Start(2)))

	cmd = &CLICmd{Files: []string{good, bad}}
	assert.EqualError(t, cmd.Run(parallel.Start(2)), "error processing 1 files")
}
