package inspect

import (
	"fmt"

	"ppmgrid/raster"

	"gonum.org/v1/gonum/stat"
)

type ChannelStats struct {
	Mean   float64
	StdDev float64 // population standard deviation
}

func (s ChannelStats) String() string {
	return fmt.Sprintf("%.2f±%.2f", s.Mean, s.StdDev)
}

type Stats struct {
	R ChannelStats
	G ChannelStats
	B ChannelStats
}

// Compute summarizes each channel of g over all of its pixels.
func Compute(g *raster.Grid) Stats {
	n := g.Width() * g.Height()
	r := make([]float64, 0, n)
	gr := make([]float64, 0, n)
	b := make([]float64, 0, n)
	for c := range g.All() {
		r = append(r, float64(c.R))
		gr = append(gr, float64(c.G))
		b = append(b, float64(c.B))
	}

	return Stats{
		R: channel(r),
		G: channel(gr),
		B: channel(b),
	}
}

func channel(x []float64) ChannelStats {
	mean, std := stat.PopMeanStdDev(x, nil)
	return ChannelStats{Mean: mean, StdDev: std}
}
