package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"ppmgrid/canvas"
	"ppmgrid/convert"
	"ppmgrid/inspect"
	"ppmgrid/parallel"

	"github.com/alecthomas/kong"
)

type cli struct {
	Workers  int    `help:"Number of files processed at once, 0 for one per CPU" default:"0" env:"PPMGRID_WORKERS"`
	LogLevel string `help:"Minimum level of logged messages" enum:"debug,info,warn,error" default:"info" env:"PPMGRID_LOG_LEVEL"`
	LogJSON  bool   `help:"Log as JSON lines instead of text" name:"log-json"`

	Convert convert.CLICmd `cmd:"" help:"Convert a folder of images to or from PPM"`
	Canvas  canvas.CLICmd  `cmd:"" help:"Create a PPM image filled with one color"`
	Inspect inspect.CLICmd `cmd:"" help:"Show format, dimensions and size of images"`
}

func newLogger(w io.Writer, level string, json bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func main() {
	var conf cli
	kctx := kong.Parse(&conf,
		kong.Name("ppmgrid"),
		kong.Description("Plain PPM (P3) image tools"),
		kong.UsageOnError(),
	)

	logger, err := newLogger(os.Stderr, conf.LogLevel, conf.LogJSON)
	kctx.FatalIfErrorf(err)
	slog.SetDefault(logger)

	pool := parallel.Start(conf.Workers)
	kctx.FatalIfErrorf(kctx.Run(pool))
}
