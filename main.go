package main

import (
	"log/slog"
	"os"

	"ripplegen/config"
	"ripplegen/inspect"
	"ripplegen/parallel"
	"ripplegen/render"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Config  kong.ConfigFlag `help:"YAML file with flag defaults" placeholder:"FILE"`
	Workers int             `help:"Number of sampling workers, 0 for one per CPU" default:"0"`
	Verbose bool            `short:"v" help:"Log debug messages"`

	Render   render.CLICmd  `cmd:"" default:"withargs" help:"Render the ripple image (default command)"`
	Inspect  inspect.CLICmd `cmd:"" help:"Decode images and log per-channel statistics"`
	Defaults config.CLICmd  `cmd:"" name:"config" help:"Print the default configuration as YAML"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("ripplegen"),
		kong.Description("Render three interfering radial ripples, one per colour channel, as a plain PPM image."),
		kong.UsageOnError(),
		kong.Configuration(config.Loader),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	pool := parallel.Start(cli.Workers)
	err := kctx.Run(pool)
	pool.Wait(true)
	if err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
