// Command fractal renders Mandelbrot and Newton fractals to image files and
// previews them in the terminal.
//
// Usage:
//
//	fractal mandelbrot --region seahorse-valley --colored -o seahorse.png
//	fractal newton --roots-of-unity 5 --width 1920 --height 1080 -o newton.tiff
//	fractal batch jobs.yaml
//	fractal view --kind newton
//	fractal regions
//
// Every option can also be set in a YAML file passed with --config or through
// FRACTAL_* environment variables (FRACTAL_MAX_ITERS, FRACTAL_COLOR_FROM, ...).
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/fractal"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds the state shared by all commands of one invocation.
type app struct {
	v       *viper.Viper
	log     *slog.Logger
	workers int
	out     io.Writer
}

func (a *app) renderOptions() []fractal.RenderOption {
	return []fractal.RenderOption{fractal.WithWorkers(a.workers)}
}

// setup loads the configuration for cmd and installs the logger.
func (a *app) setup(cmd *cobra.Command, configPath string) error {
	v, err := loadConfig(configPath, cmd.Flags())
	if err != nil {
		return err
	}
	s, err := loadSettings(v)
	if err != nil {
		return err
	}
	level, err := parseLevel(s.LogLevel)
	if err != nil {
		return err
	}

	a.v = v
	a.workers = s.Workers
	a.out = cmd.OutOrStdout()
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	fractal.SetLogger(a.log)

	a.log.Debug("config loaded",
		slog.String("file", v.ConfigFileUsed()),
		slog.String("log_level", level.String()),
		slog.Int("workers", s.Workers))
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configPath string

	root := &cobra.Command{
		Use:          "fractal",
		Short:        "Render escape-time and Newton fractals",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, configPath)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	pf.Int("workers", 0, "render goroutines per image (0 uses GOMAXPROCS)")

	root.AddCommand(
		newMandelbrotCmd(a),
		newNewtonCmd(a),
		newBatchCmd(a),
		newViewCmd(a),
		newRegionsCmd(a),
	)
	return root
}
