package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/encode"
)

// Fractal kinds accepted in job descriptions.
const (
	kindMandelbrot = "mandelbrot"
	kindNewton     = "newton"
)

var errUnknownRegion = errors.New("unknown region")

// ColorConfig is the hue sweep used for colored output.
type ColorConfig struct {
	From       float64 `yaml:"from" mapstructure:"from"`
	To         float64 `yaml:"to" mapstructure:"to"`
	Saturation float64 `yaml:"saturation" mapstructure:"saturation"`
}

// Job describes one render and where to write it.
type Job struct {
	Name   string `yaml:"name" mapstructure:"name"`
	Kind   string `yaml:"kind" mapstructure:"kind"`
	Output string `yaml:"output" mapstructure:"output"`
	Format string `yaml:"format" mapstructure:"format"`

	Width  int       `yaml:"width" mapstructure:"width"`
	Height int       `yaml:"height" mapstructure:"height"`
	Region string    `yaml:"region" mapstructure:"region"`
	Bounds []float64 `yaml:"bounds" mapstructure:"bounds"` // x_min, x_max, y_min, y_max

	MaxIters int     `yaml:"max_iters" mapstructure:"max_iters"`
	Horizon  float64 `yaml:"horizon" mapstructure:"horizon"`

	// Mandelbrot only.
	Shades  int  `yaml:"shades" mapstructure:"shades"`
	Colored bool `yaml:"colored" mapstructure:"colored"`

	// Newton only.
	Roots        []string `yaml:"roots" mapstructure:"roots"`
	RootsOfUnity int      `yaml:"roots_of_unity" mapstructure:"roots_of_unity"`

	Color ColorConfig `yaml:"color" mapstructure:"color"`
}

// defaultJob returns the settings used for every field a job leaves unset.
// Newton jobs get their own iteration budget, horizon and roots.
func defaultJob(kind string) Job {
	j := Job{
		Kind:     kind,
		Width:    800,
		Height:   800,
		Region:   "default",
		MaxIters: 256,
		Horizon:  2,
		Shades:   16,
		Color: ColorConfig{
			From:       0,
			To:         300,
			Saturation: 1,
		},
	}
	if kind == kindNewton {
		j.MaxIters = 64
		j.Horizon = 0.01
		j.RootsOfUnity = 3
	}
	j.Output = kind + ".png"
	return j
}

// UnmarshalYAML decodes a job on top of defaultJob for its kind. Keys the
// document leaves out keep their defaults, including single keys of the
// color block, and explicit zeros are kept as written.
func (j *Job) UnmarshalYAML(unmarshal func(any) error) error {
	var keys map[string]any
	if err := unmarshal(&keys); err != nil {
		return err
	}
	kind, _ := keys["kind"].(string)
	if kind == "" {
		kind = kindMandelbrot
	}

	// jobFields has no methods, so decoding into it does not recurse.
	type jobFields Job
	f := jobFields(defaultJob(kind))
	f.Output = ""
	if err := unmarshal(&f); err != nil {
		return err
	}

	*j = Job(f)
	if j.Output == "" {
		j.Output = j.defaultOutput()
	}
	return nil
}

// defaultOutput is the output file of a job that names none.
func (j Job) defaultOutput() string {
	if j.Name != "" {
		return j.Name + ".png"
	}
	return j.Kind + ".png"
}

// withDefaults fills the zero fields of a job built in code from
// defaultJob. Zero means unset here; jobs read from YAML are decoded over
// the defaults instead. Booleans and explicit root lists are taken as given.
func (j Job) withDefaults() Job {
	if j.Kind == "" {
		j.Kind = kindMandelbrot
	}
	d := defaultJob(j.Kind)

	if j.Output == "" {
		j.Output = j.defaultOutput()
	}
	if j.Width == 0 {
		j.Width = d.Width
	}
	if j.Height == 0 {
		j.Height = d.Height
	}
	if j.Region == "" && len(j.Bounds) == 0 {
		j.Region = d.Region
	}
	if j.MaxIters == 0 {
		j.MaxIters = d.MaxIters
	}
	if j.Horizon == 0 {
		j.Horizon = d.Horizon
	}
	if j.Shades == 0 {
		j.Shades = d.Shades
	}
	if len(j.Roots) == 0 && j.RootsOfUnity == 0 {
		j.RootsOfUnity = d.RootsOfUnity
	}
	if j.Color == (ColorConfig{}) {
		j.Color = d.Color
	}
	return j
}

// label names the job in logs.
func (j Job) label() string {
	if j.Name != "" {
		return j.Name
	}
	return j.Output
}

func (j Job) viewport() (fractal.Viewport, error) {
	if len(j.Bounds) > 0 {
		if len(j.Bounds) != 4 {
			return fractal.Viewport{}, fmt.Errorf("%w: bounds need 4 values (x_min, x_max, y_min, y_max), got %d",
				fractal.ErrInvalidArgument, len(j.Bounds))
		}
		b := j.Bounds
		return fractal.NewViewport(b[0], b[1], b[2], b[3], j.Width, j.Height), nil
	}

	name := j.Region
	if name == "" {
		name = "default"
	}
	b, ok := fractal.Regions[name]
	if !ok {
		return fractal.Viewport{}, fmt.Errorf("%w %q (known: %s)", errUnknownRegion, name,
			strings.Join(fractal.RegionNames(), ", "))
	}
	return b.Viewport(j.Width, j.Height), nil
}

func (j Job) colorSettings() fractal.ColorSettings {
	return fractal.NewColorSettings(j.Color.From, j.Color.To, j.Color.Saturation)
}

// roots returns the Newton roots: the explicit list if one is given,
// otherwise the requested roots of unity.
func (j Job) roots() ([]complex128, error) {
	if len(j.Roots) > 0 {
		roots := make([]complex128, 0, len(j.Roots))
		for _, s := range j.Roots {
			z, err := parseRoot(s)
			if err != nil {
				return nil, err
			}
			roots = append(roots, z)
		}
		return roots, nil
	}
	if j.RootsOfUnity < 1 {
		return nil, fmt.Errorf("%w: roots of unity count %d must be at least 1", fractal.ErrInvalidArgument, j.RootsOfUnity)
	}
	return fractal.RootsOfUnity(j.RootsOfUnity), nil
}

// parseRoot parses a complex number such as "1", "-0.5+0.866i" or "2i".
func parseRoot(s string) (complex128, error) {
	z, err := strconv.ParseComplex(strings.ReplaceAll(s, " ", ""), 128)
	if err != nil {
		return 0, fmt.Errorf("%w: root %q: %w", fractal.ErrInvalidArgument, s, err)
	}
	return z, nil
}

// outputFormat returns the explicit format if set, otherwise the one
// implied by the output file name.
func (j Job) outputFormat() (encode.Format, error) {
	if j.Format != "" {
		return encode.ParseFormat(j.Format)
	}
	return encode.FormatFromPath(j.Output)
}

// validate checks everything that can be checked without rendering.
func (j Job) validate() error {
	switch j.Kind {
	case kindMandelbrot, kindNewton:
	default:
		return fmt.Errorf("%w: kind %q (want %s or %s)", fractal.ErrInvalidArgument, j.Kind, kindMandelbrot, kindNewton)
	}
	if j.Shades < 1 || j.Shades > 255 {
		return fmt.Errorf("%w: shades %d outside [1, 255]", fractal.ErrInvalidArgument, j.Shades)
	}
	if _, err := j.viewport(); err != nil {
		return err
	}
	if err := j.colorSettings().Validate(); err != nil {
		return err
	}
	if j.Kind == kindNewton {
		if _, err := j.roots(); err != nil {
			return err
		}
	}
	if _, err := j.outputFormat(); err != nil {
		return err
	}
	return nil
}

// render produces the grid described by j.
func (j Job) render(opts ...fractal.RenderOption) (*fractal.Grid, error) {
	if err := j.validate(); err != nil {
		return nil, err
	}
	vp, err := j.viewport()
	if err != nil {
		return nil, err
	}
	return j.renderAt(vp, opts...)
}

// renderAt renders j over vp, ignoring the job's own size and bounds.
func (j Job) renderAt(vp fractal.Viewport, opts ...fractal.RenderOption) (*fractal.Grid, error) {
	switch j.Kind {
	case kindNewton:
		roots, err := j.roots()
		if err != nil {
			return nil, err
		}
		return fractal.RenderNewton(vp, roots, j.MaxIters, j.Horizon, j.colorSettings(), opts...)
	default:
		if j.Colored {
			return fractal.RenderMandelbrotColored(vp, j.MaxIters, j.Horizon, j.colorSettings(), opts...)
		}
		return fractal.RenderMandelbrot(vp, j.MaxIters, j.Horizon, uint8(j.Shades), opts...)
	}
}

// Result reports what a job produced and how long each stage took.
type Result struct {
	Job    Job
	Bytes  int
	Render time.Duration
	Encode time.Duration
	Write  time.Duration
}

// Total is the wall time of all stages.
func (r Result) Total() time.Duration {
	return r.Render + r.Encode + r.Write
}

// run renders j, encodes it and writes the output file, timing each stage.
func (j Job) run(ctx context.Context, log *slog.Logger, opts ...fractal.RenderOption) (Result, error) {
	res := Result{Job: j}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	format, err := j.outputFormat()
	if err != nil {
		return res, err
	}

	start := time.Now()
	grid, err := j.render(opts...)
	if err != nil {
		return res, fmt.Errorf("%s: %w", j.label(), err)
	}
	res.Render = time.Since(start)

	start = time.Now()
	var buf bytes.Buffer
	if err := encode.Write(&buf, grid, format); err != nil {
		return res, fmt.Errorf("%s: %w", j.label(), err)
	}
	res.Encode = time.Since(start)
	res.Bytes = buf.Len()

	start = time.Now()
	if err := os.WriteFile(j.Output, buf.Bytes(), 0o644); err != nil {
		return res, fmt.Errorf("%s: write output: %w", j.label(), err)
	}
	res.Write = time.Since(start)

	log.Info("rendered",
		slog.String("job", j.label()),
		slog.String("kind", j.Kind),
		slog.String("output", j.Output),
		slog.String("format", format.String()),
		slog.Duration("render", res.Render),
		slog.Duration("encode", res.Encode),
		slog.Duration("write", res.Write))

	return res, nil
}

var printer = message.NewPrinter(language.English)

// summary is the one-line human readable report for a finished job.
func (r Result) summary() string {
	j := r.Job
	return printer.Sprintf("%s: %d×%d %s, %d pixels, %d bytes in %v",
		j.Output, j.Width, j.Height, j.Kind, j.Width*j.Height, r.Bytes, r.Total().Round(time.Millisecond))
}
