package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/fractal"
)

// addViewFlags registers the flags that pick the area and size of a render.
func addViewFlags(fs *pflag.FlagSet, d Job) {
	fs.Int("width", d.Width, "image width in pixels")
	fs.Int("height", d.Height, "image height in pixels")
	fs.String("region", d.Region, "named region, see 'fractal regions'")
	fs.Float64Slice("bounds", nil, "explicit bounds x_min,x_max,y_min,y_max (overrides --region)")
	fs.Int("max-iters", d.MaxIters, "iteration budget per pixel")
	fs.Float64("horizon", d.Horizon, "escape or convergence distance")
	fs.Float64("hue-from", d.Color.From, "hue in degrees for the lowest value")
	fs.Float64("hue-to", d.Color.To, "hue in degrees for the highest value")
	fs.Float64("saturation", d.Color.Saturation, "color saturation in [0, 1]")
}

// addOutputFlags registers the flags that pick where a render is written.
func addOutputFlags(fs *pflag.FlagSet, d Job) {
	fs.StringP("output", "o", d.Output, "output file; the extension picks the format")
	fs.String("format", "", "output format: png, jpeg, bmp, tiff or raw (default from --output)")
}

func addMandelbrotFlags(fs *pflag.FlagSet, d Job) {
	fs.Int("shades", d.Shades, "number of gray bands, 1 to 255")
	fs.Bool("colored", false, "hue-mapped color instead of gray bands")
}

func addNewtonFlags(fs *pflag.FlagSet, d Job) {
	fs.StringSlice("root", nil, "polynomial root such as 1 or -0.5+0.866i (repeatable)")
	fs.Int("roots-of-unity", d.RootsOfUnity, "use the n-th roots of unity when no --root is given")
}

// renderCmd runs a single job of the given kind from flags and config.
func (a *app) renderCmd(cmd *cobra.Command, kind string) error {
	j, err := loadJob(a.v, kind)
	if err != nil {
		return err
	}
	res, err := j.run(cmd.Context(), a.log, a.renderOptions()...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, res.summary())
	return err
}

func newMandelbrotCmd(a *app) *cobra.Command {
	d := defaultJob(kindMandelbrot)
	cmd := &cobra.Command{
		Use:   "mandelbrot",
		Short: "Render the Mandelbrot set",
		Long: `Render the Mandelbrot set as banded grayscale, or in color with --colored.

Points that escape at iteration n get gray (n mod shades)·(255/shades), or the
hue n/max-iters of the way from --hue-from to --hue-to. Interior points are black.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.renderCmd(cmd, kindMandelbrot)
		},
	}
	addViewFlags(cmd.Flags(), d)
	addOutputFlags(cmd.Flags(), d)
	addMandelbrotFlags(cmd.Flags(), d)
	return cmd
}

func newNewtonCmd(a *app) *cobra.Command {
	d := defaultJob(kindNewton)
	cmd := &cobra.Command{
		Use:   "newton",
		Short: "Render the Newton fractal of a polynomial given by its roots",
		Long: `Render the basins of attraction of Newton's method for the monic polynomial
with the given roots. A pixel converging to root k of n gets the hue (k+1)/n of the
way from --hue-from to --hue-to; pixels that do not converge are black.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.renderCmd(cmd, kindNewton)
		},
	}
	addViewFlags(cmd.Flags(), d)
	addOutputFlags(cmd.Flags(), d)
	addNewtonFlags(cmd.Flags(), d)
	return cmd
}

func newRegionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the named regions as YAML",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			enc := yaml.NewEncoder(a.out)
			enc.SetIndent(2)
			if err := enc.Encode(fractal.Regions); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
