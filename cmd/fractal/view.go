package main

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/gogpu/fractal"
)

// panStep is the fraction of the view moved by one arrow key press.
const panStep = 0.1

// upperHalf draws the top pixel of a cell in the foreground color and the
// bottom pixel in the background color.
const upperHalf = '▀'

// viewer is an interactive terminal preview. Every terminal cell shows two
// vertically stacked pixels, so a W×H terminal renders a W×2H grid.
type viewer struct {
	screen tcell.Screen
	log    *slog.Logger
	opts   []fractal.RenderOption

	jobs [2]Job // mandelbrot, newton
	cur  int
	home [2]fractal.Viewport
	vp   fractal.Viewport
}

func newViewer(s tcell.Screen, j Job, log *slog.Logger, opts ...fractal.RenderOption) (*viewer, error) {
	if err := j.validateRender(); err != nil {
		return nil, err
	}

	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	v := &viewer{screen: s, log: log, opts: opts}
	v.jobs[0] = defaultJob(kindMandelbrot).withDefaults()
	v.jobs[0].Colored = true
	v.jobs[1] = defaultJob(kindNewton).withDefaults()
	if j.Kind == kindNewton {
		v.cur = 1
	}
	v.jobs[v.cur] = j

	for i, job := range v.jobs {
		vp, err := job.viewport()
		if err != nil {
			return nil, err
		}
		v.home[i] = vp
	}
	v.vp = v.home[v.cur]
	return v, nil
}

// validateRender is validate without the output checks, which do not
// apply to a preview.
func (j Job) validateRender() error {
	j.Output, j.Format = "preview.png", ""
	return j.validate()
}

// fit resizes the current viewport to the terminal, keeping its bounds.
func (v *viewer) fit() {
	w, h := v.screen.Size()
	v.vp = v.vp.Resize(w, 2*h)
}

func (v *viewer) draw() error {
	v.fit()
	if v.vp.Width <= 0 || v.vp.Height <= 0 {
		return nil
	}

	grid, err := v.jobs[v.cur].renderAt(v.vp, v.opts...)
	if err != nil {
		return err
	}

	v.screen.Clear()
	w, h := v.screen.Size()
	for y := range h {
		for x := range w {
			style := tcell.StyleDefault.
				Foreground(cellColor(grid, 2*y, x)).
				Background(cellColor(grid, 2*y+1, x))
			v.screen.SetContent(x, y, upperHalf, nil, style)
		}
	}
	v.drawStatus(w, h)
	v.screen.Show()
	return nil
}

func (v *viewer) drawStatus(w, h int) {
	status := fmt.Sprintf(" %s  x [%.6g, %.6g]  y [%.6g, %.6g]  arrows pan, +/- zoom, r reset, k kind, q quit ",
		v.jobs[v.cur].Kind, v.vp.XMin, v.vp.XMax, v.vp.YMin, v.vp.YMax)
	style := tcell.StyleDefault.Reverse(true)
	for x, r := range []rune(status) {
		if x >= w {
			break
		}
		v.screen.SetContent(x, h-1, r, nil, style)
	}
}

// cellColor returns the terminal color of the grid cell at (row, col).
func cellColor(grid *fractal.Grid, row, col int) tcell.Color {
	px := grid.At(row, col)
	switch len(px) {
	case 1:
		g := int32(px[0])
		return tcell.NewRGBColor(g, g, g)
	case 3:
		return tcell.NewRGBColor(int32(px[0]), int32(px[1]), int32(px[2]))
	default:
		return tcell.ColorBlack
	}
}

// zoomRect is the centered half of the view.
func (v *viewer) zoomRect() image.Rectangle {
	w, h := v.vp.Width, v.vp.Height
	return image.Rect(w/4, h/4, w/4+w/2, h/4+h/2)
}

// handleKey applies a key press to the view. It reports whether the viewer
// should quit.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.vp = v.vp.Pan(0, -panStep)
	case tcell.KeyDown:
		v.vp = v.vp.Pan(0, panStep)
	case tcell.KeyLeft:
		v.vp = v.vp.Pan(-panStep, 0)
	case tcell.KeyRight:
		v.vp = v.vp.Pan(panStep, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case '+', '=':
			v.fit()
			v.vp = v.vp.Zoom(v.zoomRect())
		case '-', '_':
			v.fit()
			v.vp = v.vp.Unzoom(v.zoomRect())
		case 'r', 'R':
			v.vp = v.home[v.cur]
		case 'k', 'K':
			v.cur = 1 - v.cur
			v.vp = v.home[v.cur]
		}
	}
	v.log.Debug("view",
		slog.String("kind", v.jobs[v.cur].Kind),
		slog.Float64("x_min", v.vp.XMin),
		slog.Float64("x_max", v.vp.XMax),
		slog.Float64("y_min", v.vp.YMin),
		slog.Float64("y_max", v.vp.YMax))
	return false
}

// run draws the view and processes events until the user quits or the
// screen is finalized.
func (v *viewer) run() error {
	if err := v.draw(); err != nil {
		return err
	}
	for {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			v.screen.Sync()
			if err := v.draw(); err != nil {
				return err
			}
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return nil
			}
			if err := v.draw(); err != nil {
				return err
			}
		}
	}
}

func newViewCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Explore a fractal interactively in the terminal",
		Long: `Show a true color preview in the terminal, two pixels per character cell.

Keys: arrows pan, + and - zoom around the center, r resets the view,
k switches between Mandelbrot and Newton, q or Esc quits.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			kind := a.v.GetString("kind")
			j, err := loadJob(a.v, kind)
			if err != nil {
				return err
			}
			if kind == kindMandelbrot && !a.v.IsSet("colored") {
				j.Colored = true
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("view: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("view: %w", err)
			}
			defer screen.Fini()

			v, err := newViewer(screen, j, a.log, a.renderOptions()...)
			if err != nil {
				return err
			}
			return v.run()
		},
	}

	d := defaultJob(kindMandelbrot)
	fs := cmd.Flags()
	fs.String("kind", kindMandelbrot, "fractal to show first: mandelbrot or newton")
	addViewFlags(fs, d)
	addMandelbrotFlags(fs, d)
	addNewtonFlags(fs, defaultJob(kindNewton))
	return cmd
}
