package main

import (
	"context"
	"errors"
	"image/png"
	"log/slog"
	"math/cmplx"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/encode"
)

var discard = slog.New(slog.DiscardHandler)

func TestJobWithDefaults(t *testing.T) {
	t.Run("empty is mandelbrot", func(t *testing.T) {
		j := Job{}.withDefaults()
		if j.Kind != kindMandelbrot || j.Output != "mandelbrot.png" {
			t.Errorf("kind, output = %q, %q", j.Kind, j.Output)
		}
		if j.Width != 800 || j.Height != 800 || j.MaxIters != 256 || j.Horizon != 2 || j.Shades != 16 {
			t.Errorf("defaults = %+v", j)
		}
		if j.Region != "default" {
			t.Errorf("Region = %q, want default", j.Region)
		}
	})

	t.Run("newton", func(t *testing.T) {
		j := Job{Kind: kindNewton, Name: "cubic"}.withDefaults()
		if j.MaxIters != 64 || j.Horizon != 0.01 || j.RootsOfUnity != 3 {
			t.Errorf("newton defaults = %+v", j)
		}
		if j.Output != "cubic.png" {
			t.Errorf("Output = %q, want cubic.png", j.Output)
		}
	})

	t.Run("explicit values kept", func(t *testing.T) {
		j := Job{Width: 10, Bounds: []float64{0, 1, 0, 1}, Roots: []string{"1"}}.withDefaults()
		if j.Width != 10 || j.Region != "" || j.RootsOfUnity != 0 {
			t.Errorf("withDefaults overwrote explicit values: %+v", j)
		}
	})
}

func TestJobViewport(t *testing.T) {
	tests := []struct {
		name    string
		job     Job
		want    fractal.Viewport
		wantErr error
	}{
		{
			name: "region",
			job:  Job{Region: "seahorse-valley", Width: 4, Height: 3},
			want: fractal.Regions["seahorse-valley"].Viewport(4, 3),
		},
		{
			name: "bounds win over region",
			job:  Job{Region: "seahorse-valley", Bounds: []float64{-1, 1, -0.5, 0.5}, Width: 4, Height: 3},
			want: fractal.NewViewport(-1, 1, -0.5, 0.5, 4, 3),
		},
		{
			name: "empty region is default",
			job:  Job{Width: 2, Height: 2},
			want: fractal.DefaultViewport(2, 2),
		},
		{
			name:    "short bounds",
			job:     Job{Bounds: []float64{1, 2}},
			wantErr: fractal.ErrInvalidArgument,
		},
		{
			name:    "unknown region",
			job:     Job{Region: "atlantis"},
			wantErr: errUnknownRegion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.job.viewport()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("viewport() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("viewport() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("viewport() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseRoot(t *testing.T) {
	tests := []struct {
		in      string
		want    complex128
		wantErr bool
	}{
		{"1", 1, false},
		{"-1", -1, false},
		{"2i", 2i, false},
		{"-0.5+0.866i", complex(-0.5, 0.866), false},
		{"1 - 2i", complex(1, -2), false},
		{"one", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseRoot(tt.in)
			if tt.wantErr {
				if !errors.Is(err, fractal.ErrInvalidArgument) {
					t.Errorf("parseRoot(%q) error = %v, want ErrInvalidArgument", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("parseRoot(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestJobRoots(t *testing.T) {
	roots, err := Job{RootsOfUnity: 4}.roots()
	if err != nil || len(roots) != 4 {
		t.Fatalf("roots() = %v, %v, want 4 roots", roots, err)
	}
	if cmplx.Abs(roots[2]+1) > 1e-12 {
		t.Errorf("roots[2] = %v, want -1", roots[2])
	}

	roots, err = Job{Roots: []string{"1", "2i"}, RootsOfUnity: 7}.roots()
	if err != nil || len(roots) != 2 || roots[1] != 2i {
		t.Errorf("explicit roots() = %v, %v", roots, err)
	}

	if _, err := (Job{}).roots(); !errors.Is(err, fractal.ErrInvalidArgument) {
		t.Errorf("roots() with nothing = %v, want ErrInvalidArgument", err)
	}
}

func TestJobValidate(t *testing.T) {
	tests := []struct {
		name    string
		job     Job
		wantErr error
	}{
		{"ok", Job{}.withDefaults(), nil},
		{"ok newton", Job{Kind: kindNewton}.withDefaults(), nil},
		{"bad kind", Job{Kind: "julia"}.withDefaults(), fractal.ErrInvalidArgument},
		{"too many shades", Job{Shades: 300}.withDefaults(), fractal.ErrInvalidArgument},
		{"bad saturation", Job{Color: ColorConfig{To: 300, Saturation: 2}}.withDefaults(), fractal.ErrInvalidArgument},
		{"bad extension", Job{Output: "out.gif"}.withDefaults(), encode.ErrUnsupportedFormat},
		{"format overrides extension", Job{Output: "out.img", Format: "bmp"}.withDefaults(), nil},
		{"bad root", Job{Kind: kindNewton, Roots: []string{"x"}}.withDefaults(), fractal.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestJobRender(t *testing.T) {
	tests := []struct {
		job    Job
		format fractal.Format
	}{
		{Job{Width: 9, Height: 5}.withDefaults(), fractal.FormatGray8},
		{Job{Width: 9, Height: 5, Colored: true}.withDefaults(), fractal.FormatRGB8},
		{Job{Kind: kindNewton, Width: 9, Height: 5}.withDefaults(), fractal.FormatRGB8},
	}

	for _, tt := range tests {
		grid, err := tt.job.render(fractal.WithWorkers(2))
		if err != nil {
			t.Fatalf("%s render() error = %v", tt.job.Kind, err)
		}
		if grid.Width != 9 || grid.Height != 5 || grid.Format != tt.format {
			t.Errorf("%s render() = %dx%d %v, want 9x5 %v", tt.job.Kind, grid.Width, grid.Height, grid.Format, tt.format)
		}
	}
}

func TestJobRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "m.png")
	j := Job{Width: 32, Height: 24, Output: out, Colored: true}.withDefaults()

	res, err := j.run(context.Background(), discard)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Errorf("PNG size = %v, want 32x24", b)
	}

	info, _ := os.Stat(out)
	if res.Bytes != int(info.Size()) {
		t.Errorf("Result.Bytes = %d, file has %d", res.Bytes, info.Size())
	}
	if s := res.summary(); !strings.Contains(s, out) || !strings.Contains(s, "768 pixels") {
		t.Errorf("summary() = %q", s)
	}
}

func TestJobRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := filepath.Join(t.TempDir(), "never.png")
	if _, err := (Job{Output: out}.withDefaults()).run(ctx, discard); !errors.Is(err, context.Canceled) {
		t.Errorf("run() error = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("canceled job wrote its output")
	}
}

func TestSummaryGroupsDigits(t *testing.T) {
	r := Result{Job: Job{Output: "big.png", Kind: kindMandelbrot, Width: 2000, Height: 1000}, Bytes: 1234567}
	s := r.summary()
	for _, want := range []string{"2,000×1,000", "2,000,000 pixels", "1,234,567 bytes"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary() = %q, missing %q", s, want)
		}
	}
}
