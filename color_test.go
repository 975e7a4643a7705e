package fractal

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestHueInDegs(t *testing.T) {
	tests := []struct {
		name     string
		cs       ColorSettings
		value    float64
		wantDegs float64
	}{
		{"start", DefaultColorSettings(), 0, 0},
		{"middle", DefaultColorSettings(), 0.5, 150},
		{"end", DefaultColorSettings(), 1, 300},
		{"backwards sweep", NewColorSettings(300, 0, 1), 0.25, 225},
		{"wraps past 360", NewColorSettings(300, 420, 1), 1, 60},
		{"negative wraps", NewColorSettings(-90, 0, 1), 0, 270},
		{"full turn", NewColorSettings(0, 360, 1), 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cs.HueInDegs(tt.value)
			if math.Abs(got-tt.wantDegs) > 1e-9 {
				t.Errorf("HueInDegs(%v) = %v, want %v", tt.value, got, tt.wantDegs)
			}
			if got < 0 || got >= 360 {
				t.Errorf("HueInDegs(%v) = %v, outside [0, 360)", tt.value, got)
			}
		})
	}
}

func TestColorFrom(t *testing.T) {
	tests := []struct {
		name  string
		cs    ColorSettings
		value float64
		want  RGB8
	}{
		{"red", DefaultColorSettings(), 0, RGB8{255, 0, 0}},
		{"green", DefaultColorSettings(), 0.4, RGB8{0, 255, 0}},
		{"magenta", DefaultColorSettings(), 1, RGB8{255, 0, 255}},
		{"half saturation", NewColorSettings(0, 300, 0.5), 0, RGB8{255, 128, 128}},
		{"no saturation is white", NewColorSettings(0, 300, 0), 0.7, RGB8{255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cs.ColorFrom(tt.value); got != tt.want {
				t.Errorf("ColorFrom(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestColorSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		sat     float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"half", 0.5, false},
		{"one", 1, false},
		{"negative", -0.1, true},
		{"above one", 1.01, true},
		{"NaN", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewColorSettings(0, 300, tt.sat).Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Validate() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestRGB8_RGBA(t *testing.T) {
	got := RGB8{R: 10, G: 20, B: 30}.RGBA()
	want := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	if got != want {
		t.Errorf("RGBA() = %v, want %v", got, want)
	}
}
