package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// settings are the options shared by every command.
type settings struct {
	LogLevel string `mapstructure:"log_level"`
	Workers  int    `mapstructure:"workers"`
}

// flagKeys maps flag names to config keys where the two differ by more
// than dashes and underscores.
var flagKeys = map[string]string{
	"root":       "roots",
	"hue-from":   "color.from",
	"hue-to":     "color.to",
	"saturation": "color.saturation",
}

// loadConfig builds the configuration for one command invocation. Values
// are layered as defaults < config file < FRACTAL_* environment < flags.
func loadConfig(path string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("workers", 0)

	v.SetEnvPrefix("FRACTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}
	return v, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Name == "config" || f.Name == "help" {
			return
		}
		key, ok := flagKeys[f.Name]
		if !ok {
			key = strings.ReplaceAll(f.Name, "-", "_")
		}
		err = v.BindPFlag(key, f)
	})
	return err
}

func loadSettings(v *viper.Viper) (settings, error) {
	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}

// loadJob decodes a render job of the given kind, with defaultJob filling
// anything not set by the config file, environment or flags.
func loadJob(v *viper.Viper, kind string) (Job, error) {
	d := defaultJob(kind)
	v.SetDefault("output", d.Output)
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("region", d.Region)
	v.SetDefault("max_iters", d.MaxIters)
	v.SetDefault("horizon", d.Horizon)
	v.SetDefault("shades", d.Shades)
	v.SetDefault("roots_of_unity", d.RootsOfUnity)
	v.SetDefault("color.from", d.Color.From)
	v.SetDefault("color.to", d.Color.To)
	v.SetDefault("color.saturation", d.Color.Saturation)

	var j Job
	if err := v.Unmarshal(&j); err != nil {
		return Job{}, fmt.Errorf("decode %s options: %w", kind, err)
	}
	j.Kind = kind
	return j, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}
