package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AnyUserName/imgsqueeze/internal/encoder"
	"github.com/AnyUserName/imgsqueeze/internal/raster"
	"github.com/AnyUserName/imgsqueeze/internal/session"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. IMGSQUEEZE_QUALITY.
const EnvPrefix = "IMGSQUEEZE"

// Config is the full runtime configuration.
type Config struct {
	Profile    string       `mapstructure:"profile" default:"balanced"`
	Quality    int          `mapstructure:"quality" validate:"min=0,max=100"` // 0 = profile default
	Format     string       `mapstructure:"format" validate:"omitempty,oneof=jpeg jpg webp"`
	Background string       `mapstructure:"background" default:"#000000" validate:"hexcolor"`
	Workers    int          `mapstructure:"workers" validate:"min=0"`
	Limits     LimitsConfig `mapstructure:"limits"`
	Log        LogConfig    `mapstructure:"log"`
}

// LimitsConfig bounds decode memory. Zero disables a guard.
type LimitsConfig struct {
	MaxWidth  int   `mapstructure:"max_width" default:"16384" validate:"min=0"`
	MaxHeight int   `mapstructure:"max_height" default:"16384" validate:"min=0"`
	MaxPixels int64 `mapstructure:"max_pixels" default:"100000000" validate:"min=0"`
	MaxBytes  int64 `mapstructure:"max_bytes" default:"52428800" validate:"min=0"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level" default:"info" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" default:"console" validate:"oneof=console json"`
	File   string `mapstructure:"file"`
}

var validate = validator.New()

// Load builds the configuration from struct defaults, an optional YAML
// file, IMGSQUEEZE_* environment variables and flags, in increasing
// precedence. path may be empty; ./imgsqueeze.yaml is then read if it
// exists. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}

	v := viper.New()
	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("imgsqueeze")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Validate checks field ranges and enums.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// RasterLimits converts the limits section for the decoder.
func (c *Config) RasterLimits() raster.Limits {
	return raster.Limits{
		MaxWidth:  c.Limits.MaxWidth,
		MaxHeight: c.Limits.MaxHeight,
		MaxPixels: c.Limits.MaxPixels,
		MaxBytes:  c.Limits.MaxBytes,
	}
}

// SessionOptions returns session options for the given output format.
func (c *Config) SessionOptions(format string) (session.Options, error) {
	bg, err := encoder.ParseBackground(c.Background)
	if err != nil {
		return session.Options{}, err
	}
	return session.Options{
		Limits: c.RasterLimits(),
		Encode: encoder.Options{Format: format, Background: bg},
	}, nil
}

// setDefaults registers every key with viper so environment variables are
// picked up by Unmarshal even when no file mentions them.
func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("profile", cfg.Profile)
	v.SetDefault("quality", cfg.Quality)
	v.SetDefault("format", cfg.Format)
	v.SetDefault("background", cfg.Background)
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("limits.max_width", cfg.Limits.MaxWidth)
	v.SetDefault("limits.max_height", cfg.Limits.MaxHeight)
	v.SetDefault("limits.max_pixels", cfg.Limits.MaxPixels)
	v.SetDefault("limits.max_bytes", cfg.Limits.MaxBytes)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"profile":    "profile",
	"quality":    "quality",
	"format":     "format",
	"background": "background",
	"workers":    "workers",
	"max-width":  "limits.max_width",
	"max-height": "limits.max_height",
	"max-pixels": "limits.max_pixels",
	"max-bytes":  "limits.max_bytes",
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-file":   "log.file",
}

// bindFlags binds the flags present in fs. Only flags the user set take
// precedence over file and environment values.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
