package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves into an empty directory so a stray imgsqueeze.yaml in the
// package directory can't leak into the test.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.IntP("quality", "q", 0, "")
	fs.StringP("format", "f", "", "")
	fs.Int("max-width", 0, "")
	fs.String("log-level", "", "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "balanced", cfg.Profile)
	assert.Equal(t, 0, cfg.Quality)
	assert.Equal(t, "", cfg.Format)
	assert.Equal(t, "#000000", cfg.Background)
	assert.Equal(t, 16384, cfg.Limits.MaxWidth)
	assert.Equal(t, 16384, cfg.Limits.MaxHeight)
	assert.Equal(t, int64(100_000_000), cfg.Limits.MaxPixels)
	assert.Equal(t, int64(50<<20), cfg.Limits.MaxBytes)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_FileEnvFlags(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
profile: high
quality: 70
background: "#ffffff"
limits:
  max_width: 4000
  max_bytes: 1000
log:
  level: debug
`), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "high", cfg.Profile)
	assert.Equal(t, 70, cfg.Quality)
	assert.Equal(t, 4000, cfg.Limits.MaxWidth)
	assert.Equal(t, 16384, cfg.Limits.MaxHeight)
	assert.Equal(t, int64(1000), cfg.Limits.MaxBytes)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Environment beats the file.
	t.Setenv("IMGSQUEEZE_QUALITY", "40")
	t.Setenv("IMGSQUEEZE_LIMITS_MAX_WIDTH", "2000")
	cfg, err = Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Quality)
	assert.Equal(t, 2000, cfg.Limits.MaxWidth)

	// Flags the user set beat the environment; unset flags don't.
	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"-q", "25", "--format", "webp"}))
	cfg, err = Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Quality)
	assert.Equal(t, "webp", cfg.Format)
	assert.Equal(t, 2000, cfg.Limits.MaxWidth)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_LocalFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "imgsqueeze.yaml"), []byte("profile: small\n"), 0o644))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "small", cfg.Profile)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := chdirTemp(t)
	_, err := Load(filepath.Join(dir, "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	chdirTemp(t)

	tests := []struct {
		env, value string
	}{
		{"IMGSQUEEZE_QUALITY", "101"},
		{"IMGSQUEEZE_QUALITY", "-1"},
		{"IMGSQUEEZE_FORMAT", "gif"},
		{"IMGSQUEEZE_BACKGROUND", "black"},
		{"IMGSQUEEZE_LOG_LEVEL", "chatty"},
		{"IMGSQUEEZE_LIMITS_MAX_BYTES", "-5"},
	}
	for _, tt := range tests {
		t.Run(tt.env+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			_, err := Load("", nil)
			assert.Error(t, err)
		})
	}
}

func TestSessionOptions(t *testing.T) {
	cfg := &Config{Background: "#ff0000", Limits: LimitsConfig{MaxWidth: 10, MaxBytes: 99}}

	opts, err := cfg.SessionOptions("webp")
	require.NoError(t, err)
	assert.Equal(t, "webp", opts.Encode.Format)
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, opts.Encode.Background)
	assert.Equal(t, 10, opts.Limits.MaxWidth)
	assert.Equal(t, int64(99), opts.Limits.MaxBytes)

	cfg.Background = "nope"
	_, err = cfg.SessionOptions("jpeg")
	assert.Error(t, err)
}

func TestLoad_BackgroundWithAlpha(t *testing.T) {
	chdirTemp(t)

	for _, value := range []string{"#ff000080", "#f008"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("IMGSQUEEZE_BACKGROUND", value)

			cfg, err := Load("", nil)
			require.NoError(t, err)

			opts, err := cfg.SessionOptions("jpeg")
			require.NoError(t, err)
			assert.Equal(t, color.NRGBA{255, 0, 0, 255}, opts.Encode.Background)
		})
	}
}
