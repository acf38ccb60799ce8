package cmd

import (
	"fmt"
	"runtime"

	"github.com/AnyUserName/imgsqueeze/internal/config"
	"github.com/AnyUserName/imgsqueeze/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version    = "0.1.0"
	verbose    bool
	configPath string

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "imgsqueeze",
	Short: "Re-encode images at an adjustable quality and report the savings",
	Long: `imgsqueeze — decodes a JPEG, PNG, WebP, GIF, BMP or TIFF image, re-encodes
it as lossy JPEG or WebP at the quality you choose, and reports how much
smaller the result is.

Everything runs locally; nothing is uploaded.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) { _ = logger.Sync() },
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&configPath, "config", "", "config file (default ./imgsqueeze.yaml if present)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: console or json")
	pf.String("log-file", "", "also write JSON logs to this file (rotated)")
	pf.Int("max-width", 0, "reject images wider than this (0 disables)")
	pf.Int("max-height", 0, "reject images taller than this (0 disables)")
	pf.Int64("max-pixels", 0, "reject images with more pixels than this (0 disables)")
	pf.Int64("max-bytes", 0, "reject input files larger than this many bytes (0 disables)")

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"imgsqueeze %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// setup loads configuration and builds the logger before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return err
	}
	if verbose {
		c.Log.Level = "debug"
	}
	cfg = c
	logger = logging.New(logging.Config{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		File:   c.Log.File,
	})
	logVerbose("config: profile=%s quality=%d format=%q background=%s", c.Profile, c.Quality, c.Format, c.Background)
	return nil
}

// logVerbose emits a debug line, shown only with --verbose or log level debug.
func logVerbose(format string, args ...any) {
	logger.Sugar().Debugf(format, args...)
}
