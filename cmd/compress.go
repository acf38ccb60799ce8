package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AnyUserName/imgsqueeze/internal/encoder"
	"github.com/AnyUserName/imgsqueeze/internal/imgerr"
	"github.com/AnyUserName/imgsqueeze/internal/profile"
	"github.com/AnyUserName/imgsqueeze/internal/report"
	"github.com/AnyUserName/imgsqueeze/internal/session"
	"github.com/spf13/cobra"
)

var (
	compressOut       string
	compressOutDir    string
	compressReport    string
	compressNoRegress bool
)

var compressCmd = &cobra.Command{
	Use:   "compress <image>",
	Short: "Re-encode one image at the given quality",
	Long: `Decodes the image, re-encodes it as JPEG (or WebP) at the requested
quality and writes the result next to it as <name>_compressed.<ext>.

Transparent areas are composited over --background (black by default)
when the output format has no alpha channel.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompress,
}

func init() {
	f := compressCmd.Flags()
	addEncodeFlags(compressCmd)
	f.StringVarP(&compressOut, "out", "o", "", "output file (default <out-dir>/<name>_compressed.<ext>)")
	f.StringVar(&compressOutDir, "out-dir", "", "output directory (default: next to the input)")
	f.StringVar(&compressReport, "report", "", "write a JSON report to this path")
	f.BoolVar(&compressNoRegress, "no-regress-size", false, "don't write the output if it is not smaller than the input")
	rootCmd.AddCommand(compressCmd)
}

// addEncodeFlags registers the flags shared by commands that encode.
func addEncodeFlags(c *cobra.Command) {
	f := c.Flags()
	f.IntP("quality", "q", 0, "quality 1-100 (0 = profile default)")
	f.StringP("format", "f", "", "output format: jpeg or webp (default: profile format)")
	f.StringP("profile", "p", profile.DefaultName, "encoding profile: balanced, high, small, webp")
	f.String("background", "", "background for transparent pixels, e.g. #ffffff")
}

// loadSession reads path into a new session configured from cfg.
func loadSession(path string) (*session.Session, profile.Profile, error) {
	prof := profile.Get(cfg.Profile).Override(cfg.Quality, cfg.Format)
	if !profile.Known(cfg.Profile) {
		logger.Sugar().Warnf("unknown profile %q, using %s defaults", cfg.Profile, profile.DefaultName)
	}

	opts, err := cfg.SessionOptions(prof.Format)
	if err != nil {
		return nil, prof, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, prof, fmt.Errorf("read input: %w", err)
	}

	s := session.New(opts, logger)
	if _, err := s.Load(filepath.Base(path), data); err != nil {
		return nil, prof, describe(err)
	}
	logVerbose("input:   %s (%s)", path, formatBytes(int64(len(data))))
	logVerbose("profile: %s (quality=%d, format=%s)", prof.Name, prof.Quality, prof.Format)
	return s, prof, nil
}

func runCompress(_ *cobra.Command, args []string) error {
	input := args[0]
	start := time.Now()

	s, prof, err := loadSession(input)
	if err != nil {
		return err
	}

	c, err := s.Compress(encoder.Quality(prof.Quality))
	if err != nil {
		return describe(err)
	}

	outPath := compressOut
	if outPath == "" {
		dir := compressOutDir
		if dir == "" {
			dir = filepath.Dir(input)
		}
		outPath = filepath.Join(dir, c.DownloadName)
	}

	written := true
	if compressNoRegress && !c.Outcome.Smaller() {
		written = false
		logger.Sugar().Warnf("skip: encoded %d >= original %d bytes", c.Result.Size, c.Source.Size())
	} else {
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := os.WriteFile(outPath, c.Result.Data, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	if compressReport != "" {
		rel := ""
		if written {
			rel = relativeTo(filepath.Dir(compressReport), outPath)
		}
		r := report.FromCompression(c, prof.Name, rel)
		if err := report.WriteJSON(r, compressReport); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	printCompressReport(c, outPath, written, time.Since(start))
	return nil
}

func printCompressReport(c *session.Compression, outPath string, written bool, elapsed time.Duration) {
	fmt.Println()
	fmt.Printf("  Source:      %s (%s, %dx%d)\n", displayName(c.Source.Name()), c.SourceFormat, c.Width, c.Height)
	fmt.Printf("  Quality:     %d (%s)\n", c.Result.Quality, c.Result.Format)
	fmt.Printf("  Original:    %s\n", formatBytes(c.Source.Size()))
	fmt.Printf("  Compressed:  %s\n", formatBytes(c.Result.Size))
	fmt.Printf("  Reduction:   %s\n", c.Outcome)
	if c.HasAlpha && c.Result.Format == "jpeg" {
		fmt.Printf("  Alpha:       flattened onto %s\n", cfg.Background)
	}
	fmt.Printf("  Digest:      %s\n", c.Result.Digest)
	if written {
		fmt.Printf("  Output:      %s\n", outPath)
	} else {
		fmt.Printf("  Output:      not written (not smaller than the original)\n")
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	fmt.Println()
}

// describe prefixes core errors with the message a user should see.
func describe(err error) error {
	return fmt.Errorf("%s: %w", imgerr.UserMessage(err), err)
}

func displayName(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}

func relativeTo(base, target string) string {
	absBase, err1 := filepath.Abs(base)
	absTarget, err2 := filepath.Abs(target)
	if err1 != nil || err2 != nil {
		return filepath.ToSlash(target)
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil {
		return filepath.ToSlash(absTarget)
	}
	return filepath.ToSlash(rel)
}
