package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/AnyUserName/imgsqueeze/internal/encoder"
	"github.com/AnyUserName/imgsqueeze/internal/pipeline"
	"github.com/AnyUserName/imgsqueeze/internal/report"
	"github.com/spf13/cobra"
)

var (
	sweepQualities []int
	sweepReport    string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep <image>",
	Short: "Encode one image at several qualities and compare the sizes",
	Long: `Decodes the image once and encodes it at every requested quality in
parallel. Prints the size and reduction for each quality and flags
neighbouring qualities where the lower one came out larger.`,
	Args: cobra.ExactArgs(1),
	RunE: runSweep,
}

func init() {
	f := sweepCmd.Flags()
	addEncodeFlags(sweepCmd)
	f.IntSliceVar(&sweepQualities, "qualities", qualityInts(pipeline.DefaultQualities), "qualities to sample")
	f.IntP("workers", "w", 0, "parallel encoders (0 = NumCPU)")
	f.StringVar(&sweepReport, "report", "", "write a JSON report including the sweep to this path")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(_ *cobra.Command, args []string) error {
	start := time.Now()

	s, prof, err := loadSession(args[0])
	if err != nil {
		return err
	}
	buf, err := s.Buffer()
	if err != nil {
		return describe(err)
	}
	src, _ := s.Source()

	qualities := make([]encoder.Quality, len(sweepQualities))
	for i, q := range sweepQualities {
		qualities[i] = encoder.Quality(q)
	}

	opts, err := cfg.SessionOptions(prof.Format)
	if err != nil {
		return err
	}
	p := pipeline.New(pipeline.Config{
		Workers: cfg.Workers,
		Options: opts.Encode,
		Logger:  logger,
	})
	points, err := p.Sweep(buf, src.Size(), qualities)
	if err != nil {
		return describe(err)
	}
	trend := pipeline.Trend(points)

	if sweepReport != "" {
		c, err := s.Compress(encoder.Quality(prof.Quality))
		if err != nil {
			return describe(err)
		}
		r := report.FromCompression(c, prof.Name, "")
		r.AddSweep(points)
		if err := report.WriteJSON(r, sweepReport); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	fmt.Println()
	fmt.Printf("  Source:  %s (%s, %dx%d, %s)\n",
		displayName(src.Name()), buf.Format(), buf.Width, buf.Height, formatBytes(src.Size()))
	fmt.Printf("  Format:  %s\n\n", formatName(opts.Encode.Format))
	fmt.Printf("  %7s  %10s  %9s  %s\n", "QUALITY", "SIZE", "REDUCTION", "DIGEST")
	fmt.Printf("  %s\n", strings.Repeat("─", 48))
	for _, pt := range points {
		if pt.Err != nil {
			fmt.Printf("  %7d  error: %v\n", pt.Quality, pt.Err)
			continue
		}
		fmt.Printf("  %7d  %10s  %9s  %s\n", pt.Quality, formatBytes(pt.Size), pt.Outcome, pt.Digest)
	}
	fmt.Println()

	switch {
	case trend.Monotonic:
		fmt.Println("  Size grows with quality at every step.")
	default:
		for _, inv := range trend.Inversions {
			fmt.Printf("  Note: q=%d (%s) is larger than q=%d (%s)\n",
				inv.Lower, formatBytes(inv.LowerSize), inv.Higher, formatBytes(inv.HigherSize))
		}
	}
	if !trend.Overall && len(points) > 1 {
		fmt.Println("  Warning: the lowest quality is not smaller than the highest.")
	}
	fmt.Printf("  Time:    %s\n\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func qualityInts(qs []encoder.Quality) []int {
	out := make([]int, len(qs))
	for i, q := range qs {
		out[i] = int(q)
	}
	return out
}

func formatName(f string) string {
	if f == "" {
		return encoder.DefaultFormat
	}
	return f
}
