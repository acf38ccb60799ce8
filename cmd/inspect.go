package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/imgsqueeze/internal/hasher"
	"github.com/AnyUserName/imgsqueeze/internal/raster"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <image>",
	Short: "Show format, dimensions and decoded size of an image",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	limits := cfg.RasterLimits()
	info, err := raster.Inspect(data, limits)
	if err != nil {
		return describe(err)
	}
	buf, err := raster.Decode(data, limits)
	if err != nil {
		return describe(err)
	}

	fmt.Println()
	fmt.Printf("  File:        %s\n", filepath.Base(path))
	fmt.Printf("  Format:      %s\n", info.Format)
	fmt.Printf("  Dimensions:  %dx%d\n", info.Width, info.Height)
	fmt.Printf("  File size:   %s\n", formatBytes(info.Bytes))
	fmt.Printf("  Decoded:     %s (RGBA)\n", formatBytes(int64(buf.Len())))
	fmt.Printf("  Alpha:       %t\n", !buf.Opaque())
	fmt.Printf("  Digest:      %s\n", hasher.ContentHash(data, 16))
	fmt.Println()
	return nil
}
