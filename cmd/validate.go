package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/AnyUserName/imgsqueeze/internal/report"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <report_path>",
	Short: "Validate a compression report and check the artifact it names",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	reportPath := args[0]

	r, err := report.ReadJSON(reportPath)
	if err != nil {
		return err
	}

	errs := report.Validate(r, filepath.Dir(reportPath))
	if len(errs) == 0 {
		fmt.Println("  ✓ Report is valid")
		if r.Output.Path != "" {
			fmt.Printf("  ✓ %s matches (%s, %s)\n", r.Output.Path, formatBytes(r.Output.Size), r.Output.Hash)
		}
		if len(r.Sweep) > 0 {
			fmt.Printf("  ✓ %d sweep entries\n", len(r.Sweep))
		}
		return nil
	}

	fmt.Printf("  ✗ Report has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}
