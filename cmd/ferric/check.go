package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Analyze sources without writing output",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "parallel translation jobs (0 uses the manifest value)")
	checkCmd.Flags().Bool("json", false, "emit diagnostics as JSON")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	startDir := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		startDir = filepath.Dir(target)
	}
	// check always re-runs analysis, no cache.
	opts, err := resolvePipelineOpts(cmd, startDir, false)
	if err != nil {
		return err
	}

	fs, results, err := runPipeline(cmd, target, opts)
	if err != nil {
		return err
	}
	if reportDiagnostics(fs, results, opts) {
		return fmt.Errorf("check failed")
	}
	if !opts.quiet && !opts.jsonOut {
		fmt.Fprintf(cmd.OutOrStdout(), "checked %d file(s), no errors\n", len(results))
	}
	return nil
}
