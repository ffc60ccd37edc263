package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [path]",
	Short: "Translate sources and write the generated files",
	Long: `Translate a source file or every source file under a directory and
write the generated .rs files into the build output directory. Files with
errors are reported and produce no output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("out", "", "output directory (overrides the manifest)")
	buildCmd.Flags().Int("jobs", 0, "parallel translation jobs (0 uses the manifest value)")
	buildCmd.Flags().Bool("no-cache", false, "skip the translation cache")
	buildCmd.Flags().Bool("json", false, "emit diagnostics as JSON")
}

func runBuild(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	startDir := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		startDir = filepath.Dir(target)
	}
	opts, err := resolvePipelineOpts(cmd, startDir, true)
	if err != nil {
		return err
	}

	fs, results, err := runPipeline(cmd, target, opts)
	if err != nil {
		return err
	}
	failed := reportDiagnostics(fs, results, opts)

	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = filepath.Join(opts.manifest.Root, opts.manifest.Config.Build.OutDir)
	}
	written, err := writeOutputs(outDir, results)
	if err != nil {
		return err
	}
	if !opts.quiet {
		for _, path := range written {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		}
	}
	if failed {
		return fmt.Errorf("build failed")
	}
	return nil
}
