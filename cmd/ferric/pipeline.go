package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ferric/internal/diag"
	"ferric/internal/diagfmt"
	"ferric/internal/driver"
	"ferric/internal/project"
	"ferric/internal/source"
)

type pipelineOpts struct {
	manifest *project.Manifest
	driver   driver.Options
	jsonOut  bool
	quiet    bool
	color    bool
}

// resolvePipelineOpts merges the manifest with command-line overrides.
func resolvePipelineOpts(cmd *cobra.Command, startDir string, useDiskCache bool) (*pipelineOpts, error) {
	manifest, _, err := project.Load(startDir)
	if err != nil {
		return nil, err
	}
	maxDiags, _ := cmd.Flags().GetInt("max-diagnostics")
	if maxDiags <= 0 {
		maxDiags = manifest.Config.Diagnostics.Max
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	jsonOut, _ := cmd.Flags().GetBool("json")
	jobs, _ := cmd.Flags().GetInt("jobs")
	if jobs <= 0 {
		jobs = manifest.Config.Build.Jobs
	}

	opts := &pipelineOpts{
		manifest: manifest,
		driver: driver.Options{
			MaxDiagnostics: maxDiags,
			Jobs:           jobs,
		},
		jsonOut: jsonOut,
		quiet:   quiet,
		color:   useColor(cmd),
	}
	if useDiskCache && manifest.Config.Build.Cache {
		noCache, _ := cmd.Flags().GetBool("no-cache")
		if !noCache {
			cache, err := driver.OpenDiskCache("ferric")
			if err == nil {
				opts.driver.Cache = cache
			}
		}
	}
	return opts, nil
}

// runPipeline translates the target (a file or a directory), reports
// diagnostics, and returns the results for further handling.
func runPipeline(cmd *cobra.Command, target string, opts *pipelineOpts) (*source.FileSet, []driver.Result, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, nil, err
	}
	if info.IsDir() {
		return driver.TranspileDir(cmd.Context(), target, opts.driver)
	}
	if !strings.HasSuffix(target, driver.SourceExt) {
		return nil, nil, fmt.Errorf("%s: not a %s file", target, driver.SourceExt)
	}
	fs := source.NewFileSet()
	res, err := driver.Transpile(cmd.Context(), fs, target, opts.driver)
	if err != nil {
		return nil, nil, err
	}
	return fs, []driver.Result{*res}, nil
}

// reportDiagnostics renders every bag and reports whether any file failed.
func reportDiagnostics(fs *source.FileSet, results []driver.Result, opts *pipelineOpts) bool {
	failed := false
	merged := diag.NewBag(opts.driver.MaxDiagnostics)
	for i := range results {
		if results[i].Bag != nil {
			merged.Merge(results[i].Bag)
		}
		if results[i].HasErrors() {
			failed = true
		}
	}
	merged.Sort()
	if opts.jsonOut {
		_ = diagfmt.JSON(os.Stdout, merged, fs, diagfmt.JSONOpts{
			PathMode:     diagfmt.PathModeAuto,
			IncludeNotes: true,
			Max:          opts.driver.MaxDiagnostics,
		})
		return failed
	}
	diagfmt.Pretty(os.Stderr, merged, fs, diagfmt.PrettyOpts{
		Color:     opts.color,
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
	})
	return failed
}

// outputPath maps a source path to its generated file under outDir.
func outputPath(outDir, srcPath string) string {
	base := filepath.Base(srcPath)
	base = strings.TrimSuffix(base, driver.SourceExt) + ".rs"
	return filepath.Join(outDir, base)
}

// writeOutputs persists generated text for every clean result.
func writeOutputs(outDir string, results []driver.Result) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	var written []string
	for i := range results {
		if results[i].HasErrors() || results[i].Output == "" {
			continue
		}
		dest := outputPath(outDir, results[i].Path)
		if err := os.WriteFile(dest, []byte(results[i].Output), 0o644); err != nil {
			return written, err
		}
		written = append(written, dest)
	}
	return written, nil
}
