// Package driver runs the translation pipeline: lex and parse, analyze,
// then generate. Directory runs fan out over files with bounded
// parallelism; per-file results stay independent so one broken file never
// blocks the rest.
package driver

import (
	"context"

	"ferric/internal/ast"
	"ferric/internal/codegen"
	"ferric/internal/diag"
	"ferric/internal/parser"
	"ferric/internal/sema"
	"ferric/internal/source"
)

// Options configures a pipeline run.
type Options struct {
	// MaxDiagnostics caps the bag per file.
	MaxDiagnostics int
	// Jobs bounds directory-level parallelism; zero means one per CPU.
	Jobs int
	// Cache, when set, short-circuits unchanged files.
	Cache *DiskCache
}

// Result is the outcome for one file. Output is empty when the file had
// errors; generation never runs on a broken tree.
type Result struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	File   *ast.File
	Output string
	Cached bool
}

// HasErrors reports whether the file failed parsing or analysis.
func (r *Result) HasErrors() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

// TranspileFile runs the full pipeline on one loaded file.
func TranspileFile(file *source.File, maxDiagnostics int) *Result {
	res := &Result{
		Path:   file.Path,
		FileID: file.ID,
		Bag:    diag.NewBag(maxDiagnostics),
	}
	res.File = parser.ParseFile(file, res.Bag)

	analyzer := sema.NewAnalyzer()
	analyzer.AnalyzeFile(res.File)
	analyzer.ReportIncompats(res.File)
	sema.ToBag(analyzer.Errors(), res.Bag)

	res.Bag.Sort()
	if res.Bag.HasErrors() {
		return res
	}
	res.Output = codegen.Generate(res.File, analyzer.Captures())
	return res
}

// Transpile loads one file from disk and translates it, consulting the
// cache when enabled.
func Transpile(ctx context.Context, fs *source.FileSet, path string, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(id)

	var payload DiskPayload
	if opts.Cache.Get(file.Hash, &payload) {
		return &Result{
			Path:   file.Path,
			FileID: id,
			Bag:    diag.NewBag(opts.MaxDiagnostics),
			Output: payload.Output,
			Cached: true,
		}, nil
	}

	res := TranspileFile(file, opts.MaxDiagnostics)
	if !res.HasErrors() && opts.Cache != nil {
		// Cache failures are not translation failures.
		_ = opts.Cache.Put(file.Hash, &DiskPayload{
			Schema: diskCacheSchemaVersion,
			Path:   file.Path,
			Output: res.Output,
		})
	}
	return res, nil
}
