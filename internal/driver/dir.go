package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"ferric/internal/diag"
	"ferric/internal/source"
)

// SourceExt is the extension translated source files carry.
const SourceExt = ".cy"

// ListSourceFiles returns every source file under dir, sorted for
// deterministic runs.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// TranspileDir translates every source file under dir in parallel. Results
// come back in file order; slot i belongs to goroutine i alone, so no lock
// guards the slice.
func TranspileDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []Result, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Preload sequentially: the FileSet is not safe for concurrent writes.
	ids := make(map[string]source.FileID, len(files))
	loadErrs := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrs[path] = err
			continue
		}
		ids[path] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErr, failed := loadErrs[path]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Error(diag.DrvFileError, source.Span{}, "failed to load file: "+loadErr.Error())
				results[i] = Result{Path: path, Bag: bag}
				return nil
			}
			file := fileSet.Get(ids[path])

			var payload DiskPayload
			if opts.Cache.Get(file.Hash, &payload) {
				results[i] = Result{
					Path:   path,
					FileID: file.ID,
					Bag:    diag.NewBag(opts.MaxDiagnostics),
					Output: payload.Output,
					Cached: true,
				}
				return nil
			}

			res := TranspileFile(file, opts.MaxDiagnostics)
			if !res.HasErrors() && opts.Cache != nil {
				_ = opts.Cache.Put(file.Hash, &DiskPayload{
					Schema: diskCacheSchemaVersion,
					Path:   path,
					Output: res.Output,
				})
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
