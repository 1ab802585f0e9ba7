package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// FileOutcome pairs one input with its result.
type FileOutcome struct {
	Path   string
	Result *Result
	Err    error
}

// DecompileFiles decompiles every path, at most jobs at a time (<= 0 means
// GOMAXPROCS). A failing file does not stop the others; outcomes keep the
// order of paths. Only a canceled ctx aborts the batch.
func DecompileFiles(ctx context.Context, paths []string, opts Options, jobs int) ([]FileOutcome, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if opts.Memo == nil {
		opts.Memo = NewStreamMemo(len(paths))
	}
	out := make([]FileOutcome, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Decompile(gctx, path, opts)
			out[i] = FileOutcome{Path: path, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListInputs expands directories into the SPIR-V files below them (.spv,
// .spvasm), sorted. Plain file arguments are kept as given.
func ListInputs(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			switch strings.ToLower(filepath.Ext(path)) {
			case ".spv", ".spvasm":
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		slices.Sort(found)
		out = append(out, found...)
	}
	return out, nil
}
