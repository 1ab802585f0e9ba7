// Package driver runs the decompilation pipeline: read the input, decode or
// assemble it into an instruction stream, build the Module and render every
// function.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/tliron/commonlog"

	"spvdecomp/internal/dcache"
	"spvdecomp/internal/decomp"
	"spvdecomp/internal/diag"
	"spvdecomp/internal/observ"
	"spvdecomp/internal/pipeline"
	"spvdecomp/internal/spirv"
	"spvdecomp/internal/trace"
)

var log = commonlog.GetLogger("spvdecomp.driver")

// Options configures one decompilation run.
type Options struct {
	Kind   InputKind // KindAuto detects from extension and content
	Build  decomp.BuildOptions
	Render decomp.RenderOptions

	// Cache, when set, stores decoded streams across runs.
	Cache *dcache.Cache
	// Memo shares decoded streams between runs of one process.
	Memo *StreamMemo
	// Progress receives stage and per-function events.
	Progress pipeline.ProgressSink
	// EnableTimings records stage durations in Result.Timer.
	EnableTimings bool
}

// Result is everything one run produced. On failure the fields filled by the
// stages that succeeded stay set.
type Result struct {
	Path      string
	Kind      InputKind
	Digest    dcache.Digest
	CacheHit  bool
	Stream    *spirv.Stream
	Module    *decomp.Module
	Functions []decomp.FunctionText
	// Bag holds decode failures and builder diagnostics.
	Bag     *diag.Bag
	Timer   *observ.Timer
	Timings pipeline.Timings
}

// Bags returns the module bag followed by one bag per rendered function.
func (r *Result) Bags() []*diag.Bag {
	if r == nil {
		return nil
	}
	out := make([]*diag.Bag, 0, len(r.Functions)+1)
	out = append(out, r.Bag)
	for _, f := range r.Functions {
		out = append(out, f.Diags)
	}
	return out
}

// HasErrors reports whether any bag holds an error.
func (r *Result) HasErrors() bool {
	for _, b := range r.Bags() {
		if b.HasErrors() {
			return true
		}
	}
	return false
}

// Describe returns the assembler text of the instruction with ordinal inst.
func (r *Result) Describe(inst uint32) (string, bool) {
	if r == nil || r.Stream == nil || int(inst) >= len(r.Stream.Instructions) {
		return "", false
	}
	return r.Stream.Instructions[inst].String(), true
}

// WriteText dumps the decompiled module.
func (r *Result) WriteText(w io.Writer, opts decomp.DumpOptions) error {
	if r == nil || r.Module == nil {
		return errors.New("driver: nothing to write")
	}
	return decomp.DumpModule(w, r.Module, r.Functions, opts)
}

// Decompile reads path and runs the whole pipeline over it.
func Decompile(ctx context.Context, path string, opts Options) (*Result, error) {
	return start(ctx, path, opts, func() ([]byte, error) { return os.ReadFile(path) }, nil)
}

// DecompileBytes runs the pipeline over in-memory input; name labels
// diagnostics and picks the input kind by extension.
func DecompileBytes(ctx context.Context, name string, data []byte, opts Options) (*Result, error) {
	return start(ctx, name, opts, nil, data)
}

func start(ctx context.Context, path string, opts Options, read func() ([]byte, error), data []byte) (*Result, error) {
	res := &Result{Path: path, Bag: diag.NewBag(opts.Build.MaxDiagnostics)}

	tr := trace.FromContext(ctx)
	root := trace.Begin(tr, trace.ScopeDriver, "decompile", trace.ParentSpan(ctx))
	ctx = trace.WithSpan(ctx, root)
	if opts.EnableTimings {
		res.Timer = observ.NewTimer(tr, root.ID())
	}

	err := res.run(ctx, opts, read, data)
	if err != nil {
		res.Bag.Add(failure(res.Kind, err))
	}
	root.WithExtra("functions", strconv.Itoa(len(res.Functions))).End(errDetail(err))
	return res, err
}

func (r *Result) run(ctx context.Context, opts Options, read func() ([]byte, error), data []byte) error {
	if read != nil {
		err := r.stage(ctx, opts, pipeline.StageRead, func() error {
			var err error
			data, err = read()
			return err
		})
		if err != nil {
			return err
		}
	}

	r.Kind = opts.Kind
	if r.Kind == KindAuto {
		r.Kind = DetectKind(r.Path, data)
	}
	r.Digest = dcache.Sum(string(r.Kind), data)

	err := r.stage(ctx, opts, pipeline.StageDecode, func() error {
		s, hit, err := decodeCached(r, data, opts)
		r.Stream, r.CacheHit = s, hit
		return err
	})
	if err != nil {
		return err
	}

	err = r.stage(ctx, opts, pipeline.StageBuild, func() error {
		m, err := decomp.Build(r.Stream, opts.Build)
		if err != nil {
			return err
		}
		r.Module = m
		for _, d := range m.Diagnostics() {
			r.Bag.Add(d)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return r.stage(ctx, opts, pipeline.StageRender, func() error {
		ropts := opts.Render
		ropts.Progress = functionProgress(ctx, opts.Progress, ropts.Progress)
		funcs, err := decomp.NewRenderer(r.Module, ropts).RenderModule(ctx)
		if err != nil {
			return err
		}
		r.Functions = funcs
		return nil
	})
}

// stage runs fn as one pipeline stage: timed, traced and reported.
func (r *Result) stage(ctx context.Context, opts Options, st pipeline.Stage, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pipeline.Emit(opts.Progress, pipeline.Event{Stage: st, Status: pipeline.StatusWorking})
	start := time.Now()
	var err error
	if r.Timer != nil {
		err = r.Timer.Measure(string(st), fn)
	} else {
		span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, string(st), trace.ParentSpan(ctx))
		err = fn()
		span.End(errDetail(err))
	}
	elapsed := time.Since(start)
	r.Timings.Set(st, elapsed)

	status := pipeline.StatusDone
	if err != nil {
		status = pipeline.StatusError
		log.Debugf("%s: %s failed: %v", r.Path, st, err)
	}
	pipeline.Emit(opts.Progress, pipeline.Event{Stage: st, Status: status, Err: err, Elapsed: elapsed})
	if err != nil {
		return fmt.Errorf("%s: %w", st, err)
	}
	return nil
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// functionProgress fans render progress out to the sink and to per-function
// trace spans, then to next.
func functionProgress(ctx context.Context, sink pipeline.ProgressSink, next func(decomp.ProgressEvent)) func(decomp.ProgressEvent) {
	tr := trace.FromContext(ctx)
	parent := trace.ParentSpan(ctx)
	var (
		mu    sync.Mutex
		spans = make(map[int]*trace.Span)
	)
	return func(ev decomp.ProgressEvent) {
		if !ev.Done {
			span := trace.Begin(tr, trace.ScopeFunction, "function:"+ev.Name, parent)
			mu.Lock()
			spans[ev.Index] = span
			mu.Unlock()
			pipeline.Emit(sink, pipeline.Event{Function: ev.Name, Stage: pipeline.StageRender, Status: pipeline.StatusWorking})
		} else {
			mu.Lock()
			span := spans[ev.Index]
			delete(spans, ev.Index)
			mu.Unlock()
			span.End(errDetail(ev.Err))
			status := pipeline.StatusDone
			if ev.Err != nil {
				status = pipeline.StatusError
			}
			pipeline.Emit(sink, pipeline.Event{Function: ev.Name, Stage: pipeline.StageRender, Status: status, Err: ev.Err})
		}
		if next != nil {
			next(ev)
		}
	}
}
