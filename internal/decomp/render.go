package decomp

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"spvdecomp/internal/diag"
)

// RenderOptions configures a Renderer.
type RenderOptions struct {
	Dialect Dialect
	Policy  Policy
	// Jobs bounds how many functions render concurrently; <= 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics caps each function's diagnostics bag; <= 0 means no cap.
	MaxDiagnostics int
	// Progress, when set, is called as each function starts and finishes.
	// It may be called from several goroutines at once.
	Progress func(ProgressEvent)
}

// ProgressEvent reports one function entering or leaving rendering.
type ProgressEvent struct {
	Index int
	Name  string
	Done  bool
	Err   error
}

// Renderer lowers the functions of a completed Module. It only reads the
// module and may be shared between goroutines.
type Renderer struct {
	m    *Module
	opts RenderOptions
}

func NewRenderer(m *Module, opts RenderOptions) *Renderer {
	opts.Dialect = opts.Dialect.orDefault()
	return &Renderer{m: m, opts: opts}
}

// FunctionText is the rendered body of one function together with the
// diagnostics raised while rendering it.
type FunctionText struct {
	ID    uint32
	Name  string
	Text  string
	Diags *diag.Bag
}

// RenderFunction renders the header line of fn, then per block a
// "// block <label>" line followed by one line per lowered statement.
func (r *Renderer) RenderFunction(fn *Function) (FunctionText, error) {
	bag := diag.NewBag(r.opts.MaxDiagnostics)
	l := &lowerer{
		Resolver: newResolver(r.m, diag.BagReporter{Bag: bag}),
		dialect:  r.opts.Dialect,
		policy:   r.opts.Policy,
	}

	var sb strings.Builder
	name := r.m.Name(fn.ID)
	fmt.Fprintf(&sb, "function %s:\n", name)
	for _, block := range fn.Blocks {
		fmt.Fprintf(&sb, "// block %d\n", block.Label)
		for _, in := range block.Instructions {
			l.at = spanOf(in)
			stmt, ok, err := l.lower(in)
			if err != nil {
				return FunctionText{}, fmt.Errorf("function %s: %w", name, err)
			}
			if ok {
				sb.WriteString(stmt)
				sb.WriteByte('\n')
			}
		}
	}
	return FunctionText{ID: fn.ID, Name: name, Text: sb.String(), Diags: bag}, nil
}

// RenderModule renders every function, concurrently when Jobs allows. The
// result keeps the module's function order regardless of which goroutine
// finished first.
func (r *Renderer) RenderModule(ctx context.Context) ([]FunctionText, error) {
	funcs := r.m.funcs
	out := make([]FunctionText, len(funcs))

	jobs := r.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, fn := range funcs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r.progress(ProgressEvent{Index: i, Name: r.m.Name(fn.ID)})
			text, err := r.RenderFunction(fn)
			r.progress(ProgressEvent{Index: i, Name: r.m.Name(fn.ID), Done: true, Err: err})
			if err != nil {
				return err
			}
			out[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Renderer) progress(ev ProgressEvent) {
	if r.opts.Progress != nil {
		r.opts.Progress(ev)
	}
}

// DumpOptions configures DumpModule.
type DumpOptions struct {
	// ShowNames includes the Name Table.
	ShowNames bool
}

// DumpModule writes the header line, the Name Table sorted by id, the struct
// declarations and then every rendered function, separated by blank lines.
func DumpModule(w io.Writer, m *Module, funcs []FunctionText, opts DumpOptions) error {
	if w == nil || m == nil {
		return nil
	}
	var sb strings.Builder
	if h, ok := m.Header(); ok {
		fmt.Fprintf(&sb, "header: %s\n", h)
	}
	if opts.ShowNames {
		names := m.Names()
		fmt.Fprintf(&sb, "names=%d\n", len(names))
		for _, n := range names {
			fmt.Fprintf(&sb, "  %%%d = %q\n", n.ID, n.Name)
		}
	}
	for _, s := range m.structs {
		fmt.Fprintf(&sb, "struct %s {\n", s.Name)
		for _, mem := range s.Members {
			fmt.Fprintf(&sb, "    %s: %s,\n", mem.Name, mem.Type)
		}
		sb.WriteString("}\n")
	}
	for _, f := range funcs {
		sb.WriteByte('\n')
		sb.WriteString(f.Text)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
