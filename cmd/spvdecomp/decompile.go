package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"spvdecomp/internal/config"
	"spvdecomp/internal/dcache"
	"spvdecomp/internal/decomp"
	"spvdecomp/internal/diag"
	"spvdecomp/internal/diagfmt"
	"spvdecomp/internal/driver"
	"spvdecomp/internal/pipeline"
)

// errReported marks failures whose diagnostics were already printed.
var errReported = errors.New("decompilation failed")

func errorsReported(err error) bool { return errors.Is(err, errReported) }

func init() {
	flags := rootCmd.Flags()
	flags.String("dialect", "", "output dialect ("+strings.Join(decomp.DialectNames(), "|")+")")
	flags.String("policy", "", "error policy (strict|lenient)")
	flags.StringSlice("degrade", nil, "error kinds the lenient policy degrades (missing-id,type-mismatch,unexpected-storage-class)")
	flags.Int("jobs", 0, "parallel workers (0=auto)")
	flags.String("input-kind", "auto", "input kind (auto|binary|assembly)")
	flags.StringP("output", "o", "", "write decompiled text to file instead of stdout")
	flags.String("format", "pretty", "diagnostics format (pretty|json|short)")
	flags.Bool("with-notes", false, "include diagnostic notes in output")
	flags.Bool("no-names", false, "omit the name table from the output")
	flags.Bool("no-cache", false, "disable the decoded stream cache")
	flags.String("cache-dir", "", "cache directory (default: $XDG_CACHE_HOME/spvdecomp)")
	flags.String("progress", "off", "show live progress (auto|on|off)")
}

type settings struct {
	opts      driver.Options
	dump      decomp.DumpOptions
	jobs      int
	output    string
	format    string
	notes     bool
	color     bool
	quiet     bool
	timings   bool
	progress  bool
	maxDiags  int
	configSrc string
}

// resolveSettings layers flags over spvdecomp.toml over the defaults.
func resolveSettings(cmd *cobra.Command) (settings, error) {
	var s settings
	root := cmd.Root().PersistentFlags()
	flags := cmd.Flags()

	cfgPath, err := root.GetString("config")
	if err != nil {
		return s, err
	}
	cfg, err := config.Resolve(cfgPath, ".")
	if err != nil {
		return s, err
	}
	s.configSrc = cfg.Path

	if flags.Changed("dialect") {
		cfg.Render.Dialect, _ = flags.GetString("dialect")
	}
	if flags.Changed("policy") {
		cfg.Errors.Policy, _ = flags.GetString("policy")
	}
	if flags.Changed("degrade") {
		cfg.Errors.Degrade, _ = flags.GetStringSlice("degrade")
	}
	if flags.Changed("jobs") {
		cfg.Render.Jobs, _ = flags.GetInt("jobs")
	}
	if root.Changed("max-diagnostics") {
		cfg.Errors.MaxDiagnostics, _ = root.GetInt("max-diagnostics")
	}
	if noNames, _ := flags.GetBool("no-names"); noNames {
		cfg.Render.ShowNames = false
	}
	if noCache, _ := flags.GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}
	if dir, _ := flags.GetString("cache-dir"); dir != "" {
		cfg.Cache.Dir = dir
	}
	if err := cfg.Validate(); err != nil {
		return s, err
	}

	dialect, err := decomp.LookupDialect(cfg.Render.Dialect)
	if err != nil {
		return s, err
	}
	policy, err := decomp.ParsePolicy(cfg.Errors.Policy, cfg.Errors.Degrade)
	if err != nil {
		return s, err
	}
	kindFlag, _ := flags.GetString("input-kind")
	kind, ok := driver.ParseInputKind(kindFlag)
	if !ok {
		return s, fmt.Errorf("invalid --input-kind value %q (expected auto|binary|assembly)", kindFlag)
	}

	s.format, _ = flags.GetString("format")
	switch s.format {
	case "pretty", "json", "short":
	default:
		return s, fmt.Errorf("unknown format: %s", s.format)
	}
	s.output, _ = flags.GetString("output")
	s.notes, _ = flags.GetBool("with-notes")
	s.quiet, _ = root.GetBool("quiet")
	s.timings, _ = root.GetBool("timings")
	s.maxDiags = cfg.Errors.MaxDiagnostics

	colorFlag, _ := root.GetString("color")
	if s.color, err = readToggle("--color", colorFlag, os.Stderr); err != nil {
		return s, err
	}
	progressFlag, _ := flags.GetString("progress")
	if s.progress, err = readToggle("--progress", progressFlag, os.Stderr); err != nil {
		return s, err
	}

	var cache *dcache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			if dir, err = dcache.DefaultDir("spvdecomp"); err != nil {
				return s, err
			}
		}
		if cache, err = dcache.Open(dir); err != nil {
			// кэш необязателен
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", err)
			cache = nil
		}
	}

	s.jobs = cfg.Render.Jobs
	s.dump = decomp.DumpOptions{ShowNames: cfg.Render.ShowNames}
	s.opts = driver.Options{
		Kind:  kind,
		Build: decomp.BuildOptions{Policy: policy, MaxDiagnostics: cfg.Errors.MaxDiagnostics},
		Render: decomp.RenderOptions{
			Dialect:        dialect,
			Policy:         policy,
			Jobs:           cfg.Render.Jobs,
			MaxDiagnostics: cfg.Errors.MaxDiagnostics,
		},
		Cache:         cache,
		EnableTimings: s.timings,
	}
	return s, nil
}

// readToggle parses auto|on|off; auto means "f is a terminal".
func readToggle(flag, value string, f *os.File) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return isTerminal(f), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid %s value %q (expected auto|on|off)", flag, value)
}

// runDecompile decompiles every input, writes the text to stdout (or -o) and
// the diagnostics to stderr. Any error diagnostic makes the command fail.
func runDecompile(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd)

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	if s.configSrc != "" && !s.quiet {
		logConfig(cmd.ErrOrStderr(), s.configSrc)
	}

	paths, err := driver.ListInputs(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .spv or .spvasm files under %s", strings.Join(args, ", "))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var outcomes []driver.FileOutcome
	run := func(sink pipeline.ProgressSink) error {
		opts := s.opts
		opts.Progress = sink
		fileJobs := 1
		if len(paths) > 1 {
			// несколько файлов: параллелим по файлам, функции по одной
			fileJobs, opts.Render.Jobs = s.jobs, 1
		}
		var err error
		outcomes, err = driver.DecompileFiles(ctx, paths, opts, fileJobs)
		return err
	}
	if s.progress {
		err = runWithUI(progressTitle(paths), run)
	} else {
		err = run(nil)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if s.output != "" {
		f, err := os.Create(s.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return report(cmd.ErrOrStderr(), out, outcomes, s)
}

func progressTitle(paths []string) string {
	if len(paths) == 1 {
		return "decompiling " + paths[0]
	}
	return fmt.Sprintf("decompiling %d files", len(paths))
}

func logConfig(w io.Writer, path string) {
	fmt.Fprintf(w, "using %s\n", path)
}

// report prints text and diagnostics for every outcome.
func report(errOut, out io.Writer, outcomes []driver.FileOutcome, s settings) error {
	failed := false
	var bags []*diag.Bag
	var jsonOut diagfmt.DiagnosticsOutput

	for i, o := range outcomes {
		res := o.Result
		if o.Err != nil || res.HasErrors() {
			failed = true
		}
		if res != nil && res.Module != nil && o.Err == nil {
			if len(outcomes) > 1 {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "// file %s\n", o.Path)
			}
			if err := res.WriteText(out, s.dump); err != nil {
				return err
			}
		}
		if res == nil {
			fmt.Fprintf(errOut, "%s: %v\n", o.Path, o.Err)
			continue
		}

		for j, bag := range res.Bags() {
			title := o.Path
			if j > 0 {
				title = fmt.Sprintf("%s: function %s", o.Path, res.Functions[j-1].Name)
			}
			bags = append(bags, bag)
			switch s.format {
			case "json":
				part := diagfmt.BuildDiagnosticsOutput(bag, diagfmt.JSONOpts{Title: title, Max: s.maxDiags, IncludeNotes: s.notes})
				jsonOut.Diagnostics = append(jsonOut.Diagnostics, part.Diagnostics...)
			case "short":
				if bag.Len() > 0 {
					fmt.Fprintf(errOut, "%s:\n%s", title, diag.FormatShortDiagnostics(bag.Items(), s.notes))
				}
			default:
				diagfmt.Pretty(errOut, bag, diagfmt.PrettyOpts{
					Color:     s.color,
					Title:     title,
					ShowNotes: s.notes,
					Describe:  res.Describe,
				})
			}
		}
		if s.timings && res.Timer != nil {
			fmt.Fprintf(errOut, "%s ", o.Path)
			printStageTimings(errOut, res.Timings)
			if !s.quiet {
				fmt.Fprint(errOut, res.Timer.Summary())
			}
		}
	}

	if s.format == "json" {
		jsonOut.Count = len(jsonOut.Diagnostics)
		if err := writeJSON(errOut, jsonOut); err != nil {
			return err
		}
	} else if summary := diagfmt.Summary(bags...); summary != "" && !s.quiet {
		fmt.Fprintln(errOut, summary)
	}
	if failed {
		return errReported
	}
	return nil
}
