package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"golang.org/x/term"

	"spvdecomp/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "spvdecomp [flags] <file.spv|file.spvasm|directory>...",
	Short: "Decompile SPIR-V modules into readable pseudo-code",
	Long: `spvdecomp turns SPIR-V binaries (.spv) or SPIR-V assembly (.spvasm) into
per-function pseudo-code. Settings come from spvdecomp.toml when one is found
in the working directory or above; flags override the file.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDecompile,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, err := cmd.Root().PersistentFlags().GetCount("verbose")
		if err != nil {
			return err
		}
		commonlog.Configure(verbose, nil)
		return nil
	},
}

func init() {
	rootCmd.Version = version.Current().String()

	rootCmd.AddCommand(asmCmd)
	rootCmd.AddCommand(disCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics per module or function")
	flags.String("config", "", "path to spvdecomp.toml (default: search upwards)")
	flags.CountP("verbose", "v", "log verbosity (repeat for more)")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|stage|detail)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")
}

// main executes the root command. Exit status: 0 on success, 1 on any
// failure.
func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorsReported(err) {
			rootCmd.PrintErrln("error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
