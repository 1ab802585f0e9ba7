package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"spvdecomp/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}
		info := version.Current()
		switch strings.ToLower(format) {
		case "json":
			return writeJSON(cmd.OutOrStdout(), info)
		case "pretty":
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		}

		colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
		v := info.Version
		useColor, err := readToggle("--color", colorFlag, os.Stdout)
		if err != nil {
			return err
		}
		color.NoColor = !useColor
		v = version.Colored(v)
		fmt.Fprintf(cmd.OutOrStdout(), "spvdecomp %s\n", v)
		if info.GitCommit != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", info.GitCommit)
		}
		if info.BuildDate != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "built:  %s\n", info.BuildDate)
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}
