package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"spvdecomp/internal/spirv"
	"spvdecomp/internal/spirv/asm"
)

var asmCmd = &cobra.Command{
	Use:   "asm [flags] <file.spvasm>",
	Short: "Assemble SPIR-V assembly into a binary module",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsm,
}

func init() {
	asmCmd.Flags().StringP("output", "o", "", "output file (default: input with .spv extension)")
}

func runAsm(cmd *cobra.Command, args []string) error {
	in := args[0]
	out, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + ".spv"
	}

	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := asm.Assemble(in, f)
	if err != nil {
		return err
	}
	bin, err := spirv.Encode(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, bin, 0o644); err != nil {
		return err
	}
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d instructions, %d bytes)\n", out, len(s.Instructions), len(bin))
	}
	return nil
}
