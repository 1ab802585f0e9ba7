package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"spvdecomp/internal/spirv"
	"spvdecomp/internal/spirv/asm"
)

var disCmd = &cobra.Command{
	Use:   "dis [flags] <file.spv>",
	Short: "Disassemble a binary module",
	Args:  cobra.ExactArgs(1),
	RunE:  runDis,
}

func init() {
	disCmd.Flags().String("format", "text", "output format (text|json)")
}

type disPayload struct {
	Header       spirv.Header `json:"header"`
	Instructions []disInst    `json:"instructions"`
}

type disInst struct {
	Index  uint32 `json:"index"`
	Offset uint32 `json:"offset"`
	Text   string `json:"text"`
}

func runDis(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	s, err := spirv.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	switch format {
	case "text":
		return asm.Disassemble(cmd.OutOrStdout(), s)
	case "json":
		payload := disPayload{Header: s.Header, Instructions: make([]disInst, len(s.Instructions))}
		for i := range s.Instructions {
			in := &s.Instructions[i]
			payload.Instructions[i] = disInst{Index: in.Index, Offset: in.Offset, Text: in.String()}
		}
		return writeJSON(cmd.OutOrStdout(), payload)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
