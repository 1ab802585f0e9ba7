package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spvdecomp/internal/pipeline"
)

const counterSrc = `; Version: 1.3
               OpName %main "main"
               OpName %counter "counter"
       %void = OpTypeVoid
       %fnty = OpTypeFunction %void
        %u32 = OpTypeInt 32 0
        %ptr = OpTypePointer Function %u32
       %five = OpConstant %u32 5
       %main = OpFunction %void None %fnty
      %entry = OpLabel
    %counter = OpVariable %ptr Function
          %x = OpLoad %u32 %counter
          %y = OpIAdd %u32 %x %five
               OpStore %counter %y
               OpReturn
               OpFunctionEnd
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestDecompileCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "counter.spvasm")
	require.NoError(t, os.WriteFile(src, []byte(counterSrc), 0o600))
	cfg := filepath.Join(dir, "spvdecomp.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[render]\ndialect = \"neutral\"\n\n[cache]\nenabled = false\n"), 0o600))

	out, errOut, err := execute(t, "--config", cfg, "--color", "off", "--quiet", src)
	require.NoError(t, err, errOut)
	assert.Contains(t, out, "names=2\n")
	assert.Contains(t, out, "function main:\n// block 8\ndeclare mutable counter: u32;\n")
	assert.Contains(t, out, "bind id_10 = id_9 + 5u32;")
	assert.Empty(t, errOut)
}

func TestAsmAndDisCommands(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "counter.spvasm")
	bin := filepath.Join(dir, "out.spv")
	require.NoError(t, os.WriteFile(src, []byte(counterSrc), 0o600))

	_, errOut, err := execute(t, "asm", "--quiet", "-o", bin, src)
	require.NoError(t, err, errOut)

	out, errOut, err := execute(t, "dis", bin)
	require.NoError(t, err, errOut)
	assert.True(t, strings.HasPrefix(out, "; SPIR-V\n; Version: 1.3\n"))
	assert.Contains(t, out, "%9 = OpLoad %5 %2\n")
	assert.Contains(t, out, "       OpStore %2 %10\n")
}

func TestReadToggle(t *testing.T) {
	on, err := readToggle("--color", "ON", nil)
	require.NoError(t, err)
	assert.True(t, on)
	off, err := readToggle("--color", "off", nil)
	require.NoError(t, err)
	assert.False(t, off)
	_, err = readToggle("--progress", "sometimes", nil)
	assert.ErrorContains(t, err, "--progress")
}

func TestPrintStageTimings(t *testing.T) {
	var tm pipeline.Timings
	tm.Set(pipeline.StageDecode, 1500000)
	tm.Set(pipeline.StageRender, 500000)

	var buf bytes.Buffer
	printStageTimings(&buf, tm)
	assert.Equal(t, "decode 1.5 ms, render 0.5 ms (total 2.0 ms)\n", buf.String())
}
