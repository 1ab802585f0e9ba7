package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spvdecomp/internal/dcache"
	"spvdecomp/internal/decomp"
	"spvdecomp/internal/diag"
	"spvdecomp/internal/pipeline"
	"spvdecomp/internal/spirv"
	"spvdecomp/internal/spirv/asm"
	"spvdecomp/internal/trace"
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

const counterRust = `header: version 1.3 generator 0x00000000 bound 11

function main:
// block 8
let mut counter: u32;
let id_9 = counter;
let id_10 = id_9 + 5u32;
counter = id_10;
return;
`

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func counterBinary(t *testing.T) []byte {
	t.Helper()
	s, err := asm.AssembleString("counter.spvasm", counterSrc)
	require.NoError(t, err)
	bin, err := spirv.Encode(s)
	require.NoError(t, err)
	return bin
}

func text(t *testing.T, res *Result) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, res.WriteText(&buf, decomp.DumpOptions{}))
	return buf.String()
}

func TestDecompileAssemblyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "counter.spvasm", []byte(counterSrc))

	res, err := Decompile(context.Background(), path, Options{EnableTimings: true})
	require.NoError(t, err)
	assert.Equal(t, KindAssembly, res.Kind)
	assert.False(t, res.CacheHit)
	assert.Equal(t, counterRust, text(t, res))
	assert.False(t, res.HasErrors())

	for _, st := range pipeline.Stages {
		assert.True(t, res.Timings.Has(st), "stage %s timed", st)
	}
	assert.Len(t, res.Timer.Report().Phases, 4)

	line, ok := res.Describe(10)
	require.True(t, ok)
	assert.Equal(t, "%9 = OpLoad %5 %2", line)
	_, ok = res.Describe(99)
	assert.False(t, ok)
}

func TestDecompileBinaryMatchesAssembly(t *testing.T) {
	res, err := DecompileBytes(context.Background(), "counter.spv", counterBinary(t), Options{})
	require.NoError(t, err)
	assert.Equal(t, KindBinary, res.Kind)
	assert.Equal(t, counterRust, text(t, res))
	assert.False(t, res.Timings.Has(pipeline.StageRead), "in-memory input skips the read stage")
}

func TestDecompileUsesDiskCache(t *testing.T) {
	cache, err := dcache.Open(t.TempDir())
	require.NoError(t, err)
	opts := Options{Cache: cache, Render: decomp.RenderOptions{Dialect: decomp.Neutral}}
	bin := counterBinary(t)

	first, err := DecompileBytes(context.Background(), "a.spv", bin, opts)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)

	second, err := DecompileBytes(context.Background(), "b.spv", bin, opts)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Digest, second.Digest)
	assert.Equal(t, text(t, first), text(t, second))
	assert.Contains(t, text(t, second), "declare mutable counter: u32;")
}

func TestStreamMemo(t *testing.T) {
	memo := NewStreamMemo(1)
	opts := Options{Memo: memo}
	_, err := DecompileBytes(context.Background(), "x.spvasm", []byte(counterSrc), opts)
	require.NoError(t, err)
	again, err := DecompileBytes(context.Background(), "y.spvasm", []byte(counterSrc), opts)
	require.NoError(t, err)
	assert.True(t, again.CacheHit)

	var nilMemo *StreamMemo
	nilMemo.Put(dcache.Digest{}, &spirv.Stream{})
	_, ok := nilMemo.Get(dcache.Digest{})
	assert.False(t, ok)
}

func TestDecompileFailures(t *testing.T) {
	cases := []struct {
		name  string
		input string
		data  []byte
		opts  Options
		code  diag.Code
		stage string
	}{
		{"bad magic", "x.spv", make([]byte, 20), Options{}, diag.DecBadMagic, "decode"},
		{"odd size", "x.spv", make([]byte, 22), Options{}, diag.DecTruncated, "decode"},
		{"syntax", "x.spvasm", []byte("%a = = OpNop\n"), Options{}, diag.DecAssemblerSyntax, "decode"},
		{
			"unterminated function", "x.spvasm",
			[]byte(strings.Replace(counterSrc, "OpFunctionEnd", "", 1)),
			Options{}, diag.BldUnterminatedFunction, "build",
		},
		{
			"missing store target", "x.spvasm",
			[]byte(strings.Replace(counterSrc, "OpStore %counter %y", "OpStore %ghost %y", 1)),
			Options{}, diag.ResMissingID, "render",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := DecompileBytes(context.Background(), tc.input, tc.data, tc.opts)
			require.Error(t, err)
			assert.True(t, strings.HasPrefix(err.Error(), tc.stage+": "), err.Error())
			require.NotNil(t, res)
			require.True(t, res.HasErrors())
			items := res.Bag.Items()
			assert.Equal(t, tc.code, items[len(items)-1].Code)
		})
	}
}

func TestDecompileLenientDegrades(t *testing.T) {
	src := strings.Replace(counterSrc, "OpStore %counter %y", "OpStore %ghost %y", 1)
	res, err := DecompileBytes(context.Background(), "x.spvasm", []byte(src), Options{
		Render: decomp.RenderOptions{Policy: decomp.Lenient()},
	})
	require.NoError(t, err)
	assert.True(t, res.HasErrors(), "degraded failures still count as errors")
	assert.Contains(t, text(t, res), "[error: missing id:")
	assert.Len(t, res.Bags(), 2)
}

func TestDecompileProgressAndTrace(t *testing.T) {
	var (
		mu     sync.Mutex
		events []pipeline.Event
	)
	sink := pipeline.FuncSink(func(e pipeline.Event) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	})

	var traceOut bytes.Buffer
	tr := trace.NewStreamTracer(&traceOut, trace.LevelDetail, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)

	_, err := DecompileBytes(ctx, "x.spvasm", []byte(counterSrc), Options{Progress: sink})
	require.NoError(t, err)

	var fn []pipeline.Status
	stages := map[pipeline.Stage]pipeline.Status{}
	for _, e := range events {
		if e.Function == "main" {
			fn = append(fn, e.Status)
			continue
		}
		stages[e.Stage] = e.Status
	}
	assert.Equal(t, []pipeline.Status{pipeline.StatusWorking, pipeline.StatusDone}, fn)
	assert.Equal(t, pipeline.StatusDone, stages[pipeline.StageBuild])
	assert.Equal(t, pipeline.StatusDone, stages[pipeline.StageRender])

	out := traceOut.String()
	assert.Contains(t, out, "→ decompile")
	assert.Contains(t, out, "→ function:main")
	assert.Contains(t, out, "← decompile {functions=1}")
}

func TestDecompileCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := DecompileBytes(ctx, "x.spvasm", []byte(counterSrc), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecompileFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "a.spvasm", []byte(counterSrc))
	bad := writeFile(t, dir, "b.spv", []byte{1, 2, 3})
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	bin := writeFile(t, sub, "c.spv", counterBinary(t))
	writeFile(t, sub, "notes.txt", []byte("skip me"))

	paths, err := ListInputs([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{good, bad, bin}, paths)

	out, err := DecompileFiles(context.Background(), paths, Options{}, 2)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.NoError(t, out[0].Err)
	assert.Error(t, out[1].Err)
	assert.NoError(t, out[2].Err)
	assert.Equal(t, text(t, out[0].Result), text(t, out[2].Result))

	_, err = ListInputs([]string{filepath.Join(dir, "missing.spv")})
	assert.Error(t, err)
}

func TestDetectKind(t *testing.T) {
	bin := counterBinary(t)
	assert.Equal(t, KindBinary, DetectKind("shader.SPV", nil))
	assert.Equal(t, KindAssembly, DetectKind("shader.spvasm", bin))
	assert.Equal(t, KindBinary, DetectKind("stdin", bin))
	assert.Equal(t, KindAssembly, DetectKind("stdin", []byte("OpNop")))

	k, ok := ParseInputKind("ASM")
	assert.True(t, ok)
	assert.Equal(t, KindAssembly, k)
	_, ok = ParseInputKind("elf")
	assert.False(t, ok)
}
