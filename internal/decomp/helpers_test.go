package decomp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"spvdecomp/internal/spirv"
	"spvdecomp/internal/spirv/asm"
)

// counterSrc is the load/add/store scenario. Ids: main=1 counter=2 void=3
// fnty=4 u32=5 ptr=6 five=7 entry=8 x=9 y=10.
const counterSrc = `
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

func assemble(t *testing.T, src string) *spirv.Stream {
	t.Helper()
	s, err := asm.AssembleString("test.spvasm", src)
	require.NoError(t, err)
	return s
}

func mustBuild(t *testing.T, src string, opts BuildOptions) *Module {
	t.Helper()
	m, err := Build(assemble(t, src), opts)
	require.NoError(t, err)
	return m
}

func buildErr(t *testing.T, src string) error {
	t.Helper()
	_, err := Build(assemble(t, src), BuildOptions{})
	require.Error(t, err)
	return err
}

func renderOnly(t *testing.T, m *Module, opts RenderOptions) FunctionText {
	t.Helper()
	fns := m.Functions()
	require.Len(t, fns, 1)
	out, err := NewRenderer(m, opts).RenderFunction(fns[0])
	require.NoError(t, err)
	return out
}

func lines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
