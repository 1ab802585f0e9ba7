package decomp

import (
	"github.com/tliron/commonlog"
	"golang.org/x/text/unicode/norm"

	"spvdecomp/internal/diag"
	"spvdecomp/internal/spirv"
)

var log = commonlog.GetLogger("spvdecomp.decomp")

// builderState is one of outsideFunction, insideFunction or finished.
type builderState interface{ isBuilderState() }

type outsideFunction struct{}

type insideFunction struct{ fn *Function }

type finished struct{}

func (outsideFunction) isBuilderState() {}
func (insideFunction) isBuilderState() {}
func (finished) isBuilderState() {}

// BuildOptions configures a Builder.
type BuildOptions struct {
	// Policy applies to type resolution of struct members during the pass.
	Policy Policy
	// MaxDiagnostics caps the module's diagnostics bag; <= 0 means no cap.
	MaxDiagnostics int
}

// Builder assembles a Module from an instruction stream in a single pass.
// It implements spirv.Consumer.
type Builder struct {
	m     *Module
	state builderState
	opts  BuildOptions
}

// NewBuilder returns a builder positioned outside any function.
func NewBuilder(opts BuildOptions) *Builder {
	return &Builder{
		m:     newModule(opts.MaxDiagnostics),
		state: outsideFunction{},
		opts:  opts,
	}
}

// Build replays a recorded stream into a fresh builder and finishes it.
func Build(s *spirv.Stream, opts BuildOptions) (*Module, error) {
	b := NewBuilder(opts)
	if err := s.Replay(b); err != nil {
		return nil, err
	}
	return b.Finish()
}

func (b *Builder) OnHeader(h spirv.Header) error {
	if _, done := b.state.(finished); done {
		return errFinished()
	}
	if b.m.hasHeader {
		return structural(diag.BldDuplicateHeader, 0, 0, "module header delivered twice")
	}
	b.m.header = h
	b.m.hasHeader = true
	log.Debugf("header: %s", h)
	return nil
}

func (b *Builder) OnInstruction(inst spirv.Instruction) error {
	in := &inst
	var err error
	switch st := b.state.(type) {
	case finished:
		return errFinished()
	case outsideFunction:
		err = b.moduleScope(in)
	case insideFunction:
		err = b.functionScope(st.fn, in)
	}
	if err != nil {
		return err
	}
	return b.record(in)
}

// Finish hands the module over. The builder rejects all input afterwards.
func (b *Builder) Finish() (*Module, error) {
	switch st := b.state.(type) {
	case finished:
		return nil, errFinished()
	case insideFunction:
		return nil, structural(diag.BldUnterminatedFunction, st.fn.ID, spirv.OpFunction,
			"function %s (%%%d) opened at instruction %d is never closed", b.m.Name(st.fn.ID), st.fn.ID, st.fn.Inst)
	}
	m := b.m
	b.m = nil
	b.state = finished{}
	log.Debugf("module built: %d functions, %d ids, %d structs", len(m.funcs), len(m.index), len(m.structs))
	return m, nil
}

func errFinished() *Error {
	return structural(diag.BldFinished, 0, 0, "builder already finished")
}

func (b *Builder) moduleScope(in *spirv.Instruction) error {
	switch in.Op {
	case spirv.OpName:
		id, okID := in.Operand(0)
		name, okName := in.Operand(1)
		if okID && okName && id.IsID() && name.Kind == spirv.OperandLiteralString {
			b.m.names[id.ID] = norm.NFC.String(name.Str)
		}
	case spirv.OpMemberName:
		id, okID := in.Operand(0)
		idx, okIdx := in.Operand(1)
		name, okName := in.Operand(2)
		if okID && okIdx && okName && id.IsID() && idx.Kind == spirv.OperandLiteralInt32 &&
			name.Kind == spirv.OperandLiteralString {
			b.m.members[memberKey{typeID: id.ID, index: uint32(idx.Bits)}] = norm.NFC.String(name.Str)
		}
	case spirv.OpTypeStruct:
		return b.declareStruct(in)
	case spirv.OpFunction:
		b.state = insideFunction{fn: &Function{ID: in.Result, ResultType: in.ResultType, Inst: in.Index}}
	case spirv.OpFunctionEnd:
		return structural(diag.BldStrayFunctionEnd, 0, in.Op,
			"OpFunctionEnd at instruction %d without an open function", in.Index)
	}
	return nil
}

func (b *Builder) functionScope(fn *Function, in *spirv.Instruction) error {
	switch in.Op {
	case spirv.OpLabel:
		fn.Blocks = append(fn.Blocks, Block{Label: in.Result})
	case spirv.OpFunctionParameter:
		fn.Params = append(fn.Params, in.Result)
		diag.ReportWarning(diag.BagReporter{Bag: b.m.diags}, diag.BldUnsupportedParameter, spanOf(in),
			"parameter "+b.m.Name(in.Result)+" of function "+b.m.Name(fn.ID)+" is dropped").
			WithNote(diag.Span{Inst: fn.Inst, ID: fn.ID}, "function declared here").
			Emit()
		log.Debugf("dropped parameter %%%d of %s", in.Result, b.m.Name(fn.ID))
	case spirv.OpFunctionEnd:
		b.m.funcs = append(b.m.funcs, fn)
		b.state = outsideFunction{}
	case spirv.OpFunction:
		return structural(diag.BldNestedFunction, in.Result, in.Op,
			"function %%%d opened at instruction %d while function %s is open", in.Result, in.Index, b.m.Name(fn.ID))
	default:
		if len(fn.Blocks) == 0 {
			return structural(diag.BldInstrOutsideBlock, in.Result, in.Op,
				"%s at instruction %d precedes the first label of function %s", in.Op, in.Index, b.m.Name(fn.ID))
		}
		last := &fn.Blocks[len(fn.Blocks)-1]
		last.Instructions = append(last.Instructions, in)
	}
	return nil
}

func (b *Builder) record(in *spirv.Instruction) error {
	if in.Result == 0 {
		return nil
	}
	if prev, dup := b.m.index[in.Result]; dup {
		return structural(diag.BldDuplicateResult, in.Result, in.Op,
			"%%%d defined by %s at instruction %d is redefined by %s at instruction %d",
			in.Result, prev.Op, prev.Index, in.Op, in.Index)
	}
	b.m.index[in.Result] = in
	return nil
}

// declareStruct renders a struct type in member-index order, skipping
// members without a recorded name.
func (b *Builder) declareStruct(in *spirv.Instruction) error {
	rep := diag.BagReporter{Bag: b.m.diags}
	res := newResolver(b.m, rep)
	res.at = spanOf(in)

	decl := StructDecl{ID: in.Result, Name: b.m.Name(in.Result)}
	for i, o := range in.Operands {
		idx := uint32(i)
		name, ok := b.m.MemberName(in.Result, idx)
		if !ok || !o.IsID() {
			continue
		}
		ty, err := res.ResolveType(o.ID)
		if err != nil {
			if ty, err = b.opts.Policy.apply(rep, res.at, err); err != nil {
				return err
			}
		}
		decl.Members = append(decl.Members, StructMember{Index: idx, Name: name, Type: ty})
	}
	b.m.structs = append(b.m.structs, decl)
	return nil
}

func spanOf(in *spirv.Instruction) diag.Span {
	return diag.Span{Inst: in.Index, Offset: in.Offset, ID: in.Result}
}
