package decomp

import (
	"slices"
	"strconv"

	"spvdecomp/internal/diag"
	"spvdecomp/internal/spirv"
)

// Module is a completed, read-only decompilation input. It is produced once by
// Builder.Finish and is safe for concurrent readers.
type Module struct {
	header    spirv.Header
	hasHeader bool

	names   map[uint32]string
	members map[memberKey]string
	index   map[uint32]*spirv.Instruction

	structs []StructDecl
	funcs   []*Function

	diags *diag.Bag
}

type memberKey struct {
	typeID uint32
	index  uint32
}

// Function is one OpFunction .. OpFunctionEnd range. Treat it as read-only.
type Function struct {
	ID         uint32
	ResultType uint32
	// Params holds the ids of dropped OpFunctionParameter instructions.
	Params []uint32
	Blocks []Block
	// Inst is the stream ordinal of the OpFunction instruction.
	Inst uint32
}

// Block is a basic block: its label id and every following instruction up to
// the next label or the end of the function, label excluded.
type Block struct {
	Label        uint32
	Instructions []*spirv.Instruction
}

// StructDecl is a struct type rendered during the module-scope pass.
type StructDecl struct {
	ID      uint32
	Name    string
	Members []StructMember
}

type StructMember struct {
	Index uint32
	Name  string
	Type  string
}

// NamedID is one Name Table entry.
type NamedID struct {
	ID   uint32
	Name string
}

func newModule(maxDiagnostics int) *Module {
	return &Module{
		names:   make(map[uint32]string),
		members: make(map[memberKey]string),
		index:   make(map[uint32]*spirv.Instruction),
		diags:   diag.NewBag(maxDiagnostics),
	}
}

// Header returns the module header and whether one was delivered.
func (m *Module) Header() (spirv.Header, bool) { return m.header, m.hasHeader }

// Name returns the declared name of id, or the synthesized "id_<N>".
func (m *Module) Name(id uint32) string {
	if name, ok := m.names[id]; ok {
		return name
	}
	return "id_" + strconv.FormatUint(uint64(id), 10)
}

// DeclaredName returns the name recorded by OpName, if any.
func (m *Module) DeclaredName(id uint32) (string, bool) {
	name, ok := m.names[id]
	return name, ok
}

// MemberName returns the OpMemberName of member index of the aggregate typeID.
func (m *Module) MemberName(typeID, index uint32) (string, bool) {
	name, ok := m.members[memberKey{typeID: typeID, index: index}]
	return name, ok
}

// Lookup returns the instruction defining id.
func (m *Module) Lookup(id uint32) (*spirv.Instruction, bool) {
	inst, ok := m.index[id]
	return inst, ok
}

// Names returns the Name Table sorted by id.
func (m *Module) Names() []NamedID {
	out := make([]NamedID, 0, len(m.names))
	for id, name := range m.names {
		out = append(out, NamedID{ID: id, Name: name})
	}
	slices.SortFunc(out, func(a, b NamedID) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

// Structs returns the struct declarations in declaration order.
func (m *Module) Structs() []StructDecl { return slices.Clone(m.structs) }

// Functions returns the completed functions in completion order.
func (m *Module) Functions() []*Function { return slices.Clone(m.funcs) }

// Diagnostics returns the findings recorded while building.
func (m *Module) Diagnostics() []diag.Diagnostic { return slices.Clone(m.diags.Items()) }
