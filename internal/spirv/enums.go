package spirv

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// EnumKind identifies the operand enumeration an enum operand belongs to.
type EnumKind uint8

const (
	EnumStorageClass EnumKind = iota + 1
	EnumExecutionModel
	EnumAddressingModel
	EnumMemoryModel
	EnumExecutionMode
	EnumCapability
	EnumDecoration
	EnumFunctionControl
	EnumMemoryAccess
	EnumSelectionControl
	EnumLoopControl
	EnumSourceLanguage
)

// StorageClass is the storage class of a pointer type or variable.
type StorageClass uint32

const (
	StorageUniformConstant StorageClass = 0
	StorageInput           StorageClass = 1
	StorageUniform         StorageClass = 2
	StorageOutput          StorageClass = 3
	StorageWorkgroup       StorageClass = 4
	StorageCrossWorkgroup  StorageClass = 5
	StoragePrivate         StorageClass = 6
	StorageFunction        StorageClass = 7
	StorageGeneric         StorageClass = 8
	StoragePushConstant    StorageClass = 9
	StorageAtomicCounter   StorageClass = 10
	StorageImage           StorageClass = 11
	StorageStorageBuffer   StorageClass = 12
)

func (sc StorageClass) String() string {
	return EnumName(EnumStorageClass, uint32(sc))
}

type enumTable struct {
	name   string
	mask   bool
	values map[uint32]string
}

var enumTables = map[EnumKind]enumTable{
	EnumStorageClass: {name: "StorageClass", values: map[uint32]string{
		0: "UniformConstant", 1: "Input", 2: "Uniform", 3: "Output", 4: "Workgroup",
		5: "CrossWorkgroup", 6: "Private", 7: "Function", 8: "Generic", 9: "PushConstant",
		10: "AtomicCounter", 11: "Image", 12: "StorageBuffer",
	}},
	EnumExecutionModel: {name: "ExecutionModel", values: map[uint32]string{
		0: "Vertex", 1: "TessellationControl", 2: "TessellationEvaluation", 3: "Geometry",
		4: "Fragment", 5: "GLCompute", 6: "Kernel",
	}},
	EnumAddressingModel: {name: "AddressingModel", values: map[uint32]string{
		0: "Logical", 1: "Physical32", 2: "Physical64", 5348: "PhysicalStorageBuffer64",
	}},
	EnumMemoryModel: {name: "MemoryModel", values: map[uint32]string{
		0: "Simple", 1: "GLSL450", 2: "OpenCL", 3: "Vulkan",
	}},
	EnumExecutionMode: {name: "ExecutionMode", values: map[uint32]string{
		7: "OriginUpperLeft", 8: "OriginLowerLeft", 9: "EarlyFragmentTests", 17: "LocalSize",
	}},
	EnumCapability: {name: "Capability", values: map[uint32]string{
		0: "Matrix", 1: "Shader", 2: "Geometry", 3: "Tessellation", 4: "Addresses",
		5: "Linkage", 6: "Kernel", 9: "Float16", 10: "Float64", 11: "Int64", 22: "Int16",
		39: "Int8",
	}},
	EnumDecoration: {name: "Decoration", values: map[uint32]string{
		0: "RelaxedPrecision", 1: "SpecId", 2: "Block", 3: "BufferBlock", 4: "RowMajor",
		5: "ColMajor", 6: "ArrayStride", 7: "MatrixStride", 8: "GLSLShared", 9: "GLSLPacked",
		10: "CPacked", 11: "BuiltIn", 13: "NoPerspective", 14: "Flat", 15: "Patch",
		16: "Centroid", 17: "Sample", 18: "Invariant", 19: "Restrict", 20: "Aliased",
		21: "Volatile", 22: "Constant", 23: "Coherent", 24: "NonWritable", 25: "NonReadable",
		30: "Location", 33: "Binding", 34: "DescriptorSet", 35: "Offset",
	}},
	EnumFunctionControl: {name: "FunctionControl", mask: true, values: map[uint32]string{
		1: "Inline", 2: "DontInline", 4: "Pure", 8: "Const",
	}},
	EnumMemoryAccess: {name: "MemoryAccess", mask: true, values: map[uint32]string{
		1: "Volatile", 2: "Aligned", 4: "Nontemporal",
	}},
	EnumSelectionControl: {name: "SelectionControl", mask: true, values: map[uint32]string{
		1: "Flatten", 2: "DontFlatten",
	}},
	EnumLoopControl: {name: "LoopControl", mask: true, values: map[uint32]string{
		1: "Unroll", 2: "DontUnroll",
	}},
	EnumSourceLanguage: {name: "SourceLanguage", values: map[uint32]string{
		0: "Unknown", 1: "ESSL", 2: "GLSL", 3: "OpenCL_C", 4: "OpenCL_CPP", 5: "HLSL",
	}},
}

func (k EnumKind) String() string {
	if t, ok := enumTables[k]; ok {
		return t.name
	}
	return "Enum(" + strconv.Itoa(int(k)) + ")"
}

// EnumName renders an enum value. Mask enumerations render set bits joined
// with '|' and zero as "None"; unknown values fall back to the number.
func EnumName(kind EnumKind, v uint32) string {
	t, ok := enumTables[kind]
	if !ok {
		return strconv.FormatUint(uint64(v), 10)
	}
	if !t.mask {
		if name, ok := t.values[v]; ok {
			return name
		}
		return strconv.FormatUint(uint64(v), 10)
	}
	if v == 0 {
		return "None"
	}
	bits := make([]uint32, 0, len(t.values))
	for bit := range t.values {
		bits = append(bits, bit)
	}
	sort.Slice(bits, func(i, j int) bool { return bits[i] < bits[j] })
	var parts []string
	rest := v
	for _, bit := range bits {
		if v&bit != 0 {
			parts = append(parts, t.values[bit])
			rest &^= bit
		}
	}
	if rest != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(parts, "|")
}

// ParseEnum is the inverse of EnumName. Numeric spellings are accepted for
// every kind.
func ParseEnum(kind EnumKind, s string) (uint32, error) {
	if n, err := strconv.ParseUint(s, 0, 32); err == nil {
		return uint32(n), nil
	}
	t, ok := enumTables[kind]
	if !ok {
		return 0, fmt.Errorf("unknown enum kind %d", kind)
	}
	lookup := func(name string) (uint32, bool) {
		for v, n := range t.values {
			if n == name {
				return v, true
			}
		}
		return 0, false
	}
	if !t.mask {
		if v, ok := lookup(s); ok {
			return v, nil
		}
		return 0, fmt.Errorf("unknown %s %q", t.name, s)
	}
	if s == "None" {
		return 0, nil
	}
	var out uint32
	for _, part := range strings.Split(s, "|") {
		v, ok := lookup(part)
		if !ok {
			return 0, fmt.Errorf("unknown %s bit %q", t.name, part)
		}
		out |= v
	}
	return out, nil
}
