package decomp

import (
	"fmt"
	"strconv"

	"spvdecomp/internal/diag"
	"spvdecomp/internal/spirv"
)

// Resolver renders types, constants and operand references against a
// Module. A Resolver is not safe for concurrent use; renderers create one
// per function.
type Resolver struct {
	m   *Module
	rep diag.Reporter
	// at is the instruction currently being rendered; warnings point at it.
	at diag.Span
}

// NewResolver returns a resolver that discards best-effort warnings.
func NewResolver(m *Module) *Resolver { return newResolver(m, nil) }

func newResolver(m *Module, rep diag.Reporter) *Resolver {
	if rep == nil {
		rep = diag.NopReporter{}
	}
	return &Resolver{m: m, rep: rep}
}

func (r *Resolver) spanFor(id uint32) diag.Span {
	sp := r.at
	sp.ID = id
	return sp
}

// ResolveType renders the type declared by id.
func (r *Resolver) ResolveType(id uint32) (string, error) {
	return r.resolveType(id, make(map[uint32]bool))
}

func (r *Resolver) resolveType(id uint32, path map[uint32]bool) (string, error) {
	inst, ok := r.m.Lookup(id)
	if !ok {
		return "", missingID(id, "type %%%d is not declared", id)
	}
	if !inst.Op.IsType() {
		return "", typeMismatch(id, inst.Op, "%%%d is %s, not a type", id, inst.Op)
	}
	if path[id] {
		return "", structural(diag.ResCyclicType, id, inst.Op, "type %%%d refers to itself", id)
	}
	path[id] = true
	defer delete(path, id)

	switch inst.Op {
	case spirv.OpTypeVoid:
		return "()", nil
	case spirv.OpTypeBool:
		return "bool", nil
	case spirv.OpTypeInt:
		width, signed, err := intParams(inst)
		if err != nil {
			return "", err
		}
		if signed {
			return "i" + strconv.FormatUint(uint64(width), 10), nil
		}
		return "u" + strconv.FormatUint(uint64(width), 10), nil
	case spirv.OpTypeFloat:
		width, err := literalParam(inst, 0)
		if err != nil {
			return "", err
		}
		return "f" + strconv.FormatUint(uint64(width), 10), nil
	case spirv.OpTypeVector:
		elem, err := r.elementType(inst, 0, path)
		if err != nil {
			return "", err
		}
		n, err := literalParam(inst, 1)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("[%s; %d]", elem, n), nil
	case spirv.OpTypeArray:
		elem, err := r.elementType(inst, 0, path)
		if err != nil {
			return "", err
		}
		lenID, err := idParam(inst, 1)
		if err != nil {
			return "", err
		}
		n, err := r.constantValue(lenID)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("[%s; %d]", elem, n), nil
	case spirv.OpTypeRuntimeArray:
		elem, err := r.elementType(inst, 0, path)
		if err != nil {
			return "", err
		}
		return "*mut " + elem, nil
	case spirv.OpTypePointer:
		pointee, err := r.elementType(inst, 1, path)
		if err != nil {
			return "", err
		}
		return "*mut " + pointee, nil
	case spirv.OpTypeStruct:
		return r.m.Name(id), nil
	}

	diag.ReportWarning(r.rep, diag.LowUnhandledType, r.spanFor(id), "no rendering for "+inst.Op.String()).Emit()
	return "[unhandled type " + inst.Op.String() + "]", nil
}

func (r *Resolver) elementType(inst *spirv.Instruction, i int, path map[uint32]bool) (string, error) {
	id, err := idParam(inst, i)
	if err != nil {
		return "", err
	}
	return r.resolveType(id, path)
}

// ResolveConstant renders a literal of the type typeID, suffixed with the
// type's signedness and width ("5u32", "-1i32", "0.5f32").
func (r *Resolver) ResolveConstant(typeID uint32, lit spirv.Operand) (string, error) {
	ty, ok := r.m.Lookup(typeID)
	if !ok {
		return "", missingID(typeID, "constant type %%%d is not declared", typeID)
	}
	switch ty.Op {
	case spirv.OpTypeInt:
		if !isIntLiteral(lit) {
			break
		}
		width, signed, err := intParams(ty)
		if err != nil {
			return "", err
		}
		suffix := "u"
		if signed {
			suffix = "i"
		}
		return formatInt(lit, signed) + suffix + strconv.FormatUint(uint64(width), 10), nil
	case spirv.OpTypeFloat:
		width, err := literalParam(ty, 0)
		if err != nil {
			return "", err
		}
		f, isFloat := lit.Float()
		if !isFloat {
			return "", typeMismatch(typeID, ty.Op, "no rendering for a %s literal of %s %%%d", lit.Kind, ty.Op, typeID)
		}
		prec := 32
		if lit.Kind == spirv.OperandLiteralFloat64 {
			prec = 64
		}
		text := strconv.FormatFloat(f, 'g', -1, prec)
		return text + "f" + strconv.FormatUint(uint64(width), 10), nil
	}
	return "", typeMismatch(typeID, ty.Op, "no rendering for a %s literal of %s %%%d", lit.Kind, ty.Op, typeID)
}

// DerefPointer returns the pointee type id of the pointer type id.
func (r *Resolver) DerefPointer(id uint32) (uint32, error) {
	inst, ok := r.m.Lookup(id)
	if !ok {
		return 0, missingID(id, "pointer type %%%d is not declared", id)
	}
	if inst.Op != spirv.OpTypePointer {
		return 0, typeMismatch(id, inst.Op, "%%%d is %s, not a pointer type", id, inst.Op)
	}
	return idParam(inst, 1)
}

// constantValue returns the raw value of an integer OpConstant.
func (r *Resolver) constantValue(id uint32) (uint64, error) {
	inst, ok := r.m.Lookup(id)
	if !ok {
		return 0, missingID(id, "constant %%%d is not defined", id)
	}
	if inst.Op != spirv.OpConstant {
		return 0, typeMismatch(id, inst.Op, "%%%d is %s, not an integer constant", id, inst.Op)
	}
	lit, ok := inst.Operand(0)
	if !ok || !isIntLiteral(lit) {
		return 0, typeMismatch(id, inst.Op, "%%%d is not an integer constant", id)
	}
	return lit.Bits, nil
}

func isIntLiteral(o spirv.Operand) bool {
	return o.Kind == spirv.OperandLiteralInt32 || o.Kind == spirv.OperandLiteralInt64
}

// formatInt reads single-word literals as 32-bit two's complement when signed.
func formatInt(lit spirv.Operand, signed bool) string {
	switch {
	case !signed:
		return strconv.FormatUint(lit.Bits, 10)
	case lit.Kind == spirv.OperandLiteralInt64:
		return strconv.FormatInt(int64(lit.Bits), 10)
	default:
		return strconv.FormatInt(int64(int32(uint32(lit.Bits))), 10)
	}
}

func intParams(inst *spirv.Instruction) (uint32, bool, error) {
	width, err := literalParam(inst, 0)
	if err != nil {
		return 0, false, err
	}
	sign, err := literalParam(inst, 1)
	if err != nil {
		return 0, false, err
	}
	return width, sign != 0, nil
}

func literalParam(inst *spirv.Instruction, i int) (uint32, error) {
	o, ok := inst.Operand(i)
	if !ok || o.Kind != spirv.OperandLiteralInt32 {
		return 0, typeMismatch(inst.Result, inst.Op, "operand %d of %s %%%d is not a literal", i, inst.Op, inst.Result)
	}
	return uint32(o.Bits), nil
}

func idParam(inst *spirv.Instruction, i int) (uint32, error) {
	o, ok := inst.Operand(i)
	if !ok || !o.IsID() {
		return 0, typeMismatch(inst.Result, inst.Op, "operand %d of %s %%%d is not an id", i, inst.Op, inst.Result)
	}
	return o.ID, nil
}
