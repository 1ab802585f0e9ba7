package decomp

import (
	"fmt"
	"strconv"
	"strings"

	"spvdecomp/internal/diag"
	"spvdecomp/internal/spirv"
)

// ResolvePlace renders an operand that is read from. Variables and access
// chains render as places, constants inline, and anything else as the name an
// earlier statement is expected to have bound.
func (r *Resolver) ResolvePlace(o spirv.Operand) (string, error) {
	if !o.IsID() {
		return r.unhandledOperand(o), nil
	}
	if place, ok, err := r.place(o.ID, nil); err != nil || ok {
		return place, err
	}
	if inst, ok := r.m.Lookup(o.ID); ok {
		switch inst.Op {
		case spirv.OpConstant:
			lit, ok := inst.Operand(0)
			if !ok {
				return "", typeMismatch(o.ID, inst.Op, "constant %%%d has no literal", o.ID)
			}
			return r.ResolveConstant(inst.ResultType, lit)
		case spirv.OpConstantTrue:
			return "true", nil
		case spirv.OpConstantFalse:
			return "false", nil
		}
	}
	return r.m.Name(o.ID), nil
}

// ResolveBoundValue renders the target of an assignment. The target must be
// defined; a defined id that is not a place renders as a placeholder.
func (r *Resolver) ResolveBoundValue(o spirv.Operand) (string, error) {
	if !o.IsID() {
		return r.unhandledOperand(o), nil
	}
	if place, ok, err := r.place(o.ID, nil); err != nil || ok {
		return place, err
	}
	inst, ok := r.m.Lookup(o.ID)
	if !ok {
		return "", missingID(o.ID, "assignment target %%%d is not defined", o.ID)
	}
	diag.ReportWarning(r.rep, diag.LowUnhandledOpcode, r.spanFor(o.ID),
		"no place rendering for "+inst.Op.String()).Emit()
	return "[unhandled " + inst.Op.String() + "]", nil
}

func (r *Resolver) unhandledOperand(o spirv.Operand) string {
	diag.ReportWarning(r.rep, diag.LowUnhandledOperand, r.at, "no rendering for "+o.Kind.String()+" operand").Emit()
	return fmt.Sprintf("[unhandled %s(%s)]", o.Kind, o)
}

// place reports whether id denotes a storage location and renders it.
// chain holds the access chains on the current path.
func (r *Resolver) place(id uint32, chain map[uint32]bool) (string, bool, error) {
	inst, ok := r.m.Lookup(id)
	if !ok {
		return "", false, nil
	}
	switch inst.Op {
	case spirv.OpVariable:
		return r.m.Name(id), true, nil
	case spirv.OpAccessChain, spirv.OpInBoundsAccessChain:
		if chain == nil {
			chain = make(map[uint32]bool)
		}
		if chain[id] {
			return "", false, structural(0, id, inst.Op, "access chain %%%d is based on itself", id)
		}
		chain[id] = true
		s, err := r.accessChain(inst, chain)
		if err != nil {
			return "", false, err
		}
		return s, true, nil
	}
	return "", false, nil
}

// accessChain composes the base place with one selector per index, walking
// the pointee type of the base: ".member" for structs and "[index]" for
// arrays, vectors, matrices and pointers.
func (r *Resolver) accessChain(inst *spirv.Instruction, chain map[uint32]bool) (string, error) {
	baseID, err := idParam(inst, 0)
	if err != nil {
		return "", err
	}
	base, isPlace, err := r.place(baseID, chain)
	if err != nil {
		return "", err
	}
	if !isPlace {
		base = r.m.Name(baseID)
	}
	baseInst, ok := r.m.Lookup(baseID)
	if !ok {
		return "", missingID(baseID, "base %%%d of access chain %%%d is not defined", baseID, inst.Result)
	}
	typeID, err := r.DerefPointer(baseInst.ResultType)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(base)
	for i, idx := range inst.Operands[1:] {
		if !idx.IsID() {
			return "", typeMismatch(inst.Result, inst.Op, "index %d of access chain %%%d is not an id", i, inst.Result)
		}
		ty, ok := r.m.Lookup(typeID)
		if !ok {
			return "", missingID(typeID, "type %%%d is not declared", typeID)
		}
		switch ty.Op {
		case spirv.OpTypeStruct:
			n, err := r.constantValue(idx.ID)
			if err != nil {
				return "", err
			}
			if n >= uint64(len(ty.Operands)) {
				return "", typeMismatch(typeID, ty.Op, "struct %s has no member %d", r.m.Name(typeID), n)
			}
			member, ok := r.m.MemberName(typeID, uint32(n))
			if !ok {
				member = "field" + strconv.FormatUint(n, 10)
			}
			sb.WriteString(".")
			sb.WriteString(member)
			if typeID, err = idParam(ty, int(n)); err != nil {
				return "", err
			}
		case spirv.OpTypeArray, spirv.OpTypeRuntimeArray, spirv.OpTypeVector, spirv.OpTypeMatrix, spirv.OpTypePointer:
			text, err := r.indexText(idx.ID)
			if err != nil {
				return "", err
			}
			sb.WriteString("[")
			sb.WriteString(text)
			sb.WriteString("]")
			elem := 0
			if ty.Op == spirv.OpTypePointer {
				elem = 1
			}
			if typeID, err = idParam(ty, elem); err != nil {
				return "", err
			}
		default:
			return "", typeMismatch(typeID, ty.Op, "access chain %%%d indexes into %s %%%d", inst.Result, ty.Op, typeID)
		}
	}
	return sb.String(), nil
}

// indexText renders an index operand; integer constants render as bare
// numbers.
func (r *Resolver) indexText(id uint32) (string, error) {
	if inst, ok := r.m.Lookup(id); ok && inst.Op == spirv.OpConstant {
		lit, okLit := inst.Operand(0)
		ty, okTy := r.m.Lookup(inst.ResultType)
		if okLit && okTy && ty.Op == spirv.OpTypeInt && isIntLiteral(lit) {
			_, signed, err := intParams(ty)
			if err != nil {
				return "", err
			}
			return formatInt(lit, signed), nil
		}
	}
	return r.ResolvePlace(spirv.IDRef(id))
}
