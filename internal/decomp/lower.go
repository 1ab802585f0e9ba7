package decomp

import (
	"strings"

	"spvdecomp/internal/diag"
	"spvdecomp/internal/spirv"
)

var binaryOperators = map[spirv.Op]string{
	spirv.OpIAdd:              "+",
	spirv.OpFAdd:              "+",
	spirv.OpISub:              "-",
	spirv.OpFSub:              "-",
	spirv.OpIMul:              "*",
	spirv.OpFMul:              "*",
	spirv.OpUDiv:              "/",
	spirv.OpSDiv:              "/",
	spirv.OpFDiv:              "/",
	spirv.OpUMod:              "%",
	spirv.OpSRem:              "%",
	spirv.OpSMod:              "%",
	spirv.OpFRem:              "%",
	spirv.OpFMod:              "%",
	spirv.OpBitwiseAnd:        "&",
	spirv.OpBitwiseOr:         "|",
	spirv.OpBitwiseXor:        "^",
	spirv.OpShiftLeftLogical:  "<<",
	spirv.OpShiftRightLogical: ">>",
	spirv.OpShiftRightArith:   ">>",
	spirv.OpIEqual:            "==",
	spirv.OpLogicalEqual:      "==",
	spirv.OpFOrdEqual:         "==",
	spirv.OpINotEqual:         "!=",
	spirv.OpLogicalNotEqual:   "!=",
	spirv.OpULessThan:         "<",
	spirv.OpSLessThan:         "<",
	spirv.OpULessThanEqual:    "<=",
	spirv.OpSLessThanEqual:    "<=",
	spirv.OpUGreaterThan:      ">",
	spirv.OpSGreaterThan:      ">",
	spirv.OpUGreaterThanEqual: ">=",
	spirv.OpSGreaterThanEqual: ">=",
	spirv.OpLogicalAnd:        "&&",
	spirv.OpLogicalOr:         "||",
}

var unaryOperators = map[spirv.Op]string{
	spirv.OpSNegate:    "-",
	spirv.OpFNegate:    "-",
	spirv.OpNot:        "!",
	spirv.OpLogicalNot: "!",
}

// lowerer turns one instruction into at most one statement line.
type lowerer struct {
	*Resolver
	dialect Dialect
	policy  Policy
}

// operand resolves with the policy applied: degradable failures become an
// inline placeholder.
func (l *lowerer) operand(s string, err error) (string, error) {
	if err == nil {
		return s, nil
	}
	return l.policy.apply(l.rep, l.at, err)
}

func (l *lowerer) value(in *spirv.Instruction, i int) (string, error) {
	o, ok := in.Operand(i)
	if !ok {
		return "", structural(0, in.Result, in.Op, "%s at instruction %d lacks operand %d", in.Op, in.Index, i)
	}
	return l.operand(l.ResolvePlace(o))
}

// lower returns the statement for in, or ok=false when in produces none.
func (l *lowerer) lower(in *spirv.Instruction) (string, bool, error) {
	if sym, isBin := binaryOperators[in.Op]; isBin {
		lhs, err := l.value(in, 0)
		if err != nil {
			return "", false, err
		}
		rhs, err := l.value(in, 1)
		if err != nil {
			return "", false, err
		}
		return l.dialect.bindStmt(l.m.Name(in.Result), lhs+" "+sym+" "+rhs), true, nil
	}
	if sym, isUnary := unaryOperators[in.Op]; isUnary {
		v, err := l.value(in, 0)
		if err != nil {
			return "", false, err
		}
		if strings.HasPrefix(v, sym) {
			// "--x" would read as a decrement.
			v = "(" + v + ")"
		}
		return l.dialect.bindStmt(l.m.Name(in.Result), sym+v), true, nil
	}

	switch in.Op {
	case spirv.OpLoad, spirv.OpCopyObject:
		src, err := l.value(in, 0)
		if err != nil {
			return "", false, err
		}
		return l.dialect.bindStmt(l.m.Name(in.Result), src), true, nil

	case spirv.OpStore:
		src, err := l.value(in, 1)
		if err != nil {
			return "", false, err
		}
		target, ok := in.Operand(0)
		if !ok {
			return "", false, structural(0, 0, in.Op, "OpStore at instruction %d has no target", in.Index)
		}
		dst, err := l.operand(l.ResolveBoundValue(target))
		if err != nil {
			return "", false, err
		}
		return dst + " = " + src + ";", true, nil

	case spirv.OpAccessChain, spirv.OpInBoundsAccessChain:
		return "", false, nil

	case spirv.OpVariable:
		return l.variable(in)

	case spirv.OpFunctionCall:
		return l.call(in)

	case spirv.OpReturn:
		return "return;", true, nil

	case spirv.OpReturnValue:
		v, err := l.value(in, 0)
		if err != nil {
			return "", false, err
		}
		return "return " + v + ";", true, nil
	}

	diag.ReportWarning(l.rep, diag.LowUnhandledInstruction, l.at, "no lowering for "+in.Op.String()).Emit()
	return "// unhandled inst " + in.Op.String(), true, nil
}

func (l *lowerer) variable(in *spirv.Instruction) (string, bool, error) {
	name := l.m.Name(in.Result)
	sc, ok := in.Operand(0)
	class, isClass := sc.StorageClass()
	if !ok || !isClass || class != spirv.StorageFunction {
		scErr := &Error{
			Kind: KindUnexpectedStorageClass, ID: in.Result, Op: in.Op,
			Msg: "variable " + name + " has storage class " + sc.String() + ", want Function",
		}
		text, err := l.policy.apply(l.rep, l.at, scErr)
		if err != nil {
			return "", false, err
		}
		return "// " + text, true, nil
	}

	typ, err := l.operand(l.variableType(in))
	if err != nil {
		return "", false, err
	}
	init := ""
	if _, hasInit := in.Operand(1); hasInit {
		if init, err = l.value(in, 1); err != nil {
			return "", false, err
		}
	}
	return l.dialect.declareStmt(name, typ, init), true, nil
}

func (l *lowerer) variableType(in *spirv.Instruction) (string, error) {
	pointee, err := l.DerefPointer(in.ResultType)
	if err != nil {
		return "", err
	}
	return l.ResolveType(pointee)
}

func (l *lowerer) call(in *spirv.Instruction) (string, bool, error) {
	callee, ok := in.Operand(0)
	if !ok || !callee.IsID() {
		return "", false, structural(0, in.Result, in.Op, "OpFunctionCall at instruction %d has no callee", in.Index)
	}
	args := make([]string, 0, len(in.Operands)-1)
	for i := 1; i < len(in.Operands); i++ {
		a, err := l.value(in, i)
		if err != nil {
			return "", false, err
		}
		args = append(args, a)
	}
	expr := l.m.Name(callee.ID) + "(" + strings.Join(args, ", ") + ")"
	if ty, ok := l.m.Lookup(in.ResultType); ok && ty.Op == spirv.OpTypeVoid {
		return expr + ";", true, nil
	}
	return l.dialect.bindStmt(l.m.Name(in.Result), expr), true, nil
}
