package decomp

import (
	"errors"
	"fmt"

	"spvdecomp/internal/diag"
	"spvdecomp/internal/spirv"
)

// Kind is the closed set of resolution and structure failures.
type Kind uint8

const (
	KindMissingID Kind = iota + 1
	KindTypeMismatch
	KindUnexpectedStorageClass
	KindStructuralViolation
)

var kindNames = map[Kind]string{
	KindMissingID:              "missing-id",
	KindTypeMismatch:           "type-mismatch",
	KindUnexpectedStorageClass: "unexpected-storage-class",
	KindStructuralViolation:    "structural-violation",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind resolves the names used in configuration files.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown error kind %q", name)
}

var (
	ErrMissingID              = errors.New("missing id")
	ErrTypeMismatch           = errors.New("type mismatch")
	ErrUnexpectedStorageClass = errors.New("unexpected storage class")
	ErrStructuralViolation    = errors.New("structural violation")
)

func (k Kind) sentinel() error {
	switch k {
	case KindMissingID:
		return ErrMissingID
	case KindTypeMismatch:
		return ErrTypeMismatch
	case KindUnexpectedStorageClass:
		return ErrUnexpectedStorageClass
	case KindStructuralViolation:
		return ErrStructuralViolation
	}
	return nil
}

// Error is a typed engine failure. errors.Is matches it against the Err*
// sentinel of its kind.
type Error struct {
	Kind Kind
	// ID is the id the failure is about, 0 when none.
	ID uint32
	// Op is the opcode of the instruction involved, if any.
	Op  spirv.Op
	Msg string
	// Code refines the diagnostic code; zero means the default code of Kind.
	Code diag.Code
}

func (e *Error) Error() string {
	return e.Kind.sentinel().Error() + ": " + e.Msg
}

func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// DiagCode returns the diagnostic code reported for e.
func (e *Error) DiagCode() diag.Code {
	if e.Code != 0 {
		return e.Code
	}
	switch e.Kind {
	case KindMissingID:
		return diag.ResMissingID
	case KindTypeMismatch:
		return diag.ResTypeMismatch
	case KindUnexpectedStorageClass:
		return diag.ResUnexpectedStorage
	default:
		return diag.ResStructuralViolation
	}
}

// KindOf extracts the kind of an engine error anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func missingID(id uint32, format string, args ...any) *Error {
	return &Error{Kind: KindMissingID, ID: id, Msg: fmt.Sprintf(format, args...)}
}

func typeMismatch(id uint32, op spirv.Op, format string, args ...any) *Error {
	return &Error{Kind: KindTypeMismatch, ID: id, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func structural(code diag.Code, id uint32, op spirv.Op, format string, args ...any) *Error {
	return &Error{Kind: KindStructuralViolation, ID: id, Op: op, Code: code, Msg: fmt.Sprintf(format, args...)}
}
