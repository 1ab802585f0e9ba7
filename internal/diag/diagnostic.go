package diag

import "fmt"

// Span locates a finding in the instruction stream.
type Span struct {
	// Inst is the ordinal of the instruction in its stream.
	Inst uint32
	// Offset is the word offset of the instruction, 0 when unknown.
	Offset uint32
	// ID is the id the finding is about, 0 when none.
	ID uint32
}

func (s Span) String() string {
	out := fmt.Sprintf("inst %d", s.Inst)
	if s.Offset != 0 {
		out += fmt.Sprintf(" @word %d", s.Offset)
	}
	if s.ID != 0 {
		out += fmt.Sprintf(" (%%%d)", s.ID)
	}
	return out
}

type Note struct {
	Span Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Span
	Notes    []Note
}

func New(sev Severity, code Code, primary Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
