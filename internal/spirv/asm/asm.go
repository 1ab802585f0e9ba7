// Package asm reads and writes the textual form of SPIR-V modules:
//
//	%u32 = OpTypeInt 32 0
//	       OpStore %counter %sum
//
// Ids are written as %<number> or %<name>. Numbered ids keep their number;
// named ids are numbered in order of first appearance, after the largest
// explicit number. Text after ';' is a comment, except for a leading
// "; Version: X.Y" line which sets the module version.
package asm

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"spvdecomp/internal/spirv"
)

var asmLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "ID", Pattern: `%[A-Za-z0-9_.]+`},
	{Name: "Opcode", Pattern: `Op[A-Z][A-Za-z0-9]*`},
	{Name: "Float", Pattern: `[-+]?\d+(\.\d*([eE][-+]?\d+)?|[eE][-+]?\d+)`},
	{Name: "Int", Pattern: `[-+]?(0[xX][0-9a-fA-F]+|\d+)`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_|]*`},
	{Name: "Assign", Pattern: `=`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})

type asmLine struct {
	Result *string   `parser:"( @ID Assign )?"`
	Op     string    `parser:"@Opcode"`
	Args   []*asmArg `parser:"@@*"`
}

type asmArg struct {
	ID    *string `parser:"  @ID"`
	Str   *string `parser:"| @String"`
	Float *string `parser:"| @Float"`
	Int   *string `parser:"| @Int"`
	Word  *string `parser:"| @Ident"`
}

func (a *asmArg) String() string {
	switch {
	case a.ID != nil:
		return *a.ID
	case a.Str != nil:
		return *a.Str
	case a.Float != nil:
		return *a.Float
	case a.Int != nil:
		return *a.Int
	case a.Word != nil:
		return *a.Word
	}
	return "?"
}

var lineParser = participle.MustBuild[asmLine](
	participle.Lexer(asmLexer),
	participle.Elide("Whitespace"),
)

var versionComment = regexp.MustCompile(`^;\s*Version:\s*(\d+)\.(\d+)`)

type parsedLine struct {
	no   int
	line *asmLine
}

type numeric struct {
	float bool
	width uint64
}

type assembler struct {
	ids     map[string]uint32
	next    uint32
	numeric map[uint32]numeric
}

// Assemble parses the textual form read from r. name is used in error
// messages only.
func Assemble(name string, r io.Reader) (*spirv.Stream, error) {
	s := &spirv.Stream{Header: spirv.Header{Magic: spirv.Magic, Version: spirv.MakeVersion(1, 0)}}

	var lines []parsedLine
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	no := 0
	for sc.Scan() {
		no++
		text := strings.TrimSpace(sc.Text())
		if m := versionComment.FindStringSubmatch(text); m != nil && len(lines) == 0 {
			major, _ := strconv.ParseUint(m[1], 10, 8)
			minor, _ := strconv.ParseUint(m[2], 10, 8)
			s.Header.Version = spirv.MakeVersion(uint8(major), uint8(minor))
			continue
		}
		text = stripComment(text)
		if text == "" {
			continue
		}
		l, err := lineParser.ParseString(fmt.Sprintf("%s:%d", name, no), text)
		if err != nil {
			return nil, err
		}
		lines = append(lines, parsedLine{no: no, line: l})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	a := &assembler{ids: make(map[string]uint32), numeric: make(map[uint32]numeric)}
	a.assignIDs(lines)

	for i, pl := range lines {
		inst, err := a.instruction(pl.line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, pl.no, err)
		}
		inst.Index = uint32(i)
		s.Instructions = append(s.Instructions, inst)
	}
	s.Header.Bound = a.next
	return s, nil
}

// AssembleString is Assemble over an in-memory source.
func AssembleString(name, src string) (*spirv.Stream, error) {
	return Assemble(name, strings.NewReader(src))
}

func stripComment(text string) string {
	inString := false
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			if inString {
				i++
			}
		case '"':
			inString = !inString
		case ';':
			if !inString {
				return strings.TrimSpace(text[:i])
			}
		}
	}
	return text
}

// assignIDs fixes the number of every id spelled in the source.
func (a *assembler) assignIDs(lines []parsedLine) {
	var maxID uint32
	var named []string
	visit := func(tok string) {
		name := strings.TrimPrefix(tok, "%")
		if n, err := strconv.ParseUint(name, 10, 32); err == nil {
			a.ids[name] = uint32(n)
			if uint32(n) > maxID {
				maxID = uint32(n)
			}
			return
		}
		if _, seen := a.ids[name]; !seen {
			a.ids[name] = 0
			named = append(named, name)
		}
	}
	for _, pl := range lines {
		if pl.line.Result != nil {
			visit(*pl.line.Result)
		}
		for _, arg := range pl.line.Args {
			if arg.ID != nil {
				visit(*arg.ID)
			}
		}
	}
	next := maxID + 1
	for _, name := range named {
		a.ids[name] = next
		next++
	}
	a.next = next
}

func (a *assembler) id(tok string) uint32 {
	return a.ids[strings.TrimPrefix(tok, "%")]
}

func (a *assembler) instruction(l *asmLine) (spirv.Instruction, error) {
	op, ok := spirv.LookupOp(l.Op)
	if !ok {
		return spirv.Instruction{}, fmt.Errorf("unknown opcode %s", l.Op)
	}
	info, _ := spirv.Info(op)
	inst := spirv.Instruction{Op: op}

	if info.HasResult {
		if l.Result == nil {
			return inst, fmt.Errorf("%s needs a result id", op)
		}
		inst.Result = a.id(*l.Result)
	} else if l.Result != nil {
		return inst, fmt.Errorf("%s has no result id", op)
	}

	args := l.Args
	if info.HasType {
		if len(args) == 0 || args[0].ID == nil {
			return inst, fmt.Errorf("%s needs a result type id", op)
		}
		inst.ResultType = a.id(*args[0].ID)
		args = args[1:]
	}

	for n, spec := range info.Operands {
		switch spec.Quant {
		case spirv.One:
			if len(args) == 0 {
				return inst, fmt.Errorf("%s: missing operand %d", op, n)
			}
			o, err := a.operand(spec, &inst, args[0])
			if err != nil {
				return inst, fmt.Errorf("%s: operand %d: %w", op, n, err)
			}
			inst.Operands = append(inst.Operands, o)
			args = args[1:]
		case spirv.Optional:
			if len(args) == 0 || !fits(spec, args[0]) {
				continue
			}
			o, err := a.operand(spec, &inst, args[0])
			if err != nil {
				return inst, fmt.Errorf("%s: operand %d: %w", op, n, err)
			}
			inst.Operands = append(inst.Operands, o)
			args = args[1:]
		case spirv.Variadic:
			for len(args) > 0 && fits(spec, args[0]) {
				o, err := a.operand(spec, &inst, args[0])
				if err != nil {
					return inst, fmt.Errorf("%s: operand %d: %w", op, n, err)
				}
				inst.Operands = append(inst.Operands, o)
				args = args[1:]
			}
		}
	}
	if len(args) > 0 {
		return inst, fmt.Errorf("%s: unexpected operand %s", op, args[0])
	}

	switch op {
	case spirv.OpTypeInt:
		a.numeric[inst.Result] = numeric{width: inst.Operands[0].Bits}
	case spirv.OpTypeFloat:
		a.numeric[inst.Result] = numeric{float: true, width: inst.Operands[0].Bits}
	}
	return inst, nil
}

func fits(spec spirv.OperandSpec, arg *asmArg) bool {
	switch spec.Class {
	case spirv.ClassID:
		return arg.ID != nil
	case spirv.ClassLiteralInt:
		return arg.Int != nil
	case spirv.ClassLiteralString:
		return arg.Str != nil
	case spirv.ClassEnum:
		return arg.Word != nil || arg.Int != nil
	case spirv.ClassContextLiteral:
		return arg.Int != nil || arg.Float != nil
	case spirv.ClassRaw:
		return arg.ID != nil || arg.Int != nil
	}
	return false
}

func (a *assembler) operand(spec spirv.OperandSpec, inst *spirv.Instruction, arg *asmArg) (spirv.Operand, error) {
	if !fits(spec, arg) {
		return spirv.Operand{}, fmt.Errorf("unexpected %s", arg)
	}
	switch spec.Class {
	case spirv.ClassID:
		return spirv.IDRef(a.id(*arg.ID)), nil
	case spirv.ClassLiteralInt:
		v, err := parseInt(*arg.Int, 32)
		if err != nil {
			return spirv.Operand{}, err
		}
		return spirv.LiteralInt(uint32(v)), nil
	case spirv.ClassLiteralString:
		s, err := strconv.Unquote(*arg.Str)
		if err != nil {
			return spirv.Operand{}, fmt.Errorf("bad string %s: %w", *arg.Str, err)
		}
		return spirv.LiteralString(s), nil
	case spirv.ClassEnum:
		text := arg.String()
		v, err := spirv.ParseEnum(spec.Enum, text)
		if err != nil {
			return spirv.Operand{}, err
		}
		return spirv.EnumValue(spec.Enum, v), nil
	case spirv.ClassContextLiteral:
		return a.contextLiteral(inst.ResultType, arg)
	case spirv.ClassRaw:
		if arg.ID != nil {
			return spirv.IDRef(a.id(*arg.ID)), nil
		}
		v, err := parseInt(*arg.Int, 32)
		if err != nil {
			return spirv.Operand{}, err
		}
		return spirv.LiteralInt(uint32(v)), nil
	}
	return spirv.Operand{}, fmt.Errorf("unsupported operand class %d", spec.Class)
}

func (a *assembler) contextLiteral(typeID uint32, arg *asmArg) (spirv.Operand, error) {
	nt, known := a.numeric[typeID]
	if !known {
		return spirv.Operand{}, fmt.Errorf("constant type %%%d is not a numeric type", typeID)
	}
	if nt.float {
		text := arg.String()
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return spirv.Operand{}, fmt.Errorf("bad float literal %s: %w", text, err)
		}
		if nt.width > 32 {
			return spirv.LiteralFloat64(f), nil
		}
		if nt.width == 16 {
			if math.Abs(f) > maxFloat16 {
				return spirv.Operand{}, fmt.Errorf("float literal %s overflows f16", text)
			}
			return spirv.LiteralFloat16(float32(f)), nil
		}
		if math.Abs(f) > math.MaxFloat32 {
			return spirv.Operand{}, fmt.Errorf("float literal %s overflows f32", text)
		}
		return spirv.LiteralFloat32(float32(f)), nil
	}
	if arg.Int == nil {
		return spirv.Operand{}, fmt.Errorf("integer constant expected, got %s", arg)
	}
	if nt.width > 32 {
		v, err := parseInt(*arg.Int, 64)
		if err != nil {
			return spirv.Operand{}, err
		}
		return spirv.LiteralInt64(v), nil
	}
	v, err := parseInt(*arg.Int, 32)
	if err != nil {
		return spirv.Operand{}, err
	}
	return spirv.LiteralInt(uint32(v)), nil
}

// maxFloat16 is the largest finite half-precision value.
const maxFloat16 = 65504

// parseInt accepts signed and unsigned spellings and returns the two's
// complement bit pattern at the given width.
func parseInt(text string, bits int) (uint64, error) {
	if strings.HasPrefix(text, "-") {
		v, err := strconv.ParseInt(text, 0, bits)
		if err != nil {
			return 0, fmt.Errorf("bad integer literal %s: %w", text, err)
		}
		if bits == 32 {
			return uint64(uint32(int32(v))), nil
		}
		return uint64(v), nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(text, "+"), 0, bits)
	if err != nil {
		return 0, fmt.Errorf("bad integer literal %s: %w", text, err)
	}
	return v, nil
}

// Disassemble writes s in the textual form accepted by Assemble.
func Disassemble(w io.Writer, s *spirv.Stream) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "; SPIR-V\n; Version: %s\n; Generator: 0x%08x\n; Bound: %d\n; Schema: %d\n",
		s.Header.VersionString(), s.Header.Generator, s.Header.Bound, s.Header.Schema)
	for i := range s.Instructions {
		in := &s.Instructions[i]
		if in.Result == 0 {
			bw.WriteString("       ")
		}
		bw.WriteString(in.String())
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
