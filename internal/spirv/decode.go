package spirv

import (
	"encoding/binary"
	"errors"
	"fmt"

	"fortio.org/safecast"
)

const headerWords = 5

// Decoding failures wrap one of these.
var (
	ErrBadMagic  = errors.New("bad magic")
	ErrTruncated = errors.New("truncated")
	ErrMalformed = errors.New("malformed instruction")
)

type numericType struct {
	float bool
	width uint32
}

type decoder struct {
	words []uint32
	// numeric records OpTypeInt/OpTypeFloat widths so OpConstant literals can
	// be split into the right operand kind.
	numeric map[uint32]numericType
}

// Parse decodes a binary module and pushes it into c.
// Both little- and big-endian word orders are accepted; the magic number
// decides which one is used.
func Parse(data []byte, c Consumer) error {
	if len(data)%4 != 0 {
		return fmt.Errorf("%w: module size %d is not a multiple of 4", ErrTruncated, len(data))
	}
	if len(data) < headerWords*4 {
		return fmt.Errorf("%w header: %d bytes", ErrTruncated, len(data))
	}

	var order binary.ByteOrder
	switch {
	case binary.LittleEndian.Uint32(data) == Magic:
		order = binary.LittleEndian
	case binary.BigEndian.Uint32(data) == Magic:
		order = binary.BigEndian
	default:
		return fmt.Errorf("%w: 0x%08x", ErrBadMagic, binary.LittleEndian.Uint32(data))
	}

	d := &decoder{
		words:   make([]uint32, len(data)/4),
		numeric: make(map[uint32]numericType),
	}
	for i := range d.words {
		d.words[i] = order.Uint32(data[i*4:])
	}

	h := Header{
		Magic:     d.words[0],
		Version:   d.words[1],
		Generator: d.words[2],
		Bound:     d.words[3],
		Schema:    d.words[4],
	}
	if err := c.OnHeader(h); err != nil {
		if errors.Is(err, ErrStop) {
			return nil
		}
		return err
	}

	var index uint32
	for pos := headerWords; pos < len(d.words); {
		first := d.words[pos]
		wc := int(first >> 16)
		op := Op(first & 0xffff)
		if wc == 0 {
			return fmt.Errorf("instruction %d (word %d): %w: zero word count", index, pos, ErrMalformed)
		}
		if pos+wc > len(d.words) {
			return fmt.Errorf("instruction %d (word %d): %s needs %d words, %d left: %w",
				index, pos, op, wc, len(d.words)-pos, ErrTruncated)
		}
		offset, err := safecast.Conv[uint32](pos)
		if err != nil {
			return fmt.Errorf("instruction %d: offset overflow: %w", index, err)
		}
		inst, err := d.instruction(op, d.words[pos+1:pos+wc])
		if err != nil {
			return fmt.Errorf("instruction %d (word %d): %s: %w: %w", index, pos, op, ErrMalformed, err)
		}
		inst.Index = index
		inst.Offset = offset
		if err := c.OnInstruction(inst); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
		pos += wc
		index++
	}
	return nil
}

// Decode parses a binary module into a Stream.
func Decode(data []byte) (*Stream, error) {
	s := &Stream{}
	if err := Parse(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (d *decoder) instruction(op Op, ws []uint32) (Instruction, error) {
	inst := Instruction{Op: op}
	info, ok := grammar[op]
	if !ok {
		// Not a core opcode: nothing is known about its shape, so even a
		// result id stays among the raw words.
		inst.Operands = make([]Operand, len(ws))
		for i, w := range ws {
			inst.Operands[i] = LiteralInt(w)
		}
		return inst, nil
	}

	i := 0
	if info.HasType {
		if i >= len(ws) {
			return inst, errors.New("missing result type")
		}
		inst.ResultType = ws[i]
		i++
	}
	if info.HasResult {
		if i >= len(ws) {
			return inst, errors.New("missing result id")
		}
		inst.Result = ws[i]
		i++
	}

	for n, spec := range info.Operands {
		switch spec.Quant {
		case One:
			if i >= len(ws) {
				return inst, fmt.Errorf("missing operand %d", n)
			}
			fallthrough
		case Optional:
			if i >= len(ws) {
				continue
			}
			o, used, err := d.operand(spec, &inst, ws[i:])
			if err != nil {
				return inst, fmt.Errorf("operand %d: %w", n, err)
			}
			inst.Operands = append(inst.Operands, o)
			i += used
		case Variadic:
			for i < len(ws) {
				o, used, err := d.operand(spec, &inst, ws[i:])
				if err != nil {
					return inst, fmt.Errorf("operand %d: %w", n, err)
				}
				inst.Operands = append(inst.Operands, o)
				i += used
			}
		}
	}
	if i != len(ws) {
		return inst, fmt.Errorf("%d trailing words", len(ws)-i)
	}

	switch op {
	case OpTypeInt:
		d.numeric[inst.Result] = numericType{width: uint32(inst.Operands[0].Bits)}
	case OpTypeFloat:
		d.numeric[inst.Result] = numericType{float: true, width: uint32(inst.Operands[0].Bits)}
	}
	return inst, nil
}

func (d *decoder) operand(spec OperandSpec, inst *Instruction, ws []uint32) (Operand, int, error) {
	switch spec.Class {
	case ClassID:
		return IDRef(ws[0]), 1, nil
	case ClassLiteralInt:
		return LiteralInt(ws[0]), 1, nil
	case ClassEnum:
		return EnumValue(spec.Enum, ws[0]), 1, nil
	case ClassLiteralString:
		s, used, err := decodeString(ws)
		if err != nil {
			return Operand{}, 0, err
		}
		return LiteralString(s), used, nil
	case ClassContextLiteral:
		return d.contextLiteral(inst.ResultType, ws)
	case ClassRaw:
		return LiteralInt(ws[0]), 1, nil
	}
	return Operand{}, 0, fmt.Errorf("unknown operand class %d", spec.Class)
}

func (d *decoder) contextLiteral(typeID uint32, ws []uint32) (Operand, int, error) {
	nt, known := d.numeric[typeID]
	wide := len(ws) >= 2
	if known {
		wide = nt.width > 32
		if wide && len(ws) < 2 {
			return Operand{}, 0, fmt.Errorf("%d-bit literal needs 2 words", nt.width)
		}
	}
	switch {
	case wide && known && nt.float:
		return Operand{Kind: OperandLiteralFloat64, Bits: uint64(ws[0]) | uint64(ws[1])<<32}, 2, nil
	case wide:
		return LiteralInt64(uint64(ws[0]) | uint64(ws[1])<<32), 2, nil
	case known && nt.float && nt.width == 16:
		return Operand{Kind: OperandLiteralFloat16, Bits: uint64(ws[0] & 0xffff)}, 1, nil
	case known && nt.float && nt.width == 32:
		return Operand{Kind: OperandLiteralFloat32, Bits: uint64(ws[0])}, 1, nil
	default:
		return LiteralInt(ws[0]), 1, nil
	}
}

func decodeString(ws []uint32) (string, int, error) {
	buf := make([]byte, 0, len(ws)*4)
	for i, w := range ws {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], w)
		for _, c := range b {
			if c == 0 {
				return string(buf), i + 1, nil
			}
			buf = append(buf, c)
		}
	}
	return "", 0, errors.New("unterminated string literal")
}
