package spirv

import (
	"encoding/binary"
	"fmt"

	"fortio.org/safecast"
)

// Encode serialises a stream into the little-endian binary form.
// A zero Magic is replaced by the SPIR-V magic and a zero Bound by one past
// the largest result id.
func Encode(s *Stream) ([]byte, error) {
	h := s.Header
	if h.Magic == 0 {
		h.Magic = Magic
	}
	if h.Bound == 0 {
		for i := range s.Instructions {
			if r := s.Instructions[i].Result; r >= h.Bound {
				h.Bound = r + 1
			}
		}
	}

	words := []uint32{h.Magic, h.Version, h.Generator, h.Bound, h.Schema}
	for i := range s.Instructions {
		var err error
		words, err = appendInstruction(words, &s.Instructions[i])
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %s: %w", i, s.Instructions[i].Op, err)
		}
	}

	out := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out, nil
}

func appendInstruction(words []uint32, in *Instruction) ([]uint32, error) {
	start := len(words)
	words = append(words, 0)
	if in.ResultType != 0 {
		words = append(words, in.ResultType)
	}
	if in.Result != 0 {
		words = append(words, in.Result)
	}
	for _, o := range in.Operands {
		words = appendOperand(words, o)
	}
	wc, err := safecast.Conv[uint16](len(words) - start)
	if err != nil {
		return nil, fmt.Errorf("word count: %w", err)
	}
	words[start] = uint32(wc)<<16 | uint32(in.Op)
	return words, nil
}

func appendOperand(words []uint32, o Operand) []uint32 {
	switch o.Kind {
	case OperandIDRef:
		return append(words, o.ID)
	case OperandLiteralInt64, OperandLiteralFloat64:
		return append(words, uint32(o.Bits), uint32(o.Bits>>32))
	case OperandLiteralString:
		b := make([]byte, o.Words()*4)
		copy(b, o.Str)
		for i := 0; i < len(b); i += 4 {
			words = append(words, binary.LittleEndian.Uint32(b[i:]))
		}
		return words
	default:
		return append(words, uint32(o.Bits))
	}
}
