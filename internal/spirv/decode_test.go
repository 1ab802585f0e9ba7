package spirv

import (
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func sampleStream() *Stream {
	return &Stream{
		Header: Header{Magic: Magic, Version: MakeVersion(1, 3), Generator: 7, Bound: 20},
		Instructions: []Instruction{
			{Op: OpCapability, Operands: []Operand{EnumValue(EnumCapability, 1)}},
			{Op: OpMemoryModel, Operands: []Operand{EnumValue(EnumAddressingModel, 0), EnumValue(EnumMemoryModel, 1)}},
			{Op: OpName, Operands: []Operand{IDRef(1), LiteralString("main")}},
			{Op: OpName, Operands: []Operand{IDRef(2), LiteralString("counter")}},
			{Op: OpTypeInt, Result: 5, Operands: []Operand{LiteralInt(32), LiteralInt(0)}},
			{Op: OpTypeInt, Result: 11, Operands: []Operand{LiteralInt(64), LiteralInt(1)}},
			{Op: OpTypeFloat, Result: 13, Operands: []Operand{LiteralInt(32)}},
			{Op: OpTypeFloat, Result: 15, Operands: []Operand{LiteralInt(64)}},
			{Op: OpConstant, ResultType: 5, Result: 7, Operands: []Operand{LiteralInt(5)}},
			{Op: OpConstant, ResultType: 11, Result: 12, Operands: []Operand{LiteralInt64(1 << 40)}},
			{Op: OpConstant, ResultType: 13, Result: 14, Operands: []Operand{LiteralFloat32(1.5)}},
			{Op: OpConstant, ResultType: 15, Result: 16, Operands: []Operand{LiteralFloat64(-0.25)}},
			{Op: OpTypePointer, Result: 6, Operands: []Operand{StorageClassOperand(StorageFunction), IDRef(5)}},
			{Op: OpLoad, ResultType: 5, Result: 9, Operands: []Operand{IDRef(2)}},
			{Op: OpIAdd, ResultType: 5, Result: 10, Operands: []Operand{IDRef(9), IDRef(7)}},
			{Op: OpStore, Operands: []Operand{IDRef(2), IDRef(10)}},
			{Op: OpTypeFloat, Result: 3, Operands: []Operand{LiteralInt(16)}},
			{Op: OpConstant, ResultType: 3, Result: 4, Operands: []Operand{LiteralFloat16(-2.5)}},
			{Op: OpReturn},
		},
	}
}

var ignorePosition = cmpopts.IgnoreFields(Instruction{}, "Index", "Offset")

func TestRoundTrip(t *testing.T) {
	want := sampleStream()
	bin, err := Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(bin)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(want, got, ignorePosition); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRecordsPositions(t *testing.T) {
	bin, err := Encode(sampleStream())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(bin)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	// OpCapability is 2 words, OpMemoryModel 3.
	if got.Instructions[0].Offset != 5 || got.Instructions[1].Offset != 7 || got.Instructions[2].Offset != 10 {
		t.Fatalf("unexpected offsets: %d %d %d",
			got.Instructions[0].Offset, got.Instructions[1].Offset, got.Instructions[2].Offset)
	}
	for i := range got.Instructions {
		if got.Instructions[i].Index != uint32(i) {
			t.Fatalf("instruction %d has index %d", i, got.Instructions[i].Index)
		}
	}
}

func TestDecodeBigEndian(t *testing.T) {
	want := sampleStream()
	bin, err := Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	swapped := make([]byte, len(bin))
	for i := 0; i < len(bin); i += 4 {
		binary.BigEndian.PutUint32(swapped[i:], binary.LittleEndian.Uint32(bin[i:]))
	}
	got, err := Decode(swapped)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(want, got, ignorePosition); diff != "" {
		t.Fatalf("big-endian mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeFillsBound(t *testing.T) {
	s := sampleStream()
	s.Header.Magic = 0
	s.Header.Bound = 0
	bin, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := binary.LittleEndian.Uint32(bin[0:]); got != Magic {
		t.Fatalf("magic = 0x%08x", got)
	}
	if got := binary.LittleEndian.Uint32(bin[12:]); got != 17 {
		t.Fatalf("bound = %d, want 17", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	header := func(extra ...uint32) []byte {
		words := append([]uint32{Magic, MakeVersion(1, 0), 0, 10, 0}, extra...)
		out := make([]byte, len(words)*4)
		for i, w := range words {
			binary.LittleEndian.PutUint32(out[i*4:], w)
		}
		return out
	}

	cases := []struct {
		name string
		data []byte
		want string
		kind error
	}{
		{"odd size", make([]byte, 23), "not a multiple of 4", ErrTruncated},
		{"short header", make([]byte, 16), "truncated header", ErrTruncated},
		{"bad magic", make([]byte, 20), "bad magic", ErrBadMagic},
		{"zero word count", header(uint32(OpNop)), "zero word count", ErrMalformed},
		{"truncated", header(3<<16 | uint32(OpName), 1), "needs 3 words", ErrTruncated},
		{"unterminated string", header(3<<16 | uint32(OpName), 1, 0x61616161), "unterminated string", ErrMalformed},
		{"trailing words", header(3<<16 | uint32(OpReturn), 0, 0), "trailing words", ErrMalformed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.data)
			if err == nil {
				t.Fatalf("expected error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
			if !errors.Is(err, tc.kind) {
				t.Fatalf("error %q does not wrap %v", err, tc.kind)
			}
		})
	}
}

func TestDecodeUnmodeledCoreOpcodes(t *testing.T) {
	want := &Stream{
		Header: Header{Magic: Magic, Version: MakeVersion(1, 0), Bound: 21},
		Instructions: []Instruction{
			{Op: OpPtrAccessChain, ResultType: 4, Result: 20, Operands: []Operand{IDRef(9), IDRef(6)}},
			{Op: OpFOrdLessThan, ResultType: 2, Result: 17, Operands: []Operand{IDRef(3), IDRef(5)}},
			{Op: OpImageSampleImplicitLod, ResultType: 7, Result: 18, Operands: []Operand{
				IDRef(11), IDRef(12), LiteralInt(1), LiteralInt(13),
			}},
			{Op: OpSpecConstantTrue, ResultType: 2, Result: 19},
			{Op: OpTerminateInvocation},
		},
	}
	bin, err := Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(bin)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(want, got, ignorePosition); diff != "" {
		t.Fatalf("decode mismatch (-want +got):\n%s", diff)
	}
	if got := want.Instructions[0].String(); got != "%20 = OpPtrAccessChain %4 %9 %6" {
		t.Fatalf("String() = %q", got)
	}
	for _, in := range got.Instructions {
		if !in.Op.Known() || strings.HasPrefix(in.Op.String(), "Op(") {
			t.Errorf("%s has no name", in.Op)
		}
	}
}

func TestDecodeForeignOpcodeKeepsWords(t *testing.T) {
	bin, err := Encode(&Stream{
		Header:       Header{Version: MakeVersion(1, 0), Bound: 1},
		Instructions: []Instruction{{Op: Op(4000), Operands: []Operand{LiteralInt(1), LiteralInt(2)}}},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(bin)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	in := got.Instructions[0]
	if in.Op.Known() || in.Op.String() != "Op(4000)" || len(in.Operands) != 2 || in.Operands[1].Bits != 2 {
		t.Fatalf("unexpected instruction: %s", in.String())
	}
}

func TestDecodeHalfFloatConstant(t *testing.T) {
	bin, err := Encode(&Stream{
		Header: Header{Version: MakeVersion(1, 0)},
		Instructions: []Instruction{
			{Op: OpTypeFloat, Result: 1, Operands: []Operand{LiteralInt(16)}},
			{Op: OpConstant, ResultType: 1, Result: 2, Operands: []Operand{LiteralFloat16(0.5)}},
		},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(bin)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	lit := got.Instructions[1].Operands[0]
	if lit.Kind != OperandLiteralFloat16 || lit.Bits != 0x3800 {
		t.Fatalf("literal = %s bits 0x%x", lit.Kind, lit.Bits)
	}
	if f, ok := lit.Float(); !ok || f != 0.5 {
		t.Fatalf("Float() = %v, %v", f, ok)
	}
}

type stopAfter struct {
	n    int
	seen int
}

func (s *stopAfter) OnHeader(Header) error { return nil }

func (s *stopAfter) OnInstruction(Instruction) error {
	s.seen++
	if s.seen == s.n {
		return ErrStop
	}
	return nil
}

type failOn struct{ op Op }

var errBoom = errors.New("boom")

func (f failOn) OnHeader(Header) error { return nil }

func (f failOn) OnInstruction(in Instruction) error {
	if in.Op == f.op {
		return errBoom
	}
	return nil
}

func TestParseConsumerControl(t *testing.T) {
	bin, err := Encode(sampleStream())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	stop := &stopAfter{n: 3}
	if err := Parse(bin, stop); err != nil {
		t.Fatalf("ErrStop must end parsing cleanly, got %v", err)
	}
	if stop.seen != 3 {
		t.Fatalf("consumer saw %d instructions, want 3", stop.seen)
	}

	if err := Parse(bin, failOn{op: OpStore}); !errors.Is(err, errBoom) {
		t.Fatalf("expected consumer error, got %v", err)
	}
}

func TestInstructionString(t *testing.T) {
	s := sampleStream()
	cases := map[int]string{
		2:  `OpName %1 "main"`,
		8:  "%7 = OpConstant %5 5",
		10: "%14 = OpConstant %13 1.5",
		12: "%6 = OpTypePointer Function %5",
		14: "%10 = OpIAdd %5 %9 %7",
		17: "%4 = OpConstant %3 -2.5",
	}
	for i, want := range cases {
		if got := s.Instructions[i].String(); got != want {
			t.Errorf("instruction %d: got %q, want %q", i, got, want)
		}
	}
}

func TestEnumNames(t *testing.T) {
	if got := EnumName(EnumMemoryAccess, 0); got != "None" {
		t.Errorf("empty mask = %q", got)
	}
	if got := EnumName(EnumStorageClass, 99); got != "99" {
		t.Errorf("unknown storage class = %q", got)
	}
	v, err := ParseEnum(EnumStorageClass, "StorageBuffer")
	if err != nil || StorageClass(v) != StorageStorageBuffer {
		t.Errorf("ParseEnum(StorageBuffer) = %d, %v", v, err)
	}
	if op, ok := LookupOp("OpShiftRightArithmetic"); !ok || op != OpShiftRightArith {
		t.Errorf("LookupOp = %v, %v", op, ok)
	}
	if !OpTypeStruct.IsType() || OpConstant.IsType() {
		t.Error("IsType misclassifies ops")
	}
}
