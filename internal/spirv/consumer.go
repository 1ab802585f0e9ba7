package spirv

import "errors"

// Consumer receives a decoded module one piece at a time.
// OnHeader is called at most once, before any instruction. Returning an error
// from either method aborts decoding with that error, except ErrStop which
// ends decoding successfully.
type Consumer interface {
	OnHeader(h Header) error
	OnInstruction(inst Instruction) error
}

// ErrStop ends decoding early without reporting a failure.
var ErrStop = errors.New("spirv: stop")

// Stream is a Consumer that keeps everything it receives.
type Stream struct {
	Header       Header
	Instructions []Instruction
}

func (s *Stream) OnHeader(h Header) error {
	s.Header = h
	return nil
}

func (s *Stream) OnInstruction(inst Instruction) error {
	s.Instructions = append(s.Instructions, inst)
	return nil
}

// Replay pushes a recorded stream into c, the same way Parse would.
func (s *Stream) Replay(c Consumer) error {
	if err := c.OnHeader(s.Header); err != nil {
		if errors.Is(err, ErrStop) {
			return nil
		}
		return err
	}
	for i := range s.Instructions {
		if err := c.OnInstruction(s.Instructions[i]); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}
