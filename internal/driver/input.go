package driver

import (
	"bytes"
	"encoding/binary"
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"spvdecomp/internal/dcache"
	"spvdecomp/internal/decomp"
	"spvdecomp/internal/diag"
	"spvdecomp/internal/spirv"
	"spvdecomp/internal/spirv/asm"
)

// InputKind says how the input bytes are turned into a stream.
type InputKind string

const (
	KindAuto     InputKind = ""
	KindBinary   InputKind = "binary"
	KindAssembly InputKind = "assembly"
)

// ParseInputKind accepts "auto", "binary" and "assembly" (or "asm").
func ParseInputKind(s string) (InputKind, bool) {
	switch strings.ToLower(s) {
	case "", "auto":
		return KindAuto, true
	case "binary", "spv":
		return KindBinary, true
	case "assembly", "asm", "spvasm":
		return KindAssembly, true
	}
	return KindAuto, false
}

// DetectKind picks the input kind from the file extension and falls back to
// sniffing the magic number in either byte order.
func DetectKind(path string, data []byte) InputKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".spv":
		return KindBinary
	case ".spvasm", ".asm":
		return KindAssembly
	}
	if len(data) >= 4 {
		if binary.LittleEndian.Uint32(data) == spirv.Magic || binary.BigEndian.Uint32(data) == spirv.Magic {
			return KindBinary
		}
	}
	return KindAssembly
}

func decode(kind InputKind, name string, data []byte) (*spirv.Stream, error) {
	if kind == KindAssembly {
		return asm.Assemble(name, bytes.NewReader(data))
	}
	return spirv.Decode(data)
}

// decodeCached consults the memo, then the disk cache, then decodes.
func decodeCached(r *Result, data []byte, opts Options) (*spirv.Stream, bool, error) {
	kind := string(r.Kind)
	if s, ok := opts.Memo.Get(r.Digest); ok {
		log.Debugf("%s: memo hit %s", r.Path, r.Digest)
		return s, true, nil
	}
	if opts.Cache != nil {
		s, ok, err := opts.Cache.Get(r.Digest, kind)
		switch {
		case err != nil:
			// битая запись: декодируем заново и перезапишем
			log.Warningf("%s: cache read failed: %v", r.Path, err)
		case ok:
			log.Debugf("%s: cache hit %s", r.Path, r.Digest)
			opts.Memo.Put(r.Digest, s)
			return s, true, nil
		}
	}

	s, err := decode(r.Kind, r.Path, data)
	if err != nil {
		return nil, false, err
	}
	opts.Memo.Put(r.Digest, s)
	if opts.Cache != nil {
		if err := opts.Cache.Put(r.Digest, kind, s); err != nil {
			log.Warningf("%s: cache write failed: %v", r.Path, err)
		}
	}
	return s, false, nil
}

// failure turns a pipeline error into the diagnostic reported for it.
func failure(kind InputKind, err error) diag.Diagnostic {
	d := diag.Diagnostic{Severity: diag.SevError, Code: diag.UnknownCode, Message: err.Error()}
	var de *decomp.Error
	switch {
	case errors.As(err, &de):
		d.Code = de.DiagCode()
		d.Message = de.Error()
		d.Primary = diag.Span{ID: de.ID}
	case errors.Is(err, spirv.ErrBadMagic):
		d.Code = diag.DecBadMagic
	case errors.Is(err, spirv.ErrTruncated):
		d.Code = diag.DecTruncated
	case errors.Is(err, spirv.ErrMalformed):
		d.Code = diag.DecMalformed
	case kind == KindAssembly:
		d.Code = diag.DecAssemblerSyntax
	}
	return d
}

// StreamMemo is an in-process cache of decoded streams by input digest.
// A nil memo is valid and never hits.
type StreamMemo struct {
	mu      sync.RWMutex
	streams map[dcache.Digest]*spirv.Stream
}

// NewStreamMemo creates a memo with the given capacity hint.
func NewStreamMemo(capHint int) *StreamMemo {
	return &StreamMemo{streams: make(map[dcache.Digest]*spirv.Stream, capHint)}
}

func (m *StreamMemo) Get(key dcache.Digest) (*spirv.Stream, bool) {
	if m == nil {
		return nil, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.streams[key]
	return s, ok
}

func (m *StreamMemo) Put(key dcache.Digest, s *spirv.Stream) {
	if m == nil || s == nil {
		return
	}
	m.mu.Lock()
	m.streams[key] = s
	m.mu.Unlock()
}
