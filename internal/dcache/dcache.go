// Package dcache keeps decoded instruction streams on disk, keyed by the
// SHA-256 of the input bytes, so unchanged modules skip decoding.
package dcache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"spvdecomp/internal/spirv"
)

// Current schema version - increment when Payload format changes
const schemaVersion uint16 = 2

// Digest is the SHA-256 of a module's input bytes.
type Digest [sha256.Size]byte

// Sum hashes the input together with its source kind, so a binary module and
// an assembly file with equal bytes never share an entry.
func Sum(kind string, data []byte) Digest {
	h := sha256.New()
	_, _ = h.Write([]byte(kind))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(data)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }

// Cache хранит декодированные потоки инструкций на диске.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Payload is the on-disk form of one decoded stream.
type Payload struct {
	Schema uint16
	Kind   string

	Header       spirv.Header
	Count        uint32
	Instructions []spirv.Instruction
}

// Open returns a cache rooted at dir, creating it if needed.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		return nil, errors.New("dcache: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// DefaultDir is $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func DefaultDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) pathFor(key Digest) string {
	// подкаталог "streams", чтобы DropAll не задевал соседей
	return filepath.Join(c.dir, "streams", key.String()+".mp")
}

// Put serializes s under key.
func (c *Cache) Put(key Digest, kind string, s *spirv.Stream) error {
	if c == nil || s == nil {
		return nil
	}
	count, err := safecast.Conv[uint32](len(s.Instructions))
	if err != nil {
		return fmt.Errorf("dcache: instruction count: %w", err)
	}
	payload := Payload{
		Schema:       schemaVersion,
		Kind:         kind,
		Header:       s.Header,
		Count:        count,
		Instructions: s.Instructions,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get loads the stream stored under key. A missing entry, a stale schema or
// a kind mismatch all report a miss.
func (c *Cache) Get(key Digest, kind string) (*spirv.Stream, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() { _ = f.Close() }()

	var payload Payload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("dcache: %s: %w", key, err)
	}
	if payload.Schema != schemaVersion || payload.Kind != kind {
		return nil, false, nil
	}
	if int(payload.Count) != len(payload.Instructions) {
		return nil, false, fmt.Errorf("dcache: %s: %d instructions recorded, %d stored",
			key, payload.Count, len(payload.Instructions))
	}
	return &spirv.Stream{Header: payload.Header, Instructions: payload.Instructions}, true, nil
}

// DropAll removes every entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим
	dir := filepath.Join(c.dir, "streams")
	old := dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
