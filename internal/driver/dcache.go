package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Schema version, bump when CheckPayload changes shape.
const diskCacheSchemaVersion uint16 = 1

// Digest is a fixed 256-bit hash, compatible with source.File.Hash.
type Digest [32]byte

// Combine builds an aggregate digest: H(d1 || d2 || ...). The caller must
// feed digests in a deterministic order.
func Combine(digests ...Digest) Digest {
	h := sha256.New()
	for _, d := range digests {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// CheckPayload records the outcome of a clean check, keyed by the
// aggregate content digest of all scripts it covered. Diagnostics are not
// cached; a dirty result is always recomputed so messages stay fresh.
type CheckPayload struct {
	Schema uint16
	Files  int
	Shapes int
	Stmts  int
}

// DiskCache stores check outcomes under XDG_CACHE_HOME. Safe for
// concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes a disk cache rooted at dir. Used by tests
// and by --cache-dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "checks", hexKey+".mp")
}

// Put serializes and writes a payload, atomically replacing any previous
// entry for the key.
func (c *DiskCache) Put(key Digest, payload *CheckPayload) error {
	if c == nil {
		return nil
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
	defer func() { _ = os.Remove(f.Name()) }()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. Reports false on a miss or schema mismatch.
func (c *DiskCache) Get(key Digest, out *CheckPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}
