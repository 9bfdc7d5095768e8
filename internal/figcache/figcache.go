// Package figcache caches compiled artifacts on disk, keyed by a digest of
// the rendered document and the engine that processed it. Typesetting is
// deterministic for a fixed document and environment, so a hit can be served
// without invoking any engine.
package figcache

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
)

// Current schema version - increment when Payload format changes.
const schemaVersion uint16 = 1

// Digest identifies one (engine, document) pair.
type Digest [sha256.Size]byte

// KeyFor computes the cache key for a document compiled by the named engine.
func KeyFor(engine, document string) Digest {
	h := sha256.New()
	h.Write([]byte(engine))
	h.Write([]byte{0})
	h.Write([]byte(document))
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// Payload stores one cached artifact.
// Thread-safe access is handled by Cache, not here.
type Payload struct {
	// Schema version for safe invalidation when the format changes.
	Schema uint16

	Engine      string
	JobName     string
	Artifact    []byte
	Size        uint32
	CreatedUnix int64
}

// Cache is a disk-backed artifact store.
// Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes a cache at the standard per-user location.
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenAt(filepath.Join(base, app))
}

// OpenAt initializes a cache rooted at dir.
func OpenAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Subdirectory "figs" keeps the root readable and easy to clear.
	return filepath.Join(c.dir, "figs", hexKey+".mp")
}

// Put serializes and writes an artifact to the cache. The write is atomic:
// a temp file in the target directory renamed over the final path.
func (c *Cache) Put(key Digest, engine, jobName string, artifact []byte) error {
	if c == nil {
		return nil
	}
	size, err := safecast.Convert[uint32](len(artifact))
	if err != nil {
		return fmt.Errorf("artifact too large to cache: %w", err)
	}
	payload := &Payload{
		Schema:      schemaVersion,
		Engine:      engine,
		JobName:     jobName,
		Artifact:    artifact,
		Size:        size,
		CreatedUnix: time.Now().Unix(),
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
	defer func() {
		_ = os.Remove(f.Name())
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a cached artifact. A missing entry or a schema mismatch is a
// miss, not an error.
func (c *Cache) Get(key Digest) ([]byte, bool, error) {
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
	defer func() {
		_ = f.Close()
	}()
	var payload Payload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != schemaVersion {
		return nil, false, nil
	}
	return payload.Artifact, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// Dir returns the cache root directory.
func (c *Cache) Dir() string { return c.dir }
