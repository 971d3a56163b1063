package buildpipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/maciek-pioro/compiler/internal/project"
)

// Current schema version - increment when CacheEntry format changes
const cacheSchemaVersion uint16 = 1

// DiskCache хранит сгенерированный IR по ключу из хеша исходника.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CacheEntry is one cached compilation. Only successful compilations are
// stored, so an entry never carries diagnostics.
type CacheEntry struct {
	Schema   uint16 `msgpack:"schema"`
	Source   string `msgpack:"source"`
	Compiler string `msgpack:"compiler"`
	Triple   string `msgpack:"triple"`
	IR       string `msgpack:"ir"`
}

// OpenDiskCache uses dir when given, otherwise $XDG_CACHE_HOME/minic
// (or ~/.cache/minic).
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "minic")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// CacheKey binds the source content to everything that changes the output.
func CacheKey(content project.Digest, compiler, triple string) project.Digest {
	return project.Fingerprint(content, fmt.Sprint(cacheSchemaVersion), compiler, triple)
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := key.Hex()
	// подкаталог по первому байту, чтобы не плодить тысячи файлов в одном месте
	return filepath.Join(c.dir, "ir", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes an entry; the file appears atomically.
func (c *DiskCache) Put(key project.Digest, entry *CacheEntry) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	entry.Schema = cacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(entry); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads an entry. Entries written by another schema count as misses.
func (c *DiskCache) Get(key project.Digest, out *CacheEntry) (bool, error) {
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
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	if out.Schema != cacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим
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
	return os.MkdirAll(c.dir, 0o750)
}
