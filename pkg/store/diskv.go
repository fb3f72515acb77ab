package store

import (
	"context"
	"crypto/md5"
	"fmt"
	"sync"

	"github.com/peterbourgon/diskv/v3"
)

// Persistence is the durable key/value contract every tool store is built on.
// Reads and writes never fail loudly: a missing key, an unreadable file, or a
// full disk all surface as a false boolean, and callers fall back to empty
// defaults. Watch streams change notifications for keys mutated by other
// processes sharing the same base path.
type Persistence interface {
	Read(key string) ([]byte, bool)
	Write(key string, data []byte) bool
	Erase(key string) bool
	Available() bool
	Watch(ctx context.Context) (<-chan Event, error)
}

// sentinelKey is written and removed once per instance to probe whether the
// base path accepts writes at all.
const sentinelKey = ".probe"

// Load creates a Persistence backed by diskv using the provided config. When
// cfg is nil the standard config chain is consulted. A base path that refuses
// the probe write degrades the instance to session-only memory: reads and
// writes keep working against a map, Write reports false, and Available
// reports false so the caller can warn the user once.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	p := &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: flatTransform,
			InverseTransform:  flatInverse,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		session:  make(map[string][]byte),
		lastSelf: make(map[string]string),
	}
	p.available = p.probe()
	return p, nil
}

type persistence struct {
	d         *diskv.Diskv
	basePath  string
	available bool

	mu sync.Mutex
	// session holds values for the lifetime of the process when the base
	// path is unwritable, so the tools stay usable without durability.
	session map[string][]byte
	// lastSelf fingerprints this instance's most recent write per key so the
	// watcher can tell its own mutations from another process's.
	lastSelf map[string]string
}

func (p *persistence) probe() bool {
	if err := p.d.Write(sentinelKey, []byte("1")); err != nil {
		return false
	}
	if err := p.d.Erase(sentinelKey); err != nil {
		return false
	}
	return true
}

func (p *persistence) Available() bool {
	return p.available
}

func (p *persistence) Read(key string) ([]byte, bool) {
	if !p.available {
		p.mu.Lock()
		defer p.mu.Unlock()
		val, ok := p.session[key]
		return val, ok
	}
	val, err := p.d.Read(key)
	if err != nil {
		return nil, false
	}
	return val, true
}

func (p *persistence) Write(key string, data []byte) bool {
	p.mu.Lock()
	p.lastSelf[key] = fingerprint(data)
	if !p.available {
		p.session[key] = append([]byte(nil), data...)
		p.mu.Unlock()
		return false
	}
	p.mu.Unlock()

	if err := p.d.Write(key, data); err != nil {
		return false
	}
	return true
}

func (p *persistence) Erase(key string) bool {
	p.mu.Lock()
	p.lastSelf[key] = fingerprintGone
	if !p.available {
		delete(p.session, key)
		p.mu.Unlock()
		return false
	}
	p.mu.Unlock()

	if err := p.d.Erase(key); err != nil {
		// Erasing an absent key is as good as erased.
		return !p.d.Has(key)
	}
	return true
}

// wroteSelf reports whether the current content of key matches this
// instance's last write, meaning a filesystem event for it is an echo of our
// own mutation rather than another process's.
func (p *persistence) wroteSelf(key string) bool {
	current := fingerprintGone
	if val, err := p.d.Read(key); err == nil {
		current = fingerprint(val)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastSelf[key] == current
}

const fingerprintGone = "gone"

func fingerprint(data []byte) string {
	sum := md5.Sum(data)
	return fmt.Sprintf("%x", sum[:8])
}

func flatTransform(s string) *diskv.PathKey {
	return &diskv.PathKey{FileName: s}
}

func flatInverse(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
