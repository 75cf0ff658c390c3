/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package fs

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultCacheDuration is the probe cache TTL used when none is configured.
const DefaultCacheDuration = 4 * time.Second

// Cached wraps a FileSystem and memoizes probe results for a bounded
// wall-clock duration. Errors are cached the same as successes, so a
// missing file stays missing for the TTL window. The cache never
// observes filesystem changes on its own; callers that need strict
// invalidation must call Purge.
type Cached struct {
	inner    FileSystem
	duration time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry

	group singleflight.Group
}

type cacheEntry struct {
	value   any
	err     error
	expires time.Time
}

// NewCached wraps inner with a probe cache. A non-positive duration
// falls back to DefaultCacheDuration.
func NewCached(inner FileSystem, duration time.Duration) *Cached {
	if duration <= 0 {
		duration = DefaultCacheDuration
	}
	return &Cached{
		inner:    inner,
		duration: duration,
		entries:  make(map[string]cacheEntry),
	}
}

// probe returns the cached result for key, or runs fn at most once per
// concurrent set of identical probes and caches its outcome.
func (c *Cached) probe(op, path string, fn func() (any, error)) (any, error) {
	key := op + "\x00" + path

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expires) {
		return entry.value, entry.err
	}

	value, err, _ := c.group.Do(key, func() (any, error) {
		// Re-check under the group: a concurrent caller may have
		// refreshed the entry while this one waited.
		c.mu.RLock()
		entry, ok := c.entries[key]
		c.mu.RUnlock()
		if ok && time.Now().Before(entry.expires) {
			return entry.value, entry.err
		}

		v, err := fn()
		c.mu.Lock()
		c.entries[key] = cacheEntry{value: v, err: err, expires: time.Now().Add(c.duration)}
		c.mu.Unlock()
		return v, err
	})
	return value, err
}

// Purge invalidates cache entries. With no arguments every entry is
// dropped. With arguments, each named path is dropped along with its
// cached descendants and ancestors, so a change under a directory
// cannot leave stale directory listings above it.
func (c *Cached) Purge(paths ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(paths) == 0 {
		c.entries = make(map[string]cacheEntry)
		return
	}

	for key := range c.entries {
		_, entryPath, ok := strings.Cut(key, "\x00")
		if !ok {
			continue
		}
		for _, p := range paths {
			if pathRelated(p, entryPath) {
				delete(c.entries, key)
				break
			}
		}
	}
}

// pathRelated reports whether a and b are the same path, or one is an
// ancestor of the other.
func pathRelated(a, b string) bool {
	a = filepath.Clean(a)
	b = filepath.Clean(b)
	if a == b {
		return true
	}
	sep := string(filepath.Separator)
	return strings.HasPrefix(b, a+sep) || strings.HasPrefix(a, b+sep)
}

// ReadFile implements FileSystem.
func (c *Cached) ReadFile(name string) ([]byte, error) {
	v, err := c.probe("readFile", name, func() (any, error) {
		return c.inner.ReadFile(name)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// ReadDir implements FileSystem.
func (c *Cached) ReadDir(name string) ([]fs.DirEntry, error) {
	v, err := c.probe("readDir", name, func() (any, error) {
		return c.inner.ReadDir(name)
	})
	if err != nil {
		return nil, err
	}
	return v.([]fs.DirEntry), nil
}

// Stat implements FileSystem.
func (c *Cached) Stat(name string) (fs.FileInfo, error) {
	v, err := c.probe("stat", name, func() (any, error) {
		return c.inner.Stat(name)
	})
	if err != nil {
		return nil, err
	}
	return v.(fs.FileInfo), nil
}

// Lstat implements FileSystem.
func (c *Cached) Lstat(name string) (fs.FileInfo, error) {
	v, err := c.probe("lstat", name, func() (any, error) {
		return c.inner.Lstat(name)
	})
	if err != nil {
		return nil, err
	}
	return v.(fs.FileInfo), nil
}

// Readlink implements FileSystem.
func (c *Cached) Readlink(name string) (string, error) {
	v, err := c.probe("readlink", name, func() (any, error) {
		return c.inner.Readlink(name)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Exists implements FileSystem.
func (c *Cached) Exists(path string) bool {
	_, err := c.Stat(path)
	return err == nil
}

// Open implements FileSystem. Opens are not cached: the resolver only
// probes metadata and descriptor files, and an open handle cannot be
// shared between callers.
func (c *Cached) Open(name string) (fs.File, error) {
	return c.inner.Open(name)
}
