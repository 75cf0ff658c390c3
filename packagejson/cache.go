/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package packagejson

import (
	"path/filepath"
	"strings"
	"sync"

	maslulfs "bennypowers.dev/maslul/fs"
)

// Cache reads descriptor files through a fs.FileSystem and caches the
// parsed result by path for the lifetime of the cache. Read errors are
// cached too, so repeated walks over the same missing descriptors stay
// cheap.
type Cache struct {
	fs maslulfs.FileSystem

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	pkg *Package
	err error
}

// NewCache creates a descriptor cache over the given filesystem.
func NewCache(filesystem maslulfs.FileSystem) *Cache {
	return &Cache{
		fs:      filesystem,
		entries: make(map[string]cacheEntry),
	}
}

// Read parses the descriptor file at path, consulting the cache first.
func (c *Cache) Read(path string) (*Package, error) {
	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()
	if ok {
		return entry.pkg, entry.err
	}

	pkg, err := c.read(path)

	c.mu.Lock()
	c.entries[path] = cacheEntry{pkg: pkg, err: err}
	c.mu.Unlock()
	return pkg, err
}

func (c *Cache) read(path string) (*Package, error) {
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

// Purge drops cached entries. With no arguments the whole cache is
// dropped; otherwise entries at or under the given paths are dropped.
func (c *Cache) Purge(paths ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(paths) == 0 {
		c.entries = make(map[string]cacheEntry)
		return
	}

	sep := string(filepath.Separator)
	for key := range c.entries {
		for _, p := range paths {
			p = filepath.Clean(p)
			if key == p || strings.HasPrefix(key, p+sep) {
				delete(c.entries, key)
				break
			}
		}
	}
}
