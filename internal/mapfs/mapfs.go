/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mapfs provides an in-memory filesystem implementation for testing.
package mapfs

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"testing/fstest"
	"time"
)

// MapFileSystem implements fs.FileSystem using an in-memory fstest.MapFS
// plus a symlink table. This is useful for testing without touching the
// real filesystem.
type MapFileSystem struct {
	mu       sync.RWMutex
	mapFS    fstest.MapFS
	symlinks map[string]string
	modTime  time.Time
}

// New creates a new in-memory filesystem for testing.
func New() *MapFileSystem {
	return &MapFileSystem{
		mapFS:    make(fstest.MapFS),
		symlinks: make(map[string]string),
		modTime:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// AddFile adds a file to the in-memory filesystem.
func (mfs *MapFileSystem) AddFile(p string, content string, mode fs.FileMode) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	p = mfs.cleanPath(p)
	mfs.mapFS[p] = &fstest.MapFile{
		Data:    []byte(content),
		Mode:    mode,
		ModTime: mfs.modTime,
	}
}

// AddDir adds a directory to the in-memory filesystem.
func (mfs *MapFileSystem) AddDir(p string, mode fs.FileMode) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	p = mfs.cleanPath(p)
	keepFile := p + "/.keep"
	mfs.mapFS[keepFile] = &fstest.MapFile{
		Data:    []byte(""),
		Mode:    mode.Perm(),
		ModTime: mfs.modTime,
	}
}

// AddSymlink adds a symbolic link at p pointing at target.
// The target need not exist.
func (mfs *MapFileSystem) AddSymlink(p string, target string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.symlinks[mfs.cleanPath(p)] = target
}

// ReadFile implements FileSystem.
func (mfs *MapFileSystem) ReadFile(name string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	p, err := mfs.resolveLocked(name)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(mfs.mapFS, p)
}

// ReadDir implements FileSystem.
func (mfs *MapFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	p, err := mfs.resolveLocked(name)
	if err != nil {
		return nil, err
	}

	entries, readErr := fs.ReadDir(mfs.mapFS, p)

	// Symlinks live outside the MapFS; merge them into the listing.
	var linkEntries []fs.DirEntry
	for link := range mfs.symlinks {
		if path.Dir(link) == p {
			linkEntries = append(linkEntries, linkDirEntry{name: path.Base(link)})
		}
	}
	if readErr != nil && len(linkEntries) == 0 {
		return nil, readErr
	}
	entries = append(entries, linkEntries...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// Stat implements FileSystem; it follows symlinks.
func (mfs *MapFileSystem) Stat(name string) (fs.FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	p, err := mfs.resolveLocked(name)
	if err != nil {
		return nil, err
	}
	return fs.Stat(mfs.mapFS, p)
}

// Lstat implements FileSystem; symlinks are reported, not followed.
func (mfs *MapFileSystem) Lstat(name string) (fs.FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	p, err := mfs.resolveParentLocked(name)
	if err != nil {
		return nil, err
	}
	if _, ok := mfs.symlinks[p]; ok {
		return linkInfo{name: path.Base(p), modTime: mfs.modTime}, nil
	}
	return fs.Stat(mfs.mapFS, p)
}

// Readlink implements FileSystem.
func (mfs *MapFileSystem) Readlink(name string) (string, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	p, err := mfs.resolveParentLocked(name)
	if err != nil {
		return "", err
	}
	target, ok := mfs.symlinks[p]
	if !ok {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: fmt.Errorf("invalid argument")}
	}
	return target, nil
}

// Exists implements FileSystem.
func (mfs *MapFileSystem) Exists(p string) bool {
	_, err := mfs.Stat(p)
	return err == nil
}

// Open implements FileSystem.
func (mfs *MapFileSystem) Open(name string) (fs.File, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	p, err := mfs.resolveLocked(name)
	if err != nil {
		return nil, err
	}
	return mfs.mapFS.Open(p)
}

// resolveLocked resolves every symlink segment of name, including the
// final one.
func (mfs *MapFileSystem) resolveLocked(name string) (string, error) {
	p := mfs.cleanPath(name)
	for hops := 0; hops < 64; hops++ {
		replaced := false
		segments := strings.Split(p, "/")
		for i := range segments {
			prefix := strings.Join(segments[:i+1], "/")
			target, ok := mfs.symlinks[prefix]
			if !ok {
				continue
			}
			rest := strings.Join(segments[i+1:], "/")
			resolved := mfs.cleanPath(target)
			if !strings.HasPrefix(target, "/") {
				resolved = mfs.cleanPath(path.Join(path.Dir(prefix), target))
			}
			if rest != "" {
				resolved = resolved + "/" + rest
			}
			p = resolved
			replaced = true
			break
		}
		if !replaced {
			return p, nil
		}
	}
	return "", &fs.PathError{Op: "stat", Path: name, Err: fmt.Errorf("too many levels of symbolic links")}
}

// resolveParentLocked resolves symlinks in every segment except the last.
func (mfs *MapFileSystem) resolveParentLocked(name string) (string, error) {
	p := mfs.cleanPath(name)
	dir := path.Dir(p)
	if dir == "." || dir == "" {
		return p, nil
	}
	resolved, err := mfs.resolveLocked(dir)
	if err != nil {
		return "", err
	}
	return resolved + "/" + path.Base(p), nil
}

// ListFiles returns all files in the MapFS for debugging.
func (mfs *MapFileSystem) ListFiles() map[string]string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	result := make(map[string]string)
	for p, file := range mfs.mapFS {
		// Directories are stored as .keep files
		if strings.HasSuffix(p, "/.keep") || p == ".keep" {
			dirPath := path.Dir(p)
			if dirPath == "." {
				dirPath = "/"
			}
			result[dirPath] = "directory"
		} else {
			result[p] = fmt.Sprintf("file (%d bytes)", len(file.Data))
		}
	}
	for p, target := range mfs.symlinks {
		result[p] = fmt.Sprintf("symlink -> %s", target)
	}
	return result
}

func (mfs *MapFileSystem) cleanPath(p string) string {
	cleaned := path.Clean(p)
	if !path.IsAbs(cleaned) {
		cleaned = "/" + cleaned
	}
	return strings.TrimPrefix(cleaned, "/")
}

// linkInfo is the FileInfo reported by Lstat for symlink entries.
type linkInfo struct {
	name    string
	modTime time.Time
}

func (li linkInfo) Name() string       { return li.name }
func (li linkInfo) Size() int64        { return 0 }
func (li linkInfo) Mode() fs.FileMode  { return fs.ModeSymlink }
func (li linkInfo) ModTime() time.Time { return li.modTime }
func (li linkInfo) IsDir() bool        { return false }
func (li linkInfo) Sys() any           { return nil }

// linkDirEntry is the DirEntry synthesized for symlinks in ReadDir.
type linkDirEntry struct {
	name string
}

func (le linkDirEntry) Name() string               { return le.name }
func (le linkDirEntry) IsDir() bool                { return false }
func (le linkDirEntry) Type() fs.FileMode          { return fs.ModeSymlink }
func (le linkDirEntry) Info() (fs.FileInfo, error) { return linkInfo{name: le.name}, nil }
