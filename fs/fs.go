/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package fs provides read-only filesystem abstractions for maslul.
package fs

import (
	"io/fs"
	"os"
)

// FileSystem provides the probe surface the resolver consumes.
// It is deliberately read-only: resolution never mutates the
// filesystem. The interface is congruent with
// bennypowers.dev/asimonim/fs.FileSystem restricted to reads, so
// implementations can be shared between the tools by duck typing.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	// The resolver only reads package descriptor files.
	ReadFile(name string) ([]byte, error)

	// ReadDir reads the named directory and returns its entries.
	ReadDir(name string) ([]fs.DirEntry, error)

	// Stat returns file information, following symlinks.
	Stat(name string) (fs.FileInfo, error)

	// Lstat returns file information without following symlinks.
	Lstat(name string) (fs.FileInfo, error)

	// Readlink returns the destination of the named symbolic link.
	Readlink(name string) (string, error)

	// Exists returns true if the path exists.
	Exists(path string) bool

	// Open opens the named file for reading.
	// fs.FS compatibility - allows use with fs.WalkDir.
	Open(name string) (fs.File, error)
}

// OSFileSystem implements FileSystem using the standard os package.
type OSFileSystem struct{}

// NewOSFileSystem creates a new filesystem that uses the standard os package.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// ReadFile reads the entire contents of a file.
func (f *OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// ReadDir reads the named directory and returns its entries.
func (f *OSFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

// Stat returns file information for the named file, following symlinks.
func (f *OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// Lstat returns file information for the named file without following symlinks.
func (f *OSFileSystem) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

// Readlink returns the destination of the named symbolic link.
func (f *OSFileSystem) Readlink(name string) (string, error) {
	return os.Readlink(name)
}

// Exists returns true if the path exists.
func (f *OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Open opens the named file for reading.
func (f *OSFileSystem) Open(name string) (fs.File, error) {
	return os.Open(name)
}
