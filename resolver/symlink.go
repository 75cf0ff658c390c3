/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"strings"
)

// maxSymlinkHops bounds canonicalization against link cycles.
const maxSymlinkHops = 32

// symlinkPlugin canonicalizes the resolved path by resolving each
// segment that is a symbolic link, then re-enters the terminal stage
// with the canonical path.
func (r *Resolver) symlinkPlugin() Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		canonical, err := r.canonicalize(req.Path)
		if err != nil || canonical == req.Path {
			return nil, nil
		}
		next := req.withPath(canonical)
		message := fmt.Sprintf("resolved symlink to %s", canonical)
		return r.forward(HookExistingFile, next, message, rc)
	}
}

// canonicalize resolves symlinks segment by segment, restarting from
// the front after each substitution.
func (r *Resolver) canonicalize(path string) (string, error) {
	current := filepath.Clean(path)
	for hops := 0; hops < maxSymlinkHops; hops++ {
		replaced := false
		segments := strings.Split(current, string(filepath.Separator))
		prefix := ""
		for i, segment := range segments {
			if segment == "" {
				prefix = string(filepath.Separator)
				continue
			}
			prefix = filepath.Join(prefix, segment)
			info, err := r.fs.Lstat(prefix)
			if err != nil {
				return current, err
			}
			if info.Mode()&iofs.ModeSymlink == 0 {
				continue
			}
			target, err := r.fs.Readlink(prefix)
			if err != nil {
				return current, err
			}
			if !filepath.IsAbs(target) {
				target = filepath.Join(filepath.Dir(prefix), target)
			}
			rest := segments[i+1:]
			current = filepath.Join(append([]string{target}, rest...)...)
			replaced = true
			break
		}
		if !replaced {
			return current, nil
		}
	}
	return "", fmt.Errorf("too many levels of symbolic links resolving %s", path)
}
