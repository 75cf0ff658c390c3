/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"fmt"
	"path/filepath"
)

// moduleKickoffPlugin routes bare module requests into the module
// directory walks.
func (r *Resolver) moduleKickoffPlugin() Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		if !req.Module {
			return nil, nil
		}
		return r.forward(HookModule, req, "", rc)
	}
}

// joinRequestPlugin collapses a relative or absolute request onto its
// lookup path and enters the candidate pipeline.
func (r *Resolver) joinRequestPlugin() Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		if req.Module || req.InternalRequest || req.PathIsFalse {
			return nil, nil
		}
		next := req.withPath(joinRequest(req.Path, req.Request))
		next.Request = ""
		return r.forward(HookRelative, next, "", rc)
	}
}

// modulesInHierarchicalDirectoriesPlugin walks upward from the lookup
// path probing for one named module directory, dispatching each
// existing candidate to the per-directory module stage.
func (r *Resolver) modulesInHierarchicalDirectoriesPlugin(directory string) Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		dir := req.Path
		for {
			// A modules directory does not search inside itself.
			if filepath.Base(dir) != directory {
				candidate := filepath.Join(dir, directory)
				info, err := r.fs.Stat(candidate)
				if err != nil || !info.IsDir() {
					rc.addMissingDependency(candidate)
				} else {
					rc.addContextDependency(candidate)
					next := req.withPath(candidate)
					message := fmt.Sprintf("looking for modules in %s", candidate)
					result, err := r.forward(HookResolveAsModule, next, message, rc)
					if err != nil || result != nil {
						return result, err
					}
				}
			}

			parent := filepath.Dir(dir)
			if parent == dir {
				return nil, nil
			}
			dir = parent
		}
	}
}

// modulesInRootPathPlugin tries a single absolute module root.
func (r *Resolver) modulesInRootPathPlugin(root string) Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		info, err := r.fs.Stat(root)
		if err != nil || !info.IsDir() {
			rc.addMissingDependency(root)
			return nil, nil
		}
		rc.addContextDependency(root)
		next := req.withPath(root)
		message := fmt.Sprintf("looking for modules in %s", root)
		return r.forward(HookResolveAsModule, next, message, rc)
	}
}

// moduleJoinPlugin is the fallback inside a modules directory when no
// exports field claimed the request: the package subtree is resolved
// like a relative candidate, picking up main fields, index files and
// extensions.
func (r *Resolver) moduleJoinPlugin() Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		next := req.withPath(joinRequest(req.Path, req.Request))
		next.Request = ""
		next.Module = false
		return r.forward(HookRelative, next, "", rc)
	}
}
