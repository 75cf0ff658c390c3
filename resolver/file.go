/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import "fmt"

// fileKickoffPlugin enters the file candidate pipeline for requests
// that do not explicitly denote a directory.
func (r *Resolver) fileKickoffPlugin() Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		if req.Directory {
			return nil, nil
		}
		return r.forward(HookUndescribedRawFile, req, "", rc)
	}
}

// fileExistsPlugin probes the candidate path and forwards real files
// to the terminal stages.
func (r *Resolver) fileExistsPlugin() Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		info, err := r.fs.Stat(req.Path)
		if err != nil {
			rc.addMissingDependency(req.Path)
			rc.addAttempt(fmt.Sprintf("%s doesn't exist", req.Path))
			return nil, nil
		}
		if info.IsDir() {
			rc.addMissingDependency(req.Path)
			rc.addAttempt(fmt.Sprintf("%s is a directory", req.Path))
			return nil, nil
		}
		rc.addFileDependency(req.Path)
		return r.forward(HookExistingFile, req, fmt.Sprintf("existing file: %s", req.Path), rc)
	}
}

// extensionPlugin tries the candidate with one configured extension
// appended.
func (r *Resolver) extensionPlugin(extension string) Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		next := req.withPath(req.Path + extension)
		return r.forward(HookFinalFile, next, "", rc)
	}
}
