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

// directoryExistsPlugin probes the candidate as a directory and enters
// directory handling: main fields, index files, or the directory
// itself when resolving to a context.
func (r *Resolver) directoryExistsPlugin() Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		info, err := r.fs.Stat(req.Path)
		if err != nil {
			rc.addMissingDependency(req.Path)
			rc.addAttempt(fmt.Sprintf("%s doesn't exist", req.Path))
			return nil, nil
		}
		if !info.IsDir() {
			rc.addMissingDependency(req.Path)
			rc.addAttempt(fmt.Sprintf("%s is not a directory", req.Path))
			return nil, nil
		}
		rc.addContextDependency(req.Path)
		return r.forward(HookExistingDirectory, req, fmt.Sprintf("existing directory %s", req.Path), rc)
	}
}

// mainFieldPlugin descends into a directory through one descriptor
// main field. It only consults the descriptor sitting in the directory
// itself, not one inherited from a parent.
func (r *Resolver) mainFieldPlugin(field string) Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		pkg := req.DescriptionFileData
		if pkg == nil || pkg.Dir != filepath.Clean(req.Path) {
			return nil, nil
		}
		main, ok := pkg.StringField(field)
		if !ok {
			return nil, nil
		}
		if main[0] != '.' && main[0] != '/' {
			main = "./" + main
		}
		next := req.withRequest(main)
		message := fmt.Sprintf("use %s from %s field in %s", main, field, pkg.Path)
		return r.forward(HookNormalResolve, next, message, rc)
	}
}

// useFilePlugin tries one configured index name inside the directory,
// with extension handling applied.
func (r *Resolver) useFilePlugin(file string) Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		next := req.withPath(filepath.Join(req.Path, file))
		message := fmt.Sprintf("using path: %s", next.Path)
		return r.forward(HookUndescribedRawFile, next, message, rc)
	}
}
