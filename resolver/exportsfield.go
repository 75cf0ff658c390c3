/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"bennypowers.dev/maslul/packagejson"
)

// exportsFieldPlugin interprets the exports tree of a candidate
// package inside a modules directory. Once a package declares the
// field, it is authoritative: main fields and file guessing do not
// apply, and an unmatched subpath fails this candidate.
func (r *Resolver) exportsFieldPlugin(field string) Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		if !req.Module {
			return nil, nil
		}
		name, sub := splitPackageRequest(req.Request)
		pkgDir := filepath.Join(req.Path, name)

		pkg := r.readDescriptorIn(pkgDir, rc)
		if pkg == nil {
			return nil, nil
		}
		tree := pkg.OrderedField(field)
		if tree == nil {
			return nil, nil
		}

		subpath := "."
		if sub != "" {
			subpath = "./" + sub
		}
		targets, matched, err := evalConditional(tree, subpath, r.options.ConditionNames, false)
		if err != nil {
			err = fmt.Errorf("%s in %s: %w", subpath, pkg.Path, err)
			rc.addCause(err)
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		if !matched {
			rc.addAttempt(fmt.Sprintf("subpath %s is not defined by exports in %s", subpath, pkg.Path))
			return nil, fmt.Errorf("%w: subpath %s is not defined by exports in %s", ErrNotFound, subpath, pkg.Path)
		}

		result, err := r.probeConditionalTargets(req, rc, pkg, field, subpath, targets)
		if err != nil || result != nil {
			return result, err
		}
		return nil, fmt.Errorf("%w: exports of %s did not resolve %s", ErrNotFound, pkg.Path, subpath)
	}
}

// readDescriptorIn reads the first configured descriptor file directly
// inside dir, without walking parents.
func (r *Resolver) readDescriptorIn(dir string, rc *ResolveContext) *packagejson.Package {
	for _, name := range r.options.DescriptionFiles {
		descriptorPath := filepath.Join(dir, name)
		pkg, err := r.descriptors.Read(descriptorPath)
		if err != nil {
			if errors.Is(err, packagejson.ErrInvalidDescriptor) {
				rc.addAttempt(fmt.Sprintf("skipping invalid description file %s", descriptorPath))
				rc.addCause(err)
			} else {
				rc.addMissingDependency(descriptorPath)
			}
			continue
		}
		rc.addFileDependency(descriptorPath)
		return pkg
	}
	return nil
}

// probeConditionalTargets tries each evaluated target in order against
// the file pipeline's terminal stage. Targets must be ./-relative and
// stay lexically inside the package root.
func (r *Resolver) probeConditionalTargets(req *Request, rc *ResolveContext, pkg *packagejson.Package, field, subpath string, targets []string) (*Request, error) {
	for _, target := range targets {
		if !strings.HasPrefix(target, "./") {
			rc.addCause(fmt.Errorf("%w: %q in %s field of %s", ErrInvalidExportsTarget, target, field, pkg.Path))
			continue
		}
		candidate := joinRequest(pkg.Dir, target)
		if !insideRoot(pkg.Dir, candidate) {
			rc.addCause(fmt.Errorf("%w: %q escapes the package root of %s", ErrInvalidExportsTarget, target, pkg.Path))
			continue
		}

		relative := "."
		if rel, err := filepath.Rel(pkg.Dir, candidate); err == nil && rel != "." {
			relative = "./" + filepath.ToSlash(rel)
		}
		next := req.withPath(candidate)
		next.Request = ""
		next.Module = false
		next = next.withDescription(pkg, relative)
		message := fmt.Sprintf("using %s field of %s: %s -> %s", field, pkg.Path, subpath, target)
		result, err := r.forward(HookFinalFile, next, message, rc)
		if err != nil || result != nil {
			return result, err
		}
	}
	return nil, nil
}
