/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"fmt"
	"strings"
)

// internalKickoffPlugin routes #-prefixed requests into the internal
// hook. Such a request has no other meaning, so an unresolved internal
// branch fails explicitly instead of falling through to module
// handling.
func (r *Resolver) internalKickoffPlugin() Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		if !req.InternalRequest {
			return nil, nil
		}
		result, err := r.DoResolve(HookInternal, req, "", rc)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return nil, fmt.Errorf("%w: internal request %q is not defined by imports", ErrNotFound, req.Request)
		}
		return result, nil
	}
}

// importsFieldPlugin interprets the imports tree of the enclosing
// descriptor for #-prefixed requests. Relative targets probe inside
// the package; bare targets re-enter resolution as module requests
// from the package root.
func (r *Resolver) importsFieldPlugin(field string) Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		if !req.InternalRequest || req.DescriptionFileData == nil {
			return nil, nil
		}
		pkg := req.DescriptionFileData
		tree := pkg.OrderedField(field)
		if tree == nil {
			return nil, nil
		}

		targets, matched, err := evalConditional(tree, req.Request, r.options.ConditionNames, true)
		if err != nil {
			err = fmt.Errorf("%s in %s: %w", req.Request, pkg.Path, err)
			rc.addCause(err)
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		if !matched {
			return nil, nil
		}

		for _, target := range targets {
			if strings.HasPrefix(target, "#") {
				rc.addCause(fmt.Errorf("%w: nested internal target %q in %s field of %s", ErrInvalidExportsTarget, target, field, pkg.Path))
				continue
			}
			if strings.HasPrefix(target, "./") {
				result, err := r.probeConditionalTargets(req, rc, pkg, field, req.Request, []string{target})
				if err != nil || result != nil {
					return result, err
				}
				continue
			}

			// A bare target restarts resolution from the package root.
			next := req.withRequest(target)
			next = next.withPath(pkg.Dir)
			message := fmt.Sprintf("using %s field of %s: %s -> %s", field, pkg.Path, req.Request, target)
			result, err := r.forward(HookRawResolve, next, message, rc)
			if err != nil || result != nil {
				return result, err
			}
		}
		return nil, fmt.Errorf("%w: imports of %s did not resolve %s", ErrNotFound, pkg.Path, req.Request)
	}
}
