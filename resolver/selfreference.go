/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"fmt"
	"strings"

	"bennypowers.dev/maslul/packagejson"
)

// selfReferencePlugin resolves a bare request that names the enclosing
// package through that package's own exports tree. It only engages
// when the descriptor declares both a name and an exports field; the
// exports tree is then authoritative for the request.
func (r *Resolver) selfReferencePlugin() Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		if !req.Module || req.DescriptionFileData == nil {
			return nil, nil
		}
		pkg := req.DescriptionFileData
		if pkg.Name == "" {
			return nil, nil
		}

		var sub string
		switch {
		case req.Request == pkg.Name:
			sub = ""
		case strings.HasPrefix(req.Request, pkg.Name+"/"):
			sub = req.Request[len(pkg.Name)+1:]
		default:
			return nil, nil
		}

		var field string
		var tree *packagejson.OrderedValue
		for _, f := range r.options.ExportsFields {
			if t := pkg.OrderedField(f); t != nil {
				field, tree = f, t
				break
			}
		}
		if tree == nil {
			return nil, nil
		}

		subpath := "."
		if sub != "" {
			subpath = "./" + sub
		}
		rc.addAttempt(fmt.Sprintf("self reference of %s in %s", pkg.Name, pkg.Dir))

		targets, matched, err := evalConditional(tree, subpath, r.options.ConditionNames, false)
		if err != nil {
			err = fmt.Errorf("%s in %s: %w", subpath, pkg.Path, err)
			rc.addCause(err)
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		if !matched {
			return nil, fmt.Errorf("%w: subpath %s is not defined by exports in %s", ErrNotFound, subpath, pkg.Path)
		}

		result, err := r.probeConditionalTargets(req, rc, pkg, field, subpath, targets)
		if err != nil || result != nil {
			return result, err
		}
		return nil, fmt.Errorf("%w: exports of %s did not resolve %s", ErrNotFound, pkg.Path, subpath)
	}
}
