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

// rootsPlugin rebases /-prefixed requests under each configured root.
// Its position relative to the plain absolute join is decided by the
// preferAbsolute option at wiring time.
func (r *Resolver) rootsPlugin() Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		if !strings.HasPrefix(req.Request, "/") {
			return nil, nil
		}
		for _, root := range r.options.Roots {
			next := req.withPath(joinRequest(root, "."+req.Request))
			next.Request = ""
			message := fmt.Sprintf("root path %s", root)
			result, err := r.forward(HookRelative, next, message, rc)
			if err != nil || result != nil {
				return result, err
			}
		}
		return nil, nil
	}
}

// preferRelativePlugin retries a bare module request as a relative one
// before the module directory walk runs.
func (r *Resolver) preferRelativePlugin() Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		if !req.Module {
			return nil, nil
		}
		next := req.withRequest("./" + req.Request)
		message := fmt.Sprintf("trying %q as relative first", req.Request)
		return r.forward(HookNormalResolve, next, message, rc)
	}
}
