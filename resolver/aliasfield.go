/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import "fmt"

// aliasFieldPlugin applies alias maps declared in the enclosing
// descriptor, e.g. the browser field. Keys are matched against the
// remaining request, or, when that is empty, against the candidate's
// path relative to the descriptor root. A false value marks the module
// deliberately absent.
func (r *Resolver) aliasFieldPlugin(field, target string) Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		if req.DescriptionFileData == nil {
			return nil, nil
		}
		table, ok := req.DescriptionFileData.Field(field).(map[string]any)
		if !ok {
			return nil, nil
		}

		inner := req.Request
		if inner == "" {
			inner = req.RelativePath
		}
		value, ok := table[inner]
		if !ok {
			return nil, nil
		}

		switch v := value.(type) {
		case bool:
			if v {
				return nil, nil
			}
			rc.addAttempt(fmt.Sprintf("aliased %q to ignored by description file %s field %q", inner, req.DescriptionFilePath, field))
			ignored := *req
			ignored.Path = ""
			ignored.PathIsFalse = true
			ignored.Request = ""
			return &ignored, nil
		case string:
			if v == inner {
				return nil, nil
			}
			next := req.withRequest(v)
			message := fmt.Sprintf("aliased from description file %s field %q: %q -> %q", req.DescriptionFilePath, field, inner, v)
			return r.forward(target, next, message, rc)
		default:
			return nil, nil
		}
	}
}
