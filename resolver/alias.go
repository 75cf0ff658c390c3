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

// aliasPlugin rewrites requests matching one alias table entry. An
// exact match always applies; a prefix match applies when the
// remainder of the request starts with a slash and the entry is not
// marked OnlyModule.
func (r *Resolver) aliasPlugin(entry AliasEntry, target string) Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		remainder, ok := matchAlias(req.Request, entry)
		if !ok {
			return nil, nil
		}

		if entry.Ignored {
			rc.addAttempt(fmt.Sprintf("aliased %q to ignored", entry.Name))
			ignored := *req
			ignored.Path = ""
			ignored.PathIsFalse = true
			ignored.Request = ""
			return &ignored, nil
		}

		for _, alias := range entry.Alias {
			rewritten := alias + remainder
			// Applying an alias that maps a request onto itself would
			// loop forever; the identical rewrite is skipped.
			if rewritten == req.Request {
				continue
			}
			next := req.withRequest(rewritten)
			message := fmt.Sprintf("aliased with mapping %q: %q -> %q", entry.Name, req.Request, rewritten)
			result, err := r.forward(target, next, message, rc)
			if err != nil || result != nil {
				return result, err
			}
		}
		return nil, nil
	}
}

// matchAlias reports whether request matches the entry, returning the
// unmatched remainder.
func matchAlias(request string, entry AliasEntry) (remainder string, ok bool) {
	if request == entry.Name {
		return "", true
	}
	if entry.OnlyModule {
		return "", false
	}
	if strings.HasPrefix(request, entry.Name+"/") {
		return request[len(entry.Name):], true
	}
	return "", false
}
