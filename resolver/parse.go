/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import "strings"

// parseIdentifier splits a request string into path, query and
// fragment at the first unescaped ? and #. A backslash escapes either
// character. A # in the first position belongs to the path: that is an
// internal imports request, not a fragment.
func parseIdentifier(identifier string) (path, query, fragment string) {
	var part strings.Builder
	section := 0 // 0 path, 1 query, 2 fragment
	var parts [3]string

	flush := func(next int) {
		parts[section] = part.String()
		part.Reset()
		section = next
	}

	for i := 0; i < len(identifier); i++ {
		c := identifier[i]
		switch {
		case c == '\\' && i+1 < len(identifier) && (identifier[i+1] == '?' || identifier[i+1] == '#'):
			i++
			part.WriteByte(identifier[i])
		case c == '?' && section == 0:
			flush(1)
			part.WriteByte('?')
		case c == '#' && section < 2 && !(section == 0 && part.Len() == 0):
			flush(2)
			part.WriteByte('#')
		default:
			part.WriteByte(c)
		}
	}
	parts[section] = part.String()

	return parts[0], parts[1], parts[2]
}

// parsePlugin re-derives the request classification and enters the
// parsed stage. Requests rewritten mid-pipeline re-enter further down,
// so this only runs once per top-level call.
func (r *Resolver) parsePlugin(target string) Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		next := *req
		next.Module = isModuleRequest(req.Request)
		next.Directory = isDirectoryRequest(req.Request)
		next.InternalRequest = strings.HasPrefix(req.Request, "#")
		return r.forward(target, &next, "", rc)
	}
}
