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

// extensionAliasPlugin replaces one extension with a priority-ordered
// list of alternatives before the file pipeline runs. The replacement
// list supersedes the original: when every alternative fails, the
// original spelling is not tried. Include the original extension in
// the list to keep it as a fallback.
func (r *Resolver) extensionAliasPlugin(alias ExtensionAlias) Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		if !strings.HasSuffix(req.Path, alias.Extension) {
			return nil, nil
		}
		base := strings.TrimSuffix(req.Path, alias.Extension)
		for _, replacement := range alias.Aliases {
			next := req.withPath(base + replacement)
			message := fmt.Sprintf("aliased extension %s -> %s for %s", alias.Extension, replacement, req.Path)
			result, err := r.forward(HookRawFile, next, message, rc)
			if err != nil || result != nil {
				return result, err
			}
		}
		return nil, fmt.Errorf("%w: no extension alias of %s for %s resolved", ErrNotFound, alias.Extension, req.Path)
	}
}
