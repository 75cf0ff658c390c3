/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// restrictionsPlugin rejects terminal paths matched by a restriction.
// It runs after symlink canonicalization, so restrictions see the same
// path the caller receives.
func (r *Resolver) restrictionsPlugin() Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		for _, restriction := range r.options.Restrictions {
			rejected := false
			switch {
			case restriction.Predicate != nil:
				rejected = restriction.Predicate(req.Path)
			case restriction.Glob != "":
				matched, err := doublestar.Match(restriction.Glob, req.Path)
				if err != nil {
					return nil, err
				}
				rejected = matched
			}
			if rejected {
				err := fmt.Errorf("%w: %s", ErrRestrictionViolation, req.Path)
				rc.addCause(err)
				rc.addAttempt(err.Error())
				return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
			}
		}
		return nil, nil
	}
}
