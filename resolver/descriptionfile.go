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

	"bennypowers.dev/maslul/packagejson"
)

// descriptionFilePlugin walks upward from the request path to find the
// nearest descriptor file and populates the descriptor fields before
// forwarding. The first configured name found in a directory wins.
// When no descriptor exists anywhere up the tree, the request proceeds
// undescribed.
func (r *Resolver) descriptionFilePlugin(target string) Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		dir := req.Path
		for {
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
				relative := "."
				if rel, err := filepath.Rel(dir, req.Path); err == nil && rel != "." {
					relative = "./" + filepath.ToSlash(rel)
				}
				described := req.withDescription(pkg, relative)
				message := fmt.Sprintf("using description file: %s (relative path: %s)", descriptorPath, relative)
				return r.forward(target, described, message, rc)
			}

			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
		return r.forward(target, req, "", rc)
	}
}
