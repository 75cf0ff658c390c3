/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"path/filepath"
	"strings"
)

// joinRequest joins the lookup path and the remaining request into a
// single candidate path.
func joinRequest(path, request string) string {
	if request == "" {
		return filepath.Clean(path)
	}
	if filepath.IsAbs(request) {
		return filepath.Clean(request)
	}
	return filepath.Join(path, request)
}

// splitPackageRequest splits a bare module request into the package
// name and the subpath inside it. Scoped names keep their two leading
// segments.
func splitPackageRequest(request string) (name, subpath string) {
	slash := strings.Index(request, "/")
	if strings.HasPrefix(request, "@") && slash >= 0 {
		second := strings.Index(request[slash+1:], "/")
		if second < 0 {
			return request, ""
		}
		slash = slash + 1 + second
	}
	if slash < 0 {
		return request, ""
	}
	return request[:slash], request[slash+1:]
}

// insideRoot reports whether path is lexically inside root.
func insideRoot(root, path string) bool {
	root = filepath.Clean(root)
	path = filepath.Clean(path)
	if root == path {
		return true
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}
