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

// Request is the in-progress resolution state threaded through the
// pipeline. Requests are values: plugins never mutate one in place,
// they derive a modified copy, so concurrent sub-resolves cannot
// alias.
type Request struct {
	// Path is the absolute directory serving as the current lookup
	// base, or a resolved candidate once Request is empty.
	Path string

	// PathIsFalse marks the path as indeterminate. An alias mapping a
	// request to false produces this sentinel, which terminates the
	// pipeline as an ignored module.
	PathIsFalse bool

	// Request is the remaining unresolved suffix.
	Request string

	// Query is the ?... part of the original request, verbatim.
	Query string

	// Fragment is the #... part of the original request, verbatim.
	Fragment string

	// Directory is true when the request explicitly denotes a
	// directory.
	Directory bool

	// Module is true while this is still a bare module request.
	Module bool

	// InternalRequest is true for #-prefixed requests, which resolve
	// through the enclosing descriptor's imports field.
	InternalRequest bool

	// DescriptionFilePath, DescriptionFileRoot, DescriptionFileData
	// and RelativePath are populated together once the enclosing
	// descriptor file is found.
	DescriptionFilePath string
	DescriptionFileRoot string
	DescriptionFileData *packagejson.Package
	RelativePath        string

	// Context is an opaque key/value map carried from the caller.
	Context map[string]string
}

// key produces the stable identity used for the (hook, request)
// recursion guard.
func (r *Request) key() string {
	path := r.Path
	if r.PathIsFalse {
		path = "false"
	}
	return fmt.Sprintf("%s\x00%s\x00%s\x00%s\x00%t\x00%t", path, r.Request, r.Query, r.Fragment, r.Directory, r.Module)
}

// describe renders the request for attempt logs.
func (r *Request) describe() string {
	path := r.Path
	if r.PathIsFalse {
		path = "<indeterminate>"
	}
	if r.Request == "" {
		return path
	}
	return path + " " + r.Request
}

// withRequest derives a copy with a new remaining request, reclassified
// as module or relative.
func (r *Request) withRequest(request string) *Request {
	next := *r
	next.Request = request
	next.Module = isModuleRequest(request)
	next.InternalRequest = strings.HasPrefix(request, "#")
	next.Directory = isDirectoryRequest(request)
	return &next
}

// withPath derives a copy rebased onto a new lookup path.
func (r *Request) withPath(path string) *Request {
	next := *r
	next.Path = path
	next.PathIsFalse = false
	return &next
}

// withDescription derives a copy carrying descriptor fields. The caller
// supplies the relative path from root to the current candidate; it is
// set here so the three descriptor fields and RelativePath always
// change together.
func (r *Request) withDescription(pkg *packagejson.Package, relativePath string) *Request {
	next := *r
	next.DescriptionFilePath = pkg.Path
	next.DescriptionFileRoot = pkg.Dir
	next.DescriptionFileData = pkg
	next.RelativePath = relativePath
	return &next
}

// terminal reports whether the request has been narrowed to a single
// candidate path.
func (r *Request) terminal() bool {
	return r.Request == "" && !r.PathIsFalse
}

// isModuleRequest reports whether request is a bare module request:
// not relative, not absolute, not an internal #-request.
func isModuleRequest(request string) bool {
	if request == "" {
		return false
	}
	switch request[0] {
	case '.', '/', '#':
		return false
	}
	return true
}

// isDirectoryRequest reports whether the request explicitly denotes a
// directory.
func isDirectoryRequest(request string) bool {
	return strings.HasSuffix(request, "/") || request == "." || request == ".."
}
