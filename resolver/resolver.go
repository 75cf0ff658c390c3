/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolver resolves module requests to filesystem paths.
//
// Given a starting directory and a request string such as "./a",
// "pkg/sub" or "/abs", the resolver determines the absolute path of
// the target file by running the request through a pipeline of named
// hooks. Built-in plugins cover aliases, descriptor files, conditional
// exports and imports, main fields, extensions, module directory walks
// and symlink canonicalization; user plugins can tap any hook.
//
// The pipeline stages, in canonical order:
//
//	resolve → parsedResolve → describedResolve → rawResolve →
//	normalResolve → internal | module → resolveAsModule → relative →
//	describedRelative → undescribedRawFile → rawFile → file →
//	finalFile → existingFile → resolved
//
// with existingDirectory branching off describedRelative for directory
// candidates.
package resolver

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	maslulfs "bennypowers.dev/maslul/fs"
	"bennypowers.dev/maslul/packagejson"
)

// Canonical hook names.
const (
	HookResolve            = "resolve"
	HookParsedResolve      = "parsedResolve"
	HookDescribedResolve   = "describedResolve"
	HookRawResolve         = "rawResolve"
	HookNormalResolve      = "normalResolve"
	HookInternal           = "internal"
	HookModule             = "module"
	HookResolveAsModule    = "resolveAsModule"
	HookRelative           = "relative"
	HookDescribedRelative  = "describedRelative"
	HookUndescribedRawFile = "undescribedRawFile"
	HookRawFile            = "rawFile"
	HookFile               = "file"
	HookFinalFile          = "finalFile"
	HookExistingFile       = "existingFile"
	HookExistingDirectory  = "existingDirectory"
	HookResolved           = "resolved"
)

// maxResolveDepth caps pipeline depth on top of the (hook, request)
// recursion guard.
const maxResolveDepth = 256

// unsafeCacheSize bounds the whole-result cache.
const unsafeCacheSize = 4096

// Plugin attaches handlers to a resolver's hooks.
type Plugin interface {
	Apply(r *Resolver) error
}

// Result is a completed resolution.
type Result struct {
	// Path is the absolute resolved path, canonicalized when symlink
	// resolution is enabled.
	Path string

	// Query and Fragment are preserved verbatim from the request.
	Query    string
	Fragment string

	// Ignored marks a module deliberately mapped to nothing. It is
	// distinct from both success and failure.
	Ignored bool

	// Context is the opaque map the caller passed in.
	Context map[string]string
}

// Resolver runs the resolution pipeline. A Resolver is constructed
// once per configuration and is safe for concurrent use: the hook
// graph is immutable after construction and the caches guard their own
// state.
type Resolver struct {
	options     Options
	fs          maslulfs.FileSystem
	descriptors *packagejson.Cache

	hooks map[string]*Hook

	unsafeCache *lru.Cache
}

// New constructs a Resolver from options. The built-in plugin set is
// wired into the canonical hook order, then user plugins are applied
// in declared order.
func New(options Options) (*Resolver, error) {
	if options.FileSystem == nil {
		return nil, fmt.Errorf("resolver: FileSystem is required")
	}
	options = options.withDefaults()

	r := &Resolver{
		options:     options,
		fs:          options.FileSystem,
		descriptors: packagejson.NewCache(options.FileSystem),
		hooks:       make(map[string]*Hook),
	}

	if options.UnsafeCache {
		cache, err := lru.New(unsafeCacheSize)
		if err != nil {
			return nil, err
		}
		r.unsafeCache = cache
	}

	for _, name := range []string{
		HookResolve, HookParsedResolve, HookDescribedResolve,
		HookRawResolve, HookNormalResolve, HookInternal, HookModule,
		HookResolveAsModule, HookRelative, HookDescribedRelative,
		HookUndescribedRawFile, HookRawFile, HookFile, HookFinalFile,
		HookExistingFile, HookExistingDirectory, HookResolved,
	} {
		r.EnsureHook(name)
	}

	r.applyBuiltins()

	for _, plugin := range options.Plugins {
		if err := plugin.Apply(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Options returns the resolver's effective options.
func (r *Resolver) Options() Options {
	return r.options
}

// FileSystem returns the probe capability the resolver consults.
func (r *Resolver) FileSystem() maslulfs.FileSystem {
	return r.fs
}

// Descriptors returns the descriptor cache. Purge it together with the
// probe cache when the filesystem changed underneath the resolver.
func (r *Resolver) Descriptors() *packagejson.Cache {
	return r.descriptors
}

// Resolve resolves request relative to lookupPath. The ctx map is
// carried opaquely on the request and returned on the result. rc may
// be nil; pass one to collect dependency sets and an attempt trace.
func (r *Resolver) Resolve(ctx map[string]string, lookupPath, request string, rc *ResolveContext) (*Result, error) {
	if rc == nil {
		rc = NewResolveContext()
	}

	cacheKey := ""
	if r.unsafeCache != nil {
		cacheKey = r.cacheKey(ctx, lookupPath, request)
		if cached, ok := r.unsafeCache.Get(cacheKey); ok {
			return cached.(*Result), nil
		}
	}

	path, query, fragment := parseIdentifier(request)
	req := &Request{
		Path:            lookupPath,
		Request:         path,
		Query:           query,
		Fragment:        fragment,
		Module:          isModuleRequest(path),
		Directory:       isDirectoryRequest(path),
		InternalRequest: strings.HasPrefix(path, "#"),
		Context:         ctx,
	}

	resolved, err := r.DoResolve(HookResolve, req, fmt.Sprintf("resolve %q in %q", request, lookupPath), rc)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if resolved == nil || errors.Is(err, ErrNotFound) {
		return nil, &NotFoundError{
			LookupPath: lookupPath,
			Request:    request,
			Attempts:   rc.Attempts(),
			Causes:     rc.causes,
		}
	}

	result := &Result{
		Query:    resolved.Query,
		Fragment: resolved.Fragment,
		Context:  resolved.Context,
	}
	if resolved.PathIsFalse {
		result.Ignored = true
	} else {
		result.Path = resolved.Path
	}

	if r.unsafeCache != nil {
		if r.options.CachePredicate == nil || r.options.CachePredicate(result) {
			r.unsafeCache.Add(cacheKey, result)
		}
	}
	return result, nil
}

func (r *Resolver) cacheKey(ctx map[string]string, lookupPath, request string) string {
	var b strings.Builder
	b.WriteString(lookupPath)
	b.WriteByte(0)
	b.WriteString(request)
	if *r.options.CacheWithContext && len(ctx) > 0 {
		// Context maps are tiny; a sorted render keeps the key stable.
		keys := make([]string, 0, len(ctx))
		for k := range ctx {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteByte(0)
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(ctx[k])
		}
	}
	return b.String()
}

// DoResolve dispatches req to the named hook. Plugins drive every hop
// through here so the (hook, request) recursion guard and the attempt
// log see the whole pipeline. A message, when non-empty, is recorded
// for diagnostics.
//
// The return contract mirrors Handler: (nil, nil) means the hook was
// exhausted with no result; an error wrapping ErrNotFound is an
// explicit failure for this branch; any other error is fatal.
func (r *Resolver) DoResolve(hookName string, req *Request, message string, rc *ResolveContext) (*Request, error) {
	hook, err := r.GetHook(hookName)
	if err != nil {
		return nil, err
	}

	key := hookName + "|" + req.key()
	if rc.hasStack(key) {
		rc.addAttempt(fmt.Sprintf("circular resolution: %s at %s", hookName, req.describe()))
		return nil, fmt.Errorf("%w: circular resolution at %s", ErrNotFound, req.describe())
	}
	if rc.depth() >= maxResolveDepth {
		return nil, fmt.Errorf("%w: resolution exceeded depth limit at %s", ErrNotFound, req.describe())
	}
	rc.pushStack(key)
	defer rc.popStack(key)

	if message != "" {
		rc.addAttempt(message)
	}

	for _, handler := range hook.handlers() {
		result, err := handler.fn(req, rc)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
	}
	return nil, nil
}

// forward is the common bridge body: dispatch to a hook and absorb
// branch failures into a decline so the next handler can try.
func (r *Resolver) forward(hookName string, req *Request, message string, rc *ResolveContext) (*Request, error) {
	result, err := r.DoResolve(hookName, req, message, rc)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return result, nil
}
