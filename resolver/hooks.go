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

// Handler is a single resolution step attached to a hook.
//
// A handler returns (nil, nil) to decline, letting the next handler
// run. It returns a non-nil Request to terminate the hook with a
// result. It returns an error wrapping ErrNotFound to terminate the
// hook with an explicit failure for this branch. Any other error
// aborts the whole pipeline.
type Handler func(req *Request, rc *ResolveContext) (*Request, error)

// Hook is a named extension point holding an ordered handler list.
// Handlers tapped via a before- or after- prefixed name run before or
// after the plainly tapped ones.
type Hook struct {
	name string

	befores []namedHandler
	taps    []namedHandler
	afters  []namedHandler
}

type namedHandler struct {
	plugin string
	fn     Handler
}

// Name returns the hook's base name.
func (h *Hook) Name() string {
	return h.name
}

// handlers returns the full ordered handler list.
func (h *Hook) handlers() []namedHandler {
	out := make([]namedHandler, 0, len(h.befores)+len(h.taps)+len(h.afters))
	out = append(out, h.befores...)
	out = append(out, h.taps...)
	out = append(out, h.afters...)
	return out
}

// hookRef addresses a segment of a hook: the base name plus an
// optional before-/after- stage.
type hookRef struct {
	base  string
	stage int // -1 before, 0 normal, 1 after
}

func parseHookName(name string) hookRef {
	if rest, ok := strings.CutPrefix(name, "before-"); ok {
		return hookRef{base: rest, stage: -1}
	}
	if rest, ok := strings.CutPrefix(name, "after-"); ok {
		return hookRef{base: rest, stage: 1}
	}
	return hookRef{base: name}
}

// EnsureHook returns the named hook, creating it if necessary.
// before-X and after-X resolve to hook X; handlers tapped through
// those names are ordered around X's plain handlers.
func (r *Resolver) EnsureHook(name string) *Hook {
	ref := parseHookName(name)
	if hook, ok := r.hooks[ref.base]; ok {
		return hook
	}
	hook := &Hook{name: ref.base}
	r.hooks[ref.base] = hook
	return hook
}

// GetHook returns the named hook, or ErrUnknownHook when it was never
// created.
func (r *Resolver) GetHook(name string) (*Hook, error) {
	ref := parseHookName(name)
	hook, ok := r.hooks[ref.base]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHook, name)
	}
	return hook, nil
}

// Tap registers a handler on the named hook. The pluginName appears in
// trace output. Registration order is execution order within a stage.
func (r *Resolver) Tap(name, pluginName string, fn Handler) {
	ref := parseHookName(name)
	hook := r.EnsureHook(ref.base)
	handler := namedHandler{plugin: pluginName, fn: fn}
	switch ref.stage {
	case -1:
		hook.befores = append(hook.befores, handler)
	case 1:
		hook.afters = append(hook.afters, handler)
	default:
		hook.taps = append(hook.taps, handler)
	}
}
