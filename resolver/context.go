/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import "github.com/hashicorp/go-multierror"

// ResolveContext is the mutable per-call sidecar. It is owned by a
// single call; sub-resolves inherit the same instance and append to
// its dependency sets.
type ResolveContext struct {
	// FileDependencies collects files whose existence or content
	// affected the result.
	FileDependencies map[string]struct{}

	// ContextDependencies collects directories whose listing affected
	// the result.
	ContextDependencies map[string]struct{}

	// MissingDependencies collects paths that were probed and found
	// absent. A file appearing at one of these paths can change the
	// result.
	MissingDependencies map[string]struct{}

	// Log receives human-readable progress messages when set.
	Log func(string)

	// stack holds "hook|request" strings for the recursion guard.
	stack map[string]struct{}

	// attempts is the ordered record of messages for diagnostics.
	attempts []string

	// causes aggregates absorbed candidate-level errors.
	causes *multierror.Error
}

// NewResolveContext creates a context with dependency tracking enabled.
func NewResolveContext() *ResolveContext {
	return &ResolveContext{
		FileDependencies:    make(map[string]struct{}),
		ContextDependencies: make(map[string]struct{}),
		MissingDependencies: make(map[string]struct{}),
	}
}

// Attempts returns the messages recorded so far, in order.
func (rc *ResolveContext) Attempts() []string {
	return rc.attempts
}

func (rc *ResolveContext) addAttempt(message string) {
	rc.attempts = append(rc.attempts, message)
	if rc.Log != nil {
		rc.Log(message)
	}
}

func (rc *ResolveContext) addCause(err error) {
	rc.causes = multierror.Append(rc.causes, err)
}

func (rc *ResolveContext) addFileDependency(path string) {
	if rc.FileDependencies != nil {
		rc.FileDependencies[path] = struct{}{}
	}
}

func (rc *ResolveContext) addContextDependency(path string) {
	if rc.ContextDependencies != nil {
		rc.ContextDependencies[path] = struct{}{}
	}
}

func (rc *ResolveContext) addMissingDependency(path string) {
	if rc.MissingDependencies != nil {
		rc.MissingDependencies[path] = struct{}{}
	}
}

func (rc *ResolveContext) hasStack(key string) bool {
	_, ok := rc.stack[key]
	return ok
}

func (rc *ResolveContext) pushStack(key string) {
	if rc.stack == nil {
		rc.stack = make(map[string]struct{})
	}
	rc.stack[key] = struct{}{}
}

func (rc *ResolveContext) popStack(key string) {
	delete(rc.stack, key)
}

func (rc *ResolveContext) depth() int {
	return len(rc.stack)
}
