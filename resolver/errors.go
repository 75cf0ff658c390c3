/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Sentinel errors for resolution.
var (
	// ErrNotFound indicates a resolution branch produced no result.
	// Handlers return errors wrapping ErrNotFound to terminate a hook
	// with an explicit failure; anything else aborts the pipeline.
	ErrNotFound = errors.New("module not found")

	// ErrExportsBlocked indicates conditional exports forbade the
	// requested subpath with an explicit null.
	ErrExportsBlocked = errors.New("subpath blocked by package exports")

	// ErrInvalidExportsTarget indicates an exports or imports value that
	// is not a relative path or escapes the package root.
	ErrInvalidExportsTarget = errors.New("invalid exports target")

	// ErrRestrictionViolation indicates a restriction matched the
	// terminal path.
	ErrRestrictionViolation = errors.New("path violates resolve restriction")

	// ErrUnknownHook indicates a plugin referenced a hook that was
	// never created.
	ErrUnknownHook = errors.New("unknown hook")
)

// NotFoundError is returned by Resolve when the pipeline is exhausted.
// It aggregates every attempt made during the call so callers can
// report why resolution failed across all candidate paths.
type NotFoundError struct {
	// LookupPath and Request identify the failed call.
	LookupPath string
	Request    string

	// Attempts is the ordered record of messages accumulated while the
	// pipeline ran.
	Attempts []string

	// Causes aggregates candidate-level errors, such as blocked
	// exports, that were absorbed along the way.
	Causes *multierror.Error
}

// Error implements error.
func (e *NotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "can't resolve %q in %q", e.Request, e.LookupPath)
	for _, attempt := range e.Attempts {
		b.WriteString("\n  ")
		b.WriteString(attempt)
	}
	if e.Causes != nil && len(e.Causes.Errors) > 0 {
		b.WriteString("\n")
		b.WriteString(e.Causes.Error())
	}
	return b.String()
}

// Unwrap lets errors.Is(err, ErrNotFound) identify resolution failures.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
