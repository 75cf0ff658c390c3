/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package packagejson reads and caches package descriptor files.
package packagejson

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
)

// ErrInvalidDescriptor indicates a descriptor file that is unparseable
// or structurally invalid.
var ErrInvalidDescriptor = errors.New("invalid package descriptor")

// Package is a parsed package descriptor.
type Package struct {
	// Path is the descriptor file path.
	Path string

	// Dir is the directory containing the descriptor.
	Dir string

	// Name is the package name, if declared.
	Name string

	// Raw is the decoded descriptor content.
	Raw map[string]any

	// ordered mirrors Raw with declared key order preserved. Condition
	// objects in exports and imports are order-sensitive, so the whole
	// tree is kept ordered rather than guessing which fields need it.
	ordered *OrderedValue
}

// Parse decodes descriptor data read from path. Comments and trailing
// commas are tolerated, the same as other tooling in this family.
func Parse(path string, data []byte) (*Package, error) {
	clean := jsonc.ToJSON(data)

	var raw map[string]any
	if err := json.Unmarshal(clean, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDescriptor, path, err)
	}

	ordered, err := DecodeOrdered(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDescriptor, path, err)
	}

	pkg := &Package{
		Path:    path,
		Dir:     filepath.Dir(path),
		Raw:     raw,
		ordered: ordered,
	}
	if name, ok := raw["name"].(string); ok {
		pkg.Name = name
	}
	return pkg, nil
}

// Field looks up a dotted field name in the descriptor, e.g.
// "main" or "publishConfig.main". It returns nil when any segment is
// missing or not an object.
func (p *Package) Field(dotted string) any {
	var current any = map[string]any(p.Raw)
	for _, segment := range strings.Split(dotted, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = obj[segment]
		if !ok {
			return nil
		}
	}
	return current
}

// OrderedField looks up a dotted field name and returns the ordered
// tree at that position, or nil when absent.
func (p *Package) OrderedField(dotted string) *OrderedValue {
	current := p.ordered
	for _, segment := range strings.Split(dotted, ".") {
		if current == nil || current.Kind != KindMap {
			return nil
		}
		current = current.Map[segment]
	}
	return current
}

// StringField returns the named dotted field when it is a non-empty
// string.
func (p *Package) StringField(dotted string) (string, bool) {
	s, ok := p.Field(dotted).(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
