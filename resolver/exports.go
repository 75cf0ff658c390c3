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

// evalConditional evaluates an exports or imports subtree for a
// subpath against the active condition set.
//
// For exports, subpath is "." or "./sub"; for imports it is the
// "#..." request. The returned targets are candidate strings in
// preference order; the caller probes them and the first that resolves
// terminally wins. matched is false when the subtree does not define
// the subpath at all. A null value yields ErrExportsBlocked.
func evalConditional(tree *packagejson.OrderedValue, subpath string, conditions []string, importsMode bool) (targets []string, matched bool, err error) {
	if tree == nil {
		return nil, false, nil
	}

	active := make(map[string]struct{}, len(conditions))
	for _, c := range conditions {
		active[c] = struct{}{}
	}

	if tree.Kind == packagejson.KindMap && hasSubpathKeys(tree, importsMode) {
		return evalSubpathMap(tree, subpath, active)
	}

	// A bare string, array or condition object covers only the package
	// root.
	if !importsMode && subpath != "." {
		return nil, false, nil
	}
	targets, err = evalTarget(tree, "", active)
	if !importsMode {
		// The tree is the root entry itself, so "." is defined even
		// when no condition applies.
		return targets, true, err
	}
	return targets, err != nil || len(targets) > 0, err
}

// hasSubpathKeys reports whether the mapping's keys are subpath
// patterns rather than condition names. Keys may not be mixed.
func hasSubpathKeys(tree *packagejson.OrderedValue, importsMode bool) bool {
	for _, key := range tree.Keys {
		if importsMode {
			return strings.HasPrefix(key, "#")
		}
		return key == "." || strings.HasPrefix(key, "./")
	}
	return false
}

// evalSubpathMap matches subpath against the mapping's keys. An exact
// key wins over patterns; among patterns, the longest literal prefix
// before * wins, ties broken by the longest suffix after it. The *
// captures one substring, substituted into the selected value.
func evalSubpathMap(tree *packagejson.OrderedValue, subpath string, active map[string]struct{}) ([]string, bool, error) {
	if value, ok := tree.Map[subpath]; ok && !strings.Contains(subpath, "*") {
		targets, err := evalTarget(value, "", active)
		return targets, true, err
	}

	bestPrefix, bestSuffix := -1, -1
	var bestValue *packagejson.OrderedValue
	var captured string
	for _, key := range tree.Keys {
		star := strings.Index(key, "*")
		if star < 0 {
			continue
		}
		prefix, suffix := key[:star], key[star+1:]
		if len(subpath) < len(prefix)+len(suffix) ||
			!strings.HasPrefix(subpath, prefix) ||
			!strings.HasSuffix(subpath, suffix) {
			continue
		}
		if len(prefix) > bestPrefix || (len(prefix) == bestPrefix && len(suffix) > bestSuffix) {
			bestPrefix, bestSuffix = len(prefix), len(suffix)
			bestValue = tree.Map[key]
			captured = subpath[len(prefix) : len(subpath)-len(suffix)]
		}
	}
	if bestValue == nil {
		return nil, false, nil
	}
	targets, err := evalTarget(bestValue, captured, active)
	return targets, true, err
}

// evalTarget descends into a matched value: strings substitute the
// capture, arrays accumulate fallbacks in order, condition objects
// select the first declared key in the active set (or default), null
// blocks.
func evalTarget(value *packagejson.OrderedValue, captured string, active map[string]struct{}) ([]string, error) {
	switch value.Kind {
	case packagejson.KindString:
		return []string{strings.ReplaceAll(value.Str, "*", captured)}, nil
	case packagejson.KindArray:
		var targets []string
		for _, element := range value.Arr {
			sub, err := evalTarget(element, captured, active)
			if err != nil {
				// An explicit block inside a fallback array still
				// blocks the whole subpath.
				return nil, err
			}
			targets = append(targets, sub...)
		}
		return targets, nil
	case packagejson.KindMap:
		for _, key := range value.Keys {
			_, ok := active[key]
			if !ok && key != "default" {
				continue
			}
			targets, err := evalTarget(value.Map[key], captured, active)
			if err != nil {
				return nil, err
			}
			if len(targets) > 0 {
				return targets, nil
			}
		}
		return nil, nil
	case packagejson.KindNull:
		return nil, ErrExportsBlocked
	default:
		return nil, fmt.Errorf("%w: unexpected value kind", ErrInvalidExportsTarget)
	}
}
