/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"errors"
	"testing"

	"bennypowers.dev/maslul/packagejson"
)

func mustTree(t *testing.T, data string) *packagejson.OrderedValue {
	t.Helper()
	tree, err := packagejson.DecodeOrdered([]byte(data))
	if err != nil {
		t.Fatalf("failed to decode tree: %v", err)
	}
	return tree
}

func TestEvalConditional_StringRoot(t *testing.T) {
	tree := mustTree(t, `"./main.js"`)

	targets, matched, err := evalConditional(tree, ".", nil, false)
	if err != nil || !matched {
		t.Fatalf("matched = %v, err = %v", matched, err)
	}
	if len(targets) != 1 || targets[0] != "./main.js" {
		t.Errorf("targets = %v", targets)
	}

	if _, matched, _ := evalConditional(tree, "./sub", nil, false); matched {
		t.Error("string root must only cover the package root")
	}
}

func TestEvalConditional_ConditionOrder(t *testing.T) {
	// Declaration order decides, not the order of the active set.
	tree := mustTree(t, `{"import":"./a.mjs","require":"./a.cjs"}`)

	targets, matched, err := evalConditional(tree, ".", []string{"require", "import"}, false)
	if err != nil || !matched {
		t.Fatalf("matched = %v, err = %v", matched, err)
	}
	if targets[0] != "./a.mjs" {
		t.Errorf("targets = %v, want declaration order to win", targets)
	}
}

func TestEvalConditional_DefaultCondition(t *testing.T) {
	tree := mustTree(t, `{"browser":"./b.js","default":"./d.js"}`)

	targets, matched, err := evalConditional(tree, ".", []string{"node"}, false)
	if err != nil || !matched {
		t.Fatalf("matched = %v, err = %v", matched, err)
	}
	if targets[0] != "./d.js" {
		t.Errorf("targets = %v", targets)
	}
}

func TestEvalConditional_SubpathPrecedence(t *testing.T) {
	tree := mustTree(t, `{
		"./sub": "./exact.js",
		"./sub/*": "./short/*.js",
		"./sub/deep/*": "./long/*.js",
		"./sub/*.mjs": "./suffixed/*.js"
	}`)

	tests := []struct {
		name    string
		subpath string
		want    string
	}{
		{"exact wins", "./sub", "./exact.js"},
		{"longest prefix wins", "./sub/deep/x", "./long/x.js"},
		{"shorter prefix for others", "./sub/x", "./short/x.js"},
		{"longest suffix breaks ties", "./sub/x.mjs", "./suffixed/x.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets, matched, err := evalConditional(tree, tt.subpath, nil, false)
			if err != nil || !matched {
				t.Fatalf("matched = %v, err = %v", matched, err)
			}
			if targets[0] != tt.want {
				t.Errorf("targets = %v, want %q first", targets, tt.want)
			}
		})
	}
}

func TestEvalConditional_PatternCapture(t *testing.T) {
	tree := mustTree(t, `{"./*":"./src/*.js"}`)

	targets, matched, err := evalConditional(tree, "./util/a", nil, false)
	if err != nil || !matched {
		t.Fatalf("matched = %v, err = %v", matched, err)
	}
	if targets[0] != "./src/util/a.js" {
		t.Errorf("targets = %v", targets)
	}
}

func TestEvalConditional_ArrayFallbacks(t *testing.T) {
	tree := mustTree(t, `{".":["./first.js","./second.js"]}`)

	targets, matched, err := evalConditional(tree, ".", nil, false)
	if err != nil || !matched {
		t.Fatalf("matched = %v, err = %v", matched, err)
	}
	if len(targets) != 2 || targets[0] != "./first.js" || targets[1] != "./second.js" {
		t.Errorf("targets = %v", targets)
	}
}

func TestEvalConditional_NestedConditions(t *testing.T) {
	tree := mustTree(t, `{"./sub":{"node":{"import":"./n.mjs","require":"./n.cjs"},"default":"./d.js"}}`)

	targets, matched, err := evalConditional(tree, "./sub", []string{"node", "require"}, false)
	if err != nil || !matched {
		t.Fatalf("matched = %v, err = %v", matched, err)
	}
	if targets[0] != "./n.cjs" {
		t.Errorf("targets = %v", targets)
	}
}

func TestEvalConditional_NullBlocks(t *testing.T) {
	tree := mustTree(t, `{"./secret":null}`)

	_, _, err := evalConditional(tree, "./secret", nil, false)
	if !errors.Is(err, ErrExportsBlocked) {
		t.Errorf("err = %v, want ErrExportsBlocked", err)
	}
}

func TestEvalConditional_NoMatch(t *testing.T) {
	tree := mustTree(t, `{"./a":"./a.js"}`)

	_, matched, err := evalConditional(tree, "./b", nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matched {
		t.Error("expected no match for undeclared subpath")
	}
}

func TestEvalConditional_ImportsMode(t *testing.T) {
	tree := mustTree(t, `{"#dep":{"node":"./node.js","default":"./browser.js"},"#deps/*":"./deps/*.js"}`)

	targets, matched, err := evalConditional(tree, "#dep", []string{"node"}, true)
	if err != nil || !matched {
		t.Fatalf("matched = %v, err = %v", matched, err)
	}
	if targets[0] != "./node.js" {
		t.Errorf("targets = %v", targets)
	}

	targets, matched, err = evalConditional(tree, "#deps/a", nil, true)
	if err != nil || !matched {
		t.Fatalf("matched = %v, err = %v", matched, err)
	}
	if targets[0] != "./deps/a.js" {
		t.Errorf("targets = %v", targets)
	}
}

func TestEvalConditional_UnmatchedConditionYieldsNoTargets(t *testing.T) {
	// The subpath is declared, but no condition applies: the match is
	// reported with no targets, and the caller fails the candidate.
	tree := mustTree(t, `{".":{"browser":"./b.js"}}`)

	targets, matched, err := evalConditional(tree, ".", []string{"node"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !matched {
		t.Error("expected declared subpath to report a match")
	}
	if len(targets) != 0 {
		t.Errorf("targets = %v, want none", targets)
	}
}
