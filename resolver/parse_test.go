/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import "testing"

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		path       string
		query      string
		fragment   string
	}{
		{"plain", "./a", "./a", "", ""},
		{"query", "./a?q=1", "./a", "?q=1", ""},
		{"fragment", "./a#frag", "./a", "", "#frag"},
		{"query and fragment", "./a?q#f", "./a", "?q", "#f"},
		{"fragment inside query", "./a?q#f?x", "./a", "?q", "#f?x"},
		{"escaped query", `./a\?b`, "./a?b", "", ""},
		{"escaped fragment", `./a\#b`, "./a#b", "", ""},
		{"escaped then real", `./a\#b#f`, "./a#b", "", "#f"},
		{"leading hash is the request", "#dep", "#dep", "", ""},
		{"leading hash with fragment", "#dep#f", "#dep", "", "#f"},
		{"empty", "", "", "", ""},
		{"empty query", "./a?", "./a", "?", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, query, fragment := parseIdentifier(tt.identifier)
			if path != tt.path {
				t.Errorf("path = %q, want %q", path, tt.path)
			}
			if query != tt.query {
				t.Errorf("query = %q, want %q", query, tt.query)
			}
			if fragment != tt.fragment {
				t.Errorf("fragment = %q, want %q", fragment, tt.fragment)
			}
		})
	}
}

func TestParseIdentifier_RoundTrip(t *testing.T) {
	// Unescaped identifiers must reconstruct from their parts.
	for _, identifier := range []string{
		"./a", "./a?q", "./a#f", "./a?q#f", "pkg/sub?x=1#y", "#internal", "/abs/path.js?v=2",
	} {
		path, query, fragment := parseIdentifier(identifier)
		if got := path + query + fragment; got != identifier {
			t.Errorf("round trip of %q = %q", identifier, got)
		}
	}
}

func TestIsModuleRequest(t *testing.T) {
	tests := []struct {
		request string
		want    bool
	}{
		{"pkg", true},
		{"@scope/pkg", true},
		{"pkg/sub", true},
		{"./rel", false},
		{"../up", false},
		{"/abs", false},
		{".", false},
		{"#internal", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isModuleRequest(tt.request); got != tt.want {
			t.Errorf("isModuleRequest(%q) = %v, want %v", tt.request, got, tt.want)
		}
	}
}

func TestIsDirectoryRequest(t *testing.T) {
	tests := []struct {
		request string
		want    bool
	}{
		{"./sub/", true},
		{".", true},
		{"..", true},
		{"./sub", false},
		{"pkg", false},
	}

	for _, tt := range tests {
		if got := isDirectoryRequest(tt.request); got != tt.want {
			t.Errorf("isDirectoryRequest(%q) = %v, want %v", tt.request, got, tt.want)
		}
	}
}

func TestSplitPackageRequest(t *testing.T) {
	tests := []struct {
		request string
		name    string
		subpath string
	}{
		{"pkg", "pkg", ""},
		{"pkg/sub", "pkg", "sub"},
		{"pkg/sub/deep", "pkg", "sub/deep"},
		{"@scope/pkg", "@scope/pkg", ""},
		{"@scope/pkg/sub", "@scope/pkg", "sub"},
	}

	for _, tt := range tests {
		name, subpath := splitPackageRequest(tt.request)
		if name != tt.name || subpath != tt.subpath {
			t.Errorf("splitPackageRequest(%q) = (%q, %q), want (%q, %q)", tt.request, name, subpath, tt.name, tt.subpath)
		}
	}
}
