/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import maslulfs "bennypowers.dev/maslul/fs"

// AliasEntry maps a request name onto replacements.
type AliasEntry struct {
	// Name is the request, or request prefix, to match.
	Name string

	// OnlyModule restricts matching to the exact name; prefix matches
	// (name + "/...") are not rewritten.
	OnlyModule bool

	// Alias is the ordered list of replacements. Ignored set to true
	// means the module is deliberately absent; resolution terminates
	// with the ignored sentinel.
	Alias   []string
	Ignored bool
}

// ExtensionAlias maps one extension onto a priority-ordered list of
// replacements, e.g. ".js" -> [".ts", ".js"].
type ExtensionAlias struct {
	Extension string
	Aliases   []string
}

// Restriction rejects terminal paths. Exactly one of Glob or Predicate
// is consulted per entry.
type Restriction struct {
	// Glob is a doublestar pattern matched against the terminal path.
	Glob string

	// Predicate, when set, is called with the terminal path.
	Predicate func(path string) bool
}

// Options configures a Resolver. The zero value plus a FileSystem is
// usable; withDefaults fills in node-style defaults.
type Options struct {
	// FileSystem is the probe capability. Required.
	FileSystem maslulfs.FileSystem

	// Alias is the alias table, applied in order.
	Alias []AliasEntry

	// AliasFields names descriptor fields holding alias maps, e.g.
	// "browser".
	AliasFields []string

	// ConditionNames is the active condition set for exports and
	// imports evaluation.
	ConditionNames []string

	// DescriptionFiles are candidate descriptor file names in priority
	// order. Default: package.json.
	DescriptionFiles []string

	// EnforceExtension forbids terminal files without one of
	// Extensions.
	EnforceExtension bool

	// Extensions is the ordered extension list tried for files.
	// Default: .js, .json, .node.
	Extensions []string

	// ExtensionAlias maps extensions to replacement lists.
	ExtensionAlias []ExtensionAlias

	// ExportsFields names descriptor fields holding the exports tree.
	// Default: exports.
	ExportsFields []string

	// ImportsFields names descriptor fields holding the imports tree.
	// Default: imports.
	ImportsFields []string

	// MainFields names descriptor fields holding the main entry, tried
	// in order. Default: main.
	MainFields []string

	// MainFiles are directory index names. Default: index.
	MainFiles []string

	// Modules is the ordered list of module directory names or
	// absolute module roots. Default: node_modules.
	Modules []string

	// Symlinks canonicalizes resolved paths segment by segment.
	// Default: true.
	Symlinks *bool

	// ResolveToContext resolves to a directory instead of a file.
	ResolveToContext bool

	// Roots are absolute roots tried for /-prefixed requests.
	Roots []string

	// PreferRelative retries bare module requests as relative first.
	PreferRelative bool

	// PreferAbsolute tries the filesystem root before Roots for
	// /-prefixed requests.
	PreferAbsolute bool

	// Restrictions filter terminal paths.
	Restrictions []Restriction

	// UnsafeCache memoizes whole resolve results keyed by
	// (path, request[, context]). The cache never observes filesystem
	// changes, and purging fs.Cached or the descriptor cache does not
	// clear it.
	UnsafeCache bool

	// CachePredicate filters UnsafeCache admission. Nil admits all.
	CachePredicate func(result *Result) bool

	// CacheWithContext includes the request context in the unsafe
	// cache key. Default: true.
	CacheWithContext *bool

	// Plugins are user-supplied plugins, applied after the built-in
	// set.
	Plugins []Plugin
}

func boolPtr(v bool) *bool { return &v }

// withDefaults returns a copy with unset options filled in.
func (o Options) withDefaults() Options {
	if o.DescriptionFiles == nil {
		o.DescriptionFiles = []string{"package.json"}
	}
	if o.Extensions == nil {
		o.Extensions = []string{".js", ".json", ".node"}
	}
	if o.ExportsFields == nil {
		o.ExportsFields = []string{"exports"}
	}
	if o.ImportsFields == nil {
		o.ImportsFields = []string{"imports"}
	}
	if o.MainFields == nil {
		o.MainFields = []string{"main"}
	}
	if o.MainFiles == nil {
		o.MainFiles = []string{"index"}
	}
	if o.Modules == nil {
		o.Modules = []string{"node_modules"}
	}
	if o.Symlinks == nil {
		o.Symlinks = boolPtr(true)
	}
	if o.CacheWithContext == nil {
		o.CacheWithContext = boolPtr(true)
	}
	return o
}
