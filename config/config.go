/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for the resolver.
package config

import (
	"encoding/json"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	maslulfs "bennypowers.dev/maslul/fs"
	"bennypowers.dev/maslul/resolver"
)

// Config represents the resolver configuration file.
type Config struct {
	// Alias is the alias table, applied in order.
	Alias []AliasSpec `yaml:"alias" json:"alias"`

	// AliasFields are descriptor fields holding alias maps.
	AliasFields []string `yaml:"aliasFields" json:"aliasFields"`

	// ConditionNames is the active condition set for exports/imports.
	ConditionNames []string `yaml:"conditionNames" json:"conditionNames"`

	// DescriptionFiles are candidate descriptor file names.
	DescriptionFiles []string `yaml:"descriptionFiles" json:"descriptionFiles"`

	// EnforceExtension forbids extensionless terminal files.
	EnforceExtension bool `yaml:"enforceExtension" json:"enforceExtension"`

	// Extensions is the ordered extension list tried for files.
	Extensions []string `yaml:"extensions" json:"extensions"`

	// ExtensionAlias maps extensions to replacement lists.
	ExtensionAlias map[string][]string `yaml:"extensionAlias" json:"extensionAlias"`

	// ExportsFields are descriptor fields holding the exports tree.
	ExportsFields []string `yaml:"exportsFields" json:"exportsFields"`

	// ImportsFields are descriptor fields holding the imports tree.
	ImportsFields []string `yaml:"importsFields" json:"importsFields"`

	// MainFields are descriptor fields holding the main entry.
	MainFields []string `yaml:"mainFields" json:"mainFields"`

	// MainFiles are directory index names.
	MainFiles []string `yaml:"mainFiles" json:"mainFiles"`

	// Modules is the ordered list of module directory names or roots.
	Modules []string `yaml:"modules" json:"modules"`

	// Symlinks canonicalizes resolved paths. Defaults to true.
	Symlinks *bool `yaml:"symlinks" json:"symlinks"`

	// Roots are absolute roots tried for /-prefixed requests.
	Roots []string `yaml:"roots" json:"roots"`

	// PreferRelative retries bare module requests as relative first.
	PreferRelative bool `yaml:"preferRelative" json:"preferRelative"`

	// PreferAbsolute tries the plain absolute path before Roots.
	PreferAbsolute bool `yaml:"preferAbsolute" json:"preferAbsolute"`

	// Restrictions reject matched terminal paths. Plain entries are
	// doublestar globs; entries with the re: prefix are regular
	// expressions.
	Restrictions []string `yaml:"restrictions" json:"restrictions"`

	// CacheSeconds bounds the probe cache TTL.
	CacheSeconds int `yaml:"cacheSeconds" json:"cacheSeconds"`
}

// AliasSpec represents one alias table entry. It can be specified as a
// simple "name=target" string or as an object.
type AliasSpec struct {
	// Name is the request, or request prefix, to match.
	Name string `yaml:"name" json:"name"`

	// Alias is the replacement, or list of replacements.
	Alias []string `yaml:"alias" json:"alias"`

	// OnlyModule restricts matching to the exact name.
	OnlyModule bool `yaml:"onlyModule" json:"onlyModule"`

	// Ignored marks the module deliberately absent.
	Ignored bool `yaml:"ignored" json:"ignored"`
}

// UnmarshalYAML handles both string and object forms for AliasSpec.
func (a *AliasSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return a.fromString(node.Value)
	}

	type rawAliasSpec AliasSpec
	return node.Decode((*rawAliasSpec)(a))
}

// UnmarshalJSON handles both string and object forms for AliasSpec.
func (a *AliasSpec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return a.fromString(s)
	}

	type rawAliasSpec AliasSpec
	return json.Unmarshal(data, (*rawAliasSpec)(a))
}

// fromString parses the "name=target" shorthand. A target of false
// marks the module ignored; a name ending in $ restricts matching to
// the exact name.
func (a *AliasSpec) fromString(s string) error {
	name, target, _ := strings.Cut(s, "=")
	if strings.HasSuffix(name, "$") {
		name = strings.TrimSuffix(name, "$")
		a.OnlyModule = true
	}
	a.Name = name
	if target == "false" {
		a.Ignored = true
		return nil
	}
	a.Alias = []string{target}
	return nil
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{}
}

// ToOptions converts the configuration into resolver options over the
// given filesystem.
func (c *Config) ToOptions(filesystem maslulfs.FileSystem) (resolver.Options, error) {
	opts := resolver.Options{
		FileSystem:       filesystem,
		AliasFields:      c.AliasFields,
		ConditionNames:   c.ConditionNames,
		DescriptionFiles: c.DescriptionFiles,
		EnforceExtension: c.EnforceExtension,
		Extensions:       c.Extensions,
		ExportsFields:    c.ExportsFields,
		ImportsFields:    c.ImportsFields,
		MainFields:       c.MainFields,
		MainFiles:        c.MainFiles,
		Modules:          c.Modules,
		Symlinks:         c.Symlinks,
		Roots:            c.Roots,
		PreferRelative:   c.PreferRelative,
		PreferAbsolute:   c.PreferAbsolute,
	}

	for _, spec := range c.Alias {
		opts.Alias = append(opts.Alias, resolver.AliasEntry{
			Name:       spec.Name,
			OnlyModule: spec.OnlyModule,
			Alias:      spec.Alias,
			Ignored:    spec.Ignored,
		})
	}

	for ext, aliases := range c.ExtensionAlias {
		opts.ExtensionAlias = append(opts.ExtensionAlias, resolver.ExtensionAlias{
			Extension: ext,
			Aliases:   aliases,
		})
	}

	for _, pattern := range c.Restrictions {
		if expr, ok := strings.CutPrefix(pattern, "re:"); ok {
			re, err := regexp.Compile(expr)
			if err != nil {
				return opts, err
			}
			opts.Restrictions = append(opts.Restrictions, resolver.Restriction{
				Predicate: re.MatchString,
			})
			continue
		}
		opts.Restrictions = append(opts.Restrictions, resolver.Restriction{Glob: pattern})
	}

	return opts, nil
}
