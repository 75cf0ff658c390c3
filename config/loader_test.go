/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"testing"

	"bennypowers.dev/maslul/internal/mapfs"
)

func TestLoad_YAML(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/proj/.config/maslul.yaml", `
extensions: [".ts", ".js"]
conditionNames: ["import", "default"]
alias:
  - "legacy=modern"
  - "dead$=false"
  - name: "@ui"
    alias: ["/proj/src/components"]
restrictions:
  - "/proj/private/**"
  - "re:\\.node$"
`, 0644)

	cfg, err := Load(mfs, "/proj")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config, got nil")
	}

	if len(cfg.Extensions) != 2 || cfg.Extensions[0] != ".ts" {
		t.Errorf("Extensions = %v", cfg.Extensions)
	}
	if len(cfg.Alias) != 3 {
		t.Fatalf("Alias = %v", cfg.Alias)
	}
	if cfg.Alias[0].Name != "legacy" || cfg.Alias[0].Alias[0] != "modern" {
		t.Errorf("Alias[0] = %+v", cfg.Alias[0])
	}
	if !cfg.Alias[1].Ignored || !cfg.Alias[1].OnlyModule || cfg.Alias[1].Name != "dead" {
		t.Errorf("Alias[1] = %+v", cfg.Alias[1])
	}
	if cfg.Alias[2].Name != "@ui" {
		t.Errorf("Alias[2] = %+v", cfg.Alias[2])
	}
}

func TestLoad_JSONWithComments(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/proj/.config/maslul.json", `{
		// resolver configuration
		"mainFields": ["module", "main"],
		"alias": ["ignored=false"]
	}`, 0644)

	cfg, err := Load(mfs, "/proj")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config, got nil")
	}
	if len(cfg.MainFields) != 2 || cfg.MainFields[0] != "module" {
		t.Errorf("MainFields = %v", cfg.MainFields)
	}
	if len(cfg.Alias) != 1 || !cfg.Alias[0].Ignored {
		t.Errorf("Alias = %+v", cfg.Alias)
	}
}

func TestLoad_YAMLTakesPriorityOverJSON(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/proj/.config/maslul.yaml", `extensions: [".yaml-wins"]`, 0644)
	mfs.AddFile("/proj/.config/maslul.json", `{"extensions":[".json-loses"]}`, 0644)

	cfg, err := Load(mfs, "/proj")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Extensions[0] != ".yaml-wins" {
		t.Errorf("Extensions = %v", cfg.Extensions)
	}
}

func TestLoad_MissingReturnsNil(t *testing.T) {
	mfs := mapfs.New()

	cfg, err := Load(mfs, "/proj")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config, got %+v", cfg)
	}

	defaulted := LoadOrDefault(mfs, "/proj")
	if defaulted == nil {
		t.Error("LoadOrDefault must return defaults")
	}
}

func TestToOptions(t *testing.T) {
	mfs := mapfs.New()
	cfg := &Config{
		Extensions:     []string{".ts"},
		ConditionNames: []string{"import"},
		Alias: []AliasSpec{
			{Name: "dead", Ignored: true},
			{Name: "legacy", Alias: []string{"modern"}},
		},
		ExtensionAlias: map[string][]string{".js": {".ts", ".js"}},
		Restrictions:   []string{"/private/**", `re:\.node$`},
		CacheSeconds:   8,
	}

	opts, err := cfg.ToOptions(mfs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if opts.FileSystem == nil {
		t.Error("FileSystem not carried into options")
	}
	if len(opts.Alias) != 2 || !opts.Alias[0].Ignored {
		t.Errorf("Alias = %+v", opts.Alias)
	}
	if len(opts.ExtensionAlias) != 1 || opts.ExtensionAlias[0].Extension != ".js" {
		t.Errorf("ExtensionAlias = %+v", opts.ExtensionAlias)
	}
	if len(opts.Restrictions) != 2 {
		t.Fatalf("Restrictions = %+v", opts.Restrictions)
	}
	if opts.Restrictions[0].Glob != "/private/**" {
		t.Errorf("Restrictions[0] = %+v", opts.Restrictions[0])
	}
	if opts.Restrictions[1].Predicate == nil || !opts.Restrictions[1].Predicate("/proj/a.node") {
		t.Error("regex restriction predicate not compiled")
	}
}

func TestToOptions_BadRegex(t *testing.T) {
	cfg := &Config{Restrictions: []string{"re:["}}
	if _, err := cfg.ToOptions(mapfs.New()); err == nil {
		t.Error("expected regex compile error")
	}
}
