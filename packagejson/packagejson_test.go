/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package packagejson

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"bennypowers.dev/maslul/internal/mapfs"
)

func TestParse_Fields(t *testing.T) {
	pkg, err := Parse("/proj/package.json", []byte(`{
		"name": "example",
		"main": "./index.js",
		"publishConfig": {"main": "./dist/index.js"}
	}`))
	require.NoError(t, err)

	require.Equal(t, "example", pkg.Name)
	require.Equal(t, "/proj", pkg.Dir)

	main, ok := pkg.StringField("main")
	require.True(t, ok)
	require.Equal(t, "./index.js", main)

	nested, ok := pkg.StringField("publishConfig.main")
	require.True(t, ok)
	require.Equal(t, "./dist/index.js", nested)

	_, ok = pkg.StringField("missing.field")
	require.False(t, ok)
}

func TestParse_ToleratesComments(t *testing.T) {
	pkg, err := Parse("/proj/package.json", []byte(`{
		// entry point
		"main": "./index.js",
	}`))
	require.NoError(t, err)

	main, ok := pkg.StringField("main")
	require.True(t, ok)
	require.Equal(t, "./index.js", main)
}

func TestParse_InvalidDescriptor(t *testing.T) {
	_, err := Parse("/proj/package.json", []byte(`{"name": `))
	require.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestOrderedField_PreservesKeyOrder(t *testing.T) {
	pkg, err := Parse("/proj/package.json", []byte(`{
		"exports": {
			".": {"import": "./a.mjs", "require": "./a.cjs", "default": "./a.js"}
		}
	}`))
	require.NoError(t, err)

	exports := pkg.OrderedField("exports")
	require.NotNil(t, exports)
	require.Equal(t, KindMap, exports.Kind)

	root := exports.Map["."]
	require.NotNil(t, root)
	require.Equal(t, []string{"import", "require", "default"}, root.Keys)
}

func TestDecodeOrdered_Kinds(t *testing.T) {
	tree, err := DecodeOrdered([]byte(`{"s":"v","a":["x",null],"n":1,"b":true,"nul":null}`))
	require.NoError(t, err)

	require.Equal(t, KindMap, tree.Kind)
	require.Equal(t, []string{"s", "a", "n", "b", "nul"}, tree.Keys)
	require.Equal(t, KindString, tree.Map["s"].Kind)
	require.Equal(t, "v", tree.Map["s"].Str)
	require.Equal(t, KindArray, tree.Map["a"].Kind)
	require.Len(t, tree.Map["a"].Arr, 2)
	require.Equal(t, KindNull, tree.Map["a"].Arr[1].Kind)
	require.Equal(t, KindOther, tree.Map["n"].Kind)
	require.Equal(t, KindOther, tree.Map["b"].Kind)
	require.Equal(t, KindNull, tree.Map["nul"].Kind)
}

func TestCache_ReadAndPurge(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/proj/package.json", `{"name":"example"}`, 0644)
	cache := NewCache(mfs)

	pkg, err := cache.Read("/proj/package.json")
	require.NoError(t, err)
	require.Equal(t, "example", pkg.Name)

	// The cached entry survives a content change until purged.
	mfs.AddFile("/proj/package.json", `{"name":"changed"}`, 0644)
	pkg, err = cache.Read("/proj/package.json")
	require.NoError(t, err)
	require.Equal(t, "example", pkg.Name)

	cache.Purge("/proj")
	pkg, err = cache.Read("/proj/package.json")
	require.NoError(t, err)
	require.Equal(t, "changed", pkg.Name)
}

func TestCache_CachesErrors(t *testing.T) {
	mfs := mapfs.New()
	cache := NewCache(mfs)

	_, err := cache.Read("/proj/package.json")
	require.Error(t, err)

	mfs.AddFile("/proj/package.json", `{"name":"late"}`, 0644)
	_, err = cache.Read("/proj/package.json")
	require.Error(t, err, "cached miss must persist until purge")

	cache.Purge()
	pkg, err := cache.Read("/proj/package.json")
	require.NoError(t, err)
	require.Equal(t, "late", pkg.Name)
}

func TestCache_InvalidDescriptor(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/proj/package.json", `{`, 0644)
	cache := NewCache(mfs)

	_, err := cache.Read("/proj/package.json")
	require.True(t, errors.Is(err, ErrInvalidDescriptor))
}
