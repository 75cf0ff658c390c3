/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import "path/filepath"

// applyBuiltins wires the built-in plugin set into the canonical hook
// order. Built-ins are compiled into a statically-known sequence here;
// user plugins insert themselves afterwards via Options.Plugins.
func (r *Resolver) applyBuiltins() {
	o := r.options

	r.Tap(HookResolve, "Parse", r.parsePlugin(HookParsedResolve))
	r.Tap(HookParsedResolve, "DescriptionFile", r.descriptionFilePlugin(HookDescribedResolve))

	// describedResolve: internal requests, self references, then on to
	// the rewrite stage.
	r.Tap(HookDescribedResolve, "InternalRequest", r.internalKickoffPlugin())
	r.Tap(HookDescribedResolve, "SelfReference", r.selfReferencePlugin())
	r.Tap(HookDescribedResolve, "NextStage", r.bridgePlugin(HookRawResolve))

	for _, field := range o.ImportsFields {
		r.Tap(HookInternal, "ImportsField", r.importsFieldPlugin(field))
	}

	// rawResolve: alias-like rewrites. Rewritten requests re-enter at
	// parsedResolve so their descriptor is rediscovered; the
	// (hook, request) guard breaks alias cycles.
	for _, field := range o.AliasFields {
		r.Tap(HookRawResolve, "AliasField", r.aliasFieldPlugin(field, HookParsedResolve))
	}
	for _, entry := range o.Alias {
		r.Tap(HookRawResolve, "Alias", r.aliasPlugin(entry, HookParsedResolve))
	}
	r.Tap(HookRawResolve, "NextStage", r.bridgePlugin(HookNormalResolve))

	// normalResolve: candidate expansion.
	if o.PreferRelative {
		r.Tap(HookNormalResolve, "PreferRelative", r.preferRelativePlugin())
	}
	if len(o.Roots) > 0 && !o.PreferAbsolute {
		r.Tap(HookNormalResolve, "Roots", r.rootsPlugin())
	}
	r.Tap(HookNormalResolve, "ModuleKickoff", r.moduleKickoffPlugin())
	r.Tap(HookNormalResolve, "JoinRequest", r.joinRequestPlugin())
	if len(o.Roots) > 0 && o.PreferAbsolute {
		r.Tap(HookNormalResolve, "Roots", r.rootsPlugin())
	}

	// module: bare-module directory walks, in configuration order.
	for _, m := range o.Modules {
		if filepath.IsAbs(m) {
			r.Tap(HookModule, "ModulesInRootPath", r.modulesInRootPathPlugin(m))
		} else {
			r.Tap(HookModule, "ModulesInHierarchicalDirectories", r.modulesInHierarchicalDirectoriesPlugin(m))
		}
	}

	// resolveAsModule: one candidate modules directory at a time.
	for _, field := range o.ExportsFields {
		r.Tap(HookResolveAsModule, "ExportsField", r.exportsFieldPlugin(field))
	}
	r.Tap(HookResolveAsModule, "ModuleJoin", r.moduleJoinPlugin())

	// relative: the candidate path is known; rediscover its descriptor.
	r.Tap(HookRelative, "DescriptionFile", r.descriptionFilePlugin(HookDescribedRelative))

	// describedRelative: file branch first, then directory branch.
	if !o.ResolveToContext {
		r.Tap(HookDescribedRelative, "FileKickoff", r.fileKickoffPlugin())
	}
	r.Tap(HookDescribedRelative, "DirectoryExists", r.directoryExistsPlugin())

	// file candidate pipeline.
	for _, ea := range o.ExtensionAlias {
		r.Tap(HookUndescribedRawFile, "ExtensionAlias", r.extensionAliasPlugin(ea))
	}
	r.Tap(HookUndescribedRawFile, "NextStage", r.bridgePlugin(HookRawFile))
	r.Tap(HookRawFile, "NextStage", r.bridgePlugin(HookFile))
	if !o.EnforceExtension {
		r.Tap(HookFile, "TryExact", r.bridgePlugin(HookFinalFile))
	}
	for _, ext := range o.Extensions {
		r.Tap(HookFile, "Extension", r.extensionPlugin(ext))
	}
	r.Tap(HookFinalFile, "FileExists", r.fileExistsPlugin())

	// existingDirectory: a context result, or descend via main fields
	// and index files.
	if o.ResolveToContext {
		r.Tap(HookExistingDirectory, "ResolveToContext", r.bridgePlugin(HookExistingFile))
	} else {
		for _, field := range o.MainFields {
			r.Tap(HookExistingDirectory, "MainField", r.mainFieldPlugin(field))
		}
		for _, file := range o.MainFiles {
			r.Tap(HookExistingDirectory, "UseFile", r.useFilePlugin(file))
		}
	}

	// terminal stages.
	if *o.Symlinks {
		r.Tap(HookExistingFile, "Symlink", r.symlinkPlugin())
	}
	if len(o.Restrictions) > 0 {
		r.Tap(HookExistingFile, "Restrictions", r.restrictionsPlugin())
	}
	r.Tap(HookExistingFile, "NextStage", r.bridgePlugin(HookResolved))
	r.Tap(HookResolved, "Result", resultPlugin)
}

// bridgePlugin forwards the request to the next stage unchanged.
func (r *Resolver) bridgePlugin(target string) Handler {
	return func(req *Request, rc *ResolveContext) (*Request, error) {
		return r.forward(target, req, "", rc)
	}
}

// resultPlugin terminates the pipeline with the resolved request.
func resultPlugin(req *Request, rc *ResolveContext) (*Request, error) {
	return req, nil
}
