// Package project resolves the JavaScript project that governs the working
// directory.
//
// # Overview
//
// All lookups are upward walks from a start directory, expressed through
// [FindAncestor] with a [Predicate] over a directory's file names:
//
//   - [RequireLockFile]: package.json plus a recognized lock file (strict root)
//   - [ManifestOnly]: package.json alone (relaxed root, monorepo packages)
//   - tsconfig.json presence, for [Locator.IsTypeScript]
//
// A single walk cannot find both the nearest manifest and the nearest lock
// file when they live at different levels of a monorepo, so callers pick one
// predicate per purpose: strict for package-manager detection, relaxed for
// reading dependencies and scripts.
//
// # Usage
//
//	loc := project.Locator{}  // uses os.Getwd
//	ctx, err := loc.Resolve()
//	if errors.Is(err, errors.ErrCodeContextNotFound) {
//	    // "Package manager not found!"
//	}
//	fmt.Println(ctx.Root, ctx.Manager)
package project
