// Package declaration maps npm package names to their DefinitelyTyped
// counterparts and extracts package names from package-manager arguments.
//
// Naming follows the DefinitelyTyped convention:
//
//	react              -> @types/react
//	@babel/preset-env  -> @types/babel__preset-env
//
// Names already in the @types scope have no declaration counterpart. Callers
// filter them with [IsDeclaration] before calling [Name]; the mapping is never
// applied twice.
package declaration

import (
	"strings"

	"github.com/matzehuels/px/pkg/errors"
)

// Scope is the npm scope that hosts declaration packages.
const Scope = "@types"

// Name returns the declaration package name for pkg.
func Name(pkg string) string {
	if scope, name, ok := strings.Cut(strings.TrimPrefix(pkg, "@"), "/"); ok && strings.HasPrefix(pkg, "@") {
		return Scope + "/" + scope + "__" + name
	}
	return Scope + "/" + pkg
}

// IsDeclaration reports whether pkg lives in the @types scope.
func IsDeclaration(pkg string) bool {
	return strings.HasPrefix(pkg, Scope+"/") || pkg == Scope
}

// PackageName extracts the registry package name from a package-manager
// argument such as "react@^18" or "@babel/core@7.24.0".
//
// It returns ok=false for arguments that do not name a registry package:
// flags, local paths, tarballs, URLs, git specs and npm: aliases.
func PackageName(arg string) (string, bool) {
	if arg == "" || strings.HasPrefix(arg, "-") {
		return "", false
	}
	if strings.Contains(arg, ":") {
		return "", false
	}

	name := arg
	if strings.HasPrefix(name, "@") {
		if i := strings.Index(name[1:], "@"); i >= 0 {
			name = name[:i+1]
		}
	} else if i := strings.Index(name, "@"); i >= 0 {
		name = name[:i]
	}

	if errors.ValidateNpmPackageName(name) != nil {
		return "", false
	}
	return name, true
}

// Packages returns the registry package names found in args, in order and
// without duplicates.
func Packages(args []string) []string {
	seen := make(map[string]bool, len(args))
	var out []string
	for _, arg := range args {
		name, ok := PackageName(arg)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
