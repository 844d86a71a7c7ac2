package project

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/px/pkg/errors"
)

// File names inspected while resolving a project.
const (
	ManifestFile = "package.json"
	TSConfigFile = "tsconfig.json"
)

// ManifestOnly matches directories containing package.json.
var ManifestOnly Predicate = HasFile(ManifestFile)

// RequireLockFile matches directories containing package.json and a
// recognized lock file side by side.
var RequireLockFile Predicate = func(files []string) bool {
	return ManifestOnly(files) && ManagerFromFiles(files) != ManagerNone
}

// Locator resolves project files relative to a working directory.
// The zero value uses the process working directory.
type Locator struct {
	// WorkDir is the directory searches start from. Empty means os.Getwd.
	WorkDir string
}

// Dir returns the directory searches start from.
func (l Locator) Dir() (string, error) {
	if l.WorkDir != "" {
		return filepath.Abs(l.WorkDir)
	}
	return os.Getwd()
}

// FindRoot returns the nearest ancestor holding package.json. With
// requireLockFile, a manifest without a lock file next to it is skipped and
// the walk continues upward.
func (l Locator) FindRoot(requireLockFile bool) (string, bool, error) {
	start, err := l.Dir()
	if err != nil {
		return "", false, err
	}
	match := ManifestOnly
	if requireLockFile {
		match = RequireLockFile
	}
	dir, ok := FindAncestor(start, match)
	return dir, ok, nil
}

// DetectManager classifies the strict project root by its lock file.
// It returns ManagerNone when no root exists.
func (l Locator) DetectManager() (Manager, string, error) {
	root, ok, err := l.FindRoot(true)
	if err != nil || !ok {
		return ManagerNone, "", err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return ManagerNone, "", err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return ManagerFromFiles(names), root, nil
}

// IsTypeScript reports whether tsconfig.json exists in the working directory
// or any ancestor. The search is independent of the manifest root because in
// a monorepo the config may sit above or below it.
func (l Locator) IsTypeScript() (bool, error) {
	start, err := l.Dir()
	if err != nil {
		return false, err
	}
	_, ok := FindAncestor(start, HasFile(TSConfigFile))
	return ok, nil
}

// Resolve builds the immutable Context for one invocation.
func (l Locator) Resolve() (*Context, error) {
	wd, err := l.Dir()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "resolve working directory")
	}
	l.WorkDir = wd

	m, root, err := l.DetectManager()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "detect package manager")
	}
	if m == ManagerNone {
		return nil, errors.New(errors.ErrCodeContextNotFound, "Package manager not found!")
	}
	return &Context{locator: l, WorkDir: wd, Root: root, Manager: m}, nil
}
