package project

import "path/filepath"

// Context is the project governing one px invocation. It is built once by
// [Locator.Resolve] and never modified.
type Context struct {
	locator Locator

	WorkDir string  // Directory px was invoked from
	Root    string  // Strict root: package.json next to a lock file
	Manager Manager // Manager detected from Root's lock file
}

// IsTypeScript reports whether a tsconfig.json governs WorkDir.
func (c *Context) IsTypeScript() (bool, error) {
	return c.locator.IsTypeScript()
}

// Manifest reads the nearest package.json above WorkDir (relaxed mode), which
// in a monorepo is the current package rather than the workspace root.
func (c *Context) Manifest() (*Manifest, error) {
	dir, ok, err := c.locator.FindRoot(false)
	if err != nil {
		return nil, err
	}
	if !ok {
		dir = c.Root
	}
	return ReadManifest(filepath.Join(dir, ManifestFile))
}
