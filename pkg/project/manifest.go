package project

import (
	"encoding/json"
	"maps"
	"os"
	"slices"

	"github.com/matzehuels/px/pkg/errors"
)

// Manifest is the subset of package.json px reads.
type Manifest struct {
	Path string `json:"-"`

	Name             string            `json:"name"`
	Version          string            `json:"version"`
	Dependencies     map[string]string `json:"dependencies"`
	DevDependencies  map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
	Scripts          map[string]string `json:"scripts"`
}

// ReadManifest loads and parses the package.json at path.
// A malformed file yields ErrCodeInvalidManifest; a missing one
// ErrCodeManifestNotFound.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeManifestNotFound, err, "no %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read %s", path)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	m.Path = path
	return &m, nil
}

// DeclaredDependencies returns the names listed in dependencies and
// devDependencies, sorted.
func (m *Manifest) DeclaredDependencies() []string {
	set := make(map[string]struct{}, len(m.Dependencies)+len(m.DevDependencies))
	for name := range m.Dependencies {
		set[name] = struct{}{}
	}
	for name := range m.DevDependencies {
		set[name] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}

// Declares reports whether name appears in dependencies or devDependencies.
func (m *Manifest) Declares(name string) bool {
	if _, ok := m.Dependencies[name]; ok {
		return true
	}
	_, ok := m.DevDependencies[name]
	return ok
}

// ScriptNames returns the names of the scripts section, sorted.
func (m *Manifest) ScriptNames() []string {
	return slices.Sorted(maps.Keys(m.Scripts))
}
