package project

import "slices"

// Manager identifies a JavaScript package manager.
type Manager string

// Supported package managers.
const (
	ManagerNone Manager = ""
	ManagerNPM  Manager = "npm"
	ManagerYarn Manager = "yarn"
	ManagerPNPM Manager = "pnpm"
)

// String returns the executable name, or "none".
func (m Manager) String() string {
	if m == ManagerNone {
		return "none"
	}
	return string(m)
}

// LockFile pairs a lock file name with the manager that writes it.
type LockFile struct {
	Name    string
	Manager Manager
}

// LockFiles lists recognized lock files in detection priority order. The
// first match wins when a directory mistakenly holds several.
var LockFiles = []LockFile{
	{Name: "package-lock.json", Manager: ManagerNPM},
	{Name: "yarn.lock", Manager: ManagerYarn},
	{Name: "pnpm-lock.yaml", Manager: ManagerPNPM},
}

// ManagerFromFiles classifies a directory listing by its lock file.
func ManagerFromFiles(files []string) Manager {
	for _, lf := range LockFiles {
		if slices.Contains(files, lf.Name) {
			return lf.Manager
		}
	}
	return ManagerNone
}
