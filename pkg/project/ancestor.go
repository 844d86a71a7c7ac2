package project

import (
	"iter"
	"os"
	"path/filepath"
	"slices"
)

// Predicate decides whether a directory, given its file names, is a match.
type Predicate func(files []string) bool

// HasFile returns a Predicate matching directories that contain name.
func HasFile(name string) Predicate {
	return func(files []string) bool {
		return slices.Contains(files, name)
	}
}

// FindAncestor returns the nearest directory, starting at start and moving
// toward the filesystem root, whose listing satisfies match. Unreadable
// directories are skipped. ok is false when no ancestor matches.
func FindAncestor(start string, match Predicate) (dir string, ok bool) {
	for d := range Ancestors(start) {
		entries, err := os.ReadDir(d)
		if err != nil {
			continue
		}
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		if match(names) {
			return d, true
		}
	}
	return "", false
}

// Ancestors yields start and each of its parents up to and including the
// filesystem root.
func Ancestors(start string) iter.Seq[string] {
	return func(yield func(string) bool) {
		dir := filepath.Clean(start)
		for {
			if !yield(dir) {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}
