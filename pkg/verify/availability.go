package verify

import "context"

// Availability is the verification state of a package's declarations.
type Availability int

const (
	// Unknown means the package has not been checked.
	Unknown Availability = iota
	// HasTypes means a usable @types package exists.
	HasTypes
	// NoTypes means no usable @types package exists.
	NoTypes
)

// String returns the availability name used in logs and `px cache list`.
func (a Availability) String() string {
	switch a {
	case HasTypes:
		return "has-types"
	case NoTypes:
		return "no-types"
	default:
		return "unknown"
	}
}

// Known reports whether a is a verified result.
func (a Availability) Known() bool { return a == HasTypes || a == NoTypes }

// Checker determines the availability of a declaration package.
type Checker interface {
	Check(ctx context.Context, declaration string) Availability
}

// Store is the interface for verification cache backends.
type Store interface {
	// Get returns the recorded availability of pkg, or Unknown.
	Get(ctx context.Context, pkg string) (Availability, error)

	// Set records the availability of pkg. Implementations may buffer the
	// write until Flush.
	Set(ctx context.Context, pkg string, a Availability) error

	// Flush persists buffered writes.
	Flush(ctx context.Context) error
}

// Entry is a single recorded verification result.
type Entry struct {
	Package      string
	Availability Availability
}

// Lister is implemented by stores that can enumerate and reset their entries.
type Lister interface {
	List(ctx context.Context) ([]Entry, error)
	Clear(ctx context.Context) error
}
