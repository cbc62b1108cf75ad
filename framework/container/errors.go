package container

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned (wrapped in a *ResolutionError) by Resolve and
// ResolveWith. Match them with errors.Is.
var (
	// ErrEmptyRegistry indicates a resolution against a store that has never
	// had anything registered (or was emptied by DisposeAll).
	ErrEmptyRegistry = errors.New("container: nothing registered")

	// ErrUnregisteredService indicates no factory is stored for the key.
	ErrUnregisteredService = errors.New("container: service not registered")

	// ErrCircularDependency indicates the key is already being resolved
	// further up the same call chain.
	ErrCircularDependency = errors.New("container: circular dependency")

	// ErrFactoryPanic indicates a registered factory panicked.
	ErrFactoryPanic = errors.New("container: panic in factory")
)

// ResolutionError carries the key that failed and the chain of keys that led
// to it.
type ResolutionError struct {
	// Key is the key whose resolution failed.
	Key TypeKey
	// Path is the resolution chain at the point of failure, outermost first.
	// It ends with Key; for a cycle Key therefore appears twice.
	Path []TypeKey
	// Err is one of the sentinel errors above, possibly wrapped.
	Err error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	if len(e.Path) < 2 {
		return fmt.Sprintf("resolve %s: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("resolve %s: %v (%s)", e.Key, e.Err, formatPath(e.Path))
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

func formatPath(path []TypeKey) string {
	parts := make([]string, len(path))
	for i, k := range path {
		parts[i] = k.String()
	}
	return strings.Join(parts, " -> ")
}
