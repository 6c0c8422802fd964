package envkeeper

import "errors"

var (
	// ErrNotInitialized indicates a Read before any successful Initialize.
	ErrNotInitialized = errors.New("environment not initialized: call Initialize first")
	// ErrAlreadyInitialized indicates a repeated Initialize with a
	// conflicting config; the first snapshot is returned alongside it.
	ErrAlreadyInitialized = errors.New("environment already initialized with a different config")
)
