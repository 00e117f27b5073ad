package storage

import "github.com/pkg/errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrCorruptRecord indicates a stored value that no longer decodes;
	// callers treat it as store corruption, not a per-claim failure.
	ErrCorruptRecord = errors.New("corrupt stored record")
)
