package pak

import "errors"

var (
	// ErrTruncated is returned when an archive is shorter than its
	// declared entry table requires.
	ErrTruncated = errors.New("archive truncated")

	// ErrInvalidPath is returned when an entry path contains non-ASCII
	// or NUL bytes.
	ErrInvalidPath = errors.New("invalid entry path")

	// ErrPathTooLong is returned when an entry path does not fit the
	// fixed 64-byte path field with its NUL terminator.
	ErrPathTooLong = errors.New("entry path too long")

	// ErrUnsafePath is returned when an entry path would escape the
	// extraction directory.
	ErrUnsafePath = errors.New("entry path escapes output directory")
)
