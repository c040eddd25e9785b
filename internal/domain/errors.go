package domain

import "errors"

var (
	// ErrDuplicateKey indicates a placeholder key already exists in the
	// project after normalization.
	ErrDuplicateKey = errors.New("placeholder key already exists")

	// ErrDuplicateTabName indicates two chapters resolve to the same
	// spreadsheet tab name.
	ErrDuplicateTabName = errors.New("chapter tab name already exists")

	// ErrEmptyTitle indicates a chapter title was empty after trimming.
	ErrEmptyTitle = errors.New("title must not be empty")

	// ErrIndexOutOfRange indicates a placeholder index outside the list.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrImmutableKey indicates an attempt to change a placeholder key
	// after creation.
	ErrImmutableKey = errors.New("placeholder key is immutable")
)
