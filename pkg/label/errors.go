package label

import "errors"

var (
	// ErrNoRecords indicates a label source parsed cleanly but contained nothing usable.
	ErrNoRecords = errors.New("label source contains no records")
	// ErrMissingName indicates a record without a display name.
	ErrMissingName = errors.New("label has no name")
	// ErrUnknownType indicates a record whose type is not a known label type.
	ErrUnknownType = errors.New("unknown label type")
	// ErrBadCoordinate indicates missing, non-finite or out-of-range coordinates.
	ErrBadCoordinate = errors.New("invalid label coordinates")
	// ErrDuplicate indicates a second record with an already-loaded name and type.
	ErrDuplicate = errors.New("duplicate label")
)
