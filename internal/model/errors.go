package model

import "errors"

var (
	// ErrInvalidPath is returned for an empty or malformed segment list.
	ErrInvalidPath = errors.New("invalid wire path")
	// ErrUnknownDiameter is returned when a diameter has no inventory entry or color.
	ErrUnknownDiameter = errors.New("unknown wire diameter")
	// ErrPrecondition is returned when a path has the wrong shape for simplification.
	ErrPrecondition = errors.New("precondition failed")
	// ErrDegenerateGeometry is returned when two directions are collinear.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	// ErrInvalidLength is returned for a piece length that is not a positive
	// finite number.
	ErrInvalidLength = errors.New("invalid piece length")
	// ErrNoArrangementFound is returned when every ordering overflows the ordered spools.
	ErrNoArrangementFound = errors.New("no arrangement found")
	// ErrSearchExhausted is returned when the permutation cap is hit before an answer.
	ErrSearchExhausted = errors.New("arrangement search exhausted")
	// ErrAlreadyCommitted is returned when a wire is committed to a scene twice.
	ErrAlreadyCommitted = errors.New("wire already committed")
	// ErrNoPieces is returned when exporting a scene with nothing committed.
	ErrNoPieces = errors.New("no pieces committed")
)
