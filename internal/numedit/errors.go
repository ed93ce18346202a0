package numedit

import "errors"

// Sentinel errors. Only ErrValidation is ever returned by public setters;
// the others are recovered inside edit operations and reported through
// Result.Recovery.
var (
	// ErrValidation marks a rejected setter argument. State is unchanged.
	ErrValidation = errors.New("validation failed")

	// ErrOverflow marks a result beyond the representable magnitude.
	ErrOverflow = errors.New("arithmetic overflow")

	// ErrDecomposition marks rendered text that splits into more than two
	// segments on the decimal separator. It indicates a broken locale.
	ErrDecomposition = errors.New("decomposition failed")

	// ErrParse marks malformed external text (clipboard paste).
	ErrParse = errors.New("parse failed")
)
