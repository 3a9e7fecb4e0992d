package disclosure

import "errors"

var (
	// ErrUnrecognizedSection is returned when a raw section reference does
	// not normalize to any canonical id. The edit is rejected and the
	// document stays untouched.
	ErrUnrecognizedSection = errors.New("unrecognized section")

	// ErrPlaceholderNotFound is returned when the canonical section has no
	// placeholder anchor in the current document. This indicates a
	// template/registry mismatch and is surfaced instead of silently
	// dropping the content.
	ErrPlaceholderNotFound = errors.New("section placeholder not found in document")
)
