package ir

import "errors"

var (
	ErrTypeMismatch       = errors.New("type mismatch")
	ErrMissingKey         = errors.New("missing key")
	ErrStructuralConflict = errors.New("structural conflict")

	// ErrUnresolvedReference is shared by the compose and resolve packages:
	// both name tree or file locations that turn out not to exist.
	ErrUnresolvedReference = errors.New("unresolved reference")
)
