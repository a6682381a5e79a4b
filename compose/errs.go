package compose

import "errors"

var (
	ErrCyclicInclude = errors.New("cyclic include")
	ErrIO            = errors.New("i/o error")
	ErrDefaults      = errors.New("invalid defaults entry")
)
