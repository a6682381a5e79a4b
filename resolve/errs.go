package resolve

import "errors"

var ErrCyclicInterpolation = errors.New("cyclic interpolation")
