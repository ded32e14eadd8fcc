package track

import "errors"

// Track validation errors
var (
	ErrNoKeys          = errors.New("track has no keys")
	ErrUnsorted        = errors.New("key times must not decrease")
	ErrForm            = errors.New("key must have exactly one orientation form")
	ErrOrder           = errors.New("unknown euler order")
	ErrInterpolation   = errors.New("unknown interpolation")
	ErrRelativeFirst   = errors.New("relative key cannot be the first key")
	ErrZeroVector      = errors.New("vector must not be zero")
	ErrDegenerateBasis = errors.New("matrix is not a rotation")
	ErrAntipodal       = errors.New("previous key turns from onto the opposite of to")
)
