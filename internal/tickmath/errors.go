package tickmath

import "errors"

var (
	// ErrUnknownFeeTier is returned for a fee tier outside the supported set.
	ErrUnknownFeeTier = errors.New("unknown fee tier")

	// ErrUnusableTick is returned when a converted tick is 0, infinite or NaN
	// and therefore cannot be used as a position boundary.
	ErrUnusableTick = errors.New("unusable tick")

	// ErrTickOutOfRange is returned for ticks outside [MinTick, MaxTick].
	ErrTickOutOfRange = errors.New("tick out of range")
)
