package city

import "errors"

// Error kinds reported by the simulation API. All are terminal for the
// operation that produced them; the caller decides whether to reseed,
// reconfigure, or abort.
var (
	// ErrInvalidDimension reports a non-positive width or height at
	// construction.
	ErrInvalidDimension = errors.New("city: grid dimensions must be positive")
	// ErrUnknownField reports a field name outside the four layers.
	ErrUnknownField = errors.New("city: unknown field")
	// ErrCoordinateRange reports coordinates outside [0,W)×[0,H) passed
	// to a non-wrapping accessor.
	ErrCoordinateRange = errors.New("city: coordinate outside grid")
	// ErrNumericInstability reports a NaN, an infinity, or a pre-clamp
	// excursion far outside the unit interval during a tick. It means
	// the configuration is unstable (typically diffusion set too high),
	// not that the input was transient.
	ErrNumericInstability = errors.New("city: numeric instability")
)
