package core

import "math"

// Noise maps a sample position and seed to a deterministic value in
// [0, 1) with no persistent state. The construction is the usual
// sine-hash: mix the inputs linearly, push the sum through sin, scale by
// a large irrational-ish constant and keep the fractional part. Nearby
// integer coordinates land far apart on the sine wave, which gives the
// high-frequency decorrelation the seeding and perturbation terms need
// without any table lookups.
func Noise(x, y, seed float64) float64 {
	v := math.Sin(x*12.9898+y*78.233+seed*37.719) * 43758.5453123
	return v - math.Floor(v)
}
