package ratelimit

import (
	"math/rand/v2"
	"time"
)

// TrackSleep returns how long to pause between two consecutive track
// downloads to reduce the chance of hitting the API rate limiter.
func TrackSleep() time.Duration {
	const (
		from = 1
		to   = 3
	)
	millis := (rand.IntN(to-from)+from)*1000 + rand.N(1000) //nolint:gosec

	return time.Duration(millis) * time.Millisecond
}
