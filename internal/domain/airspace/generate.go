package airspace

import (
	"fmt"
	"math/rand/v2"
)

const (
	callsignMinNumber = 10
	callsignMaxNumber = 9999
)

// NewCallsign returns two uppercase letters followed by a 2-4 digit number.
// Callsigns are not guaranteed to be unique.
func NewCallsign(rng *rand.Rand) string {
	a := 'A' + rune(rng.IntN(26))
	b := 'A' + rune(rng.IntN(26))
	n := callsignMinNumber + rng.IntN(callsignMaxNumber-callsignMinNumber+1)
	return fmt.Sprintf("%c%c%02d", a, b, n)
}

func RandomFlight(rng *rand.Rand, g Grid) Flight {
	return Flight{
		ID:        NewCallsign(rng),
		X:         rng.IntN(g.Width),
		Y:         rng.IntN(g.Height),
		Direction: Directions[rng.IntN(len(Directions))],
	}
}

// RandomFleet builds between minCount and maxCount flights, both inclusive.
func RandomFleet(rng *rand.Rand, g Grid, minCount, maxCount int) []Flight {
	if maxCount < minCount {
		maxCount = minCount
	}
	n := minCount + rng.IntN(maxCount-minCount+1)
	out := make([]Flight, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, RandomFlight(rng, g))
	}
	return out
}
