package engine

import (
	"math/rand"
)

// playSeed derives the deterministic seed for one play from the game seed
// and play number using a splitmix64 finalizer. Replaying the same seed
// and play number always yields the same stream.
func playSeed(gameSeed int64, playNumber int) int64 {
	z := uint64(gameSeed) + uint64(playNumber)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return int64(z & 0x7FFFFFFFFFFFFFFF)
}

// playRNG builds the local random source for one play. Local sources keep
// concurrent games independent without locking the global source.
func playRNG(gameSeed int64, playNumber int) *rand.Rand {
	return rand.New(rand.NewSource(playSeed(gameSeed, playNumber)))
}
