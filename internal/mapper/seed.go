package mapper

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/zeebo/xxh3"
)

// trialSeed derives the seed of a trial from the run seed and the trial
// index. The same pair always yields the same seed.
func trialSeed(runSeed uint64, trial int) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(trial))
	return xxh3.HashSeed(buf[:], runSeed)
}

// trialRand returns the private generator of a trial.
func trialRand(runSeed uint64, trial int) *rand.Rand {
	s := trialSeed(runSeed, trial)
	return rand.New(rand.NewPCG(s, runSeed^s))
}
