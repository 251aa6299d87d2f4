package prediction

import "math/rand"

// Rand supplies the stochastic factor the sentiment estimator folds into its
// mobilization modifier. It is an explicit dependency rather than an ambient
// call so the estimator stays reproducible: the default engine uses the fixed
// midpoint source and only callers that opt in get real entropy.
type Rand interface {
	// Float64 returns a value in [0,1).
	Float64() float64
}

type fixedRand struct{ v float64 }

func (f fixedRand) Float64() float64 { return f.v }

// FixedRand returns a Rand that always yields v. FixedRand(0.5) is the
// engine default and maps to a mobilization factor of exactly 1.2.
func FixedRand(v float64) Rand { return fixedRand{v: v} }

// SeededRand returns a deterministic stream for a given seed, for callers
// that want run-to-run variation that is still replayable.
func SeededRand(seed int64) Rand { return rand.New(rand.NewSource(seed)) }
