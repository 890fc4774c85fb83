package patterns

import "math/rand/v2"

// Rand yields floats in [0, 1). Response selection and the probabilistic
// flourishes draw from it so tests can pin the output.
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// DefaultRand draws from the process-wide math/rand source
var DefaultRand Rand = globalRand{}

// pick returns a uniformly chosen element of pool. pool must be non-empty.
func pick(pool []string, rnd Rand) string {
	i := int(rnd.Float64() * float64(len(pool)))
	if i < 0 {
		i = 0
	}
	if i >= len(pool) {
		i = len(pool) - 1
	}
	return pool[i]
}
