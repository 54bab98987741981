package game

import (
	"math/rand"
	"sync"
	"time"
)

// Roller draws the round outcome. The draw happens exactly once per executed
// round, strictly after the pick table is final, and is independent of what
// was collected.
type Roller interface {
	Roll(sides int) int
}

type randRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRoller returns a Roller seeded from the wall clock.
func NewRoller() Roller {
	return &randRoller{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededRoller returns a deterministic Roller for a fixed seed.
func NewSeededRoller(seed int64) Roller {
	return &randRoller{rng: rand.New(rand.NewSource(seed))}
}

func (r *randRoller) Roll(sides int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(sides) + 1
}
