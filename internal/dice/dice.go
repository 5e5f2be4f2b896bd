// Package dice provides uniform die rolls for the session engine.
package dice

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand"
	"sync"
)

// Common die sizes offered by the session UI
var StandardDice = []int{4, 6, 8, 10, 12, 20, 100}

// Roller produces uniform rolls in [1, sides]
type Roller interface {
	Roll(sides int) (int, error)
}

// rng is a mutex-guarded source; math/rand.Rand is not safe for
// concurrent use.
type rng struct {
	mu  sync.Mutex
	src *mrand.Rand
}

// New creates a Roller seeded from the operating system's entropy source
func New() Roller {
	return &rng{src: mrand.New(mrand.NewSource(cryptoSeed()))}
}

// NewSeeded creates a deterministic Roller for tests
func NewSeeded(seed int64) Roller {
	return &rng{src: mrand.New(mrand.NewSource(seed))}
}

// Roll returns a uniform result in [1, sides]
func (r *rng) Roll(sides int) (int, error) {
	if sides < 2 {
		return 0, fmt.Errorf("die must have at least 2 sides, got %d", sides)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(sides) + 1, nil
}

// cryptoSeed draws a seed from crypto/rand so restarts never repeat a
// roll sequence.
func cryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(fmt.Sprintf("dice: cannot seed roller: %v", err))
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}
