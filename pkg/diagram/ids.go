package diagram

import (
	"fmt"
	"math/rand/v2"
)

// IDLength is the length of generated element id suffixes.
const IDLength = 7

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// IDGenerator produces the random suffixes of element ids
// (ellipse_<id>, port_arrow_<id>, ...).
type IDGenerator interface {
	Next() string
}

type randomIDs struct {
	rng *rand.Rand
}

// NewRandomIDs returns a generator of alphanumeric ids. The same seed yields
// the same sequence.
func NewRandomIDs(seed uint64) IDGenerator {
	return &randomIDs{rng: rand.New(rand.NewPCG(seed, seed^0xdeadbeef))}
}

func (g *randomIDs) Next() string {
	b := make([]byte, IDLength)
	for i := range b {
		b[i] = alphanumeric[g.rng.IntN(len(alphanumeric))]
	}
	return string(b)
}

type sequenceIDs struct {
	n int
}

// NewSequenceIDs returns a generator of zero-padded counters
// ("0000001", "0000002", ...).
func NewSequenceIDs() IDGenerator {
	return &sequenceIDs{}
}

func (g *sequenceIDs) Next() string {
	g.n++
	return fmt.Sprintf("%0*d", IDLength, g.n)
}
