// Package chromosome provides a small set of example Chromosome
// implementations (int, character, and bitstring genomes) sufficient to
// run the engine end-to-end, deliberately scoped down from a general
// library of representations.
package chromosome

import (
	"math/rand"

	"github.com/tomhoffer/darwinium/internal/core"
)

// IntChromosome is a fixed-length genome of integers, used by the small
// integer-maximisation demo and by allele search, which needs
// IntLocusChromosome.
type IntChromosome []int

// Replicate returns a deep copy of c.
func (c IntChromosome) Replicate() core.Chromosome {
	out := make(IntChromosome, len(c))
	copy(out, c)
	return out
}

// Locus implements core.IntLocusChromosome.
func (c IntChromosome) Locus(locus int) int {
	return c[locus]
}

// SetLocus implements core.IntLocusChromosome by returning a modified copy;
// c itself is left untouched.
func (c IntChromosome) SetLocus(locus, value int) core.Chromosome {
	out := make(IntChromosome, len(c))
	copy(out, c)
	out[locus] = value
	return out
}

// Sum is a convenience accessor used by demo fitness evaluators.
func (c IntChromosome) Sum() int {
	total := 0
	for _, v := range c {
		total += v
	}
	return total
}

// CharChromosome is a fixed-length genome of printable ASCII bytes, used by
// the sentence-matching demo.
type CharChromosome []byte

// Replicate returns a deep copy of c.
func (c CharChromosome) Replicate() core.Chromosome {
	out := make(CharChromosome, len(c))
	copy(out, c)
	return out
}

// Locus implements core.IntLocusChromosome, treating each byte as its
// integer value so allele search and hill-climb adaptation can scan it the
// same way they scan an IntChromosome.
func (c CharChromosome) Locus(locus int) int {
	return int(c[locus])
}

// SetLocus implements core.IntLocusChromosome by returning a modified
// copy; c itself is left untouched.
func (c CharChromosome) SetLocus(locus, value int) core.Chromosome {
	out := make(CharChromosome, len(c))
	copy(out, c)
	out[locus] = byte(value)
	return out
}

// String renders c as a Go string.
func (c CharChromosome) String() string {
	return string(c)
}

// BitstringChromosome is a fixed-length genome of bits, one bool per gene.
// A packed representation would cut its footprint to an eighth, but the demo favours
// directness over density.
type BitstringChromosome []bool

// Replicate returns a deep copy of c.
func (c BitstringChromosome) Replicate() core.Chromosome {
	out := make(BitstringChromosome, len(c))
	copy(out, c)
	return out
}

// PopCount returns the number of set bits, used by the demo one-max fitness
// evaluator.
func (c BitstringChromosome) PopCount() int {
	n := 0
	for _, b := range c {
		if b {
			n++
		}
	}
	return n
}

// printableMin and printableMax bound the random character range used by
// RandomChar (space through '~').
const (
	printableMin = 32
	printableMax = 126
)

// RandomChar returns a uniformly random printable ASCII byte.
func RandomChar() byte {
	return byte(printableMin + rand.Intn(printableMax-printableMin+1))
}
