// Package seed provides example Operators.Seed implementations, each
// filling an entity's chromosomes with initial content, one per demo
// chromosome type in internal/ga/chromosome.
package seed

import (
	"math/rand"

	"github.com/tomhoffer/darwinium/internal/core"
	"github.com/tomhoffer/darwinium/internal/ga/chromosome"
)

// UniformInt returns a Seed callback that fills every gene of every
// chromosome slot with a value drawn uniformly from [min, max).
func UniformInt(min, max int) func(*core.Population[chromosome.IntChromosome], *core.Entity[chromosome.IntChromosome]) (bool, error) {
	return func(p *core.Population[chromosome.IntChromosome], e *core.Entity[chromosome.IntChromosome]) (bool, error) {
		for c := range e.Chromosomes {
			gene := make(chromosome.IntChromosome, len(e.Chromosomes[c]))
			for i := range gene {
				gene[i] = min + rand.Intn(max-min)
			}
			e.Chromosomes[c] = gene
		}
		return true, nil
	}
}

// RandomChar returns a Seed callback that fills every gene of every
// chromosome slot with a uniformly random printable ASCII character.
func RandomChar() func(*core.Population[chromosome.CharChromosome], *core.Entity[chromosome.CharChromosome]) (bool, error) {
	return func(p *core.Population[chromosome.CharChromosome], e *core.Entity[chromosome.CharChromosome]) (bool, error) {
		for c := range e.Chromosomes {
			gene := make(chromosome.CharChromosome, len(e.Chromosomes[c]))
			for i := range gene {
				gene[i] = chromosome.RandomChar()
			}
			e.Chromosomes[c] = gene
		}
		return true, nil
	}
}

// RandomBit returns a Seed callback that fills every gene of every
// chromosome slot with a fair coin flip.
func RandomBit() func(*core.Population[chromosome.BitstringChromosome], *core.Entity[chromosome.BitstringChromosome]) (bool, error) {
	return func(p *core.Population[chromosome.BitstringChromosome], e *core.Entity[chromosome.BitstringChromosome]) (bool, error) {
		for c := range e.Chromosomes {
			gene := make(chromosome.BitstringChromosome, len(e.Chromosomes[c]))
			for i := range gene {
				gene[i] = rand.Intn(2) == 1
			}
			e.Chromosomes[c] = gene
		}
		return true, nil
	}
}
