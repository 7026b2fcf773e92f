// Package mutation provides example Operators.Mutate implementations:
// each copies src into dest and then perturbs it. The generational and
// steady-state drivers already gate whether Mutate is called at all on a
// Bernoulli(mutation_ratio) draw, so these callbacks always perturb once
// invoked; they never re-roll the mutation rate themselves.
package mutation

import (
	"context"
	"math/rand"

	"github.com/tomhoffer/darwinium/internal/core"
	"github.com/tomhoffer/darwinium/internal/ga/chromosome"
)

func errEmptyChromosome() error {
	return core.NewContractViolationError("cannot mutate an empty chromosome", nil)
}

// copyIntChromosomes returns a deep copy of src's gene slices.
func copyIntChromosomes(src []chromosome.IntChromosome) []chromosome.IntChromosome {
	out := make([]chromosome.IntChromosome, len(src))
	for i, gene := range src {
		out[i] = append(chromosome.IntChromosome(nil), gene...)
	}
	return out
}

func copyCharChromosomes(src []chromosome.CharChromosome) []chromosome.CharChromosome {
	out := make([]chromosome.CharChromosome, len(src))
	for i, gene := range src {
		out[i] = append(chromosome.CharChromosome(nil), gene...)
	}
	return out
}

func copyBitChromosomes(src []chromosome.BitstringChromosome) []chromosome.BitstringChromosome {
	out := make([]chromosome.BitstringChromosome, len(src))
	for i, gene := range src {
		out[i] = append(chromosome.BitstringChromosome(nil), gene...)
	}
	return out
}

// Creep returns a Mutate callback that nudges a single random gene of a
// single random chromosome slot to a new value drawn from [min, max).
func Creep(min, max int) func(context.Context, *core.Population[chromosome.IntChromosome], *core.Entity[chromosome.IntChromosome], *core.Entity[chromosome.IntChromosome]) error {
	return func(ctx context.Context, p *core.Population[chromosome.IntChromosome], src, dest *core.Entity[chromosome.IntChromosome]) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		dest.Chromosomes = copyIntChromosomes(src.Chromosomes)
		slot := rand.Intn(len(dest.Chromosomes))
		if len(dest.Chromosomes[slot]) == 0 {
			return errEmptyChromosome()
		}
		locus := rand.Intn(len(dest.Chromosomes[slot]))
		dest.Chromosomes[slot][locus] = min + rand.Intn(max-min)
		return nil
	}
}

// RandomReset returns a Mutate callback that replaces a single random
// character of a single random chromosome slot with a freshly drawn
// printable character.
func RandomReset() func(context.Context, *core.Population[chromosome.CharChromosome], *core.Entity[chromosome.CharChromosome], *core.Entity[chromosome.CharChromosome]) error {
	return func(ctx context.Context, p *core.Population[chromosome.CharChromosome], src, dest *core.Entity[chromosome.CharChromosome]) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		dest.Chromosomes = copyCharChromosomes(src.Chromosomes)
		slot := rand.Intn(len(dest.Chromosomes))
		if len(dest.Chromosomes[slot]) == 0 {
			return errEmptyChromosome()
		}
		locus := rand.Intn(len(dest.Chromosomes[slot]))
		dest.Chromosomes[slot][locus] = chromosome.RandomChar()
		return nil
	}
}

// BitFlip returns a Mutate callback that flips a single random bit of a
// single random chromosome slot.
func BitFlip() func(context.Context, *core.Population[chromosome.BitstringChromosome], *core.Entity[chromosome.BitstringChromosome], *core.Entity[chromosome.BitstringChromosome]) error {
	return func(ctx context.Context, p *core.Population[chromosome.BitstringChromosome], src, dest *core.Entity[chromosome.BitstringChromosome]) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		dest.Chromosomes = copyBitChromosomes(src.Chromosomes)
		slot := rand.Intn(len(dest.Chromosomes))
		if len(dest.Chromosomes[slot]) == 0 {
			return errEmptyChromosome()
		}
		locus := rand.Intn(len(dest.Chromosomes[slot]))
		dest.Chromosomes[slot][locus] = !dest.Chromosomes[slot][locus]
		return nil
	}
}
