// Package crossover provides example Operators.Crossover implementations:
// single-point crossover, which picks one randomly chosen cut point per
// chromosome slot and swaps genes past it between the two parents,
// producing two children c, d from parents a, b.
package crossover

import (
	"context"
	"math/rand"

	"github.com/tomhoffer/darwinium/internal/core"
	"github.com/tomhoffer/darwinium/internal/ga/chromosome"
)

func errUnequalLength() error {
	return core.NewContractViolationError("crossover parents must have equal-length chromosomes", nil)
}

// singlePointInt performs single-point crossover on two equal-length gene
// slices, returning two freshly-allocated children.
func singlePointInt(pa, pb chromosome.IntChromosome) (chromosome.IntChromosome, chromosome.IntChromosome, error) {
	if len(pa) != len(pb) {
		return nil, nil, errUnequalLength()
	}
	n := len(pa)
	child1 := make(chromosome.IntChromosome, n)
	child2 := make(chromosome.IntChromosome, n)
	if n <= 1 {
		copy(child1, pa)
		copy(child2, pb)
		return child1, child2, nil
	}
	point := rand.Intn(n-1) + 1
	copy(child1[:point], pa[:point])
	copy(child1[point:], pb[point:])
	copy(child2[:point], pb[:point])
	copy(child2[point:], pa[point:])
	return child1, child2, nil
}

// SinglePointInt is a Crossover callback for IntChromosome populations.
func SinglePointInt(ctx context.Context, p *core.Population[chromosome.IntChromosome], a, b, c, d *core.Entity[chromosome.IntChromosome]) error {
	c.Chromosomes = make([]chromosome.IntChromosome, p.NumChromosomes)
	d.Chromosomes = make([]chromosome.IntChromosome, p.NumChromosomes)
	for slot := 0; slot < p.NumChromosomes; slot++ {
		child1, child2, err := singlePointInt(a.Chromosomes[slot], b.Chromosomes[slot])
		if err != nil {
			return err
		}
		c.Chromosomes[slot] = child1
		d.Chromosomes[slot] = child2
	}
	return nil
}

func singlePointChar(pa, pb chromosome.CharChromosome) (chromosome.CharChromosome, chromosome.CharChromosome, error) {
	if len(pa) != len(pb) {
		return nil, nil, errUnequalLength()
	}
	n := len(pa)
	child1 := make(chromosome.CharChromosome, n)
	child2 := make(chromosome.CharChromosome, n)
	if n <= 1 {
		copy(child1, pa)
		copy(child2, pb)
		return child1, child2, nil
	}
	point := rand.Intn(n-1) + 1
	copy(child1[:point], pa[:point])
	copy(child1[point:], pb[point:])
	copy(child2[:point], pb[:point])
	copy(child2[point:], pa[point:])
	return child1, child2, nil
}

// SinglePointChar is a Crossover callback for CharChromosome populations.
func SinglePointChar(ctx context.Context, p *core.Population[chromosome.CharChromosome], a, b, c, d *core.Entity[chromosome.CharChromosome]) error {
	c.Chromosomes = make([]chromosome.CharChromosome, p.NumChromosomes)
	d.Chromosomes = make([]chromosome.CharChromosome, p.NumChromosomes)
	for slot := 0; slot < p.NumChromosomes; slot++ {
		child1, child2, err := singlePointChar(a.Chromosomes[slot], b.Chromosomes[slot])
		if err != nil {
			return err
		}
		c.Chromosomes[slot] = child1
		d.Chromosomes[slot] = child2
	}
	return nil
}

func singlePointBit(pa, pb chromosome.BitstringChromosome) (chromosome.BitstringChromosome, chromosome.BitstringChromosome, error) {
	if len(pa) != len(pb) {
		return nil, nil, errUnequalLength()
	}
	n := len(pa)
	child1 := make(chromosome.BitstringChromosome, n)
	child2 := make(chromosome.BitstringChromosome, n)
	if n <= 1 {
		copy(child1, pa)
		copy(child2, pb)
		return child1, child2, nil
	}
	point := rand.Intn(n-1) + 1
	copy(child1[:point], pa[:point])
	copy(child1[point:], pb[point:])
	copy(child2[:point], pb[:point])
	copy(child2[point:], pa[point:])
	return child1, child2, nil
}

// SinglePointBit is a Crossover callback for BitstringChromosome populations.
func SinglePointBit(ctx context.Context, p *core.Population[chromosome.BitstringChromosome], a, b, c, d *core.Entity[chromosome.BitstringChromosome]) error {
	c.Chromosomes = make([]chromosome.BitstringChromosome, p.NumChromosomes)
	d.Chromosomes = make([]chromosome.BitstringChromosome, p.NumChromosomes)
	for slot := 0; slot < p.NumChromosomes; slot++ {
		child1, child2, err := singlePointBit(a.Chromosomes[slot], b.Chromosomes[slot])
		if err != nil {
			return err
		}
		c.Chromosomes[slot] = child1
		d.Chromosomes[slot] = child2
	}
	return nil
}
