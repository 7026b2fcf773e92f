// Command struggle runs a sentence-matching demo: a generational search
// over fixed-length printable-character genomes whose fitness is the
// number of positions matching a target sentence. Children are adapted by
// a per-locus hill climb and the adapted genome is written back
// (Lamarck-children), so the search stops as soon as a generation produces
// an exact match rather than running its full generation budget.
package main

import (
	"context"
	"fmt"

	"github.com/tomhoffer/darwinium/internal/core"
	"github.com/tomhoffer/darwinium/internal/ga/adapt"
	"github.com/tomhoffer/darwinium/internal/ga/chromosome"
	"github.com/tomhoffer/darwinium/internal/ga/crossover"
	"github.com/tomhoffer/darwinium/internal/ga/fitness"
	"github.com/tomhoffer/darwinium/internal/ga/mutation"
	"github.com/tomhoffer/darwinium/internal/ga/seed"
	"github.com/tomhoffer/darwinium/internal/ga/selection"
)

const (
	target         = "When we reflect on this struggle, we find that it ennobles the whole of nature."
	stableSize     = 120
	generations    = 1000
	tournamentSize = 4
	printableMin   = 32
	printableMax   = 126
)

func main() {
	length := len(target)

	// 1. Wire operators.
	ops := chromosome.CharRepresentation(length)
	ops.Seed = seed.RandomChar()
	ops.Evaluate = fitness.HammingMatch(target)
	ops.Crossover = crossover.SinglePointChar
	ops.Mutate = mutation.RandomReset()
	ops.Adapt = adapt.HillClimb[chromosome.CharChromosome](0, length, printableMin, printableMax+1)
	ops.Select1 = &selection.Tournament[chromosome.CharChromosome]{Size: tournamentSize}
	ops.Select2 = &selection.TournamentPair[chromosome.CharChromosome]{Size: tournamentSize}

	exact := false
	ops.GenerationHook = func(generation int, p *core.Population[chromosome.CharChromosome]) bool {
		best, err := core.BestSolution(p)
		if err != nil {
			return true
		}
		if best.Fitness == float64(length) {
			exact = true
			return false
		}
		return true
	}

	// 2. Build and seed a population.
	p := core.NewPopulation[chromosome.CharChromosome](stableSize, 1, length)
	p.Operators = ops
	p.Rates = core.Rates{Crossover: 0.8, Mutation: 0.05}
	p.Scheme = core.LamarckChildren
	p.Elitism = core.ElitismParentsSurvive

	ctx := context.Background()
	for i := 0; i < stableSize; i++ {
		e, err := core.GetFreeEntity(p)
		if err != nil {
			panic(fmt.Sprintf("failed to allocate entity: %v", err))
		}
		if _, err := ops.Seed(p, e); err != nil {
			panic(fmt.Sprintf("failed to seed entity: %v", err))
		}
		if err := ops.Evaluate(ctx, p, e); err != nil {
			panic(fmt.Sprintf("failed to score entity: %v", err))
		}
	}

	// 3. Run the generational driver.
	driver := core.NewGenerationalDriver[chromosome.CharChromosome]()
	result, err := driver.Run(ctx, p, generations)
	if err != nil {
		panic(fmt.Sprintf("genetic algorithm failed: %v", err))
	}

	// 4. Print the final result.
	best, err := core.BestSolution(p)
	if err != nil {
		panic(fmt.Sprintf("failed to get best solution: %v", err))
	}
	status := result.Outcome.String()
	if exact {
		status = "exact solution"
	}
	fmt.Printf("Stopped after %d generations (%s)\n", result.Completed, status)
	fmt.Printf("Best match (%.0f/%d): %q\n", best.Fitness, length, best.Chromosomes[0].String())
}
