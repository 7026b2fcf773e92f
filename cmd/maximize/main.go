// Command maximize runs a small integer-maximisation demo: a generational
// search over fixed-length integer genomes whose fitness is simply the
// sum of their genes.
package main

import (
	"context"
	"fmt"

	"github.com/tomhoffer/darwinium/internal/core"
	"github.com/tomhoffer/darwinium/internal/ga/chromosome"
	"github.com/tomhoffer/darwinium/internal/ga/crossover"
	"github.com/tomhoffer/darwinium/internal/ga/fitness"
	"github.com/tomhoffer/darwinium/internal/ga/mutation"
	"github.com/tomhoffer/darwinium/internal/ga/seed"
	"github.com/tomhoffer/darwinium/internal/ga/selection"
)

const (
	stableSize       = 20
	chromosomeLength = 10
	generations      = 200
	tournamentSize   = 5
	geneMin          = 0
	geneMax          = 100
)

func main() {
	// 1. Wire operators.
	ops := chromosome.IntRepresentation(chromosomeLength)
	ops.Seed = seed.UniformInt(geneMin, geneMax)
	ops.Evaluate = fitness.SumInt
	ops.Crossover = crossover.SinglePointInt
	ops.Mutate = mutation.Creep(geneMin, geneMax)
	ops.Select1 = &selection.Tournament[chromosome.IntChromosome]{Size: tournamentSize}
	ops.Select2 = &selection.TournamentPair[chromosome.IntChromosome]{Size: tournamentSize}

	// 2. Build and seed a population.
	p := core.NewPopulation[chromosome.IntChromosome](stableSize, 1, chromosomeLength)
	p.Operators = ops
	p.Rates = core.Rates{Crossover: 0.5, Mutation: 1.0}
	p.Scheme = core.Darwin
	p.Elitism = core.ElitismNone

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
	driver := core.NewGenerationalDriver[chromosome.IntChromosome]()
	result, err := driver.Run(ctx, p, generations)
	if err != nil {
		panic(fmt.Sprintf("genetic algorithm failed: %v", err))
	}

	// 4. Print the final result.
	best, err := core.BestSolution(p)
	if err != nil {
		panic(fmt.Sprintf("failed to get best solution: %v", err))
	}
	fmt.Printf("Stopped after %d generations (%s)\n", result.Completed, result.Outcome)
	fmt.Printf("Best solution found with fitness %.2f:\n", best.Fitness)
	fmt.Printf("Chromosome: %v\n", best.Chromosomes[0])
}
