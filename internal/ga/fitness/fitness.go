// Package fitness provides example Operators.Evaluate implementations:
// each computes and stores e.Fitness for one of the demo chromosome types.
package fitness

import (
	"context"

	"github.com/tomhoffer/darwinium/internal/core"
	"github.com/tomhoffer/darwinium/internal/ga/chromosome"
	"github.com/tomhoffer/darwinium/internal/utils"
)

func errEvaluation(message string, wrapped error) error {
	return core.NewOperatorFailureError(message, wrapped)
}

// SumInt is an Evaluate callback for IntChromosome populations: fitness is
// the sum of every gene across every chromosome slot, converted via
// utils.ConvertToFloat64, with context-cancellation checks threaded
// through the loop.
func SumInt(ctx context.Context, p *core.Population[chromosome.IntChromosome], e *core.Entity[chromosome.IntChromosome]) error {
	select {
	case <-ctx.Done():
		return errEvaluation("context cancelled", ctx.Err())
	default:
	}

	var sum float64
	for _, gene := range e.Chromosomes {
		for _, v := range gene {
			select {
			case <-ctx.Done():
				return errEvaluation("context cancelled", ctx.Err())
			default:
			}
			converted, err := utils.ConvertToFloat64(v)
			if err != nil {
				return errEvaluation("unable to convert chromosome value to float64", err)
			}
			sum += converted
		}
	}
	e.Fitness = sum
	return nil
}

// HammingMatch returns an Evaluate callback for CharChromosome populations
// that scores sentence-matching style tasks: fitness is the count of
// positions that equal the corresponding byte of target, in chromosome
// slot 0. A perfect match scores len(target).
func HammingMatch(target string) func(context.Context, *core.Population[chromosome.CharChromosome], *core.Entity[chromosome.CharChromosome]) error {
	targetBytes := []byte(target)
	return func(ctx context.Context, p *core.Population[chromosome.CharChromosome], e *core.Entity[chromosome.CharChromosome]) error {
		if ctx.Err() != nil {
			return errEvaluation("context cancelled", ctx.Err())
		}
		if len(e.Chromosomes) == 0 {
			return errEvaluation("cannot evaluate an entity with no chromosomes", nil)
		}
		gene := e.Chromosomes[0]
		if len(gene) != len(targetBytes) {
			return errEvaluation("chromosome length does not match target length", nil)
		}
		var score float64
		for i, b := range gene {
			if b == targetBytes[i] {
				score++
			}
		}
		e.Fitness = score
		return nil
	}
}

// OneMax is an Evaluate callback for BitstringChromosome populations: fitness
// is the total number of set bits across every chromosome slot.
func OneMax(ctx context.Context, p *core.Population[chromosome.BitstringChromosome], e *core.Entity[chromosome.BitstringChromosome]) error {
	if ctx.Err() != nil {
		return errEvaluation("context cancelled", ctx.Err())
	}
	var total float64
	for _, gene := range e.Chromosomes {
		for _, b := range gene {
			if b {
				total++
			}
		}
	}
	e.Fitness = total
	return nil
}
