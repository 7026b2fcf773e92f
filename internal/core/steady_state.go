package core

import (
	"context"
	"fmt"

	progressbar "github.com/schollz/progressbar/v3"
)

// SteadyStateDriver runs an overlapping-generations control loop over a
// single, already-seeded and already-scored population.
type SteadyStateDriver[C Chromosome] struct {
	ShowProgress bool
}

// NewSteadyStateDriver constructs a SteadyStateDriver with progress display
// enabled.
func NewSteadyStateDriver[C Chromosome]() *SteadyStateDriver[C] {
	return &SteadyStateDriver[C]{ShowProgress: true}
}

// Run evolves p for up to maxIterations steady-state iterations: select one
// or two parents, cross or clone, possibly mutate, score, then Replace.
// No generation-level sorting is required; Replace is responsible for
// whatever invariants it cares about.
func (d *SteadyStateDriver[C]) Run(ctx context.Context, p *Population[C], maxIterations int) (Result, error) {
	if p == nil || p.Size() == 0 {
		return Result{}, ErrPopulationEmpty
	}
	if p.Operators.Evaluate == nil {
		return Result{}, fatal(NewContractViolationError("steady state requires Evaluate operator", ErrMissingOperator))
	}

	var bar *progressbar.ProgressBar
	if d.ShowProgress {
		bar = progressbar.Default(int64(maxIterations))
	}

	history := make([]Stats, 0, maxIterations)

	for i := 1; i <= maxIterations; i++ {
		if bar != nil {
			if err := bar.Add(1); err != nil {
				return Result{Completed: i - 1, Outcome: OutcomeBudgetExhausted, History: history}, err
			}
		}

		children, err := d.runOneIteration(ctx, p)
		if err != nil {
			return Result{Completed: i - 1, Outcome: OutcomeBudgetExhausted, History: history}, fmt.Errorf("steady-state iteration %d failed: %w", i, err)
		}

		// Offer the weaker child of a crossed pair first, so that a child
		// displaced by its own sibling is not offered again afterwards.
		order := children
		if len(children) == 2 && children[1].Fitness < children[0].Fitness {
			order = []*Entity[C]{children[1], children[0]}
		}
		for _, child := range order {
			if err := d.replace(p, child); err != nil {
				return Result{Completed: i - 1, Outcome: OutcomeBudgetExhausted, History: history}, err
			}
		}

		SortPopulation(p)
		history = append(history, computeStats(p))

		cont := true
		if p.Operators.IterationHook != nil {
			var last *Entity[C]
			if len(children) > 0 {
				last = children[len(children)-1]
			}
			cont = p.Operators.IterationHook(i, last)
		}
		if !cont {
			return Result{Completed: i, Outcome: OutcomeHookStopped, History: history}, nil
		}
	}

	return Result{Completed: maxIterations, Outcome: OutcomeBudgetExhausted, History: history}, nil
}

// runOneIteration selects parents, produces one child or a crossed pair,
// scores them, and returns the result, not yet inserted into p.
func (d *SteadyStateDriver[C]) runOneIteration(ctx context.Context, p *Population[C]) ([]*Entity[C], error) {
	if bernoulli(p.Rates.Crossover) && p.Operators.Select2 != nil && p.Operators.Crossover != nil {
		p.Operators.Select2.Reset(p)
		a, b, ok := p.Operators.Select2.Next(p)
		if !ok {
			return nil, fatal(NewContractViolationError("Select2 yielded no parents", ErrSelectorExhausted))
		}
		c, err := GetFreeEntity(p)
		if err != nil {
			return nil, err
		}
		e, err := GetFreeEntity(p)
		if err != nil {
			return nil, err
		}
		if err := p.Operators.Crossover(ctx, p, a, b, c, e); err != nil {
			Dereference(p, c)
			Dereference(p, e)
			return nil, err
		}
		if err := d.maybeMutate(ctx, p, c); err != nil {
			return nil, err
		}
		if err := d.maybeMutate(ctx, p, e); err != nil {
			return nil, err
		}
		if err := p.Operators.Evaluate(ctx, p, c); err != nil {
			return nil, err
		}
		if err := p.Operators.Evaluate(ctx, p, e); err != nil {
			return nil, err
		}
		return []*Entity[C]{c, e}, nil
	}

	if p.Operators.Select1 == nil {
		return nil, fatal(NewContractViolationError("steady state requires Select1 when crossover does not fire", ErrMissingOperator))
	}
	p.Operators.Select1.Reset(p)
	a, ok := p.Operators.Select1.Next(p)
	if !ok {
		return nil, fatal(NewContractViolationError("Select1 yielded no parent", ErrSelectorExhausted))
	}
	clone, err := GetFreeEntity(p)
	if err != nil {
		return nil, err
	}
	if err := replicateInto(p, a, clone); err != nil {
		return nil, err
	}
	if err := d.maybeMutate(ctx, p, clone); err != nil {
		return nil, err
	}
	if err := p.Operators.Evaluate(ctx, p, clone); err != nil {
		return nil, err
	}
	return []*Entity[C]{clone}, nil
}

// maybeMutate mutates child in place via a fresh clone when the
// MutationRatio draw succeeds.
func (d *SteadyStateDriver[C]) maybeMutate(ctx context.Context, p *Population[C], child *Entity[C]) error {
	if !bernoulli(p.Rates.Mutation) || p.Operators.Mutate == nil {
		return nil
	}
	mutated, err := GetFreeEntity(p)
	if err != nil {
		return err
	}
	if err := p.Operators.Mutate(ctx, p, child, mutated); err != nil {
		Dereference(p, mutated)
		return err
	}
	child.Chromosomes = mutated.Chromosomes
	Dereference(p, mutated)
	return nil
}

// replace applies Operators.Replace if bound; otherwise falls back to the
// default policy: replace the current rank size-1 entity iff child's
// fitness strictly exceeds it.
func (d *SteadyStateDriver[C]) replace(p *Population[C], child *Entity[C]) error {
	if p.Operators.Replace != nil {
		return p.Operators.Replace(p, child)
	}

	SortPopulation(p)
	worstRank := p.Size() - 1
	if worstRank < 0 {
		return nil
	}
	worst := p.rankIndex[worstRank]
	if child.Fitness > worst.Fitness {
		Dereference(p, worst)
	} else {
		Dereference(p, child)
	}
	return nil
}
