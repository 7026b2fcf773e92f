package core

import (
	"context"
	"fmt"

	progressbar "github.com/schollz/progressbar/v3"
)

// Outcome distinguishes why a driver's loop stopped. A hook returning
// false to request early termination is not an error.
type Outcome int

const (
	// OutcomeBudgetExhausted means the loop ran its full generation/iteration
	// budget.
	OutcomeBudgetExhausted Outcome = iota
	// OutcomeHookStopped means a GenerationHook/IterationHook returned false.
	OutcomeHookStopped
)

func (o Outcome) String() string {
	if o == OutcomeHookStopped {
		return "hook stopped"
	}
	return "generation budget exhausted"
}

// Result reports how many generations/iterations a driver completed, why it
// stopped, and a best/mean/worst fitness summary per completed
// generation/iteration. The archipelago driver leaves History empty.
type Result struct {
	Completed int
	Outcome   Outcome
	History   []Stats
}

// GenerationalDriver runs the classical generational control loop over a
// single, already-seeded and already-scored population.
type GenerationalDriver[C Chromosome] struct {
	// ShowProgress enables a progressbar.Default bar. NewGenerationalDriver
	// sets it to true; the zero value is false.
	ShowProgress bool
}

// NewGenerationalDriver constructs a GenerationalDriver with progress
// display enabled.
func NewGenerationalDriver[C Chromosome]() *GenerationalDriver[C] {
	return &GenerationalDriver[C]{ShowProgress: true}
}

// Run evolves p for up to maxGenerations generations following a 9-step
// loop: sort, pre-adapt, crossover, mutate, score, post-adapt, sort,
// elitism, dereference non-survivors.
func (d *GenerationalDriver[C]) Run(ctx context.Context, p *Population[C], maxGenerations int) (Result, error) {
	if p == nil || p.Size() == 0 {
		return Result{}, ErrPopulationEmpty
	}

	var bar *progressbar.ProgressBar
	if d.ShowProgress {
		bar = progressbar.Default(int64(maxGenerations))
	}

	history := make([]Stats, 0, maxGenerations)

	for g := 1; g <= maxGenerations; g++ {
		if bar != nil {
			if err := bar.Add(1); err != nil {
				return Result{Completed: g - 1, Outcome: OutcomeBudgetExhausted, History: history}, err
			}
		}

		if err := d.runOneGeneration(ctx, p); err != nil {
			return Result{Completed: g - 1, Outcome: OutcomeBudgetExhausted, History: history}, err
		}

		p.Generation++
		history = append(history, computeStats(p))

		cont := true
		if p.Operators.GenerationHook != nil {
			cont = p.Operators.GenerationHook(g, p)
		}
		if !cont {
			return Result{Completed: g, Outcome: OutcomeHookStopped, History: history}, nil
		}
	}

	return Result{Completed: maxGenerations, Outcome: OutcomeBudgetExhausted, History: history}, nil
}

// runOneGeneration performs one generation's worth of the loop above. It is
// also used directly by the archipelago driver to advance each deme.
func (d *GenerationalDriver[C]) runOneGeneration(ctx context.Context, p *Population[C]) error {
	// 1. Sort, record parent-set size.
	SortPopulation(p)
	origSize := p.Size()

	// 2. Pre-adaptation.
	if p.Scheme.adaptsParents() {
		if err := adaptRange(ctx, p, 0, origSize); err != nil {
			return fmt.Errorf("pre-adaptation failed: %w", err)
		}
	}

	// 3. Crossover.
	if err := performCrossover(ctx, p); err != nil {
		return fmt.Errorf("crossover failed: %w", err)
	}

	// 4. Mutation.
	if err := performMutation(ctx, p); err != nil {
		return fmt.Errorf("mutation failed: %w", err)
	}

	// 5. Score new entities (rank >= origSize).
	if err := scoreRange(ctx, p, origSize, p.Size()); err != nil {
		return fmt.Errorf("scoring failed: %w", err)
	}

	// 6. Post-adaptation.
	if p.Scheme.adaptsChildren() {
		if err := adaptRange(ctx, p, origSize, p.Size()); err != nil {
			return fmt.Errorf("post-adaptation failed: %w", err)
		}
	}

	// 7-8. Sort, apply elitism, dereference non-survivors.
	if err := applyElitism(ctx, p, origSize); err != nil {
		return fmt.Errorf("elitism failed: %w", err)
	}

	return nil
}

// adaptRange adapts every entity ranked in [lo, hi) and applies the
// scheme's Lamarckian/Baldwinian write-back rule.
func adaptRange[C Chromosome](ctx context.Context, p *Population[C], lo, hi int) error {
	if p.Operators.Adapt == nil {
		return fatal(NewContractViolationError("adaptation scheme requires Adapt operator", ErrMissingOperator))
	}
	for rank := lo; rank < hi && rank < p.Size(); rank++ {
		e := p.rankIndex[rank]
		adapted, err := p.Operators.Adapt(ctx, p, e)
		if err != nil {
			return err
		}
		if p.Scheme.lamarckian() {
			e.Chromosomes = adapted.Chromosomes
			e.Fitness = adapted.Fitness
		} else {
			// Baldwinian: keep e's own chromosomes, borrow only the fitness.
			e.Fitness = adapted.Fitness
		}
		Dereference(p, adapted)
	}
	return nil
}

// scoreRange evaluates every entity ranked in [lo, hi).
func scoreRange[C Chromosome](ctx context.Context, p *Population[C], lo, hi int) error {
	if p.Operators.Evaluate == nil {
		return fatal(NewContractViolationError("scoring requires Evaluate operator", ErrMissingOperator))
	}
	for rank := lo; rank < hi && rank < p.Size(); rank++ {
		if err := p.Operators.Evaluate(ctx, p, p.rankIndex[rank]); err != nil {
			return err
		}
	}
	return nil
}

// performCrossover resets Select2, then while it yields a pair and a
// Bernoulli(CrossoverRatio) draw succeeds, produces two children and
// appends them.
func performCrossover[C Chromosome](ctx context.Context, p *Population[C]) error {
	if p.Operators.Select2 == nil || p.Operators.Crossover == nil {
		return fatal(NewContractViolationError("crossover requires Select2 and Crossover operators", ErrMissingOperator))
	}
	p.Operators.Select2.Reset(p)
	for {
		a, b, ok := p.Operators.Select2.Next(p)
		if !ok {
			break
		}
		if !bernoulli(p.Rates.Crossover) {
			continue
		}
		c, err := GetFreeEntity(p)
		if err != nil {
			return err
		}
		dd, err := GetFreeEntity(p)
		if err != nil {
			return err
		}
		if err := p.Operators.Crossover(ctx, p, a, b, c, dd); err != nil {
			Dereference(p, c)
			Dereference(p, dd)
			return err
		}
		if p.Elitism == ElitismPurebredOnly {
			c.lineage, c.hasLineage = [2]int{a.ID(), b.ID()}, true
			dd.lineage, dd.hasLineage = [2]int{a.ID(), b.ID()}, true
		}
	}
	return nil
}

// performMutation resets Select1, then while it yields a parent and a
// Bernoulli(MutationRatio) draw succeeds, produces one mutated child and
// appends it.
func performMutation[C Chromosome](ctx context.Context, p *Population[C]) error {
	if p.Operators.Select1 == nil || p.Operators.Mutate == nil {
		return fatal(NewContractViolationError("mutation requires Select1 and Mutate operators", ErrMissingOperator))
	}
	p.Operators.Select1.Reset(p)
	for {
		a, ok := p.Operators.Select1.Next(p)
		if !ok {
			break
		}
		if !bernoulli(p.Rates.Mutation) {
			continue
		}
		child, err := GetFreeEntity(p)
		if err != nil {
			return err
		}
		if err := p.Operators.Mutate(ctx, p, a, child); err != nil {
			return err
		}
	}
	return nil
}

// applyElitism sorts, picks the survivor set of length StableSize
// according to p.Elitism, then dereferences everything not in it.
func applyElitism[C Chromosome](ctx context.Context, p *Population[C], origSize int) error {
	if p.Elitism == ElitismRescoreParents {
		if err := scoreRange(ctx, p, 0, origSize); err != nil {
			return err
		}
	}

	if p.Elitism == ElitismPurebredOnly {
		purgePurebredViolations(p, origSize)
	}

	parentRankZero := p.rankIndex[0]

	SortPopulation(p)

	survivors := p.StableSize
	if survivors > p.Size() {
		survivors = p.Size()
	}

	switch p.Elitism {
	case ElitismOneParentSurvives:
		found := false
		for i := 0; i < survivors; i++ {
			if p.rankIndex[i] == parentRankZero {
				found = true
				break
			}
		}
		if !found && survivors > 0 {
			// swap the guaranteed survivor into the last survivor slot,
			// displacing the current last survivor.
			displaced := p.rankIndex[survivors-1]
			pr := parentRankZero.rank
			p.rankIndex[survivors-1], p.rankIndex[pr] = p.rankIndex[pr], displaced
			p.rankIndex[survivors-1].rank = survivors - 1
			p.rankIndex[pr].rank = pr
		}
	case ElitismNone, ElitismParentsSurvive, ElitismRescoreParents, ElitismPurebredOnly, ElitismUnknownDefault:
		// Ranking by fitness over the combined set already implements
		// "parents-survive with ties favouring parents" because the sort is
		// stable and parents were placed before children in rankIndex prior
		// to this sort.
	}

	Genocide(p, survivors)
	return nil
}

// purgePurebredViolations dereferences every child (rank >= origSize) not
// produced from two parents of identical lineage, under the
// purebred-only elitism policy.
func purgePurebredViolations[C Chromosome](p *Population[C], origSize int) {
	var toKill []*Entity[C]
	for rank := origSize; rank < p.Size(); rank++ {
		e := p.rankIndex[rank]
		if !e.hasLineage || e.lineage[0] != e.lineage[1] {
			toKill = append(toKill, e)
		}
	}
	for _, e := range toKill {
		Dereference(p, e)
	}
}
