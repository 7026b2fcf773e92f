package core

import (
	"context"
	"fmt"
	"math"

	progressbar "github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// ArchipelagoDriver runs N demes connected by a directed-ring migration
// topology. Demes are disjoint populations; the cooperative variant (Run)
// executes each deme's generation sequentially within one generation, the
// parallel variant (RunParallel) fans them out across goroutines bounded
// by numWorkers with an errgroup.
type ArchipelagoDriver[C Chromosome] struct {
	ShowProgress bool
}

// NewArchipelagoDriver constructs an ArchipelagoDriver with progress
// display enabled.
func NewArchipelagoDriver[C Chromosome]() *ArchipelagoDriver[C] {
	return &ArchipelagoDriver[C]{ShowProgress: true}
}

// Run evolves demes for up to maxGenerations generations, running each
// deme's generational step sequentially within a generation before the
// migration round.
func (d *ArchipelagoDriver[C]) Run(ctx context.Context, demes []*Population[C], transports []Transport, maxGenerations int) (Result, error) {
	return d.run(ctx, demes, transports, maxGenerations, 1)
}

// RunParallel is identical to Run except each deme's per-generation work
// runs on a dedicated worker, bounded by numWorkers (<=0 means unbounded).
func (d *ArchipelagoDriver[C]) RunParallel(ctx context.Context, demes []*Population[C], transports []Transport, maxGenerations, numWorkers int) (Result, error) {
	return d.run(ctx, demes, transports, maxGenerations, numWorkers)
}

func (d *ArchipelagoDriver[C]) run(ctx context.Context, demes []*Population[C], transports []Transport, maxGenerations, numWorkers int) (Result, error) {
	if len(demes) == 0 {
		return Result{}, ErrPopulationEmpty
	}
	if len(transports) != len(demes) {
		return Result{}, fatal(NewContractViolationError("one Transport is required per deme", nil))
	}

	gd := &GenerationalDriver[C]{ShowProgress: false}

	var bar *progressbar.ProgressBar
	if d.ShowProgress {
		bar = progressbar.Default(int64(maxGenerations))
	}

	for g := 1; g <= maxGenerations; g++ {
		if bar != nil {
			if err := bar.Add(1); err != nil {
				return Result{Completed: g - 1, Outcome: OutcomeBudgetExhausted}, err
			}
		}

		// 1. One generation of generational-driver work per deme.
		if err := runDemes(ctx, demes, gd, numWorkers); err != nil {
			return Result{Completed: g - 1, Outcome: OutcomeBudgetExhausted}, fmt.Errorf("generation %d failed: %w", g, err)
		}
		for _, deme := range demes {
			deme.Generation++
		}

		// 2-3. Migration round: emigrate top-ranked, immigrate, cull.
		if err := migrationRound(ctx, demes, transports); err != nil {
			return Result{Completed: g - 1, Outcome: OutcomeBudgetExhausted}, fmt.Errorf("migration round %d failed: %w", g, err)
		}

		// 4. Generation hooks; any false stops all demes.
		cont := true
		for _, deme := range demes {
			if deme.Operators.GenerationHook != nil && !deme.Operators.GenerationHook(g, deme) {
				cont = false
			}
		}
		if !cont {
			return Result{Completed: g, Outcome: OutcomeHookStopped}, nil
		}
	}

	return Result{Completed: maxGenerations, Outcome: OutcomeBudgetExhausted}, nil
}

// runDemes runs one generational step on every deme, sequentially when
// numWorkers==1 and fanned out across an errgroup (bounded by numWorkers
// when positive) otherwise.
func runDemes[C Chromosome](ctx context.Context, demes []*Population[C], gd *GenerationalDriver[C], numWorkers int) error {
	if numWorkers == 1 {
		for _, deme := range demes {
			if err := gd.runOneGeneration(ctx, deme); err != nil {
				return err
			}
		}
		return nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	if numWorkers > 0 {
		g.SetLimit(numWorkers)
	}
	for _, deme := range demes {
		deme := deme
		g.Go(func() error {
			return gd.runOneGeneration(gCtx, deme)
		})
	}
	return g.Wait()
}

// migrationRound has each deme emigrate round(migration_ratio *
// stable_size) top-ranked entities to (d+1) mod N, then every deme
// immigrates whatever arrived and culls its worst entities down to
// StableSize.
func migrationRound[C Chromosome](ctx context.Context, demes []*Population[C], transports []Transport) error {
	n := len(demes)

	for d, deme := range demes {
		SortPopulation(deme)
		count := int(math.Round(deme.Rates.Migration * float64(deme.StableSize)))
		if count > deme.Size() {
			count = deme.Size()
		}
		if count <= 0 {
			continue
		}
		emigrants := make([]*Entity[C], count)
		copy(emigrants, deme.rankIndex[:count])

		msg, err := emigrate(deme, emigrants)
		if err != nil {
			return err
		}
		neighbour := (d + 1) % n
		if err := transports[d].Send(ctx, neighbour, msg); err != nil {
			return NewTransportError("migration send failed", err)
		}
	}

	for d, deme := range demes {
		msg, err := transports[d].Receive(ctx)
		if err != nil {
			return NewTransportError("migration receive failed", err)
		}
		if _, err := immigrate(deme, msg); err != nil {
			return err
		}
	}

	for _, deme := range demes {
		SortPopulation(deme)
		Genocide(deme, deme.StableSize)
	}

	return nil
}
