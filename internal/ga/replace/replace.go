// Package replace provides example Operators.Replace policies for the
// steady-state driver: each inserts newEntity into p according to a
// different rule. core.SteadyStateDriver already falls back to a
// worst-replace-if-better default when Replace is nil; these are the
// explicit alternatives a caller can bind instead.
package replace

import (
	"math/rand"

	"github.com/tomhoffer/darwinium/internal/core"
)

// Worst replaces the current worst-ranked entity with newEntity
// unconditionally, regardless of fitness. Equivalent to the driver's default
// policy minus the "only if better" guard.
func Worst[C core.Chromosome](p *core.Population[C], newEntity *core.Entity[C]) error {
	core.SortPopulation(p)
	worstRank := p.Size() - 1
	if worstRank < 0 {
		return nil
	}
	worst, err := core.ByRank(p, worstRank)
	if err != nil {
		return err
	}
	if worst == newEntity {
		return nil
	}
	core.Dereference(p, worst)
	return nil
}

// Random replaces a uniformly chosen entity (other than newEntity itself)
// with newEntity, independent of fitness.
func Random[C core.Chromosome](p *core.Population[C], newEntity *core.Entity[C]) error {
	if p.Size() <= 1 {
		return nil
	}
	for {
		victim, err := core.ByRank(p, rand.Intn(p.Size()))
		if err != nil {
			return err
		}
		if victim == newEntity {
			continue
		}
		core.Dereference(p, victim)
		return nil
	}
}

// IfBetterThanWorst is the driver's own default policy, provided here so
// callers can bind it explicitly (e.g. to compose it inside a larger custom
// policy) instead of relying on Operators.Replace being nil.
func IfBetterThanWorst[C core.Chromosome](p *core.Population[C], newEntity *core.Entity[C]) error {
	core.SortPopulation(p)
	worstRank := p.Size() - 1
	if worstRank < 0 {
		return nil
	}
	worst, err := core.ByRank(p, worstRank)
	if err != nil {
		return err
	}
	if newEntity.Fitness > worst.Fitness {
		core.Dereference(p, worst)
	} else {
		core.Dereference(p, newEntity)
	}
	return nil
}
