// Package adapt provides an example Operators.Adapt implementation for
// Lamarckian/Baldwinian schemes, returning an adapted clone of an entity
// and built directly on core.AlleleSearch.
package adapt

import (
	"context"

	"github.com/tomhoffer/darwinium/internal/core"
)

// HillClimb returns an Adapt callback that runs core.AlleleSearch once per
// locus of chromosome slot chromosomeIdx, in order, each search informed by
// the best candidate the previous locus produced. It returns a freshly
// allocated, scored entity; the caller (adaptRange in the generational
// driver) decides whether to write it back (Lamarckian) or keep only its
// fitness (Baldwinian).
func HillClimb[C core.Chromosome](chromosomeIdx, numLoci, valMin, valMax int) func(context.Context, *core.Population[C], *core.Entity[C]) (*core.Entity[C], error) {
	return func(ctx context.Context, p *core.Population[C], e *core.Entity[C]) (*core.Entity[C], error) {
		current := e
		owned := false
		for locus := 0; locus < numLoci; locus++ {
			if ctx.Err() != nil {
				if owned {
					core.Dereference(p, current)
				}
				return nil, ctx.Err()
			}
			best, err := core.AlleleSearch(ctx, p, chromosomeIdx, locus, valMin, valMax, current)
			if err != nil {
				if owned {
					core.Dereference(p, current)
				}
				return nil, err
			}
			if owned {
				core.Dereference(p, current)
			}
			current = best
			owned = true
		}
		if !owned {
			// numLoci == 0: nothing to search, hand back a plain replica so the
			// caller can still Dereference it uniformly.
			clone, err := core.GetFreeEntity(p)
			if err != nil {
				return nil, err
			}
			clone.Chromosomes = make([]C, len(e.Chromosomes))
			for i, c := range e.Chromosomes {
				clone.Chromosomes[i] = any(c).(core.Chromosome).Replicate().(C)
			}
			clone.Fitness = e.Fitness
			return clone, nil
		}
		return current, nil
	}
}
