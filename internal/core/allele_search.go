package core

import "context"

// IntLocusChromosome is the narrow capability AlleleSearch needs from a
// chromosome: the ability to read and set a single integer-valued locus.
// Concrete chromosome types (internal/ga/chromosome) implement this in
// addition to Chromosome.
type IntLocusChromosome interface {
	Chromosome
	// Locus returns the integer value at position locus.
	Locus(locus int) int
	// SetLocus sets the integer value at position locus, returning a new
	// chromosome value (chromosomes are otherwise treated as opaque, but
	// AlleleSearch needs this one seam to do a systematic scan).
	SetLocus(locus, value int) Chromosome
}

// AlleleSearch performs a systematic scan over the inclusive-exclusive
// integer range [min, max) at a single locus of a single chromosome slot of
// start, evaluating each candidate and returning the best. It mutates no
// other locus. Each candidate is allocated in p; the returned best stays a
// live entity of p and every other candidate is dereferenced. start is not
// itself modified.
func AlleleSearch[C Chromosome](ctx context.Context, p *Population[C], chromosomeIdx, locus, min, max int, start *Entity[C]) (*Entity[C], error) {
	if p.Operators.Evaluate == nil {
		return nil, fatal(NewContractViolationError("AlleleSearch requires Evaluate operator", ErrMissingOperator))
	}
	if chromosomeIdx < 0 || chromosomeIdx >= len(start.Chromosomes) {
		return nil, fatal(NewContractViolationError("AlleleSearch: invalid chromosome index", ErrRankOutOfRange))
	}
	base, ok := any(start.Chromosomes[chromosomeIdx]).(IntLocusChromosome)
	if !ok {
		return nil, fatal(NewContractViolationError("AlleleSearch requires an IntLocusChromosome", nil))
	}

	var best *Entity[C]
	for v := min; v < max; v++ {
		candidate, err := GetFreeEntity(p)
		if err != nil {
			return nil, err
		}
		if err := replicateInto(p, start, candidate); err != nil {
			Dereference(p, candidate)
			return nil, err
		}
		candidate.Chromosomes[chromosomeIdx] = base.SetLocus(locus, v).(C)

		if err := p.Operators.Evaluate(ctx, p, candidate); err != nil {
			Dereference(p, candidate)
			return nil, err
		}

		if best == nil || candidate.Fitness > best.Fitness {
			if best != nil {
				Dereference(p, best)
			}
			best = candidate
		} else {
			Dereference(p, candidate)
		}
	}

	return best, nil
}
