package core

import "sort"

// Rates bundles the three probabilities a population's drivers consult:
// crossover, mutation, and migration. Each is expected in [0, 1]; the
// engine does not clamp out-of-range values, it is the caller's contract
// to respect.
type Rates struct {
	Crossover float64
	Mutation  float64
	Migration float64
}

// Population is a container of entities plus the configuration vector that
// parametrises how the engine evolves them.
type Population[C Chromosome] struct {
	// NumChromosomes and LenChromosomes are structural parameters, immutable
	// after creation.
	NumChromosomes int
	LenChromosomes int

	// Operators is the callback binding.
	Operators Operators[C]

	// StableSize is the target number of survivors carried between
	// generations.
	StableSize int

	Rates   Rates
	Scheme  Scheme
	Elitism Elitism

	// Generation is a monotonically increasing counter readable by fitness
	// callbacks.
	Generation int

	// Island is the deme label within an archipelago; -1 means stand-alone.
	Island int

	// UserData is an opaque value passed through to callbacks.
	UserData any

	idIndex    []*Entity[C] // length maxSize; nil entry means empty slot
	rankIndex  []*Entity[C] // length size; permutation of live entities
	freeCursor int          // next slot to probe in GetFreeEntity

	regID    PopulationId
	registry *Registry
}

// registryID and setRegistryID implement the registeredPopulation interface
// the Registry uses internally; ID is the public accessor.
func (p *Population[C]) registryID() PopulationId      { return p.regID }
func (p *Population[C]) setRegistryID(id PopulationId) { p.regID = id }

// ID returns the population's registry handle, or 0 if it is not currently
// registered.
func (p *Population[C]) ID() PopulationId { return p.regID }

// NewPopulation constructs an empty, registered population with
// stableSize, numChromosomes and lenChromosomes fixed, max_size =
// 4*stableSize, default rates of 1.0, scheme Darwin, elitism
// ElitismUnknownDefault, no callbacks bound, generation 0, island -1.
func NewPopulation[C Chromosome](stableSize, numChromosomes, lenChromosomes int) *Population[C] {
	maxSize := stableSize * 4
	p := &Population[C]{
		NumChromosomes: numChromosomes,
		LenChromosomes: lenChromosomes,
		StableSize:     stableSize,
		Rates:          Rates{Crossover: 1.0, Mutation: 1.0, Migration: 1.0},
		Scheme:         Darwin,
		Elitism:        ElitismUnknownDefault,
		Island:         -1,
		idIndex:        make([]*Entity[C], maxSize),
		registry:       DefaultRegistry(),
	}
	p.registry.register(p)
	return p
}

// Size returns the current number of live entities.
func (p *Population[C]) Size() int { return len(p.rankIndex) }

// MaxSize returns the current id-index capacity.
func (p *Population[C]) MaxSize() int { return len(p.idIndex) }

// CloneEmpty copies p's configuration and callbacks, but no entities, into
// a freshly registered population.
func CloneEmpty[C Chromosome](p *Population[C]) *Population[C] {
	clone := NewPopulation[C](p.StableSize, p.NumChromosomes, p.LenChromosomes)
	clone.Operators = p.Operators
	clone.Rates = p.Rates
	clone.Scheme = p.Scheme
	clone.Elitism = p.Elitism
	clone.Island = p.Island
	clone.UserData = p.UserData
	return clone
}

// Clone performs CloneEmpty followed by an entity-by-entity copy that
// preserves rank order; entity ids are not preserved across the clone.
func Clone[C Chromosome](p *Population[C]) (*Population[C], error) {
	clone := CloneEmpty(p)
	for _, src := range p.rankIndex {
		dest, err := GetFreeEntity(clone)
		if err != nil {
			return nil, err
		}
		if err := replicateInto(clone, src, dest); err != nil {
			return nil, err
		}
	}
	return clone, nil
}

// grow doubles-ish (×1.5) the id-index capacity so GetFreeEntity stays
// amortised O(1) even as the population outgrows its initial allocation.
func (p *Population[C]) grow() {
	oldLen := len(p.idIndex)
	newLen := oldLen + oldLen/2
	if newLen <= oldLen {
		newLen = oldLen + 1
	}
	grown := make([]*Entity[C], newLen)
	copy(grown, p.idIndex)
	p.idIndex = grown
}

// GetFreeEntity scans the id index backwards from the free cursor, wrapping,
// for an empty slot; grows the pool geometrically if full; attaches fresh
// chromosomes via Operators.ChromosomeConstructor; appends the entity to the
// rank index; and returns it. Amortised O(1).
func GetFreeEntity[C Chromosome](p *Population[C]) (*Entity[C], error) {
	if p == nil {
		return nil, fatal(NewContractViolationError("GetFreeEntity on nil population", ErrPopulationNil))
	}
	if p.Operators.ChromosomeConstructor == nil {
		return nil, fatal(NewContractViolationError("GetFreeEntity requires ChromosomeConstructor", ErrMissingOperator))
	}

	if len(p.idIndex) == 0 {
		p.grow()
	}

	n := len(p.idIndex)
	slot := -1
	for i := 0; i < n; i++ {
		idx := (p.freeCursor - i + n) % n
		if p.idIndex[idx] == nil {
			slot = idx
			break
		}
	}
	if slot == -1 {
		p.grow()
		slot = n // the first newly grown slot, guaranteed empty
		n = len(p.idIndex)
	}
	p.freeCursor = slot

	e := newEntity[C](slot)
	if err := p.Operators.ChromosomeConstructor(p, e); err != nil {
		return nil, err
	}

	p.idIndex[slot] = e
	e.rank = len(p.rankIndex)
	p.rankIndex = append(p.rankIndex, e)
	return e, nil
}

// Dereference destroys e's phenome and chromosomes, compacts the rank index
// by left-shifting every entity ranked above e, and frees e's id slot. It
// is a no-op if e is already not live.
func Dereference[C Chromosome](p *Population[C], e *Entity[C]) {
	if p == nil || e == nil || e.rank < 0 {
		return
	}
	if e.id < 0 || e.id >= len(p.idIndex) || p.idIndex[e.id] != e {
		return
	}

	if len(e.Phenome) > 0 && p.Operators.DataDestructor != nil {
		for _, ptr := range e.Phenome {
			if ptr != nil {
				p.Operators.DataDestructor(ptr)
			}
		}
	}
	if p.Operators.ChromosomeDestructor != nil {
		p.Operators.ChromosomeDestructor(p, e)
	}

	r := e.rank
	for i := r + 1; i < len(p.rankIndex); i++ {
		p.rankIndex[i-1] = p.rankIndex[i]
		p.rankIndex[i-1].rank = i - 1
	}
	p.rankIndex = p.rankIndex[:len(p.rankIndex)-1]

	p.idIndex[e.id] = nil
	e.rank = -1
}

// Genocide repeatedly dereferences the entity at rank size-1 until size <=
// target. It assumes the population is sorted if the intent is "kill the
// worst".
func Genocide[C Chromosome](p *Population[C], target int) {
	for len(p.rankIndex) > target {
		worst := p.rankIndex[len(p.rankIndex)-1]
		Dereference(p, worst)
	}
}

// ByRank returns the entity at the given rank, or an error if rank is
// outside [0, size).
func ByRank[C Chromosome](p *Population[C], rank int) (*Entity[C], error) {
	if rank < 0 || rank >= len(p.rankIndex) {
		return nil, fatal(NewContractViolationError("rank out of range", ErrRankOutOfRange))
	}
	return p.rankIndex[rank], nil
}

// ByID returns the entity registered under id, if it is live.
func ByID[C Chromosome](p *Population[C], id int) (*Entity[C], bool) {
	if id < 0 || id >= len(p.idIndex) {
		return nil, false
	}
	e := p.idIndex[id]
	return e, e != nil
}

// SortPopulation sorts the rank index by descending fitness (rank 0 =
// best), re-synchronising each entity's cached rank. The sort is stable so
// entities of equal fitness keep their relative order, which matters for
// elitism tie-breaking.
func SortPopulation[C Chromosome](p *Population[C]) {
	sort.SliceStable(p.rankIndex, func(i, j int) bool {
		return p.rankIndex[i].Fitness > p.rankIndex[j].Fitness
	})
	for i, e := range p.rankIndex {
		e.rank = i
	}
}

// BestSolution returns the entity with the highest fitness in the
// population. It does not require the population to be sorted.
func BestSolution[C Chromosome](p *Population[C]) (*Entity[C], error) {
	if p == nil || len(p.rankIndex) == 0 {
		return nil, ErrPopulationEmpty
	}
	best := p.rankIndex[0]
	for _, e := range p.rankIndex[1:] {
		if e.Fitness > best.Fitness {
			best = e
		}
	}
	return best, nil
}

// BestFitness returns the fitness of BestSolution.
func BestFitness[C Chromosome](p *Population[C]) (float64, error) {
	best, err := BestSolution(p)
	if err != nil {
		return 0, err
	}
	return best.Fitness, nil
}

// Transcend removes p from the registry and returns it to the caller,
// still fully usable, just no longer reachable by PopulationId.
func Transcend[C Chromosome](p *Population[C]) *Population[C] {
	if p.registry != nil {
		p.registry.removeByRef(p)
	}
	return p
}

// Resurrect re-inserts a previously-transcended population into its
// registry, assigning it a fresh PopulationId.
func Resurrect[C Chromosome](p *Population[C]) PopulationId {
	if p.registry == nil {
		p.registry = DefaultRegistry()
	}
	return p.registry.register(p)
}

// Extinguish dereferences every entity and removes p from the registry.
// After Extinguish, p must not be used again.
func Extinguish[C Chromosome](p *Population[C]) {
	Genocide(p, 0)
	if p.registry != nil {
		p.registry.removeByRef(p)
	}
}

// Lookup resolves a PopulationId registered in the default registry back to
// its population. The caller must supply C matching the population's
// original chromosome type; a mismatch returns ok=false.
func Lookup[C Chromosome](id PopulationId) (p *Population[C], ok bool) {
	rp, found := DefaultRegistry().lookup(id)
	if !found {
		return nil, false
	}
	p, ok = rp.(*Population[C])
	return p, ok
}
