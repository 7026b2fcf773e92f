package core

// MinFitness is the sentinel fitness value meaning "never evaluated".
const MinFitness = -1.0e30

// Entity is a candidate solution: a fitness scalar, a heterogeneous genome
// opaque to the engine, and an optional phenome (per-chromosome decoded
// data). The engine manipulates Chromosomes and Phenome only through the
// operator callbacks of Operators[C]; it never inspects their contents
// directly.
type Entity[C Chromosome] struct {
	// id is this entity's stable identifier within its population's id
	// index. It is reused after Dereference.
	id int

	// rank caches this entity's position in the population's rank index.
	// -1 means the entity is not currently present in any rank index.
	rank int

	// Fitness is the quality assigned by Operators.Evaluate. MinFitness
	// means the entity has not yet been scored.
	Fitness float64

	// Chromosomes holds one opaque value per chromosome slot declared by the
	// owning population's NumChromosomes.
	Chromosomes []C

	// Phenome holds cached decoded data, one optional entry per chromosome.
	// Invariant: len(Phenome) == 0 || len(Phenome) == len(Chromosomes)
	Phenome []any

	// lineage records, for ElitismPurebredOnly, the ids of the two parents
	// this entity was produced from by crossover; hasLineage reports whether
	// they were recorded. It is false for seeded, mutated or migrated
	// entities, and for crossover children under other elitism modes.
	lineage [2]int
	hasLineage bool
}

// ID returns the entity's stable identifier. It is only meaningful while
// the entity is live; it may be reused by a different entity after
// Dereference.
func (e *Entity[C]) ID() int {
	if e == nil {
		return -1
	}
	return e.id
}

// Rank returns the entity's current position in its population's rank
// index, or -1 if the entity is not present in any rank index.
func (e *Entity[C]) Rank() int {
	if e == nil {
		return -1
	}
	return e.rank
}

// newEntity constructs an entity with no chromosomes and sentinel fitness.
// Chromosome attachment is the caller's responsibility via
// Operators.ChromosomeConstructor.
func newEntity[C Chromosome](id int) *Entity[C] {
	return &Entity[C]{id: id, rank: -1, Fitness: MinFitness}
}

// replicateInto deep-copies src's chromosomes and phenome retain-state into
// dest using the population's chromosome-replicate and phenome-retain
// hooks. dest keeps its own id.
func replicateInto[C Chromosome](p *Population[C], src, dest *Entity[C]) error {
	if p.Operators.ChromosomeReplicate == nil {
		dest.Chromosomes = make([]C, len(src.Chromosomes))
		for i, c := range src.Chromosomes {
			dest.Chromosomes[i] = c.Replicate().(C)
		}
	} else {
		dest.Chromosomes = make([]C, len(src.Chromosomes))
		for i := range src.Chromosomes {
			if err := p.Operators.ChromosomeReplicate(p, src, dest, i); err != nil {
				return err
			}
		}
	}

	dest.Fitness = src.Fitness
	dest.lineage = src.lineage
	dest.hasLineage = src.hasLineage

	if len(src.Phenome) == 0 {
		dest.Phenome = nil
		return nil
	}
	dest.Phenome = make([]any, len(src.Phenome))
	copy(dest.Phenome, src.Phenome)
	if p.Operators.DataRefIncrementor != nil {
		for _, ptr := range dest.Phenome {
			if ptr != nil {
				p.Operators.DataRefIncrementor(ptr)
			}
		}
	}
	return nil
}
