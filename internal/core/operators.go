package core

import "context"

// Operators is the fixed set of callback slots a population is
// parametrised by. Omitting a slot required by an operation that needs it
// is a programmer error reported as ErrMissingOperator wrapped in a
// ContractViolationError.
type Operators[C Chromosome] struct {
	// ChromosomeConstructor allocates and attaches a fresh chromosome set to
	// the entity. Invoked by GetFreeEntity. Always required.
	ChromosomeConstructor func(p *Population[C], e *Entity[C]) error

	// ChromosomeDestructor releases the attached chromosomes. Invoked on
	// Dereference. Always required.
	ChromosomeDestructor func(p *Population[C], e *Entity[C])

	// ChromosomeReplicate deep-copies chromosome i from src into dest.
	// Optional: when nil, Chromosome.Replicate() is used directly.
	ChromosomeReplicate func(p *Population[C], src, dest *Entity[C], i int) error

	// ChromosomeToBytes writes an opaque byte representation of chromosome i
	// of e. Required for migration and snapshotting.
	ChromosomeToBytes func(p *Population[C], e *Entity[C], i int) ([]byte, error)

	// ChromosomeFromBytes reconstructs chromosome i of e from buf. Required
	// for migration and snapshotting.
	ChromosomeFromBytes func(p *Population[C], e *Entity[C], i int, buf []byte) (C, error)

	// ChromosomeToString returns a printable form of chromosome i. Optional.
	ChromosomeToString func(p *Population[C], e *Entity[C], i int) string

	// Evaluate computes and stores e.Fitness. Always required.
	Evaluate func(ctx context.Context, p *Population[C], e *Entity[C]) error

	// Seed fills e's chromosomes with initial content. Optional; the drivers
	// never call it, it is for callers that seed a population themselves.
	Seed func(p *Population[C], e *Entity[C]) (bool, error)

	// Adapt returns an adapted clone of e (a local-search step). Required by
	// Lamarckian/Baldwinian schemes.
	Adapt func(ctx context.Context, p *Population[C], e *Entity[C]) (*Entity[C], error)

	// Select1 picks a single parent; the bool is false once the iterator for
	// the current phase is exhausted. Always required.
	Select1 Selector[C]

	// Select2 picks a pair of parents; the bool is false once exhausted.
	// Always required for crossover.
	Select2 PairSelector[C]

	// Mutate produces a mutated copy of src into dest. Always required.
	Mutate func(ctx context.Context, p *Population[C], src, dest *Entity[C]) error

	// Crossover produces two children c, d from parents a, b. Always
	// required.
	Crossover func(ctx context.Context, p *Population[C], a, b, c, d *Entity[C]) error

	// Replace inserts newEntity into p according to a user policy. Required
	// when the steady-state driver is used without the default policy.
	Replace func(p *Population[C], newEntity *Entity[C]) error

	// GenerationHook is invoked once per generation; returning false
	// requests the generational/archipelago driver to stop.
	GenerationHook func(generation int, p *Population[C]) bool

	// IterationHook is invoked once per steady-state iteration; returning
	// false requests the steady-state driver to stop.
	IterationHook func(iteration int, e *Entity[C]) bool

	// DataDestructor releases a phenome pointer. Required when phenomes are
	// used.
	DataDestructor func(ptr any)

	// DataRefIncrementor retains a phenome pointer on copy. Required when
	// phenomes are used.
	DataRefIncrementor func(ptr any)
}

// Selector is a stateful iterator over a population tied to one generation
// or phase. The driver resets it (via Reset) at the start of each phase
// that consumes it; the iteration state is explicit here rather than
// hidden inside a package-level variable.
type Selector[C Chromosome] interface {
	// Reset is called once at the start of a phase, before any Next calls.
	Reset(p *Population[C])
	// Next returns the next selected parent, or ok=false when exhausted.
	Next(p *Population[C]) (entity *Entity[C], ok bool)
}

// PairSelector is the two-parent analogue of Selector, used by the
// crossover phase.
type PairSelector[C Chromosome] interface {
	Reset(p *Population[C])
	Next(p *Population[C]) (a, b *Entity[C], ok bool)
}
