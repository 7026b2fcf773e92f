// Package snapshot implements the binary population/entity persistence
// format: a writer and reader for a fixed-layout binary snapshot that
// round-trips a population (or a single entity) byte for byte.
package snapshot

import "sync"

// OperatorIDs holds one stable small-integer id per operator-contract
// slot, in the same field order Operators[C] declares them, resolved
// through a registered name<->id lookup table rather than a raw function
// pointer. OperatorIDs is the serialised form of that table for one
// population.
type OperatorIDs struct {
	ChromosomeConstructor int32
	ChromosomeDestructor  int32
	ChromosomeReplicate   int32
	ChromosomeToBytes     int32
	ChromosomeFromBytes   int32
	ChromosomeToString    int32
	Evaluate              int32
	Seed                  int32
	Adapt                 int32
	Select1               int32
	Select2               int32
	Mutate                int32
	Crossover             int32
	Replace               int32
	GenerationHook        int32
	IterationHook         int32
	DataDestructor        int32
	DataRefIncrementor    int32
}

// slots returns the 18 ids in wire order.
func (ids OperatorIDs) slots() [18]int32 {
	return [18]int32{
		ids.ChromosomeConstructor, ids.ChromosomeDestructor, ids.ChromosomeReplicate,
		ids.ChromosomeToBytes, ids.ChromosomeFromBytes, ids.ChromosomeToString,
		ids.Evaluate, ids.Seed, ids.Adapt,
		ids.Select1, ids.Select2, ids.Mutate,
		ids.Crossover, ids.Replace, ids.GenerationHook,
		ids.IterationHook, ids.DataDestructor, ids.DataRefIncrementor,
	}
}

// idsFromSlots is the inverse of slots.
func idsFromSlots(s [18]int32) OperatorIDs {
	return OperatorIDs{
		ChromosomeConstructor: s[0], ChromosomeDestructor: s[1], ChromosomeReplicate: s[2],
		ChromosomeToBytes: s[3], ChromosomeFromBytes: s[4], ChromosomeToString: s[5],
		Evaluate: s[6], Seed: s[7], Adapt: s[8],
		Select1: s[9], Select2: s[10], Mutate: s[11],
		Crossover: s[12], Replace: s[13], GenerationHook: s[14],
		IterationHook: s[15], DataDestructor: s[16], DataRefIncrementor: s[17],
	}
}

// Reserved ids: 0 means null (no operator bound), -1 means
// unknown/external (an id this registry cannot resolve a name for).
const (
	IDNull    int32 = 0
	IDUnknown int32 = -1
)

// BuiltinRegistry is a keyed id<->name table for built-in operators. It
// records names only; binding a resolved name back to a callable
// Operators field is the caller's responsibility; id 0 and negative ids
// never need a name.
type BuiltinRegistry struct {
	mu        sync.Mutex
	nameByID  map[int32]string
	idsByName map[string]int32
}

// NewBuiltinRegistry constructs an empty registry.
func NewBuiltinRegistry() *BuiltinRegistry {
	return &BuiltinRegistry{nameByID: make(map[int32]string), idsByName: make(map[string]int32)}
}

// Register associates a stable id with a human-readable operator name
// (e.g. "int-chromosome/single-point-crossover"). id must be positive;
// registering id 0 or a negative id panics, as does re-registering an id or
// name already in use with a different counterpart.
func (r *BuiltinRegistry) Register(name string, id int32) {
	if id <= 0 {
		panic("snapshot: builtin operator id must be positive")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.nameByID[id]; ok && existing != name {
		panic("snapshot: builtin operator id " + name + " collides with " + existing)
	}
	if existingID, ok := r.idsByName[name]; ok && existingID != id {
		panic("snapshot: builtin operator name " + name + " is already registered under another id")
	}
	r.nameByID[id] = name
	r.idsByName[name] = id
}

// NameFor returns the registered name for id, or "" and false for
// IDNull/IDUnknown/unregistered ids.
func (r *BuiltinRegistry) NameFor(id int32) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name, ok := r.nameByID[id]
	return name, ok
}

// IDFor returns the registered id for name, or IDUnknown if name was never
// registered.
func (r *BuiltinRegistry) IDFor(name string) int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.idsByName[name]; ok {
		return id
	}
	return IDUnknown
}

// defaultRegistry is the process-wide builtin registry used when callers
// do not construct their own.
var defaultRegistry = NewBuiltinRegistry()

// DefaultRegistry returns the process-wide BuiltinRegistry.
func DefaultRegistry() *BuiltinRegistry { return defaultRegistry }

// RegisterBuiltinOperator registers name/id in the default registry.
func RegisterBuiltinOperator(name string, id int32) {
	defaultRegistry.Register(name, id)
}
