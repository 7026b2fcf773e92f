package core

import "sync"

// PopulationId is a process-wide, reusable small integer handle for a
// registered population.
type PopulationId uint64

// registeredPopulation is the non-generic facet every Population[C]
// satisfies so the registry can hold populations of heterogeneous
// chromosome types in one map.
type registeredPopulation interface {
	registryID() PopulationId
	setRegistryID(PopulationId)
}

// Registry is a process-wide mapping from PopulationId to live population,
// created lazily on first insertion and torn down when the last population
// is removed. All operations are serialised by a single mutex; lookups are
// never performed outside it.
type Registry struct {
	mu      sync.Mutex
	byID    map[PopulationId]registeredPopulation
	nextID  PopulationId
	freeIDs []PopulationId
}

// defaultRegistry is the process-wide registry instance that NewPopulation
// registers into and that Lookup, Transcend, Resurrect and Extinguish use.
var defaultRegistry = NewRegistry()

// NewRegistry constructs an empty registry. Most callers use
// DefaultRegistry(); an explicit instance is useful for test isolation.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[PopulationId]registeredPopulation)}
}

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry { return defaultRegistry }

// register inserts p and returns a fresh id, reusing an id freed by a
// previous Remove when available.
func (r *Registry) register(p registeredPopulation) PopulationId {
	r.mu.Lock()
	defer r.mu.Unlock()

	var id PopulationId
	if n := len(r.freeIDs); n > 0 {
		id = r.freeIDs[n-1]
		r.freeIDs = r.freeIDs[:n-1]
	} else {
		r.nextID++
		id = r.nextID
	}

	if r.byID == nil {
		r.byID = make(map[PopulationId]registeredPopulation)
	}
	r.byID[id] = p
	p.setRegistryID(id)
	return id
}

// lookup returns the population registered under id, if any.
func (r *Registry) lookup(id PopulationId) (registeredPopulation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	return p, ok
}

// remove deletes id from the registry. When the table becomes empty it is
// torn down (its backing map released) so a long-running process does not
// retain an ever-growing free-id slice across population churn.
func (r *Registry) remove(id PopulationId) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return
	}
	delete(r.byID, id)
	r.freeIDs = append(r.freeIDs, id)
	if len(r.byID) == 0 {
		r.byID = make(map[PopulationId]registeredPopulation)
		r.freeIDs = nil
		r.nextID = 0
	}
}

// removeByRef deletes whichever id p is registered under, if any.
func (r *Registry) removeByRef(p registeredPopulation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, candidate := range r.byID {
		if candidate == p {
			delete(r.byID, id)
			r.freeIDs = append(r.freeIDs, id)
			if len(r.byID) == 0 {
				r.byID = make(map[PopulationId]registeredPopulation)
				r.freeIDs = nil
				r.nextID = 0
			}
			return
		}
	}
}
