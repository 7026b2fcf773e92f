package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testChromosome is a minimal Chromosome used across internal/core tests.
type testChromosome struct{ value int }

func (c testChromosome) Replicate() Chromosome { return testChromosome{value: c.value} }

func testOperators() Operators[testChromosome] {
	return Operators[testChromosome]{
		ChromosomeConstructor: func(p *Population[testChromosome], e *Entity[testChromosome]) error {
			e.Chromosomes = make([]testChromosome, p.NumChromosomes)
			return nil
		},
		ChromosomeDestructor: func(p *Population[testChromosome], e *Entity[testChromosome]) {},
	}
}

func newTestPopulation(t *testing.T, stableSize int) *Population[testChromosome] {
	t.Helper()
	p := NewPopulation[testChromosome](stableSize, 1, 1)
	p.Operators = testOperators()
	t.Cleanup(func() { Extinguish(p) })
	return p
}

func TestNewPopulation_Defaults(t *testing.T) {
	p := newTestPopulation(t, 10)

	assert.Equal(t, 10, p.StableSize)
	assert.Equal(t, 40, p.MaxSize())
	assert.Equal(t, 0, p.Size())
	assert.Equal(t, Darwin, p.Scheme)
	assert.Equal(t, ElitismUnknownDefault, p.Elitism)
	assert.Equal(t, -1, p.Island)
	assert.Equal(t, Rates{Crossover: 1.0, Mutation: 1.0, Migration: 1.0}, p.Rates)
	assert.NotZero(t, p.ID())
}

func TestGetFreeEntity_RankIDInvariant(t *testing.T) {
	p := newTestPopulation(t, 10)

	var entities []*Entity[testChromosome]
	for i := 0; i < 5; i++ {
		e, err := GetFreeEntity(p)
		require.NoError(t, err)
		entities = append(entities, e)
	}

	for rank, e := range entities {
		assert.Equal(t, rank, e.Rank())
		got, err := ByRank(p, rank)
		require.NoError(t, err)
		assert.Same(t, e, got)
	}
	assert.Equal(t, 5, p.Size())
}

func TestDereference_CompactsRankIndex(t *testing.T) {
	p := newTestPopulation(t, 10)

	var entities []*Entity[testChromosome]
	for i := 0; i < 4; i++ {
		e, err := GetFreeEntity(p)
		require.NoError(t, err)
		entities = append(entities, e)
	}

	Dereference(p, entities[1])

	assert.Equal(t, -1, entities[1].Rank(), "dereferenced entity must report rank -1")
	assert.Equal(t, 3, p.Size())
	assert.Equal(t, 0, entities[0].Rank())
	assert.Equal(t, 1, entities[2].Rank(), "entities ranked above the removed one shift down by one")
	assert.Equal(t, 2, entities[3].Rank())

	// Dereferencing an already-dead entity is a no-op.
	Dereference(p, entities[1])
	assert.Equal(t, 3, p.Size())
}

func TestGetFreeEntity_ReusesIDsAfterDereference(t *testing.T) {
	p := newTestPopulation(t, 10)

	e1, err := GetFreeEntity(p)
	require.NoError(t, err)
	id1 := e1.ID()
	Dereference(p, e1)

	e2, err := GetFreeEntity(p)
	require.NoError(t, err)
	assert.Equal(t, id1, e2.ID(), "a freed id slot should be reused")
}

func TestGetFreeEntity_GrowsBeyondMaxSize(t *testing.T) {
	p := newTestPopulation(t, 2) // maxSize starts at 8

	var last *Entity[testChromosome]
	for i := 0; i < 20; i++ {
		e, err := GetFreeEntity(p)
		require.NoError(t, err)
		last = e
	}
	assert.Equal(t, 20, p.Size())
	assert.GreaterOrEqual(t, p.MaxSize(), 20)
	assert.NotNil(t, last)
}

func TestSortPopulation_DescendingFitnessStable(t *testing.T) {
	p := newTestPopulation(t, 10)

	fitnesses := []float64{3, 1, 3, 2}
	var entities []*Entity[testChromosome]
	for _, f := range fitnesses {
		e, err := GetFreeEntity(p)
		require.NoError(t, err)
		e.Fitness = f
		entities = append(entities, e)
	}

	SortPopulation(p)

	got := make([]float64, p.Size())
	for i := 0; i < p.Size(); i++ {
		e, err := ByRank(p, i)
		require.NoError(t, err)
		got[i] = e.Fitness
		assert.Equal(t, i, e.Rank())
	}
	assert.Equal(t, []float64{3, 3, 2, 1}, got)
	// Stability: the two fitness-3 entities keep their original relative order.
	first3, err := ByRank(p, 0)
	require.NoError(t, err)
	assert.Same(t, entities[0], first3)
}

func TestGenocide_KillsWorstDownToTarget(t *testing.T) {
	p := newTestPopulation(t, 10)
	for _, f := range []float64{5, 1, 4, 2, 3} {
		e, err := GetFreeEntity(p)
		require.NoError(t, err)
		e.Fitness = f
	}
	SortPopulation(p)

	Genocide(p, 2)

	assert.Equal(t, 2, p.Size())
	best, err := BestFitness(p)
	require.NoError(t, err)
	assert.Equal(t, 5.0, best)
}

func TestCloneEmpty_CopiesConfigNotEntities(t *testing.T) {
	p := newTestPopulation(t, 5)
	p.Scheme = LamarckAll
	p.Elitism = ElitismOneParentSurvives
	p.Island = 3
	_, err := GetFreeEntity(p)
	require.NoError(t, err)

	clone := CloneEmpty(p)
	t.Cleanup(func() { Extinguish(clone) })

	assert.Equal(t, 0, clone.Size())
	assert.Equal(t, p.Scheme, clone.Scheme)
	assert.Equal(t, p.Elitism, clone.Elitism)
	assert.Equal(t, p.Island, clone.Island)
	assert.NotEqual(t, p.ID(), clone.ID())
}

func TestClone_PreservesRankOrderAndValues(t *testing.T) {
	p := newTestPopulation(t, 5)
	for i, f := range []float64{9, 7, 8} {
		e, err := GetFreeEntity(p)
		require.NoError(t, err)
		e.Fitness = f
		e.Chromosomes[0] = testChromosome{value: i}
	}

	clone, err := Clone(p)
	require.NoError(t, err)
	t.Cleanup(func() { Extinguish(clone) })

	require.Equal(t, p.Size(), clone.Size())
	for rank := 0; rank < p.Size(); rank++ {
		orig, err := ByRank(p, rank)
		require.NoError(t, err)
		copied, err := ByRank(clone, rank)
		require.NoError(t, err)
		assert.Equal(t, orig.Fitness, copied.Fitness)
		assert.Equal(t, orig.Chromosomes[0].value, copied.Chromosomes[0].value)
		assert.NotSame(t, orig, copied)
	}
}

func TestBestSolution_EmptyPopulation(t *testing.T) {
	p := newTestPopulation(t, 5)
	_, err := BestSolution(p)
	assert.ErrorIs(t, err, ErrPopulationEmpty)
}

func TestTranscendResurrect(t *testing.T) {
	p := newTestPopulation(t, 5)
	id := p.ID()

	Transcend(p)
	_, ok := Lookup[testChromosome](id)
	assert.False(t, ok, "transcended population must no longer resolve via Lookup")

	newID := Resurrect(p)
	assert.NotEqual(t, PopulationId(0), newID)
	got, ok := Lookup[testChromosome](newID)
	require.True(t, ok)
	assert.Same(t, p, got)
}

func TestByID_UnknownOrDeadReturnsFalse(t *testing.T) {
	p := newTestPopulation(t, 5)
	e, err := GetFreeEntity(p)
	require.NoError(t, err)
	id := e.ID()

	got, ok := ByID(p, id)
	require.True(t, ok)
	assert.Same(t, e, got)

	Dereference(p, e)
	_, ok = ByID(p, id)
	assert.False(t, ok)

	_, ok = ByID(p, 999999)
	assert.False(t, ok)
}
