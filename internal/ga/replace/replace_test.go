package replace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomhoffer/darwinium/internal/core"
)

type repChromosome struct{ value int }

func (c repChromosome) Replicate() core.Chromosome { return repChromosome{value: c.value} }

func buildPopulation(t *testing.T, values []int) *core.Population[repChromosome] {
	t.Helper()
	p := core.NewPopulation[repChromosome](len(values), 1, 0)
	p.Operators = core.Operators[repChromosome]{
		ChromosomeConstructor: func(p *core.Population[repChromosome], e *core.Entity[repChromosome]) error {
			e.Chromosomes = make([]repChromosome, 1)
			return nil
		},
		ChromosomeDestructor: func(p *core.Population[repChromosome], e *core.Entity[repChromosome]) {},
	}
	for _, v := range values {
		e, err := core.GetFreeEntity(p)
		require.NoError(t, err)
		e.Chromosomes[0] = repChromosome{value: v}
		e.Fitness = float64(v)
	}
	t.Cleanup(func() { core.Extinguish(p) })
	return p
}

func addEntity(t *testing.T, p *core.Population[repChromosome], value int) *core.Entity[repChromosome] {
	t.Helper()
	e, err := core.GetFreeEntity(p)
	require.NoError(t, err)
	e.Chromosomes[0] = repChromosome{value: value}
	e.Fitness = float64(value)
	return e
}

func TestWorst_ReplacesPreExistingWorstWhenNewIsNotWorst(t *testing.T) {
	p := buildPopulation(t, []int{1, 5, 9})
	newE := addEntity(t, p, 3)

	require.NoError(t, Worst(p, newE))

	assert.Equal(t, 3, p.Size())
	best, err := core.BestFitness(p)
	require.NoError(t, err)
	assert.Equal(t, 9.0, best)

	for rank := 0; rank < p.Size(); rank++ {
		e, err := core.ByRank(p, rank)
		require.NoError(t, err)
		assert.NotEqual(t, 1.0, e.Fitness, "the original worst entity must have been replaced")
	}
}

func TestWorst_NoopWhenNewEntityIsAlreadyWorst(t *testing.T) {
	p := buildPopulation(t, []int{1, 5, 9})
	newE := addEntity(t, p, -100)

	require.NoError(t, Worst(p, newE))

	assert.Equal(t, 4, p.Size(), "worst is newE itself, nothing to replace it with")
}

func TestRandom_LeavesNewEntityInPlaceAndDropsSomeoneElse(t *testing.T) {
	p := buildPopulation(t, []int{1, 2, 3})
	newE := addEntity(t, p, 50)

	require.NoError(t, Random(p, newE))
	assert.Equal(t, 3, p.Size())

	found := false
	for rank := 0; rank < p.Size(); rank++ {
		e, err := core.ByRank(p, rank)
		require.NoError(t, err)
		if e == newE {
			found = true
		}
	}
	assert.True(t, found, "newEntity must survive")
}

func TestIfBetterThanWorst_ReplacesWorstWhenNewIsBetter(t *testing.T) {
	p := buildPopulation(t, []int{1, 5, 9})
	newE := addEntity(t, p, 100)

	require.NoError(t, IfBetterThanWorst(p, newE))
	assert.Equal(t, 3, p.Size())

	best, err := core.BestFitness(p)
	require.NoError(t, err)
	assert.Equal(t, 100.0, best)
}

func TestIfBetterThanWorst_DiscardsNewEntityWhenItIsWorst(t *testing.T) {
	p := buildPopulation(t, []int{1, 5, 9})
	newE := addEntity(t, p, -100)

	require.NoError(t, IfBetterThanWorst(p, newE))

	assert.Equal(t, 3, p.Size(), "newE is not better than the worst, so it is discarded")
}
