package crossover

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomhoffer/darwinium/internal/core"
	"github.com/tomhoffer/darwinium/internal/ga/chromosome"
)

func newEntityPair[C core.Chromosome](t *testing.T, ops core.Operators[C], numChromosomes int) (*core.Population[C], *core.Entity[C], *core.Entity[C], *core.Entity[C], *core.Entity[C]) {
	t.Helper()
	p := core.NewPopulation[C](4, numChromosomes, 0)
	p.Operators = ops
	t.Cleanup(func() { core.Extinguish(p) })

	a, err := core.GetFreeEntity(p)
	require.NoError(t, err)
	b, err := core.GetFreeEntity(p)
	require.NoError(t, err)
	c, err := core.GetFreeEntity(p)
	require.NoError(t, err)
	d, err := core.GetFreeEntity(p)
	require.NoError(t, err)
	return p, a, b, c, d
}

func TestSinglePointInt_ProducesChildrenFromBothParents(t *testing.T) {
	ops := chromosome.IntRepresentation(6)
	p, a, b, c, d := newEntityPair[chromosome.IntChromosome](t, ops, 1)

	a.Chromosomes[0] = chromosome.IntChromosome{1, 1, 1, 1, 1, 1}
	b.Chromosomes[0] = chromosome.IntChromosome{2, 2, 2, 2, 2, 2}

	require.NoError(t, SinglePointInt(context.Background(), p, a, b, c, d))

	for i := 0; i < 6; i++ {
		assert.Contains(t, []int{1, 2}, c.Chromosomes[0][i])
		assert.Contains(t, []int{1, 2}, d.Chromosomes[0][i])
		assert.NotEqual(t, c.Chromosomes[0][i], d.Chromosomes[0][i])
	}
	assert.Equal(t, chromosome.IntChromosome{1, 1, 1, 1, 1, 1}, a.Chromosomes[0], "parents must be untouched")
}

func TestSinglePointInt_RejectsUnequalLength(t *testing.T) {
	ops := chromosome.IntRepresentation(3)
	p, a, b, c, d := newEntityPair[chromosome.IntChromosome](t, ops, 1)

	a.Chromosomes[0] = chromosome.IntChromosome{1, 2, 3}
	b.Chromosomes[0] = chromosome.IntChromosome{1, 2}

	err := SinglePointInt(context.Background(), p, a, b, c, d)
	var cv *core.ContractViolationError
	assert.ErrorAs(t, err, &cv)
}

func TestSinglePointChar_ProducesChildrenFromBothParents(t *testing.T) {
	ops := chromosome.CharRepresentation(5)
	p, a, b, c, d := newEntityPair[chromosome.CharChromosome](t, ops, 1)

	a.Chromosomes[0] = chromosome.CharChromosome("aaaaa")
	b.Chromosomes[0] = chromosome.CharChromosome("bbbbb")

	require.NoError(t, SinglePointChar(context.Background(), p, a, b, c, d))

	for i := 0; i < 5; i++ {
		assert.Contains(t, []byte{'a', 'b'}, c.Chromosomes[0][i])
	}
}

func TestSinglePointBit_ProducesChildrenFromBothParents(t *testing.T) {
	ops := chromosome.BitstringRepresentation(5)
	p, a, b, c, d := newEntityPair[chromosome.BitstringChromosome](t, ops, 1)

	a.Chromosomes[0] = chromosome.BitstringChromosome{true, true, true, true, true}
	b.Chromosomes[0] = chromosome.BitstringChromosome{false, false, false, false, false}

	require.NoError(t, SinglePointBit(context.Background(), p, a, b, c, d))

	for i := 0; i < 5; i++ {
		assert.NotEqual(t, c.Chromosomes[0][i], d.Chromosomes[0][i])
	}
}

func TestSinglePointInt_SingleGeneCopiesWithoutSplit(t *testing.T) {
	ops := chromosome.IntRepresentation(1)
	p, a, b, c, d := newEntityPair[chromosome.IntChromosome](t, ops, 1)

	a.Chromosomes[0] = chromosome.IntChromosome{7}
	b.Chromosomes[0] = chromosome.IntChromosome{9}

	require.NoError(t, SinglePointInt(context.Background(), p, a, b, c, d))
	assert.Equal(t, chromosome.IntChromosome{7}, c.Chromosomes[0])
	assert.Equal(t, chromosome.IntChromosome{9}, d.Chromosomes[0])
}
