package chromosome

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomhoffer/darwinium/internal/core"
)

func TestIntChromosome_ReplicateIsDeepCopy(t *testing.T) {
	c := IntChromosome{1, 2, 3}
	clone := c.Replicate().(IntChromosome)
	clone[0] = 99

	assert.Equal(t, 1, c[0])
	assert.Equal(t, 99, clone[0])
}

func TestIntChromosome_LocusAndSetLocus(t *testing.T) {
	c := IntChromosome{1, 2, 3}
	assert.Equal(t, 2, c.Locus(1))

	updated := c.SetLocus(1, 42).(IntChromosome)
	assert.Equal(t, 42, updated.Locus(1))
	assert.Equal(t, 2, c.Locus(1), "SetLocus must not mutate the receiver")
}

func TestIntChromosome_Sum(t *testing.T) {
	assert.Equal(t, 6, IntChromosome{1, 2, 3}.Sum())
	assert.Equal(t, 0, IntChromosome{}.Sum())
}

func TestCharChromosome_ReplicateAndString(t *testing.T) {
	c := CharChromosome("abc")
	clone := c.Replicate().(CharChromosome)
	clone[0] = 'z'

	assert.Equal(t, "abc", c.String())
	assert.Equal(t, "zbc", clone.String())
}

func TestBitstringChromosome_ReplicateAndPopCount(t *testing.T) {
	c := BitstringChromosome{true, false, true, true}
	assert.Equal(t, 3, c.PopCount())

	clone := c.Replicate().(BitstringChromosome)
	clone[0] = false
	assert.Equal(t, 3, c.PopCount())
	assert.Equal(t, 2, clone.PopCount())
}

func TestRandomChar_IsPrintableASCII(t *testing.T) {
	for i := 0; i < 100; i++ {
		b := RandomChar()
		assert.GreaterOrEqual(t, b, byte(printableMin))
		assert.LessOrEqual(t, b, byte(printableMax))
	}
}

func TestIntRepresentation_ConstructAndByteRoundTrip(t *testing.T) {
	ops := IntRepresentation(3)
	p := core.NewPopulation[IntChromosome](2, 1, 3)
	p.Operators = ops
	t.Cleanup(func() { core.Extinguish(p) })

	e, err := core.GetFreeEntity(p)
	require.NoError(t, err)
	require.Len(t, e.Chromosomes, 1)
	require.Len(t, e.Chromosomes[0], 3)

	e.Chromosomes[0] = IntChromosome{-5, 0, 12345}
	buf, err := ops.ChromosomeToBytes(p, e, 0)
	require.NoError(t, err)
	assert.Len(t, buf, 24)

	back, err := ops.ChromosomeFromBytes(p, e, 0, buf)
	require.NoError(t, err)
	assert.Equal(t, e.Chromosomes[0], back)

	assert.Contains(t, ops.ChromosomeToString(p, e, 0), "-5")
}

func TestIntRepresentation_FromBytesRejectsBadLength(t *testing.T) {
	ops := IntRepresentation(1)
	_, err := ops.ChromosomeFromBytes(nil, nil, 0, []byte{1, 2, 3})
	var cv *core.ContractViolationError
	assert.ErrorAs(t, err, &cv)
}

func TestCharRepresentation_ConstructAndByteRoundTrip(t *testing.T) {
	ops := CharRepresentation(5)
	p := core.NewPopulation[CharChromosome](2, 1, 5)
	p.Operators = ops
	t.Cleanup(func() { core.Extinguish(p) })

	e, err := core.GetFreeEntity(p)
	require.NoError(t, err)
	require.Len(t, e.Chromosomes[0], 5)

	e.Chromosomes[0] = CharChromosome("hello")
	buf, err := ops.ChromosomeToBytes(p, e, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), buf)

	back, err := ops.ChromosomeFromBytes(p, e, 0, buf)
	require.NoError(t, err)
	assert.Equal(t, e.Chromosomes[0], back)
	assert.Equal(t, "hello", ops.ChromosomeToString(p, e, 0))
}

func TestBitstringRepresentation_ConstructAndByteRoundTrip(t *testing.T) {
	ops := BitstringRepresentation(4)
	p := core.NewPopulation[BitstringChromosome](2, 1, 4)
	p.Operators = ops
	t.Cleanup(func() { core.Extinguish(p) })

	e, err := core.GetFreeEntity(p)
	require.NoError(t, err)
	require.Len(t, e.Chromosomes[0], 4)

	e.Chromosomes[0] = BitstringChromosome{true, false, true, false}
	buf, err := ops.ChromosomeToBytes(p, e, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 1, 0}, buf)

	back, err := ops.ChromosomeFromBytes(p, e, 0, buf)
	require.NoError(t, err)
	assert.Equal(t, e.Chromosomes[0], back)
}
