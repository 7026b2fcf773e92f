package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomhoffer/darwinium/internal/core"
	"github.com/tomhoffer/darwinium/internal/ga/migration"
)

type archChromosome struct{ value int }

func (c archChromosome) Replicate() core.Chromosome { return archChromosome{value: c.value} }

func archOperators() core.Operators[archChromosome] {
	return core.Operators[archChromosome]{
		ChromosomeConstructor: func(p *core.Population[archChromosome], e *core.Entity[archChromosome]) error {
			e.Chromosomes = make([]archChromosome, p.NumChromosomes)
			return nil
		},
		ChromosomeDestructor: func(p *core.Population[archChromosome], e *core.Entity[archChromosome]) {},
		Evaluate: func(_ context.Context, _ *core.Population[archChromosome], e *core.Entity[archChromosome]) error {
			e.Fitness = float64(e.Chromosomes[0].value)
			return nil
		},
		ChromosomeToBytes: func(_ *core.Population[archChromosome], e *core.Entity[archChromosome], i int) ([]byte, error) {
			return []byte{byte(e.Chromosomes[i].value)}, nil
		},
		ChromosomeFromBytes: func(_ *core.Population[archChromosome], _ *core.Entity[archChromosome], _ int, buf []byte) (archChromosome, error) {
			return archChromosome{value: int(buf[0])}, nil
		},
		Select1: &constSelector{},
		Select2: &constPairSelector{},
		Crossover: func(_ context.Context, p *core.Population[archChromosome], a, b, c, d *core.Entity[archChromosome]) error {
			c.Chromosomes = []archChromosome{{value: a.Chromosomes[0].value}}
			d.Chromosomes = []archChromosome{{value: b.Chromosomes[0].value}}
			return nil
		},
		Mutate: func(_ context.Context, _ *core.Population[archChromosome], src, dest *core.Entity[archChromosome]) error {
			dest.Chromosomes = []archChromosome{{value: src.Chromosomes[0].value}}
			return nil
		},
	}
}

// constSelector/constPairSelector never yield anything: these archipelago
// tests exercise migration, not within-deme crossover/mutation, so rates are
// kept at zero and these selectors simply need to satisfy the interfaces.
type constSelector struct{ used bool }

func (s *constSelector) Reset(*core.Population[archChromosome]) { s.used = false }
func (s *constSelector) Next(*core.Population[archChromosome]) (*core.Entity[archChromosome], bool) {
	return nil, false
}

type constPairSelector struct{}

func (s *constPairSelector) Reset(*core.Population[archChromosome]) {}
func (s *constPairSelector) Next(*core.Population[archChromosome]) (a, b *core.Entity[archChromosome], ok bool) {
	return nil, nil, false
}

func buildDeme(t *testing.T, island int, values []int) *core.Population[archChromosome] {
	t.Helper()
	p := core.NewPopulation[archChromosome](len(values), 1, 1)
	p.Operators = archOperators()
	p.Island = island
	p.Rates = core.Rates{Crossover: 0, Mutation: 0, Migration: 0.5}
	for _, v := range values {
		e, err := core.GetFreeEntity(p)
		require.NoError(t, err)
		e.Chromosomes[0] = archChromosome{value: v}
		require.NoError(t, p.Operators.Evaluate(context.Background(), p, e))
	}
	t.Cleanup(func() { core.Extinguish(p) })
	return p
}

func TestArchipelagoDriver_MigratesAroundRing(t *testing.T) {
	demeA := buildDeme(t, 0, []int{10, 9})
	demeB := buildDeme(t, 1, []int{1, 2})

	ring := migration.NewChannelRing(2)
	transports := []core.Transport{ring.Of(0), ring.Of(1)}

	driver := &core.ArchipelagoDriver[archChromosome]{ShowProgress: false}
	result, err := driver.Run(context.Background(), []*core.Population[archChromosome]{demeA, demeB}, transports, 1)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Completed)

	// demeA's top-ranked emigrant (fitness 10) should have migrated into
	// demeB, whose original best was only fitness 2.
	best, err := core.BestFitness(demeB)
	require.NoError(t, err)
	assert.Equal(t, 10.0, best)

	assert.Equal(t, 2, demeA.Size())
	assert.Equal(t, 2, demeB.Size())
}

func TestArchipelagoDriver_RequiresOneTransportPerDeme(t *testing.T) {
	prevHook := core.FatalErrorHook
	core.FatalErrorHook = func(error) {}
	t.Cleanup(func() { core.FatalErrorHook = prevHook })

	demeA := buildDeme(t, 0, []int{1})

	ring := migration.NewChannelRing(1)
	driver := &core.ArchipelagoDriver[archChromosome]{ShowProgress: false}
	_, err := driver.Run(context.Background(), []*core.Population[archChromosome]{demeA}, nil, 1)

	var cv *core.ContractViolationError
	assert.ErrorAs(t, err, &cv)
	_ = ring
}
