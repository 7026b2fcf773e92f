// Package selection provides example Select1/Select2 iterator
// implementations as explicit stateful objects (Reset/Next), generic over
// any core.Chromosome.
package selection

import (
	"math/rand"

	"github.com/tomhoffer/darwinium/internal/core"
)

// Uniform is a Selector that, once Reset against a population of size n,
// yields n parents drawn uniformly at random (with replacement) from the
// population as it stood at Reset time, then is exhausted.
type Uniform[C core.Chromosome] struct {
	n     int
	drawn int
}

// Reset implements core.Selector.
func (s *Uniform[C]) Reset(p *core.Population[C]) {
	s.n = p.Size()
	s.drawn = 0
}

// Next implements core.Selector.
func (s *Uniform[C]) Next(p *core.Population[C]) (*core.Entity[C], bool) {
	if s.drawn >= s.n || p.Size() == 0 {
		return nil, false
	}
	s.drawn++
	e, err := core.ByRank(p, rand.Intn(min(s.n, p.Size())))
	if err != nil {
		return nil, false
	}
	return e, true
}

// UniformPair is the two-parent analogue of Uniform: it yields n
// independently-drawn pairs, a and b possibly identical.
type UniformPair[C core.Chromosome] struct {
	n     int
	drawn int
}

// Reset implements core.PairSelector.
func (s *UniformPair[C]) Reset(p *core.Population[C]) {
	s.n = p.Size()
	s.drawn = 0
}

// Next implements core.PairSelector.
func (s *UniformPair[C]) Next(p *core.Population[C]) (a, b *core.Entity[C], ok bool) {
	if s.drawn >= s.n || p.Size() == 0 {
		return nil, nil, false
	}
	s.drawn++
	n := min(s.n, p.Size())
	a, err := core.ByRank(p, rand.Intn(n))
	if err != nil {
		return nil, nil, false
	}
	b, err = core.ByRank(p, rand.Intn(n))
	if err != nil {
		return nil, nil, false
	}
	return a, b, true
}

// Tournament is a Selector that runs a k-way tournament among entities
// present at Reset time for each of its n draws, favouring higher fitness.
type Tournament[C core.Chromosome] struct {
	Size int

	n     int
	drawn int
}

// Reset implements core.Selector.
func (t *Tournament[C]) Reset(p *core.Population[C]) {
	t.n = p.Size()
	t.drawn = 0
}

// Next implements core.Selector.
func (t *Tournament[C]) Next(p *core.Population[C]) (*core.Entity[C], bool) {
	if t.drawn >= t.n || p.Size() == 0 {
		return nil, false
	}
	t.drawn++
	return tournamentPick(p, t.n, t.Size), true
}

// TournamentPair is the two-parent analogue of Tournament: each of the two
// parents in a pair is chosen by an independent tournament.
type TournamentPair[C core.Chromosome] struct {
	Size int

	n     int
	drawn int
}

// Reset implements core.PairSelector.
func (t *TournamentPair[C]) Reset(p *core.Population[C]) {
	t.n = p.Size()
	t.drawn = 0
}

// Next implements core.PairSelector.
func (t *TournamentPair[C]) Next(p *core.Population[C]) (a, b *core.Entity[C], ok bool) {
	if t.drawn >= t.n || p.Size() == 0 {
		return nil, nil, false
	}
	t.drawn++
	return tournamentPick(p, t.n, t.Size), tournamentPick(p, t.n, t.Size), true
}

// tournamentPick runs one k-way tournament among the first n ranks of p,
// with size distinct contenders (all n of them when size >= n).
func tournamentPick[C core.Chromosome](p *core.Population[C], n, size int) *core.Entity[C] {
	n = min(n, p.Size())
	size = max(1, min(size, n))
	var winner *core.Entity[C]
	for _, r := range rand.Perm(n)[:size] {
		contender, _ := core.ByRank(p, r)
		if winner == nil || contender.Fitness > winner.Fitness {
			winner = contender
		}
	}
	return winner
}
