// Package migration provides a concrete migration transport: an
// in-process, channel-based implementation of core.Transport addressed by
// island index, plus a tagged wire envelope (entity count, shared
// per-chromosome byte length, fitness values, chromosome bytes) that a
// networked transport could serialise in its place. Demes communicate
// over dedicated channels, one inbox per island.
package migration

import (
	"context"

	"github.com/tomhoffer/darwinium/internal/core"
)

// Envelope is the wire-level shape of one migration transfer, collapsed
// into a single struct since the in-process transport does not need
// framing.
type Envelope struct {
	// NumEntities is tag NUMENTITIES.
	NumEntities int
	// EntityLen is tag ENTITYLEN: the shared byte length per chromosome
	// slot across every entity in the batch.
	EntityLen int
	// Fitness is tag ENTITYFITNESS, one entry per entity.
	Fitness []float64
	// Chromosome is tag ENTITYCHROMOSOME, one []byte per entity per
	// chromosome slot.
	Chromosome [][][]byte
}

// ChannelRing is a directed-ring transport hub connecting numIslands demes
// by in-process channels. Each island's Transport (obtained via Of) sends
// into any other island's inbox and receives only from its own.
type ChannelRing struct {
	inboxes []chan core.MigrationMessage
}

// NewChannelRing constructs a hub with numIslands buffered inboxes, one per
// deme, sized so a single pending migration message per island never
// blocks the sender; buffering of 1 keeps blocking confined to the
// migration barrier itself rather than adding artificial backpressure.
func NewChannelRing(numIslands int) *ChannelRing {
	r := &ChannelRing{inboxes: make([]chan core.MigrationMessage, numIslands)}
	for i := range r.inboxes {
		r.inboxes[i] = make(chan core.MigrationMessage, 1)
	}
	return r
}

// Of returns the Transport view of the ring for the given island index.
func (r *ChannelRing) Of(island int) core.Transport {
	return &ringTransport{ring: r, island: island}
}

type ringTransport struct {
	ring   *ChannelRing
	island int
}

// Send implements core.Transport by writing msg into the destination
// island's inbox.
func (t *ringTransport) Send(ctx context.Context, toIsland int, msg core.MigrationMessage) error {
	select {
	case t.ring.inboxes[toIsland] <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receive implements core.Transport by reading the next message addressed
// to this transport's own island.
func (t *ringTransport) Receive(ctx context.Context) (core.MigrationMessage, error) {
	select {
	case msg := <-t.ring.inboxes[t.island]:
		return msg, nil
	case <-ctx.Done():
		return core.MigrationMessage{}, ctx.Err()
	}
}

// ToEnvelope renders msg in the tagged wire shape above, computing the
// shared EntityLen from the first entity's first chromosome slot. It is
// provided so a networked Transport implementation (out of scope here) has
// a ready-made frame to serialise.
func ToEnvelope(msg core.MigrationMessage) Envelope {
	env := Envelope{
		NumEntities: msg.Count(),
		Fitness:     msg.Fitness,
		Chromosome:  msg.ChromosomeBytes,
	}
	if len(msg.ChromosomeBytes) > 0 && len(msg.ChromosomeBytes[0]) > 0 {
		env.EntityLen = len(msg.ChromosomeBytes[0][0])
	}
	return env
}
