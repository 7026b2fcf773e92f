package core

import "context"

// MigrationMessage is a batch of entities migrating together in one
// transfer. All chromosome sets for a given slot share the same encoded
// byte length within one batch.
type MigrationMessage struct {
	// FromIsland is the sending deme's Island label.
	FromIsland int
	// Fitness holds one entry per migrating entity, tag ENTITYFITNESS.
	Fitness []float64
	// ChromosomeBytes[i][c] is the byte encoding of chromosome slot c of the
	// i'th migrating entity (tag ENTITYCHROMOSOME), produced by
	// Operators.ChromosomeToBytes.
	ChromosomeBytes [][][]byte
}

// Count returns the number of entities carried by the message (tag
// NUMENTITIES).
func (m MigrationMessage) Count() int { return len(m.Fitness) }

// Transport is the opaque send/receive primitive archipelago migration
// rounds use to move entities between demes. Migration moves encoded
// bytes, not live pointers, so any implementation (in-process or
// networked) can serve it. The engine only requires this interface;
// concrete wire encodings and transports live in internal/ga/migration.
type Transport interface {
	// Send transmits msg to the deme identified by toIsland.
	Send(ctx context.Context, toIsland int, msg MigrationMessage) error
	// Receive blocks until a message addressed to this transport's own
	// island arrives.
	Receive(ctx context.Context) (MigrationMessage, error)
}

// emigrate serialises the given entities (already selected by the caller)
// into a MigrationMessage using p's ChromosomeToBytes operator.
func emigrate[C Chromosome](p *Population[C], entities []*Entity[C]) (MigrationMessage, error) {
	msg := MigrationMessage{
		FromIsland:      p.Island,
		Fitness:         make([]float64, len(entities)),
		ChromosomeBytes: make([][][]byte, len(entities)),
	}
	for i, e := range entities {
		msg.Fitness[i] = e.Fitness
		msg.ChromosomeBytes[i] = make([][]byte, p.NumChromosomes)
		for c := 0; c < p.NumChromosomes; c++ {
			buf, err := p.Operators.ChromosomeToBytes(p, e, c)
			if err != nil {
				return MigrationMessage{}, NewTransportError("failed to serialise emigrant", err)
			}
			msg.ChromosomeBytes[i][c] = buf
		}
	}
	return msg, nil
}

// immigrate reconstructs entities described by msg into p, growing p's pool
// as needed, and returns the newly-inserted entities.
func immigrate[C Chromosome](p *Population[C], msg MigrationMessage) ([]*Entity[C], error) {
	immigrants := make([]*Entity[C], 0, msg.Count())
	for i := 0; i < msg.Count(); i++ {
		e, err := GetFreeEntity(p)
		if err != nil {
			return immigrants, err
		}
		e.Fitness = msg.Fitness[i]
		for c := 0; c < p.NumChromosomes && c < len(msg.ChromosomeBytes[i]); c++ {
			chrom, err := p.Operators.ChromosomeFromBytes(p, e, c, msg.ChromosomeBytes[i][c])
			if err != nil {
				return immigrants, NewTransportError("failed to deserialise immigrant", err)
			}
			e.Chromosomes[c] = chrom
		}
		immigrants = append(immigrants, e)
	}
	return immigrants, nil
}
