package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/tomhoffer/darwinium/internal/core"
)

// Magic strings and trailer framing a snapshot. The population magic is
// documented elsewhere as "exact length 28" bytes, but the literal string
// below is 27; this codec treats the literal byte sequence as
// authoritative and readers accept both the "001" and "002" variants.
const (
	magicPopulationV2 = "FORMAT: GAUL POPULATION 002"
	magicPopulationV1 = "FORMAT: GAUL POPULATION 001"
	magicEntity       = "FORMAT: GAUL ENTITY 001"
	trailer           = "END\x00"
	versionFieldSize  = 64
)

// VersionInfo is the 64-byte, NUL-padded version+build-date field that
// follows the magic string in every snapshot.
type VersionInfo string

func (v VersionInfo) encode() [versionFieldSize]byte {
	var buf [versionFieldSize]byte
	copy(buf[:], v)
	return buf
}

// encoding/binary (stdlib) rather than a third-party codec is used here
// deliberately: this format is an exact field-by-field byte layout (fixed
// magic strings, a NUL-padded version block, host-order scalars,
// per-entity variable-length blobs) that a schema-driven serialiser would
// fight rather than express — see DESIGN.md.

// WritePopulation writes p in the "002" format (with Island) to w. ids
// supplies the operator-slot ids to embed; callers typically obtain them
// via a BuiltinRegistry.
func WritePopulation[C core.Chromosome](w io.Writer, p *core.Population[C], version VersionInfo, ids OperatorIDs) error {
	if p.Operators.ChromosomeToBytes == nil {
		return core.NewContractViolationError("WritePopulation requires ChromosomeToBytes", core.ErrMissingOperator)
	}

	bw := &byteWriter{w: w}
	bw.writeString(magicPopulationV2)
	vbuf := version.encode()
	bw.writeBytes(vbuf[:])

	bw.writeInt32(int32(p.Size()))
	bw.writeInt32(int32(p.StableSize))
	bw.writeInt32(int32(p.NumChromosomes))
	bw.writeInt32(int32(p.LenChromosomes))

	bw.writeFloat64(p.Rates.Crossover)
	bw.writeFloat64(p.Rates.Mutation)
	bw.writeFloat64(p.Rates.Migration)

	bw.writeInt32(int32(p.Scheme))
	bw.writeInt32(int32(p.Elitism))
	bw.writeInt32(int32(p.Island))

	for _, id := range ids.slots() {
		bw.writeInt32(id)
	}

	for rank := 0; rank < p.Size(); rank++ {
		e, err := core.ByRank(p, rank)
		if err != nil {
			return err
		}
		if err := writeEntityBody(bw, p, e); err != nil {
			return err
		}
	}

	bw.writeString(trailer)
	return bw.err
}

// ReadPopulation reads a population previously written by WritePopulation
// (accepting both the "001" and "002" magic variants; "001" has no Island
// field and Island is left at its zero value) into a freshly-constructed
// Population[C] parametrised by ops. Entities are reconstructed via
// ops.ChromosomeFromBytes. Corruption (bad magic, wrong version, missing
// trailer) is reported as a *core.SnapshotCorruptionError and no partially
// constructed population is returned.
func ReadPopulation[C core.Chromosome](r io.Reader, ops core.Operators[C]) (*core.Population[C], VersionInfo, OperatorIDs, error) {
	br := &byteReader{r: r}

	magic := br.readN(len(magicPopulationV2))
	if br.err != nil {
		return nil, "", OperatorIDs{}, core.NewSnapshotCorruptionError("failed to read magic", br.err)
	}
	hasIsland := true
	switch string(magic) {
	case magicPopulationV2:
		hasIsland = true
	case magicPopulationV1:
		hasIsland = false
	default:
		return nil, "", OperatorIDs{}, core.NewSnapshotCorruptionError(fmt.Sprintf("unrecognised magic %q", magic), nil)
	}

	vbuf := br.readN(versionFieldSize)
	version := VersionInfo(bytes.TrimRight(vbuf, "\x00"))

	size := int(br.readInt32())
	stableSize := int(br.readInt32())
	numChromosomes := int(br.readInt32())
	lenChromosomes := int(br.readInt32())

	crossover := br.readFloat64()
	mutation := br.readFloat64()
	migration := br.readFloat64()

	scheme := core.Scheme(br.readInt32())
	elitism := core.Elitism(br.readInt32())
	island := 0
	if hasIsland {
		island = int(br.readInt32())
	}

	var slots [18]int32
	for i := range slots {
		slots[i] = br.readInt32()
	}
	ids := idsFromSlots(slots)

	if br.err != nil {
		return nil, "", OperatorIDs{}, core.NewSnapshotCorruptionError("failed to read population header", br.err)
	}

	p := core.NewPopulation[C](stableSize, numChromosomes, lenChromosomes)
	p.Operators = ops
	p.Rates = core.Rates{Crossover: crossover, Mutation: mutation, Migration: migration}
	p.Scheme = scheme
	p.Elitism = elitism
	p.Island = island

	for i := 0; i < size; i++ {
		if err := readEntityBodyInto(br, p, ops); err != nil {
			core.Extinguish(p)
			return nil, "", OperatorIDs{}, err
		}
	}

	tail := br.readN(len(trailer))
	if br.err != nil || string(tail) != trailer {
		core.Extinguish(p)
		return nil, "", OperatorIDs{}, core.NewSnapshotCorruptionError("missing or corrupt trailer", br.err)
	}

	return p, version, ids, nil
}

// WriteEntity writes a single entity in the entity-only format
// ("FORMAT: GAUL ENTITY 001"): version block, one entity record, trailer.
func WriteEntity[C core.Chromosome](w io.Writer, p *core.Population[C], e *core.Entity[C], version VersionInfo) error {
	if p.Operators.ChromosomeToBytes == nil {
		return core.NewContractViolationError("WriteEntity requires ChromosomeToBytes", core.ErrMissingOperator)
	}
	bw := &byteWriter{w: w}
	bw.writeString(magicEntity)
	vbuf := version.encode()
	bw.writeBytes(vbuf[:])
	if err := writeEntityBody(bw, p, e); err != nil {
		return err
	}
	bw.writeString(trailer)
	return bw.err
}

// ReadEntity reads a single entity written by WriteEntity into a fresh
// entity obtained from p via GetFreeEntity.
func ReadEntity[C core.Chromosome](r io.Reader, p *core.Population[C]) (*core.Entity[C], VersionInfo, error) {
	br := &byteReader{r: r}
	magic := br.readN(len(magicEntity))
	if br.err != nil || string(magic) != magicEntity {
		return nil, "", core.NewSnapshotCorruptionError("unrecognised entity magic", br.err)
	}
	vbuf := br.readN(versionFieldSize)
	version := VersionInfo(bytes.TrimRight(vbuf, "\x00"))

	if err := readEntityBodyInto(br, p, p.Operators); err != nil {
		return nil, "", err
	}
	e, err := core.ByRank(p, p.Size()-1)
	if err != nil {
		return nil, "", err
	}

	tail := br.readN(len(trailer))
	if br.err != nil || string(tail) != trailer {
		return nil, "", core.NewSnapshotCorruptionError("missing or corrupt entity trailer", br.err)
	}
	return e, version, nil
}

// byteWriter accumulates the first error encountered so call sites don't
// need to check err after every field; the format is a flat sequence of
// fields, so any partial write makes the whole snapshot corrupt anyway.
type byteWriter struct {
	w   io.Writer
	err error
}

func (bw *byteWriter) writeBytes(b []byte) {
	if bw.err != nil {
		return
	}
	_, bw.err = bw.w.Write(b)
}

func (bw *byteWriter) writeString(s string) { bw.writeBytes([]byte(s)) }

func (bw *byteWriter) writeInt32(v int32) {
	if bw.err != nil {
		return
	}
	bw.err = binary.Write(bw.w, binary.NativeEndian, v)
}

func (bw *byteWriter) writeFloat64(v float64) {
	if bw.err != nil {
		return
	}
	bw.err = binary.Write(bw.w, binary.NativeEndian, v)
}

// writeEntityBody writes one entity record: 64-bit fitness, then for each
// chromosome slot a 32-bit length L followed by L bytes from
// ChromosomeToBytes. The per-slot repetition extends the single-blob
// entity shape to populations with NumChromosomes > 1, which the header
// already tells the reader how to expect.
func writeEntityBody[C core.Chromosome](bw *byteWriter, p *core.Population[C], e *core.Entity[C]) error {
	bw.writeFloat64(e.Fitness)
	for c := 0; c < p.NumChromosomes; c++ {
		buf, err := p.Operators.ChromosomeToBytes(p, e, c)
		if err != nil {
			return fmt.Errorf("failed to serialise chromosome %d: %w", c, err)
		}
		bw.writeInt32(int32(len(buf)))
		bw.writeBytes(buf)
	}
	return bw.err
}

// readEntityBodyInto reads one entity record into a freshly-allocated
// entity obtained from p, using ops.ChromosomeFromBytes to reconstruct each
// chromosome slot.
func readEntityBodyInto[C core.Chromosome](br *byteReader, p *core.Population[C], ops core.Operators[C]) error {
	fitness := br.readFloat64()
	e, err := core.GetFreeEntity(p)
	if err != nil {
		return err
	}
	e.Fitness = fitness
	for c := 0; c < p.NumChromosomes; c++ {
		l := br.readInt32()
		buf := br.readN(int(l))
		if br.err != nil {
			return core.NewSnapshotCorruptionError("failed to read chromosome bytes", br.err)
		}
		chrom, err := ops.ChromosomeFromBytes(p, e, c, buf)
		if err != nil {
			return fmt.Errorf("failed to deserialise chromosome %d: %w", c, err)
		}
		e.Chromosomes[c] = chrom
	}
	return nil
}

type byteReader struct {
	r   io.Reader
	err error
}

func (br *byteReader) readN(n int) []byte {
	if br.err != nil {
		return nil
	}
	buf := make([]byte, n)
	_, br.err = io.ReadFull(br.r, buf)
	return buf
}

func (br *byteReader) readInt32() int32 {
	if br.err != nil {
		return 0
	}
	var v int32
	br.err = binary.Read(br.r, binary.NativeEndian, &v)
	return v
}

func (br *byteReader) readFloat64() float64 {
	if br.err != nil {
		return 0
	}
	var v float64
	br.err = binary.Read(br.r, binary.NativeEndian, &v)
	return v
}
