package chromosome

import (
	"encoding/binary"
	"fmt"

	"github.com/tomhoffer/darwinium/internal/core"
)

// errInvalidChromosome reports a malformed chromosome as a
// core.ContractViolationError, the error taxonomy every operator callback
// reports failures through.
func errInvalidChromosome(message string) error {
	return core.NewContractViolationError(message, nil)
}

// IntRepresentation fills the representation-facing slots of an
// Operators[IntChromosome] (construction, destruction, and the byte/string
// codecs) for a population with one or more IntChromosome slots of the given
// gene length. Seed, Mutate, Crossover, Evaluate, selection and the hooks
// are left for the caller to fill in from internal/ga/{seed,mutation,
// crossover,fitness,selection}.
func IntRepresentation(length int) core.Operators[IntChromosome] {
	return core.Operators[IntChromosome]{
		ChromosomeConstructor: func(p *core.Population[IntChromosome], e *core.Entity[IntChromosome]) error {
			e.Chromosomes = make([]IntChromosome, p.NumChromosomes)
			for i := range e.Chromosomes {
				e.Chromosomes[i] = make(IntChromosome, length)
			}
			return nil
		},
		ChromosomeDestructor: func(p *core.Population[IntChromosome], e *core.Entity[IntChromosome]) {},
		ChromosomeToBytes: func(p *core.Population[IntChromosome], e *core.Entity[IntChromosome], i int) ([]byte, error) {
			gene := e.Chromosomes[i]
			buf := make([]byte, len(gene)*8)
			for j, v := range gene {
				binary.LittleEndian.PutUint64(buf[j*8:], uint64(int64(v)))
			}
			return buf, nil
		},
		ChromosomeFromBytes: func(p *core.Population[IntChromosome], e *core.Entity[IntChromosome], i int, buf []byte) (IntChromosome, error) {
			if len(buf)%8 != 0 {
				return nil, errInvalidChromosome("int chromosome byte length must be a multiple of 8")
			}
			gene := make(IntChromosome, len(buf)/8)
			for j := range gene {
				gene[j] = int(int64(binary.LittleEndian.Uint64(buf[j*8:])))
			}
			return gene, nil
		},
		ChromosomeToString: func(p *core.Population[IntChromosome], e *core.Entity[IntChromosome], i int) string {
			return fmt.Sprintf("%v", e.Chromosomes[i])
		},
	}
}

// CharRepresentation fills the representation-facing slots of an
// Operators[CharChromosome] for fixed-length, printable-ASCII genomes.
func CharRepresentation(length int) core.Operators[CharChromosome] {
	return core.Operators[CharChromosome]{
		ChromosomeConstructor: func(p *core.Population[CharChromosome], e *core.Entity[CharChromosome]) error {
			e.Chromosomes = make([]CharChromosome, p.NumChromosomes)
			for i := range e.Chromosomes {
				e.Chromosomes[i] = make(CharChromosome, length)
			}
			return nil
		},
		ChromosomeDestructor: func(p *core.Population[CharChromosome], e *core.Entity[CharChromosome]) {},
		ChromosomeToBytes: func(p *core.Population[CharChromosome], e *core.Entity[CharChromosome], i int) ([]byte, error) {
			buf := make([]byte, len(e.Chromosomes[i]))
			copy(buf, e.Chromosomes[i])
			return buf, nil
		},
		ChromosomeFromBytes: func(p *core.Population[CharChromosome], e *core.Entity[CharChromosome], i int, buf []byte) (CharChromosome, error) {
			gene := make(CharChromosome, len(buf))
			copy(gene, buf)
			return gene, nil
		},
		ChromosomeToString: func(p *core.Population[CharChromosome], e *core.Entity[CharChromosome], i int) string {
			return e.Chromosomes[i].String()
		},
	}
}

// BitstringRepresentation fills the representation-facing slots of an
// Operators[BitstringChromosome] for fixed-length bitstring genomes, one
// chromosome per slot of the population's NumChromosomes.
func BitstringRepresentation(length int) core.Operators[BitstringChromosome] {
	return core.Operators[BitstringChromosome]{
		ChromosomeConstructor: func(p *core.Population[BitstringChromosome], e *core.Entity[BitstringChromosome]) error {
			e.Chromosomes = make([]BitstringChromosome, p.NumChromosomes)
			for i := range e.Chromosomes {
				e.Chromosomes[i] = make(BitstringChromosome, length)
			}
			return nil
		},
		ChromosomeDestructor: func(p *core.Population[BitstringChromosome], e *core.Entity[BitstringChromosome]) {},
		ChromosomeToBytes: func(p *core.Population[BitstringChromosome], e *core.Entity[BitstringChromosome], i int) ([]byte, error) {
			gene := e.Chromosomes[i]
			buf := make([]byte, len(gene))
			for j, b := range gene {
				if b {
					buf[j] = 1
				}
			}
			return buf, nil
		},
		ChromosomeFromBytes: func(p *core.Population[BitstringChromosome], e *core.Entity[BitstringChromosome], i int, buf []byte) (BitstringChromosome, error) {
			gene := make(BitstringChromosome, len(buf))
			for j, v := range buf {
				gene[j] = v != 0
			}
			return gene, nil
		},
	}
}
