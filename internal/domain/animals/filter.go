package animals

import (
	"strings"
	"sync"
)

// All es el valor de filtro que significa "sin filtro".
const All = "All"

// ApplySpeciesFilter es puro: no modifica xs.
// - All: devuelve xs tal cual (mismos elementos, mismo orden).
// - Otro valor: subsecuencia con Species igual (case-insensitive).
// Animales sin especie quedan fuera de cualquier filtro distinto de All.
func ApplySpeciesFilter(xs []AnimalRecord, species string) []AnimalRecord {
	if species == All {
		return xs
	}
	out := make([]AnimalRecord, 0, len(xs))
	for _, a := range xs {
		if a.Species == "" {
			continue
		}
		if strings.EqualFold(a.Species, species) {
			out = append(out, a)
		}
	}
	return out
}

// SpeciesFilter memoiza ApplySpeciesFilter por (versión de la colección, filtro).
// La versión la provee el ReadModel: cambia solo cuando data se reemplaza.
type SpeciesFilter struct {
	mu      sync.Mutex
	valid   bool
	version uint64
	species string
	out     []AnimalRecord

	computations int
}

func (f *SpeciesFilter) Apply(version uint64, xs []AnimalRecord, species string) []AnimalRecord {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.valid && f.version == version && f.species == species {
		return f.out
	}

	f.out = ApplySpeciesFilter(xs, species)
	f.version = version
	f.species = species
	f.valid = true
	f.computations++
	return f.out
}

// Computations cuenta recálculos reales (útil en tests).
func (f *SpeciesFilter) Computations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.computations
}
