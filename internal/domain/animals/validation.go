package animals

import (
	"fmt"
	"strings"
)

// NewAnimal es el input de creación. Los punteros distinguen "no informado" de 0.
type NewAnimal struct {
	ID        *int
	OrgID     *int
	Species   string
	Sex       Sex
	AgeMonths *int
	Microchip *string
	Notes     *string
}

// ValidationError: falta algún campo requerido. Nunca llega a la red.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Validate solo chequea presencia. Unicidad de id y existencia de orgId
// son del backend.
func (in NewAnimal) Validate() error {
	var missing []string
	if in.ID == nil {
		missing = append(missing, "id")
	}
	if in.OrgID == nil {
		missing = append(missing, "orgId")
	}
	if strings.TrimSpace(in.Species) == "" {
		missing = append(missing, "species")
	}
	if strings.TrimSpace(string(in.Sex)) == "" {
		missing = append(missing, "sex")
	}
	if in.AgeMonths == nil {
		missing = append(missing, "ageMonths")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Record arma el payload de /add-animal. Llamar después de Validate.
func (in NewAnimal) Record() AnimalRecord {
	r := AnimalRecord{
		Species:   strings.TrimSpace(in.Species),
		Sex:       ParseSex(string(in.Sex)),
		Microchip: in.Microchip,
		Notes:     in.Notes,
	}
	if in.ID != nil {
		r.ID = *in.ID
	}
	if in.OrgID != nil {
		r.OrgID = *in.OrgID
	}
	if in.AgeMonths != nil {
		r.AgeMonths = *in.AgeMonths
	}
	return r
}
