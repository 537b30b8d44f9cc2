package animals

import "strings"

// Sex del animal.
// @Enum M, F, U
type Sex string

const (
	SexMale    Sex = "M"
	SexFemale  Sex = "F"
	SexUnknown Sex = "U"
)

// ParseSex normaliza a mayúsculas; cualquier otro valor queda tal cual
// (el backend es quien lo rechaza).
func ParseSex(s string) Sex {
	return Sex(strings.ToUpper(strings.TrimSpace(s)))
}

// WelfareHealthThreshold: el backend solo devuelve exámenes con HealthScore <= 6.
const WelfareHealthThreshold = 6.0

// AnimalRecord es una fila de /animals-simple.
// Los nombres JSON son los del backend (PascalCase).
type AnimalRecord struct {
	ID        int     `json:"AnimalID"`
	OrgID     int     `json:"OrgID"`
	Species   string  `json:"Species"` // "" si el backend devuelve null
	Sex       Sex     `json:"Sex"`
	AgeMonths int     `json:"AgeMonths"`
	Microchip *string `json:"Microchip"`
	Notes     *string `json:"Notes"`
}

// SpeciesCountRow es una fila de /animal-stats.
type SpeciesCountRow struct {
	Species *string `json:"Species"`
	Count   int     `json:"Count"`
}

// Label devuelve "Unknown" para especie nula.
func (r SpeciesCountRow) Label() string {
	if r.Species == nil {
		return "Unknown"
	}
	return *r.Species
}

// WelfareFollowUpRow: join examen + organización, HealthScore <= 6.
type WelfareFollowUpRow struct {
	AnimalID    int     `json:"AnimalID"`
	Species     string  `json:"Species"`
	AgeMonths   int     `json:"AgeMonths"`
	Sex         Sex     `json:"Sex"`
	OrgName     string  `json:"OrgName"`
	ExamDate    string  `json:"ExamDate"` // YYYY-MM-DD
	HealthScore float64 `json:"HealthScore"`
	Notes       *string `json:"Notes"`
}

// AdoptionStatRow: adopciones agrupadas por estado + especie.
type AdoptionStatRow struct {
	State         string `json:"State"`
	Species       string `json:"Species"`
	AdoptionCount int    `json:"AdoptionCount"`
}

// Organization, Exam y Adoption solo los usa el backend de referencia.
type Organization struct {
	ID    int
	Name  string
	State string
}

type Exam struct {
	AnimalID    int
	ExamDate    string // YYYY-MM-DD
	HealthScore float64
	Notes       *string
}

type Adoption struct {
	AnimalID int
	OrgID    int
}
