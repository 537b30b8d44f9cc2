package animals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestNewAnimal_Validate_ReportsEveryMissingField(t *testing.T) {
	err := NewAnimal{Species: " "}.Validate()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"id", "orgId", "species", "sex", "ageMonths"}, verr.Missing)
}

func TestNewAnimal_Validate_ZeroAgeIsPresent(t *testing.T) {
	in := NewAnimal{ID: intp(7), OrgID: intp(1), Species: "Cat", Sex: "f", AgeMonths: intp(0)}
	require.NoError(t, in.Validate())

	rec := in.Record()
	assert.Equal(t, AnimalRecord{ID: 7, OrgID: 1, Species: "Cat", Sex: SexFemale, AgeMonths: 0}, rec)
}

func TestSpeciesCountRow_Label(t *testing.T) {
	dog := "Dog"
	assert.Equal(t, "Dog", SpeciesCountRow{Species: &dog, Count: 1}.Label())
	assert.Equal(t, "Unknown", SpeciesCountRow{Count: 2}.Label())
}
