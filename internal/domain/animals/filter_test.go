package animals

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAnimals() []AnimalRecord {
	return []AnimalRecord{
		{ID: 1, OrgID: 1, Species: "Dog", Sex: SexMale, AgeMonths: 12},
		{ID: 2, OrgID: 1, Species: "cat", Sex: SexFemale, AgeMonths: 3},
		{ID: 3, OrgID: 2, Species: "", Sex: SexUnknown, AgeMonths: 40},
		{ID: 4, OrgID: 2, Species: "DOG", Sex: SexFemale, AgeMonths: 7},
		{ID: 5, OrgID: 2, Species: "Pit Bull", Sex: SexMale, AgeMonths: 20},
	}
}

func TestApplySpeciesFilter_AllIsIdentity(t *testing.T) {
	inputs := [][]AnimalRecord{nil, {}, sampleAnimals()}
	for _, xs := range inputs {
		got := ApplySpeciesFilter(xs, All)
		assert.Equal(t, xs, got)
		if len(xs) > 0 {
			// mismo backing array: no se copió ni reordenó
			assert.Same(t, &xs[0], &got[0])
		}
	}
}

func TestApplySpeciesFilter_CaseInsensitiveMatch(t *testing.T) {
	xs := sampleAnimals()

	for _, f := range []string{"Dog", "dog", "CAT", "pit bull", "Bird"} {
		got := ApplySpeciesFilter(xs, f)

		kept := map[int]bool{}
		for _, a := range got {
			kept[a.ID] = true
			assert.NotEmpty(t, a.Species)
			assert.True(t, strings.EqualFold(a.Species, f), "kept %q for filter %q", a.Species, f)
		}
		for _, a := range xs {
			if kept[a.ID] {
				continue
			}
			assert.True(t, a.Species == "" || !strings.EqualFold(a.Species, f), "dropped %q for filter %q", a.Species, f)
		}
	}
}

func TestApplySpeciesFilter_PreservesOrderAndInput(t *testing.T) {
	xs := sampleAnimals()
	before := append([]AnimalRecord(nil), xs...)

	got := ApplySpeciesFilter(xs, "dog")

	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 4, got[1].ID)
	assert.Equal(t, before, xs, "input must not be mutated")
}

func TestApplySpeciesFilter_NullSpeciesExcluded(t *testing.T) {
	xs := []AnimalRecord{{ID: 9, Species: ""}}
	assert.Empty(t, ApplySpeciesFilter(xs, ""))
	assert.Empty(t, ApplySpeciesFilter(xs, "Dog"))
}

func TestSpeciesFilter_MemoizesByVersionAndFilter(t *testing.T) {
	var f SpeciesFilter
	xs := sampleAnimals()

	first := f.Apply(1, xs, "Dog")
	second := f.Apply(1, xs, "Dog")
	assert.Equal(t, 1, f.Computations())
	require.NotEmpty(t, first)
	assert.Same(t, &first[0], &second[0])

	f.Apply(1, xs, "Cat")
	assert.Equal(t, 2, f.Computations())

	f.Apply(2, xs, "Cat")
	assert.Equal(t, 3, f.Computations())
}
