package memory

import "pet-welfare-dashboard/internal/domain/animals"

func strp(s string) *string { return &s }

// DevSeed es el dataset de ejemplo para correr cmd/welfare-api sin base de datos.
func DevSeed() Seed {
	return Seed{
		Organizations: []animals.Organization{
			{ID: 1, Name: "Happy Paws Rescue", State: "CA"},
			{ID: 2, Name: "Second Chance Shelter", State: "TX"},
			{ID: 3, Name: "Lone Star Pit Bull Alliance", State: "TX"},
		},
		Animals: []animals.AnimalRecord{
			{ID: 1, OrgID: 1, Species: "Dog", Sex: animals.SexMale, AgeMonths: 12},
			{ID: 2, OrgID: 1, Species: "Cat", Sex: animals.SexFemale, AgeMonths: 30},
			{ID: 3, OrgID: 2, Species: "Dog", Sex: animals.SexFemale, AgeMonths: 60, Microchip: strp("985112003456789")},
			{ID: 4, OrgID: 3, Species: "Pit Bull", Sex: animals.SexMale, AgeMonths: 24},
			{ID: 5, OrgID: 2, Species: "Cat", Sex: animals.SexUnknown, AgeMonths: 4, Notes: strp("found near highway")},
		},
		Exams: []animals.Exam{
			{AnimalID: 1, ExamDate: "2025-01-10", HealthScore: 8.5},
			{AnimalID: 2, ExamDate: "2025-02-02", HealthScore: 5.0, Notes: strp("weight loss")},
			{AnimalID: 3, ExamDate: "2025-02-14", HealthScore: 6.0, Notes: strp("dental follow-up")},
			{AnimalID: 4, ExamDate: "2025-03-01", HealthScore: 4.5, Notes: strp("skin condition")},
			{AnimalID: 5, ExamDate: "2025-03-05", HealthScore: 7.0},
		},
		Adoptions: []animals.Adoption{
			{AnimalID: 1, OrgID: 1},
			{AnimalID: 2, OrgID: 1},
			{AnimalID: 3, OrgID: 2},
			{AnimalID: 4, OrgID: 3},
		},
	}
}
