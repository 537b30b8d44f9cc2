package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"pet-welfare-dashboard/internal/domain/animals"
)

// Seed es el estado inicial del repo in-memory.
type Seed struct {
	Organizations []animals.Organization
	Animals       []animals.AnimalRecord
	Exams         []animals.Exam
	Adoptions     []animals.Adoption
}

type animalsRepo struct {
	mu        sync.RWMutex
	orgs      map[int]animals.Organization
	byID      map[int]animals.AnimalRecord
	exams     []animals.Exam
	adoptions []animals.Adoption
}

func NewAnimalsRepo(seed Seed) animals.Repository {
	r := &animalsRepo{
		orgs: make(map[int]animals.Organization),
		byID: make(map[int]animals.AnimalRecord),
	}
	for _, o := range seed.Organizations {
		r.orgs[o.ID] = o
	}
	for _, a := range seed.Animals {
		r.byID[a.ID] = a
	}
	r.exams = append(r.exams, seed.Exams...)
	r.adoptions = append(r.adoptions, seed.Adoptions...)
	return r
}

func (r *animalsRepo) List(ctx context.Context) ([]animals.AnimalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.AnimalRecord, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	// Orden estable por id (como el ORDER BY del backend real)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *animalsRepo) Create(ctx context.Context, a animals.AnimalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; exists {
		return animals.ErrDuplicateID
	}
	if _, ok := r.orgs[a.OrgID]; !ok {
		return animals.ErrUnknownOrg
	}
	r.byID[a.ID] = a
	return nil
}

func (r *animalsRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return animals.ErrNotFound
	}
	delete(r.byID, id)

	// cascade, igual que las FK del schema postgres
	exams := r.exams[:0]
	for _, e := range r.exams {
		if e.AnimalID != id {
			exams = append(exams, e)
		}
	}
	r.exams = exams

	adoptions := r.adoptions[:0]
	for _, ad := range r.adoptions {
		if ad.AnimalID != id {
			adoptions = append(adoptions, ad)
		}
	}
	r.adoptions = adoptions
	return nil
}

func (r *animalsRepo) SpeciesCounts(ctx context.Context) ([]animals.SpeciesCountRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := map[string]int{}
	nulls := 0
	for _, a := range r.byID {
		if a.Species == "" {
			nulls++
			continue
		}
		counts[a.Species]++
	}

	out := make([]animals.SpeciesCountRow, 0, len(counts)+1)
	if nulls > 0 {
		out = append(out, animals.SpeciesCountRow{Species: nil, Count: nulls})
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		species := k
		out = append(out, animals.SpeciesCountRow{Species: &species, Count: counts[k]})
	}
	return out, nil
}

func (r *animalsRepo) WelfareFollowUps(ctx context.Context, species string) ([]animals.WelfareFollowUpRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.WelfareFollowUpRow, 0)
	for _, e := range r.exams {
		if e.HealthScore > animals.WelfareHealthThreshold {
			continue
		}
		a, ok := r.byID[e.AnimalID]
		if !ok {
			continue
		}
		if species != "" && !strings.EqualFold(a.Species, species) {
			continue
		}
		out = append(out, animals.WelfareFollowUpRow{
			AnimalID:    a.ID,
			Species:     a.Species,
			AgeMonths:   a.AgeMonths,
			Sex:         a.Sex,
			OrgName:     r.orgs[a.OrgID].Name,
			ExamDate:    e.ExamDate,
			HealthScore: e.HealthScore,
			Notes:       e.Notes,
		})
	}

	// exámenes más recientes primero; YYYY-MM-DD ordena lexicográficamente
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ExamDate != out[j].ExamDate {
			return out[i].ExamDate > out[j].ExamDate
		}
		return out[i].AnimalID < out[j].AnimalID
	})
	return out, nil
}

func (r *animalsRepo) AdoptionStats(ctx context.Context, state string) ([]animals.AdoptionStatRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type key struct{ state, species string }
	counts := map[key]int{}
	for _, ad := range r.adoptions {
		org, ok := r.orgs[ad.OrgID]
		if !ok {
			continue
		}
		if state != "" && !strings.EqualFold(org.State, state) {
			continue
		}
		a, ok := r.byID[ad.AnimalID]
		if !ok {
			continue
		}
		counts[key{org.State, a.Species}]++
	}

	out := make([]animals.AdoptionStatRow, 0, len(counts))
	for k, n := range counts {
		out = append(out, animals.AdoptionStatRow{State: k.state, Species: k.species, AdoptionCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].State != out[j].State {
			return out[i].State < out[j].State
		}
		return out[i].Species < out[j].Species
	})
	return out, nil
}
