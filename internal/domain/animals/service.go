package animals

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Service es la lógica del backend de referencia. El dashboard no lo usa:
// habla con el backend por HTTP.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]AnimalRecord, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, a AnimalRecord) error {
	if a.ID <= 0 || a.OrgID <= 0 {
		return ErrInvalidInput
	}
	a.Species = strings.TrimSpace(a.Species)
	a.Sex = ParseSex(string(a.Sex))
	return s.repo.Create(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) SpeciesCounts(ctx context.Context) ([]SpeciesCountRow, error) {
	return s.repo.SpeciesCounts(ctx)
}

func (s *Service) WelfareFollowUps(ctx context.Context, species string) ([]WelfareFollowUpRow, error) {
	return s.repo.WelfareFollowUps(ctx, normalizeFilter(species))
}

func (s *Service) AdoptionStats(ctx context.Context, state string) ([]AdoptionStatRow, error) {
	return s.repo.AdoptionStats(ctx, normalizeFilter(state))
}

// "All" y "" significan sin filtro también del lado servidor.
func normalizeFilter(v string) string {
	v = strings.TrimSpace(v)
	if v == All {
		return ""
	}
	return v
}
