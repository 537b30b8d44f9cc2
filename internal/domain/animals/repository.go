package animals

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("animal not found")
	ErrDuplicateID = errors.New("animal id already exists")
	ErrUnknownOrg  = errors.New("organization does not exist")
)

// Repository es el storage del backend de referencia (memory o postgres).
type Repository interface {
	List(ctx context.Context) ([]AnimalRecord, error)
	Create(ctx context.Context, a AnimalRecord) error
	Delete(ctx context.Context, id int) error

	SpeciesCounts(ctx context.Context) ([]SpeciesCountRow, error)
	// species == "" => todas
	WelfareFollowUps(ctx context.Context, species string) ([]WelfareFollowUpRow, error)
	// state == "" => todos
	AdoptionStats(ctx context.Context, state string) ([]AdoptionStatRow, error)
}
