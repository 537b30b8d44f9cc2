package memory

import (
	"context"
	"errors"
	"testing"

	"pet-welfare-dashboard/internal/domain/animals"
)

func TestAnimalsRepo_CreateEnforcesUniqueIDAndKnownOrg(t *testing.T) {
	ctx := context.Background()
	repo := NewAnimalsRepo(Seed{
		Organizations: []animals.Organization{{ID: 1, Name: "Org", State: "CA"}},
	})

	if err := repo.Create(ctx, animals.AnimalRecord{ID: 1, OrgID: 1, Species: "Dog"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := repo.Create(ctx, animals.AnimalRecord{ID: 1, OrgID: 1, Species: "Cat"}); !errors.Is(err, animals.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if err := repo.Create(ctx, animals.AnimalRecord{ID: 2, OrgID: 99, Species: "Cat"}); !errors.Is(err, animals.ErrUnknownOrg) {
		t.Fatalf("expected ErrUnknownOrg, got %v", err)
	}
}

func TestAnimalsRepo_DeleteCascadesAndReportsMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewAnimalsRepo(DevSeed())

	if err := repo.Delete(ctx, 2); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := repo.Delete(ctx, 2); !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	rows, _ := repo.WelfareFollowUps(ctx, "")
	for _, r := range rows {
		if r.AnimalID == 2 {
			t.Fatalf("exam of deleted animal still listed: %#v", r)
		}
	}
}

func TestAnimalsRepo_SpeciesCountsIncludesNullBucket(t *testing.T) {
	ctx := context.Background()
	repo := NewAnimalsRepo(Seed{
		Organizations: []animals.Organization{{ID: 1}},
		Animals: []animals.AnimalRecord{
			{ID: 1, OrgID: 1, Species: "Dog"},
			{ID: 2, OrgID: 1, Species: "Dog"},
			{ID: 3, OrgID: 1, Species: ""},
		},
	})

	rows, err := repo.SpeciesCounts(ctx)
	if err != nil {
		t.Fatalf("SpeciesCounts error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %#v", rows)
	}
	if rows[0].Species != nil || rows[0].Count != 1 {
		t.Fatalf("expected null bucket first, got %#v", rows[0])
	}
	if rows[1].Label() != "Dog" || rows[1].Count != 2 {
		t.Fatalf("expected Dog=2, got %#v", rows[1])
	}
}

func TestAnimalsRepo_WelfareFollowUpsThresholdAndSpecies(t *testing.T) {
	ctx := context.Background()
	repo := NewAnimalsRepo(DevSeed())

	all, _ := repo.WelfareFollowUps(ctx, "")
	for _, r := range all {
		if r.HealthScore > animals.WelfareHealthThreshold {
			t.Fatalf("row above threshold: %#v", r)
		}
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 follow-ups in dev seed, got %d", len(all))
	}

	cats, _ := repo.WelfareFollowUps(ctx, "cat")
	if len(cats) != 1 || cats[0].AnimalID != 2 || cats[0].OrgName != "Happy Paws Rescue" {
		t.Fatalf("unexpected cat follow-ups: %#v", cats)
	}

	birds, _ := repo.WelfareFollowUps(ctx, "Bird")
	if birds == nil || len(birds) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", birds)
	}
}

func TestAnimalsRepo_AdoptionStatsGroupedByStateAndSpecies(t *testing.T) {
	ctx := context.Background()
	repo := NewAnimalsRepo(DevSeed())

	tx, _ := repo.AdoptionStats(ctx, "TX")
	want := []animals.AdoptionStatRow{
		{State: "TX", Species: "Dog", AdoptionCount: 1},
		{State: "TX", Species: "Pit Bull", AdoptionCount: 1},
	}
	if len(tx) != len(want) {
		t.Fatalf("expected %d rows, got %#v", len(want), tx)
	}
	for i := range want {
		if tx[i] != want[i] {
			t.Fatalf("row %d: expected %#v, got %#v", i, want[i], tx[i])
		}
	}

	all, _ := repo.AdoptionStats(ctx, "")
	if len(all) != 4 {
		t.Fatalf("expected 4 groups overall, got %#v", all)
	}
}
