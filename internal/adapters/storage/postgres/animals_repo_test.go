package postgres

import (
	"errors"
	"fmt"
	"testing"

	"pet-welfare-dashboard/internal/domain/animals"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapPgError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"unique", &pgconn.PgError{Code: pgUniqueViolation}, animals.ErrDuplicateID},
		{"fk wrapped", fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgForeignKeyViolation}), animals.ErrUnknownOrg},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mapPgError(tc.in)
			if !errors.Is(got, tc.want) && got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}

	other := errors.New("boom")
	if got := mapPgError(other); got != other {
		t.Fatalf("unknown errors must pass through, got %v", got)
	}
}

func TestNullStringHelpers(t *testing.T) {
	if toNullString("").Valid {
		t.Fatalf("empty string must map to NULL")
	}
	ns := toNullString("Dog")
	if got := fromNullString(ns); got == nil || *got != "Dog" {
		t.Fatalf("round trip failed: %v", got)
	}
}
