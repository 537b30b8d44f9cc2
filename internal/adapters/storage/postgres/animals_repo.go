package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-welfare-dashboard/internal/domain/animals"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

func (r *AnimalsRepo) List(ctx context.Context) ([]animals.AnimalRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			animal_id, org_id,
			species, sex, age_months,
			microchip, notes
		FROM animals
		ORDER BY animal_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.AnimalRecord, 0)
	for rows.Next() {
		var a animals.AnimalRecord
		var species, microchip, notes sql.NullString
		var sex string
		if err := rows.Scan(
			&a.ID,
			&a.OrgID,
			&species,
			&sex,
			&a.AgeMonths,
			&microchip,
			&notes,
		); err != nil {
			return nil, err
		}
		a.Species = species.String
		a.Sex = animals.Sex(sex)
		a.Microchip = fromNullString(microchip)
		a.Notes = fromNullString(notes)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.AnimalRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (
			animal_id, org_id,
			species, sex, age_months,
			microchip, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		a.ID,
		a.OrgID,
		toNullString(a.Species),
		string(a.Sex),
		a.AgeMonths,
		a.Microchip,
		a.Notes,
	)
	return mapPgError(err)
}

func (r *AnimalsRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE animal_id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) SpeciesCounts(ctx context.Context) ([]animals.SpeciesCountRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT species, COUNT(*)
		FROM animals
		GROUP BY species
		ORDER BY species ASC NULLS FIRST
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.SpeciesCountRow, 0)
	for rows.Next() {
		var species sql.NullString
		var row animals.SpeciesCountRow
		if err := rows.Scan(&species, &row.Count); err != nil {
			return nil, err
		}
		row.Species = fromNullString(species)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *AnimalsRepo) WelfareFollowUps(ctx context.Context, species string) ([]animals.WelfareFollowUpRow, error) {
	// species vacío => sin filtro ($2 = '')
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			a.animal_id, COALESCE(a.species, ''), a.age_months, a.sex,
			o.name, e.exam_date, e.health_score::float8, e.notes
		FROM health_exams e
		JOIN animals a ON a.animal_id = e.animal_id
		JOIN organizations o ON o.org_id = a.org_id
		WHERE e.health_score <= $1
		  AND ($2 = '' OR lower(a.species) = lower($2))
		ORDER BY e.exam_date DESC, a.animal_id ASC
	`, animals.WelfareHealthThreshold, species)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.WelfareFollowUpRow, 0)
	for rows.Next() {
		var row animals.WelfareFollowUpRow
		var sex string
		var examDate time.Time
		var notes sql.NullString
		if err := rows.Scan(
			&row.AnimalID,
			&row.Species,
			&row.AgeMonths,
			&sex,
			&row.OrgName,
			&examDate,
			&row.HealthScore,
			&notes,
		); err != nil {
			return nil, err
		}
		row.Sex = animals.Sex(sex)
		// ojo: exam_date es DATE, pgx lo mapea a time.Time midnight UTC
		row.ExamDate = examDate.Format("2006-01-02")
		row.Notes = fromNullString(notes)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *AnimalsRepo) AdoptionStats(ctx context.Context, state string) ([]animals.AdoptionStatRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.state, COALESCE(a.species, ''), COUNT(*)
		FROM adoptions ad
		JOIN animals a ON a.animal_id = ad.animal_id
		JOIN organizations o ON o.org_id = ad.org_id
		WHERE ($1 = '' OR lower(o.state) = lower($1))
		GROUP BY o.state, a.species
		ORDER BY o.state ASC, a.species ASC
	`, state)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.AdoptionStatRow, 0)
	for rows.Next() {
		var row animals.AdoptionStatRow
		if err := rows.Scan(&row.State, &row.Species, &row.AdoptionCount); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return animals.ErrDuplicateID
		case pgForeignKeyViolation:
			return animals.ErrUnknownOrg
		}
	}
	return err
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
