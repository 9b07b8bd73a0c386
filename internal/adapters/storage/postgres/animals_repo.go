package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"farm-livestock-records/internal/domain/animals"
	"farm-livestock-records/internal/domain/lifecycle"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalColumns = `
	id, tag, name,
	species, breed, sex,
	date_of_birth, has_bred, is_newborn, castrated,
	dam_id, sire_id, notes,
	created_at, updated_at`

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (`+animalColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		a.ID,
		a.Tag,
		a.Name,
		string(a.Species),
		a.Breed,
		string(a.Sex),
		a.DateOfBirth,
		a.HasBred,
		a.IsNewborn,
		a.Castrated,
		a.DamID,
		a.SireID,
		a.Notes,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

// Update no toca especie ni sexo: son inmutables.
func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			tag = $2,
			name = $3,
			breed = $4,
			date_of_birth = $5,
			has_bred = $6,
			is_newborn = $7,
			castrated = $8,
			notes = $9,
			updated_at = $10
		WHERE id = $1
	`,
		a.ID,
		a.Tag,
		a.Name,
		a.Breed,
		a.DateOfBirth,
		a.HasBred,
		a.IsNewborn,
		a.Castrated,
		a.Notes,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, animals.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+animalColumns+` FROM animals WHERE id = $1`, id)
	a, err := scanAnimal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

func (r *AnimalsRepo) List(ctx context.Context, filter animals.ListFilter) ([]animals.Animal, error) {
	query, args := buildAnimalsQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func buildAnimalsQuery(filter animals.ListFilter) (string, []any) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + animalColumns + ` FROM animals WHERE TRUE`)

	args := []any{}
	argN := 1

	if len(filter.Species) > 0 {
		placeholders := make([]string, 0, len(filter.Species))
		for _, s := range filter.Species {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(s))
			argN++
		}
		sb.WriteString(" AND species IN (" + strings.Join(placeholders, ",") + ")")
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		sb.WriteString(fmt.Sprintf(" AND (tag ILIKE $%d OR name ILIKE $%d)", argN, argN))
		args = append(args, "%"+q+"%")
		argN++
	}

	sb.WriteString(" ORDER BY created_at ASC, id ASC")
	if filter.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
		args = append(args, filter.Limit)
	}
	return sb.String(), args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnimal(s scanner) (animals.Animal, error) {
	var a animals.Animal
	var species, sex string
	if err := s.Scan(
		&a.ID,
		&a.Tag,
		&a.Name,
		&species,
		&a.Breed,
		&sex,
		&a.DateOfBirth,
		&a.HasBred,
		&a.IsNewborn,
		&a.Castrated,
		&a.DamID,
		&a.SireID,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return animals.Animal{}, err
	}
	a.Species = lifecycle.Species(species)
	a.Sex = lifecycle.Sex(sex)
	a.DateOfBirth = dateOnly(a.DateOfBirth)
	return a, nil
}
