package postgres

import (
	"context"
	"database/sql"
	"strings"

	"farm-livestock-records/internal/domain/breeding"
	"farm-livestock-records/internal/domain/lifecycle"
)

type BreedingRepo struct {
	db *sql.DB
}

func NewBreedingRepo(db *sql.DB) *BreedingRepo {
	return &BreedingRepo{db: db}
}

func (r *BreedingRepo) Create(ctx context.Context, rec breeding.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO breeding_records (
			id, dam_id, sire_id, species,
			breeding_date, method, notes,
			recorded_at, recorded_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		rec.ID,
		rec.DamID,
		rec.SireID,
		string(rec.Species),
		rec.BreedingDate,
		string(rec.Method),
		rec.Notes,
		rec.RecordedAt,
		rec.RecordedBy,
	)
	return err
}

func (r *BreedingRepo) ListByAnimal(ctx context.Context, animalID string) ([]breeding.Record, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, dam_id, sire_id, species,
			breeding_date, method, notes,
			recorded_at, recorded_by
		FROM breeding_records
		WHERE dam_id = $1 OR sire_id = $1
		ORDER BY breeding_date DESC, recorded_at DESC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]breeding.Record, 0)
	for rows.Next() {
		var rec breeding.Record
		var species, method string
		if err := rows.Scan(
			&rec.ID,
			&rec.DamID,
			&rec.SireID,
			&species,
			&rec.BreedingDate,
			&method,
			&rec.Notes,
			&rec.RecordedAt,
			&rec.RecordedBy,
		); err != nil {
			return nil, err
		}
		rec.Species = lifecycle.Species(species)
		rec.Method = breeding.Method(method)
		rec.BreedingDate = dateOnly(rec.BreedingDate)
		out = append(out, rec)
	}
	return out, rows.Err()
}
