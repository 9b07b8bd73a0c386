package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"farm-livestock-records/internal/domain/lifecycle"
	"farm-livestock-records/internal/domain/treatments"
)

type TreatmentsRepo struct {
	db *sql.DB
}

func NewTreatmentsRepo(db *sql.DB) *TreatmentsRepo {
	return &TreatmentsRepo{db: db}
}

const treatmentColumns = `
	id, animal_id, type, administered_at,
	product, dose,
	next_due_date, next_due_manual, withdrawal_end_date,
	notes, recorded_at, recorded_by`

func (r *TreatmentsRepo) Create(ctx context.Context, t treatments.Treatment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO treatments (`+treatmentColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		t.ID,
		t.AnimalID,
		string(t.Type),
		t.AdministeredAt,
		t.Product,
		t.Dose,
		toNullDate(t.NextDueDate),
		t.NextDueManual,
		t.WithdrawalEndDate,
		t.Notes,
		t.RecordedAt,
		t.RecordedBy,
	)
	return err
}

func (r *TreatmentsRepo) GetByID(ctx context.Context, id string) (treatments.Treatment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return treatments.Treatment{}, treatments.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+treatmentColumns+` FROM treatments WHERE id = $1`, id)
	t, err := scanTreatment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return treatments.Treatment{}, treatments.ErrNotFound
		}
		return treatments.Treatment{}, err
	}
	return t, nil
}

func (r *TreatmentsRepo) ListByAnimal(ctx context.Context, animalID string) ([]treatments.Treatment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+treatmentColumns+`
		FROM treatments
		WHERE animal_id = $1
		ORDER BY administered_at DESC, recorded_at DESC
	`, strings.TrimSpace(animalID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]treatments.Treatment, 0)
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TreatmentsRepo) AddCheckup(ctx context.Context, c treatments.Checkup) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO treatment_checkups (
			id, treatment_id, animal_id,
			checked_at, recovered, notes,
			recorded_at, recorded_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		c.ID,
		c.TreatmentID,
		c.AnimalID,
		c.CheckedAt,
		c.Recovered,
		c.Notes,
		c.RecordedAt,
		c.RecordedBy,
	)
	return err
}

func (r *TreatmentsRepo) ListCheckups(ctx context.Context, treatmentID string) ([]treatments.Checkup, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, treatment_id, animal_id,
			checked_at, recovered, notes,
			recorded_at, recorded_by
		FROM treatment_checkups
		WHERE treatment_id = $1
		ORDER BY checked_at ASC, recorded_at ASC
	`, strings.TrimSpace(treatmentID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]treatments.Checkup, 0)
	for rows.Next() {
		var c treatments.Checkup
		if err := rows.Scan(
			&c.ID,
			&c.TreatmentID,
			&c.AnimalID,
			&c.CheckedAt,
			&c.Recovered,
			&c.Notes,
			&c.RecordedAt,
			&c.RecordedBy,
		); err != nil {
			return nil, err
		}
		c.CheckedAt = dateOnly(c.CheckedAt)
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanTreatment(s scanner) (treatments.Treatment, error) {
	var t treatments.Treatment
	var typ string
	var next sql.NullTime
	if err := s.Scan(
		&t.ID,
		&t.AnimalID,
		&typ,
		&t.AdministeredAt,
		&t.Product,
		&t.Dose,
		&next,
		&t.NextDueManual,
		&t.WithdrawalEndDate,
		&t.Notes,
		&t.RecordedAt,
		&t.RecordedBy,
	); err != nil {
		return treatments.Treatment{}, err
	}
	t.Type = lifecycle.TreatmentType(typ)
	t.AdministeredAt = dateOnly(t.AdministeredAt)
	t.WithdrawalEndDate = dateOnly(t.WithdrawalEndDate)
	t.NextDueDate = fromNullDate(next)
	return t, nil
}
