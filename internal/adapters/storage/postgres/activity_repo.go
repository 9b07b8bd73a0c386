package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"farm-livestock-records/internal/domain/activity"
)

type ActivityRepo struct {
	db *sql.DB
}

func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func (r *ActivityRepo) Append(ctx context.Context, e activity.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_entries (
			id, animal_id,
			type, occurred_at, recorded_at,
			title, notes,
			actor_id, ref_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		e.ID,
		e.AnimalID,
		string(e.Type),
		e.OccurredAt,
		e.RecordedAt,
		e.Title,
		e.Notes,
		e.ActorID,
		e.RefID,
	)
	return err
}

func (r *ActivityRepo) ListByAnimal(ctx context.Context, animalID string, filter activity.ListFilter) ([]activity.Entry, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, nil
	}

	query, args := buildActivityQuery(animalID, filter)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]activity.Entry, 0)
	for rows.Next() {
		var e activity.Entry
		var typ string
		if err := rows.Scan(
			&e.ID,
			&e.AnimalID,
			&typ,
			&e.OccurredAt,
			&e.RecordedAt,
			&e.Title,
			&e.Notes,
			&e.ActorID,
			&e.RefID,
		); err != nil {
			return nil, err
		}
		e.Type = activity.EntryType(typ)
		out = append(out, e)
	}
	return out, rows.Err()
}

func buildActivityQuery(animalID string, filter activity.ListFilter) (string, []any) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, animal_id,
			type, occurred_at, recorded_at,
			title, notes,
			actor_id, ref_id
		FROM activity_entries
		WHERE animal_id = $1
	`)

	args := []any{animalID}
	argN := 2

	if len(filter.Types) > 0 {
		placeholders := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(t))
			argN++
		}
		sb.WriteString(" AND type IN (" + strings.Join(placeholders, ",") + ")")
	}

	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND occurred_at >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND occurred_at <= $%d", argN))
		args = append(args, *filter.To)
		argN++
	}

	// q: búsqueda simple en title + notes
	if strings.TrimSpace(filter.Query) != "" {
		sb.WriteString(fmt.Sprintf(" AND (title ILIKE $%d OR notes ILIKE $%d)", argN, argN))
		args = append(args, "%"+strings.TrimSpace(filter.Query)+"%")
		argN++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	sb.WriteString(" ORDER BY occurred_at DESC, recorded_at DESC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, limit)

	return sb.String(), args
}
