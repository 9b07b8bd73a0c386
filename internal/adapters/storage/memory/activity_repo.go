package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"farm-livestock-records/internal/domain/activity"
)

// activityRepo es append-only: no hay update ni delete.
type activityRepo struct {
	mu    sync.RWMutex
	items []activity.Entry
}

func NewActivityRepo() activity.Repository {
	return &activityRepo{}
}

func (r *activityRepo) Append(ctx context.Context, e activity.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("entry id required")
	}
	r.items = append(r.items, e)
	return nil
}

func (r *activityRepo) ListByAnimal(ctx context.Context, animalID string, filter activity.ListFilter) ([]activity.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	out := make([]activity.Entry, 0)

	for _, e := range r.items {
		if e.AnimalID != animalID {
			continue
		}

		// Type filter
		if len(filter.Types) > 0 {
			ok := false
			for _, t := range filter.Types {
				if e.Type == t {
					ok = true
					break
				}
			}
			if !ok {
				continue
			}
		}

		// Date filters (occurred_at)
		if filter.From != nil && e.OccurredAt.Before((*filter.From).Add(-1*time.Nanosecond)) {
			continue
		}
		if filter.To != nil && e.OccurredAt.After(*filter.To) {
			continue
		}

		if q := strings.TrimSpace(filter.Query); q != "" {
			hay := strings.ToLower(e.Title + " " + e.Notes)
			if !strings.Contains(hay, strings.ToLower(q)) {
				continue
			}
		}

		out = append(out, e)
	}

	// Más reciente primero; a igual fecha, el último registrado primero.
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.After(out[j].OccurredAt)
		}
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
