package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"farm-livestock-records/internal/domain/treatments"
)

type treatmentRepo struct {
	mu       sync.RWMutex
	byID     map[string]treatments.Treatment
	checkups map[string][]treatments.Checkup
}

func NewTreatmentRepo() treatments.Repository {
	return &treatmentRepo{
		byID:     make(map[string]treatments.Treatment),
		checkups: make(map[string][]treatments.Checkup),
	}
}

func (r *treatmentRepo) Create(ctx context.Context, t treatments.Treatment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.ID == "" {
		return errors.New("treatment id required")
	}
	if _, exists := r.byID[t.ID]; exists {
		return errors.New("treatment already exists")
	}
	r.byID[t.ID] = t
	return nil
}

func (r *treatmentRepo) GetByID(ctx context.Context, id string) (treatments.Treatment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return treatments.Treatment{}, treatments.ErrNotFound
	}
	return t, nil
}

func (r *treatmentRepo) ListByAnimal(ctx context.Context, animalID string) ([]treatments.Treatment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]treatments.Treatment, 0)
	for _, t := range r.byID {
		if t.AnimalID == animalID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AdministeredAt.After(out[j].AdministeredAt)
	})
	return out, nil
}

func (r *treatmentRepo) AddCheckup(ctx context.Context, c treatments.Checkup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.TreatmentID]; !ok {
		return treatments.ErrNotFound
	}
	r.checkups[c.TreatmentID] = append(r.checkups[c.TreatmentID], c)
	return nil
}

func (r *treatmentRepo) ListCheckups(ctx context.Context, treatmentID string) ([]treatments.Checkup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]treatments.Checkup(nil), r.checkups[treatmentID]...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CheckedAt.Before(out[j].CheckedAt)
	})
	return out, nil
}
