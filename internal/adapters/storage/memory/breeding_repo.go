package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"farm-livestock-records/internal/domain/breeding"
)

type breedingRepo struct {
	mu    sync.RWMutex
	items []breeding.Record
}

func NewBreedingRepo() breeding.Repository {
	return &breedingRepo{}
}

func (r *breedingRepo) Create(ctx context.Context, rec breeding.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.ID == "" {
		return errors.New("breeding id required")
	}
	r.items = append(r.items, rec)
	return nil
}

func (r *breedingRepo) ListByAnimal(ctx context.Context, animalID string) ([]breeding.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]breeding.Record, 0)
	for _, rec := range r.items {
		if rec.DamID == animalID || (rec.SireID != "" && rec.SireID == animalID) {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BreedingDate.After(out[j].BreedingDate)
	})
	return out, nil
}
