package memory

import (
	"context"
	"testing"
	"time"

	"farm-livestock-records/internal/domain/activity"
	"farm-livestock-records/internal/domain/animals"
	"farm-livestock-records/internal/domain/lifecycle"
	"farm-livestock-records/internal/domain/treatments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnimalRepo_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewAnimalRepo()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, animals.Animal{ID: "1", Tag: "AR-1", Species: lifecycle.SpeciesCattle, CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, animals.Animal{ID: "2", Tag: "G-1", Name: "Pepa", Species: lifecycle.SpeciesGoat, CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, animals.Animal{ID: "3", Tag: "AR-2", Species: lifecycle.SpeciesCattle, CreatedAt: base.Add(2 * time.Hour)}))
	assert.Error(t, repo.Create(ctx, animals.Animal{ID: "1"}))

	all, err := repo.List(ctx, animals.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "1", all[0].ID)

	cattle, err := repo.List(ctx, animals.ListFilter{Species: []lifecycle.Species{lifecycle.SpeciesCattle}, Limit: 1})
	require.NoError(t, err)
	require.Len(t, cattle, 1)
	assert.Equal(t, "AR-1", cattle[0].Tag)

	byName, err := repo.List(ctx, animals.ListFilter{Query: "pep"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "2", byName[0].ID)

	_, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, animals.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, animals.Animal{ID: "nope"}), animals.ErrNotFound)
}

func TestActivityRepo_OrderAndFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepo()
	d := func(day int) time.Time { return time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, repo.Append(ctx, activity.Entry{ID: "a", AnimalID: "x", Type: activity.EntryAnimalRegistered, OccurredAt: d(1), Title: "registered"}))
	require.NoError(t, repo.Append(ctx, activity.Entry{ID: "b", AnimalID: "x", Type: activity.EntryTreatmentLogged, OccurredAt: d(5), Title: "Dewormer: Ivomec"}))
	require.NoError(t, repo.Append(ctx, activity.Entry{ID: "c", AnimalID: "y", Type: activity.EntryTreatmentLogged, OccurredAt: d(6)}))

	items, err := repo.ListByAnimal(ctx, "x", activity.ListFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID)

	from := d(2)
	items, err = repo.ListByAnimal(ctx, "x", activity.ListFilter{From: &from, Query: "ivomec"})
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = repo.ListByAnimal(ctx, "x", activity.ListFilter{Types: []activity.EntryType{activity.EntryAnimalRegistered}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
}

func TestTreatmentRepo_Checkups(t *testing.T) {
	ctx := context.Background()
	repo := NewTreatmentRepo()
	d := func(day int) time.Time { return time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC) }

	assert.ErrorIs(t, repo.AddCheckup(ctx, treatments.Checkup{ID: "c0", TreatmentID: "t1"}), treatments.ErrNotFound)

	require.NoError(t, repo.Create(ctx, treatments.Treatment{ID: "t1", AnimalID: "x", AdministeredAt: d(1)}))
	require.NoError(t, repo.AddCheckup(ctx, treatments.Checkup{ID: "c2", TreatmentID: "t1", CheckedAt: d(7)}))
	require.NoError(t, repo.AddCheckup(ctx, treatments.Checkup{ID: "c1", TreatmentID: "t1", CheckedAt: d(4)}))

	items, err := repo.ListCheckups(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "c1", items[0].ID)

	_, err = repo.GetByID(ctx, "t9")
	assert.ErrorIs(t, err, treatments.ErrNotFound)
}
