package treatments

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"farm-livestock-records/internal/domain/activity"
	"farm-livestock-records/internal/domain/animals"
	"farm-livestock-records/internal/domain/lifecycle"
	"farm-livestock-records/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID     map[string]Treatment
	checkups map[string][]Checkup
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Treatment{}, checkups: map[string][]Checkup{}}
}

func (r *testRepo) Create(ctx context.Context, t Treatment) error {
	r.byID[t.ID] = t
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Treatment, error) {
	t, ok := r.byID[id]
	if !ok {
		return Treatment{}, ErrNotFound
	}
	return t, nil
}

func (r *testRepo) ListByAnimal(ctx context.Context, animalID string) ([]Treatment, error) {
	out := make([]Treatment, 0)
	for _, t := range r.byID {
		if t.AnimalID == animalID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *testRepo) AddCheckup(ctx context.Context, c Checkup) error {
	r.checkups[c.TreatmentID] = append(r.checkups[c.TreatmentID], c)
	return nil
}

func (r *testRepo) ListCheckups(ctx context.Context, treatmentID string) ([]Checkup, error) {
	out := append([]Checkup(nil), r.checkups[treatmentID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].CheckedAt.Before(out[j].CheckedAt) })
	return out, nil
}

type testAnimals map[string]animals.Animal

func (a testAnimals) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	an, ok := a[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return an, nil
}

type testJournal struct {
	entries []activity.AppendInput
}

func (j *testJournal) Append(ctx context.Context, in activity.AppendInput) (activity.Entry, error) {
	j.entries = append(j.entries, in)
	return activity.Entry{}, nil
}

type failingJournal struct{}

func (failingJournal) Append(ctx context.Context, in activity.AppendInput) (activity.Entry, error) {
	return activity.Entry{}, errors.New("journal unavailable")
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var today = day(2025, 6, 10)

const cowID = "cow-1"

func newTestService(t *testing.T) (*Service, *testRepo, *testJournal) {
	t.Helper()
	clock := func() time.Time { return today }
	engine, err := lifecycle.NewEngine(lifecycle.DefaultPolicy(), clock)
	require.NoError(t, err)

	herd := testAnimals{cowID: {
		ID:          cowID,
		Tag:         "AR-1",
		Species:     lifecycle.SpeciesCattle,
		Sex:         lifecycle.SexFemale,
		DateOfBirth: day(2022, 3, 1),
	}}
	repo := newTestRepo()
	journal := &testJournal{}
	svc := NewService(repo, engine, herd, journal, nil)
	return svc, repo, journal
}

func setNow(t *testing.T, svc *Service, now time.Time) {
	t.Helper()
	clock := func() time.Time { return now }
	engine, err := lifecycle.NewEngine(lifecycle.DefaultPolicy(), clock)
	require.NoError(t, err)
	svc.engine = engine
	svc.now = clock
}

// -------------------------
// Tests
// -------------------------

func TestService_Log_DerivesWithdrawalAndNextDue(t *testing.T) {
	svc, repo, journal := newTestService(t)

	v, err := svc.Log(context.Background(), cowID, "vet-1", LogInput{
		Type:           "Dewormer",
		AdministeredAt: day(2025, 5, 21),
		Product:        " Ivermectin ",
		Dose:           "10 ml",
	})
	require.NoError(t, err)

	tr := v.Treatment
	assert.Equal(t, lifecycle.TreatmentDewormer, tr.Type)
	assert.Equal(t, "Ivermectin", tr.Product)
	assert.Equal(t, day(2025, 6, 4), tr.WithdrawalEndDate)
	require.NotNil(t, tr.NextDueDate)
	assert.Equal(t, day(2025, 8, 21), *tr.NextDueDate)
	assert.False(t, tr.NextDueManual)
	assert.Equal(t, "vet-1", tr.RecordedBy)
	assert.Equal(t, tr, repo.byID[tr.ID])

	// 20 días después: lejos de la próxima dosis y ya fuera del retiro
	require.NotNil(t, v.Status)
	assert.Equal(t, lifecycle.StatusCompleted, *v.Status)
	assert.False(t, v.InWithdrawal)
	assert.Nil(t, v.NextCheckup)

	require.Len(t, journal.entries, 1)
	assert.Equal(t, activity.EntryTreatmentLogged, journal.entries[0].Type)
	assert.Equal(t, tr.ID, journal.entries[0].RefID)
	assert.Contains(t, journal.entries[0].Notes, "2025-06-04")
}

func TestService_Log_VaccineHasNoScheduleUnlessEntered(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	v, err := svc.Log(ctx, cowID, "", LogInput{Type: "VACCINE", AdministeredAt: today})
	require.NoError(t, err)
	assert.Nil(t, v.Status)
	assert.Nil(t, v.Treatment.NextDueDate)
	assert.False(t, v.InWithdrawal, "zero withdrawal never restricts sale")

	next := day(2025, 7, 1)
	v, err = svc.Log(ctx, cowID, "", LogInput{Type: "Vaccine", AdministeredAt: today, NextDueDate: &next})
	require.NoError(t, err)
	assert.True(t, v.Treatment.NextDueManual)
	require.NotNil(t, v.Status)
	assert.Equal(t, lifecycle.StatusDueSoon, *v.Status)
}

func TestService_Log_Validation(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	wrongEnd := day(2025, 6, 20)
	beforeAdmin := day(2025, 6, 1)

	cases := map[string]LogInput{
		"unknown type":          {Type: "homeopathy", AdministeredAt: today},
		"future administration": {Type: "Vitamins", AdministeredAt: today.AddDate(0, 0, 1)},
		"missing date":          {Type: "Vitamins"},
		"withdrawal mismatch":   {Type: "Antibiotics", AdministeredAt: today, WithdrawalEndDate: &wrongEnd},
		"next due before":       {Type: "Vaccine", AdministeredAt: today, NextDueDate: &beforeAdmin},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Log(ctx, cowID, "", in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := svc.Log(ctx, cowID, "", LogInput{Type: "Vitamins", AdministeredAt: day(2021, 1, 1)})
	assert.ErrorIs(t, err, ErrOutOfOrder)

	_, err = svc.Log(ctx, "ghost", "", LogInput{Type: "Vitamins", AdministeredAt: today})
	assert.ErrorIs(t, err, animals.ErrNotFound)

	assert.Empty(t, repo.byID)
}

func TestService_Log_MatchingWithdrawalAccepted(t *testing.T) {
	svc, _, _ := newTestService(t)

	end := day(2025, 6, 22)
	v, err := svc.Log(context.Background(), cowID, "", LogInput{
		Type: "Antibiotics", AdministeredAt: day(2025, 6, 1), WithdrawalEndDate: &end,
	})
	require.NoError(t, err)
	assert.Equal(t, end, v.Treatment.WithdrawalEndDate)
	assert.True(t, v.InWithdrawal)
	require.NotNil(t, v.NextCheckup)
	assert.Equal(t, day(2025, 6, 4), *v.NextCheckup)
}

func TestService_RecordCheckup_Cadence(t *testing.T) {
	svc, repo, journal := newTestService(t)
	ctx := context.Background()

	v, err := svc.Log(ctx, cowID, "", LogInput{Type: "Antibiotics", AdministeredAt: day(2025, 6, 1)})
	require.NoError(t, err)
	id := v.Treatment.ID

	v, err = svc.RecordCheckup(ctx, cowID, id, "vet-1", CheckupInput{CheckedAt: day(2025, 6, 4)})
	require.NoError(t, err)
	require.NotNil(t, v.NextCheckup)
	assert.Equal(t, day(2025, 6, 7), *v.NextCheckup)
	assert.Len(t, v.Checkups, 1)

	// fuera de orden
	_, err = svc.RecordCheckup(ctx, cowID, id, "", CheckupInput{CheckedAt: day(2025, 6, 3)})
	assert.ErrorIs(t, err, ErrOutOfOrder)

	v, err = svc.RecordCheckup(ctx, cowID, id, "", CheckupInput{CheckedAt: day(2025, 6, 8), Recovered: true})
	require.NoError(t, err)
	assert.True(t, v.Recovered)
	assert.Nil(t, v.NextCheckup)
	// la recuperación no acorta el retiro
	assert.Equal(t, day(2025, 6, 22), v.Treatment.WithdrawalEndDate)
	assert.True(t, v.InWithdrawal)

	_, err = svc.RecordCheckup(ctx, cowID, id, "", CheckupInput{CheckedAt: today})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Len(t, repo.checkups[id], 2)
	assert.Len(t, journal.entries, 3)
	assert.Equal(t, activity.EntryCheckupRecorded, journal.entries[2].Type)
	assert.Contains(t, journal.entries[2].Title, "recovered")
}

func TestService_RecordCheckup_Errors(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	vit, err := svc.Log(ctx, cowID, "", LogInput{Type: "Vitamins", AdministeredAt: today})
	require.NoError(t, err)

	_, err = svc.RecordCheckup(ctx, cowID, vit.Treatment.ID, "", CheckupInput{CheckedAt: today})
	assert.ErrorIs(t, err, ErrInvalidInput, "vitamins have no checkup cadence")

	_, err = svc.RecordCheckup(ctx, cowID, "missing", "", CheckupInput{CheckedAt: today})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.RecordCheckup(ctx, "ghost", vit.Treatment.ID, "", CheckupInput{CheckedAt: today})
	assert.ErrorIs(t, err, animals.ErrNotFound)
}

func TestService_ListByAnimal_StatusMovesWithClock(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Log(ctx, cowID, "", LogInput{Type: "Dewormer", AdministeredAt: day(2025, 3, 10)})
	require.NoError(t, err)
	_, err = svc.Log(ctx, cowID, "", LogInput{Type: "Vitamins", AdministeredAt: day(2025, 6, 9)})
	require.NoError(t, err)

	items, err := svc.ListByAnimal(ctx, cowID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, lifecycle.TreatmentVitamins, items[0].Treatment.Type, "most recent first")
	// desparasitario vence el 10/06: hoy mismo es due_soon
	assert.Equal(t, lifecycle.StatusDueSoon, *items[1].Status)

	setNow(t, svc, day(2025, 6, 11))
	items, err = svc.ListByAnimal(ctx, cowID)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusOverdue, *items[1].Status)

	_, err = svc.ListByAnimal(ctx, "ghost")
	assert.ErrorIs(t, err, animals.ErrNotFound)
}

func TestService_Log_UsesEngineClock(t *testing.T) {
	svc, _, _ := newTestService(t)

	v, err := svc.Log(context.Background(), cowID, "", LogInput{Type: "VACCINE", AdministeredAt: today})
	require.NoError(t, err)
	assert.Equal(t, today, v.Treatment.RecordedAt)
}

func TestService_Log_FailedJournalIsLogged(t *testing.T) {
	svc, repo, _ := newTestService(t)
	var buf bytes.Buffer
	svc.journal = failingJournal{}
	svc.log = logger.New(logger.Options{Level: logger.Info, Format: logger.FormatJSON, Output: &buf})

	v, err := svc.Log(context.Background(), cowID, "vet-1", LogInput{Type: "DEWORMER", AdministeredAt: today.AddDate(0, 0, -3)})
	require.NoError(t, err)
	assert.Len(t, repo.byID, 1)

	out := buf.String()
	assert.Contains(t, out, "activity append failed")
	assert.Contains(t, out, v.Treatment.ID)
	assert.Contains(t, out, "journal unavailable")
}

func TestService_EarliestRecord(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, ok, err := svc.EarliestRecord(ctx, cowID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Log(ctx, cowID, "", LogInput{Type: "VITAMINS", AdministeredAt: day(2025, 5, 2)})
	require.NoError(t, err)
	_, err = svc.Log(ctx, cowID, "", LogInput{Type: "VACCINE", AdministeredAt: day(2024, 11, 15)})
	require.NoError(t, err)

	earliest, ok, err := svc.EarliestRecord(ctx, cowID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, day(2024, 11, 15), earliest)
}
