package animals

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"farm-livestock-records/internal/domain/activity"
	"farm-livestock-records/internal/domain/lifecycle"
	"farm-livestock-records/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Animal
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Animal{}}
}

func (r *testRepo) Create(ctx context.Context, a Animal) error {
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(ctx context.Context, a Animal) error {
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Animal, error) {
	a, ok := r.byID[id]
	if !ok {
		return Animal{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) List(ctx context.Context, filter ListFilter) ([]Animal, error) {
	out := make([]Animal, 0)
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
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

// testRecords simula el historial de tratamientos o servicios: la fecha más antigua por animal.
type testRecords struct {
	earliest map[string]time.Time
	err      error
}

func (r testRecords) EarliestRecord(ctx context.Context, animalID string) (time.Time, bool, error) {
	if r.err != nil {
		return time.Time{}, false, r.err
	}
	t, ok := r.earliest[animalID]
	return t, ok, nil
}

var today = time.Date(2025, 12, 1, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *testRepo, *testJournal) {
	t.Helper()
	clock := func() time.Time { return today }
	engine, err := lifecycle.NewEngine(lifecycle.DefaultPolicy(), clock)
	require.NoError(t, err)

	repo := newTestRepo()
	journal := &testJournal{}
	svc := NewService(repo, engine, journal, nil)
	return svc, repo, journal
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_AndProfile(t *testing.T) {
	svc, _, journal := newTestService(t)

	a, err := svc.Create(context.Background(), "farmer-1", CreateInput{
		Tag:         "AR-0042",
		Species:     "Cattle",
		Breed:       "angus",
		Sex:         "female",
		DateOfBirth: today.AddDate(0, -30, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, lifecycle.SpeciesCattle, a.Species)
	assert.Equal(t, "Angus", a.Breed, "breed normalised to catalog spelling")
	assert.Equal(t, today, a.CreatedAt)

	p, err := svc.Profile(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, p.AgeMonths)
	assert.Equal(t, lifecycle.CattleHeifer, p.Category)

	require.Len(t, journal.entries, 1)
	assert.Equal(t, activity.EntryAnimalRegistered, journal.entries[0].Type)
	assert.Equal(t, "farmer-1", journal.entries[0].ActorID)
}

func TestService_Create_RejectsFutureBirth(t *testing.T) {
	svc, repo, _ := newTestService(t)

	_, err := svc.Create(context.Background(), "", CreateInput{
		Tag:         "G-1",
		Species:     "goat",
		Sex:         "male",
		DateOfBirth: today.AddDate(0, 0, 1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.byID)
}

func TestService_Create_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	dob := today.AddDate(-1, 0, 0)

	cases := map[string]CreateInput{
		"unknown species": {Tag: "x", Species: "horse", Sex: "male", DateOfBirth: dob},
		"unknown sex":     {Tag: "x", Species: "sheep", Sex: "?", DateOfBirth: dob},
		"no tag or name":  {Species: "sheep", Sex: "male", DateOfBirth: dob},
		"breed off list":  {Tag: "x", Species: "sheep", Breed: "Angus", Sex: "male", DateOfBirth: dob},
		"castrated ewe":   {Tag: "x", Species: "sheep", Sex: "female", Castrated: true, DateOfBirth: dob},
		"missing dob":     {Tag: "x", Species: "sheep", Sex: "female"},
		"unknown dam":     {Tag: "x", Species: "sheep", Sex: "female", DateOfBirth: dob, DamID: "nope"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "", in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_Create_ParentsMustMatch(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	ram, err := svc.Create(ctx, "", CreateInput{Tag: "R-1", Species: "sheep", Sex: "male", DateOfBirth: today.AddDate(-3, 0, 0)})
	require.NoError(t, err)
	ewe, err := svc.Create(ctx, "", CreateInput{Tag: "E-1", Species: "sheep", Sex: "female", HasBred: true, DateOfBirth: today.AddDate(-3, 0, 0)})
	require.NoError(t, err)

	lamb, err := svc.Create(ctx, "", CreateInput{
		Tag: "L-1", Species: "sheep", Sex: "female", IsNewborn: true,
		DateOfBirth: today, DamID: ewe.ID, SireID: ram.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, ewe.ID, lamb.DamID)

	// padres cruzados
	_, err = svc.Create(ctx, "", CreateInput{
		Tag: "L-2", Species: "sheep", Sex: "male", DateOfBirth: today, DamID: ram.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Create_MaleIgnoresBreedingFlag(t *testing.T) {
	svc, _, _ := newTestService(t)

	a, err := svc.Create(context.Background(), "", CreateInput{
		Tag: "B-1", Species: "cattle", Sex: "male", HasBred: true, DateOfBirth: today.AddDate(-3, 0, 0),
	})
	require.NoError(t, err)
	assert.False(t, a.HasBred)

	p, err := svc.ProfileOf(a)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.CattleBull, p.Category)
}

func TestService_ProfileOf_Castrated(t *testing.T) {
	svc, _, _ := newTestService(t)

	steer := Animal{Species: lifecycle.SpeciesCattle, Sex: lifecycle.SexMale, Castrated: true, DateOfBirth: today.AddDate(0, -14, 0)}
	p, err := svc.ProfileOf(steer)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.CattleSteer, p.Category)

	young := Animal{Species: lifecycle.SpeciesGoat, Sex: lifecycle.SexMale, Castrated: true, DateOfBirth: today.AddDate(0, -4, 0)}
	p, err = svc.ProfileOf(young)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.GoatKid, p.Category)
}

func TestService_UpdateProfile(t *testing.T) {
	svc, repo, journal := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "", CreateInput{Tag: "D-7", Species: "goat", Sex: "female", DateOfBirth: today.AddDate(-2, 0, 0)})
	require.NoError(t, err)

	later := today.Add(time.Hour)
	svc.now = func() time.Time { return later }

	bred := true
	notes := "  first kidding due spring "
	updated, err := svc.UpdateProfile(ctx, a.ID, "vet-2", UpdateProfileInput{HasBred: &bred, Notes: &notes})
	require.NoError(t, err)
	assert.True(t, updated.HasBred)
	assert.Equal(t, "first kidding due spring", updated.Notes)
	assert.Equal(t, later, updated.UpdatedAt)
	assert.Equal(t, updated, repo.byID[a.ID])

	p, err := svc.ProfileOf(updated)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.GoatDoe, p.Category)

	require.Len(t, journal.entries, 2)
	assert.Equal(t, activity.EntryProfileUpdated, journal.entries[1].Type)
	assert.Contains(t, journal.entries[1].Notes, "has_bred")
}

func TestService_UpdateProfile_Errors(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, "missing", "", UpdateProfileInput{})
	assert.ErrorIs(t, err, ErrNotFound)

	buck, err := svc.Create(ctx, "", CreateInput{Tag: "K-1", Species: "goat", Sex: "male", DateOfBirth: today.AddDate(-2, 0, 0)})
	require.NoError(t, err)

	yes := true
	_, err = svc.UpdateProfile(ctx, buck.ID, "", UpdateProfileInput{HasBred: &yes})
	assert.ErrorIs(t, err, ErrInvalidInput)

	future := today.AddDate(0, 1, 0)
	_, err = svc.UpdateProfile(ctx, buck.ID, "", UpdateProfileInput{DateOfBirth: &future})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_MarkBred_Idempotent(t *testing.T) {
	svc, _, journal := newTestService(t)
	ctx := context.Background()

	ewe, err := svc.Create(ctx, "", CreateInput{Tag: "E-9", Species: "sheep", Sex: "female", DateOfBirth: today.AddDate(-2, 0, 0)})
	require.NoError(t, err)

	a, err := svc.MarkBred(ctx, ewe.ID, "")
	require.NoError(t, err)
	assert.True(t, a.HasBred)

	_, err = svc.MarkBred(ctx, ewe.ID, "")
	require.NoError(t, err)
	assert.Len(t, journal.entries, 2, "second call must not log again")
}

func TestService_UpdateProfile_BirthAfterRecords(t *testing.T) {
	svc, repo, journal := newTestService(t)
	ctx := context.Background()

	doe, err := svc.Create(ctx, "", CreateInput{Tag: "D-3", Species: "goat", Sex: "female", DateOfBirth: today.AddDate(-1, 0, 0)})
	require.NoError(t, err)

	dewormed := time.Date(2025, 11, 21, 0, 0, 0, 0, time.UTC)
	bred := time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC)
	svc.TrackRecords(
		testRecords{earliest: map[string]time.Time{doe.ID: dewormed}},
		testRecords{earliest: map[string]time.Time{doe.ID: bred}},
	)

	tooLate := today.AddDate(0, 0, -2)
	_, err = svc.UpdateProfile(ctx, doe.ID, "", UpdateProfileInput{DateOfBirth: &tooLate})
	assert.ErrorIs(t, err, ErrOutOfOrder)
	assert.ErrorIs(t, err, lifecycle.ErrOutOfOrder)
	assert.Equal(t, doe, repo.byID[doe.ID], "rejected patch must not be stored")
	assert.Len(t, journal.entries, 1)

	// el mismo día que el servicio más antiguo sigue siendo válido
	sameDay := bred.Add(15 * time.Hour)
	updated, err := svc.UpdateProfile(ctx, doe.ID, "", UpdateProfileInput{DateOfBirth: &sameDay})
	require.NoError(t, err)
	assert.Equal(t, sameDay, updated.DateOfBirth)

	earlier := today.AddDate(-2, 0, 0)
	_, err = svc.UpdateProfile(ctx, doe.ID, "", UpdateProfileInput{DateOfBirth: &earlier})
	require.NoError(t, err)
}

func TestService_UpdateProfile_RecordsLookupFails(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	steer, err := svc.Create(ctx, "", CreateInput{Tag: "S-1", Species: "cattle", Sex: "male", DateOfBirth: today.AddDate(-1, 0, 0)})
	require.NoError(t, err)

	boom := errors.New("treatments unavailable")
	svc.TrackRecords(testRecords{err: boom})

	dob := today.AddDate(-1, -1, 0)
	_, err = svc.UpdateProfile(ctx, steer.ID, "", UpdateProfileInput{DateOfBirth: &dob})
	assert.ErrorIs(t, err, boom)

	// sin cambio de nacimiento no se consulta el historial
	name := "Colorado"
	_, err = svc.UpdateProfile(ctx, steer.ID, "", UpdateProfileInput{Name: &name})
	require.NoError(t, err)
}

func TestService_Create_FailedJournalIsLogged(t *testing.T) {
	repo := newTestRepo()
	engine, err := lifecycle.NewEngine(lifecycle.DefaultPolicy(), func() time.Time { return today })
	require.NoError(t, err)

	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Info, Format: logger.FormatJSON, Output: &buf})
	svc := NewService(repo, engine, failingJournal{}, log)

	a, err := svc.Create(context.Background(), "", CreateInput{Tag: "AR-7", Species: "cattle", Sex: "female", DateOfBirth: today.AddDate(-1, 0, 0)})
	require.NoError(t, err)
	assert.Contains(t, repo.byID, a.ID)

	out := buf.String()
	assert.Contains(t, out, "activity append failed")
	assert.Contains(t, out, a.ID)
	assert.Contains(t, out, "journal unavailable")
}
