package onboarding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careerpath/internal/catalog"
	"github.com/jonathan/careerpath/internal/events"
	"github.com/jonathan/careerpath/internal/matching"
	"github.com/jonathan/careerpath/internal/state"
	"github.com/jonathan/careerpath/internal/storage"
	"github.com/jonathan/careerpath/internal/types"
)

type fakePersister struct {
	got  *types.OnboardingRequest
	resp *types.OnboardingResponse
	err  error
}

func (p *fakePersister) SaveOnboarding(_ context.Context, req types.OnboardingRequest) (*types.OnboardingResponse, error) {
	p.got = &req
	return p.resp, p.err
}

type brokenSession struct{}

func (brokenSession) User(context.Context) (*types.User, bool, error) {
	return nil, false, errors.New("disk on fire")
}

var fixedNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	flow      *Flow
	store     *state.Store
	persister *fakePersister
	bus       *events.Bus
	changes   []types.AuthChange
}

func newFixture(t *testing.T, user *types.User) *fixture {
	t.Helper()
	cat := catalog.Default()
	store := state.New(storage.NewMemory())
	if user != nil {
		require.NoError(t, store.SetUser(context.Background(), user))
	}
	fx := &fixture{
		store:     store,
		persister: &fakePersister{resp: &types.OnboardingResponse{Success: true}},
		bus:       events.NewBus(),
	}
	fx.bus.Subscribe(func(c types.AuthChange) { fx.changes = append(fx.changes, c) })
	fx.flow = New(Deps{
		Scorer:    matching.NewScorer(cat.Careers()),
		Interests: cat.Interests(),
		Session:   store,
		Persister: fx.persister,
		Staging:   store,
		Bus:       fx.bus,
		Clock:     func() time.Time { return fixedNow },
	})
	return fx
}

const (
	dl  = "Deep learning and neural networks"
	ai  = "Creating AI and machine learning models"
	nlp = "Natural language processing"
)

func TestToggle_SetSemantics(t *testing.T) {
	fx := newFixture(t, nil)
	f := fx.flow

	require.NoError(t, f.Toggle(dl))
	require.NoError(t, f.Toggle(nlp))
	assert.Equal(t, []string{dl, nlp}, f.Selected())

	require.NoError(t, f.Toggle(dl))
	assert.Equal(t, []string{nlp}, f.Selected())
	assert.False(t, f.IsSelected(dl))

	err := f.Toggle("Underwater basket weaving")
	assert.ErrorIs(t, err, ErrUnknownInterest)
	assert.Equal(t, []string{nlp}, f.Selected())
}

func TestAdvance_RequiresSelection(t *testing.T) {
	f := newFixture(t, nil).flow
	assert.False(t, f.CanAdvance())
	assert.ErrorIs(t, f.Advance(), ErrNoInterests)
	assert.Equal(t, SelectingInterests, f.State())

	require.NoError(t, f.Toggle(nlp))
	assert.True(t, f.CanAdvance())
	require.NoError(t, f.Advance())
	assert.Equal(t, ReviewingMatches, f.State())
	assert.Equal(t, "NLP Engineer", f.Matches()[0].Title)
}

func TestAdvance_NoUpperBoundOnSelection(t *testing.T) {
	f := newFixture(t, nil).flow
	for _, in := range f.Interests() {
		require.NoError(t, f.Toggle(in))
	}
	require.NoError(t, f.Advance())
	assert.Len(t, f.Matches(), 3)
}

func TestBack_KeepsSelectionAndRecomputes(t *testing.T) {
	f := newFixture(t, nil).flow
	require.NoError(t, f.Toggle(nlp))
	require.NoError(t, f.Advance())

	assert.ErrorIs(t, f.Toggle(dl), ErrWrongState, "selection is frozen while reviewing")

	require.NoError(t, f.Back())
	assert.Equal(t, []string{nlp}, f.Selected())
	assert.Empty(t, f.Matches())

	require.NoError(t, f.Toggle(nlp))
	require.NoError(t, f.Toggle("Working with data and analytics"))
	require.NoError(t, f.Advance())
	assert.Equal(t, []string{"Data Scientist", "Data Engineer"}, matching.Titles(f.Matches()))
}

func TestSubmit_Guest(t *testing.T) {
	fx := newFixture(t, nil)
	f := fx.flow
	require.NoError(t, f.Toggle(dl))
	require.NoError(t, f.Toggle(ai))
	require.NoError(t, f.Advance())

	out, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RegisterPath, out.Destination)
	assert.True(t, out.Guest)
	assert.Zero(t, out.RedirectAfter)
	assert.Equal(t, Done, f.State())
	assert.Nil(t, fx.persister.got, "guests never hit the API")

	g, found, err := fx.store.Guest(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{dl, ai}, g.SelectedInterests)
	assert.Equal(t, []string{"AI Research Scientist", "Computer Vision Engineer", "NLP Engineer"}, matching.Titles(g.MatchingCareers))
	assert.True(t, fixedNow.Equal(g.CompletedAt))
}

func TestSubmit_AuthenticatedSuccess(t *testing.T) {
	user := &types.User{ID: uuid.New(), Email: "ada@example.com", Name: "Ada Lovelace"}
	fx := newFixture(t, user)
	f := fx.flow
	require.NoError(t, f.Toggle(nlp))
	require.NoError(t, f.Advance())

	out, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DashboardPath, out.Destination)
	assert.Empty(t, out.Message)
	assert.NoError(t, out.Err)

	require.NotNil(t, fx.persister.got)
	assert.Equal(t, user.ID, fx.persister.got.UserID)
	assert.Equal(t, []string{nlp}, fx.persister.got.Interests)
	assert.Equal(t, []string{"NLP Engineer"}, fx.persister.got.CareerMatches)

	stored, _, err := fx.store.User(context.Background())
	require.NoError(t, err)
	assert.True(t, stored.HasCompletedOnboarding)
	assert.Equal(t, "NLP Engineer", stored.TargetRole)

	require.Len(t, fx.changes, 1)
	assert.Equal(t, types.AuthUpdate, fx.changes[0].Action)
	assert.Equal(t, "NLP Engineer", fx.changes[0].User.TargetRole)
}

func TestSubmit_AuthenticatedFailureStillRedirects(t *testing.T) {
	tests := []struct {
		name    string
		resp    *types.OnboardingResponse
		err     error
		wantMsg string
	}{
		{name: "transport error", err: errors.New("connection refused"), wantMsg: "Failed to save onboarding data"},
		{name: "server message", err: &SaveError{StatusCode: 400, Message: "Invalid interests"}, wantMsg: "Invalid interests"},
		{name: "success false", resp: &types.OnboardingResponse{Success: false}, wantMsg: "Failed to save onboarding data"},
		{name: "success false with message", resp: &types.OnboardingResponse{Message: "Database unavailable"}, wantMsg: "Database unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &types.User{ID: uuid.New(), Email: "ada@example.com"}
			fx := newFixture(t, user)
			fx.persister.resp = tt.resp
			fx.persister.err = tt.err
			f := fx.flow
			require.NoError(t, f.Toggle(nlp))
			require.NoError(t, f.Advance())

			out, err := f.Submit(context.Background())
			require.NoError(t, err)
			assert.Equal(t, DashboardPath, out.Destination)
			assert.Equal(t, 3*time.Second, out.RedirectAfter)
			assert.Equal(t, tt.wantMsg, out.Message)
			assert.Equal(t, tt.wantMsg, f.Error())
			assert.Error(t, out.Err)
			assert.Empty(t, fx.changes)

			stored, _, err := fx.store.User(context.Background())
			require.NoError(t, err)
			assert.False(t, stored.HasCompletedOnboarding)
		})
	}
}

func TestSubmit_UserWithoutID(t *testing.T) {
	fx := newFixture(t, &types.User{Email: "ghost@example.com"})
	f := fx.flow
	require.NoError(t, f.Toggle(nlp))
	require.NoError(t, f.Advance())

	out, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "User data not found", out.Message)
	assert.Nil(t, fx.persister.got)
}

func TestSubmit_SessionErrorFallsBackToGuest(t *testing.T) {
	store := state.New(storage.NewMemory())
	cat := catalog.Default()
	f := New(Deps{
		Scorer:    matching.NewScorer(cat.Careers()),
		Interests: cat.Interests(),
		Session:   brokenSession{},
		Persister: &fakePersister{},
		Staging:   store,
	})
	require.NoError(t, f.Toggle(nlp))
	require.NoError(t, f.Advance())

	out, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, out.Guest)
}

func TestSubmit_OutOfOrder(t *testing.T) {
	f := newFixture(t, nil).flow
	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrWrongState)
	assert.Nil(t, f.Outcome())
}

func TestStart_ClearsStaleGuestForSignedInUser(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, &types.User{ID: uuid.New()})
	require.NoError(t, fx.store.StageGuest(ctx, types.GuestOnboarding{SelectedInterests: []string{nlp}}))

	fx.flow.Start(ctx)
	_, found, err := fx.store.Guest(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStart_KeepsGuestDataForGuests(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, nil)
	require.NoError(t, fx.store.StageGuest(ctx, types.GuestOnboarding{SelectedInterests: []string{nlp}}))

	fx.flow.Start(ctx)
	_, found, err := fx.store.Guest(ctx)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestMatchBadge(t *testing.T) {
	assert.Equal(t, "", MatchBadge(0))
	assert.Equal(t, "1 interest match", MatchBadge(1))
	assert.Equal(t, "3 interest matches", MatchBadge(3))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "reviewing_matches", ReviewingMatches.String())
	assert.Equal(t, "state(42)", State(42).String())
}
