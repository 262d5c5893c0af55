package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careerpath/internal/events"
	"github.com/jonathan/careerpath/internal/state"
	"github.com/jonathan/careerpath/internal/storage"
	"github.com/jonathan/careerpath/internal/types"
)

type fakeAPI struct {
	user      *types.User
	meErr     error
	logoutErr error
	logouts   int
}

func (f *fakeAPI) Me(context.Context) (*types.User, error) {
	return f.user, f.meErr
}

func (f *fakeAPI) Logout(context.Context) error {
	f.logouts++
	return f.logoutErr
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "👤"},
		{"ada", "A"},
		{"Ada Lovelace", "AL"},
		{"ada king lovelace", "AK"},
		{"Ada  Lovelace", "AL"},
		{"émile zola", "ÉZ"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Initials(tt.name), "name %q", tt.name)
	}
}

func TestRefresh(t *testing.T) {
	api := &fakeAPI{user: &types.User{ID: uuid.New(), Name: "Ada", TargetRole: "NLP Engineer"}}
	w := NewWidget(api, nil, nil, nil)
	assert.True(t, w.Loading())

	w.Refresh(context.Background())
	assert.False(t, w.Loading())
	require.NotNil(t, w.User())
	assert.Equal(t, "Ada", w.DisplayName())
	assert.Equal(t, "NLP Engineer", w.DisplayRole())

	api.meErr = errors.New("unauthorized")
	w.Refresh(context.Background())
	assert.Nil(t, w.User())
	assert.Equal(t, "Student", w.DisplayName())
	assert.Equal(t, "ML Student", w.DisplayRole())
}

func TestAuthChangeNotifications(t *testing.T) {
	bus := events.NewBus()
	w := NewWidget(&fakeAPI{}, nil, bus, nil)
	defer w.Close()

	user := &types.User{ID: uuid.New(), Name: "Grace"}
	bus.Publish(types.AuthChange{Action: types.AuthLogin, User: user})
	assert.Equal(t, user, w.User())
	assert.False(t, w.Loading())

	bus.Publish(types.AuthChange{Action: types.AuthUpdate, User: &types.User{Name: "Other"}})
	assert.Equal(t, "Grace", w.DisplayName(), "update is ignored")

	bus.Publish(types.AuthChange{Action: types.AuthLogout})
	assert.Nil(t, w.User())

	w.Close()
	bus.Publish(types.AuthChange{Action: types.AuthLogin, User: user})
	assert.Nil(t, w.User(), "closed widget no longer listens")
}

func TestLogout_Success(t *testing.T) {
	ctx := context.Background()
	bus := events.NewBus()
	st := state.New(storage.NewMemory())
	require.NoError(t, st.SetUser(ctx, &types.User{ID: uuid.New(), Name: "Ada"}))

	api := &fakeAPI{user: &types.User{Name: "Ada"}}
	w := NewWidget(api, st, bus, nil)
	defer w.Close()
	w.Refresh(ctx)
	w.Toggle()

	var got []types.AuthAction
	bus.Subscribe(func(c types.AuthChange) { got = append(got, c.Action) })

	assert.Equal(t, "/", w.Logout(ctx))
	assert.Nil(t, w.User())
	assert.False(t, w.Open())
	assert.Equal(t, []types.AuthAction{types.AuthLogout}, got)

	_, found, err := st.User(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLogout_APIFailureStillClears(t *testing.T) {
	ctx := context.Background()
	bus := events.NewBus()
	st := state.New(storage.NewMemory())
	require.NoError(t, st.SetUser(ctx, &types.User{Name: "Ada"}))

	api := &fakeAPI{user: &types.User{Name: "Ada"}, logoutErr: errors.New("network down")}
	w := NewWidget(api, st, bus, nil)
	defer w.Close()
	w.Refresh(ctx)

	published := 0
	bus.Subscribe(func(types.AuthChange) { published++ })

	assert.Equal(t, "/", w.Logout(ctx))
	assert.Equal(t, 1, api.logouts)
	assert.Nil(t, w.User())
	assert.Zero(t, published)

	_, found, err := st.User(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}
