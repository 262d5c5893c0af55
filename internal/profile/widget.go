// Package profile holds the session widget logic: who is signed in, how they are
// displayed, and signing out.
package profile

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"go.uber.org/zap"

	"github.com/jonathan/careerpath/internal/events"
	"github.com/jonathan/careerpath/internal/types"
)

// Display defaults for a user with missing fields.
const (
	DefaultName    = "Student"
	DefaultRole    = "ML Student"
	AnonymousGlyph = "👤"
	HomePath       = "/"
)

// AuthAPI is the slice of the backend the widget needs.
type AuthAPI interface {
	Me(ctx context.Context) (*types.User, error)
	Logout(ctx context.Context) error
}

// UserStore clears the locally stored session user.
type UserStore interface {
	ClearUser(ctx context.Context) error
}

// Widget tracks the signed-in user. It refreshes from the backend on demand and follows
// login and logout notifications on the bus. Safe for concurrent use.
type Widget struct {
	api    AuthAPI
	store  UserStore
	bus    *events.Bus
	logger *zap.Logger

	mu      sync.RWMutex
	user    *types.User
	loading bool
	open    bool

	unsubscribe func()
}

// NewWidget creates a widget and subscribes it to bus. store and bus may be nil.
func NewWidget(api AuthAPI, store UserStore, bus *events.Bus, logger *zap.Logger) *Widget {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Widget{api: api, store: store, bus: bus, logger: logger, loading: true}
	if bus != nil {
		w.unsubscribe = bus.Subscribe(w.handleAuthChange)
	}
	return w
}

// Close detaches the widget from the bus.
func (w *Widget) Close() {
	if w.unsubscribe != nil {
		w.unsubscribe()
	}
}

// Refresh asks the backend for the current user. Any failure leaves the widget signed out.
func (w *Widget) Refresh(ctx context.Context) {
	user, err := w.api.Me(ctx)
	if err != nil {
		w.logger.Debug("no authenticated user", zap.Error(err))
		user = nil
	}
	w.mu.Lock()
	w.user = user
	w.loading = false
	w.mu.Unlock()
}

func (w *Widget) handleAuthChange(change types.AuthChange) {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch change.Action {
	case types.AuthLogin:
		w.user = change.User
		w.loading = false
	case types.AuthLogout:
		w.user = nil
	}
}

// User returns the signed-in user, or nil.
func (w *Widget) User() *types.User {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.user
}

// Loading reports whether the first refresh or login has not happened yet.
func (w *Widget) Loading() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.loading
}

// Toggle opens or closes the dropdown and reports the new state.
func (w *Widget) Toggle() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.open = !w.open
	return w.open
}

// Open reports whether the dropdown is open.
func (w *Widget) Open() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.open
}

// Logout signs out and returns where to navigate next. Local state is cleared even when
// the backend call fails; the logout notification is only published on success.
func (w *Widget) Logout(ctx context.Context) string {
	err := w.api.Logout(ctx)
	if err != nil {
		w.logger.Warn("logout failed", zap.Error(err))
	}

	w.mu.Lock()
	w.user = nil
	w.open = false
	w.mu.Unlock()

	if w.store != nil {
		if cerr := w.store.ClearUser(ctx); cerr != nil {
			w.logger.Warn("failed to clear stored user", zap.Error(cerr))
		}
	}
	if err == nil && w.bus != nil {
		w.bus.Publish(types.AuthChange{Action: types.AuthLogout})
	}
	return HomePath
}

// DisplayName is the user's name, or "Student".
func (w *Widget) DisplayName() string {
	if u := w.User(); u != nil && u.Name != "" {
		return u.Name
	}
	return DefaultName
}

// DisplayRole is the user's target role, or "ML Student".
func (w *Widget) DisplayRole() string {
	if u := w.User(); u != nil && u.TargetRole != "" {
		return u.TargetRole
	}
	return DefaultRole
}

// Initials returns up to two upper-cased initials of a name, or a placeholder glyph
// when the name is empty.
func Initials(name string) string {
	if name == "" {
		return AnonymousGlyph
	}
	var out []rune
	for _, part := range strings.Split(name, " ") {
		for _, r := range part {
			out = append(out, unicode.ToUpper(r))
			break
		}
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
