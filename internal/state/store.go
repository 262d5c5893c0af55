// Package state is the client's application-state store. It encodes typed values as JSON
// on top of a storage.Port so the same code runs against memory or a device database.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/careerpath/internal/storage"
	"github.com/jonathan/careerpath/internal/types"
)

// Store reads and writes the well-known client state keys.
type Store struct {
	port   storage.Port
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New wraps port in a Store.
func New(port storage.Port, opts ...Option) *Store {
	s := &Store{port: port, logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Port exposes the underlying storage.
func (s *Store) Port() storage.Port {
	return s.port
}

func (s *Store) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.port.Set(ctx, key, data); err != nil {
		return err
	}
	s.logger.Debug("state written", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

// get decodes key into v. A missing key reports found=false without error.
func (s *Store) get(ctx context.Context, key string, v any) (bool, error) {
	data, err := s.port.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// SaveResume stores r under resume-{id}, assigning an id when it has none.
// Each save bumps the version counter and stamps LastUpdated. r is updated in place.
func (s *Store) SaveResume(ctx context.Context, r *types.Resume) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.Version++
	r.LastUpdated = s.now().UTC().Format(time.DateOnly)
	return s.put(ctx, storage.ResumeKey(r.ID), r)
}

// Resume loads a saved resume. found is false when no resume has that id.
func (s *Store) Resume(ctx context.Context, id string) (*types.Resume, bool, error) {
	r := types.NewResume()
	found, err := s.get(ctx, storage.ResumeKey(id), r)
	if err != nil || !found {
		return nil, found, err
	}
	return r, true, nil
}

// Resumes loads every saved resume ordered by key. The draft is not included.
func (s *Store) Resumes(ctx context.Context) ([]*types.Resume, error) {
	keys, err := s.port.Keys(ctx, storage.ResumeKey(""))
	if err != nil {
		return nil, err
	}
	var out []*types.Resume
	for _, k := range keys {
		if k == storage.KeyDraft {
			continue
		}
		r, found, err := s.Resume(ctx, strings.TrimPrefix(k, storage.ResumeKey("")))
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, r)
		}
	}
	return out, nil
}

// DeleteResume removes a saved resume.
func (s *Store) DeleteResume(ctx context.Context, id string) error {
	return s.port.Delete(ctx, storage.ResumeKey(id))
}

// SaveDraft stores the in-progress wizard resume.
func (s *Store) SaveDraft(ctx context.Context, r *types.Resume) error {
	return s.put(ctx, storage.KeyDraft, r)
}

// Draft loads the in-progress resume, if any.
func (s *Store) Draft(ctx context.Context) (*types.Resume, bool, error) {
	r := types.NewResume()
	found, err := s.get(ctx, storage.KeyDraft, r)
	if err != nil || !found {
		return nil, found, err
	}
	return r, true, nil
}

// StageGuest records a guest's onboarding result until they register.
func (s *Store) StageGuest(ctx context.Context, g types.GuestOnboarding) error {
	return s.put(ctx, storage.KeyGuestOnboarding, g)
}

// Guest loads the staged guest onboarding record.
func (s *Store) Guest(ctx context.Context) (*types.GuestOnboarding, bool, error) {
	var g types.GuestOnboarding
	found, err := s.get(ctx, storage.KeyGuestOnboarding, &g)
	if err != nil || !found {
		return nil, found, err
	}
	return &g, true, nil
}

// ClearGuest removes the staged guest record.
func (s *Store) ClearGuest(ctx context.Context) error {
	return s.port.Delete(ctx, storage.KeyGuestOnboarding)
}

// SetUser stores the signed-in user.
func (s *Store) SetUser(ctx context.Context, u *types.User) error {
	return s.put(ctx, storage.KeyUser, u)
}

// User loads the stored user.
func (s *Store) User(ctx context.Context) (*types.User, bool, error) {
	var u types.User
	found, err := s.get(ctx, storage.KeyUser, &u)
	if err != nil || !found {
		return nil, found, err
	}
	return &u, true, nil
}

// ClearUser removes the stored user.
func (s *Store) ClearUser(ctx context.Context) error {
	return s.port.Delete(ctx, storage.KeyUser)
}
