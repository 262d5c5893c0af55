package server

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/careerpath/internal/db"
)

// fakeDB is an in-memory DBClient.
type fakeDB struct {
	mu          sync.Mutex
	users       map[uuid.UUID]*db.User
	onboarding  []db.OnboardingRecord
	createErr   error
	passwordErr error
	saveErr     error
	latestErr   error
	deleted     []uuid.UUID
}

func newFakeDB() *fakeDB {
	return &fakeDB{users: make(map[uuid.UUID]*db.User)}
}

func (f *fakeDB) CreateUser(_ context.Context, name, email string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	id := uuid.New()
	now := time.Now()
	f.users[id] = &db.User{ID: id, Name: name, Email: strings.ToLower(email), CreatedAt: now, UpdatedAt: now}
	return id, nil
}

func (f *fakeDB) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeDB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := f.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (f *fakeDB) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.passwordErr != nil {
		return f.passwordErr
	}
	u, ok := f.users[id]
	if !ok {
		return db.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.PasswordSet = true
	return nil
}

func (f *fakeDB) DeleteUser(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeDB) SaveOnboarding(_ context.Context, userID uuid.UUID, interests, careerMatches []string, targetRole string) (*db.OnboardingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, db.ErrUserNotFound
	}
	u.TargetRole = targetRole
	u.HasCompletedOnboarding = true
	rec := db.OnboardingRecord{
		ID:            uuid.New(),
		UserID:        userID,
		Interests:     append(db.StringArray(nil), interests...),
		CareerMatches: append(db.StringArray(nil), careerMatches...),
		CreatedAt:     time.Now(),
	}
	f.onboarding = append(f.onboarding, rec)
	return &rec, nil
}

func (f *fakeDB) LatestOnboarding(_ context.Context, userID uuid.UUID) (*db.OnboardingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	for i := len(f.onboarding) - 1; i >= 0; i-- {
		if f.onboarding[i].UserID == userID {
			rec := f.onboarding[i]
			return &rec, nil
		}
	}
	return nil, nil
}

var errFakeDB = errors.New("fake db failure")
