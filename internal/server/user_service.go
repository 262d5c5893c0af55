package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/careerpath/internal/config"
	"github.com/jonathan/careerpath/internal/db"
	"github.com/jonathan/careerpath/internal/types"
)

// DBClient is the persistence the server needs. *db.DB implements it.
type DBClient interface {
	CreateUser(ctx context.Context, name, email string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	SaveOnboarding(ctx context.Context, userID uuid.UUID, interests, careerMatches []string, targetRole string) (*db.OnboardingRecord, error)
	LatestOnboarding(ctx context.Context, userID uuid.UUID) (*db.OnboardingRecord, error)
}

var _ DBClient = (*db.DB)(nil)

// UserService provides account and onboarding operations.
type UserService struct {
	db             DBClient
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(db DBClient, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		db:             db,
		passwordConfig: passwordConfig,
	}
}

// toTypesUser converts db.User to types.User, dropping the password hash.
func toTypesUser(u *db.User) *types.User {
	if u == nil {
		return nil
	}
	return &types.User{
		ID:                     u.ID,
		Email:                  u.Email,
		Name:                   u.Name,
		TargetRole:             u.TargetRole,
		HasCompletedOnboarding: u.HasCompletedOnboarding,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}
}

// Register creates a new user with password authentication
func (s *UserService) Register(ctx context.Context, req *types.CreateUserRequest) (*types.User, error) {
	exists, err := s.db.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, &ErrValidation{Field: "password", Message: err.Error()}
	}

	userID, err := s.db.CreateUser(ctx, req.Name, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.db.UpdatePassword(ctx, userID, passwordHash); err != nil {
		_ = s.db.DeleteUser(ctx, userID)
		return nil, fmt.Errorf("failed to set password: %w", err)
	}

	dbUser, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created user: %w", err)
	}
	if dbUser == nil {
		return nil, fmt.Errorf("created user not found: %s", userID)
	}
	return toTypesUser(dbUser), nil
}

// Login authenticates a user and returns user data
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	dbUser, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Unknown email and wrong password are indistinguishable to the caller.
	if dbUser == nil || !dbUser.PasswordSet {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, dbUser.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return toTypesUser(dbUser), nil
}

// Get returns the user with id.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*types.User, error) {
	dbUser, err := s.db.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if dbUser == nil {
		return nil, &ErrUserNotFound{UserID: id}
	}
	return toTypesUser(dbUser), nil
}

// CompleteOnboarding stores a quiz result and marks the user onboarded with targetRole.
func (s *UserService) CompleteOnboarding(ctx context.Context, userID uuid.UUID, interests, careerMatches []string, targetRole string) error {
	_, err := s.db.SaveOnboarding(ctx, userID, interests, careerMatches, targetRole)
	if errors.Is(err, db.ErrUserNotFound) {
		return &ErrUserNotFound{UserID: userID}
	}
	if err != nil {
		return fmt.Errorf("failed to save onboarding: %w", err)
	}
	return nil
}

// LatestOnboarding returns the user's most recent quiz result, or nil if they never saved one.
func (s *UserService) LatestOnboarding(ctx context.Context, userID uuid.UUID) (*types.OnboardingResult, error) {
	rec, err := s.db.LatestOnboarding(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get onboarding: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	return &types.OnboardingResult{
		Interests:     append([]string{}, rec.Interests...),
		CareerMatches: append([]string{}, rec.CareerMatches...),
		CompletedAt:   rec.CreatedAt,
	}, nil
}
