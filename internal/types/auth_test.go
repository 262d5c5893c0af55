//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequest_Validation(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name    string
		request CreateUserRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid request",
			request: CreateUserRequest{
				Name:     "Asha Rao",
				Email:    "asha@example.com",
				Password: "password123",
			},
		},
		{
			name: "missing name",
			request: CreateUserRequest{
				Email:    "asha@example.com",
				Password: "password123",
			},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name: "invalid email format",
			request: CreateUserRequest{
				Name:     "Asha Rao",
				Email:    "not-an-email",
				Password: "password123",
			},
			wantErr: true,
			errMsg:  "email",
		},
		{
			name: "password too short",
			request: CreateUserRequest{
				Name:     "Asha Rao",
				Email:    "asha@example.com",
				Password: "short",
			},
			wantErr: true,
			errMsg:  "min",
		},
		{
			name: "password exactly 8 characters",
			request: CreateUserRequest{
				Name:     "Asha Rao",
				Email:    "asha@example.com",
				Password: "12345678",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.request)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	req := &LoginRequest{Email: "asha@example.com", Password: "x"}
	assert.NoError(t, req.Validate())

	req = &LoginRequest{Email: "asha@example.com"}
	assert.Error(t, req.Validate())
}

func TestUser_JSONUsesSessionFieldNames(t *testing.T) {
	user := User{
		ID:                     uuid.New(),
		Email:                  "asha@example.com",
		Name:                   "Asha Rao",
		TargetRole:             "Data Scientist",
		HasCompletedOnboarding: true,
		CreatedAt:              time.Now().UTC(),
		UpdatedAt:              time.Now().UTC(),
	}

	data, err := json.Marshal(user)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Data Scientist", raw["targetRole"])
	assert.Equal(t, true, raw["hasCompletedOnboarding"])
	assert.Contains(t, raw, "createdAt")
}

func TestOnboardingRequest_Validation(t *testing.T) {
	validate := validator.New()

	valid := OnboardingRequest{
		UserID:        uuid.New(),
		Interests:     []string{"Natural language processing"},
		CareerMatches: []string{"NLP Engineer"},
	}
	assert.NoError(t, validate.Struct(valid))

	noInterests := valid
	noInterests.Interests = nil
	assert.Error(t, validate.Struct(noInterests))

	blankInterest := valid
	blankInterest.Interests = []string{""}
	assert.Error(t, validate.Struct(blankInterest))

	noUser := valid
	noUser.UserID = uuid.Nil
	assert.Error(t, validate.Struct(noUser))
}
