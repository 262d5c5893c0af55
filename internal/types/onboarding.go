//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// GuestOnboarding is the staging record kept under the guestOnboarding storage key
// until the guest creates an account.
type GuestOnboarding struct {
	SelectedInterests []string       `json:"selectedInterests"`
	MatchingCareers   []ScoredCareer `json:"matchingCareers"`
	CompletedAt       time.Time      `json:"completedAt"`
}

// OnboardingRequest is the body of POST /api/onboarding.
type OnboardingRequest struct {
	UserID        uuid.UUID `json:"userId" validate:"required"`
	Interests     []string  `json:"interests" validate:"required,min=1,dive,required"`
	CareerMatches []string  `json:"careerMatches" validate:"dive,required"`
}

// OnboardingResponse is the reply of POST /api/onboarding.
type OnboardingResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// OnboardingResult is the reply of GET /api/onboarding: the user's latest saved quiz.
type OnboardingResult struct {
	Interests     []string  `json:"interests"`
	CareerMatches []string  `json:"careerMatches"`
	CompletedAt   time.Time `json:"completedAt"`
}
