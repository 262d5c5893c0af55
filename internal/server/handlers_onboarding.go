package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/careerpath/internal/onboarding"
	"github.com/jonathan/careerpath/internal/server/middleware"
	"github.com/jonathan/careerpath/internal/types"
)

const msgOnboardingSaved = "Onboarding data saved successfully"

var requestValidator = validator.New()

// handleOnboarding handles POST /api/onboarding. The authenticated user may only save
// their own result; interests and career matches must come from the catalog.
func (s *Server) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req types.OnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		onboardingResponse(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}
	if err := requestValidator.Struct(req); err != nil {
		onboardingResponse(w, http.StatusBadRequest, false, extractValidationErrors(err))
		return
	}
	if req.UserID != userID {
		onboardingResponse(w, http.StatusForbidden, false, "Forbidden")
		return
	}
	for _, in := range req.Interests {
		if !s.catalog.IsInterest(in) {
			onboardingResponse(w, http.StatusBadRequest, false, fmt.Sprintf("unknown interest %q", in))
			return
		}
	}
	for _, title := range req.CareerMatches {
		if _, ok := s.catalog.Career(title); !ok {
			onboardingResponse(w, http.StatusBadRequest, false, fmt.Sprintf("unknown career %q", title))
			return
		}
	}

	targetRole := onboarding.DefaultRole
	if len(req.CareerMatches) > 0 {
		targetRole = req.CareerMatches[0]
	}

	err = s.userService.CompleteOnboarding(r.Context(), userID, req.Interests, req.CareerMatches, targetRole)
	if err != nil {
		var nf *ErrUserNotFound
		if errors.As(err, &nf) {
			onboardingResponse(w, http.StatusNotFound, false, "User data not found")
			return
		}
		s.logger.Error("failed to save onboarding", zap.String("user_id", userID.String()), zap.Error(err))
		onboardingResponse(w, http.StatusInternalServerError, false, "Failed to save onboarding data")
		return
	}

	onboardingResponse(w, http.StatusOK, true, msgOnboardingSaved)
}

// handleGetOnboarding handles GET /api/onboarding: the caller's latest saved quiz result.
func (s *Server) handleGetOnboarding(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	result, err := s.userService.LatestOnboarding(r.Context(), userID)
	if err != nil {
		s.logger.Error("failed to load onboarding", zap.String("user_id", userID.String()), zap.Error(err))
		errorResponse(w, http.StatusInternalServerError, "Failed to load onboarding data")
		return
	}
	if result == nil {
		errorResponse(w, http.StatusNotFound, "No onboarding data")
		return
	}
	jsonResponse(w, http.StatusOK, result)
}

func onboardingResponse(w http.ResponseWriter, status int, success bool, message string) {
	jsonResponse(w, status, types.OnboardingResponse{Success: success, Message: message})
}
