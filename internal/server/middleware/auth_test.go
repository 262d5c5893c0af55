package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTokenValidator struct {
	validTokens map[string]uuid.UUID
}

func (v *testTokenValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	userID, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return testClaims(userID), nil
}

type testClaims uuid.UUID

func (c testClaims) GetUserID() uuid.UUID { return uuid.UUID(c) }

func protected(t *testing.T, v TokenValidator) (http.Handler, *uuid.UUID) {
	t.Helper()
	var seen uuid.UUID
	h := AuthMiddleware(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserID(r)
		require.NoError(t, err)
		seen = id
		w.WriteHeader(http.StatusNoContent)
	}))
	return h, &seen
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	v := &testTokenValidator{validTokens: map[string]uuid.UUID{"good": userID}}

	tests := []struct {
		name   string
		setup  func(*http.Request)
		status int
	}{
		{name: "bearer", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") }, status: http.StatusNoContent},
		{name: "lower-case scheme", setup: func(r *http.Request) { r.Header.Set("Authorization", "bearer good") }, status: http.StatusNoContent},
		{name: "cookie", setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: CookieName, Value: "good"}) }, status: http.StatusNoContent},
		{name: "nothing", setup: func(*http.Request) {}, status: http.StatusUnauthorized},
		{name: "wrong scheme", setup: func(r *http.Request) { r.Header.Set("Authorization", "Basic good") }, status: http.StatusUnauthorized},
		{name: "extra parts", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer good extra") }, status: http.StatusUnauthorized},
		{name: "invalid token", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer bad") }, status: http.StatusUnauthorized},
		{
			name: "malformed header wins over cookie",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Token good")
				r.AddCookie(&http.Cookie{Name: CookieName, Value: "good"})
			},
			status: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, seen := protected(t, v)
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusNoContent {
				assert.Equal(t, userID, *seen)
			} else {
				assert.JSONEq(t, `{"error":"Not authenticated"}`, rec.Body.String())
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()
	v := &testTokenValidator{validTokens: map[string]uuid.UUID{"good": userID}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := Authenticate(v, req)
	assert.False(t, ok)

	req.Header.Set("Authorization", "Bearer good")
	id, ok := Authenticate(v, req)
	assert.True(t, ok)
	assert.Equal(t, userID, id)
}

func TestGetUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetUserID(req)
	assert.Error(t, err)

	id := uuid.New()
	req = req.WithContext(WithUserID(context.Background(), id))
	got, err := GetUserID(req)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	req = req.WithContext(context.WithValue(context.Background(), userIDKey, "not-a-uuid"))
	_, err = GetUserID(req)
	assert.Error(t, err)
}
