// Package client talks to the careerpath backend: the session endpoints used by the
// profile widget and the onboarding save used by the quiz.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/careerpath/internal/onboarding"
	"github.com/jonathan/careerpath/internal/types"
)

// DefaultTimeout bounds every request unless the caller's HTTP client says otherwise.
const DefaultTimeout = 15 * time.Second

// Endpoint paths relative to the base URL.
const (
	PathMe         = "/api/auth/me"
	PathLogout     = "/api/auth/logout"
	PathOnboarding = "/api/onboarding"
)

// ErrUnauthorized is returned by Me when there is no valid session.
var ErrUnauthorized = errors.New("not authenticated")

// Error describes a failed request that did not produce a usable response.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// API is an HTTP client for the backend. Token, when set, is sent as a Bearer credential;
// otherwise the session cookie held by HTTPClient's jar is used.
type API struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// New creates an API client for baseURL with a default timeout.
func New(baseURL string, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		Logger:     logger,
	}
}

// Me returns the signed-in user. A 401 yields ErrUnauthorized.
func (a *API) Me(ctx context.Context) (*types.User, error) {
	resp, body, err := a.do(ctx, http.MethodGet, PathMe, nil)
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		return nil, &Error{Method: http.MethodGet, Path: PathMe, StatusCode: resp.StatusCode, Message: serverMessage(body)}
	}

	var user types.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, &Error{Method: http.MethodGet, Path: PathMe, Message: "failed to decode user", Cause: err}
	}
	return &user, nil
}

// Logout ends the server session.
func (a *API) Logout(ctx context.Context) error {
	resp, body, err := a.do(ctx, http.MethodPost, PathLogout, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Method: http.MethodPost, Path: PathLogout, StatusCode: resp.StatusCode, Message: serverMessage(body)}
	}
	return nil
}

// SaveOnboarding posts a quiz result. A non-2xx reply or success=false is returned as an
// *onboarding.SaveError carrying the server's message.
func (a *API) SaveOnboarding(ctx context.Context, req types.OnboardingRequest) (*types.OnboardingResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode onboarding request: %w", err)
	}
	resp, body, err := a.do(ctx, http.MethodPost, PathOnboarding, payload)
	if err != nil {
		return nil, err
	}

	var out types.OnboardingResponse
	decodeErr := json.Unmarshal(body, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &onboarding.SaveError{StatusCode: resp.StatusCode, Message: serverMessage(body)}
	}
	if decodeErr != nil {
		return nil, &Error{Method: http.MethodPost, Path: PathOnboarding, Message: "failed to decode response", Cause: decodeErr}
	}
	if !out.Success {
		return nil, &onboarding.SaveError{StatusCode: resp.StatusCode, Message: out.Message}
	}
	return &out, nil
}

func (a *API) do(ctx context.Context, method, path string, payload []byte) (*http.Response, []byte, error) {
	endpoint, err := url.JoinPath(a.BaseURL, path)
	if err != nil {
		return nil, nil, &Error{Method: method, Path: path, Message: "invalid base URL", Cause: err}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, nil, &Error{Method: method, Path: path, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if a.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.Token)
	}

	httpClient := a.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, nil, &Error{Method: method, Path: path, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &Error{Method: method, Path: path, StatusCode: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}
	a.logger().Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)
	return resp, data, nil
}

func (a *API) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// serverMessage pulls "message" or "error" out of a JSON error body.
func serverMessage(body []byte) string {
	var v struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return strings.TrimSpace(string(body))
	}
	if v.Message != "" {
		return v.Message
	}
	return v.Error
}
