// Package onboarding implements the interest quiz: select interests, review matched
// careers, then persist the result for a signed-in user or stage it for a guest.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/careerpath/internal/events"
	"github.com/jonathan/careerpath/internal/matching"
	"github.com/jonathan/careerpath/internal/types"
)

// State is a step of the onboarding flow.
type State int

// Flow states. Persisting and Redirecting are entered by Submit; Done is terminal.
const (
	SelectingInterests State = iota
	ReviewingMatches
	Persisting
	Redirecting
	Done
)

func (s State) String() string {
	switch s {
	case SelectingInterests:
		return "selecting_interests"
	case ReviewingMatches:
		return "reviewing_matches"
	case Persisting:
		return "persisting"
	case Redirecting:
		return "redirecting"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Destinations and timings used by the terminal transition.
const (
	DashboardPath    = "/dashboard"
	RegisterPath     = "/auth/register?from=onboarding"
	FailureRedirect  = 3 * time.Second
	DefaultRole      = "ML Student"
	SelectionHint    = "Select 2-3 areas that interest you most. We'll suggest the best ML career paths for you."
	msgSaveFailed    = "Failed to save onboarding data"
	msgUserNotFound  = "User data not found"
	msgStagingFailed = "Failed to save your data. Please try again."
)

var (
	// ErrNoInterests is returned by Advance when nothing is selected.
	ErrNoInterests = errors.New("select at least one interest")
	// ErrUnknownInterest is returned by Toggle for labels outside the interest catalog.
	ErrUnknownInterest = errors.New("unknown interest")
	// ErrWrongState is returned when an operation is not valid in the current state.
	ErrWrongState = errors.New("operation not valid in current onboarding state")
)

// Session reports the signed-in user. found is false for guests.
type Session interface {
	User(ctx context.Context) (user *types.User, found bool, err error)
}

// Persister saves a signed-in user's onboarding result.
type Persister interface {
	SaveOnboarding(ctx context.Context, req types.OnboardingRequest) (*types.OnboardingResponse, error)
}

// Staging holds guest results and the stored user record.
type Staging interface {
	StageGuest(ctx context.Context, g types.GuestOnboarding) error
	ClearGuest(ctx context.Context) error
	SetUser(ctx context.Context, u *types.User) error
}

// Outcome describes where the flow sends the user after Submit.
type Outcome struct {
	Destination string
	// Message is a user-visible error; empty on success.
	Message string
	// RedirectAfter delays navigation so Message can be read.
	RedirectAfter time.Duration
	// Guest is true when results were staged instead of saved.
	Guest bool
	Err   error
}

// Deps are the collaborators of a Flow.
type Deps struct {
	Scorer    *matching.Scorer
	Interests []string
	Session   Session
	Persister Persister
	Staging   Staging
	Bus       *events.Bus
	Logger    *zap.Logger
	Clock     func() time.Time
}

// Flow is the onboarding state machine. It is not safe for concurrent use.
type Flow struct {
	deps     Deps
	known    map[string]bool
	selected []string
	matches  []types.ScoredCareer
	state    State
	lastErr  string
	outcome  *Outcome
}

// New creates a Flow in SelectingInterests.
func New(deps Deps) *Flow {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	known := make(map[string]bool, len(deps.Interests))
	for _, in := range deps.Interests {
		known[in] = true
	}
	return &Flow{deps: deps, known: known}
}

// Start drops stale guest data when a user is already signed in.
func (f *Flow) Start(ctx context.Context) {
	user, found, err := f.deps.Session.User(ctx)
	if err != nil {
		f.deps.Logger.Warn("session lookup failed", zap.Error(err))
		return
	}
	if found && user != nil && f.deps.Staging != nil {
		if err := f.deps.Staging.ClearGuest(ctx); err != nil {
			f.deps.Logger.Warn("failed to clear guest onboarding", zap.Error(err))
		}
	}
}

// State returns the current state.
func (f *Flow) State() State { return f.state }

// Interests returns the selectable interests in display order.
func (f *Flow) Interests() []string {
	return append([]string(nil), f.deps.Interests...)
}

// Selected returns the selection in the order interests were picked.
func (f *Flow) Selected() []string {
	return append([]string(nil), f.selected...)
}

// IsSelected reports whether interest is in the selection.
func (f *Flow) IsSelected(interest string) bool {
	for _, s := range f.selected {
		if s == interest {
			return true
		}
	}
	return false
}

// Error returns the last user-visible error message.
func (f *Flow) Error() string { return f.lastErr }

// Toggle adds interest to the selection, or removes it if already present.
func (f *Flow) Toggle(interest string) error {
	if f.state != SelectingInterests {
		return ErrWrongState
	}
	if !f.known[interest] {
		return fmt.Errorf("%w: %q", ErrUnknownInterest, interest)
	}
	f.lastErr = ""
	for i, s := range f.selected {
		if s == interest {
			f.selected = append(f.selected[:i:i], f.selected[i+1:]...)
			return nil
		}
	}
	f.selected = append(f.selected, interest)
	return nil
}

// CanAdvance reports whether Advance would succeed.
func (f *Flow) CanAdvance() bool {
	return f.state == SelectingInterests && len(f.selected) > 0
}

// Advance scores the selection and moves to ReviewingMatches.
func (f *Flow) Advance() error {
	if f.state != SelectingInterests {
		return ErrWrongState
	}
	if len(f.selected) == 0 {
		return ErrNoInterests
	}
	f.matches = f.deps.Scorer.Match(f.selected)
	f.state = ReviewingMatches
	return nil
}

// Back returns to SelectingInterests keeping the selection.
func (f *Flow) Back() error {
	if f.state != ReviewingMatches {
		return ErrWrongState
	}
	f.matches = nil
	f.state = SelectingInterests
	return nil
}

// Matches returns the careers computed on the last Advance.
func (f *Flow) Matches() []types.ScoredCareer {
	out := make([]types.ScoredCareer, len(f.matches))
	for i, m := range f.matches {
		out[i] = types.ScoredCareer{Career: m.Clone(), Score: m.Score}
	}
	return out
}

// Outcome returns the result of Submit, or nil before it has run.
func (f *Flow) Outcome() *Outcome { return f.outcome }

// Submit finishes the flow. A signed-in user's result is sent to the Persister;
// a guest's result is staged locally. Persistence failures never strand the user:
// the outcome still points at the dashboard, after FailureRedirect.
// The returned error is non-nil only when Submit is called out of order.
func (f *Flow) Submit(ctx context.Context) (Outcome, error) {
	if f.state != ReviewingMatches {
		return Outcome{}, ErrWrongState
	}
	f.lastErr = ""

	user, found, err := f.deps.Session.User(ctx)
	if err != nil {
		f.deps.Logger.Warn("session lookup failed, continuing as guest", zap.Error(err))
		found = false
	}

	var out Outcome
	if found {
		f.state = Persisting
		out = f.persist(ctx, user)
	} else {
		f.state = Redirecting
		out = f.stage(ctx)
	}

	if out.Err != nil {
		f.lastErr = out.Message
		f.deps.Logger.Error("error saving onboarding", zap.Error(out.Err))
	}
	f.state = Done
	f.outcome = &out
	return out, nil
}

func (f *Flow) persist(ctx context.Context, user *types.User) Outcome {
	if user == nil || user.ID == uuid.Nil {
		return failure(errors.New(msgUserNotFound), msgUserNotFound)
	}

	titles := matching.Titles(f.matches)
	req := types.OnboardingRequest{
		UserID:        user.ID,
		Interests:     f.Selected(),
		CareerMatches: titles,
	}

	resp, err := f.deps.Persister.SaveOnboarding(ctx, req)
	if err != nil {
		msg := msgSaveFailed
		var se *SaveError
		if errors.As(err, &se) && se.Message != "" {
			msg = se.Message
		}
		return failure(err, msg)
	}
	if resp == nil || !resp.Success {
		msg := msgSaveFailed
		if resp != nil && resp.Message != "" {
			msg = resp.Message
		}
		return failure(errors.New(msg), msg)
	}

	updated := *user
	updated.HasCompletedOnboarding = true
	updated.TargetRole = DefaultRole
	if len(titles) > 0 {
		updated.TargetRole = titles[0]
	}
	if f.deps.Staging != nil {
		if err := f.deps.Staging.SetUser(ctx, &updated); err != nil {
			f.deps.Logger.Warn("failed to store updated user", zap.Error(err))
		}
	}
	if f.deps.Bus != nil {
		f.deps.Bus.Publish(types.AuthChange{Action: types.AuthUpdate, User: &updated})
	}
	f.deps.Logger.Info("onboarding saved",
		zap.String("user_id", user.ID.String()),
		zap.String("target_role", updated.TargetRole),
		zap.Int("interests", len(req.Interests)))

	return Outcome{Destination: DashboardPath}
}

func (f *Flow) stage(ctx context.Context) Outcome {
	g := types.GuestOnboarding{
		SelectedInterests: f.Selected(),
		MatchingCareers:   f.Matches(),
		CompletedAt:       f.deps.Clock().UTC(),
	}
	if f.deps.Staging == nil {
		return failure(errors.New("no staging area configured"), msgStagingFailed)
	}
	if err := f.deps.Staging.StageGuest(ctx, g); err != nil {
		return failure(err, msgStagingFailed)
	}
	return Outcome{Destination: RegisterPath, Guest: true}
}

func failure(err error, msg string) Outcome {
	return Outcome{
		Destination:   DashboardPath,
		Message:       msg,
		RedirectAfter: FailureRedirect,
		Err:           err,
	}
}

// SaveError is returned by a Persister when the server rejected the request.
// Message is the server's explanation, shown to the user when present.
type SaveError struct {
	StatusCode int
	Message    string
}

func (e *SaveError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("onboarding save failed (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("onboarding save failed (%d)", e.StatusCode)
}

// MatchBadge renders the interest-match label shown next to a career, or "" for zero.
func MatchBadge(score int) string {
	switch {
	case score <= 0:
		return ""
	case score == 1:
		return "1 interest match"
	default:
		return fmt.Sprintf("%d interest matches", score)
	}
}
