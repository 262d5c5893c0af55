package assistant

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/jonathan/careerpath/internal/prompts"
	"github.com/jonathan/careerpath/internal/types"
)

// DefaultDelay is how long the scripted assistant "thinks" before replying.
const DefaultDelay = 1500 * time.Millisecond

// cannedReplies are the scripted chat answers.
var cannedReplies = []string{
	"That's a great question! For your resume summary, try to focus on quantifiable achievements and specific technologies you're proficient in.",
	"I'd recommend using action verbs like 'developed', 'implemented', 'optimized' to start your bullet points in the experience section.",
	"Consider adding metrics to your achievements. Instead of 'improved performance', try 'improved application performance by 40% through code optimization'.",
	"Make sure to include relevant keywords from the job description you're targeting. This helps with ATS (Applicant Tracking Systems).",
	"Your skills section looks good! Consider categorizing them into 'Technical Skills', 'Soft Skills', and 'Tools & Technologies' for better organization.",
}

// CannedReplies returns the scripted chat answers.
func CannedReplies() []string {
	return append([]string(nil), cannedReplies...)
}

// Scripted answers chat with a randomly chosen canned reply after a fixed delay.
type Scripted struct {
	// Pick returns an index in [0, n). Defaults to math/rand/v2.IntN.
	Pick  func(n int) int
	Delay time.Duration
}

// NewScripted returns a Scripted provider with the default delay and random picker.
func NewScripted() *Scripted {
	return &Scripted{Pick: rand.IntN, Delay: DefaultDelay}
}

// Greeting implements ResponseProvider.
func (s *Scripted) Greeting() string {
	return prompts.Assistant(prompts.KeyGreeting)
}

// Reply implements ResponseProvider. The wait honours ctx cancellation.
func (s *Scripted) Reply(ctx context.Context, req ChatRequest) (string, error) {
	if strings.TrimSpace(req.Message) == "" {
		return "", ErrEmptyMessage
	}
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	pick := s.Pick
	if pick == nil {
		pick = rand.IntN
	}
	i := pick(len(cannedReplies))
	if i < 0 || i >= len(cannedReplies) {
		i = 0
	}
	return cannedReplies[i], nil
}

// StepTip implements ResponseProvider.
func (s *Scripted) StepTip(step int) string { return StepTip(step) }

// Feedback implements ResponseProvider.
func (s *Scripted) Feedback(r *types.Resume) string { return Feedback(r) }
