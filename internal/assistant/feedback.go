package assistant

import (
	"fmt"
	"strings"

	"github.com/jonathan/careerpath/internal/types"
)

// Feedback builds the detailed review of a resume from fixed heuristics:
// contact completeness, summary length, skill count and which sections are filled.
func Feedback(r *types.Resume) string {
	if r == nil {
		r = types.NewResume()
	}
	info := r.PersonalInfo

	contact := "incomplete"
	if info.Name != "" && info.Email != "" {
		contact = "good"
	}
	portfolio := ""
	if info.Portfolio == "" {
		portfolio = "Consider adding a portfolio link to showcase your work."
	}

	summary := "too short"
	if len([]rune(r.Summary)) > 50 {
		summary = "good but could be more impactful"
	}

	skills := "Good variety of skills!"
	if len(r.Skills) < 5 {
		skills = "Consider adding more relevant skills for your target position."
	}

	experience := "Great job detailing your experience."
	if len(r.Experiences) == 0 {
		experience = "Add your work history to strengthen your resume."
	}

	education := "Consider adding your educational background."
	if len(r.Education) > 0 {
		education = "Your education section looks complete."
	}

	projects := "Adding projects can showcase your abilities."
	if len(r.Projects) > 0 {
		projects = "Projects help demonstrate practical skills."
	}

	parts := []string{
		fmt.Sprintf("Your contact information looks %s. %s", contact, portfolio),
		fmt.Sprintf("Your summary is %s. Try to include specific achievements and technologies.", summary),
		fmt.Sprintf("You have %d skills listed. %s", len(r.Skills), skills),
		fmt.Sprintf("You have %d work experiences. %s", len(r.Experiences), experience),
		education,
		projects,
	}

	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
