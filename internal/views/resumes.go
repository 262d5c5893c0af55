package views

import "github.com/jonathan/careerpath/internal/types"

// Resume statuses by score band.
const (
	StatusOptimized        = "optimized"
	StatusNeedsImprovement = "needs-improvement"
	StatusNeedsWork        = "needs-work"
)

// ResumeStatus classifies a resume score: 80 and up is optimized, 70 and up needs
// improvement, anything lower needs work.
func ResumeStatus(score int) string {
	switch {
	case score >= 80:
		return StatusOptimized
	case score >= 70:
		return StatusNeedsImprovement
	default:
		return StatusNeedsWork
	}
}

// ScoreColor is the color band used to render a score.
func ScoreColor(score int) string {
	switch {
	case score >= 80:
		return "green"
	case score >= 70:
		return "yellow"
	default:
		return "red"
	}
}

// SampleResumes are the example rows shown to new users.
func SampleResumes() []types.ResumeSummary {
	rows := []types.ResumeSummary{
		{ID: "1", Title: "Full Stack Developer Resume", Career: "Full Stack Developer", LastUpdated: "2 days ago", Score: 85, Version: 3},
		{ID: "2", Title: "Data Science Portfolio", Career: "Data Scientist", LastUpdated: "1 week ago", Score: 72, Version: 2},
		{ID: "3", Title: "Frontend Developer CV", Career: "Frontend Developer", LastUpdated: "3 weeks ago", Score: 65, Version: 1},
	}
	for i := range rows {
		rows[i].Status = ResumeStatus(rows[i].Score)
	}
	return rows
}

// ResumeList turns saved resumes into list rows. Untitled resumes are named after
// their target position.
func ResumeList(saved []*types.Resume) []types.ResumeSummary {
	rows := make([]types.ResumeSummary, 0, len(saved))
	for _, r := range saved {
		title := r.Title
		if title == "" {
			title = r.TargetPosition + " Resume"
		}
		if r.TargetPosition == "" && r.Title == "" {
			title = "Untitled Resume"
		}
		rows = append(rows, types.ResumeSummary{
			ID:          r.ID,
			Title:       title,
			Career:      r.TargetPosition,
			LastUpdated: r.LastUpdated,
			Score:       r.Score,
			Version:     r.Version,
			Status:      ResumeStatus(r.Score),
		})
	}
	return rows
}
