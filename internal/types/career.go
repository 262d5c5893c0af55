// Package types provides type definitions for structured data used throughout the careerpath system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Demand levels used by the career catalogs.
const (
	DemandLow      = "Low"
	DemandMedium   = "Medium"
	DemandHigh     = "High"
	DemandVeryHigh = "Very High"
)

// Career is a fixed catalog entry describing a job role and the interests it matches.
// Title is the unique key.
type Career struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	SalaryRange    string   `json:"salary"`
	Demand         string   `json:"demand"`
	Skills         []string `json:"skills"`
	GrowthRate     string   `json:"growth,omitempty"`
	MatchInterests []string `json:"matches"`
}

// Clone returns a deep copy so catalog entries can be handed out without exposing shared slices.
func (c Career) Clone() Career {
	out := c
	out.Skills = append([]string(nil), c.Skills...)
	out.MatchInterests = append([]string(nil), c.MatchInterests...)
	return out
}

// ScoredCareer is a Career annotated with the number of selected interests it matches.
type ScoredCareer struct {
	Career
	Score int `json:"score"`
}

// CareerPath is a presentation-catalog entry shown on the career detail pages.
type CareerPath struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	SalaryRange string   `json:"salary"`
	Demand      string   `json:"demand"`
	Skills      []string `json:"skills"`
	GrowthRate  string   `json:"growth"`
	Companies   []string `json:"companies"`
	Icon        string   `json:"icon,omitempty"`
}

// Clone returns a deep copy of the career path.
func (c CareerPath) Clone() CareerPath {
	out := c
	out.Skills = append([]string(nil), c.Skills...)
	out.Companies = append([]string(nil), c.Companies...)
	return out
}

// LearningModule is one block of a career's learning path.
type LearningModule struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Duration string   `json:"duration"`
	Progress int      `json:"progress"` // percent, 0-100
	Topics   []string `json:"topics"`
}

// PositionTemplate seeds the resume summary and skills when a target position is chosen.
type PositionTemplate struct {
	Position string   `json:"position"`
	Skills   []string `json:"skills"`
	Summary  string   `json:"summary"`
	Icon     string   `json:"icon,omitempty"`
}
