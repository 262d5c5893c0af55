//nolint:revive // types is a standard Go package name pattern
package types

// PersonalInfo holds the contact block of a resume.
type PersonalInfo struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Portfolio string `json:"portfolio"`
	LinkedIn  string `json:"linkedin"`
}

// Experience is a work history entry. Company and position are mandatory.
type Experience struct {
	Company      string   `json:"company" validate:"required"`
	Position     string   `json:"position" validate:"required"`
	Period       string   `json:"period"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

// Education is an academic entry. Institution and degree are mandatory.
type Education struct {
	Institution string `json:"institution" validate:"required"`
	Degree      string `json:"degree" validate:"required"`
	Period      string `json:"period"`
	GPA         string `json:"gpa"`
}

// Project is a portfolio entry. Name and description are mandatory.
type Project struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link"`
}

// Resume is the structured record edited by the resume builder.
// ID, Title, Score, LastUpdated and Version are only meaningful for saved resumes.
type Resume struct {
	ID             string       `json:"id,omitempty"`
	Title          string       `json:"title,omitempty"`
	PersonalInfo   PersonalInfo `json:"personalInfo"`
	TargetPosition string       `json:"targetPosition"`
	Summary        string       `json:"summary"`
	Skills         []string     `json:"skills"`
	Experiences    []Experience `json:"experiences"`
	Education      []Education  `json:"education"`
	Projects       []Project    `json:"projects"`
	LastUpdated    string       `json:"lastUpdated,omitempty"`
	Score          int          `json:"score,omitempty"`
	Version        int          `json:"version,omitempty"`
}

// NewResume returns an empty resume with non-nil lists so it serializes as [] rather than null.
func NewResume() *Resume {
	return &Resume{
		Skills:      []string{},
		Experiences: []Experience{},
		Education:   []Education{},
		Projects:    []Project{},
	}
}

// HasSkill reports whether skill is already listed (exact, case-sensitive match).
func (r *Resume) HasSkill(skill string) bool {
	for _, s := range r.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// DedupeSkills drops repeated skills in place, keeping the first occurrence of each.
// It reports whether anything was removed.
func (r *Resume) DedupeSkills() bool {
	seen := make(map[string]bool, len(r.Skills))
	kept := make([]string, 0, len(r.Skills))
	for _, s := range r.Skills {
		if seen[s] {
			continue
		}
		seen[s] = true
		kept = append(kept, s)
	}
	removed := len(kept) != len(r.Skills)
	r.Skills = kept
	return removed
}

// ResumeSummary is a row of the resume listing page.
type ResumeSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Career      string `json:"career"`
	LastUpdated string `json:"lastUpdated"`
	Score       int    `json:"score"`
	Version     int    `json:"version"`
	Status      string `json:"status"`
}
