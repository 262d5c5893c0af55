// Package wizard implements the seven-step resume builder.
package wizard

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/careerpath/internal/export"
	"github.com/jonathan/careerpath/internal/types"
)

// Step describes one page of the wizard.
type Step struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Step numbers.
const (
	StepPosition = iota + 1
	StepPersonalInfo
	StepSummary
	StepSkills
	StepExperience
	StepEducation
	StepProjects
)

// Steps lists the wizard pages in order.
var Steps = []Step{
	{StepPosition, "Position", "Set your career target"},
	{StepPersonalInfo, "Personal Info", "Basic contact information"},
	{StepSummary, "Summary", "Your professional pitch"},
	{StepSkills, "Skills", "Technical and soft skills"},
	{StepExperience, "Experience", "Work history and achievements"},
	{StepEducation, "Education", "Academic background"},
	{StepProjects, "Projects", "Portfolio showcase"},
}

// LastStep is the final step number.
const LastStep = StepProjects

// SummaryLimit is the advisory summary length shown next to the editor.
const SummaryLimit = 500

// ErrNoExporter is returned by Primary on the last step when no exporter is configured.
var ErrNoExporter = errors.New("no exporter configured")

// Templates supplies per-role seed data.
type Templates interface {
	Template(position string) (types.PositionTemplate, bool)
}

// Tipper supplies per-step guidance.
type Tipper interface {
	StepTip(step int) string
}

// Exporter produces the final document.
type Exporter interface {
	Export(ctx context.Context, r *types.Resume) (*export.Result, error)
}

// DraftSaver persists the in-progress resume.
type DraftSaver interface {
	SaveDraft(ctx context.Context, r *types.Resume) error
}

// Deps are the wizard's collaborators. Only Templates is required.
type Deps struct {
	Templates Templates
	Tips      Tipper
	Exporter  Exporter
	Drafts    DraftSaver
	Logger    *zap.Logger
}

// Wizard holds a resume being built and the step cursor.
// It is not safe for concurrent use.
type Wizard struct {
	deps     Deps
	resume   *types.Resume
	step     int
	validate *validator.Validate
}

// New starts a wizard at step 1 with an empty resume.
func New(deps Deps) *Wizard {
	return FromResume(deps, types.NewResume())
}

// FromResume continues editing a copy of r, for example a loaded draft.
// Repeated skills in r are dropped.
func FromResume(deps Deps, r *types.Resume) *Wizard {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if r == nil {
		r = types.NewResume()
	}
	r = cloneResume(r)
	if r.DedupeSkills() {
		deps.Logger.Debug("dropped duplicate skills from loaded resume")
	}
	return &Wizard{
		deps:     deps,
		resume:   r,
		step:     StepPosition,
		validate: validator.New(),
	}
}

// Step returns the current step number.
func (w *Wizard) Step() int { return w.step }

// Current returns the current step descriptor.
func (w *Wizard) Current() Step { return Steps[w.step-1] }

// Data returns a copy of the resume being edited.
func (w *Wizard) Data() *types.Resume {
	return cloneResume(w.resume)
}

// Progress is the position of the cursor along the step bar, 0 to 100.
func (w *Wizard) Progress() float64 {
	return float64(w.step-1) / float64(LastStep-1) * 100
}

// Next moves forward one step, stopping at the last step.
func (w *Wizard) Next() { w.GoTo(w.step + 1) }

// Previous moves back one step, stopping at the first step.
func (w *Wizard) Previous() { w.GoTo(w.step - 1) }

// GoTo jumps to step n, clamped to the valid range.
func (w *Wizard) GoTo(n int) {
	w.step = min(max(n, StepPosition), LastStep)
}

// PrimaryLabel is the caption of the forward button on the current step.
func (w *Wizard) PrimaryLabel() string {
	if w.step == LastStep {
		return "Finish & Generate PDF"
	}
	return "Next Step"
}

// Primary advances to the next step, or exports the resume on the last step.
// The result is nil unless an export ran.
func (w *Wizard) Primary(ctx context.Context) (*export.Result, error) {
	if w.step < LastStep {
		w.Next()
		return nil, nil
	}
	return w.Export(ctx)
}

// Export renders the current resume through the configured exporter.
func (w *Wizard) Export(ctx context.Context) (*export.Result, error) {
	if w.deps.Exporter == nil {
		return nil, ErrNoExporter
	}
	return w.deps.Exporter.Export(ctx, w.Data())
}

// Suggestion returns the guidance tip for the current step.
func (w *Wizard) Suggestion() string {
	if w.deps.Tips == nil {
		return ""
	}
	return w.deps.Tips.StepTip(w.step)
}

// SaveDraft persists the current resume as the draft.
func (w *Wizard) SaveDraft(ctx context.Context) error {
	if w.deps.Drafts == nil {
		return errors.New("no draft store configured")
	}
	if err := w.deps.Drafts.SaveDraft(ctx, w.Data()); err != nil {
		w.deps.Logger.Error("failed to save draft", zap.Error(err))
		return err
	}
	w.deps.Logger.Info("draft saved", zap.Int("step", w.step))
	return nil
}

// SelectPosition sets the target position and replaces the summary and skills with the
// role's template, then moves to step 2. Roles without a template clear both fields.
func (w *Wizard) SelectPosition(position string) {
	tpl, ok := w.deps.Templates.Template(position)
	w.resume.TargetPosition = position
	if ok {
		w.resume.Skills = append([]string{}, tpl.Skills...)
		w.resume.Summary = tpl.Summary
	} else {
		w.resume.Skills = []string{}
		w.resume.Summary = ""
	}
	w.GoTo(StepPersonalInfo)
}

// SetPersonalInfo replaces the contact block.
func (w *Wizard) SetPersonalInfo(info types.PersonalInfo) {
	w.resume.PersonalInfo = info
}

// SetSummary replaces the summary text.
func (w *Wizard) SetSummary(summary string) {
	w.resume.Summary = summary
}

// AddSkill appends a trimmed skill. Blank and duplicate skills are ignored.
// It reports whether the list changed.
func (w *Wizard) AddSkill(skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" || w.resume.HasSkill(skill) {
		return false
	}
	w.resume.Skills = append(w.resume.Skills, skill)
	return true
}

// RemoveSkill removes every occurrence of skill.
func (w *Wizard) RemoveSkill(skill string) {
	kept := w.resume.Skills[:0]
	for _, s := range w.resume.Skills {
		if s != skill {
			kept = append(kept, s)
		}
	}
	w.resume.Skills = kept
}

// AddExperience appends e if company and position are set.
func (w *Wizard) AddExperience(e types.Experience) bool {
	if w.validate.Struct(e) != nil {
		return false
	}
	e.Achievements = append([]string{}, e.Achievements...)
	w.resume.Experiences = append(w.resume.Experiences, e)
	return true
}

// RemoveExperience removes the entry at index i; out-of-range indexes are ignored.
func (w *Wizard) RemoveExperience(i int) {
	w.resume.Experiences = removeAt(w.resume.Experiences, i)
}

// AddEducation appends e if institution and degree are set.
func (w *Wizard) AddEducation(e types.Education) bool {
	if w.validate.Struct(e) != nil {
		return false
	}
	w.resume.Education = append(w.resume.Education, e)
	return true
}

// RemoveEducation removes the entry at index i; out-of-range indexes are ignored.
func (w *Wizard) RemoveEducation(i int) {
	w.resume.Education = removeAt(w.resume.Education, i)
}

// AddProject appends p if name and description are set.
func (w *Wizard) AddProject(p types.Project) bool {
	if w.validate.Struct(p) != nil {
		return false
	}
	p.Technologies = append([]string{}, p.Technologies...)
	w.resume.Projects = append(w.resume.Projects, p)
	return true
}

// RemoveProject removes the entry at index i; out-of-range indexes are ignored.
func (w *Wizard) RemoveProject(i int) {
	w.resume.Projects = removeAt(w.resume.Projects, i)
}

// ParseTechnologies splits a comma-separated technology list, dropping blanks.
func ParseTechnologies(s string) []string {
	out := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func removeAt[T any](list []T, i int) []T {
	if i < 0 || i >= len(list) {
		return list
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

func cloneResume(r *types.Resume) *types.Resume {
	out := *r
	out.Skills = append([]string{}, r.Skills...)
	out.Experiences = make([]types.Experience, len(r.Experiences))
	for i, e := range r.Experiences {
		e.Achievements = append([]string{}, e.Achievements...)
		out.Experiences[i] = e
	}
	out.Education = append([]types.Education{}, r.Education...)
	out.Projects = make([]types.Project, len(r.Projects))
	for i, p := range r.Projects {
		p.Technologies = append([]string{}, p.Technologies...)
		out.Projects[i] = p
	}
	return &out
}
