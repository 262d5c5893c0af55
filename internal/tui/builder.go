package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/careerpath/internal/export"
	"github.com/jonathan/careerpath/internal/types"
	"github.com/jonathan/careerpath/internal/wizard"
)

var (
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 0, 0, 2)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Padding(1, 0, 0, 2)
)

const progressWidth = 20

// exportedMsg carries the result of the final wizard step.
type exportedMsg struct {
	result *export.Result
	err    error
}

// form is the text entry for one wizard step. Record forms collect one entry per pass
// and move on when the first field is submitted empty; the others apply once and advance.
type form struct {
	fields     []string
	records    bool
	current    func(r *types.Resume) []string
	entries    func(r *types.Resume) []string
	apply      func(w *wizard.Wizard, v []string) bool
	removeLast func(w *wizard.Wizard, r *types.Resume)
}

var forms = map[int]form{
	wizard.StepPersonalInfo: {
		fields: []string{"Full name", "Email", "Phone", "Location", "Portfolio", "LinkedIn"},
		current: func(r *types.Resume) []string {
			p := r.PersonalInfo
			return []string{p.Name, p.Email, p.Phone, p.Location, p.Portfolio, p.LinkedIn}
		},
		apply: func(w *wizard.Wizard, v []string) bool {
			w.SetPersonalInfo(types.PersonalInfo{
				Name:      v[0],
				Email:     v[1],
				Phone:     v[2],
				Location:  v[3],
				Portfolio: v[4],
				LinkedIn:  v[5],
			})
			return true
		},
	},
	wizard.StepSummary: {
		fields:  []string{"Professional summary"},
		current: func(r *types.Resume) []string { return []string{r.Summary} },
		apply: func(w *wizard.Wizard, v []string) bool {
			w.SetSummary(v[0])
			return true
		},
	},
	wizard.StepSkills: {
		fields:  []string{"Skill"},
		records: true,
		entries: func(r *types.Resume) []string { return r.Skills },
		apply:   func(w *wizard.Wizard, v []string) bool { return w.AddSkill(v[0]) },
		removeLast: func(w *wizard.Wizard, r *types.Resume) {
			if n := len(r.Skills); n > 0 {
				w.RemoveSkill(r.Skills[n-1])
			}
		},
	},
	wizard.StepExperience: {
		fields:  []string{"Company", "Position", "Period", "Description", "Achievements (separate with ;)"},
		records: true,
		entries: func(r *types.Resume) []string {
			out := make([]string, len(r.Experiences))
			for i, e := range r.Experiences {
				out[i] = e.Position + " at " + e.Company
			}
			return out
		},
		apply: func(w *wizard.Wizard, v []string) bool {
			return w.AddExperience(types.Experience{
				Company:      v[0],
				Position:     v[1],
				Period:       v[2],
				Description:  v[3],
				Achievements: splitList(v[4], ";"),
			})
		},
		removeLast: func(w *wizard.Wizard, r *types.Resume) { w.RemoveExperience(len(r.Experiences) - 1) },
	},
	wizard.StepEducation: {
		fields:  []string{"Institution", "Degree", "Period", "GPA"},
		records: true,
		entries: func(r *types.Resume) []string {
			out := make([]string, len(r.Education))
			for i, e := range r.Education {
				out[i] = e.Degree + ", " + e.Institution
			}
			return out
		},
		apply: func(w *wizard.Wizard, v []string) bool {
			return w.AddEducation(types.Education{Institution: v[0], Degree: v[1], Period: v[2], GPA: v[3]})
		},
		removeLast: func(w *wizard.Wizard, r *types.Resume) { w.RemoveEducation(len(r.Education) - 1) },
	},
	wizard.StepProjects: {
		fields:  []string{"Project name", "Description", "Technologies (comma separated)", "Link"},
		records: true,
		entries: func(r *types.Resume) []string {
			out := make([]string, len(r.Projects))
			for i, p := range r.Projects {
				out[i] = p.Name
			}
			return out
		},
		apply: func(w *wizard.Wizard, v []string) bool {
			return w.AddProject(types.Project{
				Name:         v[0],
				Description:  v[1],
				Technologies: wizard.ParseTechnologies(v[2]),
				Link:         v[3],
			})
		},
		removeLast: func(w *wizard.Wizard, r *types.Resume) { w.RemoveProject(len(r.Projects) - 1) },
	},
}

// Builder is the bubbletea model of the resume wizard. Step 1 is a position list;
// the other steps are text forms. Finishing the last step exports the resume.
type Builder struct {
	ctx       context.Context
	wizard    *wizard.Wizard
	positions []string
	cursor    int
	input     textinput.Model
	field     int
	values    []string
	keys      builderKeyMap
	help      help.Model
	spinner   spinner.Model
	notice    string
	exporting bool
	result    *export.Result
	err       error
	quit      bool
}

// NewBuilder creates a builder over w. positions are the roles offered on step 1.
func NewBuilder(ctx context.Context, w *wizard.Wizard, positions []string) Builder {
	in := textinput.New()
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	b := Builder{
		ctx:       ctx,
		wizard:    w,
		positions: positions,
		input:     in,
		keys:      defaultBuilderKeyMap(),
		help:      help.New(),
		spinner:   sp,
	}
	target := w.Data().TargetPosition
	for i, p := range positions {
		if p == target {
			b.cursor = i
		}
	}
	b.resetForm()
	return b
}

func (b *Builder) resetForm() {
	b.field = 0
	b.values = nil
	b.loadField()
}

func (b *Builder) loadField() {
	b.input.SetValue("")
	f, ok := forms[b.wizard.Step()]
	if !ok {
		return
	}
	b.input.Placeholder = f.fields[b.field]
	if f.current != nil {
		b.input.SetValue(f.current(b.wizard.Data())[b.field])
		b.input.CursorEnd()
	}
}

// Init implements tea.Model.
func (b Builder) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (b Builder) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case exportedMsg:
		b.exporting = false
		b.result, b.err = msg.result, msg.err
		return b, tea.Quit

	case spinner.TickMsg:
		if !b.exporting {
			return b, nil
		}
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)
		return b, cmd

	case tea.WindowSizeMsg:
		b.help.Width = msg.Width
		return b, nil

	case tea.KeyMsg:
		if b.exporting {
			return b, nil
		}
		switch {
		case key.Matches(msg, b.keys.Quit):
			b.quit = true
			return b, tea.Quit
		case key.Matches(msg, b.keys.Back):
			b.wizard.Previous()
			b.notice = ""
			b.resetForm()
			return b, nil
		case key.Matches(msg, b.keys.Save):
			if err := b.wizard.SaveDraft(b.ctx); err != nil {
				b.notice = "Draft not saved: " + err.Error()
			} else {
				b.notice = "Draft saved"
			}
			return b, nil
		}
		if b.wizard.Step() == wizard.StepPosition {
			return b.updatePosition(msg)
		}
		return b.updateForm(msg)
	}

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd
}

func (b Builder) updatePosition(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Up):
		if b.cursor > 0 {
			b.cursor--
		}
	case key.Matches(msg, b.keys.Down):
		if b.cursor < len(b.positions)-1 {
			b.cursor++
		}
	case key.Matches(msg, b.keys.Next):
		if len(b.positions) > 0 {
			b.wizard.SelectPosition(b.positions[b.cursor])
			b.notice = ""
			b.resetForm()
		}
	}
	return b, nil
}

func (b Builder) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := forms[b.wizard.Step()]
	switch {
	case key.Matches(msg, b.keys.Remove):
		if f.removeLast != nil {
			f.removeLast(b.wizard, b.wizard.Data())
		}
		return b, nil
	case key.Matches(msg, b.keys.Next):
		return b.submitField(f)
	}
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd
}

func (b Builder) submitField(f form) (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(b.input.Value())
	if f.records && b.field == 0 && value == "" {
		return b.advance()
	}

	b.values = append(b.values, value)
	if b.field < len(f.fields)-1 {
		b.field++
		b.loadField()
		return b, nil
	}

	if f.apply(b.wizard, b.values) {
		b.notice = ""
	} else {
		b.notice = "Entry not added: a required field is empty or it is already listed."
	}
	if f.records {
		b.resetForm()
		return b, nil
	}
	return b.advance()
}

// advance moves to the next step, or starts the export on the last one.
func (b Builder) advance() (tea.Model, tea.Cmd) {
	if b.wizard.Step() == wizard.LastStep {
		b.exporting = true
		return b, tea.Batch(b.spinner.Tick, b.export())
	}
	if _, err := b.wizard.Primary(b.ctx); err != nil {
		b.notice = err.Error()
		return b, nil
	}
	b.resetForm()
	return b, nil
}

func (b Builder) export() tea.Cmd {
	w, ctx := b.wizard, b.ctx
	return func() tea.Msg {
		res, err := w.Primary(ctx)
		return exportedMsg{result: res, err: err}
	}
}

// View implements tea.Model.
func (b Builder) View() string {
	if b.exporting {
		return titleStyle.Render(b.spinner.View()+" Generating your resume...") + "\n"
	}
	if b.result != nil || b.err != nil {
		return b.viewResult()
	}
	if b.quit {
		return ""
	}

	step := b.wizard.Current()
	var s strings.Builder
	s.WriteString(titleStyle.Render(fmt.Sprintf("Step %d of %d: %s", step.Number, wizard.LastStep, step.Title)) + "\n")
	s.WriteString(hintStyle.Render(step.Description+"  "+progressBar(b.wizard.Progress())) + "\n")
	if tip := b.wizard.Suggestion(); tip != "" {
		s.WriteString(detailStyle.Render("Tip: "+tip) + "\n")
	}

	if step.Number == wizard.StepPosition {
		for i, p := range b.positions {
			if i == b.cursor {
				s.WriteString(cursorStyle.Render("> "+p) + "\n")
			} else {
				s.WriteString(itemStyle.Render(p) + "\n")
			}
		}
	} else {
		f := forms[step.Number]
		if f.entries != nil {
			for _, e := range f.entries(b.wizard.Data()) {
				s.WriteString(itemStyle.Render("• "+e) + "\n")
			}
		}
		label := f.fields[b.field]
		if step.Number == wizard.StepSummary {
			label = fmt.Sprintf("%s (%d/%d)", label, len([]rune(b.input.Value())), wizard.SummaryLimit)
		}
		s.WriteString(promptStyle.Render(label) + "\n")
		s.WriteString(itemStyle.Render(b.input.View()) + "\n")
		if f.records && b.field == 0 {
			s.WriteString(hintStyle.Render("Leave empty and press enter: "+b.wizard.PrimaryLabel()) + "\n")
		}
	}

	if b.notice != "" {
		s.WriteString(noticeStyle.Render(b.notice) + "\n")
	}
	keys := b.keys
	keys.Next.SetHelp("enter", b.wizard.PrimaryLabel())
	s.WriteString(footerStyle.Render(b.help.View(keys)))
	return s.String()
}

func (b Builder) viewResult() string {
	if b.err != nil {
		return errorStyle.Render("Export failed: "+b.err.Error()) + "\n"
	}
	msg := "Resume saved as " + b.result.Filename
	if b.result.Location != "" {
		msg += " (" + b.result.Location + ")"
	}
	out := titleStyle.Render(msg) + "\n"
	if b.result.Fallback {
		out += hintStyle.Render("PDF printing was unavailable, so the HTML version was saved.") + "\n"
	}
	return out
}

// Result returns the export result, or nil if the builder was left before finishing.
func (b Builder) Result() *export.Result {
	return b.result
}

func progressBar(pct float64) string {
	filled := int(pct/100*progressWidth + 0.5)
	filled = min(max(filled, 0), progressWidth)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", progressWidth-filled) + "] " +
		fmt.Sprintf("%.0f%%", pct)
}

func splitList(s, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// RunBuilder shows the resume builder until the resume is exported or the user quits.
// A nil result means the user quit.
func RunBuilder(ctx context.Context, w *wizard.Wizard, positions []string, opts ...tea.ProgramOption) (*export.Result, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(NewBuilder(ctx, w, positions), opts...)
	result, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("resume builder failed: %w", err)
	}
	final := result.(Builder)
	if final.err != nil {
		return nil, final.err
	}
	return final.result, nil
}
