// Package tui runs the onboarding interest quiz and the resume builder in the terminal.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/careerpath/internal/onboarding"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(1, 0, 0, 2)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 0, 1, 2)

	itemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 4)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Padding(0, 0, 0, 2)

	careerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 0, 0, 4)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 0, 0, 6)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Padding(1, 0, 0, 2)

	footerStyle = lipgloss.NewStyle().
			Padding(1, 0, 0, 2)
)

// submittedMsg carries the result of Flow.Submit.
type submittedMsg struct {
	outcome onboarding.Outcome
	err     error
}

// redirectMsg ends the pause after a failed save.
type redirectMsg struct{}

// Model is the bubbletea model of the quiz. The flow is only touched from Update and
// View, except for the single Submit call that runs while keys are ignored.
type Model struct {
	ctx        context.Context
	flow       *onboarding.Flow
	interests  []string
	cursor     int
	keys       keyMap
	help       help.Model
	spinner    spinner.Model
	submitting bool
	outcome    *onboarding.Outcome
	err        error
	quit       bool
}

// New creates a quiz over flow.
func New(ctx context.Context, flow *onboarding.Flow) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		ctx:       ctx,
		flow:      flow,
		interests: flow.Interests(),
		keys:      defaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		m.submitting = false
		m.err = msg.err
		out := msg.outcome
		m.outcome = &out
		if out.RedirectAfter > 0 {
			return m, tea.Tick(out.RedirectAfter, func(time.Time) tea.Msg { return redirectMsg{} })
		}
		return m, tea.Quit

	case redirectMsg:
		return m, tea.Quit

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		if m.outcome != nil {
			// any key skips the redirect pause
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Quit) {
			m.quit = true
			return m, tea.Quit
		}
		switch m.flow.State() {
		case onboarding.SelectingInterests:
			return m.updateSelecting(msg)
		case onboarding.ReviewingMatches:
			return m.updateReviewing(msg)
		}
	}
	return m, nil
}

func (m Model) updateSelecting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.interests)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if len(m.interests) > 0 {
			_ = m.flow.Toggle(m.interests[m.cursor])
		}
	case key.Matches(msg, m.keys.Next):
		// An empty selection keeps the user here; the hint already says what to do.
		_ = m.flow.Advance()
	}
	return m, nil
}

func (m Model) updateReviewing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		_ = m.flow.Back()
	case key.Matches(msg, m.keys.Next):
		m.submitting = true
		return m, tea.Batch(m.spinner.Tick, m.submit())
	}
	return m, nil
}

func (m Model) submit() tea.Cmd {
	flow, ctx := m.flow, m.ctx
	return func() tea.Msg {
		out, err := flow.Submit(ctx)
		return submittedMsg{outcome: out, err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.submitting {
		return titleStyle.Render(m.spinner.View()+" Saving your results...") + "\n"
	}
	if m.outcome != nil {
		return m.viewOutcome()
	}
	if m.quit {
		return ""
	}

	var b strings.Builder
	switch m.flow.State() {
	case onboarding.SelectingInterests:
		b.WriteString(titleStyle.Render("What interests you?") + "\n")
		b.WriteString(hintStyle.Render(onboarding.SelectionHint) + "\n")
		for i, in := range m.interests {
			box := "[ ]"
			if m.flow.IsSelected(in) {
				box = "[x]"
			}
			line := box + " " + in
			if i == m.cursor {
				b.WriteString(cursorStyle.Render("> "+line) + "\n")
			} else {
				b.WriteString(itemStyle.Render(line) + "\n")
			}
		}
	case onboarding.ReviewingMatches:
		b.WriteString(titleStyle.Render("Your career matches") + "\n\n")
		for _, c := range m.flow.Matches() {
			title := c.Title
			if badge := onboarding.MatchBadge(c.Score); badge != "" {
				title += "  " + badgeStyle.Render(badge)
			}
			b.WriteString(careerStyle.Render(title) + "\n")
			b.WriteString(detailStyle.Render(c.Description) + "\n")
			b.WriteString(detailStyle.Render(fmt.Sprintf("%s · %s demand", c.SalaryRange, c.Demand)) + "\n\n")
		}
	}
	if msg := m.flow.Error(); msg != "" {
		b.WriteString(errorStyle.Render(msg) + "\n")
	}
	b.WriteString(footerStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) viewOutcome() string {
	out := m.outcome
	switch {
	case out.Message != "":
		return errorStyle.Render(fmt.Sprintf("%s. Continuing to %s.", strings.TrimSuffix(out.Message, "."), out.Destination)) + "\n" +
			hintStyle.Render("Press any key to continue now.") + "\n"
	case out.Guest:
		return titleStyle.Render("Results saved. Create an account to keep them: "+out.Destination) + "\n"
	default:
		return titleStyle.Render("All set. Head to "+out.Destination) + "\n"
	}
}

// Outcome returns the submit result, or nil if the user quit first.
func (m Model) Outcome() *onboarding.Outcome {
	return m.outcome
}

// Run shows the quiz until the user submits or quits. A nil outcome means the user quit.
func Run(ctx context.Context, flow *onboarding.Flow, opts ...tea.ProgramOption) (*onboarding.Outcome, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(ctx, flow), opts...)
	result, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("onboarding quiz failed: %w", err)
	}
	final := result.(Model)
	if final.err != nil {
		return nil, final.err
	}
	return final.outcome, nil
}
