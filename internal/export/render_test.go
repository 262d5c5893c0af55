package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careerpath/internal/types"
)

func fullResume() *types.Resume {
	r := types.NewResume()
	r.PersonalInfo = types.PersonalInfo{
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		Phone:     "555-0100",
		Location:  "London",
		Portfolio: "ada.dev",
		LinkedIn:  "linkedin.com/in/ada",
	}
	r.TargetPosition = "Data Scientist"
	r.Summary = "Analyst of engines."
	r.Skills = []string{"Python", "SQL"}
	r.Experiences = []types.Experience{{Company: "Analytical Engines", Position: "Programmer", Period: "1842-1843", Description: "Wrote the first program."}}
	r.Education = []types.Education{{Institution: "Home", Degree: "Mathematics", Period: "1830s", GPA: "4.0"}}
	r.Projects = []types.Project{{Name: "Note G", Description: "Bernoulli numbers", Technologies: []string{"Punch cards", "Gears"}, Link: "example.com/g"}}
	return r
}

func TestRenderPrint_AllSections(t *testing.T) {
	doc, err := RenderPrint(fullResume())
	require.NoError(t, err)

	sections, err := Outline(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Target Position", "Professional Summary", "Technical Skills", "Work Experience", "Education", "Projects"}, sections)

	title, err := Title(doc)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", title)

	s := string(doc)
	assert.Contains(t, s, "📧 ada@example.com")
	assert.Contains(t, s, `<span class="tech">Gears</span>`)
	assert.Contains(t, s, "<strong>GPA:</strong> 4.0")
}

func TestRenderFallback_AllSections(t *testing.T) {
	doc, err := RenderFallback(fullResume())
	require.NoError(t, err)

	sections, err := Outline(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Target Position", "Summary", "Skills", "Experience", "Education", "Projects"}, sections)

	s := string(doc)
	assert.Contains(t, s, "<strong>Programmer</strong> at Analytical Engines (1842-1843)")
	assert.Contains(t, s, "Technologies: Punch cards, Gears")
	assert.Contains(t, s, "Link: example.com/g")
}

func TestRender_EmptyProjectsOmitsHeading(t *testing.T) {
	r := fullResume()
	r.Projects = []types.Project{}

	for name, fn := range map[string]func(*types.Resume) ([]byte, error){
		"print":    RenderPrint,
		"fallback": RenderFallback,
	} {
		t.Run(name, func(t *testing.T) {
			doc, err := fn(r)
			require.NoError(t, err)
			assert.NotContains(t, string(doc), "Projects")
		})
	}
}

func TestRender_EmptyResumeHasNoSections(t *testing.T) {
	for name, fn := range map[string]func(*types.Resume) ([]byte, error){
		"print":    RenderPrint,
		"fallback": RenderFallback,
	} {
		t.Run(name, func(t *testing.T) {
			doc, err := fn(types.NewResume())
			require.NoError(t, err)
			sections, err := Outline(doc)
			require.NoError(t, err)
			assert.Empty(t, sections)

			title, err := Title(doc)
			require.NoError(t, err)
			assert.Equal(t, "Resume", title)
			assert.Contains(t, string(doc), "Your Name")
		})
	}
}

func TestRenderFallback_MissingContact(t *testing.T) {
	doc, err := RenderFallback(nil)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(doc), "Not provided"))
}

func TestRenderPrint_OmitsMissingContactItems(t *testing.T) {
	r := types.NewResume()
	r.PersonalInfo.Email = "a@b.c"
	doc, err := RenderPrint(r)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "📧")
	assert.NotContains(t, string(doc), "📱")
	assert.NotContains(t, string(doc), "GPA")
}

func TestRender_EscapesUserText(t *testing.T) {
	r := types.NewResume()
	r.PersonalInfo.Name = `<script>alert("x")</script>`
	r.Summary = "R&D <b>lead</b>"

	for _, fn := range []func(*types.Resume) ([]byte, error){RenderPrint, RenderFallback} {
		doc, err := fn(r)
		require.NoError(t, err)
		s := string(doc)
		assert.NotContains(t, s, "<script>")
		assert.Contains(t, s, "&lt;script&gt;")
		assert.Contains(t, s, "R&amp;D &lt;b&gt;lead&lt;/b&gt;")
	}
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "resume", BaseName(nil))
	assert.Equal(t, "resume", BaseName(types.NewResume()))

	r := types.NewResume()
	r.PersonalInfo.Name = "Ada Lovelace"
	assert.Equal(t, "Ada Lovelace", BaseName(r))

	r.PersonalInfo.Name = "../etc/passwd"
	assert.Equal(t, "..-etc-passwd", BaseName(r))
}
