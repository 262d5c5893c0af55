package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careerpath/internal/catalog"
	"github.com/jonathan/careerpath/internal/types"
)

func TestCareerDetail(t *testing.T) {
	cat := catalog.Default()

	page := CareerDetail(cat, "ml-engineer")
	assert.True(t, page.Requested)
	assert.Equal(t, "Machine Learning Engineer", page.Title)
	assert.Equal(t, []string{"OpenAI", "NVIDIA", "Tesla"}, page.TopCompanies)
	assert.Len(t, page.Companies, 5)

	unknown := CareerDetail(cat, "astronaut")
	assert.False(t, unknown.Requested)
	assert.Equal(t, "full-stack", unknown.ID)
	assert.Equal(t, []string{"Google", "Meta", "Netflix"}, unknown.TopCompanies)
}

func TestLearningPath_Totals(t *testing.T) {
	page := LearningPath(catalog.Default(), "data-scientist")
	assert.Equal(t, "Data Scientist", page.Title)
	require.Len(t, page.Modules, 5)

	// progress 100, 75, 50, 25, 0 over five modules of four topics each
	assert.Equal(t, 50, page.TotalProgress)
	assert.Equal(t, 20, page.TotalTopics)
	assert.Equal(t, 4+3+2+1+0, page.CompletedTopics)
}

func TestLearningPath_UnknownID(t *testing.T) {
	page := LearningPath(catalog.Default(), "astronaut")
	assert.Equal(t, "Developer", page.Title)
	require.Len(t, page.Modules, 5)
	assert.Equal(t, "HTML5, CSS3 & JavaScript", page.Modules[0].Title)
}

func TestLearningPath_Rounding(t *testing.T) {
	doc := `{"interests":["A"],"careers":[{"title":"One","description":"","salary":"","demand":"High","skills":[],"matches":["A"]}],
"careerPaths":[{"id":"full-stack","title":"FS","description":"","salary":"","demand":"High","skills":[],"growth":"","companies":[]}],
"learningPaths":{"full-stack":[
 {"id":1,"title":"a","duration":"","progress":33,"topics":["t1","t2","t3"]},
 {"id":2,"title":"b","duration":"","progress":34,"topics":["t1","t2","t3"]}
]},"positionTemplates":[]}`
	cat, err := catalog.Parse([]byte(doc))
	require.NoError(t, err)

	page := LearningPath(cat, "full-stack")
	assert.Equal(t, 34, page.TotalProgress, "33.5 rounds half away from zero")
	assert.Equal(t, 0+1, page.CompletedTopics, "floor(3*0.33)=0, floor(3*0.34)=1")
}

func TestModuleAction(t *testing.T) {
	assert.Equal(t, "Start Learning", ModuleAction(types.LearningModule{}))
	assert.Equal(t, "Continue Learning", ModuleAction(types.LearningModule{Progress: 25}))
}

func TestResumeStatus(t *testing.T) {
	tests := []struct {
		score  int
		status string
		color  string
	}{
		{100, StatusOptimized, "green"},
		{80, StatusOptimized, "green"},
		{79, StatusNeedsImprovement, "yellow"},
		{70, StatusNeedsImprovement, "yellow"},
		{69, StatusNeedsWork, "red"},
		{0, StatusNeedsWork, "red"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, ResumeStatus(tt.score), "score %d", tt.score)
		assert.Equal(t, tt.color, ScoreColor(tt.score), "score %d", tt.score)
	}
}

func TestSampleResumes(t *testing.T) {
	rows := SampleResumes()
	require.Len(t, rows, 3)
	assert.Equal(t, []string{StatusOptimized, StatusNeedsImprovement, StatusNeedsWork},
		[]string{rows[0].Status, rows[1].Status, rows[2].Status})
	assert.Equal(t, 3, rows[0].Version)
}

func TestResumeList(t *testing.T) {
	rows := ResumeList([]*types.Resume{
		{ID: "a", Title: "Mine", TargetPosition: "Data Scientist", Score: 90, Version: 2},
		{ID: "b", TargetPosition: "DevOps Engineer", Score: 71},
		{ID: "c"},
	})
	require.Len(t, rows, 3)
	assert.Equal(t, "Mine", rows[0].Title)
	assert.Equal(t, StatusOptimized, rows[0].Status)
	assert.Equal(t, "DevOps Engineer Resume", rows[1].Title)
	assert.Equal(t, StatusNeedsImprovement, rows[1].Status)
	assert.Equal(t, "Untitled Resume", rows[2].Title)
	assert.Equal(t, StatusNeedsWork, rows[2].Status)
}
