// Package views derives the read-only page models shown around the core flows:
// career details, learning paths and the resume list.
package views

import (
	"math"

	"github.com/jonathan/careerpath/internal/catalog"
	"github.com/jonathan/careerpath/internal/types"
)

// TopCompanies is how many hiring companies the career page highlights.
const TopCompanies = 3

// fallbackLearningTitle names a learning path whose id is not in the catalog.
const fallbackLearningTitle = "Developer"

// CareerPage is the career detail page model.
type CareerPage struct {
	types.CareerPath
	TopCompanies []string `json:"topCompanies"`
	// Requested is false when the id was unknown and the default career is shown.
	Requested bool `json:"requested"`
}

// CareerDetail looks up a career path by id. Unknown ids show the default career.
func CareerDetail(cat *catalog.Catalog, id string) CareerPage {
	p, ok := cat.Path(id)
	if !ok {
		p, _ = cat.Path(catalog.DefaultPathID)
	}
	top := p.Companies
	if len(top) > TopCompanies {
		top = top[:TopCompanies]
	}
	return CareerPage{
		CareerPath:   p,
		TopCompanies: append([]string(nil), top...),
		Requested:    ok,
	}
}

// LearningPage is the learning path page model.
type LearningPage struct {
	ID              string                 `json:"id"`
	Title           string                 `json:"title"`
	Modules         []types.LearningModule `json:"modules"`
	TotalProgress   int                    `json:"totalProgress"`
	CompletedTopics int                    `json:"completedTopics"`
	TotalTopics     int                    `json:"totalTopics"`
}

// LearningPath builds the learning page for a career id. Unknown ids get the default
// career's modules under the generic title "Developer".
func LearningPath(cat *catalog.Catalog, id string) LearningPage {
	title := fallbackLearningTitle
	if p, ok := cat.Path(id); ok {
		title = p.Title
	}
	mods, ok := cat.LearningModules(id)
	if !ok {
		mods, _ = cat.LearningModules(catalog.DefaultPathID)
	}

	page := LearningPage{ID: id, Title: title, Modules: mods}
	if len(mods) == 0 {
		return page
	}

	sum := 0
	for _, m := range mods {
		sum += m.Progress
		page.TotalTopics += len(m.Topics)
		page.CompletedTopics += len(m.Topics) * m.Progress / 100
	}
	page.TotalProgress = int(math.Round(float64(sum) / float64(len(mods))))
	return page
}

// ModuleAction is the call-to-action label on a learning module.
func ModuleAction(m types.LearningModule) string {
	if m.Progress > 0 {
		return "Continue Learning"
	}
	return "Start Learning"
}
