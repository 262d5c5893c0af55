// Package matching scores careers against a set of selected interests.
package matching

import (
	"sort"

	"github.com/jonathan/careerpath/internal/types"
)

// TopN is the number of careers returned by Match.
const TopN = 3

// Match scores each career by how many selected interests appear in its match set,
// keeps careers with a positive score and returns the best TopN, highest first.
// Ties keep catalog order. When nothing matches, the first TopN catalog careers are
// returned with a score of zero so callers always have something to show.
func Match(careers []types.Career, selected []string) []types.ScoredCareer {
	chosen := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		chosen[s] = struct{}{}
	}

	scored := make([]types.ScoredCareer, 0, len(careers))
	for _, c := range careers {
		if score := overlap(c.MatchInterests, chosen); score > 0 {
			scored = append(scored, types.ScoredCareer{Career: c.Clone(), Score: score})
		}
	}

	if len(scored) == 0 {
		return fallback(careers)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > TopN {
		scored = scored[:TopN]
	}
	return scored
}

// Score returns the number of selected interests found in the career's match set.
func Score(career types.Career, selected []string) int {
	chosen := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		chosen[s] = struct{}{}
	}
	return overlap(career.MatchInterests, chosen)
}

// overlap counts distinct match interests present in chosen.
func overlap(matches []string, chosen map[string]struct{}) int {
	seen := make(map[string]struct{}, len(matches))
	n := 0
	for _, m := range matches {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		if _, ok := chosen[m]; ok {
			n++
		}
	}
	return n
}

func fallback(careers []types.Career) []types.ScoredCareer {
	n := min(len(careers), TopN)
	out := make([]types.ScoredCareer, n)
	for i := range n {
		out[i] = types.ScoredCareer{Career: careers[i].Clone()}
	}
	return out
}

// Titles extracts the career titles in order.
func Titles(scored []types.ScoredCareer) []string {
	out := make([]string, len(scored))
	for i, s := range scored {
		out[i] = s.Title
	}
	return out
}

// Scorer binds a career catalog so callers only supply the selection.
type Scorer struct {
	careers []types.Career
}

// NewScorer creates a Scorer over a copy of careers.
func NewScorer(careers []types.Career) *Scorer {
	own := make([]types.Career, len(careers))
	for i, c := range careers {
		own[i] = c.Clone()
	}
	return &Scorer{careers: own}
}

// Match scores the bound catalog against selected.
func (s *Scorer) Match(selected []string) []types.ScoredCareer {
	return Match(s.careers, selected)
}
