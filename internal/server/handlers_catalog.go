package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/careerpath/internal/types"
	"github.com/jonathan/careerpath/internal/views"
)

// matchRequest is the body of POST /api/match.
type matchRequest struct {
	Interests []string `json:"interests"`
}

func (s *Server) handleListInterests(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string][]string{"interests": s.catalog.Interests()})
}

func (s *Server) handleListCareers(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string][]types.CareerPath{"careers": s.catalog.Paths()})
}

// handleGetCareer serves a career detail page. Unknown ids get the default path with
// requested=false rather than a 404.
func (s *Server) handleGetCareer(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, views.CareerDetail(s.catalog, r.PathValue("id")))
}

func (s *Server) handleGetLearningPath(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, views.LearningPath(s.catalog, r.PathValue("id")))
}

// handleMatch scores the catalog careers against the submitted interests.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Interests) == 0 {
		errorResponse(w, http.StatusBadRequest, "interests are required")
		return
	}
	jsonResponse(w, http.StatusOK, map[string][]types.ScoredCareer{"matches": s.scorer.Match(req.Interests)})
}

func (s *Server) handleListPositions(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string][]types.PositionTemplate{"positions": s.catalog.Templates()})
}

func (s *Server) handleListResumes(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string][]types.ResumeSummary{"resumes": views.SampleResumes()})
}
