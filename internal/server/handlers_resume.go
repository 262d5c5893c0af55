package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/careerpath/internal/export"
	"github.com/jonathan/careerpath/internal/types"
)

const maxResumeBody = 1 << 20

// Export formats accepted by POST /api/resume/export.
const (
	formatHTML     = "html"
	formatFallback = "fallback"
)

func decodeResume(w http.ResponseWriter, r *http.Request) (*types.Resume, bool) {
	resume := types.NewResume()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxResumeBody)).Decode(resume); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	resume.DedupeSkills()
	return resume, true
}

// handleExportResume renders the posted resume as an HTML attachment. The print
// format is the full document; fallback is the reduced download document.
func (s *Server) handleExportResume(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = formatHTML
	}
	var render func(*types.Resume) ([]byte, error)
	switch format {
	case formatHTML:
		render = export.RenderPrint
	case formatFallback:
		render = export.RenderFallback
	default:
		errorResponse(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
		return
	}

	resume, ok := decodeResume(w, r)
	if !ok {
		return
	}

	doc, err := render(resume)
	if err != nil {
		s.logger.Error("failed to render resume", zap.String("format", format), zap.Error(err))
		errorResponse(w, http.StatusInternalServerError, "Failed to render resume")
		return
	}

	if sections, err := export.Outline(doc); err == nil {
		w.Header().Set("X-Resume-Sections", strings.Join(sections, ","))
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.BaseName(resume)+".html"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// handleResumeFeedback returns rule-based feedback for the posted resume.
func (s *Server) handleResumeFeedback(w http.ResponseWriter, r *http.Request) {
	resume, ok := decodeResume(w, r)
	if !ok {
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"feedback": s.assistant.Feedback(resume)})
}
