package http

import (
	"log/slog"
	"net/http"
	"time"

	"nexcrm/internal/report"
)

// handleReport renders the executive report as standalone printable HTML.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	meetings, payments, err := s.snapshot(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report snapshot error", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	html, err := report.Generate(payments, meetings, time.Now())
	if err != nil {
		slog.ErrorContext(r.Context(), "Report render error", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	// The report carries inline styles, relax the API-wide policy for it.
	w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'unsafe-inline'")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html)
}
