package http

import (
	"log/slog"
	"net/http"
	"time"

	"nexcrm/internal/core"
)

// snapshot loads the meeting and payment sets every aggregate is computed
// from. Aggregation is pure, so one consistent read per request is enough.
func (s *Server) snapshot(r *http.Request) ([]core.Meeting, []core.Payment, error) {
	meetings, err := s.storage.ListMeetings(r.Context())
	if err != nil {
		return nil, nil, err
	}
	payments, err := s.storage.ListPayments(r.Context())
	if err != nil {
		return nil, nil, err
	}
	return meetings, payments, nil
}

func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	meetings, payments, err := s.snapshot(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard summary error", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	summary := core.DashboardSummary(meetings, payments)
	respondJSON(w, http.StatusOK, summaryDTO{
		TotalPaid:              summary.TotalPaid.Francs,
		PendingCount:           summary.PendingCount,
		MeetingCount:           summary.MeetingCount,
		ProjectedMonthlyIncome: summary.ProjectedMonthlyIncome.Francs,
	})
}

func (s *Server) handleCityBreakdown(w http.ResponseWriter, r *http.Request) {
	meetings, payments, err := s.snapshot(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "City breakdown error", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load breakdown")
		return
	}

	opts := core.CityBreakdownOptions{
		NormalizeCities: r.URL.Query().Get("normalize") == "1",
	}
	breakdown := core.CityBreakdownWithOptions(meetings, payments, opts)

	out := make([]cityAmountDTO, 0, len(breakdown))
	for _, c := range breakdown {
		out = append(out, cityAmountDTO{City: c.City, Amount: c.Amount.Francs})
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleDailySummary(w http.ResponseWriter, r *http.Request) {
	date := core.Date{Time: time.Now()}
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := core.ParseDate(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	meetings, payments, err := s.snapshot(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Daily summary error", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load daily summary")
		return
	}

	day := core.DailySummary(meetings, payments, date)
	respondJSON(w, http.StatusOK, daySummaryDTO{
		Date:    date.ISO(),
		Total:   day.Total.Francs,
		Paid:    day.Paid.Francs,
		Pending: day.Pending.Francs,
		Items:   toPaymentDTOs(day.Items),
	})
}

// handleDiagnostics surfaces meetings whose frequency is not recognized.
// Projection treats those as monthly, this endpoint makes them visible so
// the data can be fixed.
func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	meetings, err := s.storage.ListMeetings(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Diagnostics error", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load diagnostics")
		return
	}

	flagged := core.FrequencyDiagnostics(meetings)
	out := make([]meetingDTO, 0, len(flagged))
	for _, m := range flagged {
		out = append(out, toMeetingDTO(m))
	}
	respondJSON(w, http.StatusOK, out)
}
