package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"nexcrm/internal/core"
	"nexcrm/internal/storage"
)

// handleListPayments returns payments matching the composite filter built
// from query parameters: q (free text), city, date (YYYY-MM-DD), and
// status (repeatable or comma separated). All dimensions combine with AND.
func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	meetings, payments, err := s.snapshot(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "List payments error", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list payments")
		return
	}

	q := r.URL.Query()
	filter := core.Filter{
		Query: q.Get("q"),
		City:  q.Get("city"),
	}
	if v := q.Get("date"); v != "" {
		date, err := core.ParseDate(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		filter.Date = &date
	}
	for _, v := range q["status"] {
		for _, raw := range strings.Split(v, ",") {
			if raw = strings.TrimSpace(raw); raw != "" {
				filter.Statuses = append(filter.Statuses, core.Status(raw))
			}
		}
	}

	respondJSON(w, http.StatusOK, toPaymentDTOs(core.FilterPayments(payments, meetings, filter)))
}

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := req.toCore()
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
		return
	}
	p.ID = ""
	p.ReceiptNumber = ""
	p.ApprovedBy = ""
	if p.Status == "" {
		p.Status = core.StatusPending
	}
	if err := p.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.payments.RecordPayment(r.Context(), p)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create payment error", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to record payment")
		return
	}

	respondJSON(w, http.StatusCreated, toPaymentDTO(*created))
}

func (s *Server) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	err := s.payments.DeletePayment(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "payment not found")
			return
		}
		slog.ErrorContext(r.Context(), "Delete payment error", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete payment")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type approveRequest struct {
	Status string `json:"status,omitempty"`
}

// handleApprovePayment requires the APPROVE permission and records which
// user approved. Only a PENDING payment can be approved. An optional body
// selects the target status, APPROVED by default or PAID when the approver
// settles in the same step.
func (s *Server) handleApprovePayment(w http.ResponseWriter, r *http.Request) {
	if !requirePermission(w, r, "APPROVE") {
		return
	}

	target := core.StatusApproved
	if r.ContentLength > 0 {
		var req approveRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Status != "" {
			target = core.Status(req.Status)
		}
	}
	if target != core.StatusApproved && target != core.StatusPaid {
		respondError(w, http.StatusUnprocessableEntity, "approval target must be APPROVED or PAID")
		return
	}

	claims := claimsFrom(r)
	approved, err := s.payments.ApprovePayment(r.Context(), r.PathValue("id"), claims.Username, target)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "payment not found")
			return
		}
		if errors.Is(err, storage.ErrStatusConflict) {
			respondError(w, http.StatusConflict, "only a PENDING payment can be approved")
			return
		}
		slog.ErrorContext(r.Context(), "Approve payment error", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to approve payment")
		return
	}

	respondJSON(w, http.StatusOK, toPaymentDTO(*approved))
}
