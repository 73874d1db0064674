package http

import (
	"errors"
	"log/slog"
	"net/http"

	"nexcrm/internal/storage"
)

func (s *Server) handleListMeetings(w http.ResponseWriter, r *http.Request) {
	meetings, err := s.storage.ListMeetings(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List meetings error", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list meetings")
		return
	}

	out := make([]meetingDTO, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, toMeetingDTO(m))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateMeeting(w http.ResponseWriter, r *http.Request) {
	var req meetingDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := req.toCore()
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid next date, expected YYYY-MM-DD")
		return
	}
	m.ID = ""
	if err := m.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.meetings.CreateMeeting(r.Context(), m)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create meeting error", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create meeting")
		return
	}

	respondJSON(w, http.StatusCreated, toMeetingDTO(*created))
}

func (s *Server) handleUpdateMeeting(w http.ResponseWriter, r *http.Request) {
	var req meetingDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := req.toCore()
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid next date, expected YYYY-MM-DD")
		return
	}
	m.ID = r.PathValue("id")
	if err := m.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	updated, err := s.meetings.UpdateMeeting(r.Context(), m)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "meeting not found")
			return
		}
		slog.ErrorContext(r.Context(), "Update meeting error", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update meeting")
		return
	}

	respondJSON(w, http.StatusOK, toMeetingDTO(*updated))
}

func (s *Server) handleDeleteMeeting(w http.ResponseWriter, r *http.Request) {
	err := s.meetings.DeleteMeeting(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "meeting not found")
			return
		}
		slog.ErrorContext(r.Context(), "Delete meeting error", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete meeting")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
