package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"nexcrm/internal/auth"
	"nexcrm/internal/core"
	"nexcrm/internal/storage"
)

type createUserRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Avatar      string   `json:"avatar,omitempty"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.storage.ListUsers(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List users error", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	out := make([]userDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u))
	}
	respondJSON(w, http.StatusOK, out)
}

// handleCreateUser is restricted to SUPER_ADMIN.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, roleSuperAdmin) {
		return
	}

	var req createUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Name == "" {
		respondError(w, http.StatusUnprocessableEntity, "name and username are required")
		return
	}

	user := core.User{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Email:       req.Email,
		Username:    req.Username,
		Role:        req.Role,
		Permissions: req.Permissions,
		Avatar:      req.Avatar,
	}

	created, err := s.authenticator.Register(r.Context(), user, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrWeakPassword):
			respondError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, auth.ErrUsernameExists):
			respondError(w, http.StatusConflict, "username already taken")
		default:
			slog.ErrorContext(r.Context(), "Create user error", "error", err)
			respondError(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	respondJSON(w, http.StatusCreated, toUserDTO(*created))
}

// handleDeleteUser is restricted to SUPER_ADMIN. Self-deletion is refused.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, roleSuperAdmin) {
		return
	}

	id := r.PathValue("id")
	if claims := claimsFrom(r); claims != nil && claims.UserID == id {
		respondError(w, http.StatusUnprocessableEntity, "cannot delete own account")
		return
	}

	if err := s.storage.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		slog.ErrorContext(r.Context(), "Delete user error", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
