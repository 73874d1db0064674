package http

import (
	"errors"
	"log/slog"
	"net/http"

	"nexcrm/internal/auth"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.authenticator.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		slog.ErrorContext(r.Context(), "Login failed", "error", err)
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.ErrorContext(r.Context(), "Token generation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	slog.InfoContext(r.Context(), "User logged in",
		"user_id", user.ID,
		"username", user.Username)

	respondJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User:  toUserDTO(*user),
	})
}
