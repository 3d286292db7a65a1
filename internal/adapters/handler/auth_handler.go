package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/edusuite/dashboard-gateway/internal/adapters/session"
	"github.com/edusuite/dashboard-gateway/internal/core/domain"
	"github.com/edusuite/dashboard-gateway/internal/core/ports"
)

type AuthHandler struct {
	authService   ports.AuthService
	secureCookies bool
}

func NewAuthHandler(auth ports.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: auth, secureCookies: secureCookies}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: "invalid request body"})
		return
	}

	store := session.NewCookieStore(w, r, h.secureCookies)
	profile, err := h.authService.Login(r.Context(), store, req.Username, req.Password)
	switch {
	case errors.Is(err, domain.ErrBadCredentials):
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Detail: err.Error()})
		return
	case errors.Is(err, domain.ErrNoPermission):
		writeJSON(w, http.StatusForbidden, ErrorResponse{Detail: "you do not have permission to access the dashboard"})
		return
	case err != nil:
		log.Printf("login failed: %v", err)
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Detail: "authentication service unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	store := session.NewCookieStore(w, r, h.secureCookies)
	if err := h.authService.Logout(r.Context(), store); err != nil {
		log.Printf("logout failed: %v", err)
	}
	// Local cookies are cleared no matter what the backend said.
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	store := session.NewCookieStore(w, r, h.secureCookies)
	profile, err := h.authService.CurrentUser(r.Context(), store)
	if err != nil {
		log.Printf("profile lookup failed: %v", err)
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Detail: "profile service unavailable"})
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Detail: "not authenticated"})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
