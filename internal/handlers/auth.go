package handlers

import (
	"net/http"

	"github.com/sahanr/mangala/internal/service/account"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	accounts *account.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(accounts *account.Service) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type registerResponse struct {
	UserID uint64 `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondServiceError(w, "register", err)
		return
	}

	respondJSON(w, http.StatusCreated, registerResponse{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, "login", err)
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{Token: token})
}
