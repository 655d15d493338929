package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sahanr/mangala/internal/db"
	"github.com/sahanr/mangala/internal/middleware"
	"github.com/sahanr/mangala/internal/service/account"
)

// ProfileHandler handles profile reads and upserts.
type ProfileHandler struct {
	accounts *account.Service
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(accounts *account.Service) *ProfileHandler {
	return &ProfileHandler{accounts: accounts}
}

// ProfileView is the JSON shape of a profile across all endpoints.
type ProfileView struct {
	UserID      uint64   `json:"user_id"`
	DateOfBirth string   `json:"date_of_birth,omitempty"`
	Gender      string   `json:"gender,omitempty"`
	CivilStatus string   `json:"civil_status,omitempty"`
	Religion    string   `json:"religion,omitempty"`
	Location    string   `json:"location,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	Interests   []string `json:"interests,omitempty"`
	HeightCM    uint16   `json:"height_cm,omitempty"`
	WeightKG    uint16   `json:"weight_kg,omitempty"`
	AvatarURL   string   `json:"avatar_url,omitempty"`
}

func profileView(p db.Profile) ProfileView {
	view := ProfileView{
		UserID:      p.UserID,
		Gender:      p.Gender,
		CivilStatus: p.CivilStatus,
		Religion:    p.Religion,
		Location:    p.Location,
		Bio:         p.Bio,
		Interests:   p.InterestTags(),
		HeightCM:    p.HeightCM,
		WeightKG:    p.WeightKG,
		AvatarURL:   p.AvatarURL,
	}
	if !p.DateOfBirth.IsZero() {
		view.DateOfBirth = p.DateOfBirth.Format("2006-01-02")
	}
	return view
}

type upsertProfileRequest struct {
	DateOfBirth string   `json:"date_of_birth"`
	Gender      string   `json:"gender"`
	CivilStatus string   `json:"civil_status"`
	Religion    string   `json:"religion"`
	Location    string   `json:"location"`
	Bio         string   `json:"bio"`
	Interests   []string `json:"interests"`
	HeightCM    uint16   `json:"height_cm"`
	WeightKG    uint16   `json:"weight_kg"`
	AvatarURL   string   `json:"avatar_url"`
}

// Upsert handles PUT /api/v1/profile.
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req upsertProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	profile, err := h.accounts.UpsertProfile(r.Context(), middleware.UserID(r.Context()), account.ProfileInput{
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		CivilStatus: req.CivilStatus,
		Religion:    req.Religion,
		Location:    req.Location,
		Bio:         req.Bio,
		Interests:   req.Interests,
		HeightCM:    req.HeightCM,
		WeightKG:    req.WeightKG,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		respondServiceError(w, "upsert_profile", err)
		return
	}

	respondJSON(w, http.StatusOK, profileView(*profile))
}

// GetOwn handles GET /api/v1/profile.
func (h *ProfileHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	profile, err := h.accounts.GetProfile(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		respondServiceError(w, "get_profile", err)
		return
	}
	respondJSON(w, http.StatusOK, profileView(*profile))
}

// Get handles GET /api/v1/profile/{userID}.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseUint(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		respondBadRequest(w, "invalid user id")
		return
	}

	profile, err := h.accounts.GetProfile(r.Context(), userID)
	if err != nil {
		respondServiceError(w, "get_profile", err)
		return
	}
	respondJSON(w, http.StatusOK, profileView(*profile))
}
