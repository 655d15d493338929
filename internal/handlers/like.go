package handlers

import (
	"net/http"

	"github.com/sahanr/mangala/internal/middleware"
	"github.com/sahanr/mangala/internal/service/match"
)

// LikeHandler handles the like ledger endpoints.
type LikeHandler struct {
	matches *match.Service
}

// NewLikeHandler creates a new like handler.
func NewLikeHandler(matches *match.Service) *LikeHandler {
	return &LikeHandler{matches: matches}
}

type likeRequest struct {
	ToUserID uint64 `json:"to_user_id"`
}

// Create handles POST /api/v1/likes.
//
// The response is a bare acknowledgment: it does not say whether the like
// was new, a repeat, or whether it completed a mutual match.
func (h *LikeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req likeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ToUserID == 0 {
		respondBadRequest(w, "to_user_id is required")
		return
	}

	if err := h.matches.RecordLike(r.Context(), middleware.UserID(r.Context()), req.ToUserID); err != nil {
		respondServiceError(w, "record_like", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type likeCountResponse struct {
	Count int64 `json:"count"`
}

// ReceivedCount handles GET /api/v1/likes/received/count.
func (h *LikeHandler) ReceivedCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.matches.CountReceived(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		respondServiceError(w, "count_received_likes", err)
		return
	}
	respondJSON(w, http.StatusOK, likeCountResponse{Count: count})
}
