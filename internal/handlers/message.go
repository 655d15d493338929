package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sahanr/mangala/internal/middleware"
	"github.com/sahanr/mangala/internal/service/match"
)

// messagePageSize caps a single conversation fetch.
const messagePageSize = 100

// MessageHandler handles messaging inside confirmed matches.
type MessageHandler struct {
	matches *match.Service
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(matches *match.Service) *MessageHandler {
	return &MessageHandler{matches: matches}
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

type messageView struct {
	ID        uint64 `json:"id"`
	MatchID   uint64 `json:"match_id"`
	SenderID  uint64 `json:"sender_id"`
	Body      string `json:"body"`
	CreatedAt int64  `json:"created_at"`
}

// Send handles POST /api/v1/matches/{matchID}/messages.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	matchID, err := strconv.ParseUint(chi.URLParam(r, "matchID"), 10, 64)
	if err != nil {
		respondBadRequest(w, "invalid match id")
		return
	}

	var req sendMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	message, err := h.matches.SendMessage(r.Context(), matchID, middleware.UserID(r.Context()), req.Body)
	if err != nil {
		respondServiceError(w, "send_message", err)
		return
	}

	respondJSON(w, http.StatusCreated, messageView{
		ID:        message.ID,
		MatchID:   message.MatchID,
		SenderID:  message.SenderID,
		Body:      message.Body,
		CreatedAt: message.CreatedAt.UnixMilli(),
	})
}

// List handles GET /api/v1/matches/{matchID}/messages.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	matchID, err := strconv.ParseUint(chi.URLParam(r, "matchID"), 10, 64)
	if err != nil {
		respondBadRequest(w, "invalid match id")
		return
	}

	messages, err := h.matches.ListMessages(r.Context(), matchID, middleware.UserID(r.Context()), messagePageSize)
	if err != nil {
		respondServiceError(w, "list_messages", err)
		return
	}

	views := make([]messageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, messageView{
			ID:        m.ID,
			MatchID:   m.MatchID,
			SenderID:  m.SenderID,
			Body:      m.Body,
			CreatedAt: m.CreatedAt.UnixMilli(),
		})
	}
	respondJSON(w, http.StatusOK, views)
}
