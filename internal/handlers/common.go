package handlers

import (
	"encoding/json"
	"net/http"

	svcerr "github.com/sahanr/mangala/internal/errors"
	"github.com/sahanr/mangala/internal/logger"
)

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondServiceError logs the real error and returns only the generic
// category message mapped from the taxonomy.
func respondServiceError(w http.ResponseWriter, op string, err error) {
	status := svcerr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "op", op, "err", err)
	} else {
		logger.Debug("request rejected", "op", op, "err", err)
	}
	respondJSON(w, status, ErrorResponse{Error: svcerr.PublicMessage(err)})
}

func respondBadRequest(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondBadRequest(w, "invalid request body")
		return false
	}
	return true
}
