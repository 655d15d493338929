package handlers

import (
	"net/http"
	"strconv"

	"github.com/sahanr/mangala/internal/middleware"
	"github.com/sahanr/mangala/internal/scoring"
	"github.com/sahanr/mangala/internal/service/discovery"
	"github.com/sahanr/mangala/internal/service/match"
)

// DiscoveryHandler handles candidate, match, and suggestion listings.
type DiscoveryHandler struct {
	discovery *discovery.Service
	matches   *match.Service
}

// NewDiscoveryHandler creates a new discovery handler.
func NewDiscoveryHandler(d *discovery.Service, m *match.Service) *DiscoveryHandler {
	return &DiscoveryHandler{discovery: d, matches: m}
}

// Candidates handles GET /api/v1/candidates?limit=.
func (h *DiscoveryHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.discovery.Candidates(r.Context(), middleware.UserID(r.Context()), queryInt(r, "limit"))
	if err != nil {
		respondServiceError(w, "candidates", err)
		return
	}

	views := make([]ProfileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, profileView(p))
	}
	respondJSON(w, http.StatusOK, views)
}

type scoredCandidateView struct {
	Profile         ProfileView `json:"profile"`
	Score           int         `json:"score"`
	SharedInterests []string    `json:"shared_interests"`
	Age             int         `json:"age"`
}

// ScoredCandidates handles GET /api/v1/candidates/scored?priority=&limit=.
func (h *DiscoveryHandler) ScoredCandidates(w http.ResponseWriter, r *http.Request) {
	priority := scoring.ParsePriority(r.URL.Query().Get("priority"))

	scored, err := h.discovery.ScoredCandidates(r.Context(), middleware.UserID(r.Context()), priority, queryInt(r, "limit"))
	if err != nil {
		respondServiceError(w, "scored_candidates", err)
		return
	}

	views := make([]scoredCandidateView, 0, len(scored))
	for _, s := range scored {
		views = append(views, scoredCandidateView{
			Profile:         profileView(s.Profile),
			Score:           s.Score,
			SharedInterests: s.SharedInterests,
			Age:             s.Age,
		})
	}
	respondJSON(w, http.StatusOK, views)
}

type matchView struct {
	MatchID   uint64      `json:"match_id"`
	Profile   ProfileView `json:"profile"`
	MatchedAt int64       `json:"matched_at"`
}

type matchListResponse struct {
	Matches             []matchView `json:"matches"`
	NextPaginationToken *string     `json:"next_pagination_token,omitempty"`
}

// Matches handles GET /api/v1/matches?limit=&pagination_token=.
func (h *DiscoveryHandler) Matches(w http.ResponseWriter, r *http.Request) {
	var token *string
	if raw := r.URL.Query().Get("pagination_token"); raw != "" {
		token = &raw
	}
	limit := queryInt(r, "limit")
	if limit <= 0 {
		limit = discovery.DefaultLimit
	}

	partners, nextToken, err := h.matches.ListMatches(r.Context(), middleware.UserID(r.Context()), token, limit)
	if err != nil {
		respondServiceError(w, "list_matches", err)
		return
	}

	resp := matchListResponse{Matches: make([]matchView, 0, len(partners)), NextPaginationToken: nextToken}
	for _, p := range partners {
		resp.Matches = append(resp.Matches, matchView{
			MatchID:   p.MatchID,
			Profile:   profileView(p.Profile),
			MatchedAt: p.MatchedAt,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

type suggestionView struct {
	Profile   ProfileView `json:"profile"`
	Reason    string      `json:"reason"`
	CreatedAt int64       `json:"created_at"`
}

// Suggestions handles GET /api/v1/suggestions.
func (h *DiscoveryHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.discovery.Suggestions(r.Context(), middleware.UserID(r.Context()), queryInt(r, "limit"))
	if err != nil {
		respondServiceError(w, "suggestions", err)
		return
	}

	views := make([]suggestionView, 0, len(suggestions))
	for _, s := range suggestions {
		views = append(views, suggestionView{
			Profile:   profileView(s.Profile),
			Reason:    s.Reason,
			CreatedAt: s.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, views)
}

func queryInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(key))
	return n
}
