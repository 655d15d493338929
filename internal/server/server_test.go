package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sahanr/mangala/internal/app"
	"github.com/sahanr/mangala/internal/cache"
	"github.com/sahanr/mangala/internal/config"
	"github.com/sahanr/mangala/internal/db"
	"github.com/sahanr/mangala/internal/handlers"
	"github.com/sahanr/mangala/internal/server"
	"github.com/sahanr/mangala/internal/service/account"
	"github.com/sahanr/mangala/internal/service/discovery"
	"github.com/sahanr/mangala/internal/service/match"
)

// setupTestServer wires the full HTTP stack onto an in-memory SQLite DB and
// miniredis, mirroring cmd/server.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := &config.Config{}
	cfg.Redis.Addr = mr.Addr()
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTLHours = 1

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	appCtx := app.New(gdb, cache.NewRedisCache(cfg), log)

	accounts := account.New(appCtx, cfg)
	matches := match.New(appCtx)
	discover := discovery.New(appCtx)

	router := server.NewRouter(accounts, server.Handlers{
		Auth:      handlers.NewAuthHandler(accounts),
		Profile:   handlers.NewProfileHandler(accounts),
		Like:      handlers.NewLikeHandler(matches),
		Discovery: handlers.NewDiscoveryHandler(discover, matches),
		Message:   handlers.NewMessageHandler(matches),
	})

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, token string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func registerAndLogin(t *testing.T, ts *httptest.Server, email string) (uint64, string) {
	t.Helper()

	resp := postJSON(t, ts.URL+"/api/v1/auth/register", "", map[string]string{
		"email": email, "password": "secret", "name": "Test User",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var reg struct {
		UserID uint64 `json:"user_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reg))
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/api/v1/auth/login", "", map[string]string{
		"email": email, "password": "secret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	resp.Body.Close()

	return reg.UserID, login.Token
}

func TestRouter_RejectsMissingBearer(t *testing.T) {
	ts := setupTestServer(t)

	resp := getJSON(t, ts.URL+"/api/v1/matches", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_LikeFlowEndToEnd(t *testing.T) {
	ts := setupTestServer(t)

	idA, tokenA := registerAndLogin(t, ts, "a@example.com")
	idB, tokenB := registerAndLogin(t, ts, "b@example.com")

	// A likes B: bare acknowledgment
	resp := postJSON(t, ts.URL+"/api/v1/likes", tokenA, map[string]uint64{"to_user_id": idB})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// no match yet
	resp = getJSON(t, ts.URL+"/api/v1/matches", tokenA)
	var list struct {
		Matches []struct {
			MatchID uint64 `json:"match_id"`
		} `json:"matches"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	assert.Empty(t, list.Matches)

	// B likes A back: both now see exactly one match
	resp = postJSON(t, ts.URL+"/api/v1/likes", tokenB, map[string]uint64{"to_user_id": idA})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	for _, token := range []string{tokenA, tokenB} {
		resp = getJSON(t, ts.URL+"/api/v1/matches", token)
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
		resp.Body.Close()
		assert.Len(t, list.Matches, 1)
	}
}

func TestRouter_SelfLikeIsBadRequest(t *testing.T) {
	ts := setupTestServer(t)

	idA, tokenA := registerAndLogin(t, ts, "a@example.com")

	resp := postJSON(t, ts.URL+"/api/v1/likes", tokenA, map[string]uint64{"to_user_id": idA})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_LikeUnknownUserIsNotFound(t *testing.T) {
	ts := setupTestServer(t)

	_, tokenA := registerAndLogin(t, ts, "a@example.com")

	resp := postJSON(t, ts.URL+"/api/v1/likes", tokenA, map[string]uint64{"to_user_id": 9999})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	ts := setupTestServer(t)

	resp := getJSON(t, ts.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = getJSON(t, ts.URL+"/metrics", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
