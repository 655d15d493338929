package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sahanr/mangala/internal/db"
	"github.com/sahanr/mangala/internal/repository"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

func seedUsers(t *testing.T, gdb *gorm.DB, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		user := db.User{
			ID:           uint64(i),
			Email:        "u" + string(rune('0'+i)) + "@test.com",
			PasswordHash: "x",
			Name:         "user",
			Active:       true,
		}
		require.NoError(t, gdb.Create(&user).Error)
	}
}

func TestLikeCreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	likes := repository.NewLikeRepository(gdb)

	created, err := likes.Create(ctx, 1, 2)
	assert.NoError(t, err)
	assert.True(t, created)

	// repeat: no error, no new row
	created, err = likes.Create(ctx, 1, 2)
	assert.NoError(t, err)
	assert.False(t, created)

	var count int64
	gdb.Model(&db.Like{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestLikeExistsAndCount(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	likes := repository.NewLikeRepository(gdb)

	_, _ = likes.Create(ctx, 1, 9)
	_, _ = likes.Create(ctx, 2, 9)

	ok, err := likes.Exists(ctx, 1, 9)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, _ = likes.Exists(ctx, 9, 1)
	assert.False(t, ok, "the directed check must not see the reverse edge")

	count, err := likes.CountReceived(ctx, 9)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestMatchCreateCanonicalDeduplicates(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	matches := repository.NewMatchRepository(gdb)

	created, err := matches.CreateCanonical(ctx, 7, 3)
	assert.NoError(t, err)
	assert.True(t, created)

	// same pair from the other direction hits the same canonical row
	created, err = matches.CreateCanonical(ctx, 3, 7)
	assert.NoError(t, err)
	assert.False(t, created)

	var rows []db.Match
	gdb.Find(&rows)
	assert.Len(t, rows, 1)
	assert.Equal(t, uint64(3), rows[0].UserAID)
	assert.Equal(t, uint64(7), rows[0].UserBID)

	ok, err := matches.Exists(ctx, 7, 3)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestMatchListForUserPagination(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	matches := repository.NewMatchRepository(gdb)

	for partner := uint64(2); partner <= 8; partner++ {
		_, err := matches.CreateCanonical(ctx, 1, partner)
		require.NoError(t, err)
	}

	page1, next, err := matches.ListForUser(ctx, 1, nil, 5)
	require.NoError(t, err)
	assert.Len(t, page1, 5)
	require.NotNil(t, next)

	page2, next2, err := matches.ListForUser(ctx, 1, next, 5)
	require.NoError(t, err)
	assert.Len(t, page2, 2)
	assert.Nil(t, next2)

	// no overlap between pages
	seen := map[uint64]bool{}
	for _, m := range append(page1, page2...) {
		assert.False(t, seen[m.ID])
		seen[m.ID] = true
	}
}

func TestSuggestionCreateIgnoresDuplicates(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	suggestions := repository.NewSuggestionRepository(gdb)

	created, err := suggestions.Create(ctx, 1, 2, "reason")
	assert.NoError(t, err)
	assert.True(t, created)

	created, err = suggestions.Create(ctx, 1, 2, "other reason")
	assert.NoError(t, err)
	assert.False(t, created)

	rows, err := suggestions.ListForUser(ctx, 1, 10)
	assert.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "reason", rows[0].Reason, "the original row must be left untouched")
}

func TestCandidateExclusions(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	seedUsers(t, gdb, 7)
	for i := uint64(1); i <= 7; i++ {
		require.NoError(t, gdb.Create(&db.Profile{UserID: i, Location: "Colombo"}).Error)
	}

	likes := repository.NewLikeRepository(gdb)
	matches := repository.NewMatchRepository(gdb)
	suggestions := repository.NewSuggestionRepository(gdb)
	candidates := repository.NewCandidateRepository(gdb)

	// user 1: liked 2, was liked by 3, matched with 4, already suggested 5
	_, _ = likes.Create(ctx, 1, 2)
	_, _ = likes.Create(ctx, 3, 1)
	_, _ = matches.CreateCanonical(ctx, 1, 4)
	_, _ = suggestions.Create(ctx, 1, 5, "r")

	pool, err := candidates.EligibleProfiles(ctx, 1, "")
	require.NoError(t, err)

	ids := map[uint64]bool{}
	for _, p := range pool {
		ids[p.UserID] = true
	}
	assert.False(t, ids[1], "self excluded")
	assert.False(t, ids[2], "liked excluded")
	assert.False(t, ids[3], "liker excluded")
	assert.False(t, ids[4], "match partner excluded")
	assert.False(t, ids[5], "prior suggestion excluded")
	assert.True(t, ids[6])
	assert.True(t, ids[7])
}

func TestCandidateLocationFilter(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	seedUsers(t, gdb, 4)
	require.NoError(t, gdb.Create(&db.Profile{UserID: 1, Location: "Colombo"}).Error)
	require.NoError(t, gdb.Create(&db.Profile{UserID: 2, Location: "Colombo"}).Error)
	require.NoError(t, gdb.Create(&db.Profile{UserID: 3, Location: "Kandy"}).Error)
	require.NoError(t, gdb.Create(&db.Profile{UserID: 4, Location: ""}).Error)

	candidates := repository.NewCandidateRepository(gdb)
	pool, err := candidates.EligibleProfiles(ctx, 1, "Colombo")
	require.NoError(t, err)

	ids := map[uint64]bool{}
	for _, p := range pool {
		ids[p.UserID] = true
	}
	assert.True(t, ids[2], "same location eligible")
	assert.False(t, ids[3], "other location filtered out")
	assert.True(t, ids[4], "unset location stays eligible")
}

func TestCandidateExcludesInactiveUsers(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	seedUsers(t, gdb, 3)
	for i := uint64(1); i <= 3; i++ {
		require.NoError(t, gdb.Create(&db.Profile{UserID: i}).Error)
	}
	require.NoError(t, gdb.Model(&db.User{}).Where("id = ?", 3).Update("active", false).Error)

	candidates := repository.NewCandidateRepository(gdb)
	pool, err := candidates.EligibleProfiles(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, pool, 1)
	assert.Equal(t, uint64(2), pool[0].UserID)
}
