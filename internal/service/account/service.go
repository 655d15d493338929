// Package account covers the auth and profile collaborators: registration,
// login with bearer-token issuance, token validation, and profile upsert.
package account

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sahanr/mangala/internal/app"
	"github.com/sahanr/mangala/internal/config"
	"github.com/sahanr/mangala/internal/db"
	svcerr "github.com/sahanr/mangala/internal/errors"
	"github.com/sahanr/mangala/internal/repository"
)

// Service implements registration, login, and profile management.
type Service struct {
	appCtx   *app.AppContext
	users    *repository.UserRepository
	profiles *repository.ProfileRepository

	jwtSecret []byte
	jwtTTL    time.Duration
}

// New creates the account service with dependencies from AppContext.
func New(appCtx *app.AppContext, cfg *config.Config) *Service {
	return &Service{
		appCtx:    appCtx,
		users:     repository.NewUserRepository(appCtx.DB),
		profiles:  repository.NewProfileRepository(appCtx.DB),
		jwtSecret: []byte(cfg.JWT.Secret),
		jwtTTL:    time.Duration(cfg.JWT.TTLHours) * time.Hour,
	}
}

// Register creates a new user with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, email, password, name string) (*db.User, error) {
	if email == "" || password == "" || name == "" {
		return nil, fmt.Errorf("email, password and name are required: %w", svcerr.ErrInvalidOperation)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email %q: %w", email, svcerr.ErrAlreadyExists)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &db.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.appCtx.Logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies credentials and issues a signed bearer token.
// Wrong email, wrong password, and deactivated account all surface as the
// same ErrUnauthorized so callers cannot probe which one failed.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("login: %w", svcerr.ErrUnauthorized)
	}
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}

	if !user.Active {
		return "", fmt.Errorf("login: %w", svcerr.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", fmt.Errorf("login: %w", svcerr.ErrUnauthorized)
	}

	return s.issueToken(user.ID)
}

func (s *Service) issueToken(userID uint64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtTTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken resolves a bearer token to the stable user identifier it
// carries, or fails with ErrUnauthorized.
func (s *Service) ValidateToken(token string) (uint64, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, fmt.Errorf("invalid token: %w", svcerr.ErrUnauthorized)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, fmt.Errorf("invalid claims: %w", svcerr.ErrUnauthorized)
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject: %w", svcerr.ErrUnauthorized)
	}
	return userID, nil
}

// ProfileInput is the upsert payload for a user's profile.
type ProfileInput struct {
	DateOfBirth string // YYYY-MM-DD
	Gender      string
	CivilStatus string
	Religion    string
	Location    string
	Bio         string
	Interests   []string
	HeightCM    uint16
	WeightKG    uint16
	AvatarURL   string
}

// UpsertProfile lazily creates the user's profile on first submission and
// overwrites it thereafter.
func (s *Service) UpsertProfile(ctx context.Context, userID uint64, in ProfileInput) (*db.Profile, error) {
	dob, err := time.Parse("2006-01-02", in.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("date_of_birth must be YYYY-MM-DD: %w", svcerr.ErrInvalidOperation)
	}
	if dob.After(time.Now()) {
		return nil, fmt.Errorf("date_of_birth is in the future: %w", svcerr.ErrInvalidOperation)
	}

	profile := &db.Profile{
		UserID:      userID,
		DateOfBirth: dob,
		Gender:      in.Gender,
		CivilStatus: in.CivilStatus,
		Religion:    in.Religion,
		Location:    in.Location,
		Bio:         in.Bio,
		HeightCM:    in.HeightCM,
		WeightKG:    in.WeightKG,
		AvatarURL:   in.AvatarURL,
	}
	profile.SetInterestTags(in.Interests)

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return profile, nil
}

// GetProfile fetches a user's profile.
func (s *Service) GetProfile(ctx context.Context, userID uint64) (*db.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("profile for user %d: %w", userID, svcerr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return profile, nil
}
