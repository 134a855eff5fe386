// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and token issuance, plus the
// user lookup the authentication middleware resolves token subjects with.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/natekim416/tuckserver/internal/common"
	"github.com/natekim416/tuckserver/internal/dbx"
	"github.com/natekim416/tuckserver/internal/server/auth"
	"github.com/natekim416/tuckserver/internal/server/config"
	"github.com/natekim416/tuckserver/internal/server/models"
	"github.com/natekim416/tuckserver/internal/server/repositories/repomanager"
)

const minPasswordLength = 8

// UserService provides authentication-related operations:
//   - Register: validate credentials, create the account, mint a token
//   - Login: verify credentials and mint a token
//   - FindByID: resolve a token subject to an account
type UserService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	jwtSecret   []byte
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db dbx.DBTX, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		jwtSecret:   []byte(cfg.SecretKey),
	}
}

// Register creates a new account for the given credentials and returns it
// together with a fresh token. The email is lowercased and trimmed before
// any lookup so that the address the user typed and the address on file
// cannot drift apart. Validation failures report common.ErrorValidation,
// an email already on file reports common.ErrorConflict.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	email = NormalizeEmail(email)

	if !strings.Contains(email, "@") || len(password) < minPasswordLength {
		return nil, "", common.ErrorValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	repo := s.repomanager.Users(s.db)
	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, "", common.ErrorConflict
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, time.Now())
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Login verifies the provided credentials and, on success, returns the
// account and a fresh token. Unknown emails and wrong passwords both report
// common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = NormalizeEmail(email)

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, time.Now())
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// FindByID resolves a user id (a verified token subject) to an account.
// A missing account reports common.ErrorNotFound; the caller decides whether
// that is fatal for the request.
func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
