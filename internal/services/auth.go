package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"taskhub/backend/internal/cache"
	"taskhub/backend/internal/models"
	"taskhub/backend/internal/repositories"
	"taskhub/backend/internal/validation"

	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterRequest carries the registration form. Pointer fields distinguish
// absent values from empty ones.
type RegisterRequest struct {
	Name                 *string `json:"name"`
	Email                *string `json:"email"`
	Password             *string `json:"password"`
	PasswordConfirmation *string `json:"password_confirmation"`
}

type LoginRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// AuthService issues and verifies the opaque bearer tokens of the API.
// Tokens are "<id>|<secret>" strings; only a sha256 digest of the secret is
// stored, and verification is a store lookup plus constant-time compare,
// never signature decoding.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, req LoginRequest) (*models.User, string, error)
	Logout(ctx context.Context, userID uint) error
	Authenticate(ctx context.Context, plainToken string) (*models.User, error)
}

type AuthServiceImpl struct {
	users      repositories.UserRepository
	tokens     repositories.TokenRepository
	sessions   *cache.TokenCache
	bcryptCost int
}

// NewAuthService wires the auth service with its collaborators. sessions
// may be nil, which disables session caching.
func NewAuthService(users repositories.UserRepository, tokens repositories.TokenRepository, sessions *cache.TokenCache, bcryptCost int) *AuthServiceImpl {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthServiceImpl{users: users, tokens: tokens, sessions: sessions, bcryptCost: bcryptCost}
}

func (s *AuthServiceImpl) Register(ctx context.Context, req RegisterRequest) (*models.User, string, error) {
	errs := validation.Errors{}
	validation.UserName(errs, req.Name)
	validation.UserEmail(errs, req.Email)
	validation.UserPassword(errs, req.Password, req.PasswordConfirmation)

	if req.Email != nil && *req.Email != "" {
		taken, err := s.users.EmailExists(ctx, *req.Email)
		if err != nil {
			return nil, "", err
		}
		if taken {
			validation.EmailTaken(errs)
		}
	}

	if errs.Any() {
		return nil, "", &ValidationError{Fields: errs}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         *req.Name,
		Email:        *req.Email,
		PasswordHash: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	plainToken, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, plainToken, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, req LoginRequest) (*models.User, string, error) {
	errs := validation.Errors{}
	validation.LoginField(errs, "email", req.Email)
	validation.LoginField(errs, "password", req.Password)
	if errs.Any() {
		return nil, "", &ValidationError{Fields: errs}
	}

	user, err := s.users.FindByEmail(ctx, *req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same failure as a wrong password so callers cannot probe
			// which emails are registered.
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*req.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	plainToken, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, plainToken, nil
}

// Logout revokes every token the user holds. Succeeds even when the user
// has none.
func (s *AuthServiceImpl) Logout(ctx context.Context, userID uint) error {
	if err := s.tokens.DeleteAllForUser(ctx, userID); err != nil {
		return err
	}
	return s.sessions.InvalidateUser(ctx, userID)
}

func (s *AuthServiceImpl) Authenticate(ctx context.Context, plainToken string) (*models.User, error) {
	digest := digestOf(plainToken)

	if userID, err := s.sessions.Get(ctx, digest); err == nil {
		if user, err := s.users.FindByID(ctx, userID); err == nil {
			return user, nil
		}
	}

	tokenID, secret, ok := splitToken(plainToken)
	if !ok {
		return nil, ErrUnauthenticated
	}

	token, err := s.tokens.FindByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(token.TokenHash), []byte(digestOf(secret))) != 1 {
		return nil, ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	// Best effort; a failed cache write only costs the next lookup.
	_ = s.sessions.Put(ctx, digest, user.ID)

	return user, nil
}

func (s *AuthServiceImpl) issueToken(ctx context.Context, userID uint) (string, error) {
	tokenID, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("failed to generate token id: %w", err)
	}

	secretBytes := make([]byte, 20)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", fmt.Errorf("failed to generate token secret: %w", err)
	}
	secret := hex.EncodeToString(secretBytes)

	token := &models.AuthToken{
		ID:        tokenID,
		UserID:    userID,
		Name:      "token",
		TokenHash: digestOf(secret),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return "", err
	}

	plain := tokenID.String() + "|" + secret
	_ = s.sessions.Put(ctx, digestOf(plain), userID)

	return plain, nil
}

func splitToken(plain string) (uuid.UUID, string, bool) {
	idStr, secret, found := strings.Cut(plain, "|")
	if !found || secret == "" {
		return uuid.Nil, "", false
	}
	id, err := uuid.FromString(idStr)
	if err != nil {
		return uuid.Nil, "", false
	}
	return id, secret, true
}

func digestOf(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
