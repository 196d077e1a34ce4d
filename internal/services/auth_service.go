package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/itemboard/itemboard-be/internal/apperrors"
	"github.com/itemboard/itemboard-be/internal/auth"
	"github.com/itemboard/itemboard-be/internal/models"
	"github.com/itemboard/itemboard-be/internal/store"
	"github.com/itemboard/itemboard-be/internal/validation"
)

// AuthServiceProvider defines the interface for the auth service.
type AuthServiceProvider interface {
	Register(username, password, confirmPassword string) (RegisterResult, error)
	Authenticate(username, password string) (LoginResult, error)
	CurrentPrincipal(accountID string) (models.Account, error)
	ValidateField(field, value, password string) []string
}

// RegisterResult is returned on successful registration. Strength is
// informational only; it never gates the registration.
type RegisterResult struct {
	Account  models.Account
	Token    string
	Strength int
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Account models.Account
	Token   string
}

// AuthService composes the credential validator, password hasher, token
// service and account store into the register, login and current-principal
// operations.
type AuthService struct {
	accounts  store.AccountStore
	hasher    *auth.Hasher
	tokens    *auth.TokenService
	validator *validation.Validator
}

// NewAuthService creates a new AuthService.
func NewAuthService(accounts store.AccountStore, hasher *auth.Hasher, tokens *auth.TokenService, validator *validation.Validator) *AuthService {
	return &AuthService{
		accounts:  accounts,
		hasher:    hasher,
		tokens:    tokens,
		validator: validator,
	}
}

// Register validates the credentials, creates the account and issues a
// token for it. Validation failures and username conflicts leave the store
// untouched.
func (s *AuthService) Register(username, password, confirmPassword string) (RegisterResult, error) {
	username = strings.TrimSpace(username)

	if violations := s.validator.CheckSignup(username, password, confirmPassword); len(violations) > 0 {
		return RegisterResult{}, apperrors.Validation(violations)
	}

	// Pre-check for a friendlier conflict response. The UNIQUE constraint
	// in Insert below still decides races.
	_, err := s.accounts.FindByUsername(username)
	switch {
	case err == nil:
		return RegisterResult{}, apperrors.Conflict(username)
	case !errors.Is(err, apperrors.ErrNoSuchAccount):
		return RegisterResult{}, err
	}

	strength := auth.StrengthScore(password)

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return RegisterResult{}, err
	}

	account := models.Account{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.accounts.Insert(account); err != nil {
		return RegisterResult{}, err
	}

	token, err := s.tokens.Issue(account.ID, account.Username)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("issue token: %w", err)
	}

	log.Info().Str("account_id", account.ID).Str("username", account.Username).Msg("Account registered")

	// Never hand the hash back to callers.
	account.PasswordHash = ""
	return RegisterResult{Account: account, Token: token, Strength: strength}, nil
}

// Authenticate verifies the credentials and issues a token. Unknown
// usernames and wrong passwords are reported on their own fields; the
// distinction is a deliberate usability choice carried over from the
// original product.
func (s *AuthService) Authenticate(username, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)

	if violations := s.validator.CheckLogin(username, password); len(violations) > 0 {
		return LoginResult{}, apperrors.Validation(violations)
	}

	account, err := s.accounts.FindByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoSuchAccount) {
			return LoginResult{}, apperrors.Authentication(validation.FieldUsername, "Username doesn't exist")
		}
		return LoginResult{}, err
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return LoginResult{}, apperrors.Authentication(validation.FieldPassword, "Password is incorrect")
	}

	token, err := s.tokens.Issue(account.ID, account.Username)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	account.PasswordHash = ""
	return LoginResult{Account: account, Token: token}, nil
}

// CurrentPrincipal resolves the account behind a verified token. The
// password hash is never part of the result.
func (s *AuthService) CurrentPrincipal(accountID string) (models.Account, error) {
	account, err := s.accounts.FindByID(accountID)
	if err != nil {
		return models.Account{}, err
	}
	account.PasswordHash = ""
	return account, nil
}

// ValidateField applies the single-field rule subset, for the real-time
// validation endpoint.
func (s *AuthService) ValidateField(field, value, password string) []string {
	return s.validator.CheckField(field, value, password)
}
