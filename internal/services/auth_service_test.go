package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/itemboard/itemboard-be/internal/apperrors"
	"github.com/itemboard/itemboard-be/internal/auth"
	"github.com/itemboard/itemboard-be/internal/models"
	"github.com/itemboard/itemboard-be/internal/validation"
)

// fakeAccountStore is an in-memory AccountStore with the same uniqueness
// contract as the SQLite gateway.
type fakeAccountStore struct {
	byUsername map[string]models.Account
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{byUsername: make(map[string]models.Account)}
}

func (f *fakeAccountStore) FindByUsername(username string) (models.Account, error) {
	account, ok := f.byUsername[username]
	if !ok {
		return models.Account{}, apperrors.ErrNoSuchAccount
	}
	return account, nil
}

func (f *fakeAccountStore) FindByID(id string) (models.Account, error) {
	for _, account := range f.byUsername {
		if account.ID == id {
			account.PasswordHash = ""
			return account, nil
		}
	}
	return models.Account{}, apperrors.ErrNoSuchAccount
}

func (f *fakeAccountStore) Insert(account models.Account) error {
	if _, ok := f.byUsername[account.Username]; ok {
		return apperrors.Conflict(account.Username)
	}
	f.byUsername[account.Username] = account
	return nil
}

func newTestAuthService(accounts *fakeAccountStore) (*AuthService, *auth.TokenService) {
	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	return NewAuthService(accounts, auth.NewHasher(bcrypt.MinCost), tokens, validation.New()), tokens
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	accounts := newFakeAccountStore()
	svc, tokens := newTestAuthService(accounts)

	result, err := svc.Register("longuser1", "Abcdef1!", "Abcdef1!")
	require.NoError(t, err)

	assert.Equal(t, "longuser1", result.Account.Username)
	assert.Empty(t, result.Account.PasswordHash)
	assert.NotEmpty(t, result.Account.ID)
	assert.Equal(t, 4, result.Strength)

	claims, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.Account.ID, claims.UserID)
	assert.Equal(t, "longuser1", claims.Username)

	stored := accounts.byUsername["longuser1"]
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "Abcdef1!", stored.PasswordHash)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	t.Parallel()

	accounts := newFakeAccountStore()
	svc, _ := newTestAuthService(accounts)

	_, err := svc.Register("longuser1", "Abcdef1!", "Abcdef1!")
	require.NoError(t, err)

	_, err = svc.Register("longuser1", "Ghijkl2?", "Ghijkl2?")
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
	require.Len(t, appErr.FieldErrors, 1)
	assert.Equal(t, "username", appErr.FieldErrors[0].Field)

	// The first account is untouched and no second one exists.
	assert.Len(t, accounts.byUsername, 1)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	t.Parallel()

	accounts := newFakeAccountStore()
	svc, _ := newTestAuthService(accounts)

	_, err := svc.Register("longuser1", "short", "short")
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)

	var messages []string
	for _, fe := range appErr.FieldErrors {
		messages = append(messages, fe.Message)
	}
	assert.Contains(t, messages, "Password must be at least 8 characters long")
	assert.Contains(t, messages, "Password must contain at least one uppercase letter")
	assert.Contains(t, messages, "Password must contain at least one special character")

	assert.Empty(t, accounts.byUsername, "no account may be created on validation failure")
}

func TestAuthService_Authenticate(t *testing.T) {
	t.Parallel()

	accounts := newFakeAccountStore()
	svc, tokens := newTestAuthService(accounts)

	_, err := svc.Register("longuser1", "Abcdef1!", "Abcdef1!")
	require.NoError(t, err)

	result, err := svc.Authenticate("longuser1", "Abcdef1!")
	require.NoError(t, err)
	assert.Equal(t, "longuser1", result.Account.Username)
	assert.Empty(t, result.Account.PasswordHash)

	claims, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.Account.ID, claims.UserID)
}

func TestAuthService_Authenticate_UnknownUsername(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(newFakeAccountStore())

	_, err := svc.Authenticate("neverseen", "Abcdef1!")
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeAuth, appErr.Code)
	require.Len(t, appErr.FieldErrors, 1)
	assert.Equal(t, "username", appErr.FieldErrors[0].Field)
	assert.Equal(t, "Username doesn't exist", appErr.FieldErrors[0].Message)
}

func TestAuthService_Authenticate_WrongPassword(t *testing.T) {
	t.Parallel()

	accounts := newFakeAccountStore()
	svc, _ := newTestAuthService(accounts)

	_, err := svc.Register("longuser1", "Abcdef1!", "Abcdef1!")
	require.NoError(t, err)

	_, err = svc.Authenticate("longuser1", "Wrong-pass1")
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeAuth, appErr.Code)
	require.Len(t, appErr.FieldErrors, 1)
	assert.Equal(t, "password", appErr.FieldErrors[0].Field)
	assert.Equal(t, "Password is incorrect", appErr.FieldErrors[0].Message)
}

func TestAuthService_Authenticate_EmptyFields(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(newFakeAccountStore())

	_, err := svc.Authenticate("", "")
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Len(t, appErr.FieldErrors, 2)
}

func TestAuthService_CurrentPrincipal(t *testing.T) {
	t.Parallel()

	accounts := newFakeAccountStore()
	svc, _ := newTestAuthService(accounts)

	reg, err := svc.Register("longuser1", "Abcdef1!", "Abcdef1!")
	require.NoError(t, err)

	account, err := svc.CurrentPrincipal(reg.Account.ID)
	require.NoError(t, err)
	assert.Equal(t, "longuser1", account.Username)
	assert.Empty(t, account.PasswordHash)

	_, err = svc.CurrentPrincipal("no-such-id")
	assert.True(t, errors.Is(err, apperrors.ErrNoSuchAccount))
}

func TestAuthService_ValidateField(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(newFakeAccountStore())

	assert.Empty(t, svc.ValidateField("username", "longuser1", ""))
	assert.Equal(t, []string{"Passwords do not match"}, svc.ValidateField("confirmPassword", "nope", "Abcdef1!"))
	assert.Equal(t, []string{"Invalid field"}, svc.ValidateField("email", "x", ""))
}
