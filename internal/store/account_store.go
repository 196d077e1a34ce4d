// Package store provides the persistence gateways the services consume.
package store

import (
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"

	"github.com/itemboard/itemboard-be/internal/apperrors"
	"github.com/itemboard/itemboard-be/internal/models"
)

// AccountStore is the gateway the auth service uses to persist accounts.
// Insert must enforce username uniqueness atomically: of two racing
// inserts for the same username exactly one wins and the other receives
// the conflict error.
type AccountStore interface {
	FindByUsername(username string) (models.Account, error)
	FindByID(id string) (models.Account, error)
	Insert(account models.Account) error
}

// SQLiteAccountStore implements AccountStore on the shared SQLite handle.
// The UNIQUE constraint on accounts.username provides the atomic
// insert-if-absent semantics.
type SQLiteAccountStore struct {
	db *sql.DB
}

// NewAccountStore creates a SQLiteAccountStore.
func NewAccountStore(db *sql.DB) *SQLiteAccountStore {
	return &SQLiteAccountStore{db: db}
}

// FindByUsername retrieves an account by username, including the password
// hash. Absence is apperrors.ErrNoSuchAccount.
func (s *SQLiteAccountStore) FindByUsername(username string) (models.Account, error) {
	var account models.Account
	row := s.db.QueryRow("SELECT id, username, password_hash, created_at FROM accounts WHERE username = ?", username)
	err := row.Scan(&account.ID, &account.Username, &account.PasswordHash, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, apperrors.ErrNoSuchAccount
		}
		return models.Account{}, apperrors.Store(err)
	}
	return account, nil
}

// FindByID retrieves an account by id. The password hash is not selected;
// principal lookups never need it.
func (s *SQLiteAccountStore) FindByID(id string) (models.Account, error) {
	var account models.Account
	row := s.db.QueryRow("SELECT id, username, created_at FROM accounts WHERE id = ?", id)
	err := row.Scan(&account.ID, &account.Username, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, apperrors.ErrNoSuchAccount
		}
		return models.Account{}, apperrors.Store(err)
	}
	return account, nil
}

// Insert persists a new account. A duplicate username surfaces as the
// username conflict, never a silent overwrite.
func (s *SQLiteAccountStore) Insert(account models.Account) error {
	stmt, err := s.db.Prepare("INSERT INTO accounts(id, username, password_hash, created_at) VALUES(?, ?, ?, ?)")
	if err != nil {
		return apperrors.Store(err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(account.ID, account.Username, account.PasswordHash, account.CreatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return apperrors.Conflict(account.Username)
		}
		return apperrors.Store(err)
	}
	return nil
}
