package store

import (
	"database/sql"
	"errors"

	"github.com/itemboard/itemboard-be/internal/apperrors"
	"github.com/itemboard/itemboard-be/internal/models"
)

// ItemStore is the gateway for the item records. All reads and writes are
// scoped to the owning account.
type ItemStore interface {
	List(ownerID string) ([]models.Item, error)
	Get(ownerID, id string) (models.Item, error)
	Create(item models.Item) error
	Update(item models.Item) error
	Delete(ownerID, id string) error
}

// SQLiteItemStore implements ItemStore on the shared SQLite handle.
type SQLiteItemStore struct {
	db *sql.DB
}

// NewItemStore creates a SQLiteItemStore.
func NewItemStore(db *sql.DB) *SQLiteItemStore {
	return &SQLiteItemStore{db: db}
}

// List returns every item the account owns, newest first.
func (s *SQLiteItemStore) List(ownerID string) ([]models.Item, error) {
	rows, err := s.db.Query("SELECT id, owner_id, name, price, created_at FROM items WHERE owner_id = ? ORDER BY created_at DESC", ownerID)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Name, &item.Price, &item.CreatedAt); err != nil {
			return nil, apperrors.Store(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(err)
	}
	return items, nil
}

// Get retrieves one item. Items of other owners are indistinguishable from
// missing ones.
func (s *SQLiteItemStore) Get(ownerID, id string) (models.Item, error) {
	var item models.Item
	row := s.db.QueryRow("SELECT id, owner_id, name, price, created_at FROM items WHERE id = ? AND owner_id = ?", id, ownerID)
	err := row.Scan(&item.ID, &item.OwnerID, &item.Name, &item.Price, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, apperrors.ErrNoSuchItem
		}
		return models.Item{}, apperrors.Store(err)
	}
	return item, nil
}

// Create persists a new item.
func (s *SQLiteItemStore) Create(item models.Item) error {
	stmt, err := s.db.Prepare("INSERT INTO items(id, owner_id, name, price, created_at) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return apperrors.Store(err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(item.ID, item.OwnerID, item.Name, item.Price, item.CreatedAt); err != nil {
		return apperrors.Store(err)
	}
	return nil
}

// Update rewrites an item's name and price.
func (s *SQLiteItemStore) Update(item models.Item) error {
	res, err := s.db.Exec("UPDATE items SET name = ?, price = ? WHERE id = ? AND owner_id = ?", item.Name, item.Price, item.ID, item.OwnerID)
	if err != nil {
		return apperrors.Store(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.Store(err)
	}
	if affected == 0 {
		return apperrors.ErrNoSuchItem
	}
	return nil
}

// Delete removes an item.
func (s *SQLiteItemStore) Delete(ownerID, id string) error {
	res, err := s.db.Exec("DELETE FROM items WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return apperrors.Store(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.Store(err)
	}
	if affected == 0 {
		return apperrors.ErrNoSuchItem
	}
	return nil
}
