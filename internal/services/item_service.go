package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/itemboard/itemboard-be/internal/apperrors"
	"github.com/itemboard/itemboard-be/internal/models"
	"github.com/itemboard/itemboard-be/internal/store"
)

// ItemServiceProvider defines the interface for the item service.
type ItemServiceProvider interface {
	GetAll(ownerID string) ([]models.Item, error)
	Get(ownerID, id string) (models.Item, error)
	Create(ownerID, name string, price float64) (models.Item, error)
	Update(ownerID, id, name string, price float64) (models.Item, error)
	Delete(ownerID, id string) error
}

// ItemService provides owner-scoped CRUD over the item store.
type ItemService struct {
	items store.ItemStore
}

// NewItemService creates a new ItemService.
func NewItemService(items store.ItemStore) *ItemService {
	return &ItemService{items: items}
}

func checkItem(name string, price float64) error {
	var violations []apperrors.FieldError
	if strings.TrimSpace(name) == "" {
		violations = append(violations, apperrors.FieldError{Field: "name", Message: "Name is required"})
	}
	if price < 0 {
		violations = append(violations, apperrors.FieldError{Field: "price", Message: "Price must not be negative"})
	}
	if len(violations) > 0 {
		return apperrors.Validation(violations)
	}
	return nil
}

// GetAll lists the account's items.
func (s *ItemService) GetAll(ownerID string) ([]models.Item, error) {
	return s.items.List(ownerID)
}

// Get retrieves one of the account's items.
func (s *ItemService) Get(ownerID, id string) (models.Item, error) {
	return s.items.Get(ownerID, id)
}

// Create stores a new item for the account.
func (s *ItemService) Create(ownerID, name string, price float64) (models.Item, error) {
	if err := checkItem(name, price); err != nil {
		return models.Item{}, err
	}

	item := models.Item{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(name),
		Price:     price,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.items.Create(item); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

// Update rewrites an item's name and price.
func (s *ItemService) Update(ownerID, id, name string, price float64) (models.Item, error) {
	if err := checkItem(name, price); err != nil {
		return models.Item{}, err
	}

	item := models.Item{ID: id, OwnerID: ownerID, Name: strings.TrimSpace(name), Price: price}
	if err := s.items.Update(item); err != nil {
		return models.Item{}, err
	}
	return s.items.Get(ownerID, id)
}

// Delete removes one of the account's items.
func (s *ItemService) Delete(ownerID, id string) error {
	return s.items.Delete(ownerID, id)
}
