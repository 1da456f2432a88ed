package item

import (
	itemRepo "tripdesk/database/repository/item"
	"tripdesk/models"

	"github.com/google/uuid"
)

// ItemService manages the billable item catalogue.
type ItemService interface {
	CreateItem(item models.Item) (*models.Item, error)
	UpdateItem(item models.Item) (*models.Item, error)
	DeleteItem(id string) error
	GetItemByID(id string) (*models.Item, error)
	GetAllItems() ([]models.Item, error)
}

// DefaultItemService is the production implementation.
type DefaultItemService struct {
	Repo itemRepo.ItemRepository
}

// CreateItem assigns an id and stores the item.
func (s *DefaultItemService) CreateItem(item models.Item) (*models.Item, error) {
	item.ID = uuid.New().String()
	if err := s.Repo.Create(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem persists changes to an existing item.
func (s *DefaultItemService) UpdateItem(item models.Item) (*models.Item, error) {
	current, err := s.Repo.GetByID(item.ID)
	if err != nil {
		return nil, err
	}
	item.CreatedAt = current.CreatedAt

	if err := s.Repo.Update(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes an item from the catalogue.
func (s *DefaultItemService) DeleteItem(id string) error {
	return s.Repo.Delete(id)
}

// GetItemByID fetches one item.
func (s *DefaultItemService) GetItemByID(id string) (*models.Item, error) {
	return s.Repo.GetByID(id)
}

// GetAllItems lists the catalogue.
func (s *DefaultItemService) GetAllItems() ([]models.Item, error) {
	return s.Repo.GetAll()
}
