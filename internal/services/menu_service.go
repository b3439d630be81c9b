package services

import (
	"database/sql"
	"errors"
	"fmt"

	"qr_dine_backend/internal/models"
	"qr_dine_backend/internal/repositories"
	"qr_dine_backend/pkg/utils"
)

// --- DTOs ---

// CreateMenuItemRequest creates or fully updates a menu item.
type CreateMenuItemRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Category     string  `json:"category" binding:"required"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	IsVeg        bool    `json:"is_veg"`
	Available    *bool   `json:"available"`
	DisplayOrder int     `json:"display_order"`
	ImageURL     string  `json:"image_url"`
}

// DeleteMenuItemResult tells the caller whether the row was removed or only
// marked unavailable.
type DeleteMenuItemResult struct {
	ID      string            `json:"id"`
	Deleted models.DeleteMode `json:"deleted"`
}

// --- MenuService Interface ---
type MenuService interface {
	Create(restaurantID string, req CreateMenuItemRequest) (*models.MenuItem, error)
	GetByID(id, restaurantID string) (*models.MenuItem, error)
	List(restaurantID string, filters models.MenuFilters) ([]models.MenuItem, error)
	Update(id, restaurantID string, req CreateMenuItemRequest) (*models.MenuItem, error)
	Delete(id, restaurantID string) (*DeleteMenuItemResult, error)
	Reorder(restaurantID string, orderedIDs []string) error
}

type menuService struct {
	menuRepo repositories.MenuRepository
	db       *sql.DB
}

// NewMenuService creates a new instance of MenuService.
func NewMenuService(mr repositories.MenuRepository, db *sql.DB) MenuService {
	return &menuService{menuRepo: mr, db: db}
}

func (s *menuService) Create(restaurantID string, req CreateMenuItemRequest) (*models.MenuItem, error) {
	item := &models.MenuItem{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Description:  models.NewNullString(req.Description),
		Category:     req.Category,
		Price:        req.Price,
		IsVeg:        req.IsVeg,
		Available:    true,
		DisplayOrder: req.DisplayOrder,
		ImageURL:     models.NewNullString(req.ImageURL),
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	if _, err := s.menuRepo.Create(s.db, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *menuService) GetByID(id, restaurantID string) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item.RestaurantID != restaurantID {
		return nil, repositories.ErrNotFound
	}
	return item, nil
}

func (s *menuService) List(restaurantID string, filters models.MenuFilters) ([]models.MenuItem, error) {
	return s.menuRepo.ListByRestaurant(restaurantID, filters)
}

func (s *menuService) Update(id, restaurantID string, req CreateMenuItemRequest) (*models.MenuItem, error) {
	item, err := s.GetByID(id, restaurantID)
	if err != nil {
		return nil, err
	}
	item.Name = req.Name
	item.Description = models.NewNullString(req.Description)
	item.Category = req.Category
	item.Price = req.Price
	item.IsVeg = req.IsVeg
	item.DisplayOrder = req.DisplayOrder
	item.ImageURL = models.NewNullString(req.ImageURL)
	if req.Available != nil {
		item.Available = *req.Available
	}
	if err := s.menuRepo.Update(s.db, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete resolves to a hard delete when no order item references the menu
// item, and a soft delete (available=false) otherwise, preserving order
// history. Both the reference check and the delete run in one transaction
// with the row locked, and a foreign-key violation on the hard-delete path
// still falls back to soft delete.
func (s *menuService) Delete(id, restaurantID string) (*DeleteMenuItemResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.menuRepo.LockForDelete(tx, id, restaurantID); err != nil {
		return nil, err
	}

	refs, err := s.menuRepo.CountOrderReferences(tx, id)
	if err != nil {
		return nil, err
	}

	mode := models.DeleteModeHard
	if refs > 0 {
		mode = models.DeleteModeSoft
	}

	if mode == models.DeleteModeHard {
		err = s.menuRepo.HardDelete(tx, id)
		if errors.Is(err, repositories.ErrForeignKeyViolation) {
			// A reference appeared despite the lock; fall back to soft delete.
			utils.LogWarn("menu item hard delete hit a foreign key, soft-deleting instead",
				map[string]interface{}{"menu_item_id": id})
			mode = models.DeleteModeSoft
			err = s.menuRepo.SoftDelete(tx, id)
		}
	} else {
		err = s.menuRepo.SoftDelete(tx, id)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit menu item deletion: %w", err)
	}
	return &DeleteMenuItemResult{ID: id, Deleted: mode}, nil
}

func (s *menuService) Reorder(restaurantID string, orderedIDs []string) error {
	if len(orderedIDs) == 0 {
		return fmt.Errorf("%w: no menu item ids given", ErrValidation)
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.menuRepo.ReorderItems(tx, restaurantID, orderedIDs); err != nil {
		return err
	}
	return tx.Commit()
}
