package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"qr_dine_backend/internal/models"

	"github.com/google/uuid"
)

// MenuRepository defines the interface for menu item database operations.
type MenuRepository interface {
	Create(executor SQLExecutor, item *models.MenuItem) (string, error)
	GetByID(id string) (*models.MenuItem, error)
	ListByRestaurant(restaurantID string, filters models.MenuFilters) ([]models.MenuItem, error)
	Update(executor SQLExecutor, item *models.MenuItem) error
	ReorderItems(executor SQLExecutor, restaurantID string, orderedIDs []string) error

	// Deletion support. LockForDelete takes a row lock so the reference count
	// cannot change between the check and the delete.
	LockForDelete(tx *sql.Tx, id, restaurantID string) error
	CountOrderReferences(executor SQLExecutor, id string) (int64, error)
	HardDelete(executor SQLExecutor, id string) error
	SoftDelete(executor SQLExecutor, id string) error
}

type menuRepository struct {
	db *sql.DB
}

// NewMenuRepository creates a new instance of MenuRepository.
func NewMenuRepository(db *sql.DB) MenuRepository {
	return &menuRepository{db: db}
}

const menuColumns = `id, restaurant_id, name, description, category, price,
	is_veg, available, display_order, image_url, created_at, updated_at`

func scanMenuItem(s scanner) (*models.MenuItem, error) {
	m := &models.MenuItem{}
	err := s.Scan(
		&m.ID, &m.RestaurantID, &m.Name, &m.Description, &m.Category, &m.Price,
		&m.IsVeg, &m.Available, &m.DisplayOrder, &m.ImageURL, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *menuRepository) Create(executor SQLExecutor, item *models.MenuItem) (string, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	query := `INSERT INTO menu_items
	            (id, restaurant_id, name, description, category, price, is_veg,
	             available, display_order, image_url, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := executor.Exec(query,
		item.ID, item.RestaurantID, item.Name, item.Description, item.Category, item.Price,
		item.IsVeg, item.Available, item.DisplayOrder, item.ImageURL, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return "", classifyError(err, "creating menu item")
	}
	return item.ID, nil
}

func (r *menuRepository) GetByID(id string) (*models.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items WHERE id = $1`
	m, err := scanMenuItem(r.db.QueryRow(query, id))
	if err != nil {
		return nil, classifyError(err, fmt.Sprintf("getting menu item %s", id))
	}
	return m, nil
}

func (r *menuRepository) ListByRestaurant(restaurantID string, filters models.MenuFilters) ([]models.MenuItem, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + menuColumns + ` FROM menu_items WHERE restaurant_id = $1`)

	args := []interface{}{restaurantID}
	argCounter := 2

	if filters.Category != nil && *filters.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND category = $%d", argCounter))
		args = append(args, *filters.Category)
		argCounter++
	}
	if filters.Available != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND available = $%d", argCounter))
		args = append(args, *filters.Available)
		argCounter++
	} else if !filters.IncludeHidden {
		// Public QR menus only see available items.
		queryBuilder.WriteString(" AND available = true")
	}
	if filters.VegOnly {
		queryBuilder.WriteString(" AND is_veg = true")
	}
	queryBuilder.WriteString(" ORDER BY display_order ASC, name ASC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, classifyError(err, "listing menu items")
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, classifyError(err, "scanning menu item row")
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "iterating menu item rows")
	}
	return items, nil
}

func (r *menuRepository) Update(executor SQLExecutor, item *models.MenuItem) error {
	query := `UPDATE menu_items SET
	            name = $1, description = $2, category = $3, price = $4, is_veg = $5,
	            available = $6, display_order = $7, image_url = $8, updated_at = $9
	          WHERE id = $10 AND restaurant_id = $11`
	res, err := executor.Exec(query,
		item.Name, item.Description, item.Category, item.Price, item.IsVeg,
		item.Available, item.DisplayOrder, item.ImageURL, time.Now(),
		item.ID, item.RestaurantID,
	)
	if err != nil {
		return classifyError(err, fmt.Sprintf("updating menu item %s", item.ID))
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderItems rewrites display_order following the given ID order.
func (r *menuRepository) ReorderItems(executor SQLExecutor, restaurantID string, orderedIDs []string) error {
	for i, id := range orderedIDs {
		_, err := executor.Exec(
			`UPDATE menu_items SET display_order = $1, updated_at = $2 WHERE id = $3 AND restaurant_id = $4`,
			i, time.Now(), id, restaurantID,
		)
		if err != nil {
			return classifyError(err, fmt.Sprintf("reordering menu item %s", id))
		}
	}
	return nil
}

func (r *menuRepository) LockForDelete(tx *sql.Tx, id, restaurantID string) error {
	var locked string
	err := tx.QueryRow(
		`SELECT id FROM menu_items WHERE id = $1 AND restaurant_id = $2 FOR UPDATE`,
		id, restaurantID,
	).Scan(&locked)
	if err != nil {
		return classifyError(err, fmt.Sprintf("locking menu item %s", id))
	}
	return nil
}

func (r *menuRepository) CountOrderReferences(executor SQLExecutor, id string) (int64, error) {
	var count int64
	err := executor.QueryRow(
		`SELECT COUNT(*) FROM order_items WHERE menu_item_id = $1`, id,
	).Scan(&count)
	if err != nil {
		return 0, classifyError(err, fmt.Sprintf("counting order references for menu item %s", id))
	}
	return count, nil
}

func (r *menuRepository) HardDelete(executor SQLExecutor, id string) error {
	res, err := executor.Exec(`DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return classifyError(err, fmt.Sprintf("deleting menu item %s", id))
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *menuRepository) SoftDelete(executor SQLExecutor, id string) error {
	res, err := executor.Exec(
		`UPDATE menu_items SET available = false, updated_at = $1 WHERE id = $2`,
		time.Now(), id,
	)
	if err != nil {
		return classifyError(err, fmt.Sprintf("soft-deleting menu item %s", id))
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}
