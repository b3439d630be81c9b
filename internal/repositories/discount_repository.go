package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"qr_dine_backend/internal/models"

	"github.com/google/uuid"
)

// DiscountRepository defines the interface for discount database operations.
type DiscountRepository interface {
	Create(executor SQLExecutor, d *models.Discount) (string, error)
	GetByID(id string) (*models.Discount, error)
	GetByCode(restaurantID, code string) (*models.Discount, error)
	// LockByCode fetches the discount inside the caller's transaction with a
	// row lock, so usage accounting cannot race with another apply.
	LockByCode(tx *sql.Tx, restaurantID, code string) (*models.Discount, error)
	ListByRestaurant(restaurantID string) ([]models.Discount, error)
	Update(executor SQLExecutor, d *models.Discount) error
	Delete(executor SQLExecutor, id, restaurantID string) error
	RecordUsage(executor SQLExecutor, usage *models.DiscountUsage) (string, error)
	ListUsage(discountID string) ([]models.DiscountUsage, error)
}

type discountRepository struct {
	db *sql.DB
}

// NewDiscountRepository creates a new instance of DiscountRepository.
func NewDiscountRepository(db *sql.DB) DiscountRepository {
	return &discountRepository{db: db}
}

const discountColumns = `id, restaurant_id, code, description, discount_type, value,
	max_discount_amount, min_order_amount, start_date, end_date, usage_limit,
	usage_count, qr_only, active, created_at, updated_at`

func scanDiscount(s scanner) (*models.Discount, error) {
	d := &models.Discount{}
	err := s.Scan(
		&d.ID, &d.RestaurantID, &d.Code, &d.Description, &d.DiscountType, &d.Value,
		&d.MaxDiscountAmount, &d.MinOrderAmount, &d.StartDate, &d.EndDate, &d.UsageLimit,
		&d.UsageCount, &d.QROnly, &d.Active, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *discountRepository) Create(executor SQLExecutor, d *models.Discount) (string, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now

	query := `INSERT INTO discounts
	            (id, restaurant_id, code, description, discount_type, value,
	             max_discount_amount, min_order_amount, start_date, end_date,
	             usage_limit, usage_count, qr_only, active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := executor.Exec(query,
		d.ID, d.RestaurantID, d.Code, d.Description, d.DiscountType, d.Value,
		d.MaxDiscountAmount, d.MinOrderAmount, d.StartDate, d.EndDate,
		d.UsageLimit, d.UsageCount, d.QROnly, d.Active, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return "", classifyError(err, "creating discount")
	}
	return d.ID, nil
}

func (r *discountRepository) GetByID(id string) (*models.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts WHERE id = $1`
	d, err := scanDiscount(r.db.QueryRow(query, id))
	if err != nil {
		return nil, classifyError(err, fmt.Sprintf("getting discount %s", id))
	}
	return d, nil
}

func (r *discountRepository) GetByCode(restaurantID, code string) (*models.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts
	          WHERE restaurant_id = $1 AND upper(code) = upper($2)`
	d, err := scanDiscount(r.db.QueryRow(query, restaurantID, code))
	if err != nil {
		return nil, classifyError(err, "getting discount by code")
	}
	return d, nil
}

func (r *discountRepository) LockByCode(tx *sql.Tx, restaurantID, code string) (*models.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts
	          WHERE restaurant_id = $1 AND upper(code) = upper($2) FOR UPDATE`
	d, err := scanDiscount(tx.QueryRow(query, restaurantID, code))
	if err != nil {
		return nil, classifyError(err, "locking discount by code")
	}
	return d, nil
}

func (r *discountRepository) ListByRestaurant(restaurantID string) ([]models.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts
	          WHERE restaurant_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(query, restaurantID)
	if err != nil {
		return nil, classifyError(err, "listing discounts")
	}
	defer rows.Close()

	discounts := []models.Discount{}
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, classifyError(err, "scanning discount row")
		}
		discounts = append(discounts, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "iterating discount rows")
	}
	return discounts, nil
}

func (r *discountRepository) Update(executor SQLExecutor, d *models.Discount) error {
	query := `UPDATE discounts SET
	            code = $1, description = $2, discount_type = $3, value = $4,
	            max_discount_amount = $5, min_order_amount = $6, start_date = $7,
	            end_date = $8, usage_limit = $9, qr_only = $10, active = $11, updated_at = $12
	          WHERE id = $13 AND restaurant_id = $14`
	res, err := executor.Exec(query,
		d.Code, d.Description, d.DiscountType, d.Value,
		d.MaxDiscountAmount, d.MinOrderAmount, d.StartDate,
		d.EndDate, d.UsageLimit, d.QROnly, d.Active, time.Now(),
		d.ID, d.RestaurantID,
	)
	if err != nil {
		return classifyError(err, fmt.Sprintf("updating discount %s", d.ID))
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *discountRepository) Delete(executor SQLExecutor, id, restaurantID string) error {
	res, err := executor.Exec(
		`DELETE FROM discounts WHERE id = $1 AND restaurant_id = $2`, id, restaurantID,
	)
	if err != nil {
		return classifyError(err, fmt.Sprintf("deleting discount %s", id))
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordUsage appends an audit row and bumps usage_count. The caller runs
// this inside the order-creation transaction.
func (r *discountRepository) RecordUsage(executor SQLExecutor, usage *models.DiscountUsage) (string, error) {
	if usage.ID == "" {
		usage.ID = uuid.NewString()
	}
	usage.UsedAt = time.Now()
	_, err := executor.Exec(
		`INSERT INTO discount_usage (id, discount_id, order_id, amount, used_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		usage.ID, usage.DiscountID, usage.OrderID, usage.Amount, usage.UsedAt,
	)
	if err != nil {
		return "", classifyError(err, "recording discount usage")
	}
	_, err = executor.Exec(
		`UPDATE discounts SET usage_count = usage_count + 1, updated_at = $1 WHERE id = $2`,
		usage.UsedAt, usage.DiscountID,
	)
	if err != nil {
		return "", classifyError(err, "incrementing discount usage count")
	}
	return usage.ID, nil
}

func (r *discountRepository) ListUsage(discountID string) ([]models.DiscountUsage, error) {
	rows, err := r.db.Query(
		`SELECT id, discount_id, order_id, amount, used_at
		 FROM discount_usage WHERE discount_id = $1 ORDER BY used_at DESC`,
		discountID,
	)
	if err != nil {
		return nil, classifyError(err, "listing discount usage")
	}
	defer rows.Close()

	usages := []models.DiscountUsage{}
	for rows.Next() {
		u := models.DiscountUsage{}
		if err := rows.Scan(&u.ID, &u.DiscountID, &u.OrderID, &u.Amount, &u.UsedAt); err != nil {
			return nil, classifyError(err, "scanning discount usage row")
		}
		usages = append(usages, u)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "iterating discount usage rows")
	}
	return usages, nil
}
