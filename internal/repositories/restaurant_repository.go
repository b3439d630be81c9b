package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"qr_dine_backend/internal/models"

	"github.com/google/uuid"
)

// RestaurantRepository defines the interface for restaurant-related database operations.
type RestaurantRepository interface {
	Create(executor SQLExecutor, r *models.Restaurant, hashedPassword string) (string, error)
	GetByID(id string) (*models.Restaurant, error)
	GetByEmail(email string) (*models.Restaurant, error)
	Search(filters models.RestaurantFilters) ([]models.Restaurant, int, error)
	Update(executor SQLExecutor, r *models.Restaurant) error
	UpdateFeatures(executor SQLExecutor, id string, features models.FeatureFlags) error
	List(page, pageSize int) ([]models.Restaurant, int, error)
}

type restaurantRepository struct {
	db *sql.DB
}

// NewRestaurantRepository creates a new instance of RestaurantRepository.
func NewRestaurantRepository(db *sql.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

const restaurantColumns = `id, name, email, password_hash, phone, address, city,
	description, cuisine_type, tables, features, created_at, updated_at`

func scanRestaurant(s scanner) (*models.Restaurant, error) {
	r := &models.Restaurant{}
	var featuresRaw []byte
	err := s.Scan(
		&r.ID, &r.Name, &r.Email, &r.PasswordHash, &r.Phone, &r.Address, &r.City,
		&r.Description, &r.CuisineType, &r.Tables, &featuresRaw, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(featuresRaw) > 0 {
		if err := json.Unmarshal(featuresRaw, &r.Features); err != nil {
			return nil, fmt.Errorf("decoding features for restaurant %s: %w", r.ID, err)
		}
	}
	if r.Features == nil {
		r.Features = models.FeatureFlags{}
	}
	return r, nil
}

func (repo *restaurantRepository) Create(executor SQLExecutor, r *models.Restaurant, hashedPassword string) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Features == nil {
		r.Features = models.DefaultFeatureFlags()
	}
	featuresRaw, err := json.Marshal(r.Features)
	if err != nil {
		return "", fmt.Errorf("encoding features: %w", err)
	}

	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	r.PasswordHash = hashedPassword

	query := `INSERT INTO restaurants
	            (id, name, email, password_hash, phone, address, city, description,
	             cuisine_type, tables, features, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = executor.Exec(query,
		r.ID, r.Name, r.Email, r.PasswordHash, r.Phone, r.Address, r.City, r.Description,
		r.CuisineType, r.Tables, featuresRaw, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return "", classifyError(err, "creating restaurant")
	}
	return r.ID, nil
}

func (repo *restaurantRepository) GetByID(id string) (*models.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`
	r, err := scanRestaurant(repo.db.QueryRow(query, id))
	if err != nil {
		return nil, classifyError(err, fmt.Sprintf("getting restaurant %s", id))
	}
	return r, nil
}

func (repo *restaurantRepository) GetByEmail(email string) (*models.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE lower(email) = lower($1)`
	r, err := scanRestaurant(repo.db.QueryRow(query, email))
	if err != nil {
		return nil, classifyError(err, "getting restaurant by email")
	}
	return r, nil
}

// Search is the public restaurant lookup used by the QR landing flow.
func (repo *restaurantRepository) Search(filters models.RestaurantFilters) ([]models.Restaurant, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + restaurantColumns + `, COUNT(*) OVER() AS total_count FROM restaurants`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.Query != nil && *filters.Query != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR cuisine_type ILIKE $%d)", argCounter, argCounter))
		args = append(args, "%"+*filters.Query+"%")
		argCounter++
	}
	if filters.City != nil && *filters.City != "" {
		conditions = append(conditions, fmt.Sprintf("city ILIKE $%d", argCounter))
		args = append(args, *filters.City)
		argCounter++
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY name ASC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, filters.PageSize)
		argCounter++
		if filters.Page > 1 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCounter))
			args = append(args, (filters.Page-1)*filters.PageSize)
		}
	}

	return repo.queryRestaurants(queryBuilder.String(), args...)
}

func (repo *restaurantRepository) List(page, pageSize int) ([]models.Restaurant, int, error) {
	query := `SELECT ` + restaurantColumns + `, COUNT(*) OVER() AS total_count
	          FROM restaurants ORDER BY created_at DESC`
	var args []interface{}
	if pageSize > 0 {
		query += " LIMIT $1"
		args = append(args, pageSize)
		if page > 1 {
			query += " OFFSET $2"
			args = append(args, (page-1)*pageSize)
		}
	}
	return repo.queryRestaurants(query, args...)
}

func (repo *restaurantRepository) queryRestaurants(query string, args ...interface{}) ([]models.Restaurant, int, error) {
	rows, err := repo.db.Query(query, args...)
	if err != nil {
		return nil, 0, classifyError(err, "querying restaurants")
	}
	defer rows.Close()

	restaurants := []models.Restaurant{}
	totalCount := 0
	for rows.Next() {
		r := models.Restaurant{}
		var featuresRaw []byte
		err := rows.Scan(
			&r.ID, &r.Name, &r.Email, &r.PasswordHash, &r.Phone, &r.Address, &r.City,
			&r.Description, &r.CuisineType, &r.Tables, &featuresRaw, &r.CreatedAt, &r.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, classifyError(err, "scanning restaurant row")
		}
		if len(featuresRaw) > 0 {
			if err := json.Unmarshal(featuresRaw, &r.Features); err != nil {
				return nil, 0, fmt.Errorf("decoding features for restaurant %s: %w", r.ID, err)
			}
		}
		restaurants = append(restaurants, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classifyError(err, "iterating restaurant rows")
	}
	return restaurants, totalCount, nil
}

func (repo *restaurantRepository) Update(executor SQLExecutor, r *models.Restaurant) error {
	query := `UPDATE restaurants SET
	            name = $1, phone = $2, address = $3, city = $4, description = $5,
	            cuisine_type = $6, tables = $7, updated_at = $8
	          WHERE id = $9`
	res, err := executor.Exec(query,
		r.Name, r.Phone, r.Address, r.City, r.Description,
		r.CuisineType, r.Tables, time.Now(), r.ID,
	)
	if err != nil {
		return classifyError(err, fmt.Sprintf("updating restaurant %s", r.ID))
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *restaurantRepository) UpdateFeatures(executor SQLExecutor, id string, features models.FeatureFlags) error {
	featuresRaw, err := json.Marshal(features)
	if err != nil {
		return fmt.Errorf("encoding features: %w", err)
	}
	res, err := executor.Exec(
		`UPDATE restaurants SET features = $1, updated_at = $2 WHERE id = $3`,
		featuresRaw, time.Now(), id,
	)
	if err != nil {
		return classifyError(err, fmt.Sprintf("updating features for restaurant %s", id))
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}
