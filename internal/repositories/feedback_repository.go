package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"qr_dine_backend/internal/models"

	"github.com/google/uuid"
)

// FeedbackRepository defines the interface for feedback database operations.
type FeedbackRepository interface {
	Create(executor SQLExecutor, f *models.Feedback) (string, error)
	GetByID(id string) (*models.Feedback, error)
	ListByRestaurant(restaurantID string, filters models.FeedbackFilters) ([]models.Feedback, int, error)
	Respond(executor SQLExecutor, id, restaurantID, response string) error
	Stats(restaurantID string) (*models.FeedbackStats, error)
}

type feedbackRepository struct {
	db *sql.DB
}

// NewFeedbackRepository creates a new instance of FeedbackRepository.
func NewFeedbackRepository(db *sql.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

const feedbackColumns = `id, restaurant_id, order_id, customer_name, rating,
	comment, response, responded_at, created_at`

func scanFeedback(s scanner) (*models.Feedback, error) {
	f := &models.Feedback{}
	err := s.Scan(
		&f.ID, &f.RestaurantID, &f.OrderID, &f.CustomerName, &f.Rating,
		&f.Comment, &f.Response, &f.RespondedAt, &f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *feedbackRepository) Create(executor SQLExecutor, f *models.Feedback) (string, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	f.CreatedAt = time.Now()
	query := `INSERT INTO feedback
	            (id, restaurant_id, order_id, customer_name, rating, comment, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := executor.Exec(query,
		f.ID, f.RestaurantID, f.OrderID, f.CustomerName, f.Rating, f.Comment, f.CreatedAt,
	)
	if err != nil {
		return "", classifyError(err, "creating feedback")
	}
	return f.ID, nil
}

func (r *feedbackRepository) GetByID(id string) (*models.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE id = $1`
	f, err := scanFeedback(r.db.QueryRow(query, id))
	if err != nil {
		return nil, classifyError(err, fmt.Sprintf("getting feedback %s", id))
	}
	return f, nil
}

func (r *feedbackRepository) ListByRestaurant(restaurantID string, filters models.FeedbackFilters) ([]models.Feedback, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + feedbackColumns + `, COUNT(*) OVER() AS total_count
	          FROM feedback WHERE restaurant_id = $1`)

	args := []interface{}{restaurantID}
	argCounter := 2

	if filters.Rating != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND rating = $%d", argCounter))
		args = append(args, *filters.Rating)
		argCounter++
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, filters.PageSize)
		argCounter++
		if filters.Page > 1 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCounter))
			args = append(args, (filters.Page-1)*filters.PageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, classifyError(err, "querying feedback")
	}
	defer rows.Close()

	feedbacks := []models.Feedback{}
	totalCount := 0
	for rows.Next() {
		f := models.Feedback{}
		err := rows.Scan(
			&f.ID, &f.RestaurantID, &f.OrderID, &f.CustomerName, &f.Rating,
			&f.Comment, &f.Response, &f.RespondedAt, &f.CreatedAt, &totalCount,
		)
		if err != nil {
			return nil, 0, classifyError(err, "scanning feedback row")
		}
		feedbacks = append(feedbacks, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classifyError(err, "iterating feedback rows")
	}
	return feedbacks, totalCount, nil
}

func (r *feedbackRepository) Respond(executor SQLExecutor, id, restaurantID, response string) error {
	res, err := executor.Exec(
		`UPDATE feedback SET response = $1, responded_at = $2 WHERE id = $3 AND restaurant_id = $4`,
		response, time.Now(), id, restaurantID,
	)
	if err != nil {
		return classifyError(err, fmt.Sprintf("responding to feedback %s", id))
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *feedbackRepository) Stats(restaurantID string) (*models.FeedbackStats, error) {
	stats := &models.FeedbackStats{CountsByStar: map[int]int64{}}
	err := r.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM feedback WHERE restaurant_id = $1`,
		restaurantID,
	).Scan(&stats.Total, &stats.AverageRating)
	if err != nil {
		return nil, classifyError(err, "aggregating feedback stats")
	}

	rows, err := r.db.Query(
		`SELECT rating, COUNT(*) FROM feedback WHERE restaurant_id = $1 GROUP BY rating`,
		restaurantID,
	)
	if err != nil {
		return nil, classifyError(err, "aggregating feedback star counts")
	}
	defer rows.Close()

	for rows.Next() {
		var star int
		var count int64
		if err := rows.Scan(&star, &count); err != nil {
			return nil, classifyError(err, "scanning feedback star count")
		}
		stats.CountsByStar[star] = count
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "iterating feedback star counts")
	}
	return stats, nil
}
