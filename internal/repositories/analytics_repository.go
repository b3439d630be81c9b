package repositories

import (
	"database/sql"
	"time"

	"qr_dine_backend/internal/models"
)

// AnalyticsRepository aggregates order data for the dashboard. Rejected
// orders are excluded from revenue figures everywhere.
type AnalyticsRepository interface {
	Totals(restaurantID string, from, to time.Time) (revenue float64, orders int64, err error)
	RevenueByDay(restaurantID string, from, to time.Time) ([]models.DailyRevenue, error)
	TopItems(restaurantID string, from, to time.Time, limit int) ([]models.TopItem, error)
	BreakdownByOrderType(restaurantID string, from, to time.Time) ([]models.BreakdownEntry, error)
	BreakdownBySource(restaurantID string, from, to time.Time) ([]models.BreakdownEntry, error)
	BreakdownByHour(restaurantID string, from, to time.Time) ([]models.BreakdownEntry, error)
}

type analyticsRepository struct {
	db *sql.DB
}

// NewAnalyticsRepository creates a new instance of AnalyticsRepository.
func NewAnalyticsRepository(db *sql.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

const revenueFilter = `restaurant_id = $1 AND status <> 'rejected'
	AND created_at >= $2 AND created_at < $3`

func (r *analyticsRepository) Totals(restaurantID string, from, to time.Time) (float64, int64, error) {
	var revenue float64
	var orders int64
	err := r.db.QueryRow(
		`SELECT COALESCE(SUM(final_amount), 0), COUNT(*) FROM orders WHERE `+revenueFilter,
		restaurantID, from, to,
	).Scan(&revenue, &orders)
	if err != nil {
		return 0, 0, classifyError(err, "aggregating order totals")
	}
	return revenue, orders, nil
}

func (r *analyticsRepository) RevenueByDay(restaurantID string, from, to time.Time) ([]models.DailyRevenue, error) {
	rows, err := r.db.Query(
		`SELECT to_char(created_at::date, 'YYYY-MM-DD') AS day,
		        COALESCE(SUM(final_amount), 0), COUNT(*)
		 FROM orders WHERE `+revenueFilter+`
		 GROUP BY day ORDER BY day`,
		restaurantID, from, to,
	)
	if err != nil {
		return nil, classifyError(err, "aggregating revenue by day")
	}
	defer rows.Close()

	result := []models.DailyRevenue{}
	for rows.Next() {
		d := models.DailyRevenue{}
		if err := rows.Scan(&d.Date, &d.Revenue, &d.Orders); err != nil {
			return nil, classifyError(err, "scanning daily revenue row")
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "iterating daily revenue rows")
	}
	return result, nil
}

func (r *analyticsRepository) TopItems(restaurantID string, from, to time.Time, limit int) ([]models.TopItem, error) {
	rows, err := r.db.Query(
		`SELECT oi.name, SUM(oi.quantity), SUM(oi.price * oi.quantity)
		 FROM order_items oi
		 JOIN orders o ON oi.order_id = o.id
		 WHERE o.`+revenueFilter+`
		 GROUP BY oi.name
		 ORDER BY SUM(oi.quantity) DESC
		 LIMIT $4`,
		restaurantID, from, to, limit,
	)
	if err != nil {
		return nil, classifyError(err, "aggregating top items")
	}
	defer rows.Close()

	result := []models.TopItem{}
	for rows.Next() {
		t := models.TopItem{}
		if err := rows.Scan(&t.Name, &t.Quantity, &t.Revenue); err != nil {
			return nil, classifyError(err, "scanning top item row")
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "iterating top item rows")
	}
	return result, nil
}

func (r *analyticsRepository) BreakdownByOrderType(restaurantID string, from, to time.Time) ([]models.BreakdownEntry, error) {
	return r.breakdown(`order_type`, restaurantID, from, to)
}

func (r *analyticsRepository) BreakdownBySource(restaurantID string, from, to time.Time) ([]models.BreakdownEntry, error) {
	return r.breakdown(`source`, restaurantID, from, to)
}

func (r *analyticsRepository) BreakdownByHour(restaurantID string, from, to time.Time) ([]models.BreakdownEntry, error) {
	return r.breakdown(`to_char(created_at, 'HH24')`, restaurantID, from, to)
}

// breakdown groups revenue-eligible orders by the given SQL expression. The
// expression is always one of the fixed strings above, never user input.
func (r *analyticsRepository) breakdown(expr, restaurantID string, from, to time.Time) ([]models.BreakdownEntry, error) {
	rows, err := r.db.Query(
		`SELECT `+expr+` AS label, COUNT(*), COALESCE(SUM(final_amount), 0)
		 FROM orders WHERE `+revenueFilter+`
		 GROUP BY label ORDER BY label`,
		restaurantID, from, to,
	)
	if err != nil {
		return nil, classifyError(err, "aggregating order breakdown")
	}
	defer rows.Close()

	result := []models.BreakdownEntry{}
	for rows.Next() {
		e := models.BreakdownEntry{}
		if err := rows.Scan(&e.Label, &e.Count, &e.Amount); err != nil {
			return nil, classifyError(err, "scanning breakdown row")
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "iterating breakdown rows")
	}
	return result, nil
}
