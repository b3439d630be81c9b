package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"qr_dine_backend/internal/models"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order-related database operations.
type OrderRepository interface {
	CreateOrder(executor SQLExecutor, order *models.Order) (string, error)
	CreateOrderItem(executor SQLExecutor, item *models.OrderItem) (string, error)
	GetOrderByID(orderID string) (*models.Order, error)
	GetOrderItemsByOrderID(orderID string) ([]models.OrderItem, error)
	GetOrders(restaurantID string, filters models.OrderFilters) ([]models.Order, int, error)
	UpdateOrderStatus(executor SQLExecutor, orderID, newStatus string, updatedAt time.Time) error
	UpdateOrderDetails(executor SQLExecutor, order *models.Order) error
	DeleteOrderItemsByOrderID(executor SQLExecutor, orderID string) (int64, error)
	DeleteOrder(executor SQLExecutor, orderID string) (int64, error)
	DeleteOrders(executor SQLExecutor, restaurantID string, orderIDs []string) (int64, error)
	MarkItemsPrinted(executor SQLExecutor, orderID string) (int64, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, restaurant_id, order_type, status, source, customer_name,
	customer_phone, delivery_address, table_number, notes, is_qr_order,
	total_amount, discount_amount, final_amount, commission_rate, commission,
	platform_fee, net_amount, external_order_id, created_at, updated_at`

func scanOrder(s scanner) (*models.Order, error) {
	o := &models.Order{}
	err := s.Scan(
		&o.ID, &o.RestaurantID, &o.OrderType, &o.Status, &o.Source, &o.CustomerName,
		&o.CustomerPhone, &o.DeliveryAddress, &o.TableNumber, &o.Notes, &o.IsQROrder,
		&o.TotalAmount, &o.DiscountAmount, &o.FinalAmount, &o.CommissionRate, &o.Commission,
		&o.PlatformFee, &o.NetAmount, &o.ExternalOrderID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) CreateOrder(executor SQLExecutor, order *models.Order) (string, error) {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	query := `INSERT INTO orders
	            (id, restaurant_id, order_type, status, source, customer_name,
	             customer_phone, delivery_address, table_number, notes, is_qr_order,
	             total_amount, discount_amount, final_amount, commission_rate,
	             commission, platform_fee, net_amount, external_order_id,
	             created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
	                  $15, $16, $17, $18, $19, $20, $21)`
	_, err := executor.Exec(query,
		order.ID, order.RestaurantID, order.OrderType, order.Status, order.Source, order.CustomerName,
		order.CustomerPhone, order.DeliveryAddress, order.TableNumber, order.Notes, order.IsQROrder,
		order.TotalAmount, order.DiscountAmount, order.FinalAmount, order.CommissionRate,
		order.Commission, order.PlatformFee, order.NetAmount, order.ExternalOrderID,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return "", classifyError(err, "creating order")
	}
	return order.ID, nil
}

func (r *orderRepository) CreateOrderItem(executor SQLExecutor, item *models.OrderItem) (string, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	query := `INSERT INTO order_items
	            (id, order_id, menu_item_id, name, price, quantity, notes, printed_to_kitchen)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := executor.Exec(query,
		item.ID, item.OrderID, item.MenuItemID, item.Name, item.Price, item.Quantity,
		item.Notes, item.PrintedToKitchen,
	)
	if err != nil {
		return "", classifyError(err, "creating order item")
	}
	return item.ID, nil
}

func (r *orderRepository) GetOrderByID(orderID string) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.db.QueryRow(query, orderID))
	if err != nil {
		return nil, classifyError(err, fmt.Sprintf("getting order %s", orderID))
	}
	return o, nil
}

func (r *orderRepository) GetOrderItemsByOrderID(orderID string) ([]models.OrderItem, error) {
	query := `SELECT id, order_id, menu_item_id, name, price, quantity, notes, printed_to_kitchen
	          FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, classifyError(err, fmt.Sprintf("listing items for order %s", orderID))
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		it := models.OrderItem{}
		err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Name, &it.Price,
			&it.Quantity, &it.Notes, &it.PrintedToKitchen)
		if err != nil {
			return nil, classifyError(err, "scanning order item row")
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "iterating order item rows")
	}
	return items, nil
}

func (r *orderRepository) GetOrders(restaurantID string, filters models.OrderFilters) ([]models.Order, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + orderColumns + `, COUNT(*) OVER() AS total_count
	          FROM orders WHERE restaurant_id = $1`)

	args := []interface{}{restaurantID}
	argCounter := 2

	if filters.Status != nil && *filters.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND status = $%d", argCounter))
		args = append(args, *filters.Status)
		argCounter++
	}
	if filters.OrderType != nil && *filters.OrderType != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND order_type = $%d", argCounter))
		args = append(args, *filters.OrderType)
		argCounter++
	}
	if filters.Source != nil && *filters.Source != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND source = $%d", argCounter))
		args = append(args, *filters.Source)
		argCounter++
	}
	if filters.Date != nil && *filters.Date != "" {
		parsedDate, err := time.Parse("2006-01-02", *filters.Date)
		if err == nil {
			startOfDay := time.Date(parsedDate.Year(), parsedDate.Month(), parsedDate.Day(), 0, 0, 0, 0, parsedDate.Location())
			endOfDay := startOfDay.AddDate(0, 0, 1)
			queryBuilder.WriteString(fmt.Sprintf(" AND created_at >= $%d AND created_at < $%d", argCounter, argCounter+1))
			args = append(args, startOfDay, endOfDay)
			argCounter += 2
		}
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
		return nil, 0, classifyError(err, "querying orders")
	}
	defer rows.Close()

	orders := []models.Order{}
	totalCount := 0
	for rows.Next() {
		o := models.Order{}
		err := rows.Scan(
			&o.ID, &o.RestaurantID, &o.OrderType, &o.Status, &o.Source, &o.CustomerName,
			&o.CustomerPhone, &o.DeliveryAddress, &o.TableNumber, &o.Notes, &o.IsQROrder,
			&o.TotalAmount, &o.DiscountAmount, &o.FinalAmount, &o.CommissionRate, &o.Commission,
			&o.PlatformFee, &o.NetAmount, &o.ExternalOrderID, &o.CreatedAt, &o.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, classifyError(err, "scanning order row")
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classifyError(err, "iterating order rows")
	}
	return orders, totalCount, nil
}

func (r *orderRepository) UpdateOrderStatus(executor SQLExecutor, orderID, newStatus string, updatedAt time.Time) error {
	res, err := executor.Exec(
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		newStatus, updatedAt, orderID,
	)
	if err != nil {
		return classifyError(err, fmt.Sprintf("updating status for order %s", orderID))
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateOrderDetails patches the scalar fields and financials of an order.
// Item changes go through DeleteOrderItemsByOrderID + CreateOrderItem inside
// the caller's transaction.
func (r *orderRepository) UpdateOrderDetails(executor SQLExecutor, order *models.Order) error {
	query := `UPDATE orders SET
	            order_type = $1, customer_name = $2, customer_phone = $3,
	            delivery_address = $4, table_number = $5, notes = $6,
	            total_amount = $7, discount_amount = $8, final_amount = $9,
	            commission = $10, platform_fee = $11, net_amount = $12, updated_at = $13
	          WHERE id = $14`
	res, err := executor.Exec(query,
		order.OrderType, order.CustomerName, order.CustomerPhone,
		order.DeliveryAddress, order.TableNumber, order.Notes,
		order.TotalAmount, order.DiscountAmount, order.FinalAmount,
		order.Commission, order.PlatformFee, order.NetAmount, time.Now(),
		order.ID,
	)
	if err != nil {
		return classifyError(err, fmt.Sprintf("updating order %s", order.ID))
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) DeleteOrderItemsByOrderID(executor SQLExecutor, orderID string) (int64, error) {
	res, err := executor.Exec(`DELETE FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return 0, classifyError(err, fmt.Sprintf("deleting items for order %s", orderID))
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}

func (r *orderRepository) DeleteOrder(executor SQLExecutor, orderID string) (int64, error) {
	res, err := executor.Exec(`DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		return 0, classifyError(err, fmt.Sprintf("deleting order %s", orderID))
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}

func (r *orderRepository) DeleteOrders(executor SQLExecutor, restaurantID string, orderIDs []string) (int64, error) {
	if len(orderIDs) == 0 {
		return 0, nil
	}
	placeholders := make([]string, 0, len(orderIDs))
	args := []interface{}{restaurantID}
	for i, id := range orderIDs {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		args = append(args, id)
	}
	query := fmt.Sprintf(
		`DELETE FROM orders WHERE restaurant_id = $1 AND id IN (%s)`,
		strings.Join(placeholders, ", "),
	)
	res, err := executor.Exec(query, args...)
	if err != nil {
		return 0, classifyError(err, "deleting orders")
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}

// MarkItemsPrinted flips the KOT flag on all unprinted items of an order and
// returns how many were flipped.
func (r *orderRepository) MarkItemsPrinted(executor SQLExecutor, orderID string) (int64, error) {
	res, err := executor.Exec(
		`UPDATE order_items SET printed_to_kitchen = true WHERE order_id = $1 AND printed_to_kitchen = false`,
		orderID,
	)
	if err != nil {
		return 0, classifyError(err, fmt.Sprintf("marking items printed for order %s", orderID))
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}
