package services

import (
	"errors"
	"testing"
	"time"

	"qr_dine_backend/internal/models"
	"qr_dine_backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderServiceWithMock(t *testing.T) (OrderService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewOrderService(
		repositories.NewOrderRepository(db),
		repositories.NewMenuRepository(db),
		repositories.NewDiscountRepository(db),
		db,
		NewNoopNotifier(),
	)
	return svc, mock
}

func TestCreateOrderInsertsOrderAndAllItems(t *testing.T) {
	svc, mock := newOrderServiceWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order, err := svc.CreateOrder("r-1", CreateOrderRequest{
		OrderType: models.OrderTypeDineIn,
		IsQROrder: true,
		Items: []CreateOrderItemRequest{
			{Name: "Paneer Tikka", Price: 150, Quantity: 2},
			{Name: "Butter Naan", Price: 200, Quantity: 1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.OrderSourceDirect, order.Source)
	assert.Equal(t, 500.0, order.TotalAmount)
	assert.Equal(t, 500.0, order.FinalAmount)
	assert.Equal(t, 500.0, order.NetAmount)
	assert.Len(t, order.Items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderRollsBackWhenItemInsertFails(t *testing.T) {
	svc, mock := newOrderServiceWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := svc.CreateOrder("r-1", CreateOrderRequest{
		OrderType: models.OrderTypeDineIn,
		Items: []CreateOrderItemRequest{
			{Name: "Paneer Tikka", Price: 150, Quantity: 1},
		},
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func discountRows(usageLimit, usageCount int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "restaurant_id", "code", "description", "discount_type", "value",
		"max_discount_amount", "min_order_amount", "start_date", "end_date",
		"usage_limit", "usage_count", "qr_only", "active", "created_at", "updated_at",
	}).AddRow(
		"d-1", "r-1", "SAVE10", nil, models.DiscountTypePercentage, 10.0,
		nil, 0.0, nil, nil,
		usageLimit, usageCount, false, true, now, now,
	)
}

func TestCreateOrderAppliesDiscountAndRecordsUsageInSameTransaction(t *testing.T) {
	svc, mock := newOrderServiceWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM discounts").WillReturnRows(discountRows(10, 0))
	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO discount_usage").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE discounts SET usage_count").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order, err := svc.CreateOrder("r-1", CreateOrderRequest{
		OrderType:    models.OrderTypeDineIn,
		IsQROrder:    true,
		DiscountCode: "SAVE10",
		Items: []CreateOrderItemRequest{
			{Name: "Thali", Price: 500, Quantity: 1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 50.0, order.DiscountAmount)
	assert.Equal(t, 450.0, order.FinalAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderRejectsExhaustedDiscount(t *testing.T) {
	svc, mock := newOrderServiceWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM discounts").WillReturnRows(discountRows(1, 1))
	mock.ExpectRollback()

	_, err := svc.CreateOrder("r-1", CreateOrderRequest{
		OrderType:    models.OrderTypeDineIn,
		IsQROrder:    true,
		DiscountCode: "SAVE10",
		Items: []CreateOrderItemRequest{
			{Name: "Thali", Price: 500, Quantity: 1},
		},
	})

	assert.ErrorIs(t, err, ErrDiscountUsageLimitReached)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func menuItemRows(id, name string, price float64, available bool) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "restaurant_id", "name", "description", "category", "price",
		"is_veg", "available", "display_order", "image_url", "created_at", "updated_at",
	}).AddRow(id, "r-1", name, nil, "mains", price, true, available, 1, nil, now, now)
}

// An order line carrying a menu item id takes its name and price from the
// menu row, not from the client.
func TestCreateOrderSnapshotsMenuItemNameAndPrice(t *testing.T) {
	svc, mock := newOrderServiceWithMock(t)

	mock.ExpectQuery("SELECT (.+) FROM menu_items").
		WillReturnRows(menuItemRows("m-1", "Masala Dosa", 120, true))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order, err := svc.CreateOrder("r-1", CreateOrderRequest{
		OrderType: models.OrderTypeDineIn,
		IsQROrder: true,
		Items: []CreateOrderItemRequest{
			{MenuItemID: "m-1", Name: "Free Dosa", Price: 1, Quantity: 3},
		},
	})

	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Masala Dosa", order.Items[0].Name)
	assert.Equal(t, 120.0, order.Items[0].Price)
	assert.Equal(t, 360.0, order.TotalAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderRejectsUnavailableMenuItem(t *testing.T) {
	svc, mock := newOrderServiceWithMock(t)

	mock.ExpectQuery("SELECT (.+) FROM menu_items").
		WillReturnRows(menuItemRows("m-1", "Masala Dosa", 120, false))

	_, err := svc.CreateOrder("r-1", CreateOrderRequest{
		OrderType: models.OrderTypeDineIn,
		Items: []CreateOrderItemRequest{
			{MenuItemID: "m-1", Quantity: 1},
		},
	})

	assert.ErrorIs(t, err, ErrMenuItemNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderRejectsEmptyItemList(t *testing.T) {
	svc, _ := newOrderServiceWithMock(t)

	_, err := svc.CreateOrder("r-1", CreateOrderRequest{
		OrderType: models.OrderTypeDineIn,
	})

	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestCreateOrderRejectsUnknownOrderType(t *testing.T) {
	svc, _ := newOrderServiceWithMock(t)

	_, err := svc.CreateOrder("r-1", CreateOrderRequest{
		OrderType: "drive-through",
		Items: []CreateOrderItemRequest{
			{Name: "Thali", Price: 500, Quantity: 1},
		},
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateOrderComputesCommissionFinancials(t *testing.T) {
	svc, mock := newOrderServiceWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order, err := svc.CreateOrder("r-1", CreateOrderRequest{
		OrderType:      models.OrderTypeDelivery,
		Source:         models.OrderSourceSwiggy,
		CommissionRate: 22,
		PlatformFee:    15,
		Items: []CreateOrderItemRequest{
			{Name: "Biryani", Price: 1000, Quantity: 1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 220.0, order.Commission)
	assert.Equal(t, 1000.0-220.0-15.0, order.NetAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
