package services

import (
	"database/sql"
	"testing"
	"time"

	"qr_dine_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func activeDiscount(dType string, value float64) *models.Discount {
	return &models.Discount{
		ID:           "d-1",
		RestaurantID: "r-1",
		Code:         "SAVE10",
		DiscountType: dType,
		Value:        value,
		Active:       true,
	}
}

func TestPriceDiscountPercentage(t *testing.T) {
	d := activeDiscount(models.DiscountTypePercentage, 10)

	discountAmount, finalAmount := PriceDiscount(d, 500)

	assert.Equal(t, 50.0, discountAmount)
	assert.Equal(t, 450.0, finalAmount)
}

func TestPriceDiscountFixed(t *testing.T) {
	d := activeDiscount(models.DiscountTypeFixed, 100)

	discountAmount, finalAmount := PriceDiscount(d, 500)

	assert.Equal(t, 100.0, discountAmount)
	assert.Equal(t, 400.0, finalAmount)
}

func TestPriceDiscountCappedAtMax(t *testing.T) {
	d := activeDiscount(models.DiscountTypePercentage, 20)
	d.MaxDiscountAmount = sql.NullFloat64{Float64: 40, Valid: true}

	discountAmount, finalAmount := PriceDiscount(d, 500)

	assert.Equal(t, 40.0, discountAmount)
	assert.Equal(t, 460.0, finalAmount)
}

func TestPriceDiscountNeverExceedsOrderAmount(t *testing.T) {
	d := activeDiscount(models.DiscountTypeFixed, 300)

	discountAmount, finalAmount := PriceDiscount(d, 200)

	assert.Equal(t, 200.0, discountAmount)
	assert.Equal(t, 0.0, finalAmount)
}

func TestValidateDiscountInactive(t *testing.T) {
	d := activeDiscount(models.DiscountTypePercentage, 10)
	d.Active = false

	err := ValidateDiscountForOrder(d, 500, true, time.Now())

	assert.ErrorIs(t, err, ErrDiscountInactive)
}

func TestValidateDiscountNotStarted(t *testing.T) {
	d := activeDiscount(models.DiscountTypePercentage, 10)
	d.StartDate = sql.NullTime{Time: time.Now().Add(time.Hour), Valid: true}

	err := ValidateDiscountForOrder(d, 500, true, time.Now())

	assert.ErrorIs(t, err, ErrDiscountNotStarted)
}

func TestValidateDiscountExpired(t *testing.T) {
	d := activeDiscount(models.DiscountTypePercentage, 10)
	d.EndDate = sql.NullTime{Time: time.Now().Add(-time.Hour), Valid: true}

	err := ValidateDiscountForOrder(d, 500, true, time.Now())

	assert.ErrorIs(t, err, ErrDiscountExpired)
}

func TestValidateDiscountUsageLimitReached(t *testing.T) {
	d := activeDiscount(models.DiscountTypePercentage, 10)
	d.UsageLimit = sql.NullInt64{Int64: 1, Valid: true}
	d.UsageCount = 1

	err := ValidateDiscountForOrder(d, 500, true, time.Now())

	assert.ErrorIs(t, err, ErrDiscountUsageLimitReached)
}

func TestValidateDiscountBelowMinimum(t *testing.T) {
	d := activeDiscount(models.DiscountTypePercentage, 10)
	d.MinOrderAmount = 300

	err := ValidateDiscountForOrder(d, 200, true, time.Now())

	assert.ErrorIs(t, err, ErrDiscountMinOrderAmount)
}

func TestValidateDiscountQROnly(t *testing.T) {
	d := activeDiscount(models.DiscountTypePercentage, 10)
	d.QROnly = true

	err := ValidateDiscountForOrder(d, 500, false, time.Now())
	assert.ErrorIs(t, err, ErrDiscountQROnly)

	err = ValidateDiscountForOrder(d, 500, true, time.Now())
	assert.NoError(t, err)
}

// The chain fails fast: an inactive discount reports inactive even when the
// order amount is also below the minimum.
func TestValidateDiscountFailsFastInOrder(t *testing.T) {
	d := activeDiscount(models.DiscountTypePercentage, 10)
	d.Active = false
	d.MinOrderAmount = 1000

	err := ValidateDiscountForOrder(d, 200, true, time.Now())

	assert.ErrorIs(t, err, ErrDiscountInactive)
}

func TestValidateDiscountValid(t *testing.T) {
	d := activeDiscount(models.DiscountTypePercentage, 10)
	d.StartDate = sql.NullTime{Time: time.Now().Add(-time.Hour), Valid: true}
	d.EndDate = sql.NullTime{Time: time.Now().Add(time.Hour), Valid: true}
	d.UsageLimit = sql.NullInt64{Int64: 5, Valid: true}
	d.UsageCount = 4
	d.MinOrderAmount = 100

	err := ValidateDiscountForOrder(d, 500, true, time.Now())

	assert.NoError(t, err)
}
