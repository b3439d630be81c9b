package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"qr_dine_backend/internal/models"
	"qr_dine_backend/internal/repositories"
)

// Discount evaluation errors, one per validation rule.
var (
	ErrDiscountNotFound          = errors.New("discount not found")
	ErrDiscountInactive          = errors.New("discount is not active")
	ErrDiscountNotStarted        = errors.New("discount is not valid yet")
	ErrDiscountExpired           = errors.New("discount has expired")
	ErrDiscountUsageLimitReached = errors.New("discount usage limit reached")
	ErrDiscountMinOrderAmount    = errors.New("order amount below discount minimum")
	ErrDiscountQROnly            = errors.New("discount is valid only for QR orders")
)

// --- DTOs ---

// CreateDiscountRequest is used for creating or updating a discount.
type CreateDiscountRequest struct {
	Code              string     `json:"code" binding:"required"`
	Description       string     `json:"description"`
	DiscountType      string     `json:"discount_type" binding:"required"`
	Value             float64    `json:"value" binding:"required,gt=0"`
	MaxDiscountAmount *float64   `json:"max_discount_amount"`
	MinOrderAmount    float64    `json:"min_order_amount"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	UsageLimit        *int64     `json:"usage_limit"`
	QROnly            bool       `json:"qr_only"`
	Active            *bool      `json:"active"`
}

// ApplyDiscountRequest prices a discount against a candidate order without
// recording usage.
type ApplyDiscountRequest struct {
	Code        string  `json:"code" binding:"required"`
	OrderAmount float64 `json:"order_amount" binding:"required,gt=0"`
	IsQROrder   bool    `json:"is_qr_order"`
}

// ApplyDiscountResponse is the pricing preview.
type ApplyDiscountResponse struct {
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discount_amount"`
	FinalAmount    float64 `json:"final_amount"`
}

// --- DiscountService Interface ---
type DiscountService interface {
	Create(restaurantID string, req CreateDiscountRequest) (*models.Discount, error)
	GetByID(id, restaurantID string) (*models.Discount, error)
	List(restaurantID string) ([]models.Discount, error)
	Update(id, restaurantID string, req CreateDiscountRequest) (*models.Discount, error)
	Delete(id, restaurantID string) error
	Apply(restaurantID string, req ApplyDiscountRequest) (*ApplyDiscountResponse, error)
	ListUsage(id, restaurantID string) ([]models.DiscountUsage, error)
}

type discountService struct {
	discountRepo repositories.DiscountRepository
	db           *sql.DB
}

// NewDiscountService creates a new instance of DiscountService.
func NewDiscountService(dr repositories.DiscountRepository, db *sql.DB) DiscountService {
	return &discountService{discountRepo: dr, db: db}
}

// ValidateDiscountForOrder runs the evaluation chain in order, failing fast
// on the first violated condition: active, start date, end date, usage limit,
// minimum order amount, QR exclusivity.
func ValidateDiscountForOrder(d *models.Discount, orderAmount float64, isQROrder bool, now time.Time) error {
	if !d.Active {
		return ErrDiscountInactive
	}
	if d.StartDate.Valid && d.StartDate.Time.After(now) {
		return ErrDiscountNotStarted
	}
	if d.EndDate.Valid && d.EndDate.Time.Before(now) {
		return ErrDiscountExpired
	}
	if d.UsageLimit.Valid && d.UsageCount >= d.UsageLimit.Int64 {
		return ErrDiscountUsageLimitReached
	}
	if orderAmount < d.MinOrderAmount {
		return fmt.Errorf("%w: minimum %.2f", ErrDiscountMinOrderAmount, d.MinOrderAmount)
	}
	if d.QROnly && !isQROrder {
		return ErrDiscountQROnly
	}
	return nil
}

// PriceDiscount computes the discount and final amounts. Percentage values
// apply to the order amount; fixed values apply directly. The result is
// capped at max_discount_amount when set and the final amount floors at zero.
func PriceDiscount(d *models.Discount, orderAmount float64) (discountAmount, finalAmount float64) {
	switch d.DiscountType {
	case models.DiscountTypePercentage:
		discountAmount = orderAmount * d.Value / 100
	case models.DiscountTypeFixed:
		discountAmount = d.Value
	}
	if d.MaxDiscountAmount.Valid && discountAmount > d.MaxDiscountAmount.Float64 {
		discountAmount = d.MaxDiscountAmount.Float64
	}
	if discountAmount > orderAmount {
		discountAmount = orderAmount
	}
	finalAmount = orderAmount - discountAmount
	if finalAmount < 0 {
		finalAmount = 0
	}
	return discountAmount, finalAmount
}

func (s *discountService) buildDiscount(restaurantID string, req CreateDiscountRequest) (*models.Discount, error) {
	if !models.IsValidDiscountType(req.DiscountType) {
		return nil, fmt.Errorf("%w: unknown discount type %q", ErrValidation, req.DiscountType)
	}
	if req.DiscountType == models.DiscountTypePercentage && req.Value > 100 {
		return nil, fmt.Errorf("%w: percentage value cannot exceed 100", ErrValidation)
	}
	d := &models.Discount{
		RestaurantID:      restaurantID,
		Code:              strings.ToUpper(strings.TrimSpace(req.Code)),
		Description:       models.NewNullString(req.Description),
		DiscountType:      req.DiscountType,
		Value:             req.Value,
		MaxDiscountAmount: models.NewNullFloat64(req.MaxDiscountAmount),
		MinOrderAmount:    req.MinOrderAmount,
		QROnly:            req.QROnly,
		Active:            true,
	}
	if req.Active != nil {
		d.Active = *req.Active
	}
	if req.StartDate != nil {
		d.StartDate = sql.NullTime{Time: *req.StartDate, Valid: true}
	}
	if req.EndDate != nil {
		d.EndDate = sql.NullTime{Time: *req.EndDate, Valid: true}
	}
	if req.UsageLimit != nil {
		d.UsageLimit = sql.NullInt64{Int64: *req.UsageLimit, Valid: true}
	}
	return d, nil
}

func (s *discountService) Create(restaurantID string, req CreateDiscountRequest) (*models.Discount, error) {
	d, err := s.buildDiscount(restaurantID, req)
	if err != nil {
		return nil, err
	}
	if _, err := s.discountRepo.Create(s.db, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *discountService) GetByID(id, restaurantID string) (*models.Discount, error) {
	d, err := s.discountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d.RestaurantID != restaurantID {
		return nil, repositories.ErrNotFound
	}
	return d, nil
}

func (s *discountService) List(restaurantID string) ([]models.Discount, error) {
	return s.discountRepo.ListByRestaurant(restaurantID)
}

func (s *discountService) Update(id, restaurantID string, req CreateDiscountRequest) (*models.Discount, error) {
	existing, err := s.GetByID(id, restaurantID)
	if err != nil {
		return nil, err
	}
	d, err := s.buildDiscount(restaurantID, req)
	if err != nil {
		return nil, err
	}
	d.ID = existing.ID
	d.UsageCount = existing.UsageCount
	if err := s.discountRepo.Update(s.db, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *discountService) Delete(id, restaurantID string) error {
	return s.discountRepo.Delete(s.db, id, restaurantID)
}

// Apply is the pricing preview used by the QR checkout; it records nothing.
// Usage accounting happens inside order creation.
func (s *discountService) Apply(restaurantID string, req ApplyDiscountRequest) (*ApplyDiscountResponse, error) {
	d, err := s.discountRepo.GetByCode(restaurantID, req.Code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDiscountNotFound
		}
		return nil, err
	}
	if err := ValidateDiscountForOrder(d, req.OrderAmount, req.IsQROrder, time.Now()); err != nil {
		return nil, err
	}
	discountAmount, finalAmount := PriceDiscount(d, req.OrderAmount)
	return &ApplyDiscountResponse{
		Code:           d.Code,
		DiscountAmount: discountAmount,
		FinalAmount:    finalAmount,
	}, nil
}

func (s *discountService) ListUsage(id, restaurantID string) ([]models.DiscountUsage, error) {
	if _, err := s.GetByID(id, restaurantID); err != nil {
		return nil, err
	}
	return s.discountRepo.ListUsage(id)
}
