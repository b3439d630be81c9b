package services

import (
	"database/sql"
	"errors"
	"fmt"

	"qr_dine_backend/internal/models"
	"qr_dine_backend/internal/repositories"
	"qr_dine_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrEmailExists        = errors.New("email already registered")
)

// --- DTOs ---

// RegisterRestaurantRequest provisions a restaurant at signup or via admin.
type RegisterRestaurantRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Description string `json:"description"`
	CuisineType string `json:"cuisine_type"`
	Tables      int    `json:"tables"`
	// Features overrides the default flag set; admin provisioning uses it.
	Features models.FeatureFlags `json:"features"`
}

// RestaurantLoginRequest authenticates a restaurant owner.
type RestaurantLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RestaurantAuthResponse carries the owner token and profile.
type RestaurantAuthResponse struct {
	Token      string                    `json:"token"`
	Restaurant models.RestaurantResponse `json:"restaurant"`
}

// UpdateRestaurantRequest patches profile fields.
type UpdateRestaurantRequest struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Description *string `json:"description"`
	CuisineType *string `json:"cuisine_type"`
	Tables      *int    `json:"tables"`
}

// --- RestaurantService Interface ---
type RestaurantService interface {
	Register(req RegisterRestaurantRequest) (*RestaurantAuthResponse, error)
	Login(req RestaurantLoginRequest) (*RestaurantAuthResponse, error)
	GetByID(id string) (*models.Restaurant, error)
	Search(filters models.RestaurantFilters) ([]models.Restaurant, int, error)
	List(page, pageSize int) ([]models.Restaurant, int, error)
	Update(id string, req UpdateRestaurantRequest) (*models.Restaurant, error)
	UpdateFeatures(id string, features models.FeatureFlags) (*models.Restaurant, error)
}

type restaurantService struct {
	restaurantRepo repositories.RestaurantRepository
	db             *sql.DB
}

// NewRestaurantService creates a new instance of RestaurantService.
func NewRestaurantService(rr repositories.RestaurantRepository, db *sql.DB) RestaurantService {
	return &restaurantService{restaurantRepo: rr, db: db}
}

func (s *restaurantService) Register(req RegisterRestaurantRequest) (*RestaurantAuthResponse, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	features := req.Features
	if features == nil {
		features = models.DefaultFeatureFlags()
	}
	restaurant := &models.Restaurant{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       models.NewNullString(req.Phone),
		Address:     models.NewNullString(req.Address),
		City:        models.NewNullString(req.City),
		Description: models.NewNullString(req.Description),
		CuisineType: models.NewNullString(req.CuisineType),
		Tables:      req.Tables,
		Features:    features,
	}
	if _, err := s.restaurantRepo.Create(s.db, restaurant, string(hashedPasswordBytes)); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	token, err := utils.GenerateToken(restaurant.ID, restaurant.ID, utils.TokenKindRestaurant,
		"", "", utils.RestaurantTokenTTL)
	if err != nil {
		return nil, err
	}
	return &RestaurantAuthResponse{Token: token, Restaurant: restaurant.PublicView()}, nil
}

func (s *restaurantService) Login(req RestaurantLoginRequest) (*RestaurantAuthResponse, error) {
	restaurant, err := s.restaurantRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(restaurant.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(restaurant.ID, restaurant.ID, utils.TokenKindRestaurant,
		"", "", utils.RestaurantTokenTTL)
	if err != nil {
		return nil, err
	}
	return &RestaurantAuthResponse{Token: token, Restaurant: restaurant.PublicView()}, nil
}

func (s *restaurantService) GetByID(id string) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return restaurant, nil
}

func (s *restaurantService) Search(filters models.RestaurantFilters) ([]models.Restaurant, int, error) {
	if filters.PageSize <= 0 || filters.PageSize > 50 {
		filters.PageSize = 20
	}
	return s.restaurantRepo.Search(filters)
}

func (s *restaurantService) List(page, pageSize int) ([]models.Restaurant, int, error) {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 50
	}
	return s.restaurantRepo.List(page, pageSize)
}

func (s *restaurantService) Update(id string, req UpdateRestaurantRequest) (*models.Restaurant, error) {
	restaurant, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		restaurant.Name = *req.Name
	}
	if req.Phone != nil {
		restaurant.Phone = models.NewNullString(*req.Phone)
	}
	if req.Address != nil {
		restaurant.Address = models.NewNullString(*req.Address)
	}
	if req.City != nil {
		restaurant.City = models.NewNullString(*req.City)
	}
	if req.Description != nil {
		restaurant.Description = models.NewNullString(*req.Description)
	}
	if req.CuisineType != nil {
		restaurant.CuisineType = models.NewNullString(*req.CuisineType)
	}
	if req.Tables != nil {
		if *req.Tables < 0 {
			return nil, fmt.Errorf("%w: table count cannot be negative", ErrValidation)
		}
		restaurant.Tables = *req.Tables
	}
	if err := s.restaurantRepo.Update(s.db, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (s *restaurantService) UpdateFeatures(id string, features models.FeatureFlags) (*models.Restaurant, error) {
	restaurant, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.restaurantRepo.UpdateFeatures(s.db, id, features); err != nil {
		return nil, err
	}
	restaurant.Features = features
	return restaurant, nil
}
