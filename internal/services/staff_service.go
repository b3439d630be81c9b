package services

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"qr_dine_backend/internal/models"
	"qr_dine_backend/internal/repositories"
	"qr_dine_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrStaffNotFound    = errors.New("staff member not found")
	ErrStaffInactive    = errors.New("staff account is inactive")
	ErrUsernameExists   = errors.New("username already exists for this restaurant")
	ErrUnknownStaffRole = errors.New("unknown staff role")
)

// --- DTOs ---

// CreateStaffRequest provisions a staff account. Permissions are snapshotted
// from the role template; they are not client-supplied.
type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
	Phone    string `json:"phone"`
}

// UpdateStaffRequest patches a staff account. A role change re-snapshots the
// permission template for the new role.
type UpdateStaffRequest struct {
	Name   *string `json:"name"`
	Role   *string `json:"role"`
	Phone  *string `json:"phone"`
	Active *bool   `json:"active"`
}

// StaffLoginRequest authenticates a staff member against one restaurant.
type StaffLoginRequest struct {
	RestaurantID string `json:"restaurant_id" binding:"required"`
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password" binding:"required"`
}

// StaffLoginResponse carries the token and the staff profile.
type StaffLoginResponse struct {
	Token string               `json:"token"`
	Staff models.StaffResponse `json:"staff"`
}

// --- StaffService Interface ---
type StaffService interface {
	Create(restaurantID string, req CreateStaffRequest) (*models.Staff, error)
	GetByID(id, restaurantID string) (*models.Staff, error)
	List(restaurantID string) ([]models.Staff, error)
	Update(id, restaurantID string, req UpdateStaffRequest) (*models.Staff, error)
	Delete(id, restaurantID string) error

	Login(req StaffLoginRequest) (*StaffLoginResponse, error)
	Logout(sessionID string) error
	// ValidateSession enforces the server-side session row in addition to the
	// token's own expiry, and checks the presented token against the hash
	// stored at login. Returns the staff member for permission checks.
	ValidateSession(sessionID, staffID, token string) (*models.Staff, error)
}

type staffService struct {
	staffRepo repositories.StaffRepository
	db        *sql.DB
}

// NewStaffService creates a new instance of StaffService.
func NewStaffService(sr repositories.StaffRepository, db *sql.DB) StaffService {
	return &staffService{staffRepo: sr, db: db}
}

func (s *staffService) Create(restaurantID string, req CreateStaffRequest) (*models.Staff, error) {
	if !models.IsValidStaffRole(req.Role) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStaffRole, req.Role)
	}
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	staff := &models.Staff{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Username:     req.Username,
		Role:         req.Role,
		Phone:        models.NewNullString(req.Phone),
		Permissions:  models.PermissionsForRole(req.Role),
		Active:       true,
	}
	if _, err := s.staffRepo.Create(s.db, staff, string(hashedPasswordBytes)); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}
	return staff, nil
}

func (s *staffService) GetByID(id, restaurantID string) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	if staff.RestaurantID != restaurantID {
		return nil, ErrStaffNotFound
	}
	return staff, nil
}

func (s *staffService) List(restaurantID string) ([]models.Staff, error) {
	return s.staffRepo.ListByRestaurant(restaurantID)
}

func (s *staffService) Update(id, restaurantID string, req UpdateStaffRequest) (*models.Staff, error) {
	staff, err := s.GetByID(id, restaurantID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Role != nil && *req.Role != staff.Role {
		if !models.IsValidStaffRole(*req.Role) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownStaffRole, *req.Role)
		}
		staff.Role = *req.Role
		staff.Permissions = models.PermissionsForRole(*req.Role)
	}
	if req.Phone != nil {
		staff.Phone = models.NewNullString(*req.Phone)
	}
	if req.Active != nil {
		staff.Active = *req.Active
	}
	if err := s.staffRepo.Update(s.db, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *staffService) Delete(id, restaurantID string) error {
	err := s.staffRepo.Delete(s.db, id, restaurantID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrStaffNotFound
	}
	return err
}

// hashToken stores only a digest of the issued token in the session row.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Login verifies the password, creates a session row, and issues a token
// whose claims carry the session id. A failed login creates no session.
func (s *staffService) Login(req StaffLoginRequest) (*StaffLoginResponse, error) {
	staff, err := s.staffRepo.GetByUsername(req.RestaurantID, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !staff.Active {
		return nil, ErrStaffInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if _, err := s.staffRepo.DeleteExpiredSessions(s.db); err != nil {
		// Stale rows only cost space; the login itself still proceeds.
		utils.LogWarn("failed to prune expired staff sessions", map[string]interface{}{"error": err.Error()})
	}

	session := &models.StaffSession{
		StaffID:   staff.ID,
		ExpiresAt: time.Now().Add(utils.StaffTokenTTL),
	}
	// The token embeds the session id, so sign after the session id exists
	// but store only the hash of the final token.
	sessionID, err := s.staffRepo.CreateSession(s.db, session)
	if err != nil {
		return nil, err
	}
	token, err := utils.GenerateToken(staff.ID, staff.RestaurantID, utils.TokenKindStaff,
		staff.Role, sessionID, utils.StaffTokenTTL)
	if err != nil {
		return nil, err
	}
	session.TokenHash = hashToken(token)
	if err := s.staffRepo.UpdateSessionTokenHash(s.db, sessionID, session.TokenHash); err != nil {
		return nil, fmt.Errorf("failed to store session token hash: %w", err)
	}

	return &StaffLoginResponse{Token: token, Staff: staff.PublicView()}, nil
}

func (s *staffService) Logout(sessionID string) error {
	err := s.staffRepo.DeleteSession(s.db, sessionID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	return err
}

func (s *staffService) ValidateSession(sessionID, staffID, token string) (*models.Staff, error) {
	session, err := s.staffRepo.GetSession(sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, err
	}
	if session.StaffID != staffID || session.ExpiresAt.Before(time.Now()) {
		return nil, ErrSessionExpired
	}
	// A forged token with valid claims must not ride an existing session row.
	if session.TokenHash != hashToken(token) {
		return nil, ErrSessionExpired
	}
	staff, err := s.staffRepo.GetByID(staffID)
	if err != nil {
		return nil, ErrSessionExpired
	}
	if !staff.Active {
		return nil, ErrStaffInactive
	}
	return staff, nil
}
