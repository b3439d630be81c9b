package handlers

import (
	"crypto/subtle"
	"net/http"

	"qr_dine_backend/internal/middleware"
	"qr_dine_backend/internal/services"
	"qr_dine_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles restaurant, staff, and admin authentication.
type AuthHandler struct {
	restaurantService services.RestaurantService
	staffService      services.StaffService
	adminUsername     string
	adminPassword     string
}

// NewAuthHandler creates a new AuthHandler. Admin credentials come from the
// environment; there is no admin table.
func NewAuthHandler(rs services.RestaurantService, ss services.StaffService, adminUsername, adminPassword string) *AuthHandler {
	return &AuthHandler{
		restaurantService: rs,
		staffService:      ss,
		adminUsername:     adminUsername,
		adminPassword:     adminPassword,
	}
}

// RegisterRestaurant handles restaurant signup.
func (h *AuthHandler) RegisterRestaurant(c *gin.Context) {
	var req services.RegisterRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.restaurantService.Register(req)
	if err != nil {
		handleServiceError(c, err, "RegisterRestaurant")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginRestaurant handles restaurant owner login.
func (h *AuthHandler) LoginRestaurant(c *gin.Context) {
	var req services.RestaurantLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.restaurantService.Login(req)
	if err != nil {
		handleServiceError(c, err, "LoginRestaurant")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LoginStaff handles staff login for one restaurant.
func (h *AuthHandler) LoginStaff(c *gin.Context) {
	var req services.StaffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.staffService.Login(req)
	if err != nil {
		handleServiceError(c, err, "LoginStaff")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LogoutStaff deletes the server-side session backing the presented token.
func (h *AuthHandler) LogoutStaff(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	const bearerPrefix = "Bearer "
	if len(authHeader) <= len(bearerPrefix) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authorization header required", ""))
		return
	}
	claims, err := utils.ValidateToken(authHeader[len(bearerPrefix):])
	if err != nil || claims.Kind != utils.TokenKindStaff {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid token", ""))
		return
	}
	if err := h.staffService.Logout(claims.SessionID); err != nil {
		handleServiceError(c, err, "LogoutStaff")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// AdminLoginRequest authenticates the platform admin.
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginAdmin issues an admin token when the env-configured credentials match.
func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	// Admin access stays closed until both credentials are configured.
	if h.adminUsername == "" || h.adminPassword == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid credentials", ""))
		return
	}
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.adminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminPassword)) == 1
	if !userOK || !passOK {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid credentials", ""))
		return
	}
	token, err := utils.GenerateToken(h.adminUsername, "", utils.TokenKindAdmin, "", "", utils.AdminTokenTTL)
	if err != nil {
		handleServiceError(c, err, "LoginAdmin")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Me returns the authenticated subject's identity.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"subject_id":    c.GetString(middleware.CtxSubjectID),
		"restaurant_id": c.GetString(middleware.CtxRestaurantID),
		"kind":          c.GetString(middleware.CtxTokenKind),
		"role":          c.GetString(middleware.CtxStaffRole),
	})
}
