package middleware

import (
	"net/http"
	"strings"

	"qr_dine_backend/internal/models"
	"qr_dine_backend/internal/services"
	"qr_dine_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	CtxSubjectID    = "subjectID"
	CtxRestaurantID = "restaurantID"
	CtxTokenKind    = "tokenKind"
	CtxStaffRole    = "staffRole"
)

// AuthMiddleware validates the Bearer token and sets the subject identity in
// the context. Staff tokens are additionally checked against their
// server-side session row, so a logged-out staff token is rejected even
// before its signed expiry.
func AuthMiddleware(staffService services.StaffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format. Use Bearer <token>"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		if claims.Kind == utils.TokenKindStaff {
			staff, err := staffService.ValidateSession(claims.SessionID, claims.SubjectID, parts[1])
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
				c.Abort()
				return
			}
			c.Set(CtxStaffRole, staff.Role)
		}

		c.Set(CtxSubjectID, claims.SubjectID)
		c.Set(CtxRestaurantID, claims.RestaurantID)
		c.Set(CtxTokenKind, claims.Kind)

		c.Next()
	}
}

// RequireKind restricts a route group to specific token kinds.
func RequireKind(kinds ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind := c.GetString(CtxTokenKind)
		for _, k := range kinds {
			if kind == k {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
		c.Abort()
	}
}

// RequirePermission gates an action on a resource. Restaurant owners and
// admins always pass; staff are checked against the fixed role permission
// table, never against a client-editable map.
func RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind := c.GetString(CtxTokenKind)
		if kind == utils.TokenKindRestaurant || kind == utils.TokenKindAdmin {
			c.Next()
			return
		}

		role := c.GetString(CtxStaffRole)
		perms, ok := models.RolePermissions[role]
		if !ok || !perms.Allows(resource, action) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Your role does not allow " + action + " on " + resource,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RestaurantID returns the tenant the request is scoped to.
func RestaurantID(c *gin.Context) string {
	return c.GetString(CtxRestaurantID)
}
