package models

import (
	"database/sql"
	"time"
)

// Staff roles. Roles form a closed set; each maps to a static permission
// template snapshotted onto the staff row at creation.
const (
	RoleManager = "manager"
	RoleWaiter  = "waiter"
	RoleKitchen = "kitchen"
	RoleCashier = "cashier"
)

func IsValidStaffRole(r string) bool {
	switch r {
	case RoleManager, RoleWaiter, RoleKitchen, RoleCashier:
		return true
	}
	return false
}

// PermissionMap is resource -> action -> allowed.
type PermissionMap map[string]map[string]bool

// Allows reports whether the map grants action on resource.
func (p PermissionMap) Allows(resource, action string) bool {
	actions, ok := p[resource]
	if !ok {
		return false
	}
	return actions[action]
}

// RolePermissions is the fixed role -> capability table. Edits to a staff
// member's stored snapshot are possible on role change but never widen
// beyond what the middleware grants from this table.
var RolePermissions = map[string]PermissionMap{
	RoleManager: {
		"orders":    {"view": true, "create": true, "update": true, "delete": true},
		"menu":      {"view": true, "create": true, "update": true, "delete": true},
		"staff":     {"view": true, "create": false, "update": false, "delete": false},
		"discounts": {"view": true, "create": true, "update": true, "delete": true},
		"analytics": {"view": true},
		"feedback":  {"view": true, "respond": true},
		"settings":  {"view": true, "update": true},
	},
	RoleWaiter: {
		"orders":   {"view": true, "create": true, "update": true, "delete": false},
		"menu":     {"view": true},
		"feedback": {"view": true},
	},
	RoleKitchen: {
		"orders": {"view": true, "update": true},
		"menu":   {"view": true},
	},
	RoleCashier: {
		"orders":    {"view": true, "create": true, "update": true},
		"menu":      {"view": true},
		"discounts": {"view": true},
		"analytics": {"view": true},
	},
}

// PermissionsForRole returns a copy of the role template so a staff row's
// snapshot can diverge without mutating the shared table.
func PermissionsForRole(role string) PermissionMap {
	tmpl, ok := RolePermissions[role]
	if !ok {
		return PermissionMap{}
	}
	cp := make(PermissionMap, len(tmpl))
	for res, actions := range tmpl {
		ca := make(map[string]bool, len(actions))
		for a, v := range actions {
			ca[a] = v
		}
		cp[res] = ca
	}
	return cp
}

type Staff struct {
	ID           string         `json:"id"`
	RestaurantID string         `json:"restaurant_id"`
	Name         string         `json:"name"`
	Username     string         `json:"username"`
	PasswordHash string         `json:"-"`
	Role         string         `json:"role"`
	Phone        sql.NullString `json:"-"`
	Permissions  PermissionMap  `json:"permissions"`
	Active       bool           `json:"active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// StaffSession is the server-side record backing a staff JWT; the token
// expiry is tracked both in the signed claims and here.
type StaffSession struct {
	ID        string
	StaffID   string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type StaffResponse struct {
	ID           string        `json:"id"`
	RestaurantID string        `json:"restaurant_id"`
	Name         string        `json:"name"`
	Username     string        `json:"username"`
	Role         string        `json:"role"`
	Phone        *string       `json:"phone,omitempty"`
	Permissions  PermissionMap `json:"permissions"`
	Active       bool          `json:"active"`
	CreatedAt    time.Time     `json:"created_at"`
}

func (s *Staff) PublicView() StaffResponse {
	return StaffResponse{
		ID:           s.ID,
		RestaurantID: s.RestaurantID,
		Name:         s.Name,
		Username:     s.Username,
		Role:         s.Role,
		Phone:        StrOrNil(s.Phone),
		Permissions:  s.Permissions,
		Active:       s.Active,
		CreatedAt:    s.CreatedAt,
	}
}
