package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token subject kinds carried in the claims.
const (
	TokenKindRestaurant = "restaurant"
	TokenKindStaff      = "staff"
	TokenKindAdmin      = "admin"
)

const (
	// StaffTokenTTL matches the server-side session row lifetime.
	StaffTokenTTL = 24 * time.Hour
	// RestaurantTokenTTL covers owner dashboard sessions.
	RestaurantTokenTTL = 72 * time.Hour
	// AdminTokenTTL covers platform admin sessions.
	AdminTokenTTL = 12 * time.Hour
)

var jwtSecretKey []byte

// InitJWT sets the signing key. Must be called once at startup before any
// token is issued or validated.
func InitJWT(secret string) {
	jwtSecretKey = []byte(secret)
}

// Claims defines the JWT claims structure shared by all token kinds.
type Claims struct {
	SubjectID    string `json:"subject_id"`
	RestaurantID string `json:"restaurant_id,omitempty"`
	Kind         string `json:"kind"`
	Role         string `json:"role,omitempty"`
	SessionID    string `json:"session_id,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed token for the given subject.
func GenerateToken(subjectID, restaurantID, kind, role, sessionID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		SubjectID:    subjectID,
		RestaurantID: restaurantID,
		Kind:         kind,
		Role:         role,
		SessionID:    sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "qr-dine-backend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token string.
// It returns the claims if the token is valid, otherwise an error.
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
