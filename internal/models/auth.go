package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	FullName string   `json:"full_name,omitempty"`
	jwt.RegisteredClaims
}
