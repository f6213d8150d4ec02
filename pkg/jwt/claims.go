package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in access tokens
const (
	RoleAdmin  = "admin"
	RoleReader = "reader"
)

// Claims represents JWT custom claims
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
