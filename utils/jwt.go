package utils

import (
	"fmt"
	"os"
	"time"

	"room-rescue/models/user"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour

	// TokenTypeAccess and TokenTypeRefresh are the values of the "typ" claim.
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateAccessToken signs a short-lived HS256 token for the user.
func GenerateAccessToken(u *user.User) (string, error) {
	return generateToken(u, TokenTypeAccess, accessTokenTTL)
}

// GenerateRefreshToken signs a long-lived HS256 token for the user.
func GenerateRefreshToken(u *user.User) (string, error) {
	return generateToken(u, TokenTypeRefresh, refreshTokenTTL)
}

func generateToken(u *user.User, tokenType string, ttl time.Duration) (string, error) {
	nowUTC := time.Now().UTC()

	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, string(r))
	}

	claims := jwt.MapClaims{
		"sub":   u.Email,
		"uid":   u.ID,
		"roles": roles,
		"typ":   tokenType,
		"exp":   nowUTC.Add(ttl).Unix(),
		"iat":   nowUTC.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret())
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies the signature and expiry of a token and returns its
// claims.
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid JWT token")
	}
	return claims, nil
}

// ClaimRoles extracts the role list from parsed claims.
func ClaimRoles(claims jwt.MapClaims) []string {
	rawRoles, ok := claims["roles"].([]interface{})
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(rawRoles))
	for _, r := range rawRoles {
		if s, ok := r.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}
