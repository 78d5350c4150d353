package utils

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultTokenTTL = 24 * time.Hour
	tokenIssuer     = "shift-manager-backend"
)

var (
	jwtMu        sync.RWMutex
	jwtSecretKey []byte
	jwtTokenTTL  = DefaultTokenTTL
)

// ErrJWTNotConfigured is returned when tokens are issued or checked before ConfigureJWT.
var ErrJWTNotConfigured = errors.New("jwt secret is not configured")

// Claims defines the JWT claims structure
type Claims struct {
	UserID     int64  `json:"id"`
	EmployeeID string `json:"employeeId"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// ConfigureJWT sets the signing secret and token lifetime used by GenerateAccessToken and ValidateToken.
func ConfigureJWT(secret string, ttl time.Duration) {
	jwtMu.Lock()
	defer jwtMu.Unlock()
	jwtSecretKey = []byte(secret)
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	jwtTokenTTL = ttl
}

func jwtSettings() ([]byte, time.Duration) {
	jwtMu.RLock()
	defer jwtMu.RUnlock()
	return jwtSecretKey, jwtTokenTTL
}

// GenerateAccessToken creates a signed token for an employee.
func GenerateAccessToken(userID int64, employeeID string, role string) (string, error) {
	secret, ttl := jwtSettings()
	if len(secret) == 0 {
		return "", ErrJWTNotConfigured
	}

	now := time.Now()
	claims := &Claims{
		UserID:     userID,
		EmployeeID: employeeID,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token string.
// It returns the claims if the token is valid, otherwise an error.
func ValidateToken(tokenString string) (*Claims, error) {
	secret, _ := jwtSettings()
	if len(secret) == 0 {
		return nil, ErrJWTNotConfigured
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithIssuer(tokenIssuer))

	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
