package utils

import (
	"errors"
	"time"

	"trimly/config"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "trimly-dev-secret"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT for an authenticated actor. The tenant
// claim is empty for super admins, who are not bound to a single tenant.
func GenerateToken(subject, role, tenantID string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":    subject,
		"role":   role,
		"tenant": tenantID,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns its claims.
func ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
