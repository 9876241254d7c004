package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken creates a signed JWT for a given admin ID. The token carries a
// "jti" that is also persisted server-side, so a token stays valid only while
// its jti row exists (logout deletes the row).
func GenerateToken(secret []byte, adminID int64, tokenID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": adminID,
		"jti": tokenID,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and validates a JWT token string.
// It returns the admin ID (subject) and the token ID if the token is valid.
func ValidateToken(secret []byte, tokenString string) (int64, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return 0, "", err // expired, malformed, or bad signature
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", errors.New("invalid token")
	}

	adminIDFloat, ok := claims["sub"].(float64)
	if !ok {
		return 0, "", errors.New("invalid subject claim")
	}
	tokenID, ok := claims["jti"].(string)
	if !ok || tokenID == "" {
		return 0, "", errors.New("invalid jti claim")
	}

	return int64(adminIDFloat), tokenID, nil
}
