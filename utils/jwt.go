package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"

	"labbook/config"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "labbook-dev"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT with the given account id and email.
// The token expires after the specified duration.
func GenerateToken(accountID, email string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   accountID,
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ParseAccountToken validates a token and extracts the account id and email.
func ParseAccountToken(tokenString string) (accountID, email string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", "", errors.New("token missing subject")
	}
	em, _ := claims["email"].(string)
	return sub, em, nil
}
