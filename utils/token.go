package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "admin_session"

var sessionSecret []byte

func init() {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "change-moi"
	}
	sessionSecret = []byte(secret)
}

// SessionClaims ties a browser cookie to a server-side session row.
type SessionClaims struct {
	SessionID string `json:"session_id"`
	AdminID   uint   `json:"admin_id"`
	jwt.RegisteredClaims
}

func GenerateSessionToken(sessionID string, adminID uint, ttl time.Duration) (string, error) {
	claims := &SessionClaims{
		SessionID: sessionID,
		AdminID:   adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "restobackoffice",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(sessionSecret)
}

func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return sessionSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.SessionID == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
