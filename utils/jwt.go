package utils

import (
	"errors"
	"os"
	"time"

	"coccigo/config"

	"github.com/golang-jwt/jwt"
)

// SessionClaims is the decoded identity a session token carries.
type SessionClaims struct {
	UserID   string
	Username string
	Role     string
	Banned   bool
}

// secretKey resolves the signing secret. Config wins, the environment is the
// fallback, and a fixed development secret is the last resort.
func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	if secret == "" {
		secret = "dev_secret_change_me"
	}
	return []byte(secret)
}

// GenerateSessionToken creates a signed JWT for the given user identity.
// The token expires after the specified duration.
func GenerateSessionToken(sc SessionClaims, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":      sc.UserID,
		"username": sc.Username,
		"role":     sc.Role,
		"banned":   sc.Banned,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateSessionToken parses a token string and returns its claims.
// Expired, malformed and wrongly signed tokens all fail the same way.
func ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
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

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}

	sc := &SessionClaims{UserID: sub}
	if v, ok := claims["username"].(string); ok {
		sc.Username = v
	}
	if v, ok := claims["role"].(string); ok {
		sc.Role = v
	}
	if v, ok := claims["banned"].(bool); ok {
		sc.Banned = v
	}
	return sc, nil
}
