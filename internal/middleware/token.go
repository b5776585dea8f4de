package middleware

import (
	"errors"
	"time"

	"github.com/alimgiray/shiftledger/internal/models"
	"github.com/alimgiray/shiftledger/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims carries the principal inside a bearer token; the subject is the user ID
type TokenClaims struct {
	Username   string      `json:"username"`
	Role       models.Role `json:"role"`
	Department string      `json:"department"`
	jwt.RegisteredClaims
}

// IssueToken signs a bearer token for the user and returns it with its expiry
func IssueToken(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tokenTTL())

	claims := TokenClaims{
		Username:   user.Username,
		Role:       user.Role,
		Department: user.Department,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.AppConfig.Token.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// ParseToken validates a bearer token and returns the principal it names
func ParseToken(tokenStr string) (models.Principal, error) {
	var claims TokenClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(config.AppConfig.Token.Secret), nil
	}, jwt.WithLeeway(5*time.Second), jwt.WithExpirationRequired())
	if err != nil {
		return models.Principal{}, err
	}
	if claims.Subject == "" || !claims.Role.IsValid() {
		return models.Principal{}, errors.New("token is missing its principal")
	}

	return models.Principal{
		UserID:     claims.Subject,
		Username:   claims.Username,
		Role:       claims.Role,
		Department: claims.Department,
	}, nil
}

func tokenTTL() time.Duration {
	hours := config.AppConfig.Token.TTLHours
	if hours <= 0 {
		hours = 12
	}
	return time.Duration(hours) * time.Hour
}
