package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BuiltByShivam/smart-inventory/internal/common"
)

// Claims carry the signed-in user and role.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

func GenerateToken(username, role string, secretKey []byte, issuedAt time.Time, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(validity)),
		},
		Username: username,
		Role:     role,
	})
	return token.SignedString(secretKey)
}

// ParseToken verifies tokenString at now. Expired tokens yield
// common.ErrTokenExpired, anything else wrong common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte, now time.Time) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, common.ErrTokenExpired
	}
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
