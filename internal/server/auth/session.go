package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dkotelnikov/invoicehub/internal/common"
)

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID   int64
	Username string
}

// Claims carries the principal inside the session JWT.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
}

// GenerateSessionToken issues an HS256-signed token for the principal,
// valid for validityDuration. The transport layer stores it in the session
// cookie.
func GenerateSessionToken(p Principal, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID:   p.UserID,
		Username: p.Username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseSessionToken validates the token signature and expiry and returns
// the embedded principal. Expired tokens yield common.ErrTokenExpired,
// anything else malformed yields common.ErrInvalidToken.
func ParseSessionToken(tokenString string, secretKey []byte) (Principal, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, common.ErrTokenExpired
		}
		return Principal{}, common.ErrInvalidToken
	}

	if !token.Valid {
		return Principal{}, common.ErrInvalidToken
	}

	return Principal{UserID: claims.UserID, Username: claims.Username}, nil
}
