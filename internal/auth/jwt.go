package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/scholarpath/scholarpath/internal/domain"
)

// Claims carries the session subject inside the token. The token is the
// serialized form of the authenticated user handed to the surrounding
// shell (cookie, local storage) for restoration across restarts.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// GenerateToken serializes a user into a signed HS256 token.
func GenerateToken(user *domain.User, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// UserFromToken deserializes the session subject from a token. Fails with
// ErrInvalidCredentials on a bad signature, expired token or unknown role.
func UserFromToken(tokenString string, secretKey []byte) (*domain.User, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}
	if !token.Valid {
		return nil, domain.ErrInvalidCredentials
	}

	role := domain.Role(claims.Role)
	if claims.UserID == "" || !role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	return &domain.User{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  role,
	}, nil
}
