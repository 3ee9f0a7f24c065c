package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/collabhub/backend/internal/models"
)

var (
	ErrSigningKey            = errors.New("token signing key is missing or invalid")
	ErrTokenExpired          = errors.New("jwt token signature expired")
	ErrTokenSignatureInvalid = errors.New("jwt token signature invalid")
	ErrTokenMalformed        = errors.New("jwt token invalid")
)

// TTL is the fixed validity window of a session token. There is no refresh
// mechanism; clients re-authenticate after expiry.
const TTL = 30 * time.Minute

// Claims is the identity claim set embedded in session tokens.
type Claims struct {
	UserID        string    `json:"user_id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	UserCreatedAt time.Time `json:"created_at"`
	jwt.RegisteredClaims
}

// Service issues and validates signed session tokens.
type Service struct {
	secret []byte
}

// NewService creates a token service signing with the given secret key.
func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue signs a token carrying the user's identity, valid for TTL from now.
func (s *Service) Issue(user *models.User) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrSigningKey
	}

	now := time.Now()
	claims := Claims{
		UserID:        user.ID,
		Email:         user.Email,
		Name:          user.Name,
		UserCreatedAt: user.CreatedAt,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature and expiry and returns the embedded claims.
// Each failure mode maps to a distinct error so callers can report the
// precise reason.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, ErrSigningKey
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, ErrTokenMalformed
	default:
		return nil, fmt.Errorf("failed to validate token: %w", err)
	}
}
