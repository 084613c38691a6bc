package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shipdash-backend/internal/config"
	"shipdash-backend/internal/timeutil"
)

// Claims mirrors the tokens minted by the upstream auth service:
// subject is the user's email, role is viewer/analyst/admin. The
// signing secret is shared, so this service can validate without a
// round trip.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	cfg *config.Config
}

func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{cfg: cfg}
}

// ValidateToken verifies a bearer token and returns the claims
func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(j.cfg.JWT.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// GenerateToken mints a token with the shared secret. The upstream
// auth service is the normal issuer; this exists for local tooling and
// tests.
func (j *JWTManager) GenerateToken(email, role string, ttl time.Duration) (string, error) {
	now := timeutil.Now()

	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.cfg.JWT.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.cfg.JWT.Secret))
}
