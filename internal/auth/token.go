package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mmynk/moneybook/internal/models"
)

var (
	ErrMissingToken   = errors.New("authorization token required")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("malformed token")
	ErrBadSignature   = errors.New("invalid token signature")
)

// TokenManager issues and validates signed identity tokens (HS256 JWT).
// Tokens are stateless: validity is decided purely by signature and
// expiry, there is no server-side session or revocation list.
type TokenManager struct {
	secretKey []byte
	tokenTTL  time.Duration

	// now is the clock used for issuing and validating; replaced in tests.
	now func() time.Time
}

// Claims is the claim set embedded in every token: the subject is the
// user's email, plus display fields so the client needs no extra lookup.
type Claims struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	jwt.RegisteredClaims
}

// NewTokenManager creates a token manager. The secret key is loaded
// once at startup and passed in explicitly; it is never read from any
// ambient source. tokenTTL is how long issued tokens remain valid.
func NewTokenManager(secretKey []byte, tokenTTL time.Duration) *TokenManager {
	return &TokenManager{
		secretKey: secretKey,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// Generate issues a new token for the given user, valid for the
// configured TTL.
func (m *TokenManager) Generate(user *models.User) (string, error) {
	now := m.now()
	claims := &Claims{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate parses and verifies a token, returning its claims if valid.
// Failures are reported as one of ErrBadSignature, ErrTokenExpired or
// ErrTokenMalformed; callers that only care about "no identity" can
// treat them uniformly, while logs keep the distinction.
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
		jwt.WithTimeFunc(m.now),
	)

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	default:
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
