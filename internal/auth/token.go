package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/TeeCanvas/TC-Backend/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims extends the registered claim set with the username; the user ID
// travels in the standard subject claim.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// TokenService signs and verifies stateless bearer tokens. Nothing is
// persisted; expiry is the only revocation mechanism.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// NewTokenServiceFromEnv reads AUTH_SECRET (required) and AUTH_TOKEN_TTL
// (optional Go duration, default 6h).
func NewTokenServiceFromEnv() (*TokenService, error) {
	secret := os.Getenv("AUTH_SECRET")
	if secret == "" {
		return nil, errors.New("AUTH_SECRET is empty")
	}

	ttl := 6 * time.Hour
	if raw := os.Getenv("AUTH_TOKEN_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing AUTH_TOKEN_TTL: %w", err)
		}
		ttl = parsed
	}

	return NewTokenService([]byte(secret), ttl), nil
}

func (ts *TokenService) IssueToken(userID, username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ts.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Username: username,
	})

	signed, err := token.SignedString(ts.secret)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// DecodeToken verifies the signature and expiry and returns the identity
// carried in the claims. Satisfies middleware.TokenDecoder.
func (ts *TokenService) DecodeToken(tokenString string) (utils.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return ts.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return utils.Identity{}, err
	}

	if !token.Valid || claims.Subject == "" {
		return utils.Identity{}, ErrInvalidToken
	}

	return utils.Identity{
		UserID:   claims.Subject,
		Username: claims.Username,
	}, nil
}
