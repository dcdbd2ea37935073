package auth

import (
	"crypto/rsa"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fms/internal/config"
)

// Claims is the token payload shared by all services: the authenticated
// user's identity as issued by the users service.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Issuer signs RS256 tokens. Only the users service holds the private key.
type Issuer struct {
	key    *rsa.PrivateKey
	expiry time.Duration
}

// NewIssuer parses the private key PEM from configuration.
func NewIssuer(cfg config.JWTConfig) (*Issuer, error) {
	if cfg.PrivateKeyPEM == "" {
		return nil, fmt.Errorf("jwt private key is required")
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(unescapePEM(cfg.PrivateKeyPEM)))
	if err != nil {
		return nil, fmt.Errorf("parse jwt private key: %w", err)
	}
	expiry := time.Duration(cfg.ExpirySec) * time.Second
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &Issuer{key: key, expiry: expiry}, nil
}

// Issue signs a token carrying the user's identity.
func (i *Issuer) Issue(userID, username, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(i.key)
}

// Verifier validates RS256 tokens with the public key.
type Verifier struct {
	key *rsa.PublicKey
}

// NewVerifier parses the public key PEM from configuration.
func NewVerifier(cfg config.JWTConfig) (*Verifier, error) {
	if cfg.PublicKeyPEM == "" {
		return nil, fmt.Errorf("jwt public key is required")
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(unescapePEM(cfg.PublicKeyPEM)))
	if err != nil {
		return nil, fmt.Errorf("parse jwt public key: %w", err)
	}
	return &Verifier{key: key}, nil
}

// Verify parses and validates a token, returning its claims. Only RS256 is
// accepted to prevent algorithm confusion.
func (v *Verifier) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodRS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return v.key, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token missing userId claim")
	}
	return claims, nil
}

// unescapePEM allows keys to be passed through env vars with literal "\n".
func unescapePEM(pem string) string {
	return strings.ReplaceAll(pem, `\n`, "\n")
}
