package services

import (
	"crypto/subtle"
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier decides whether a presented API key is accepted.
type CredentialVerifier interface {
	Verify(credential string) bool
}

// StaticKeyVerifier accepts exactly one shared secret.
type StaticKeyVerifier struct {
	key []byte
}

// NewStaticKeyVerifier creates a verifier for the given secret.
func NewStaticKeyVerifier(key string) *StaticKeyVerifier {
	return &StaticKeyVerifier{key: []byte(key)}
}

// Verify compares the credential byte for byte with the secret.
func (v *StaticKeyVerifier) Verify(credential string) bool {
	if credential == "" || len(v.key) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(credential), v.key) == 1
}

// HashedKeyVerifier accepts the key whose bcrypt hash it holds.
type HashedKeyVerifier struct {
	hash []byte
}

// NewHashedKeyVerifier creates a verifier from a bcrypt hash.
func NewHashedKeyVerifier(hash string) (*HashedKeyVerifier, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid API key hash: %w", err)
	}
	return &HashedKeyVerifier{hash: []byte(hash)}, nil
}

// HashAPIKey returns the bcrypt hash to configure for key.
func HashAPIKey(key string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash API key: %w", err)
	}
	return string(hashed), nil
}

// Verify checks the credential against the stored hash.
func (v *HashedKeyVerifier) Verify(credential string) bool {
	if credential == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(v.hash, []byte(credential)) == nil
}

// TokenVerifier accepts HS256 tokens signed with the shared secret.
// Tokens carry no identity, only issue and expiry times.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier creates a TokenVerifier for the given signing secret.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// IssueToken signs a token valid for ttl.
func (v *TokenVerifier) IssueToken(ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	tokenString, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// Verify parses the credential and checks its signature and expiry.
func (v *TokenVerifier) Verify(credential string) bool {
	if credential == "" || len(v.secret) == 0 {
		return false
	}
	token, err := jwt.Parse(credential, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return false
	}
	return token.Valid
}

// Auth modes accepted by NewCredentialVerifier.
const (
	AuthModeStatic = "static"
	AuthModeBcrypt = "bcrypt"
	AuthModeJWT    = "jwt"
)

// NewCredentialVerifier builds the verifier for mode. secret is the raw key,
// the bcrypt hash or the signing secret depending on mode.
func NewCredentialVerifier(mode, secret string) (CredentialVerifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("no secret configured for auth mode %q", mode)
	}
	switch mode {
	case AuthModeStatic:
		return NewStaticKeyVerifier(secret), nil
	case AuthModeBcrypt:
		return NewHashedKeyVerifier(secret)
	case AuthModeJWT:
		return NewTokenVerifier(secret), nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", mode)
	}
}
