// Package auth implements bearer token verification for the tokengate
// service. Verification is stateless: each check is a pure function of the
// Authorization header value and the configured secret.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Verification outcomes, ordered by the checks that produce them.
var (
	ErrMissingHeader   = errors.New("missing Authorization header")
	ErrMalformedHeader = errors.New("malformed Authorization header")
	ErrInvalidToken    = errors.New("invalid token")
)

const (
	tokenHashSaltLength = 16
	tokenHashKeyLength  = 32
	tokenHashIterations = 120000
)

// Verifier checks presented bearer credentials against a configured secret.
// The secret is held either as the plain token or as a pbkdf2 hash; the
// hashed form wins when both are supplied. Safe for concurrent use.
type Verifier struct {
	token []byte
	hash  *tokenHash
}

type tokenHash struct {
	iterations int
	salt       []byte
	key        []byte
}

// NewVerifier builds a Verifier from the configured secret. Exactly one of
// token or encodedHash must be non-empty; encodedHash must use the
// pbkdf2$sha256$<iterations>$<salt>$<key> encoding produced by HashToken.
func NewVerifier(token, encodedHash string) (*Verifier, error) {
	encodedHash = strings.TrimSpace(encodedHash)
	if encodedHash != "" {
		hash, err := parseTokenHash(encodedHash)
		if err != nil {
			return nil, err
		}
		return &Verifier{hash: hash}, nil
	}
	if token == "" {
		return nil, errors.New("a token or token hash is required")
	}
	return &Verifier{token: []byte(token)}, nil
}

// Check classifies the Authorization header value. It returns nil when the
// request may proceed to the protected handler, or one of ErrMissingHeader,
// ErrMalformedHeader, ErrInvalidToken. Checks are ordered; the first failing
// check decides the outcome.
func (v *Verifier) Check(header string) error {
	if header == "" {
		return ErrMissingHeader
	}
	scheme, credential, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" || credential == "" {
		return ErrMalformedHeader
	}
	if !v.matches(credential) {
		return ErrInvalidToken
	}
	return nil
}

func (v *Verifier) matches(credential string) bool {
	if v.hash != nil {
		derived := pbkdf2.Key([]byte(credential), v.hash.salt, v.hash.iterations, len(v.hash.key), sha256.New)
		return subtle.ConstantTimeCompare(derived, v.hash.key) == 1
	}
	return subtle.ConstantTimeCompare([]byte(credential), v.token) == 1
}

// HashToken derives the encoded pbkdf2 form of a token, suitable for the
// token_hash config key or the TOKEN_HASH environment variable.
func HashToken(token string) (string, error) {
	if token == "" {
		return "", errors.New("token is required")
	}
	salt := make([]byte, tokenHashSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	derived := pbkdf2.Key([]byte(token), salt, tokenHashIterations, tokenHashKeyLength, sha256.New)
	encodedSalt := base64.RawStdEncoding.EncodeToString(salt)
	encodedKey := base64.RawStdEncoding.EncodeToString(derived)
	return fmt.Sprintf("pbkdf2$sha256$%d$%s$%s", tokenHashIterations, encodedSalt, encodedKey), nil
}

func parseTokenHash(encoded string) (*tokenHash, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 {
		return nil, fmt.Errorf("parse token hash: expected 5 segments, got %d", len(parts))
	}
	if parts[0] != "pbkdf2" || parts[1] != "sha256" {
		return nil, fmt.Errorf("parse token hash: unsupported scheme %s$%s", parts[0], parts[1])
	}
	iterations, err := strconv.Atoi(parts[2])
	if err != nil || iterations <= 0 {
		return nil, fmt.Errorf("parse token hash: invalid iteration count %q", parts[2])
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return nil, fmt.Errorf("parse token hash: decode salt: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, fmt.Errorf("parse token hash: decode key: %w", err)
	}
	if len(key) == 0 {
		return nil, errors.New("parse token hash: empty key")
	}
	return &tokenHash{iterations: iterations, salt: salt, key: key}, nil
}
