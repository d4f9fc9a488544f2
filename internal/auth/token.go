/* 인증 서비스가 발급한 JWT 검증 (서명 키 공유, HS256) */

package auth

import (
	"errors"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	keyMu  sync.RWMutex
	jwtKey = []byte("default_secret_key")
)

var ErrMissingSubject = errors.New("token has no username or user id")

// SetSigningKey installs the key shared with the auth service.
func SetSigningKey(key string) {
	keyMu.Lock()
	defer keyMu.Unlock()
	if key == "" {
		log.Println("Warning: JWT_SECRET_KEY environment variable is not set. Using default key.")
		jwtKey = []byte("default_secret_key")
		return
	}
	jwtKey = []byte(key)
}

func signingKey() []byte {
	keyMu.RLock()
	defer keyMu.RUnlock()
	return jwtKey
}

// Claims matches the access tokens of the auth service; user_id is the only claim
// it always sets.
type Claims struct {
	Username string `json:"username,omitempty"`
	UserID   int    `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// Participant is the stable identity used for progress and history rows.
func (c *Claims) Participant() string {
	if c.Username != "" {
		return c.Username
	}
	return "user-" + strconv.Itoa(c.UserID)
}

// GenerateToken issues a token in the auth service format. Used by the CLI and tests.
func GenerateToken(username string, userID int, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		UserID:   userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "AwarenessSimulator-api",
			Subject:   "user_auth_token",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey())
}

// ValidateToken parses and verifies a token string.
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return signingKey(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Username == "" && claims.UserID == 0 {
		return nil, ErrMissingSubject
	}
	return claims, nil
}
