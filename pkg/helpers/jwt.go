package helpers

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMissing is returned when no token was supplied at all.
	ErrTokenMissing = errors.New("token missing")
	// ErrTokenInvalid is returned when the signature check fails or the token expired.
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims carries the identity of a logged-in user inside the session token.
// The field names match what the frontend decodes out of the JWT payload.
type Claims struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HS256 session tokens with a fixed validity window.
type JWTManager struct {
	Secret []byte
	TTL    time.Duration
}

var defaultManager *JWTManager

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	m := &JWTManager{Secret: []byte(secret), TTL: ttl}
	defaultManager = m
	return m
}

// DefaultJWT returns the last constructed JWTManager (used for auto-wiring routes)
func DefaultJWT() *JWTManager { return defaultManager }

// Generate signs a token carrying the given identity, valid for the manager's TTL.
func (m *JWTManager) Generate(firstName, lastName, email, avatar string) (string, time.Time, error) {
	exp := time.Now().Add(m.TTL)
	claims := &Claims{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Avatar:    avatar,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// Parse verifies a token string and returns its claims.
// Clients that store the token as a JSON string sometimes send it wrapped in
// literal double quotes; one leading and one trailing quote are stripped
// before verification.
func (m *JWTManager) Parse(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrTokenMissing
	}
	tokenStr = strings.TrimPrefix(tokenStr, "Bearer ")
	if strings.HasPrefix(tokenStr, `"`) && strings.HasSuffix(tokenStr, `"`) && len(tokenStr) > 1 {
		tokenStr = tokenStr[1 : len(tokenStr)-1]
	}
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
