// Package auth implements the shared-password access gate. A correct
// password buys a signed session cookie; everything past the gate
// receives already-authenticated requests and stays stateless.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName carries the session token.
const CookieName = "statement_session"

var (
	ErrWrongPassword  = errors.New("wrong password")
	ErrInvalidSession = errors.New("invalid session")
)

// Gate issues and verifies session tokens. An empty password disables
// the gate entirely.
type Gate struct {
	password string
	secret   []byte
	ttl      time.Duration
}

func NewGate(password, secret string) *Gate {
	return &Gate{
		password: password,
		secret:   []byte(secret),
		ttl:      12 * time.Hour,
	}
}

// Enabled reports whether requests must pass the gate.
func (g *Gate) Enabled() bool {
	return g.password != ""
}

// Login checks the password and returns a signed session token.
func (g *Gate) Login(password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) != 1 {
		return "", ErrWrongPassword
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "statement-user",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Verify checks a session token's signature and expiry.
func (g *Gate) Verify(token string) error {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidSession
	}
	return nil
}

// SetCookie attaches a fresh session cookie to the response.
func (g *Gate) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(g.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Authenticated reports whether the request carries a valid session.
// Always true when the gate is disabled.
func (g *Gate) Authenticated(r *http.Request) bool {
	if !g.Enabled() {
		return true
	}
	c, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}
	return g.Verify(c.Value) == nil
}

// Middleware redirects unauthenticated requests to the login page.
func (g *Gate) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !g.Authenticated(r) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}
