// Package session resolves the signed-in user from the session cookie issued
// after the identity provider callback.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jnst/self-enrollment/internal/logger"
)

var (
	errInvalidToken   = errors.New("invalid session token")
	errInvalidSubject = errors.New("session subject is not a user id")
)

type userKey struct{}

// Verifier validates HS256 session tokens stored in a cookie.
type Verifier struct {
	secret []byte
	cookie string
}

// NewVerifier creates a Verifier for tokens signed with secret.
func NewVerifier(secret, cookieName string) *Verifier {
	return &Verifier{secret: []byte(secret), cookie: cookieName}
}

// Issue signs a session token for userID.
func (v *Verifier) Issue(userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	return token.SignedString(v.secret)
}

// Cookie wraps a token in the session cookie.
func (v *Verifier) Cookie(token string) *http.Cookie {
	return &http.Cookie{Name: v.cookie, Value: token, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode}
}

// Verify parses token and returns the user id in its subject.
func (v *Verifier) Verify(token string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", errInvalidToken, err)
	}
	if !parsed.Valid {
		return uuid.Nil, errInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errInvalidSubject
	}

	return userID, nil
}

// Middleware attaches the session user to the request context. Requests
// without a valid session continue anonymously.
func (v *Verifier) Middleware(log *slog.Logger) func(next http.Handler) http.Handler {
	log = log.With(logger.Module("session"))

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(v.cookie)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := v.Verify(c.Value)
			if err != nil {
				log.Debug("ignoring session cookie", slog.String("path", r.URL.Path), logger.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID)))
		}

		return http.HandlerFunc(fn)
	}
}

// WithUser returns ctx carrying userID.
func WithUser(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserFromContext returns the signed-in user, or nil for anonymous requests.
func UserFromContext(ctx context.Context) *uuid.UUID {
	userID, ok := ctx.Value(userKey{}).(uuid.UUID)
	if !ok {
		return nil
	}

	return &userID
}
