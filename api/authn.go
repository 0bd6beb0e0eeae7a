package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campus/leaveflow/workflow"
)

// =============================================================================
// SESSION TOKENS
// =============================================================================
//
// The HTTP surface is stateless: login issues an HS256 token carrying the
// full identity, and every later request restores it from the bearer header.
// The model-level session (the persisted current-user key) is managed by the
// app package; the token is just the transport.

const tokenTTL = 24 * time.Hour

// timeNow is swapped in tests to issue tokens at fixed instants.
var timeNow = time.Now

type sessionClaims struct {
	DisplayName string        `json:"displayName"`
	Role        workflow.Role `json:"role"`
	Department  string        `json:"department"`
	jwt.RegisteredClaims
}

// issueToken signs a session token for id.
func issueToken(secret string, id workflow.Identity, now time.Time) (string, error) {
	claims := &sessionClaims{
		DisplayName: id.DisplayName,
		Role:        id.Role,
		Department:  id.Department,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// parseToken validates tok and reconstructs the identity it carries.
func parseToken(secret, tok string) (workflow.Identity, error) {
	token, err := jwt.ParseWithClaims(tok, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return workflow.Identity{}, fmt.Errorf("invalid session token")
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !claims.Role.Valid() {
		return workflow.Identity{}, fmt.Errorf("invalid session token")
	}
	return workflow.Identity{
		Email:       claims.Subject,
		DisplayName: claims.DisplayName,
		Role:        claims.Role,
		Department:  claims.Department,
	}, nil
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

type ctxKey int

const identityKey ctxKey = 0

// identityFrom returns the authenticated identity stored by requireSession.
func identityFrom(ctx context.Context) (workflow.Identity, bool) {
	id, ok := ctx.Value(identityKey).(workflow.Identity)
	return id, ok
}

// requireSession rejects requests without a valid bearer token and stores the
// restored identity on the request context.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			writeError(w, http.StatusUnauthorized, "Missing bearer token", nil)
			return
		}

		id, err := parseToken(h.Secret, parts[1])
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired session", err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, id)))
	})
}

// requireRole gates a route to the given roles. Must run after requireSession.
func requireRole(roles ...workflow.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := identityFrom(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "Not authenticated", nil)
				return
			}
			for _, role := range roles {
				if id.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "Insufficient role", nil)
		})
	}
}
