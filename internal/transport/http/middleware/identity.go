package middleware

import (
	"context"
	"net/http"
	"strings"

	"habit-store/pkg/jwt"

	"github.com/google/uuid"
)

type contextKey string

const identityKey contextKey = "identity"

// GuestSessionHeader carries the guest session id. The middleware
// issues a fresh id when a guest arrives without one, and echoes the
// id back so the client can keep sending it.
const GuestSessionHeader = "X-Guest-Session"

// Identity is the resolved caller identity. Exactly one of UserID and
// GuestSession is set; it decides which storage backend the request
// binds to.
type Identity struct {
	UserID       string
	GuestSession string
}

// IsGuest reports whether the caller has no authenticated account.
func (id Identity) IsGuest() bool {
	return id.UserID == ""
}

// IdentityMiddleware resolves the caller identity from the request.
type IdentityMiddleware struct {
	tokenManager *jwt.TokenManager
}

// NewIdentityMiddleware creates a new identity middleware.
func NewIdentityMiddleware(tokenManager *jwt.TokenManager) *IdentityMiddleware {
	return &IdentityMiddleware{
		tokenManager: tokenManager,
	}
}

// Resolve validates a Bearer token when one is supplied and falls back
// to a guest session otherwise. A present-but-invalid token is a hard
// 401; absence of credentials is not an error.
func (m *IdentityMiddleware) Resolve(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := m.resolve(w, r)
		if !ok {
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func (m *IdentityMiddleware) resolve(w http.ResponseWriter, r *http.Request) (Identity, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
			return Identity{}, false
		}

		userID, err := m.tokenManager.ValidateAccessToken(parts[1])
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return Identity{}, false
		}

		return Identity{UserID: userID.String()}, true
	}

	sessionID := r.Header.Get(GuestSessionHeader)
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	w.Header().Set(GuestSessionHeader, sessionID)

	return Identity{GuestSession: sessionID}, true
}

// GetIdentity extracts the resolved identity from the request context.
func GetIdentity(r *http.Request) (Identity, bool) {
	identity, ok := r.Context().Value(identityKey).(Identity)
	return identity, ok
}
