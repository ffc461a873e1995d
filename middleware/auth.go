package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"shopcart-api/models"
	"shopcart-api/utils"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "AccessToken"

// NewAuthMiddleware verifies the session cookie and attaches the token
// claims to the request context.
func NewAuthMiddleware(tokens *utils.TokenManager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				utils.RespondMessage(w, http.StatusUnauthorized, "Access Denied Please login")
				return
			}

			claims, err := tokens.Parse(cookie.Value)
			if err != nil {
				utils.RespondMessage(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			// Attach user information to the request context
			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminMiddleware ensures that the user has admin privileges
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(UserContextKey).(*utils.Claims)
		if !ok || claims.Role != models.RoleAdmin {
			utils.RespondMessage(w, http.StatusForbidden, "Forbidden: Admins only")
			return
		}
		next.ServeHTTP(w, r)
	})
}
