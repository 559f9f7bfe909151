package middleware

import (
	"context"
	"net/http"

	"github.com/AyAchi-19/f1-store/internal/auth"
)

type contextKey string

const (
	UserIDKey    contextKey = "userID"
	UserEmailKey contextKey = "userEmail"
	IsAdminKey   contextKey = "isAdmin"
)

// AuthMiddleware parses the access token if one is present and stores the
// claims in the request context. Anonymous requests pass through; handlers
// decide what requires authentication.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := auth.ExtractAccessToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := auth.ParseJWT(tokenStr)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := SetUserContext(r.Context(), claims.UserID, claims.Email, claims.IsAdmin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetUserContext sets user info into context (called by middleware)
func SetUserContext(ctx context.Context, id, email string, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id)
	ctx = context.WithValue(ctx, UserEmailKey, email)
	ctx = context.WithValue(ctx, IsAdminKey, isAdmin)
	return ctx
}

// GetUserIDFromContext retrieves userID safely
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok && id != ""
}

func GetUserEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(UserEmailKey).(string)
	return email
}

func IsAdminFromContext(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(IsAdminKey).(bool)
	return isAdmin
}
