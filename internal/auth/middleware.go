package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"foodorder/internal/commons"
	"foodorder/internal/domain"
	apperrors "foodorder/internal/errors"
)

const MsgUnauthorizedAccess = "Unauthorized access"

type contextKey struct{}

// UserLoader resolves the subject of a token to a stored user.
type UserLoader interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

func WithUser(ctx context.Context, user domain.CurrentUser) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

func UserFromContext(ctx context.Context) (domain.CurrentUser, bool) {
	user, ok := ctx.Value(contextKey{}).(domain.CurrentUser)
	return user, ok
}

// Authenticate attaches the caller to the request context when a valid bearer token is present.
// Requests without one pass through anonymously; RequireRole rejects them where needed.
func Authenticate(tokens *TokenIssuer, users UserLoader, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Validate(raw)
			if err != nil {
				logger.Debug("rejected access token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.FindByUsername(r.Context(), claims.Username)
			if err != nil {
				logger.Warn("token subject not found", zap.String("username", claims.Username), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user.Current())))
		})
	}
}

// RequireRole lets through authenticated users holding one of roles. With no roles any authenticated user passes.
func RequireRole(logger *zap.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				traceID := commons.TraceID(r)
				commons.WriteError(w, traceID, apperrors.NewUnauthorizedError(MsgUnauthorizedAccess), logger.With(zap.String("traceId", traceID)))
				return
			}

			if len(roles) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			traceID := commons.TraceID(r)
			commons.WriteError(w, traceID, apperrors.NewForbiddenError("Access denied"), logger.With(zap.String("traceId", traceID)))
		})
	}
}
