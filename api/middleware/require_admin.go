package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/crystara/crystara-backend/api/responses"
	"github.com/crystara/crystara-backend/pkg/enums"
	pkgerrors "github.com/crystara/crystara-backend/pkg/errors"
	"github.com/crystara/crystara-backend/pkg/logger"
)

// RoleResolver reads the caller's stored role. The role lives on the profile
// row, not in the token, so it is looked up per request.
type RoleResolver interface {
	RoleOf(ctx context.Context, userID uuid.UUID) (enums.ProfileRole, error)
}

// RequireAdmin gates a route group behind the admin role. It must run after
// Auth so the user id is already on the context.
func RequireAdmin(roles RoleResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := UserIDFromContext(r.Context())
			userID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			role, err := roles.RoleOf(r.Context(), userID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if role != enums.ProfileRoleAdmin {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin access required"))
				return
			}

			ctx := WithRole(r.Context(), role.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
