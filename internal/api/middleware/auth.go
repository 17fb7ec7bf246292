package middleware

import (
	"context"
	"net/http"
	"strings"

	"hacktrack/internal/common"
	"hacktrack/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	TeamIDCtxKey contextKey = "teamID"
	RoleCtxKey   contextKey = "role"
)

func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context()) // Extracts token from Authorization header

		if err != nil {
			if strings.Contains(err.Error(), "token not found") || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
			}
			return
		}

		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		role, err := security.GetRoleFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), RoleCtxKey, role)
		if role == security.RoleTeam {
			teamID, err := security.GetTeamIDFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
				return
			}
			ctx = context.WithValue(ctx, TeamIDCtxKey, teamID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly gates the review endpoints behind the admin role claim.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(RoleCtxKey).(string)
		if !ok || role != security.RoleAdmin {
			common.RespondWithError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TeamOnly gates the self-service endpoints: a team token carries the
// id of the one team it may touch.
func TeamOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(RoleCtxKey).(string)
		if !ok || role != security.RoleTeam {
			common.RespondWithError(w, http.StatusForbidden, "Team access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Helper to get the authenticated team's id from context
func GetTeamIDFromContext(ctx context.Context) (int64, bool) {
	teamID, ok := ctx.Value(TeamIDCtxKey).(int64)
	return teamID, ok
}

// Helper to get the session role from context
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleCtxKey).(string)
	return role, ok
}
