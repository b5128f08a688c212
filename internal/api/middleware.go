package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"campusbooking/internal/profile"
	"campusbooking/pkg/config"
	"campusbooking/pkg/supabase"
)

type ProfileStore interface {
	FindByID(ctx context.Context, id string) (*profile.Profile, error)
	EnsureExists(ctx context.Context, id, email string) (*profile.Profile, error)
}

// SessionAuth validates Supabase Auth access tokens and attaches the caller's profile.
//
// Expected header:
// - Authorization: Bearer <JWT>
//
// Outside prod, a missing Authorization header falls back to DevUserAuth (X-Dev-User-Id).
func SessionAuth(cfg config.Config, profiles ProfileStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := strings.TrimSpace(r.Header.Get("Authorization"))
			if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				if !cfg.IsProd() && r.Header.Get("X-Dev-User-Id") != "" {
					DevUserAuth(profiles)(next).ServeHTTP(w, r)
					return
				}
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing access token")
				return
			}

			token := strings.TrimSpace(authz[7:])
			vu, err := supabase.VerifyAccessToken(token, cfg.Supabase.JWTSecret, cfg.Supabase.JWTAudience, time.Now())
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid access token")
				return
			}

			// First request of a new user registers a common profile.
			p, err := profiles.EnsureExists(r.Context(), vu.UserID, vu.Email)
			if err != nil {
				log.Printf("[api] load profile failed user=%s err=%v", vu.UserID, err)
				WriteError(w, http.StatusBadGateway, "DEPENDENCY_FAILED", "failed to load profile")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithProfile(r.Context(), p)))
		})
	}
}

// DevUserAuth trusts the X-Dev-User-Id header. Only mounted outside prod.
func DevUserAuth(profiles ProfileStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get("X-Dev-User-Id"))
			if _, err := uuid.Parse(id); err != nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid dev user id")
				return
			}
			p, err := profiles.FindByID(r.Context(), id)
			if err != nil {
				if errors.Is(err, profile.ErrNotFound) {
					WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unknown user")
					return
				}
				WriteError(w, http.StatusBadGateway, "DEPENDENCY_FAILED", "failed to load profile")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithProfile(r.Context(), p)))
		})
	}
}

// RequireRole rejects callers whose profile role is not one of roles.
func RequireRole(roles ...profile.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := ProfileFromContext(r.Context())
			if p == nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
				return
			}
			for _, role := range roles {
				if p.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			WriteError(w, http.StatusForbidden, "FORBIDDEN", "insufficient role")
		})
	}
}
