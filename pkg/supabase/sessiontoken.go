package supabase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenClaims is the subset of a Supabase Auth access token we rely on.
type AccessTokenClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email,omitempty"`
	// Role is the Postgres role ("authenticated", "anon"), not the application role.
	Role string `json:"role,omitempty"`
}

type VerifiedUser struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// VerifyAccessToken verifies a Supabase Auth access token (JWT, HS256) with the project JWT secret.
func VerifyAccessToken(tokenString, jwtSecret, audience string, now time.Time) (*VerifiedUser, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}
	if jwtSecret == "" {
		return nil, fmt.Errorf("missing jwt secret")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	claims := &AccessTokenClaims{}
	tok, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if audience != "" && !audContains([]string(claims.Audience), audience) {
		return nil, fmt.Errorf("audience mismatch")
	}
	if claims.Role == "anon" {
		return nil, fmt.Errorf("anonymous token")
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("invalid subject: %w", err)
	}

	return &VerifiedUser{
		UserID:    claims.Subject,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// SignAccessToken mints an HS256 token in the Supabase Auth shape. Used by local tooling and tests.
func SignAccessToken(userID, email, audience, jwtSecret string, now time.Time, ttl time.Duration) (string, error) {
	if jwtSecret == "" {
		return "", fmt.Errorf("missing jwt secret")
	}
	claims := AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
		Role:  "authenticated",
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
}

func audContains(aud []string, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}
