package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gridplace-dev/gridplace/internal/domain"
	jwt_internal "github.com/gridplace-dev/gridplace/internal/jwt"
	"github.com/gridplace-dev/gridplace/internal/logger"
)

// Key to store the actor claims in the request context
type key int

const ActorClaimsKey key = 0

var errNoToken = errors.New("no access token")

// Auth holds dependencies for authentication middleware.
// Authentication itself is outside the placement engine's scope: this layer
// only resolves an already-issued token into the (actorId, displayName)
// identity the engine requires.
type Auth struct {
	jwtService jwt_internal.JwtService
}

func NewAuth(jwtService jwt_internal.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth returns middleware that requires authentication
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.auth(false)
}

// AdminOnly returns middleware that requires admin authentication
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.auth(true)
}

func (a *Auth) auth(adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := a.extractActor(r)
			if err != nil {
				http.Error(w, "Not authorized", http.StatusUnauthorized)
				return
			}
			if adminOnly && !actor.Admin {
				http.Error(w, "Admin only", http.StatusForbidden)
				return
			}
			ctx := context.WithValue(r.Context(), ActorClaimsKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractActor extracts and validates the actor from the JWT in the request.
func (a *Auth) extractActor(r *http.Request) (*domain.Actor, error) {
	// Try to get token from cookie first (for browser clients)
	var tokenString string
	accessCookie, err := r.Cookie("accessToken")
	if err == nil {
		tokenString = accessCookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		// If no cookie, try Authorization header (for API clients)
		tokenString = token
	}

	if tokenString == "" {
		return nil, errNoToken
	}

	token, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	uid, ok := claims["uid"].(float64)
	if !ok {
		logger.Log.Warn("token without uid claim")
		return nil, errors.New("invalid uid claim")
	}
	name, _ := claims["name"].(string)
	admin, _ := claims["admin"].(bool)

	return &domain.Actor{Id: domain.ActorId(uid), Name: name, Admin: admin}, nil
}

// GetActorFromContext returns the authenticated actor, or nil if the request
// did not pass through auth middleware.
func GetActorFromContext(r *http.Request) *domain.Actor {
	actor, _ := r.Context().Value(ActorClaimsKey).(*domain.Actor)
	return actor
}
