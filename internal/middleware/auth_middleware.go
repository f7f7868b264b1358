package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/asaplab/asap/internal/app/models"
	"github.com/asaplab/asap/internal/app/models/dto"
	"github.com/asaplab/asap/internal/pkg/apperrors"
	"github.com/asaplab/asap/internal/pkg/auth"
	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuth
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextActor  = "actor"
)

// ActorResolver loads the caller behind a validated token
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID int64) (models.Actor, error)
	ResolveActorAs(ctx context.Context, userID int64, kind models.ActorKind) (models.Actor, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	resolver   ActorResolver
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, resolver ActorResolver) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		resolver:   resolver,
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	errorDetail := dto.NewErrorDetail(code, "Authentication required").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// JWTAuth validates the bearer token and resolves the caller into an Actor.
// The account is read on every request so role and activation changes apply
// immediately.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		actor, err := m.resolver.ResolveActor(c.Request.Context(), claims.UserID)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserNotFound):
				abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Account no longer exists")
			case errors.Is(err, apperrors.ErrAccountDisabled):
				errorDetail := dto.NewErrorDetail(dto.ErrorCodeAccountInactive, "Account is not activated")
				c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			default:
				HandleAPIError(c, err)
				c.Abort()
			}
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextActor, actor)

		c.Next()
	}
}

// RequireKind lets only actors of the given kinds through. Must run after JWTAuth.
// An account holding both roles is re-resolved as the first allowed kind it holds.
func (m *AuthMiddleware) RequireKind(kinds ...models.ActorKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User information not found")
			return
		}

		for _, kind := range kinds {
			if actor.Kind() == kind {
				c.Next()
				return
			}
		}

		for _, kind := range kinds {
			if !actor.Account().HasRole(kind) {
				continue
			}
			switched, err := m.resolver.ResolveActorAs(c.Request.Context(), actor.Account().ID, kind)
			if err != nil {
				HandleAPIError(c, err)
				c.Abort()
				return
			}
			if switched.Kind() == kind {
				c.Set(ContextActor, switched)
				c.Next()
				return
			}
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
			WithDetails("You don't have sufficient permissions for this operation")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}

// RequireStudent lets only students through
func (m *AuthMiddleware) RequireStudent() gin.HandlerFunc {
	return m.RequireKind(models.ActorStudent)
}

// RequireProfessor lets only professors through
func (m *AuthMiddleware) RequireProfessor() gin.HandlerFunc {
	return m.RequireKind(models.ActorProfessor)
}

// CurrentActor returns the actor stored by JWTAuth
func CurrentActor(c *gin.Context) (models.Actor, bool) {
	value, exists := c.Get(ContextActor)
	if !exists {
		return nil, false
	}
	actor, ok := value.(models.Actor)
	return actor, ok
}
