package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ActorClaims carries the resolved scope of the acting user. Identity
// management is external; tokens arrive with the role and scope already
// decided.
type ActorClaims struct {
	Role     string `json:"role"`
	Level    string `json:"level"`
	EntityID string `json:"entityID,omitempty"`
	jwt.RegisteredClaims
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens
// and resolves the acting user into a domain Actor.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		tokenString := parts[1]

		// Parse and validate the token
		token, err := jwt.ParseWithClaims(tokenString, &ActorClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})

		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		claims, ok := token.Claims.(*ActorClaims)
		if !ok || !token.Valid {
			logger.Warn("Token claims invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		actor := domain.Actor{
			UserID:   claims.Subject,
			Role:     domain.Role(claims.Role),
			Level:    domain.HierarchyLevel(claims.Level),
			EntityID: claims.EntityID,
		}
		if actor.UserID == "" || !actor.Level.IsValid() {
			logger.Warn("Token missing actor scope", "subject", claims.Subject)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token missing actor scope"})
			return
		}

		// Store the actor in both the gin context and the request context.
		c.Set(string(actorKey), actor)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), actorKey, actor))

		c.Next()
	}
}
