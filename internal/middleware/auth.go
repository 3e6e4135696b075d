// internal/middleware/auth.go
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shopfront/ecommerce-backend/internal/i18n"
	"github.com/shopfront/ecommerce-backend/internal/repository"
	"github.com/shopfront/ecommerce-backend/internal/services"
	"github.com/shopfront/ecommerce-backend/internal/utils"
)

const callerKey = "caller"

// AuthRequired verifies the bearer token and reloads its user from users on
// every request. The caller's name and admin flag come from the stored record.
func AuthRequired(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthTokenExpired))
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
			c.Abort()
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyUserNotFound))
			} else {
				logrus.WithError(err).WithField("user_id", claims.UserID).Error("Failed to load user for token")
				utils.InternalErrorResponse(c)
			}
			c.Abort()
			return
		}

		// Set user info in context
		c.Set("user_id", user.ID.String())
		c.Set(callerKey, services.Caller{
			ID:      user.ID,
			Name:    user.Name,
			IsAdmin: user.IsAdmin,
		})
		c.Next()
	}
}

// AdminRequired must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := GetCaller(c)
		if !ok || !caller.IsAdmin {
			utils.ForbiddenResponse(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetCaller returns the identity AuthRequired stored on the request.
func GetCaller(c *gin.Context) (services.Caller, bool) {
	value, exists := c.Get(callerKey)
	if !exists {
		return services.Caller{}, false
	}
	caller, ok := value.(services.Caller)
	return caller, ok
}
