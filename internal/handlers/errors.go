// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shopfront/ecommerce-backend/internal/i18n"
	"github.com/shopfront/ecommerce-backend/internal/middleware"
	"github.com/shopfront/ecommerce-backend/internal/services"
	"github.com/shopfront/ecommerce-backend/internal/utils"
)

var errorStatus = []struct {
	kind   error
	status int
	code   string
}{
	{services.ErrBadRequest, http.StatusBadRequest, "BAD_REQUEST"},
	{services.ErrInsufficientStock, http.StatusBadRequest, "INSUFFICIENT_STOCK"},
	{services.ErrInvalidTransition, http.StatusBadRequest, "INVALID_TRANSITION"},
	{services.ErrAlreadyExists, http.StatusBadRequest, "ALREADY_EXISTS"},
}

// respondError writes err as a JSON error body in the request's language.
// Anything that is not a domain error is logged and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	var domainErr *services.Error
	if errors.As(err, &domainErr) {
		message := domainErr.Localize(utils.GetLangFromContext(c))

		switch {
		case errors.Is(domainErr, services.ErrNotFound):
			utils.NotFoundResponse(c, message)
			return
		case errors.Is(domainErr, services.ErrForbidden):
			utils.ForbiddenResponse(c, message)
			return
		case errors.Is(domainErr, services.ErrUnauthorized):
			utils.UnauthorizedResponse(c, message)
			return
		}

		if fields, ok := domainErr.Details.([]utils.ValidationError); ok && len(fields) > 0 {
			utils.ValidationErrorResponse(c, message, fields)
			return
		}

		for _, e := range errorStatus {
			if errors.Is(domainErr, e.kind) {
				utils.ErrorResponse(c, e.status, e.code, message, domainErr.Details)
				return
			}
		}
	}

	logrus.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
	}).Error("Unhandled error")
	utils.InternalErrorResponse(c)
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, param), nil)
		return uuid.Nil, false
	}
	return id, true
}

func requireCaller(c *gin.Context) (services.Caller, bool) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
	}
	return caller, ok
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	return true
}
