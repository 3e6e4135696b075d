// internal/handlers/user.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopfront/ecommerce-backend/internal/i18n"
	"github.com/shopfront/ecommerce-backend/internal/models"
	"github.com/shopfront/ecommerce-backend/internal/services"
	"github.com/shopfront/ecommerce-backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), caller.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// PUT /users/update-mobile
func (h *UserHandler) UpdateMobile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req services.UpdateMobileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateMobile(c.Request.Context(), caller.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyUserMobileUpdated), user)
}

// PUT /users/update-email
func (h *UserHandler) UpdateEmail(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req services.UpdateEmailRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateEmail(c.Request.Context(), caller.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyUserEmailUpdated), user)
}

// PUT /users/update-address
func (h *UserHandler) UpdateAddress(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var address models.Address
	if !bindJSON(c, &address) {
		return
	}

	user, err := h.userService.UpdateAddress(c.Request.Context(), caller.ID, &address)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyUserAddressUpdated), user)
}
