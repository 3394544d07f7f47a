// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/artstylelab/backend/internal/services"
	"github.com/artstylelab/backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUser handles GET /api/user/:userId
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, user)
}

type updateProfileBody struct {
	Name          string `json:"name"`
	OldPassword   string `json:"oldPassword"`
	NewPassword   string `json:"newPassword"`
	CurrentUserID string `json:"currentUserId"`
	User          string `json:"user"`
}

// UpdateUser handles PUT /api/user/:userId
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var body updateProfileBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	targetID := c.Param("userId")
	caller := callerID(c, body.CurrentUserID, body.User, targetID)

	user, err := h.userService.UpdateProfile(targetID, caller, &services.UpdateProfileRequest{
		Name:        body.Name,
		OldPassword: body.OldPassword,
		NewPassword: body.NewPassword,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}
