// internal/handlers/exhibition.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/artstylelab/backend/internal/i18n"
	"github.com/artstylelab/backend/internal/services"
	"github.com/artstylelab/backend/internal/utils"
)

type ExhibitionHandler struct {
	exhibitionService *services.ExhibitionService
}

func NewExhibitionHandler(exhibitionService *services.ExhibitionService) *ExhibitionHandler {
	return &ExhibitionHandler{exhibitionService: exhibitionService}
}

// List handles GET /api/exhibitions
func (h *ExhibitionHandler) List(c *gin.Context) {
	exhibitions, err := h.exhibitionService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, exhibitions)
}

// Get handles GET /api/exhibitions/:id
func (h *ExhibitionHandler) Get(c *gin.Context) {
	exhibition, err := h.exhibitionService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, exhibition)
}

type createExhibitionBody struct {
	services.CreateExhibitionRequest
	User          string `json:"user"`
	CurrentUserID string `json:"currentUserId"`
}

// Create handles POST /api/exhibitions
func (h *ExhibitionHandler) Create(c *gin.Context) {
	var body createExhibitionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	if body.Title == "" {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyExhibitionInput), nil)
		return
	}

	caller := callerID(c, body.User, body.CurrentUserID)

	exhibition, err := h.exhibitionService.Create(caller, &body.CreateExhibitionRequest)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, exhibition)
}

type updateExhibitionBody struct {
	services.UpdateExhibitionRequest
	User          string `json:"user"`
	CurrentUserID string `json:"currentUserId"`
}

// Update handles PUT /api/exhibitions/:id
func (h *ExhibitionHandler) Update(c *gin.Context) {
	var body updateExhibitionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	caller := callerID(c, body.User, body.CurrentUserID)

	exhibition, err := h.exhibitionService.Update(caller, c.Param("id"), &body.UpdateExhibitionRequest)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, exhibition)
}

type actorBody struct {
	User          string `json:"user"`
	CurrentUserID string `json:"currentUserId"`
}

// Publish handles POST /api/exhibitions/:id/publish
func (h *ExhibitionHandler) Publish(c *gin.Context) {
	var body actorBody
	c.ShouldBindJSON(&body)

	caller := callerID(c, body.User, body.CurrentUserID, c.Query("user"))

	exhibition, err := h.exhibitionService.Publish(caller, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, exhibition)
}

// Delete handles DELETE /api/exhibitions/:id. The caller id may arrive in
// the JSON body or the query string.
func (h *ExhibitionHandler) Delete(c *gin.Context) {
	var body actorBody
	c.ShouldBindJSON(&body)

	caller := callerID(c, body.User, body.CurrentUserID, c.Query("user"), c.Query("currentUserId"))

	if err := h.exhibitionService.Delete(caller, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyExhibitionDeleted)})
}

// AddArtwork handles POST /api/exhibitions/:id/artwork/:artworkId
func (h *ExhibitionHandler) AddArtwork(c *gin.Context) {
	var body actorBody
	c.ShouldBindJSON(&body)

	caller := callerID(c, body.User, body.CurrentUserID, c.Query("user"))

	exhibition, err := h.exhibitionService.AddArtwork(caller, c.Param("id"), c.Param("artworkId"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, exhibition)
}

// RemoveArtwork handles DELETE /api/exhibitions/:id/artwork/:artworkId
func (h *ExhibitionHandler) RemoveArtwork(c *gin.Context) {
	var body actorBody
	c.ShouldBindJSON(&body)

	caller := callerID(c, body.User, body.CurrentUserID, c.Query("user"), c.Query("currentUserId"))

	exhibition, err := h.exhibitionService.RemoveArtwork(caller, c.Param("id"), c.Param("artworkId"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, exhibition)
}
