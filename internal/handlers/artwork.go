// internal/handlers/artwork.go
package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/artstylelab/backend/internal/i18n"
	"github.com/artstylelab/backend/internal/services"
	"github.com/artstylelab/backend/internal/utils"
)

type ArtworkHandler struct {
	artworkService *services.ArtworkService
	storage        *services.StorageService
}

func NewArtworkHandler(artworkService *services.ArtworkService, storage *services.StorageService) *ArtworkHandler {
	return &ArtworkHandler{
		artworkService: artworkService,
		storage:        storage,
	}
}

// List handles GET /api/gallery
func (h *ArtworkHandler) List(c *gin.Context) {
	artworks, err := h.artworkService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, artworks)
}

// ListWorks handles GET /api/works. With an owner id in the query it
// returns that user's artworks, otherwise everything; legacy rows whose
// owner id was packed into the artist column get repaired either way.
// The filter comes from the query alone, never the token identity.
func (h *ArtworkHandler) ListWorks(c *gin.Context) {
	owner := c.Query("user")
	if owner == "" {
		owner = c.Query("userId")
	}

	artworks, err := h.artworkService.ListByArtist(owner)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, artworks)
}

// Get handles GET /api/gallery/:id
func (h *ArtworkHandler) Get(c *gin.Context) {
	artwork, err := h.artworkService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, artwork)
}

// Upload handles POST /api/gallery. The body is multipart form data with the
// image under "image" and the uploader id under "user".
func (h *ArtworkHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	user := callerID(c, c.PostForm("user"), c.PostForm("userId"))
	if err != nil || user == "" {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyArtworkUploadInput), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, err)
		return
	}

	imageURL, err := h.storage.SaveFile(data, fileHeader.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	// addToGallery defaults to true; only explicit "false"/"0" opts out.
	addToGallery := c.PostForm("addToGallery")
	inShowcase := addToGallery != "false" && addToGallery != "0"

	artwork, err := h.artworkService.Create(services.CreateArtworkParams{
		UserID:      user,
		Title:       c.PostForm("title"),
		Prompt:      c.PostForm("prompt"),
		Description: c.PostForm("desc"),
		Image:       imageURL,
		InShowcase:  inShowcase,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, artwork)
}

type updateArtworkBody struct {
	services.UpdateArtworkRequest
	User          string `json:"user"`
	CurrentUserID string `json:"currentUserId"`
}

// Update handles PUT /api/gallery/:id
func (h *ArtworkHandler) Update(c *gin.Context) {
	var body updateArtworkBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	caller := callerID(c, body.User, body.CurrentUserID)

	artwork, err := h.artworkService.Update(caller, c.Param("id"), &body.UpdateArtworkRequest)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, artwork)
}

// Delete handles DELETE /api/gallery/:id. Legacy clients send the caller id
// in the JSON body, newer ones in the query string.
func (h *ArtworkHandler) Delete(c *gin.Context) {
	var body actorBody
	c.ShouldBindJSON(&body)

	caller := callerID(c, body.User, body.CurrentUserID, c.Query("user"), c.Query("currentUserId"))

	if err := h.artworkService.Delete(caller, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyArtworkDeleted)})
}
