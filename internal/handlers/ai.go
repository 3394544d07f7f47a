// internal/handlers/ai.go
package handlers

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/artstylelab/backend/internal/i18n"
	"github.com/artstylelab/backend/internal/middleware"
	"github.com/artstylelab/backend/internal/services"
	"github.com/artstylelab/backend/internal/utils"
)

// ImageGenerator abstracts the generation backend so tests can substitute
// a stub.
type ImageGenerator interface {
	Enabled() bool
	GenerateImages(ctx context.Context, prompt string, opts services.GenerateOptions) ([]services.GeneratedImage, error)
	DownloadImage(ctx context.Context, url string) ([]byte, error)
}

type AIHandler struct {
	generator      ImageGenerator
	artworkService *services.ArtworkService
	storage        *services.StorageService
	limiter        *middleware.FixedWindowLimiter
}

func NewAIHandler(generator ImageGenerator, artworkService *services.ArtworkService, storage *services.StorageService, limiter *middleware.FixedWindowLimiter) *AIHandler {
	return &AIHandler{
		generator:      generator,
		artworkService: artworkService,
		storage:        storage,
		limiter:        limiter,
	}
}

// generateOptions carries per-call tuning. Original clients send the size
// under "scale" inside an options object.
type generateOptions struct {
	Scale string `json:"scale"`
	Size  string `json:"size"`
	Count int    `json:"count"`
}

type generateBody struct {
	Prompt        string           `json:"prompt"`
	Size          string           `json:"size"`
	Count         int              `json:"count"`
	Options       *generateOptions `json:"options"`
	User          string           `json:"user"`
	CurrentUserID string           `json:"currentUserId"`
}

func (b *generateBody) size() string {
	if b.Options != nil {
		if b.Options.Scale != "" {
			return b.Options.Scale
		}
		if b.Options.Size != "" {
			return b.Options.Size
		}
	}
	return b.Size
}

func (b *generateBody) count() int {
	if b.Options != nil && b.Options.Count > 0 {
		return b.Options.Count
	}
	return b.Count
}

// Generate handles POST /api/ai/generate
func (h *AIHandler) Generate(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var body generateBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Prompt == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyAIMissingPrompt), nil)
		return
	}

	// Rate limit per caller. Anonymous requests fall back to the client IP
	// so an unidentified client cannot bypass the window.
	key := callerID(c, body.User, body.CurrentUserID)
	if key == "" {
		key = c.ClientIP()
	}
	if !h.limiter.Allow(key) {
		utils.TooManyRequestsResponse(c, i18n.T(lang, i18n.KeyAIRateLimited))
		return
	}

	if !h.generator.Enabled() {
		utils.ServiceUnavailableResponse(c, i18n.T(lang, i18n.KeyAINotConfigured))
		return
	}

	images, err := h.generator.GenerateImages(c.Request.Context(), body.Prompt, services.GenerateOptions{
		Size:  body.size(),
		Count: body.count(),
	})
	if err != nil {
		logrus.WithError(err).Error("Image generation failed")
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyAIGenerateFailed))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"images": images,
		"prompt": body.Prompt,
	})
}

type saveImageInput struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

type saveToGalleryBody struct {
	User          string           `json:"user"`
	CurrentUserID string           `json:"currentUserId"`
	Title         string           `json:"title"`
	Prompt        string           `json:"prompt"`
	Images        []saveImageInput `json:"images"`
	ImageIDs      []string         `json:"imageIds"`
	ImageURLs     json.RawMessage  `json:"imageUrls"`
}

// selected merges the structured images list with the original payload
// shape: imageIds naming the picks plus imageUrls as an id-to-url map.
// A bare url list under imageUrls is accepted too.
func (b *saveToGalleryBody) selected() []saveImageInput {
	images := append([]saveImageInput{}, b.Images...)

	var urlsByID map[string]string
	var urlList []string
	if len(b.ImageURLs) > 0 {
		if err := json.Unmarshal(b.ImageURLs, &urlsByID); err != nil {
			json.Unmarshal(b.ImageURLs, &urlList)
		}
	}

	if len(b.ImageIDs) > 0 {
		for _, id := range b.ImageIDs {
			if url, ok := urlsByID[id]; ok && url != "" {
				images = append(images, saveImageInput{URL: url, Title: b.Title})
			}
		}
		return images
	}

	for _, url := range urlsByID {
		images = append(images, saveImageInput{URL: url, Title: b.Title})
	}
	for _, url := range urlList {
		images = append(images, saveImageInput{URL: url, Title: b.Title})
	}
	return images
}

// SaveToGallery handles POST /api/ai/save-to-gallery. Each selected image is
// downloaded from its generation URL and stored like a regular upload. Saving
// is best effort per image; the call fails only when nothing could be saved.
func (h *AIHandler) SaveToGallery(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var body saveToGalleryBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	caller := callerID(c, body.User, body.CurrentUserID)
	if caller == "" {
		utils.UnauthorizedResponse(c, "")
		return
	}
	selected := body.selected()
	if len(selected) == 0 {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyAINoneSelected), nil)
		return
	}

	saved := make([]interface{}, 0, len(selected))
	for _, img := range selected {
		if img.URL == "" {
			continue
		}

		data, err := h.generator.DownloadImage(c.Request.Context(), img.URL)
		if err != nil {
			logrus.WithError(err).WithField("url", img.URL).Warn("Failed to download generated image")
			continue
		}

		id := utils.GenerateAIArtworkID()
		imageURL, err := h.storage.SaveNamed(data, "ai_"+id+".jpg")
		if err != nil {
			logrus.WithError(err).Warn("Failed to store generated image")
			continue
		}

		title := img.Title
		if title == "" {
			title = i18n.T(lang, i18n.KeyAIDefaultTitle)
		}
		prompt := img.Prompt
		if prompt == "" {
			prompt = body.Prompt
		}

		artwork, err := h.artworkService.Create(services.CreateArtworkParams{
			ID:            id,
			UserID:        caller,
			Title:         title,
			Prompt:        prompt,
			Description:   "AI Generated Art",
			Image:         imageURL,
			InShowcase:    true,
			IsAIGenerated: true,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		saved = append(saved, artwork)
	}

	if len(saved) == 0 {
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyAISaveFailed))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAISaved, len(saved)),
		"saved":   saved,
	})
}
