// internal/services/artwork_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/artstylelab/backend/internal/database"
	"github.com/artstylelab/backend/internal/i18n"
	"github.com/artstylelab/backend/internal/models"
	"github.com/artstylelab/backend/internal/utils"
)

type ArtworkService struct {
	db      *gorm.DB
	storage *StorageService
}

type CreateArtworkParams struct {
	ID            string
	UserID        string
	Title         string
	Prompt        string
	Description   string
	Image         string
	InShowcase    bool
	IsAIGenerated bool
}

type UpdateArtworkRequest struct {
	Title      *string `json:"title"`
	Prompt     *string `json:"prompt"`
	Desc       *string `json:"desc"`
	InShowcase *bool   `json:"inShowcase"`
}

func NewArtworkService(db *gorm.DB, storage *StorageService) *ArtworkService {
	return &ArtworkService{db: db, storage: storage}
}

// Create stores a new artwork for the given user and records it in the
// user's upload history. The artist display name is snapshotted from the
// user record at this moment and never updated afterwards.
func (s *ArtworkService) Create(params CreateArtworkParams) (*models.Artwork, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", params.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError(i18n.KeyUserNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	id := params.ID
	if id == "" {
		id = utils.GenerateTimeID()
	}

	title := params.Title
	if title == "" {
		title = "Untitled"
	}
	description := params.Description
	if description == "" {
		description = "Student Submission"
	}

	now := time.Now()
	artwork := &models.Artwork{
		ID:            id,
		Title:         title,
		Artist:        user.Name,
		ArtistID:      user.ID,
		Description:   description,
		Image:         params.Image,
		Prompt:        params.Prompt,
		UploadedAt:    now,
		InShowcase:    params.InShowcase,
		IsAIGenerated: params.IsAIGenerated,
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(artwork).Error; err != nil {
			return err
		}
		upload := &models.UserUpload{
			UserID:     user.ID,
			ArtworkID:  artwork.ID,
			UploadedAt: now,
		}
		return tx.Create(upload).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create artwork: %w", err)
	}

	return artwork, nil
}

// List returns all artworks, most recent first.
func (s *ArtworkService) List() ([]models.Artwork, error) {
	artworks := []models.Artwork{}
	if err := s.db.Order("uploaded_at DESC").Find(&artworks).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return artworks, nil
}

// ListByArtist returns artworks, optionally filtered to one owner, most
// recent first. Legacy rows whose artist column encodes "<type>_<id>" get
// their owner id recovered and the display name resolved from the user
// table when possible.
func (s *ArtworkService) ListByArtist(artistID string) ([]models.Artwork, error) {
	artworks, err := s.List()
	if err != nil {
		return nil, err
	}

	repaired := make([]models.Artwork, 0, len(artworks))
	for _, artwork := range artworks {
		if legacyID := artwork.LegacyArtistID(); legacyID != "" {
			artwork.ArtistID = legacyID
			var owner models.User
			if err := s.db.First(&owner, "id = ?", legacyID).Error; err == nil {
				artwork.Artist = owner.Name
			}
		}
		if artistID != "" && artwork.ArtistID != artistID {
			continue
		}
		repaired = append(repaired, artwork)
	}

	return repaired, nil
}

func (s *ArtworkService) Get(artworkID string) (*models.Artwork, error) {
	var artwork models.Artwork
	if err := s.db.First(&artwork, "id = ?", artworkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError(i18n.KeyArtworkNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &artwork, nil
}

// Update applies a partial update. Only the owner or an admin may update;
// unset fields are left untouched.
func (s *ArtworkService) Update(callerID, artworkID string, req *UpdateArtworkRequest) (*models.Artwork, error) {
	_, artwork, err := s.authorize(callerID, artworkID, i18n.KeyArtworkUpdateDenied)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != "" {
		artwork.Title = *req.Title
	}
	if req.Prompt != nil {
		artwork.Prompt = *req.Prompt
	}
	if req.Desc != nil {
		artwork.Description = *req.Desc
	}
	if req.InShowcase != nil {
		artwork.InShowcase = *req.InShowcase
	}

	// Save with Select so a false InShowcase survives gorm's zero-value
	// handling.
	if err := s.db.Model(artwork).Select("title", "prompt", "description", "in_showcase").Updates(artwork).Error; err != nil {
		return nil, fmt.Errorf("failed to update artwork: %w", err)
	}

	return s.Get(artworkID)
}

// Delete removes an artwork along with its exhibition memberships and the
// owner's upload-history row. Only the owner or an admin may delete.
func (s *ArtworkService) Delete(callerID, artworkID string) error {
	_, artwork, err := s.authorize(callerID, artworkID, i18n.KeyArtworkDeleteDenied)
	if err != nil {
		return err
	}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("artwork_id = ?", artworkID).Delete(&models.ExhibitionArtwork{}).Error; err != nil {
			return err
		}
		if err := tx.Where("artwork_id = ?", artworkID).Delete(&models.UserUpload{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Artwork{}, "id = ?", artworkID).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete artwork: %w", err)
	}

	// Best effort: the stored file is orphaned once the row is gone.
	if s.storage != nil {
		if err := s.storage.DeleteByURL(artwork.Image); err != nil {
			logrus.WithError(err).WithField("artwork_id", artworkID).Warn("Failed to remove artwork file")
		}
	}

	return nil
}

func (s *ArtworkService) authorize(callerID, artworkID, deniedKey string) (*models.User, *models.Artwork, error) {
	if callerID == "" {
		return nil, nil, unauthorizedError(i18n.KeyAuthRequired)
	}

	var caller models.User
	if err := s.db.First(&caller, "id = ?", callerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, notFoundError(i18n.KeyUserNotFound)
		}
		return nil, nil, fmt.Errorf("database error: %w", err)
	}

	artwork, err := s.Get(artworkID)
	if err != nil {
		return nil, nil, err
	}

	if !caller.IsAdmin() && artwork.ArtistID != callerID {
		return nil, nil, forbiddenError(deniedKey)
	}

	return &caller, artwork, nil
}
