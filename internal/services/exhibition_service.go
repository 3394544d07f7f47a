// internal/services/exhibition_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/artstylelab/backend/internal/database"
	"github.com/artstylelab/backend/internal/i18n"
	"github.com/artstylelab/backend/internal/models"
	"github.com/artstylelab/backend/internal/utils"
)

const defaultExhibitionCover = "/public/images/default_exhibition_cover.png"

type ExhibitionService struct {
	db *gorm.DB
}

type CreateExhibitionRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	CoverImage  string   `json:"coverImage"`
	Artworks    []string `json:"artworks"`
}

type UpdateExhibitionRequest struct {
	Title       *string                  `json:"title"`
	Description *string                  `json:"description"`
	CoverImage  *string                  `json:"coverImage"`
	Status      *models.ExhibitionStatus `json:"status"`
	Artworks    *[]string                `json:"artworks"`
}

func NewExhibitionService(db *gorm.DB) *ExhibitionService {
	return &ExhibitionService{db: db}
}

// List returns all exhibitions with their member artwork ids attached,
// newest first.
func (s *ExhibitionService) List() ([]models.Exhibition, error) {
	exhibitions := []models.Exhibition{}
	if err := s.db.Order("created_at DESC").Find(&exhibitions).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	for i := range exhibitions {
		ids, err := s.memberIDs(exhibitions[i].ID)
		if err != nil {
			return nil, err
		}
		exhibitions[i].Artworks = ids
		exhibitions[i].ArtworkCount = len(ids)
	}

	return exhibitions, nil
}

func (s *ExhibitionService) Get(exhibitionID string) (*models.Exhibition, error) {
	var exhibition models.Exhibition
	if err := s.db.First(&exhibition, "id = ?", exhibitionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError(i18n.KeyExhibitionNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	ids, err := s.memberIDs(exhibitionID)
	if err != nil {
		return nil, err
	}
	exhibition.Artworks = ids
	exhibition.ArtworkCount = len(ids)

	return &exhibition, nil
}

// Create opens a new draft exhibition curated by the caller. Teachers and
// admins only. The curator display name is snapshotted at creation.
func (s *ExhibitionService) Create(callerID string, req *CreateExhibitionRequest) (*models.Exhibition, error) {
	caller, err := s.requireCaller(callerID)
	if err != nil {
		return nil, err
	}
	if !caller.Role.CanCurate() {
		return nil, forbiddenError(i18n.KeyExhibitionCreateDenied)
	}

	cover := req.CoverImage
	if cover == "" {
		cover = defaultExhibitionCover
	}

	curatorID := caller.ID
	now := time.Now()
	exhibition := &models.Exhibition{
		ID:          utils.GenerateExhibitionID(),
		Title:       req.Title,
		Description: req.Description,
		Curator:     caller.Name,
		CuratorID:   &curatorID,
		CoverImage:  cover,
		Status:      models.ExhibitionStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	members, err := s.normalizeMembers(req.Artworks)
	if err != nil {
		return nil, err
	}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(exhibition).Error; err != nil {
			return err
		}
		return s.insertMembers(tx, exhibition.ID, members, now)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create exhibition: %w", err)
	}

	exhibition.Artworks = members
	exhibition.ArtworkCount = len(members)
	return exhibition, nil
}

// Update applies a partial update. Supplying an artworks list replaces the
// whole membership; each referenced artwork must exist.
func (s *ExhibitionService) Update(callerID, exhibitionID string, req *UpdateExhibitionRequest) (*models.Exhibition, error) {
	exhibition, err := s.authorize(callerID, exhibitionID, i18n.KeyExhibitionUpdateDenied)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != "" {
		exhibition.Title = *req.Title
	}
	if req.Description != nil {
		exhibition.Description = *req.Description
	}
	if req.CoverImage != nil && *req.CoverImage != "" {
		exhibition.CoverImage = *req.CoverImage
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, badRequestError(i18n.KeyExhibitionBadStatus)
		}
		exhibition.Status = *req.Status
	}

	var members []string
	if req.Artworks != nil {
		members, err = s.normalizeMembers(*req.Artworks)
		if err != nil {
			return nil, err
		}
	}

	exhibition.UpdatedAt = time.Now()

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Model(exhibition).
			Select("title", "description", "cover_image", "status", "updated_at").
			Updates(exhibition).Error; err != nil {
			return err
		}
		if req.Artworks == nil {
			return nil
		}
		if err := tx.Where("exhibition_id = ?", exhibitionID).Delete(&models.ExhibitionArtwork{}).Error; err != nil {
			return err
		}
		return s.insertMembers(tx, exhibitionID, members, exhibition.UpdatedAt)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update exhibition: %w", err)
	}

	return s.Get(exhibitionID)
}

// Publish forces an exhibition into the active status. Repeated publishing
// keeps it active and still bumps updatedAt.
func (s *ExhibitionService) Publish(callerID, exhibitionID string) (*models.Exhibition, error) {
	exhibition, err := s.authorize(callerID, exhibitionID, i18n.KeyExhibitionUpdateDenied)
	if err != nil {
		return nil, err
	}

	exhibition.Status = models.ExhibitionStatusActive
	exhibition.UpdatedAt = time.Now()
	if err := s.db.Model(exhibition).
		Select("status", "updated_at").
		Updates(exhibition).Error; err != nil {
		return nil, fmt.Errorf("failed to publish exhibition: %w", err)
	}

	return s.Get(exhibitionID)
}

// Delete removes an exhibition and its membership rows. Member artworks
// themselves are untouched.
func (s *ExhibitionService) Delete(callerID, exhibitionID string) error {
	_, err := s.authorize(callerID, exhibitionID, i18n.KeyExhibitionDeleteDenied)
	if err != nil {
		return err
	}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("exhibition_id = ?", exhibitionID).Delete(&models.ExhibitionArtwork{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Exhibition{}, "id = ?", exhibitionID).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete exhibition: %w", err)
	}
	return nil
}

// AddArtwork places an existing artwork into an exhibition. Adding one
// that is already a member is a conflict.
func (s *ExhibitionService) AddArtwork(callerID, exhibitionID, artworkID string) (*models.Exhibition, error) {
	_, err := s.authorize(callerID, exhibitionID, i18n.KeyExhibitionUpdateDenied)
	if err != nil {
		return nil, err
	}

	var artwork models.Artwork
	if err := s.db.Select("id").First(&artwork, "id = ?", artworkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError(i18n.KeyArtworkNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.ExhibitionArtwork{}).
		Where("exhibition_id = ? AND artwork_id = ?", exhibitionID, artworkID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, conflictError(i18n.KeyExhibitionDuplicate)
	}

	link := &models.ExhibitionArtwork{
		ExhibitionID: exhibitionID,
		ArtworkID:    artworkID,
		AddedAt:      time.Now(),
	}
	if err := s.db.Create(link).Error; err != nil {
		return nil, fmt.Errorf("failed to add artwork: %w", err)
	}

	return s.Get(exhibitionID)
}

// RemoveArtwork drops an artwork from an exhibition. Removing a
// non-member is a no-op.
func (s *ExhibitionService) RemoveArtwork(callerID, exhibitionID, artworkID string) (*models.Exhibition, error) {
	_, err := s.authorize(callerID, exhibitionID, i18n.KeyExhibitionUpdateDenied)
	if err != nil {
		return nil, err
	}

	if err := s.db.
		Where("exhibition_id = ? AND artwork_id = ?", exhibitionID, artworkID).
		Delete(&models.ExhibitionArtwork{}).Error; err != nil {
		return nil, fmt.Errorf("failed to remove artwork: %w", err)
	}

	return s.Get(exhibitionID)
}

func (s *ExhibitionService) memberIDs(exhibitionID string) ([]string, error) {
	ids := []string{}
	err := s.db.Model(&models.ExhibitionArtwork{}).
		Where("exhibition_id = ?", exhibitionID).
		Order("added_at ASC").
		Pluck("artwork_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return ids, nil
}

// normalizeMembers de-duplicates the requested ids and verifies every
// referenced artwork exists.
func (s *ExhibitionService) normalizeMembers(ids []string) ([]string, error) {
	seen := make(map[string]bool, len(ids))
	members := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		members = append(members, id)
	}

	if len(members) > 0 {
		var count int64
		if err := s.db.Model(&models.Artwork{}).Where("id IN ?", members).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
		if int(count) != len(members) {
			return nil, badRequestError(i18n.KeyExhibitionBadMember)
		}
	}

	return members, nil
}

func (s *ExhibitionService) insertMembers(tx *gorm.DB, exhibitionID string, members []string, at time.Time) error {
	for _, artworkID := range members {
		link := &models.ExhibitionArtwork{
			ExhibitionID: exhibitionID,
			ArtworkID:    artworkID,
			AddedAt:      at,
		}
		if err := tx.Create(link).Error; err != nil {
			return err
		}
	}
	return nil
}

// authorize loads the exhibition and checks the caller may mutate it:
// admins always, the owning curator, and any teacher when the exhibition
// predates curator tracking.
func (s *ExhibitionService) authorize(callerID, exhibitionID, deniedKey string) (*models.Exhibition, error) {
	caller, err := s.requireCaller(callerID)
	if err != nil {
		return nil, err
	}

	exhibition, err := s.Get(exhibitionID)
	if err != nil {
		return nil, err
	}

	switch {
	case caller.IsAdmin():
	case exhibition.OwnedBy(callerID):
	case exhibition.CuratorID == nil && caller.Role == models.UserRoleTeacher:
	default:
		return nil, forbiddenError(deniedKey)
	}

	return exhibition, nil
}

func (s *ExhibitionService) requireCaller(callerID string) (*models.User, error) {
	if callerID == "" {
		return nil, unauthorizedError(i18n.KeyAuthRequired)
	}

	var caller models.User
	if err := s.db.First(&caller, "id = ?", callerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError(i18n.KeyUserNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &caller, nil
}
