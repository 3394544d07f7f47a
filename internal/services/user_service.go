// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/artstylelab/backend/internal/database"
	"github.com/artstylelab/backend/internal/i18n"
	"github.com/artstylelab/backend/internal/models"
)

type UserService struct {
	db *gorm.DB
}

type UpdateProfileRequest struct {
	Name        string `json:"name"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetUser(userID string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError(i18n.KeyUserNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

// UpdateProfile lets a user change their own name and password. A password
// change requires presenting the current password.
func (s *UserService) UpdateProfile(targetID, callerID string, req *UpdateProfileRequest) (*models.User, error) {
	if callerID == "" {
		return nil, unauthorizedError(i18n.KeyAuthRequired)
	}
	if targetID != callerID {
		return nil, forbiddenError(i18n.KeyUserUpdateDenied)
	}

	user, err := s.GetUser(targetID)
	if err != nil {
		return nil, err
	}

	if req.NewPassword != "" {
		if req.OldPassword == "" || !user.CheckPassword(req.OldPassword) {
			return nil, unauthorizedError(i18n.KeyUserOldPassword)
		}
		user.Password = req.NewPassword
	}

	if req.Name != "" {
		user.Name = req.Name
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// ListStudents returns all student accounts. Admin only.
func (s *UserService) ListStudents(callerID string) ([]models.User, error) {
	caller, err := s.requireCaller(callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, forbiddenError(i18n.KeyStudentListDenied)
	}

	students := []models.User{}
	if err := s.db.Where("user_type = ?", models.UserRoleStudent).Find(&students).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return students, nil
}

// UpdateStudent updates a student's display name, either by the student
// themselves or by an admin.
func (s *UserService) UpdateStudent(callerID, targetID, name string) (*models.User, error) {
	caller, err := s.requireCaller(callerID)
	if err != nil {
		return nil, err
	}

	target, err := s.GetUser(targetID)
	if err != nil {
		return nil, err
	}

	if targetID != callerID && !caller.IsAdmin() {
		return nil, forbiddenError(i18n.KeyStudentUpdateDenied)
	}

	if name != "" {
		target.Name = name
		if err := s.db.Save(target).Error; err != nil {
			return nil, fmt.Errorf("failed to update student: %w", err)
		}
	}

	return target, nil
}

// DeleteStudent removes a student account and everything hanging off it:
// the student's artworks, their exhibition memberships, and their upload
// history. Admin only, and only student accounts can be removed this way.
func (s *UserService) DeleteStudent(callerID, targetID string) error {
	caller, err := s.requireCaller(callerID)
	if err != nil {
		return err
	}

	target, err := s.GetUser(targetID)
	if err != nil {
		return err
	}

	if !caller.IsAdmin() {
		return forbiddenError(i18n.KeyStudentDeleteDenied)
	}
	if target.Role != models.UserRoleStudent {
		return forbiddenError(i18n.KeyStudentNotStudent)
	}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var artworkIDs []string
		if err := tx.Model(&models.Artwork{}).Where("artist_id = ?", targetID).Pluck("id", &artworkIDs).Error; err != nil {
			return err
		}

		if len(artworkIDs) > 0 {
			if err := tx.Where("artwork_id IN ?", artworkIDs).Delete(&models.ExhibitionArtwork{}).Error; err != nil {
				return err
			}
			if err := tx.Where("artist_id = ?", targetID).Delete(&models.Artwork{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&models.UserUpload{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", targetID).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	return nil
}

func (s *UserService) requireCaller(callerID string) (*models.User, error) {
	if callerID == "" {
		return nil, unauthorizedError(i18n.KeyAuthRequired)
	}
	return s.GetUser(callerID)
}
