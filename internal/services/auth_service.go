// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/artstylelab/backend/internal/config"
	"github.com/artstylelab/backend/internal/i18n"
	"github.com/artstylelab/backend/internal/models"
	"github.com/artstylelab/backend/internal/utils"
)

type AuthService struct {
	db     *gorm.DB
	config *config.Config
}

type RegisterRequest struct {
	UserID   string          `json:"userId" validate:"required"`
	Password string          `json:"password" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Role     models.UserRole `json:"userType" validate:"required"`
}

type LoginRequest struct {
	UserID   string `json:"userId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:     db,
		config: cfg,
	}
}

func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if !req.Role.Valid() {
		return nil, badRequestError(i18n.KeyAuthInvalidRole)
	}

	// Student and teacher ids carry a fixed digit format; the admin id has
	// no documented format constraint.
	switch req.Role {
	case models.UserRoleStudent:
		if !utils.IsValidStudentID(req.UserID) {
			return nil, badRequestError(i18n.KeyAuthStudentIDFormat)
		}
	case models.UserRoleTeacher:
		if !utils.IsValidTeacherID(req.UserID) {
			return nil, badRequestError(i18n.KeyAuthTeacherIDFormat)
		}
	}

	var existing models.User
	err := s.db.Select("id").First(&existing, "id = ?", req.UserID).Error
	if err == nil {
		return nil, conflictError(i18n.KeyAuthIDTaken)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	user := &models.User{
		ID:       req.UserID,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
		Joined:   time.Now(),
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := utils.GenerateJWT(user.ID, user.Name, string(user.Role), s.config.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError(i18n.KeyAuthUserNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !user.CheckPassword(req.Password) {
		return nil, unauthorizedError(i18n.KeyAuthWrongPassword)
	}

	token, err := utils.GenerateJWT(user.ID, user.Name, string(user.Role), s.config.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{User: &user, Token: token}, nil
}
