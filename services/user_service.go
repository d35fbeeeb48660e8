package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"flatly-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// Create stores a user with a bcrypt hash of dto.Password.
func (s *UserService) Create(dto models.UserDTO) (models.UserDTO, error) {
	user := models.User{
		FirstName: strings.TrimSpace(dto.FirstName),
		LastName:  strings.TrimSpace(dto.LastName),
		Email:     strings.TrimSpace(dto.Email),
		Roles:     dto.Roles,
	}
	if dto.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.UserDTO{}, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hash)
	}
	if err := s.DB.Create(&user).Error; err != nil {
		log.Printf("❌ UserService.Create error: %v", err)
		return models.UserDTO{}, fmt.Errorf("failed to create user: %w", err)
	}
	return models.ToUserDTO(user), nil
}

func (s *UserService) List() ([]models.UserDTO, error) {
	var users []models.User
	if err := s.DB.Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	out := make([]models.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, models.ToUserDTO(u))
	}
	return out, nil
}

func (s *UserService) GetByID(id uint) (models.UserDTO, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.UserDTO{}, fmt.Errorf("%w: id=%d", ErrUserNotFound, id)
		}
		return models.UserDTO{}, fmt.Errorf("failed to find user %d: %w", id, err)
	}
	return models.ToUserDTO(user), nil
}
