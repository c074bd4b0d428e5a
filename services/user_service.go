package services

import (
	"errors"

	"chirp/models"

	"gorm.io/gorm"
)

type UserService struct {
	db      *gorm.DB
	storage MediaStorage
}

func NewUserService(db *gorm.DB, storage MediaStorage) *UserService {
	return &UserService{db: db, storage: storage}
}

func (s *UserService) CreateUser(req *models.CreateUserRequest) (*models.User, error) {
	user := &models.User{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	}

	if err := user.HashPassword(); err != nil {
		return nil, err
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByID returns a profile with the user's tweets, newest first,
// each carrying its derived image URL.
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Tweets", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC, id DESC")
	}).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	for i := range user.Tweets {
		user.Tweets[i].ImageURL = s.storage.URL(user.Tweets[i].ImagePath)
	}
	return &user, nil
}

func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) DeleteUser(id uint) error {
	return s.db.Delete(&models.User{}, id).Error
}
