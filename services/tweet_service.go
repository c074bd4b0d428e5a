package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"chirp/models"

	"gorm.io/gorm"
)

// FeedPageSize is the number of tweets per feed page.
const FeedPageSize = 10

type TweetService struct {
	db      *gorm.DB
	storage MediaStorage
}

func NewTweetService(db *gorm.DB, storage MediaStorage) *TweetService {
	return &TweetService{db: db, storage: storage}
}

// AuthorizeTweetMutation is the ownership guard: only the author of a
// tweet may edit or delete it.
func AuthorizeTweetMutation(tweet *models.Tweet, requesterID uint) error {
	if tweet.UserID != requesterID {
		return ErrNotAuthor
	}
	return nil
}

func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return NewValidationError("tweet text must not be empty")
	}
	if utf8.RuneCountInString(text) > models.MaxTweetLength {
		return NewValidationError(fmt.Sprintf("tweet text must be at most %d characters", models.MaxTweetLength))
	}
	return nil
}

func validateImage(file *multipart.FileHeader) error {
	if file == nil {
		return nil
	}
	if file.Size > models.MaxImageSize {
		return NewValidationError("image file size must be under 5MB")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !models.AllowedImageExtensions[ext] {
		return NewValidationError("image must be a JPG, PNG or GIF file")
	}
	return nil
}

// Create validates and persists a new tweet authored by userID. All
// validation runs before the image is stored or any row is written.
func (s *TweetService) Create(userID uint, text string, image *multipart.FileHeader) (*models.Tweet, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}
	if err := validateImage(image); err != nil {
		return nil, err
	}

	tweet := &models.Tweet{UserID: userID, Text: text}

	if image != nil {
		path, err := s.storage.Save(image)
		if err != nil {
			return nil, err
		}
		tweet.ImagePath = path
	}

	if err := s.db.Create(tweet).Error; err != nil {
		// keep storage consistent with the database
		s.storage.Delete(tweet.ImagePath)
		return nil, err
	}

	return s.GetByID(tweet.ID)
}

func (s *TweetService) GetByID(id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := s.db.Preload("User").First(&tweet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}
	s.decorate(&tweet)
	return &tweet, nil
}

// Update edits a tweet's text and/or image. Omitted fields (empty text,
// nil image) keep their current values. Only the author may update.
func (s *TweetService) Update(id, requesterID uint, text string, image *multipart.FileHeader) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := s.db.First(&tweet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}

	if err := AuthorizeTweetMutation(&tweet, requesterID); err != nil {
		return nil, err
	}

	if text != "" {
		if err := validateText(text); err != nil {
			return nil, err
		}
	}
	if err := validateImage(image); err != nil {
		return nil, err
	}

	oldImage := ""
	if image != nil {
		path, err := s.storage.Save(image)
		if err != nil {
			return nil, err
		}
		oldImage = tweet.ImagePath
		tweet.ImagePath = path
	}
	if text != "" {
		tweet.Text = text
	}

	if err := s.db.Save(&tweet).Error; err != nil {
		if image != nil {
			s.storage.Delete(tweet.ImagePath)
		}
		return nil, err
	}

	// the replaced image is only removed once the row is safely updated
	if oldImage != "" {
		s.storage.Delete(oldImage)
	}

	return s.GetByID(tweet.ID)
}

// Delete permanently removes a tweet and its image asset. Only the
// author may delete.
func (s *TweetService) Delete(id, requesterID uint) error {
	var tweet models.Tweet
	if err := s.db.First(&tweet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTweetNotFound
		}
		return err
	}

	if err := AuthorizeTweetMutation(&tweet, requesterID); err != nil {
		return err
	}

	if err := s.db.Delete(&models.Tweet{}, id).Error; err != nil {
		return err
	}

	s.storage.Delete(tweet.ImagePath)
	return nil
}

// DeleteAllByUser removes every tweet a user has authored, including
// stored image assets. Used when an account is deleted.
func (s *TweetService) DeleteAllByUser(userID uint) error {
	var tweets []models.Tweet
	if err := s.db.Where("user_id = ?", userID).Find(&tweets).Error; err != nil {
		return err
	}

	if err := s.db.Where("user_id = ?", userID).Delete(&models.Tweet{}).Error; err != nil {
		return err
	}

	for _, tweet := range tweets {
		s.storage.Delete(tweet.ImagePath)
	}
	return nil
}

// GetFeed returns one newest-first page of the public timeline. Out of
// range page numbers clamp to the nearest valid page rather than failing.
func (s *TweetService) GetFeed(page int) (*models.FeedPage, error) {
	var total int64
	if err := s.db.Model(&models.Tweet{}).Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + FeedPageSize - 1) / FeedPageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	var tweets []models.Tweet
	err := s.db.Preload("User").
		Order("created_at DESC, id DESC").
		Offset((page - 1) * FeedPageSize).
		Limit(FeedPageSize).
		Find(&tweets).Error
	if err != nil {
		return nil, err
	}

	if tweets == nil {
		tweets = []models.Tweet{}
	}
	for i := range tweets {
		s.decorate(&tweets[i])
	}

	return &models.FeedPage{
		Tweets:     tweets,
		Page:       page,
		PageSize:   FeedPageSize,
		TotalPages: totalPages,
		Total:      total,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}, nil
}

func (s *TweetService) decorate(tweet *models.Tweet) {
	tweet.ImageURL = s.storage.URL(tweet.ImagePath)
}
