package models

import (
	"time"
)

const (
	// MaxTweetLength is the hard cap on tweet text, in characters.
	MaxTweetLength = 280

	// MaxImageSize is the upload size limit for tweet images (5 MiB).
	MaxImageSize = 5 * 1024 * 1024
)

// AllowedImageExtensions lists the accepted tweet image file types.
var AllowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

type Tweet struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      *User     `json:"author,omitempty" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Text      string    `json:"text" gorm:"size:280;not null"`
	ImagePath string    `json:"-"`
	ImageURL  string    `json:"image_url,omitempty" gorm:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateTweetRequest struct {
	Text string `form:"text" binding:"required,max=280"`
}

type UpdateTweetRequest struct {
	Text string `form:"text" binding:"omitempty,max=280"`
}

// FeedPage is one page of the public timeline plus its pagination metadata.
type FeedPage struct {
	Tweets     []Tweet `json:"tweets"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalPages int     `json:"total_pages"`
	Total      int64   `json:"total"`
	HasNext    bool    `json:"has_next"`
	HasPrev    bool    `json:"has_prev"`
}
