package models

import (
	"time"

	"gorm.io/gorm"
)

// ShortCodeLength is the fixed length of generated short codes.
const ShortCodeLength = 6

// ShortURL represents a shortened URL mapping
type ShortURL struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	ShortCode   string         `gorm:"uniqueIndex;size:6;not null" json:"short_code"`
	OriginalURL string         `gorm:"not null" json:"original_url"`
	ClickCount  uint64         `gorm:"default:0" json:"click_count"`
	UserID      *uint          `gorm:"index" json:"user_id,omitempty"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// IsAnonymous reports whether the mapping has no owner.
func (s *ShortURL) IsAnonymous() bool {
	return s.UserID == nil
}
