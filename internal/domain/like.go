package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like joins a user to a book. The composite unique index is the duplicate
// signal: a second like for the same (user, book) pair fails the insert
// instead of creating a second row.
type Like struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_user_book;column:user_id" json:"user_id"`
	BookID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_user_book;column:book_id" json:"book_id"`

	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Like) TableName() string { return "book_like" }

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
