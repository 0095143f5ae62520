package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Book is the local cache row for an OpenLibrary work, created lazily the
// first time any user likes it. OLID is the external catalog key; the unique
// index on it is what makes concurrent first-likes safe.
type Book struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OLID     string         `gorm:"uniqueIndex;not null;column:olid" json:"olid"`
	Title    string         `gorm:"not null;column:title" json:"title"`
	Author   string         `gorm:"column:author" json:"author"`
	CoverURL string         `gorm:"column:cover_url" json:"cover_url"`
	Subjects datatypes.JSON `gorm:"column:subjects;type:jsonb" json:"subjects"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Book) TableName() string { return "book" }

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
