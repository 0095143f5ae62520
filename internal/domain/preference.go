package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/readnest-backend/internal/normalization"
)

// Preference is a per-user weighted counter for a catalog subject. Subject is
// always stored trimmed and lower-cased; the BeforeSave hook makes that an
// invariant of the write path rather than a caller convention.
type Preference struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_preference_user_subject;column:user_id" json:"user_id"`
	Subject string    `gorm:"not null;index:idx_preference_user_subject;column:subject" json:"subject"`
	Weight  int       `gorm:"not null;default:0;column:weight" json:"weight"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Preference) TableName() string { return "preference" }

func (p *Preference) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Preference) BeforeSave(tx *gorm.DB) error {
	p.Subject = normalization.ParseInputString(p.Subject)
	return nil
}
