package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/readnest-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity
		&types.User{},

		// Catalog cache + likes + preferences
		&types.Book{},
		&types.Like{},
		&types.Preference{},
	)
}

// EnsureIndexes backs up the AutoMigrate tags with explicit raw-SQL indexes.
// The unique index on book_like(user_id, book_id) is what turns a racing
// duplicate like into a constraint violation instead of a second row.
func EnsureIndexes(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_like_user_book
		ON book_like(user_id, book_id);
	`).Error; err != nil {
		return fmt.Errorf("create idx_like_user_book: %w", err)
	}
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_book_olid
		ON book(olid);
	`).Error; err != nil {
		return fmt.Errorf("create idx_book_olid: %w", err)
	}
	// Lookup index only: (user_id, subject) uniqueness stays at the
	// application layer, matching the sequential read-then-write in the
	// preference accumulation path.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_preference_user_subject
		ON preference(user_id, subject);
	`).Error; err != nil {
		return fmt.Errorf("create idx_preference_user_subject: %w", err)
	}
	return nil
}
