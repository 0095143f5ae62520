package repos

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/readnest-backend/internal/domain"
	"github.com/yungbote/readnest-backend/internal/platform/logger"
)

type BookRepo interface {
	GetByIDs(ctx context.Context, tx *gorm.DB, bookIDs []uuid.UUID) ([]*types.Book, error)
	GetByOLIDs(ctx context.Context, tx *gorm.DB, olids []string) ([]*types.Book, error)
	GetOrCreateByOLID(ctx context.Context, tx *gorm.DB, book *types.Book) (*types.Book, error)
}

type bookRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookRepo(db *gorm.DB, baseLog *logger.Logger) BookRepo {
	repoLog := baseLog.With("repo", "BookRepo")
	return &bookRepo{db: db, log: repoLog}
}

func (br *bookRepo) GetByIDs(ctx context.Context, tx *gorm.DB, bookIDs []uuid.UUID) ([]*types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var results []*types.Book
	if len(bookIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", bookIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *bookRepo) GetByOLIDs(ctx context.Context, tx *gorm.DB, olids []string) ([]*types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var results []*types.Book
	if len(olids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("olid IN ?", olids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetOrCreateByOLID returns the cached row for book.OLID, creating it when
// missing. A unique-violation from a racing creator is treated as "already
// exists": the existing row is fetched and returned instead of the error.
func (br *bookRepo) GetOrCreateByOLID(ctx context.Context, tx *gorm.DB, book *types.Book) (*types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	existing, err := br.GetByOLIDs(ctx, tx, []string{book.OLID})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing[0], nil
	}

	if err := transaction.WithContext(ctx).Create(book).Error; err != nil {
		if !IsUniqueViolation(err) {
			return nil, err
		}
		br.log.Debug("Book already created by concurrent like, reusing", "olid", book.OLID)
		created, getErr := br.GetByOLIDs(ctx, tx, []string{book.OLID})
		if getErr != nil {
			return nil, getErr
		}
		if len(created) == 0 {
			return nil, fmt.Errorf("book %s vanished after unique violation", book.OLID)
		}
		return created[0], nil
	}
	return book, nil
}
