package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/readnest-backend/internal/domain"
	"github.com/yungbote/readnest-backend/internal/platform/logger"
)

type LikeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, like *types.Like) (*types.Like, error)
	Exists(ctx context.Context, tx *gorm.DB, userID, bookID uuid.UUID) (bool, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Like, error)
	CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	DeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error
}

type likeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLikeRepo(db *gorm.DB, baseLog *logger.Logger) LikeRepo {
	repoLog := baseLog.With("repo", "LikeRepo")
	return &likeRepo{db: db, log: repoLog}
}

func (lr *likeRepo) Create(ctx context.Context, tx *gorm.DB, like *types.Like) (*types.Like, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if err := transaction.WithContext(ctx).Create(like).Error; err != nil {
		return nil, err
	}
	return like, nil
}

func (lr *likeRepo) Exists(ctx context.Context, tx *gorm.DB, userID, bookID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Like{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetByUserID returns the user's likes newest first, with the book rows
// preloaded for bookshelf rendering.
func (lr *likeRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Like, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.Like
	if err := transaction.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *likeRepo) CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Like{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (lr *likeRepo) DeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if len(userIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Delete(&types.Like{}).Error
}
