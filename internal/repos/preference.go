package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/readnest-backend/internal/domain"
	"github.com/yungbote/readnest-backend/internal/normalization"
	"github.com/yungbote/readnest-backend/internal/platform/logger"
)

type PreferenceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, pref *types.Preference) (*types.Preference, error)
	GetByUserAndSubject(ctx context.Context, tx *gorm.DB, userID uuid.UUID, subject string) (*types.Preference, error)
	IncrementWeight(ctx context.Context, tx *gorm.DB, prefID uuid.UUID) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Preference, error)
	DeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error
}

type preferenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPreferenceRepo(db *gorm.DB, baseLog *logger.Logger) PreferenceRepo {
	repoLog := baseLog.With("repo", "PreferenceRepo")
	return &preferenceRepo{db: db, log: repoLog}
}

func (pr *preferenceRepo) Create(ctx context.Context, tx *gorm.DB, pref *types.Preference) (*types.Preference, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Create(pref).Error; err != nil {
		return nil, err
	}
	return pref, nil
}

// GetByUserAndSubject looks up by the normalized subject key and returns nil
// (not an error) when no row exists.
func (pr *preferenceRepo) GetByUserAndSubject(ctx context.Context, tx *gorm.DB, userID uuid.UUID, subject string) (*types.Preference, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Preference
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND subject = ?", userID, normalization.ParseInputString(subject)).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (pr *preferenceRepo) IncrementWeight(ctx context.Context, tx *gorm.DB, prefID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Preference{}).
		Where("id = ?", prefID).
		Update("weight", gorm.Expr("weight + ?", 1)).Error
}

// GetByUserID returns the user's preferences heaviest first.
func (pr *preferenceRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Preference, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Preference
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("weight DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *preferenceRepo) DeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(userIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Delete(&types.Preference{}).Error
}
