package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/readnest-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "pw",
		Username: "u-" + uuid.NewString()[:8],
		Role:     types.RoleUser,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedBook(tb testing.TB, ctx context.Context, tx *gorm.DB, olid string) *types.Book {
	tb.Helper()
	b := &types.Book{
		ID:    uuid.New(),
		OLID:  olid,
		Title: "book " + olid,
	}
	if err := tx.WithContext(ctx).Create(b).Error; err != nil {
		tb.Fatalf("seed book: %v", err)
	}
	return b
}

func SeedLike(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, bookID uuid.UUID) *types.Like {
	tb.Helper()
	l := &types.Like{
		ID:     uuid.New(),
		UserID: userID,
		BookID: bookID,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed like: %v", err)
	}
	return l
}

func SeedPreference(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, subject string, weight int) *types.Preference {
	tb.Helper()
	p := &types.Preference{
		ID:      uuid.New(),
		UserID:  userID,
		Subject: subject,
		Weight:  weight,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed preference: %v", err)
	}
	return p
}
