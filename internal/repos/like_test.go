package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/readnest-backend/internal/domain"
	"github.com/yungbote/readnest-backend/internal/repos/testutil"
)

func TestLikeRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewLikeRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "likerepo@example.com")
	book := testutil.SeedBook(t, ctx, tx, "OL100W")

	exists, err := repo.Exists(ctx, tx, user.ID, book.ID)
	if err != nil {
		t.Fatalf("Exists (empty): %v", err)
	}
	if exists {
		t.Fatalf("Exists (empty): expected false")
	}

	if _, err := repo.Create(ctx, tx, &types.Like{ID: uuid.New(), UserID: user.ID, BookID: book.ID}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	exists, err = repo.Exists(ctx, tx, user.ID, book.ID)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Fatalf("Exists: expected true after create")
	}

	likes, err := repo.GetByUserID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(likes) != 1 {
		t.Fatalf("GetByUserID: expected 1 like, got %d", len(likes))
	}
	if likes[0].Book == nil || likes[0].Book.ID != book.ID {
		t.Fatalf("GetByUserID: expected book preloaded, got %+v", likes[0].Book)
	}

	count, err := repo.CountByUserID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("CountByUserID: %v", err)
	}
	if count != 1 {
		t.Fatalf("CountByUserID: expected 1, got %d", count)
	}
}

func TestLikeRepoDuplicatePairRejected(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewLikeRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "likedupe@example.com")
	book := testutil.SeedBook(t, ctx, tx, "OL101W")
	testutil.SeedLike(t, ctx, tx, user.ID, book.ID)

	_, err := repo.Create(ctx, tx, &types.Like{ID: uuid.New(), UserID: user.ID, BookID: book.ID})
	if err == nil {
		t.Fatalf("expected unique violation for duplicate (user, book) pair")
	}
	if !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}
}

func TestLikeRepoDeleteByUserIDsKeepsBooks(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	likeRepo := NewLikeRepo(db, testutil.Logger(t))
	bookRepo := NewBookRepo(db, testutil.Logger(t))
	ctx := context.Background()

	alice := testutil.SeedUser(t, ctx, tx, "alice-del@example.com")
	bob := testutil.SeedUser(t, ctx, tx, "bob-del@example.com")
	book := testutil.SeedBook(t, ctx, tx, "OL102W")
	testutil.SeedLike(t, ctx, tx, alice.ID, book.ID)
	testutil.SeedLike(t, ctx, tx, bob.ID, book.ID)

	if err := likeRepo.DeleteByUserIDs(ctx, tx, []uuid.UUID{alice.ID}); err != nil {
		t.Fatalf("DeleteByUserIDs: %v", err)
	}

	aliceLikes, err := likeRepo.GetByUserID(ctx, tx, alice.ID)
	if err != nil {
		t.Fatalf("GetByUserID (alice): %v", err)
	}
	if len(aliceLikes) != 0 {
		t.Fatalf("expected alice's likes gone, got %d", len(aliceLikes))
	}

	bobLikes, err := likeRepo.GetByUserID(ctx, tx, bob.ID)
	if err != nil {
		t.Fatalf("GetByUserID (bob): %v", err)
	}
	if len(bobLikes) != 1 {
		t.Fatalf("expected bob's like untouched, got %d", len(bobLikes))
	}

	books, err := bookRepo.GetByIDs(ctx, tx, []uuid.UUID{book.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("expected book row to persist, got %d", len(books))
	}
}
