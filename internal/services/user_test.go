package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/readnest-backend/internal/platform/apierr"
	"github.com/yungbote/readnest-backend/internal/platform/ctxutil"
	"github.com/yungbote/readnest-backend/internal/repos"
	"github.com/yungbote/readnest-backend/internal/repos/testutil"

	types "github.com/yungbote/readnest-backend/internal/domain"
)

func newUserServiceForTest(t *testing.T, tx *gorm.DB) UserService {
	t.Helper()
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(tx, log)
	likeRepo := repos.NewLikeRepo(tx, log)
	prefRepo := repos.NewPreferenceRepo(tx, log)
	return NewUserService(tx, log, userRepo, likeRepo, prefRepo)
}

func actorFor(u *types.User) *ctxutil.RequestData {
	return &ctxutil.RequestData{UserID: u.ID, Email: u.Email, Role: string(u.Role)}
}

func TestGetByIDOrUsername(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "profile@example.com")
	book := testutil.SeedBook(t, ctx, tx, "OL200W")
	testutil.SeedLike(t, ctx, tx, user.ID, book.ID)

	svc := newUserServiceForTest(t, tx)

	byID, err := svc.GetByIDOrUsername(ctx, actorFor(user), user.ID.String())
	if err != nil {
		t.Fatalf("GetByIDOrUsername (id): %v", err)
	}
	if byID.User.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, byID.User.ID)
	}
	if len(byID.Likes) != 1 || byID.Likes[0].Book == nil {
		t.Fatalf("expected liked books included, got %+v", byID.Likes)
	}

	byUsername, err := svc.GetByIDOrUsername(ctx, actorFor(user), user.Username)
	if err != nil {
		t.Fatalf("GetByIDOrUsername (username): %v", err)
	}
	if byUsername.User.ID != user.ID {
		t.Fatalf("expected same user via username lookup")
	}
}

func TestGetByIDOrUsernameOwnership(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "owner@example.com")
	stranger := testutil.SeedUser(t, ctx, tx, "stranger@example.com")
	admin := testutil.SeedUser(t, ctx, tx, "admin@example.com")
	admin.Role = types.RoleAdmin

	svc := newUserServiceForTest(t, tx)

	_, err := svc.GetByIDOrUsername(ctx, actorFor(stranger), owner.ID.String())
	if err == nil {
		t.Fatalf("expected forbidden for stranger")
	}
	apiErr, ok := apierr.As(err)
	if !ok || apiErr.Code != "forbidden" {
		t.Fatalf("expected forbidden, got %v", err)
	}

	// Admins bypass the ownership check.
	if _, err := svc.GetByIDOrUsername(ctx, actorFor(admin), owner.ID.String()); err != nil {
		t.Fatalf("expected admin access, got %v", err)
	}
}

func TestGetByIDOrUsernameMissing(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "whoami@example.com")
	svc := newUserServiceForTest(t, tx)

	_, err := svc.GetByIDOrUsername(ctx, actorFor(user), "no-such-user")
	if err == nil {
		t.Fatalf("expected not-found")
	}
	if !apierr.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestDeleteCascadesLikesAndPreferences(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "cascade@example.com")
	other := testutil.SeedUser(t, ctx, tx, "cascade-other@example.com")
	book := testutil.SeedBook(t, ctx, tx, "OL201W")
	testutil.SeedLike(t, ctx, tx, user.ID, book.ID)
	testutil.SeedLike(t, ctx, tx, other.ID, book.ID)
	testutil.SeedPreference(t, ctx, tx, user.ID, "history", 2)

	svc := newUserServiceForTest(t, tx)
	log := testutil.Logger(t)
	likeRepo := repos.NewLikeRepo(tx, log)
	prefRepo := repos.NewPreferenceRepo(tx, log)
	bookRepo := repos.NewBookRepo(tx, log)

	if err := svc.Delete(ctx, actorFor(user), user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	likes, err := likeRepo.GetByUserID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(likes) != 0 {
		t.Fatalf("expected likes cascaded, got %d", len(likes))
	}
	prefs, err := prefRepo.GetByUserID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID (prefs): %v", err)
	}
	if len(prefs) != 0 {
		t.Fatalf("expected preferences cascaded, got %d", len(prefs))
	}

	// Book rows persist for the other account that references them.
	books, err := bookRepo.GetByOLIDs(ctx, tx, []string{"OL201W"})
	if err != nil {
		t.Fatalf("GetByOLIDs: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("expected book to persist, got %d", len(books))
	}
	otherLikes, err := likeRepo.GetByUserID(ctx, tx, other.ID)
	if err != nil {
		t.Fatalf("GetByUserID (other): %v", err)
	}
	if len(otherLikes) != 1 {
		t.Fatalf("expected other user's like untouched, got %d", len(otherLikes))
	}
}

func TestDeleteForbiddenForNonOwner(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "del-owner@example.com")
	stranger := testutil.SeedUser(t, ctx, tx, "del-stranger@example.com")

	svc := newUserServiceForTest(t, tx)

	err := svc.Delete(ctx, actorFor(stranger), owner.ID)
	if err == nil {
		t.Fatalf("expected forbidden")
	}
	apiErr, ok := apierr.As(err)
	if !ok || apiErr.Code != "forbidden" {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
