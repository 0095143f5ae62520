package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/readnest-backend/internal/domain"
	"github.com/yungbote/readnest-backend/internal/platform/apierr"
	"github.com/yungbote/readnest-backend/internal/platform/ctxutil"
	"github.com/yungbote/readnest-backend/internal/platform/logger"
	"github.com/yungbote/readnest-backend/internal/repos"
)

// UserProfile is a user joined with the books they have liked.
type UserProfile struct {
	User  *types.User   `json:"user"`
	Likes []*types.Like `json:"liked_books"`
}

type UserService interface {
	GetByIDOrUsername(ctx context.Context, actor *ctxutil.RequestData, idOrUsername string) (*UserProfile, error)
	Delete(ctx context.Context, actor *ctxutil.RequestData, userID uuid.UUID) error
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	likeRepo repos.LikeRepo
	prefRepo repos.PreferenceRepo
}

func NewUserService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	likeRepo repos.LikeRepo,
	prefRepo repos.PreferenceRepo,
) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:       db,
		log:      serviceLog,
		userRepo: userRepo,
		likeRepo: likeRepo,
		prefRepo: prefRepo,
	}
}

func (us *userService) GetByIDOrUsername(ctx context.Context, actor *ctxutil.RequestData, idOrUsername string) (*UserProfile, error) {
	if actor == nil {
		return nil, apierr.Unauthenticated("missing identity")
	}

	user, err := us.resolve(ctx, idOrUsername)
	if err != nil {
		return nil, err
	}

	if !types.CanAccessUser(actor.UserID, types.Role(actor.Role), user.ID) {
		return nil, apierr.Forbidden("cannot view another user's profile")
	}

	likes, err := us.likeRepo.GetByUserID(ctx, nil, user.ID)
	if err != nil {
		return nil, apierr.Storage(fmt.Errorf("load liked books: %w", err))
	}
	return &UserProfile{User: user, Likes: likes}, nil
}

// Delete removes the account and cascades to its likes and preferences.
// Book rows persist for other accounts that reference them.
func (us *userService) Delete(ctx context.Context, actor *ctxutil.RequestData, userID uuid.UUID) error {
	if actor == nil {
		return apierr.Unauthenticated("missing identity")
	}
	if !types.CanAccessUser(actor.UserID, types.Role(actor.Role), userID) {
		return apierr.Forbidden("cannot delete another user's account")
	}

	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return apierr.Storage(fmt.Errorf("lookup user: %w", err))
	}
	if len(users) == 0 {
		return apierr.NotFound("user not found")
	}

	err = us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := us.likeRepo.DeleteByUserIDs(ctx, tx, []uuid.UUID{userID}); err != nil {
			return fmt.Errorf("delete likes: %w", err)
		}
		if err := us.prefRepo.DeleteByUserIDs(ctx, tx, []uuid.UUID{userID}); err != nil {
			return fmt.Errorf("delete preferences: %w", err)
		}
		if err := us.userRepo.DeleteByIDs(ctx, tx, []uuid.UUID{userID}); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return apierr.Storage(err)
	}
	us.log.Info("User deleted", "user_id", userID, "actor_id", actor.UserID)
	return nil
}

func (us *userService) resolve(ctx context.Context, idOrUsername string) (*types.User, error) {
	if id, err := uuid.Parse(idOrUsername); err == nil {
		users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
		if err != nil {
			return nil, apierr.Storage(fmt.Errorf("lookup user by id: %w", err))
		}
		if len(users) == 0 {
			return nil, apierr.NotFound("user not found")
		}
		return users[0], nil
	}

	users, err := us.userRepo.GetByUsernames(ctx, nil, []string{idOrUsername})
	if err != nil {
		return nil, apierr.Storage(fmt.Errorf("lookup user by username: %w", err))
	}
	if len(users) == 0 {
		return nil, apierr.NotFound("user not found")
	}
	return users[0], nil
}
