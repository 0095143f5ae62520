package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/readnest-backend/internal/clients/openlibrary"
	types "github.com/yungbote/readnest-backend/internal/domain"
	"github.com/yungbote/readnest-backend/internal/normalization"
	"github.com/yungbote/readnest-backend/internal/platform/apierr"
	"github.com/yungbote/readnest-backend/internal/platform/logger"
	"github.com/yungbote/readnest-backend/internal/repos"
)

// LikeResult is what the like endpoint returns: the liked title and how many
// subject strings were processed. The count is len(subjects) after empty
// filtering, a UI hint only, not deduplicated against existing preferences.
type LikeResult struct {
	Title             string `json:"title"`
	SubjectsProcessed int    `json:"subjects_processed"`
}

type BookshelfEntry struct {
	Book    *types.Book `json:"book"`
	LikedAt time.Time   `json:"liked_at"`
}

type BookshelfResult struct {
	Books      []BookshelfEntry `json:"books"`
	TotalBooks int              `json:"total_books"`
}

// LikeService owns the record-like workflow: catalog fetch, idempotent book
// upsert, duplicate-rejected like, best-effort preference accumulation.
type LikeService interface {
	RecordLike(ctx context.Context, userID uuid.UUID, olid string) (*LikeResult, error)
	Bookshelf(ctx context.Context, userID uuid.UUID) (*BookshelfResult, error)
}

type likeService struct {
	db       *gorm.DB
	log      *logger.Logger
	catalog  openlibrary.Client
	bookRepo repos.BookRepo
	likeRepo repos.LikeRepo
	prefRepo repos.PreferenceRepo
}

func NewLikeService(
	db *gorm.DB,
	log *logger.Logger,
	catalog openlibrary.Client,
	bookRepo repos.BookRepo,
	likeRepo repos.LikeRepo,
	prefRepo repos.PreferenceRepo,
) LikeService {
	serviceLog := log.With("service", "LikeService")
	return &likeService{
		db:       db,
		log:      serviceLog,
		catalog:  catalog,
		bookRepo: bookRepo,
		likeRepo: likeRepo,
		prefRepo: prefRepo,
	}
}

func (ls *likeService) RecordLike(ctx context.Context, userID uuid.UUID, olid string) (*LikeResult, error) {
	olid = strings.TrimSpace(olid)
	if olid == "" {
		return nil, apierr.Validation("catalog id is required")
	}

	work, err := ls.catalog.GetWork(ctx, olid)
	if err != nil {
		// NotFound and upstream errors pass through untouched, no retries.
		return nil, err
	}

	book, err := ls.upsertBook(ctx, work)
	if err != nil {
		return nil, apierr.Storage(fmt.Errorf("upsert book: %w", err))
	}

	exists, err := ls.likeRepo.Exists(ctx, nil, userID, book.ID)
	if err != nil {
		return nil, apierr.Storage(fmt.Errorf("check existing like: %w", err))
	}
	if exists {
		return nil, apierr.Duplicate("already liked")
	}

	like := &types.Like{ID: uuid.New(), UserID: userID, BookID: book.ID}
	if _, err := ls.likeRepo.Create(ctx, nil, like); err != nil {
		// The composite unique index closes the check-then-act race: a
		// concurrent duplicate surfaces here as the same business error.
		if repos.IsUniqueViolation(err) {
			return nil, apierr.Duplicate("already liked")
		}
		return nil, apierr.Storage(fmt.Errorf("create like: %w", err))
	}

	subjects := normalization.FilterSubjects(work.Subjects)
	ls.accumulatePreferences(ctx, userID, subjects)

	return &LikeResult{
		Title:             work.Title,
		SubjectsProcessed: len(subjects),
	}, nil
}

func (ls *likeService) upsertBook(ctx context.Context, work *openlibrary.Work) (*types.Book, error) {
	book := &types.Book{
		ID:    uuid.New(),
		OLID:  work.OLID,
		Title: work.Title,
	}
	if len(work.CoverIDs) > 0 {
		book.CoverURL = ls.catalog.CoverURL(work.CoverIDs[0], "M")
	}
	if len(work.Subjects) > 0 {
		if raw, err := json.Marshal(work.Subjects); err == nil {
			book.Subjects = datatypes.JSON(raw)
		}
	}
	return ls.bookRepo.GetOrCreateByOLID(ctx, nil, book)
}

// accumulatePreferences is the best-effort step after the like has been
// committed: failures are logged, never propagated. Subjects are processed
// sequentially, one read-then-write each; a duplicate subject within one
// list increments its counter once per occurrence.
func (ls *likeService) accumulatePreferences(ctx context.Context, userID uuid.UUID, subjects []string) {
	for _, subject := range subjects {
		normalized := normalization.ParseInputString(subject)

		pref, err := ls.prefRepo.GetByUserAndSubject(ctx, nil, userID, normalized)
		if err != nil {
			ls.log.Warn("Preference lookup failed", "user_id", userID, "subject", normalized, "error", err)
			continue
		}
		if pref != nil {
			if err := ls.prefRepo.IncrementWeight(ctx, nil, pref.ID); err != nil {
				ls.log.Warn("Preference increment failed", "user_id", userID, "subject", normalized, "error", err)
			}
			continue
		}
		newPref := &types.Preference{
			ID:      uuid.New(),
			UserID:  userID,
			Subject: normalized,
			Weight:  1,
		}
		if _, err := ls.prefRepo.Create(ctx, nil, newPref); err != nil {
			ls.log.Warn("Preference create failed", "user_id", userID, "subject", normalized, "error", err)
		}
	}
}

func (ls *likeService) Bookshelf(ctx context.Context, userID uuid.UUID) (*BookshelfResult, error) {
	likes, err := ls.likeRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Storage(fmt.Errorf("load bookshelf: %w", err))
	}

	entries := make([]BookshelfEntry, 0, len(likes))
	for _, like := range likes {
		entries = append(entries, BookshelfEntry{
			Book:    like.Book,
			LikedAt: like.CreatedAt,
		})
	}
	return &BookshelfResult{
		Books:      entries,
		TotalBooks: len(entries),
	}, nil
}
