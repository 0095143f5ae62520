package services

import (
	"context"

	"github.com/yungbote/readnest-backend/internal/clients/openai"
	"github.com/yungbote/readnest-backend/internal/clients/openlibrary"
	"github.com/yungbote/readnest-backend/internal/platform/logger"
)

const (
	defaultQuery = "all"
	defaultLimit = 20
	maxLimit     = 100

	// Descriptions shorter than this are already short enough to show as-is.
	minSummarizableLength = 200
)

type BookList struct {
	Books      []openlibrary.Doc `json:"books"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

type BookDetail struct {
	OLID        string   `json:"olid"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Subjects    []string `json:"subjects,omitempty"`
	CoverURL    string   `json:"cover_url,omitempty"`
	Summary     string   `json:"summary,omitempty"`
}

type CatalogService interface {
	ListBooks(ctx context.Context, query string, limit, page int) (*BookList, error)
	GetBookDetail(ctx context.Context, olid string, wantSummary bool) (*BookDetail, error)
}

type catalogService struct {
	log        *logger.Logger
	catalog    openlibrary.Client
	summarizer openai.Summarizer
}

func NewCatalogService(log *logger.Logger, catalog openlibrary.Client, summarizer openai.Summarizer) CatalogService {
	serviceLog := log.With("service", "CatalogService")
	return &catalogService{
		log:        serviceLog,
		catalog:    catalog,
		summarizer: summarizer,
	}
}

// ListBooks is a pass-through to the catalog with clamped pagination; every
// call hits the upstream, nothing is cached.
func (cs *catalogService) ListBooks(ctx context.Context, query string, limit, page int) (*BookList, error) {
	if query == "" {
		query = defaultQuery
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if page < 1 {
		page = 1
	}

	result, err := cs.catalog.Search(ctx, query, limit, page)
	if err != nil {
		return nil, err
	}

	totalPages := (result.Total + limit - 1) / limit
	return &BookList{
		Books:      result.Docs,
		Total:      result.Total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (cs *catalogService) GetBookDetail(ctx context.Context, olid string, wantSummary bool) (*BookDetail, error) {
	work, err := cs.catalog.GetWork(ctx, olid)
	if err != nil {
		return nil, err
	}

	detail := &BookDetail{
		OLID:        work.OLID,
		Title:       work.Title,
		Description: work.Description,
		Subjects:    work.Subjects,
	}
	if len(work.CoverIDs) > 0 {
		detail.CoverURL = cs.catalog.CoverURL(work.CoverIDs[0], "L")
	}

	if wantSummary && cs.summarizer != nil && cs.summarizer.Enabled() && len(work.Description) >= minSummarizableLength {
		summary, sErr := cs.summarizer.Summarize(ctx, work.Title, work.Description)
		if sErr != nil {
			// Degrades to no summary, never fails the request.
			cs.log.Warn("Summarization unavailable", "olid", olid, "error", sErr)
		} else {
			detail.Summary = summary
		}
	}
	return detail, nil
}
