package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/yungbote/readnest-backend/internal/platform/apierr"
	"github.com/yungbote/readnest-backend/internal/platform/ctxutil"
	"github.com/yungbote/readnest-backend/internal/platform/logger"
)

// Doc is one result row from the catalog search endpoint, flattened to the
// fields the API serves.
type Doc struct {
	OLID     string `json:"olid"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	CoverID  int    `json:"cover_id,omitempty"`
	CoverURL string `json:"cover_url,omitempty"`
}

type SearchResult struct {
	Docs  []Doc
	Total int
}

// Work is the catalog's detail record for one title.
type Work struct {
	OLID        string
	Title       string
	Subjects    []string
	Description string
	CoverIDs    []int
}

// Client is the OpenLibrary API client used by the catalog and like services.
type Client interface {
	Search(ctx context.Context, query string, limit, page int) (*SearchResult, error)
	GetWork(ctx context.Context, olid string) (*Work, error)
	CoverURL(coverID int, size string) string
}

type client struct {
	log        *logger.Logger
	baseURL    string
	coversURL  string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	baseURL := strings.TrimSpace(os.Getenv("OPENLIBRARY_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://openlibrary.org"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	coversURL := strings.TrimSpace(os.Getenv("OPENLIBRARY_COVERS_URL"))
	if coversURL == "" {
		coversURL = "https://covers.openlibrary.org"
	}
	coversURL = strings.TrimRight(coversURL, "/")

	return &client{
		log:        log.With("client", "OpenLibrary"),
		baseURL:    baseURL,
		coversURL:  coversURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type searchResponse struct {
	NumFound int `json:"numFound"`
	Docs     []struct {
		Key        string   `json:"key"`
		Title      string   `json:"title"`
		AuthorName []string `json:"author_name"`
		CoverI     int      `json:"cover_i"`
	} `json:"docs"`
}

func (c *client) Search(ctx context.Context, query string, limit, page int) (*SearchResult, error) {
	ctx = ctxutil.Default(ctx)

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("page", fmt.Sprintf("%d", page))

	var parsed searchResponse
	if err := c.getJSON(ctx, "/search.json?"+params.Encode(), &parsed); err != nil {
		return nil, err
	}

	result := &SearchResult{Total: parsed.NumFound}
	for _, doc := range parsed.Docs {
		d := Doc{
			OLID:    strings.TrimPrefix(doc.Key, "/works/"),
			Title:   doc.Title,
			CoverID: doc.CoverI,
		}
		if len(doc.AuthorName) > 0 {
			d.Author = doc.AuthorName[0]
		}
		if doc.CoverI > 0 {
			d.CoverURL = c.CoverURL(doc.CoverI, "M")
		}
		result.Docs = append(result.Docs, d)
	}
	return result, nil
}

type workResponse struct {
	Title       string          `json:"title"`
	Subjects    []string        `json:"subjects"`
	Description json.RawMessage `json:"description"`
	Covers      []int           `json:"covers"`
}

func (c *client) GetWork(ctx context.Context, olid string) (*Work, error) {
	ctx = ctxutil.Default(ctx)

	olid = strings.TrimSpace(olid)
	if olid == "" {
		return nil, apierr.Validation("catalog id is required")
	}

	var parsed workResponse
	if err := c.getJSON(ctx, "/works/"+url.PathEscape(olid)+".json", &parsed); err != nil {
		return nil, err
	}

	return &Work{
		OLID:        olid,
		Title:       parsed.Title,
		Subjects:    parsed.Subjects,
		Description: decodeDescription(parsed.Description),
		CoverIDs:    parsed.Covers,
	}, nil
}

func (c *client) CoverURL(coverID int, size string) string {
	if coverID <= 0 {
		return ""
	}
	if size == "" {
		size = "M"
	}
	return fmt.Sprintf("%s/b/id/%d-%s.jpg", c.coversURL, coverID, size)
}

func (c *client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return apierr.Upstream(fmt.Errorf("build catalog request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apierr.Upstream(fmt.Errorf("catalog request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Upstream error text is not leaked to callers.
		return apierr.NotFound("book not found")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.log.Warn("Catalog returned non-2xx", "status", resp.StatusCode, "body", string(body))
		return apierr.Upstream(fmt.Errorf("catalog returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apierr.Upstream(fmt.Errorf("decode catalog response: %w", err))
	}
	return nil
}

// decodeDescription handles the catalog's two description shapes: a plain
// string or a {"type": ..., "value": ...} object.
func decodeDescription(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}
	var asObject struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &asObject); err == nil {
		return asObject.Value
	}
	return ""
}
