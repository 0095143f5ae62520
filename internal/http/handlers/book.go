package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/readnest-backend/internal/http/response"
	"github.com/yungbote/readnest-backend/internal/platform/apierr"
	"github.com/yungbote/readnest-backend/internal/platform/ctxutil"
	"github.com/yungbote/readnest-backend/internal/services"
)

type BookHandler struct {
	catalogService services.CatalogService
	likeService    services.LikeService
}

func NewBookHandler(catalogService services.CatalogService, likeService services.LikeService) *BookHandler {
	return &BookHandler{catalogService: catalogService, likeService: likeService}
}

func (bh *BookHandler) List(c *gin.Context) {
	query := c.DefaultQuery("query", "all")
	limit := atoiDefault(c.Query("limit"), 20)
	page := atoiDefault(c.Query("page"), 1)

	list, err := bh.catalogService.ListBooks(c.Request.Context(), query, limit, page)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, list)
}

func (bh *BookHandler) Detail(c *gin.Context) {
	olid := c.Param("id")
	wantSummary := strings.EqualFold(c.Query("summarize"), "true")

	detail, err := bh.catalogService.GetBookDetail(c.Request.Context(), olid, wantSummary)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, detail)
}

func (bh *BookHandler) Like(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.FromError(c, apierr.Unauthenticated("missing identity"))
		return
	}

	result, err := bh.likeService.RecordLike(c.Request.Context(), rd.UserID, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondCreated(c, result)
}

func atoiDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return i
}
