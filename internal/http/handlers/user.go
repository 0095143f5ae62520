package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/readnest-backend/internal/http/response"
	"github.com/yungbote/readnest-backend/internal/platform/apierr"
	"github.com/yungbote/readnest-backend/internal/platform/ctxutil"
	"github.com/yungbote/readnest-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
	likeService services.LikeService
}

func NewUserHandler(userService services.UserService, likeService services.LikeService) *UserHandler {
	return &UserHandler{userService: userService, likeService: likeService}
}

func (uh *UserHandler) Get(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())

	profile, err := uh.userService.GetByIDOrUsername(c.Request.Context(), rd, c.Param("idOrUsername"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, profile)
}

// Bookshelf resolves the path param to an account the same way Get does,
// then returns the liked books with a total.
func (uh *UserHandler) Bookshelf(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())

	profile, err := uh.userService.GetByIDOrUsername(c.Request.Context(), rd, c.Param("idOrUsername"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	shelf, err := uh.likeService.Bookshelf(c.Request.Context(), profile.User.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, shelf)
}

func (uh *UserHandler) Delete(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())

	userID, err := uuid.Parse(c.Param("idOrUsername"))
	if err != nil {
		response.FromError(c, apierr.Validation("invalid user id"))
		return
	}
	if err := uh.userService.Delete(c.Request.Context(), rd, userID); err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
