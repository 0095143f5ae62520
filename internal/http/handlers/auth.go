package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/readnest-backend/internal/domain"
	"github.com/yungbote/readnest-backend/internal/http/response"
	"github.com/yungbote/readnest-backend/internal/platform/apierr"
	"github.com/yungbote/readnest-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apierr.Validation("invalid request body"))
		return
	}
	user := types.User{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
		Role:     types.Role(req.Role),
	}
	created, err := ah.authService.Register(c.Request.Context(), &user)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"user": created})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apierr.Validation("invalid request body"))
		return
	}
	token, user, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	expiresIn := int(ah.authService.AccessTTL().Seconds())
	response.RespondOK(c, gin.H{
		"token":      token,
		"user":       user,
		"expires_in": expiresIn,
	})
}

// Logout is stateless: the session is a signed token the client discards.
func (ah *AuthHandler) Logout(c *gin.Context) {
	response.RespondOK(c, gin.H{"ok": true})
}
