package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/readnest-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// FromError is the single translator from typed errors to HTTP responses.
// Unrecognized errors collapse to 500 without echoing their text; the
// original message reaches clients only in debug mode.
func FromError(c *gin.Context, err error) {
	if apiErr, ok := apierr.As(err); ok {
		msg := apiErr.Error()
		if apiErr.Status >= http.StatusInternalServerError && gin.Mode() == gin.ReleaseMode {
			msg = safeMessage(apiErr.Status)
		}
		c.JSON(apiErr.Status, ErrorEnvelope{
			Error: APIError{Message: msg, Code: apiErr.Code},
		})
		return
	}

	msg := "internal error"
	if gin.Mode() != gin.ReleaseMode && err != nil {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, ErrorEnvelope{
		Error: APIError{Message: msg, Code: "internal_error"},
	})
}

func safeMessage(status int) string {
	if status == http.StatusServiceUnavailable {
		return "storage unavailable"
	}
	return "internal error"
}
