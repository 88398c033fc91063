package httperr

import (
	"net/http"

	"restaurant-pos/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort answers with the status the error taxonomy maps err to. The store message is
// user-facing already, so it is passed through for everything but internal failures.
func Abort(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	AbortWithError(c, status, err, msg, nil)
}

func StatusFor(err error) int {
	switch {
	case errs.Is(err, errs.ErrSyncInProgress):
		return http.StatusConflict
	case errs.Is(err, errs.ErrOffline):
		return http.StatusServiceUnavailable
	case errs.Is(err, errs.ErrNotSignedIn):
		return http.StatusUnauthorized
	case errs.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrPrecondition):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrLocalStorage):
		return http.StatusInsufficientStorage
	case errs.Is(err, errs.ErrBackend):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func BadRequest(c *gin.Context, err error, detail any) {
	AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", detail)
}
