package shared

import (
	"errors"
	"net/http"

	"github.com/land-deals/backend/internal/http/response"
	"github.com/land-deals/backend/internal/logger"
	"github.com/land-deals/backend/internal/service"
	"github.com/land-deals/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// RespondError maps a service error onto the response envelope. Unknown
// errors are logged and surface as a generic 500.
func RespondError(c *gin.Context, err error) {
	var fieldErr *service.FieldError
	var pctErr *service.SplitPercentageError
	var amtErr *service.SplitAmountError

	switch {
	case errors.As(err, &fieldErr):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, fieldErr.Error())
	case errors.As(err, &pctErr):
		response.Error(c, http.StatusBadRequest, response.CodeUnprocessable, pctErr.Error())
	case errors.As(err, &amtErr):
		response.Error(c, http.StatusBadRequest, response.CodeUnprocessable, amtErr.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
	case errors.Is(err, service.ErrDealNotFound),
		errors.Is(err, service.ErrPaymentNotFound),
		errors.Is(err, service.ErrPartyNotFound),
		errors.Is(err, service.ErrProofNotFound),
		errors.Is(err, service.ErrDocumentNotFound),
		errors.Is(err, service.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	case errors.Is(err, service.ErrUsernameTaken):
		response.Error(c, http.StatusConflict, response.CodeConflict, err.Error())
	case errors.Is(err, service.ErrNoUpdatableFields):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, storage.ErrFileTooLarge),
		errors.Is(err, storage.ErrUnsupportedFile):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	default:
		logger.Errorw("request_failed",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", err,
		)
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "internal server error")
	}
}

// BindError reports a request body that failed binding.
func BindError(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request: "+err.Error())
}
