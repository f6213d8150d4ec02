package handler

import (
	stdErrors "errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-archive/errors"
	ucerrors "github.com/johnquangdev/meeting-archive/internal/usecase/errors"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// toAppError maps usecase sentinels onto transport errors
func toAppError(err error) (errors.AppError, bool) {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr, true
	}

	switch {
	case stdErrors.Is(err, ucerrors.ErrSnapshotNotLoaded):
		return errors.ErrSnapshotUnavailable(err), true
	case stdErrors.Is(err, ucerrors.ErrInvalidDateRange),
		stdErrors.Is(err, ucerrors.ErrInvalidSortOrder),
		stdErrors.Is(err, ucerrors.ErrUnknownGraphKind),
		stdErrors.Is(err, ucerrors.ErrInvalidInput):
		return errors.ErrInvalidArgument(err.Error()), true
	}
	return errors.AppError{}, false
}

// statusCodes maps bare echo HTTP errors (routing, binding) onto application codes
var statusCodes = map[int]errors.ErrorCode{
	http.StatusBadRequest:       errors.ErrorCode_INVALID_ARGUMENT,
	http.StatusUnauthorized:     errors.ErrorCode_UNAUTHENTICATED,
	http.StatusForbidden:        errors.ErrorCode_PERMISSION_DENIED,
	http.StatusNotFound:         errors.ErrorCode_NOT_FOUND,
	http.StatusMethodNotAllowed: errors.ErrorCode_INVALID_ARGUMENT,
}

// ErrorHandler renders errors escaping handlers and middleware in the same shape
// as HandleError
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if _, ok := toAppError(err); ok || !stdErrors.As(err, &he) {
			_ = HandleError(logger, c, err)
			return
		}

		code, ok := statusCodes[he.Code]
		if !ok {
			code = errors.ErrorCode_INTERNAL
		}
		_ = c.JSON(he.Code, errs{Code: code, Message: fmt.Sprint(he.Message)})
	}
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Debug("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	if appErr, ok := toAppError(err); ok {
		if logger != nil {
			level := logger.Warn
			if appErr.HTTPCode >= http.StatusInternalServerError {
				level = logger.Error
			}
			level("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Stringer("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	// Unmapped errors never expose their text
	internal := errors.ErrInternal(err)
	body := errs{
		Code:    internal.Code,
		Message: internal.Message,
	}

	return c.JSON(internal.HTTPCode, body)
}
