package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manjito26/ESTOP-System/internal/error/code"
)

// Response defines the uniform response envelope
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success renders a success response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    code.ErrSuccess,
		Message: code.GetMessage(code.ErrSuccess),
		Data:    data,
	})
}

// Fail renders a failure response
func Fail(c *gin.Context, errorCode int, data interface{}) {
	httpStatus := code.GetStatus(errorCode)
	message := code.GetMessage(errorCode)

	c.JSON(httpStatus, Response{
		Code:    errorCode,
		Message: message,
		Data:    data,
	})
}

// FailWithMessage renders a failure response with a custom message
func FailWithMessage(c *gin.Context, errorCode int, message string, data interface{}) {
	httpStatus := code.GetStatus(errorCode)

	c.JSON(httpStatus, Response{
		Code:    errorCode,
		Message: message,
		Data:    data,
	})
}

// ParamError renders a validation failure
func ParamError(c *gin.Context, message string) {
	FailWithMessage(c, code.ErrValidation, message, nil)
}

// ServerError renders an internal error
func ServerError(c *gin.Context) {
	Fail(c, code.ErrUnknown, nil)
}

// NotFound renders a resource-not-found failure
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "resource does not exist"
	}
	FailWithMessage(c, code.ErrRecordNotFound, message, nil)
}

// Unauthorized renders an authentication failure
func Unauthorized(c *gin.Context) {
	Fail(c, code.ErrTokenInvalid, nil)
}

// Forbidden renders a permission failure. The message deliberately does
// not say which permission was missing.
func Forbidden(c *gin.Context) {
	Fail(c, code.ErrPermissionDenied, nil)
}
