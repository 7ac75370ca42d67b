package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/manjito26/ESTOP-System/internal/domain/services"
	"github.com/manjito26/ESTOP-System/internal/error/code"
	"github.com/manjito26/ESTOP-System/internal/error/response"
)

// parseUintParam parses a positive integer path parameter value
func parseUintParam(raw string) (uint, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("not a positive integer: %q", raw)
	}
	return uint(id), nil
}

// handleServiceError maps the typed service outcomes onto the error
// code table. Permission denials deliberately carry no detail beyond
// "not permitted".
func handleServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError

	switch {
	case errors.Is(err, services.ErrNotPermitted):
		response.Forbidden(c)
	case errors.Is(err, services.ErrNotFound):
		response.FailWithMessage(c, code.ErrRecordNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrAlreadyExists):
		response.FailWithMessage(c, code.ErrUserAlreadyExist, err.Error(), nil)
	case errors.Is(err, services.ErrSelfDelete):
		response.Fail(c, code.ErrUserSelfDelete, nil)
	case errors.Is(err, services.ErrBadCredentials):
		response.Fail(c, code.ErrUserPasswordIncorrect, nil)
	case errors.Is(err, services.ErrStoreUnavailable):
		response.Fail(c, code.ErrStoreUnavailable, nil)
	case errors.As(err, &ve):
		response.FailWithMessage(c, code.ErrValidation, ve.Error(), nil)
	default:
		response.Fail(c, code.ErrUnknown, nil)
	}
}
