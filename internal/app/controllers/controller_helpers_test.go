package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manjito26/ESTOP-System/internal/domain/services"
	"github.com/manjito26/ESTOP-System/internal/error/code"
	"github.com/manjito26/ESTOP-System/internal/error/response"
)

func renderServiceError(t *testing.T, err error) (int, response.Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	handleServiceError(c, err)

	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandleServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		httpStatus int
		code       int
	}{
		{"permission denied", services.ErrNotPermitted, http.StatusForbidden, code.ErrPermissionDenied},
		{"not found", services.ErrNotFound, http.StatusNotFound, code.ErrRecordNotFound},
		{"already exists", services.ErrAlreadyExists, http.StatusBadRequest, code.ErrUserAlreadyExist},
		{"self delete", services.ErrSelfDelete, http.StatusBadRequest, code.ErrUserSelfDelete},
		{"bad credentials", services.ErrBadCredentials, http.StatusUnauthorized, code.ErrUserPasswordIncorrect},
		{"store unavailable", services.ErrStoreUnavailable, http.StatusInternalServerError, code.ErrStoreUnavailable},
		{"validation", &services.ValidationError{Field: "result", Reason: "must be PASS or FAIL"}, http.StatusBadRequest, code.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := renderServiceError(t, tt.err)
			assert.Equal(t, tt.httpStatus, status)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestHandleServiceErrorPermissionDeniedCarriesNoDetail(t *testing.T) {
	_, body := renderServiceError(t, services.ErrNotPermitted)
	assert.Equal(t, "not permitted", body.Message, "denials must not reveal which permission was missing")
}
