package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manjito26/ESTOP-System/internal/domain/services/container"
	"github.com/manjito26/ESTOP-System/internal/error/code"
	"github.com/manjito26/ESTOP-System/internal/error/response"
)

// HealthController handles health check requests
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthController creates a new health controller
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer) *HealthController {
	return &HealthController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHealthFunc returns a gin handler for health requests
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthController(ctx, container)

		switch method {
		case "ping":
			controller.Ping()
		case "status":
			controller.Status()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "invalid method",
				"data":    nil,
			})
		}
	}
}

// Ping is the liveness endpoint
// @Summary      Ping
// @Description  Liveness check
// @Tags         health
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /ping [get]
func (h *HealthController) Ping() {
	response.Success(h.Ctx, gin.H{
		"status":  "healthy",
		"message": "pong",
	})
}

// Status reports database connectivity
// @Summary      Service status
// @Description  Readiness check including database connectivity
// @Tags         health
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      500 {object} response.Response
// @Router       /health/status [get]
func (h *HealthController) Status() {
	db := h.Container.GetDB()
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}

	if err != nil {
		response.FailWithMessage(h.Ctx, code.ErrStoreUnavailable, "database unreachable: "+err.Error(), nil)
		return
	}

	response.Success(h.Ctx, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}
