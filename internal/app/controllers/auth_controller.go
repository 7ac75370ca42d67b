package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/manjito26/ESTOP-System/internal/domain/services"
	"github.com/manjito26/ESTOP-System/internal/domain/services/container"
	"github.com/manjito26/ESTOP-System/internal/error/code"
	"github.com/manjito26/ESTOP-System/internal/error/response"
	"github.com/manjito26/ESTOP-System/pkg/logger"
)

// AuthController handles authentication requests
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController creates a new authentication controller
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest is the login request body
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"mhiggins"`
	Password string `json:"password" binding:"required"`
}

// ErrorResponse documents the failure envelope for swagger
type ErrorResponse struct {
	Code    int         `json:"code" example:"100003"`
	Message string      `json:"message" example:"request parameter validation failed"`
	Data    interface{} `json:"data"`
}

// HandleAuthFunc returns a gin handler for authentication requests
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "logout":
			controller.Logout()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "invalid method",
				"data":    nil,
			})
		}
	}
}

// Login authenticates a user against the user store and issues a token
// @Summary      User login
// @Description  Authenticate with username and password, returns a JWT carrying the user's role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} response.Response{data=services.LoginResult}
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /auth/login [post]
func (a *AuthController) Login() {
	var req LoginRequest
	if err := a.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(a.Ctx, code.ErrBind, "invalid request body: "+err.Error(), nil)
		return
	}

	jwtService := a.Container.GetService("jwt").(services.InterfaceJWTService)

	result, err := jwtService.Login(req.Username, req.Password)
	if err != nil {
		logger.Warning("Failed login attempt for %s", req.Username)
		handleServiceError(a.Ctx, err)
		return
	}

	logger.Info("User %s logged in", result.Username)
	response.Success(a.Ctx, result)
}

// Logout revokes the caller's token
// @Summary      User logout
// @Description  Revoke the presented token; it is rejected from now until its natural expiry
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      401 {object} ErrorResponse
// @Router       /auth/logout [post]
func (a *AuthController) Logout() {
	claimsValue, exists := a.Ctx.Get("claims")
	if !exists {
		response.Unauthorized(a.Ctx)
		return
	}
	claims, ok := claimsValue.(*services.JWTClaims)
	if !ok {
		response.Unauthorized(a.Ctx)
		return
	}

	redisService := a.Container.GetService("redis").(services.InterfaceRedisService)

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := redisService.BlacklistToken(claims.ID, ttl); err != nil {
		logger.Error("Failed to blacklist token for %s: %v", claims.Username, err)
		response.Fail(a.Ctx, code.ErrStoreUnavailable, nil)
		return
	}

	logger.Info("User %s logged out", claims.Username)
	response.Success(a.Ctx, gin.H{"message": "logged out"})
}
