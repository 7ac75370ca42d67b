package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manjito26/ESTOP-System/internal/app/middleware"
	"github.com/manjito26/ESTOP-System/internal/domain/services"
	"github.com/manjito26/ESTOP-System/internal/domain/services/container"
	"github.com/manjito26/ESTOP-System/internal/error/code"
	"github.com/manjito26/ESTOP-System/internal/error/response"
	"github.com/manjito26/ESTOP-System/pkg/logger"
)

// UserController handles user account requests
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController creates a new user controller
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleUserFunc returns a gin handler for user account requests
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "getUsers":
			controller.GetUsers()
		case "addUser":
			controller.AddUser()
		case "deleteUser":
			controller.DeleteUser()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "invalid method",
				"data":    nil,
			})
		}
	}
}

// GetUsers lists all accounts
// @Summary      List user accounts
// @Description  All accounts sorted by username, password hashes omitted
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]models.PublicUser}
// @Failure      500 {object} ErrorResponse
// @Router       /users [get]
func (u *UserController) GetUsers() {
	userService := u.Container.GetService("user").(services.InterfaceUserService)

	users, err := userService.ListUsers()
	if err != nil {
		handleServiceError(u.Ctx, err)
		return
	}
	response.Success(u.Ctx, users)
}

// AddUser creates a new account
// @Summary      Create user account
// @Description  Admin only. First and last names are normalized to capitalized form.
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.NewUserInput true "New account"
// @Success      200 {object} response.Response{data=models.PublicUser}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /users [post]
func (u *UserController) AddUser() {
	var input services.NewUserInput
	if err := u.Ctx.ShouldBindJSON(&input); err != nil {
		response.FailWithMessage(u.Ctx, code.ErrBind, "invalid request body: "+err.Error(), nil)
		return
	}

	userService := u.Container.GetService("user").(services.InterfaceUserService)
	actor := middleware.CurrentActor(u.Ctx)

	user, err := userService.AddUser(actor, input)
	if err != nil {
		handleServiceError(u.Ctx, err)
		return
	}

	logger.Info("User %s created by %s", user.Username, actor.Username)
	response.Success(u.Ctx, user)
}

// DeleteUser removes an account
// @Summary      Delete user account
// @Description  Admin only. Admins cannot delete their own account.
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "Username"
// @Success      200 {object} response.Response
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /users/{username} [delete]
func (u *UserController) DeleteUser() {
	username := u.Ctx.Param("username")
	if username == "" {
		response.FailWithMessage(u.Ctx, code.ErrValidation, "username required", nil)
		return
	}

	userService := u.Container.GetService("user").(services.InterfaceUserService)
	actor := middleware.CurrentActor(u.Ctx)

	if err := userService.DeleteUser(actor, username); err != nil {
		handleServiceError(u.Ctx, err)
		return
	}

	logger.Info("User %s deleted by %s", username, actor.Username)
	response.Success(u.Ctx, gin.H{"deleted": username})
}
