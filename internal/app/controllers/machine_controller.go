package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manjito26/ESTOP-System/internal/app/middleware"
	"github.com/manjito26/ESTOP-System/internal/domain/models"
	"github.com/manjito26/ESTOP-System/internal/domain/services"
	"github.com/manjito26/ESTOP-System/internal/domain/services/container"
	"github.com/manjito26/ESTOP-System/internal/error/code"
	"github.com/manjito26/ESTOP-System/internal/error/response"
)

// MachineController handles machine and safety device requests
type MachineController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewMachineController creates a new machine controller
func NewMachineController(ctx *gin.Context, container *container.ServiceContainer) *MachineController {
	return &MachineController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleMachineFunc returns a gin handler for machine requests
func HandleMachineFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewMachineController(ctx, container)

		switch method {
		case "getMachines":
			controller.GetMachines()
		case "getMachine":
			controller.GetMachine()
		case "getDevices":
			controller.GetDevices()
		case "getDeviceStatus":
			controller.GetDeviceStatus()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "invalid method",
				"data":    nil,
			})
		}
	}
}

// parseIDParam reads a positive integer path parameter
func (m *MachineController) parseIDParam(name string) (uint, bool) {
	id, err := parseUintParam(m.Ctx.Param(name))
	if err != nil {
		response.FailWithMessage(m.Ctx, code.ErrValidation, "invalid "+name, nil)
		return 0, false
	}
	return id, true
}

// GetMachines lists machines
// @Summary      List machines
// @Description  One page of machines ordered by name
// @Tags         machine
// @Produce      json
// @Security     BearerAuth
// @Param        pageNum  query int  false "Page number, 1-based"
// @Param        pageSize query int  false "Page size, default 20, max 100"
// @Param        desc     query bool false "Reverse the name ordering"
// @Success      200 {object} response.Response
// @Failure      500 {object} ErrorResponse
// @Router       /machines [get]
func (m *MachineController) GetMachines() {
	var q models.PaginationQuery
	if err := m.Ctx.ShouldBindQuery(&q); err != nil {
		response.FailWithMessage(m.Ctx, code.ErrBind, "invalid query parameters: "+err.Error(), nil)
		return
	}

	machineService := m.Container.GetService("machine").(services.InterfaceMachineService)

	machines, pagination, err := machineService.GetAllMachines(q)
	if err != nil {
		handleServiceError(m.Ctx, err)
		return
	}
	response.Success(m.Ctx, gin.H{
		"machines":   machines,
		"pagination": pagination,
	})
}

// GetMachine returns a single machine
// @Summary      Get machine
// @Tags         machine
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Machine ID"
// @Success      200 {object} response.Response{data=models.Machine}
// @Failure      404 {object} ErrorResponse
// @Router       /machines/{id} [get]
func (m *MachineController) GetMachine() {
	id, ok := m.parseIDParam("id")
	if !ok {
		return
	}

	machineService := m.Container.GetService("machine").(services.InterfaceMachineService)

	machine, err := machineService.GetMachineByID(id)
	if err != nil {
		handleServiceError(m.Ctx, err)
		return
	}
	response.Success(m.Ctx, machine)
}

// GetDevices lists the safety devices on a machine
// @Summary      List safety devices for a machine
// @Tags         machine
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Machine ID"
// @Success      200 {object} response.Response{data=[]models.SafetyDevice}
// @Failure      404 {object} ErrorResponse
// @Router       /machines/{id}/devices [get]
func (m *MachineController) GetDevices() {
	id, ok := m.parseIDParam("id")
	if !ok {
		return
	}

	machineService := m.Container.GetService("machine").(services.InterfaceMachineService)

	devices, err := machineService.GetDevicesForMachine(id)
	if err != nil {
		handleServiceError(m.Ctx, err)
		return
	}
	response.Success(m.Ctx, devices)
}

// GetDeviceStatus returns the derived age classification of a device
// @Summary      Device compliance status
// @Description  Age classification derived from the device's most recent test record; "unknown" when the device was never tested
// @Tags         device
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Device ID"
// @Success      200 {object} response.Response{data=status.Classification}
// @Failure      404 {object} ErrorResponse
// @Router       /devices/{id}/status [get]
func (m *MachineController) GetDeviceStatus() {
	id, ok := m.parseIDParam("id")
	if !ok {
		return
	}

	recordService := m.Container.GetService("test_record").(services.InterfaceTestRecordService)

	classification, err := recordService.GetDeviceStatus(middleware.CurrentActor(m.Ctx), id)
	if err != nil {
		handleServiceError(m.Ctx, err)
		return
	}
	response.Success(m.Ctx, classification)
}
