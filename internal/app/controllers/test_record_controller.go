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

// TestRecordController handles test ledger requests
type TestRecordController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewTestRecordController creates a new test record controller
func NewTestRecordController(ctx *gin.Context, container *container.ServiceContainer) *TestRecordController {
	return &TestRecordController{
		Ctx:       ctx,
		Container: container,
	}
}

// RecordTestRequest is the request body for recording a test
type RecordTestRequest struct {
	DeviceID uint   `json:"device_id" binding:"required" example:"1"`
	Result   string `json:"result" binding:"required" example:"PASS"` // PASS or FAIL
	Notes    string `json:"notes" example:"monthly check"`
}

// HandleTestRecordFunc returns a gin handler for test record requests
func HandleTestRecordFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewTestRecordController(ctx, container)

		switch method {
		case "recordTest":
			controller.RecordTest()
		case "getHistory":
			controller.GetHistory()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "invalid method",
				"data":    nil,
			})
		}
	}
}

// RecordTest appends a test result to the ledger
// @Summary      Record a safety device test
// @Description  Append a PASS/FAIL test record for a device. The timestamp is server-assigned and the record is immutable.
// @Tags         test
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body RecordTestRequest true "Test submission"
// @Success      200 {object} response.Response{data=models.TestRecord}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /tests [post]
func (t *TestRecordController) RecordTest() {
	var req RecordTestRequest
	if err := t.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(t.Ctx, code.ErrBind, "invalid request body: "+err.Error(), nil)
		return
	}

	recordService := t.Container.GetService("test_record").(services.InterfaceTestRecordService)

	record, err := recordService.RecordTest(middleware.CurrentActor(t.Ctx), req.DeviceID, models.TestResult(req.Result), req.Notes)
	if err != nil {
		handleServiceError(t.Ctx, err)
		return
	}
	response.Success(t.Ctx, record)
}

// GetHistory returns the searchable test history
// @Summary      Test history
// @Description  Ledger entries with derived days-since-test status, filtered by free text, machine and tester, sorted by date, age, machine or device
// @Tags         test
// @Produce      json
// @Security     BearerAuth
// @Param        search  query string false "Free-text search over device, machine and tester names"
// @Param        machine query string false "Exact machine name filter"
// @Param        user    query string false "Exact tester username filter"
// @Param        sort    query string false "Sort key: date (default), age, machine, device"
// @Success      200 {object} response.Response{data=[]models.HistoryEntry}
// @Failure      403 {object} ErrorResponse
// @Router       /tests/history [get]
func (t *TestRecordController) GetHistory() {
	var q services.HistoryQuery
	if err := t.Ctx.ShouldBindQuery(&q); err != nil {
		response.FailWithMessage(t.Ctx, code.ErrBind, "invalid query parameters: "+err.Error(), nil)
		return
	}

	recordService := t.Container.GetService("test_record").(services.InterfaceTestRecordService)

	entries, err := recordService.GetHistory(middleware.CurrentActor(t.Ctx), q)
	if err != nil {
		handleServiceError(t.Ctx, err)
		return
	}
	response.Success(t.Ctx, entries)
}
